package bot

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/shadowgov/sdk/game"
)

// StrategicAssessment summarises the position for display. It has no effect
// on decisions.
func (e *Engine) StrategicAssessment(s *game.Snapshot) string {
	if s == nil {
		s = &game.Snapshot{}
	}
	ev := e.Evaluate(s)

	var b strings.Builder
	fmt.Fprintf(&b, "%s Analysis: ", e.personality.Name)

	switch {
	case ev.OverallScore > 0.3:
		b.WriteString("Situation favorable. ")
	case ev.OverallScore < -0.3:
		b.WriteString("Behind in multiple areas. ")
	default:
		b.WriteString("Balanced position. ")
	}
	if ev.ThreatLevel > 0.6 {
		b.WriteString("HIGH THREAT DETECTED! ")
	}
	if ev.TerritorialControl < -0.4 {
		b.WriteString("Need more territory. ")
	}

	if e.personality.deceptive() {
		fmt.Fprintf(&b, "Deception level: %d%%. ", int(math.Round(e.deception.misdirectionLevel*100)))
		if len(e.deception.bluffHistory) > 0 {
			b.WriteString("Running psychological operations. ")
		}
		if p := classifyPattern(s, e.deception.catalog); p != PatternInsufficientData {
			fmt.Fprintf(&b, "Player pattern: %s. ", strings.ReplaceAll(p, "_", " "))
		}
	}

	return strings.TrimSpace(b.String())
}
