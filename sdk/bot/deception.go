package bot

import (
	"slices"

	"github.com/lox/shadowgov/sdk/game"
)

// Opponent behaviour patterns
const (
	PatternInsufficientData    = "insufficient_data"
	PatternTerritorialFocus    = "territorial_focus"
	PatternPropagandaFocus     = "propaganda_focus"
	PatternAggressiveFocus     = "aggressive_focus"
	PatternAggressiveExpansion = "aggressive_expansion"
	PatternMixed               = "mixed"
)

const maxPatternHistory = 8

// deceptionState belongs to exactly one Engine. Decisions on an engine are
// serialised, so it is mutated without locking.
type deceptionState struct {
	fakeTargets       []string
	misdirectionLevel float64
	bluffHistory      []string
	playerPattern     []string
	catalog           game.Catalog
}

func newDeceptionState(riskTolerance float64, cat game.Catalog) *deceptionState {
	return &deceptionState{misdirectionLevel: clamp01(riskTolerance) * 0.3, catalog: cat}
}

// classifyPattern labels the opponent's plays this round
func classifyPattern(s *game.Snapshot, cat game.Catalog) string {
	plays := s.PlaysBy(game.ActorHuman)
	if len(plays) < 2 {
		return PatternInsufficientData
	}

	counts := map[game.CardType]int{}
	for _, rec := range plays {
		counts[game.Resolve(cat, rec.Card).Type]++
	}
	n := len(plays)
	switch {
	case counts[game.CardZone] == n:
		return PatternTerritorialFocus
	case counts[game.CardMedia] == n:
		return PatternPropagandaFocus
	case counts[game.CardAttack] == n:
		return PatternAggressiveFocus
	case counts[game.CardAttack] > 0 && counts[game.CardZone] > 0:
		return PatternAggressiveExpansion
	default:
		return PatternMixed
	}
}

// observe records the current opponent pattern
func (d *deceptionState) observe(s *game.Snapshot) string {
	pattern := classifyPattern(s, d.catalog)
	if pattern == PatternInsufficientData {
		return pattern
	}
	d.playerPattern = append(d.playerPattern, pattern)
	if len(d.playerPattern) > maxPatternHistory {
		d.playerPattern = d.playerPattern[len(d.playerPattern)-maxPatternHistory:]
	}
	return pattern
}

// pattern returns the live classification, falling back to the most recent
// recorded one when this round has too little data
func (d *deceptionState) pattern(s *game.Snapshot) string {
	if p := classifyPattern(s, d.catalog); p != PatternInsufficientData {
		return p
	}
	if n := len(d.playerPattern); n > 0 {
		return d.playerPattern[n-1]
	}
	return PatternInsufficientData
}

func isDefensiveCard(c game.Card) bool {
	return c.Type == game.CardDefensive || c.HasTag(game.TagDefensive)
}

// breaksPattern reports whether the play is not what the opponent's pattern
// would lead them to expect
func breaksPattern(c game.Card, pattern string) bool {
	switch pattern {
	case PatternTerritorialFocus:
		return c.Type == game.CardMedia || c.Type == game.CardAttack
	case PatternPropagandaFocus:
		return c.Type == game.CardZone || c.Type == game.CardDefensive
	case PatternAggressiveFocus:
		return !isDefensiveCard(c) && !c.HasTag(game.TagCounter)
	case PatternAggressiveExpansion:
		return c.Type == game.CardMedia
	default:
		return false
	}
}

func countersExpectation(c game.Card, ev Evaluation) bool {
	switch {
	case ev.OverallScore > 0.3:
		return c.Type == game.CardAttack
	case ev.OverallScore < -0.3:
		return c.Type == game.CardDefensive
	default:
		return false
	}
}

// value scores how misleading a play is. Only deep planners deceive.
func (d *deceptionState) value(p Personality, play CardPlay, s *game.Snapshot, ev Evaluation) float64 {
	if !p.deceptive() {
		return 0
	}

	v := 0.0
	if play.TargetState != "" && slices.Contains(d.fakeTargets, play.TargetState) {
		v += 0.2
	}
	if breaksPattern(play.card, d.pattern(s)) {
		v += 0.15
	}
	if countersExpectation(play.card, ev) {
		v += 0.25
	}
	return v * d.misdirectionLevel
}

// isThreatResponse reports whether play answers the opponent's last card or
// shores up a dangerous position
func isThreatResponse(play CardPlay, s *game.Snapshot, ev Evaluation, cat game.Catalog) bool {
	c := play.card
	if last, ok := s.LastPlayBy(game.ActorHuman); ok {
		switch game.Resolve(cat, last.Card).Type {
		case game.CardAttack:
			if isDefensiveCard(c) {
				return true
			}
		case game.CardMedia:
			if c.HasTag(game.TagCounter) {
				return true
			}
		case game.CardZone:
			if play.TargetState != "" && play.TargetState == last.TargetState {
				return true
			}
		}
	}
	return ev.ThreatLevel > 0.6 && (isDefensiveCard(c) || c.HasTag(game.TagCounter))
}
