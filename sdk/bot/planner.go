package bot

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/lox/shadowgov/sdk/game"
)

// Planner defaults
const (
	DefaultMaxActions        = 3
	DefaultPriorityThreshold = 0.3
)

// PlanOptions bounds a multi-card turn
type PlanOptions struct {
	MaxActions        int
	PriorityThreshold float64
}

// DefaultPlanOptions returns the standard turn limits
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{MaxActions: DefaultMaxActions, PriorityThreshold: DefaultPriorityThreshold}
}

// PlannedAction is one card in a turn plan
type PlannedAction struct {
	Play    CardPlay  `json:"play"`
	Card    game.Card `json:"card"`
	Details []string  `json:"details,omitempty"`
}

// TurnPlan is the sequence of cards the AI intends to play this turn
type TurnPlan struct {
	Actions         []PlannedAction `json:"actions"`
	SequenceDetails []string        `json:"sequenceDetails"`
	EvaluationScore float64         `json:"evaluationScore"`
}

// FormatEvaluationScore renders an overall score as a signed percentage
func FormatEvaluationScore(score float64) string {
	if !finite(score) {
		return "Strategic evaluation score unavailable."
	}
	return fmt.Sprintf("Strategic evaluation score: %+d.", int(math.Round(score*100)))
}

// PlanTurn picks up to MaxActions cards, re-deciding after each one against
// the remaining hand and IP. It stops once the best play falls below
// PriorityThreshold. The snapshot is not modified.
func (e *Engine) PlanTurn(s *game.Snapshot, opts PlanOptions) TurnPlan {
	if s == nil || len(s.Hand) == 0 {
		return TurnPlan{}
	}
	if opts.MaxActions <= 0 {
		opts.MaxActions = DefaultMaxActions
	}

	if e.personality.deceptive() {
		e.deception.observe(s)
	}

	score := e.Evaluate(s).OverallScore
	plan := TurnPlan{
		EvaluationScore: score,
		SequenceDetails: []string{FormatEvaluationScore(score)},
	}

	working := s.Clone()
	var highlights []string
	attempted := map[string]bool{}

	for len(plan.Actions) < opts.MaxActions {
		view := working.Clone()
		view.Hand = slices.DeleteFunc(view.Hand, func(c game.Card) bool { return attempted[c.ID] })
		if len(view.Hand) == 0 {
			break
		}

		play := e.decide(view, false)
		if play == nil || play.Priority < opts.PriorityThreshold {
			break
		}

		idx := slices.IndexFunc(working.Hand, func(c game.Card) bool { return c.ID == play.CardID })
		if idx < 0 {
			attempted[play.CardID] = true
			continue
		}
		card := game.Resolve(e.base.moves.catalog, working.Hand[idx])
		if card.Cost > working.AIIP {
			attempted[card.ID] = true
			continue
		}

		var details []string
		if len(play.Synergies) > 0 {
			descs := make([]string, 0, len(play.Synergies))
			for _, syn := range play.Synergies {
				descs = append(descs, syn.Description)
				if !slices.Contains(highlights, syn.Description) {
					highlights = append(highlights, syn.Description)
				}
			}
			details = append(details, "AI Synergy Bonus: "+strings.Join(descs, ", "))
		}
		if play.DeceptionValue > 0 {
			details = append(details, fmt.Sprintf("Deception tactics engaged (%d%% intensity)", int(math.Round(play.DeceptionValue*100))))
		}
		if play.ThreatResponse {
			details = append(details, "Countering recent player action.")
		}

		plan.Actions = append(plan.Actions, PlannedAction{Play: *play, Card: card, Details: details})

		working.Hand = slices.Delete(working.Hand, idx, idx+1)
		working.AIIP -= card.Cost
		working.PlaysThisRound = append(working.PlaysThisRound, game.PlayRecord{
			Player:      game.ActorAI,
			Card:        card,
			TargetState: play.TargetState,
		})
		clear(attempted)
	}

	if len(plan.Actions) > 0 && len(highlights) > 0 {
		plan.SequenceDetails = append(plan.SequenceDetails, "Turn synergies: "+strings.Join(highlights, ", "))
	}

	e.logger.Debug("Turn planned", "actions", len(plan.Actions), "score", score)
	return plan
}
