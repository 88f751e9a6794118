package bot

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/shadowgov/sdk/game"
)

// RNG is the randomness source used for jitter and rollouts.
// *math/rand/v2.Rand satisfies it.
type RNG interface {
	Float64() float64
	IntN(n int) int
}

// Strategist is the capability bundle behind an Engine
type Strategist interface {
	// Evaluate scores the snapshot without mutating it
	Evaluate(s *game.Snapshot) Evaluation
	// GenerateMoves lists every affordable play with its base priority
	GenerateMoves(s *game.Snapshot, ev Evaluation) []CardPlay
	// SelectPlay picks the play to make, or nil when nothing is playable
	SelectPlay(s *game.Snapshot, ev Evaluation) *CardPlay
}

// heuristic ranks candidate plays directly
type heuristic struct {
	personality Personality
	randomness  float64
	aggression  float64
	rng         RNG
	eval        evaluator
	moves       moveGenerator
	synergies   []Synergy
	deception   *deceptionState
	logger      *log.Logger
}

var _ Strategist = (*heuristic)(nil)

func (h *heuristic) Evaluate(s *game.Snapshot) Evaluation {
	return h.eval.evaluate(s)
}

func (h *heuristic) GenerateMoves(s *game.Snapshot, ev Evaluation) []CardPlay {
	return h.moves.generateAll(s, ev)
}

// enhance layers synergy, deception and threat-response bonuses onto a play
func (h *heuristic) enhance(play CardPlay, s *game.Snapshot, ev Evaluation) CardPlay {
	play.Synergies = findSynergies(h.synergies, play.CardID, s.Hand)
	play.DeceptionValue = h.deception.value(h.personality, play, s, ev)
	play.ThreatResponse = isThreatResponse(play, s, ev, h.deception.catalog)

	why := thinking{thoughts: []string{play.Reasoning}}
	play.Priority += synergyBonus(play.Synergies)
	for _, syn := range play.Synergies {
		why.add("synergy: %s", syn.Description)
	}
	if h.personality.deceptive() && play.DeceptionValue > 0 {
		play.Priority += play.DeceptionValue * 0.2
		why.add("misdirection")
	}
	if play.ThreatResponse {
		play.Priority += 0.3
		why.add("counters recent threat")
	}
	// Presets above 0.5 aggression lean into attacks and away from defence
	lean := (h.aggression - 0.5) * 0.25
	switch play.CardType {
	case game.CardAttack:
		play.Priority += lean * h.moves.tuning.Attack.PresetAggression
	case game.CardDefensive:
		play.Priority -= lean * 0.6 * h.moves.tuning.Defensive.PresetAggression
	}
	play.Priority = orZero(play.Priority)
	play.Reasoning = why.String()
	return play
}

// rank returns enhanced plays ordered by priority plus a bounded jitter.
// Jitter is drawn once per play, in generation order, so a seeded RNG gives
// a reproducible ordering.
func (h *heuristic) rank(s *game.Snapshot, ev Evaluation) []CardPlay {
	plays := h.GenerateMoves(s, ev)
	if len(plays) == 0 {
		return nil
	}

	type scored struct {
		play  CardPlay
		score float64
	}
	ranked := make([]scored, len(plays))
	for i, p := range plays {
		p = h.enhance(p, s, ev)
		jitter := 0.0
		if h.randomness > 0 {
			jitter = h.rng.Float64() * h.randomness
		}
		ranked[i] = scored{play: p, score: p.Priority + jitter}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]CardPlay, len(ranked))
	for i, r := range ranked {
		out[i] = r.play
	}
	return out
}

func (h *heuristic) SelectPlay(s *game.Snapshot, ev Evaluation) *CardPlay {
	ranked := h.rank(s, ev)
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0]
	h.logger.Debug("Heuristic selection",
		"candidates", len(ranked),
		"chosen", best.CardID,
		"target", best.TargetState,
		"priority", best.Priority)
	return &best
}
