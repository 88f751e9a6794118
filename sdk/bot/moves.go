package bot

import (
	"math"
	"slices"

	"github.com/lox/shadowgov/sdk/game"
)

// CardPlay is one candidate action
type CardPlay struct {
	CardID         string        `json:"cardId"`
	CardType       game.CardType `json:"cardType"`
	TargetState    string        `json:"targetState,omitempty"`
	Priority       float64       `json:"priority"`
	Reasoning      string        `json:"reasoning"`
	Synergies      []Synergy     `json:"synergies,omitempty"`
	DeceptionValue float64       `json:"deceptionValue,omitempty"`
	ThreatResponse bool          `json:"threatResponse,omitempty"`

	card game.Card
}

// Card returns the resolved card metadata the play was built from
func (p CardPlay) Card() game.Card { return p.card }

var (
	strategicStates = []string{"CA", "TX", "NY", "FL", "DC", "VA", "IL"}
	coastalStates   = []string{"CA", "FL", "NY", "TX", "WA", "ME", "OR", "NC", "SC", "GA", "VA", "MD"}
)

func locationBonus(stateID string) float64 {
	bonus := 0.0
	if slices.Contains(strategicStates, stateID) {
		bonus += 0.2
	}
	if slices.Contains(coastalStates, stateID) {
		bonus += 0.1
	}
	return bonus
}

type moveGenerator struct {
	personality Personality
	tuning      Tuning
	catalog     game.Catalog
}

// generate enumerates the plays for one card regardless of affordability
func (g moveGenerator) generate(card game.Card, s *game.Snapshot, ev Evaluation) []CardPlay {
	if s == nil {
		s = &game.Snapshot{}
	}
	card = game.Resolve(g.catalog, card)

	switch card.Type {
	case game.CardZone:
		return g.zonePlays(card, s, ev)
	case game.CardMedia:
		return []CardPlay{g.mediaPlay(card, s, ev)}
	case game.CardAttack:
		return []CardPlay{g.attackPlay(card, s, ev)}
	case game.CardDefensive:
		return []CardPlay{g.defensivePlay(card, s, ev)}
	default:
		return nil
	}
}

// generateAll enumerates plays for every affordable card in hand
func (g moveGenerator) generateAll(s *game.Snapshot, ev Evaluation) []CardPlay {
	if s == nil {
		return nil
	}
	var plays []CardPlay
	for _, c := range s.Hand {
		card := game.Resolve(g.catalog, c)
		if card.Cost > s.AIIP {
			continue
		}
		plays = append(plays, g.generate(card, s, ev)...)
	}
	return plays
}

// factionGoalBonus rewards effects that move the game toward the AI's goals
func (g moveGenerator) factionGoalBonus(card game.Card, s *game.Snapshot) float64 {
	p := g.personality
	fx := card.Effects

	aligned := float64(fx.TruthDelta)
	if aiFaction(s) == game.FactionGovernment {
		aligned = -aligned
	}

	return clamp(aligned*0.03, -0.3, 0.45) +
		float64(fx.PressureDelta)*0.1*p.Territorial +
		float64(fx.IPDelta)*0.03*p.Economical +
		float64(fx.OpponentIPDelta)*0.02*p.Aggressiveness +
		float64(fx.DiscardOpponent)*0.1*p.Defensiveness
}

func (g moveGenerator) recentAIPlays(s *game.Snapshot, t game.CardType) float64 {
	return float64(s.CountPlays(game.ActorAI, t))
}

// zonePressure is the pressure a zone card applies; untagged zone cards
// push by one.
func zonePressure(card game.Card) float64 {
	if card.Effects.PressureDelta > 0 {
		return float64(card.Effects.PressureDelta)
	}
	return 1
}

func findInsight(list []CaptureInsight, stateID string) (CaptureInsight, bool) {
	for _, ci := range list {
		if ci.StateID == stateID {
			return ci, true
		}
	}
	return CaptureInsight{}, false
}

func (g moveGenerator) zonePlays(card game.Card, s *game.Snapshot, ev Evaluation) []CardPlay {
	p := g.personality
	z := g.tuning.Zone

	common := p.Territorial*z.Base +
		0.12*g.recentAIPlays(s, game.CardZone)*z.Chain +
		g.factionGoalBonus(card, s)*z.Faction

	var plays []CardPlay
	for _, st := range s.States {
		owner := game.OwnerOf(st)
		if owner == game.OwnerAI {
			continue
		}

		var why thinking
		priority := common
		priority += float64(st.BaseIP) * 0.04 * (1 + p.Territorial) * z.HighValue

		if loc := locationBonus(st.ID); loc > 0 {
			priority += loc * z.Location
			why.add("%s is a key location", st.ID)
		}

		switch owner {
		case game.OwnerPlayer:
			priority += 0.3 * p.Aggressiveness * z.OwnerAggression
			why.add("contest opponent-held %s", st.ID)
		default:
			priority += 0.1 * z.SpecialBonus
			why.add("expand into neutral %s", st.ID)
		}

		if ci, ok := findInsight(ev.Pressure.AITargets, st.ID); ok {
			pd := zonePressure(card)
			switch {
			case pd >= ci.Remaining:
				priority += 0.7 * z.SignalCapture
				why.add("captures %s this play", st.ID)
			case ci.Remaining-pd <= 1:
				priority += 0.5 * z.SignalCapture
				why.add("leaves %s one push from capture", st.ID)
			default:
				priority += safeDiv(pd, float64(ci.Defense)) * 0.4 * z.SignalCapture
			}
		}

		if ev.Danger.OpponentAggression > 0.6 && owner == game.OwnerPlayer {
			priority += 0.1 * z.DangerResponse
			why.add("punish an aggressive opponent")
		}

		plays = append(plays, CardPlay{
			CardID:      card.ID,
			CardType:    card.Type,
			TargetState: st.ID,
			Priority:    orZero(priority),
			Reasoning:   why.String(),
			card:        card,
		})
	}
	return plays
}

func (g moveGenerator) mediaPlay(card game.Card, s *game.Snapshot, ev Evaluation) CardPlay {
	p := g.personality
	m := g.tuning.Media
	fx := card.Effects
	var why thinking

	priority := (1-p.Territorial)*0.6*m.Base +
		0.1*g.recentAIPlays(s, game.CardMedia)*m.Chain +
		g.factionGoalBonus(card, s)*m.Faction

	td := float64(fx.TruthDelta)
	if td != 0 && sign(td) == sign(ev.TruthObjective) {
		priority += math.Min(0.5, math.Abs(ev.TruthObjective)*0.5+math.Abs(td)*0.01) * m.TruthObjective
		why.add("pushes truth toward %.0f", desiredTruth(s))
	}
	if ev.ResourceAdvantage < -0.2 && fx.IPDelta > 0 {
		priority += 0.2 * m.ResourceSwing
		why.add("recovers influence while behind")
	}
	if fx.DiscardOpponent > 0 {
		priority += float64(fx.DiscardOpponent) * 0.12 * ev.OpponentHandThreat * m.Discard
		why.add("strips the opponent's hand")
	}
	if fx.Draw > 0 {
		priority += float64(fx.Draw) * 0.05 * m.Draw
	}
	if len(why.thoughts) == 0 {
		why.add("shape the narrative")
	}

	return CardPlay{CardID: card.ID, CardType: card.Type, Priority: orZero(priority), Reasoning: why.String(), card: card}
}

func (g moveGenerator) attackPlay(card game.Card, s *game.Snapshot, ev Evaluation) CardPlay {
	p := g.personality
	a := g.tuning.Attack
	fx := card.Effects
	var why thinking

	priority := p.Aggressiveness*a.Base +
		0.1*g.recentAIPlays(s, game.CardAttack)*a.Chain +
		g.factionGoalBonus(card, s)*a.Faction

	if ev.OverallScore < -0.1 {
		priority += 0.3 * a.Comeback
		why.add("need a comeback")
	}
	if ev.OpponentResourceThreat > 0.4 {
		priority += 0.2 * a.ResourceThreat
		why.add("opponent economy is dangerous")
	}
	if ev.Danger.OpponentAggression > 0.5 {
		priority += 0.1 * a.AggressionResponse
	}
	priority += float64(fx.OpponentIPDelta) / 6 * (0.8 + p.Aggressiveness) * a.IPDamage
	priority += float64(fx.DiscardOpponent) * 0.1 * (1 + ev.OpponentHandThreat) * a.Discard

	if ev.OverallScore > 0.3 {
		priority *= 1 - 0.3*a.AheadPenalty
		why.add("ahead, holding back")
	}
	if len(why.thoughts) == 0 {
		why.add("pressure the opponent")
	}

	return CardPlay{CardID: card.ID, CardType: card.Type, Priority: orZero(priority), Reasoning: why.String(), card: card}
}

func (g moveGenerator) defensivePlay(card game.Card, s *game.Snapshot, ev Evaluation) CardPlay {
	p := g.personality
	d := g.tuning.Defensive
	var why thinking

	priority := p.Defensiveness*d.Base +
		0.1*g.recentAIPlays(s, game.CardDefensive)*d.Chain +
		g.factionGoalBonus(card, s)*d.Faction

	if ev.ThreatLevel > 0.5 {
		priority += 0.4 * d.ThreatResponse
		why.add("high threat")
	}
	if ev.Danger.TruthCrisis > 0.3 {
		priority += math.Abs(float64(card.Effects.TruthDelta)) * 0.05 * d.TruthCrisis
		why.add("truth crisis")
	}
	if attacks := s.CountPlays(game.ActorHuman, game.CardAttack); attacks > 0 {
		priority += math.Min(0.8, 0.4+0.1*float64(attacks)) * d.RecentAttack
		why.add("answer %d recent attack(s)", attacks)
	}
	if len(ev.Danger.ImminentLoss) > 0 {
		priority += 0.3 * d.ImminentLoss
		why.add("%s about to fall", ev.Danger.ImminentLoss[0].StateID)
	}
	if len(why.thoughts) == 0 {
		why.add("fortify")
	}

	return CardPlay{CardID: card.ID, CardType: card.Type, Priority: orZero(priority), Reasoning: why.String(), card: card}
}
