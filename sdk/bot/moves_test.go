package bot

import (
	"testing"

	"github.com/lox/shadowgov/sdk/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatPersonality zeroes every trait so priorities reduce to fixed bonuses
func flatPersonality() Personality {
	return Personality{Name: "flat", Difficulty: Medium, PlanningDepth: 2}
}

func testGenerator(p Personality, cat game.Catalog) moveGenerator {
	return moveGenerator{personality: p, tuning: DefaultTuning(), catalog: cat}
}

func TestZonePlaysCoverEveryNonAIState(t *testing.T) {
	s := midgameSnapshot()
	for _, d := range Difficulties {
		e := newTestEngine(t, d)
		for _, c := range s.Hand {
			if c.Type != game.CardZone {
				continue
			}
			plays := e.PlaysFor(c, s)
			assert.Len(t, plays, len(s.States)-s.CountOwned(game.OwnerAI), "%s/%s", d, c.ID)
			for _, p := range plays {
				idx := s.StateByID(p.TargetState)
				require.GreaterOrEqual(t, idx, 0)
				assert.NotEqual(t, game.OwnerAI, s.States[idx].Owner)
			}
		}
	}
}

func TestZoneLethalCapture(t *testing.T) {
	s := &game.Snapshot{
		AIIP:   10,
		States: []game.State{{ID: "ZZ", Defense: 2, Owner: game.OwnerNeutral}},
	}
	g := testGenerator(flatPersonality(), nil)
	ev := evaluator{personality: flatPersonality(), tuning: DefaultTuning()}.evaluate(s)

	lethal := g.generate(game.Card{ID: "z2", Type: game.CardZone, Effects: game.Effects{PressureDelta: 2}}, s, ev)
	require.Len(t, lethal, 1)
	// neutral 0.1 + lethal 0.7
	assert.InDelta(t, 0.8, lethal[0].Priority, 1e-12)
	assert.Contains(t, lethal[0].Reasoning, "captures ZZ this play")

	nearly := g.generate(game.Card{ID: "z1", Type: game.CardZone, Effects: game.Effects{PressureDelta: 1}}, s, ev)
	require.Len(t, nearly, 1)
	assert.InDelta(t, 0.6, nearly[0].Priority, 1e-12)
}

func TestZonePriorityComponents(t *testing.T) {
	p := flatPersonality()
	p.Territorial = 0.5
	p.Aggressiveness = 1
	s := &game.Snapshot{
		AIIP: 10,
		States: []game.State{
			{ID: "CA", BaseIP: 5, Defense: 10, Owner: game.OwnerPlayer},
		},
	}
	g := testGenerator(p, nil)
	ev := evaluator{personality: p, tuning: DefaultTuning()}.evaluate(s)

	plays := g.generate(game.Card{ID: "z", Type: game.CardZone, Effects: game.Effects{PressureDelta: 2}}, s, ev)
	require.Len(t, plays, 1)

	want := 0.5 + // territorial
		2*0.1*0.5 + // faction goal: pressure
		5*0.04*1.5 + // base IP
		0.3 + // strategic and coastal
		0.3 + // player owned, full aggression
		2.0/10*0.4 // partial capture
	assert.InDelta(t, want, plays[0].Priority, 1e-12)
}

func TestMediaTruthCorrection(t *testing.T) {
	p := flatPersonality()
	s := &game.Snapshot{Truth: 70, AIFaction: game.FactionGovernment}
	g := testGenerator(p, nil)
	ev := evaluator{personality: p, tuning: DefaultTuning()}.evaluate(s)

	down := g.generate(game.Card{ID: "m", Type: game.CardMedia, Effects: game.Effects{TruthDelta: -10}}, s, ev)
	up := g.generate(game.Card{ID: "m", Type: game.CardMedia, Effects: game.Effects{TruthDelta: 10}}, s, ev)
	require.Len(t, down, 1)
	require.Len(t, up, 1)

	// Base 0.6 for a non-territorial personality; faction bonus is +/-0.3
	assert.InDelta(t, 0.6-0.3, up[0].Priority, 1e-12)
	// Correction is capped at 0.5 once the meter is far from the goal
	assert.InDelta(t, 0.6+0.3+0.5, down[0].Priority, 1e-9)
}

func TestAttackDampenedWhileAhead(t *testing.T) {
	p := flatPersonality()
	p.Aggressiveness = 1
	g := testGenerator(p, nil)
	card := game.Card{ID: "a", Type: game.CardAttack}

	ahead := g.attackPlay(card, &game.Snapshot{}, Evaluation{OverallScore: 0.5})
	even := g.attackPlay(card, &game.Snapshot{}, Evaluation{OverallScore: 0})
	behind := g.attackPlay(card, &game.Snapshot{}, Evaluation{OverallScore: -0.5})

	assert.InDelta(t, 1.0, even.Priority, 1e-12)
	assert.InDelta(t, 0.7, ahead.Priority, 1e-12)
	assert.InDelta(t, 1.3, behind.Priority, 1e-12)
}

func TestDefensiveReactiveBonusCapped(t *testing.T) {
	p := flatPersonality()
	g := testGenerator(p, nil)
	s := &game.Snapshot{}
	for i := 0; i < 6; i++ {
		s.PlaysThisRound = append(s.PlaysThisRound, game.PlayRecord{Player: game.ActorHuman, Card: game.Card{Type: game.CardAttack}})
	}
	play := g.defensivePlay(game.Card{ID: "d", Type: game.CardDefensive}, s, Evaluation{})
	assert.InDelta(t, 0.8, play.Priority, 1e-12)
}

func TestCatalogMissFallsBackToHandCard(t *testing.T) {
	cat := game.NewMapCatalog(game.Card{ID: "known", Type: game.CardAttack, Cost: 1})
	s := midgameSnapshot()
	e := newTestEngine(t, Medium, WithCatalog(cat))

	plays := e.PlaysFor(game.Card{ID: "unknown", Type: game.CardMedia, Cost: 1}, s)
	require.Len(t, plays, 1)
	assert.Equal(t, game.CardMedia, plays[0].CardType)

	// Catalog metadata wins over the in-hand copy
	plays = e.PlaysFor(game.Card{ID: "known", Type: game.CardMedia}, s)
	require.Len(t, plays, 1)
	assert.Equal(t, game.CardAttack, plays[0].CardType)
}

func TestGenerateMovesSkipsUnaffordable(t *testing.T) {
	s := midgameSnapshot()
	e := newTestEngine(t, Medium)
	for _, p := range e.GenerateMoves(s) {
		assert.NotEqual(t, "black-budget", p.CardID)
		assert.True(t, finite(p.Priority))
	}
}

func TestUnknownCardTypeHasNoPlays(t *testing.T) {
	e := newTestEngine(t, Easy)
	assert.Empty(t, e.PlaysFor(game.Card{ID: "odd", Type: "RITUAL"}, midgameSnapshot()))
}
