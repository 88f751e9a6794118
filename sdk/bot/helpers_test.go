package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/shadowgov/sdk/game"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestEngine(t *testing.T, d Difficulty, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(discardLogger()), WithSeed(42)}, opts...)
	e, err := New(d, opts...)
	if err != nil {
		t.Fatalf("New(%s): %v", d, err)
	}
	return e
}

// midgameSnapshot is a mid-game position with a mixed hand
func midgameSnapshot() *game.Snapshot {
	return &game.Snapshot{
		Round:            4,
		Turn:             7,
		Truth:            55,
		AIFaction:        game.FactionGovernment,
		AIIP:             12,
		PlayerIP:         18,
		OpponentHandSize: 5,
		Hand: []game.Card{
			{ID: "surveillance-network", Type: game.CardZone, Cost: 4, Effects: game.Effects{PressureDelta: 2}},
			{ID: "data-mining-operation", Type: game.CardZone, Cost: 3, Effects: game.Effects{PressureDelta: 1}},
			{ID: "cover-story", Type: game.CardMedia, Cost: 3, Effects: game.Effects{TruthDelta: -8}},
			{ID: "budget-audit", Type: game.CardAttack, Cost: 5, Effects: game.Effects{OpponentIPDelta: 4}},
			{ID: "counter-intelligence", Type: game.CardDefensive, Cost: 2, Tags: []string{game.TagCounter}},
			{ID: "black-budget", Type: game.CardAttack, Cost: 40, Effects: game.Effects{OpponentIPDelta: 20}},
		},
		States: []game.State{
			{ID: "CA", Name: "California", BaseIP: 5, Defense: 4, Pressure: 1, Owner: game.OwnerPlayer},
			{ID: "TX", Name: "Texas", BaseIP: 4, Defense: 3, Owner: game.OwnerNeutral},
			{ID: "NY", Name: "New York", BaseIP: 4, Defense: 3, Pressure: 2, Owner: game.OwnerAI},
			{ID: "NV", Name: "Nevada", BaseIP: 1, Defense: 2, Owner: game.OwnerAI},
			{ID: "OH", Name: "Ohio", BaseIP: 2, Defense: 2, Pressure: 1, Owner: game.OwnerNeutral},
			{ID: "WA", Name: "Washington", BaseIP: 2, Defense: 2, Owner: game.OwnerPlayer},
			{ID: "KS", Name: "Kansas", BaseIP: 1, Defense: 1, Owner: game.OwnerNeutral},
		},
		AIAgenda: &game.Agenda{ID: "media-blackout", Progress: 2, Target: 5},
		PlaysThisRound: []game.PlayRecord{
			{Player: game.ActorHuman, Card: game.Card{ID: "leak", Type: game.CardMedia}},
			{Player: game.ActorAI, Card: game.Card{ID: "spin", Type: game.CardMedia}},
			{Player: game.ActorHuman, Card: game.Card{ID: "raid", Type: game.CardAttack}},
		},
	}
}
