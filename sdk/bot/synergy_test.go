package bot

import (
	"testing"

	"github.com/lox/shadowgov/sdk/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSynergiesNeedsPartnerInHand(t *testing.T) {
	hand := []game.Card{{ID: "social-media-campaign"}, {ID: "viral-conspiracy"}}

	got := findSynergies(synergyTable, "viral-conspiracy", hand)
	require.Len(t, got, 1)
	assert.Equal(t, SynergyCombo, got[0].Type)
	assert.Equal(t, 0.3, got[0].Bonus)

	assert.Empty(t, findSynergies(synergyTable, "viral-conspiracy", hand[1:]))
	assert.Empty(t, findSynergies(synergyTable, "budget-audit", hand))
}

func TestSynergiesStack(t *testing.T) {
	table := []Synergy{
		{CardIDs: [2]string{"a", "b"}, Type: SynergyCombo, Bonus: 0.3},
		{CardIDs: [2]string{"c", "a"}, Type: SynergyCounter, Bonus: 0.35},
		{CardIDs: [2]string{"a", "missing"}, Type: SynergySequence, Bonus: 0.4},
	}
	hand := []game.Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := findSynergies(table, "a", hand)
	require.Len(t, got, 2)
	assert.InDelta(t, 0.65, synergyBonus(got), 1e-12)
}

func TestEnhanceAddsSynergyBonusOnce(t *testing.T) {
	s := &game.Snapshot{
		AIIP: 20,
		Hand: []game.Card{
			{ID: "surveillance-network", Type: game.CardZone, Cost: 1},
			{ID: "data-mining-operation", Type: game.CardZone, Cost: 1},
		},
		States: []game.State{{ID: "KS", Defense: 3, Owner: game.OwnerNeutral}},
	}
	e := newTestEngine(t, Easy)
	ev := e.Evaluate(s)

	for _, play := range e.GenerateMoves(s) {
		enhanced := e.base.enhance(play, s, ev)
		require.Len(t, enhanced.Synergies, 1, play.CardID)
		assert.InDelta(t, 0.25, enhanced.Priority-play.Priority, 1e-12, play.CardID)
		assert.Contains(t, enhanced.Reasoning, "Intelligence gathering combo")
	}
}
