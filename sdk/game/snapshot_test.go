package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Truth:     50,
		AIFaction: FactionGovernment,
		AIIP:      10,
		PlayerIP:  5,
		Hand: []Card{
			{ID: "zone-1", Type: CardZone, Cost: 2, Tags: []string{"alpha"}},
		},
		States: []State{
			{ID: "CA", Defense: 3, Owner: OwnerAI},
			{ID: "NY", Defense: 2, Pressure: 1, Owner: OwnerPlayer},
			{ID: "TX", Defense: 2, Owner: ""},
		},
		AIAgenda: &Agenda{ID: "a", Progress: 1, Target: 4},
		PlaysThisRound: []PlayRecord{
			{Player: ActorHuman, Card: Card{ID: "atk", Type: CardAttack}},
			{Player: ActorAI, Card: Card{ID: "zone-0", Type: CardZone}, TargetState: "TX"},
			{Player: ActorHuman, Card: Card{ID: "zone-x", Type: CardZone}, TargetState: "CA"},
		},
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := sampleSnapshot()
	c := orig.Clone()

	c.Hand[0].Tags[0] = "mutated"
	c.States[0].Owner = OwnerPlayer
	c.AIAgenda.Progress = 99
	c.PlaysThisRound[0].Card.ID = "changed"

	assert.Equal(t, "alpha", orig.Hand[0].Tags[0])
	assert.Equal(t, OwnerAI, orig.States[0].Owner)
	assert.Equal(t, 1, orig.AIAgenda.Progress)
	assert.Equal(t, "atk", orig.PlaysThisRound[0].Card.ID)
}

func TestCloneNil(t *testing.T) {
	var s *Snapshot
	c := s.Clone()
	require.NotNil(t, c)
	assert.Empty(t, c.States)
}

func TestOwnershipQueries(t *testing.T) {
	s := sampleSnapshot()

	assert.Equal(t, []string{"CA"}, s.StatesOwnedBy(OwnerAI))
	assert.Equal(t, 1, s.CountOwned(OwnerPlayer))
	assert.Equal(t, 1, s.CountOwned(OwnerNeutral), "empty owner counts as neutral")
	assert.Equal(t, 1, s.StateByID("NY"))
	assert.Equal(t, -1, s.StateByID("ZZ"))
	assert.Equal(t, 1, s.States[1].Remaining())
}

func TestPlayHistory(t *testing.T) {
	s := sampleSnapshot()

	assert.Len(t, s.PlaysBy(ActorHuman), 2)
	assert.Equal(t, 1, s.CountPlays(ActorHuman, CardAttack))
	assert.Equal(t, 1, s.CountPlays(ActorAI, ""))

	last, ok := s.LastPlayBy(ActorHuman)
	require.True(t, ok)
	assert.Equal(t, "CA", last.TargetState)

	_, ok = (&Snapshot{}).LastPlayBy(ActorAI)
	assert.False(t, ok)
}
