package bot

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/shadowgov/sdk/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("impossible", WithLogger(discardLogger()))
	assert.Error(t, err)

	_, err = New(Hard, WithTimeBudget(-time.Second), WithLogger(discardLogger()))
	assert.Error(t, err)
}

func TestStrategistByDepth(t *testing.T) {
	for _, d := range Difficulties {
		e := newTestEngine(t, d)
		_, searches := e.strategist.(*searcher)
		assert.Equal(t, e.Profile().Searches(), searches, string(d))
	}
}

func TestSelectOptimalPlayEmptyHand(t *testing.T) {
	for _, d := range Difficulties {
		e := newTestEngine(t, d)
		assert.Nil(t, e.SelectOptimalPlay(nil))
		assert.Nil(t, e.SelectOptimalPlay(&game.Snapshot{Truth: 50}))

		broke := midgameSnapshot()
		broke.AIIP = 1
		assert.Nil(t, e.SelectOptimalPlay(broke), string(d))
	}
}

func TestDecisionTimingUsesClock(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	e := newTestEngine(t, Medium, WithLogger(logger), WithClock(quartz.NewMock(t)))

	require.NotNil(t, e.SelectOptimalPlay(midgameSnapshot()))
	assert.Contains(t, buf.String(), "Decision made")
	assert.Contains(t, buf.String(), "elapsed=0s")
}

func TestSelectOptimalPlayIsAffordable(t *testing.T) {
	for _, d := range Difficulties {
		t.Run(string(d), func(t *testing.T) {
			s := midgameSnapshot()
			e := newTestEngine(t, d)
			play := e.SelectOptimalPlay(s)
			require.NotNil(t, play)

			var card game.Card
			for _, c := range s.Hand {
				if c.ID == play.CardID {
					card = c
				}
			}
			require.NotEmpty(t, card.ID, "chosen card must be in hand")
			assert.LessOrEqual(t, card.Cost, s.AIIP)
			if card.Type == game.CardZone {
				idx := s.StateByID(play.TargetState)
				require.GreaterOrEqual(t, idx, 0)
				assert.NotEqual(t, game.OwnerAI, s.States[idx].Owner)
			}
			assert.NotEmpty(t, play.Reasoning)
		})
	}
}

func TestSeededEnginesAreDeterministic(t *testing.T) {
	for _, d := range []Difficulty{Easy, Hard} {
		t.Run(string(d), func(t *testing.T) {
			a := newTestEngine(t, d, WithSeed(7))
			b := newTestEngine(t, d, WithSeed(7))

			assert.Equal(t, a.RankPlays(midgameSnapshot()), b.RankPlays(midgameSnapshot()))
			assert.Equal(t, a.SelectOptimalPlay(midgameSnapshot()), b.SelectOptimalPlay(midgameSnapshot()))
		})
	}
}

func TestZeroRandomnessRanksByPriority(t *testing.T) {
	preset := DefaultPreset(Medium)
	preset.Randomness = 0
	e := newTestEngine(t, Medium, WithPreset(preset))

	ranked := e.RankPlays(midgameSnapshot())
	require.NotEmpty(t, ranked)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Priority, ranked[i].Priority)
	}
	assert.Equal(t, ranked[0], *e.SelectOptimalPlay(midgameSnapshot()))
}

func TestDecisionsObservePlayerPattern(t *testing.T) {
	s := midgameSnapshot()
	s.PlaysThisRound = []game.PlayRecord{
		{Player: game.ActorHuman, Card: game.Card{Type: game.CardZone}, TargetState: "TX"},
		{Player: game.ActorHuman, Card: game.Card{Type: game.CardZone}, TargetState: "OH"},
	}

	hard := newTestEngine(t, Hard)
	hard.SelectOptimalPlay(s)
	assert.Equal(t, []string{PatternTerritorialFocus}, hard.deception.playerPattern)

	medium := newTestEngine(t, Medium)
	medium.SelectOptimalPlay(s)
	assert.Empty(t, medium.deception.playerPattern)
}

func TestStrategicAssessment(t *testing.T) {
	s := midgameSnapshot()

	easy := newTestEngine(t, Easy).StrategicAssessment(s)
	assert.True(t, strings.HasPrefix(easy, "Intern Agent Analysis: "), easy)
	assert.NotContains(t, easy, "Deception level")

	hard := newTestEngine(t, Hard).StrategicAssessment(s)
	assert.True(t, strings.HasPrefix(hard, "Senior Handler Analysis: "), hard)
	assert.Contains(t, hard, "Deception level: 9%.")
	assert.Contains(t, hard, "Player pattern: mixed.")
	assert.NotContains(t, hard, "psychological operations")
	assert.Equal(t, strings.TrimSpace(hard), hard)

	losing := &game.Snapshot{Truth: 95, PlayerIP: 250, AIFaction: game.FactionGovernment, States: statesWithOwners(0, 8, 2)}
	grim := newTestEngine(t, Legendary).StrategicAssessment(losing)
	assert.Contains(t, grim, "Behind in multiple areas.")
	assert.Contains(t, grim, "HIGH THREAT DETECTED!")
	assert.Contains(t, grim, "Need more territory.")

	truthSurge := &game.Snapshot{Truth: 90, AIFaction: game.FactionGovernment}
	assert.Contains(t, newTestEngine(t, Medium).StrategicAssessment(truthSurge), "HIGH THREAT DETECTED!")
}

func TestFormatEvaluationScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.42, "Strategic evaluation score: +42."},
		{-0.051, "Strategic evaluation score: -5."},
		{0, "Strategic evaluation score: +0."},
		{math.NaN(), "Strategic evaluation score unavailable."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatEvaluationScore(tt.score))
	}
}

func TestPlanTurn(t *testing.T) {
	for _, d := range Difficulties {
		t.Run(string(d), func(t *testing.T) {
			s := midgameSnapshot()
			before := s.Clone()
			e := newTestEngine(t, d)

			plan := e.PlanTurn(s, DefaultPlanOptions())
			assert.Equal(t, before, s, "planning must not mutate the snapshot")
			assert.LessOrEqual(t, len(plan.Actions), DefaultMaxActions)
			require.NotEmpty(t, plan.SequenceDetails)
			assert.Equal(t, FormatEvaluationScore(plan.EvaluationScore), plan.SequenceDetails[0])

			spent := 0
			seen := map[string]bool{}
			for _, a := range plan.Actions {
				assert.False(t, seen[a.Card.ID], "card %s planned twice", a.Card.ID)
				seen[a.Card.ID] = true
				spent += a.Card.Cost
				assert.GreaterOrEqual(t, a.Play.Priority, DefaultPriorityThreshold)
			}
			assert.LessOrEqual(t, spent, s.AIIP)
		})
	}
}

func TestPlanTurnLimits(t *testing.T) {
	e := newTestEngine(t, Medium)
	s := midgameSnapshot()

	one := e.PlanTurn(s, PlanOptions{MaxActions: 1, PriorityThreshold: 0})
	assert.Len(t, one.Actions, 1)

	none := e.PlanTurn(s, PlanOptions{MaxActions: 3, PriorityThreshold: 100})
	assert.Empty(t, none.Actions)
	assert.Len(t, none.SequenceDetails, 1)

	assert.Equal(t, TurnPlan{}, e.PlanTurn(&game.Snapshot{}, DefaultPlanOptions()))
}

func TestPlanTurnReportsSynergies(t *testing.T) {
	s := &game.Snapshot{
		Truth: 50,
		AIIP:  10,
		Hand: []game.Card{
			{ID: "surveillance-network", Type: game.CardZone, Cost: 2, Effects: game.Effects{PressureDelta: 1}},
			{ID: "data-mining-operation", Type: game.CardZone, Cost: 2, Effects: game.Effects{PressureDelta: 1}},
		},
		States: []game.State{{ID: "KS", Defense: 1, Owner: game.OwnerNeutral}},
	}
	e := newTestEngine(t, Medium)

	plan := e.PlanTurn(s, PlanOptions{MaxActions: 1})
	require.Len(t, plan.Actions, 1)
	assert.Contains(t, plan.Actions[0].Details, "AI Synergy Bonus: Intelligence gathering combo")
	assert.Contains(t, plan.SequenceDetails, "Turn synergies: Intelligence gathering combo")
}
