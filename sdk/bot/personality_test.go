package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalityTraitsInRange(t *testing.T) {
	for _, d := range Difficulties {
		t.Run(string(d), func(t *testing.T) {
			for _, p := range []Personality{PersonalityFor(d), newTestEngine(t, d).Personality()} {
				for name, v := range map[string]float64{
					"aggressiveness": p.Aggressiveness,
					"defensiveness":  p.Defensiveness,
					"territorial":    p.Territorial,
					"economical":     p.Economical,
					"riskTolerance":  p.RiskTolerance,
				} {
					assert.GreaterOrEqual(t, v, 0.0, name)
					assert.LessOrEqual(t, v, 1.0, name)
				}
				assert.Contains(t, []int{1, 2, 3, 4}, p.PlanningDepth)
				assert.Equal(t, d, p.Difficulty)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", Easy, false},
		{" Legendary ", Legendary, false},
		{"HARD", Hard, false},
		{"", "", true},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDifficulty(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPresetProfiles(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		depth      int
		rollouts   int
		iterations int
		randomness float64
		searches   bool
	}{
		{Easy, 1, 0, 500, 0.5, false},
		{Medium, 2, 0, 1000, 0.25, false},
		{Hard, 3, 0, 1500, 0.1, true},
		{Legendary, 4, 2000, 2000, 0.02, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			prof := DefaultPreset(tt.difficulty).Profile()
			assert.Equal(t, tt.depth, prof.PlanningDepth)
			assert.Equal(t, tt.rollouts, prof.Rollouts)
			assert.Equal(t, tt.iterations, prof.Iterations())
			assert.InDelta(t, tt.randomness, prof.Randomness, 1e-12)
			assert.Equal(t, tt.searches, prof.Searches())
		})
	}
}

func TestLegendaryEngine(t *testing.T) {
	e := newTestEngine(t, Legendary)
	assert.Equal(t, 4, e.Personality().PlanningDepth)
	assert.InDelta(t, 0.02, e.Jitter(), 1e-12)
	assert.Equal(t, "Shadow Director", e.Personality().Name)
	assert.InDelta(t, 0.1*0.3, e.deception.misdirectionLevel, 1e-12)
}

func TestProfileClamping(t *testing.T) {
	p := Preset{LookaheadDepth: 9, RolloutsPerBranch: 1, BeamWidth: 0, Randomness: 3, Aggression: 2}.Profile()
	assert.Equal(t, 4, p.PlanningDepth)
	assert.Equal(t, 8, p.Rollouts, "beam width below 1 counts as 1")
	assert.Equal(t, minIterations, p.Iterations())
	assert.Equal(t, 1.0, p.Randomness)
	assert.Equal(t, 1.0, p.Aggression)
}

func TestPresetValidate(t *testing.T) {
	assert.NoError(t, DefaultPreset(Hard).Validate())
	assert.Error(t, Preset{Randomness: -0.1}.Validate())

	_, err := New(Hard, WithPreset(Preset{BeamWidth: -1}), WithLogger(discardLogger()))
	assert.Error(t, err)
}

func TestPresetOverridesTraits(t *testing.T) {
	preset := DefaultPreset(Easy)
	preset.Aggression = 0.9
	preset.RiskTolerance = 0.6

	e := newTestEngine(t, Easy, WithPreset(preset))
	assert.Equal(t, 0.9, e.Personality().Aggressiveness)
	assert.Equal(t, 0.6, e.Personality().RiskTolerance)
	assert.Equal(t, PersonalityFor(Easy).Territorial, e.Personality().Territorial)
}
