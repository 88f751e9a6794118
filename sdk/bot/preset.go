package bot

import (
	"fmt"
	"math"
)

// Preset is the externally configurable shape of a tier
type Preset struct {
	LookaheadDepth    float64 `hcl:"lookahead_depth,optional" json:"lookaheadDepth"`
	RolloutsPerBranch float64 `hcl:"rollouts_per_branch,optional" json:"rolloutsPerBranch"`
	BeamWidth         float64 `hcl:"beam_width,optional" json:"beamWidth"`
	Randomness        float64 `hcl:"randomness,optional" json:"randomness"`
	Aggression        float64 `hcl:"aggression,optional" json:"aggression"`
	RiskTolerance     float64 `hcl:"risk_tolerance,optional" json:"riskTolerance"`
}

var presets = map[Difficulty]Preset{
	Easy:      {LookaheadDepth: 0, RolloutsPerBranch: 0, BeamWidth: 1, Randomness: 0.5, Aggression: 0.2, RiskTolerance: 0.2},
	Medium:    {LookaheadDepth: 1, RolloutsPerBranch: 0, BeamWidth: 2, Randomness: 0.25, Aggression: 0.5, RiskTolerance: 0.4},
	Hard:      {LookaheadDepth: 2, RolloutsPerBranch: 0, BeamWidth: 3, Randomness: 0.1, Aggression: 0.8, RiskTolerance: 0.3},
	Legendary: {LookaheadDepth: 3, RolloutsPerBranch: 50, BeamWidth: 5, Randomness: 0.02, Aggression: 1.0, RiskTolerance: 0.1},
}

// DefaultPreset returns the built-in preset for d
func DefaultPreset(d Difficulty) Preset {
	if p, ok := presets[d]; ok {
		return p
	}
	return presets[Medium]
}

// Validate checks that the preset can be mapped to a profile
func (p Preset) Validate() error {
	for name, v := range map[string]float64{
		"lookahead_depth":     p.LookaheadDepth,
		"rollouts_per_branch": p.RolloutsPerBranch,
		"beam_width":          p.BeamWidth,
		"randomness":          p.Randomness,
		"aggression":          p.Aggression,
		"risk_tolerance":      p.RiskTolerance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
		if v < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	return nil
}

// Profile is the internal form of a Preset
type Profile struct {
	PlanningDepth int
	Randomness    float64
	Aggression    float64
	RiskTolerance float64
	Rollouts      int
}

// Profile maps the preset to runtime parameters
func (p Preset) Profile() Profile {
	rollouts := 0
	if p.RolloutsPerBranch > 0 {
		rollouts = int(math.Round(p.RolloutsPerBranch * math.Max(1, p.BeamWidth) * 8))
	}
	return Profile{
		PlanningDepth: int(clamp(math.Round(p.LookaheadDepth+1), 1, 4)),
		Randomness:    clamp01(p.Randomness),
		Aggression:    clamp01(p.Aggression),
		RiskTolerance: clamp01(p.RiskTolerance),
		Rollouts:      rollouts,
	}
}

const (
	minIterations         = 200
	maxIterations         = 2000
	iterationsPerPlanStep = 500
)

// Iterations is the MCTS budget for this profile
func (p Profile) Iterations() int {
	n := p.PlanningDepth * iterationsPerPlanStep
	if p.Rollouts > 0 {
		n = p.Rollouts
	}
	return int(clamp(float64(n), minIterations, maxIterations))
}

// Searches reports whether decisions go through MCTS
func (p Profile) Searches() bool {
	return p.PlanningDepth >= 3
}
