// Package bot implements the adaptive Shadow Government opponent: a
// heuristic evaluator, per-card-type move generation, a synergy and deception
// overlay and, for the top tiers, a Monte Carlo tree search.
package bot

import (
	"fmt"
	"strings"
)

// Difficulty is a skill tier
type Difficulty string

const (
	Easy      Difficulty = "easy"
	Medium    Difficulty = "medium"
	Hard      Difficulty = "hard"
	Legendary Difficulty = "legendary"
)

// Difficulties lists every tier from weakest to strongest
var Difficulties = []Difficulty{Easy, Medium, Hard, Legendary}

// ParseDifficulty converts a user supplied name to a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard, Legendary:
		return d, nil
	case "":
		return "", fmt.Errorf("difficulty is required")
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium, hard or legendary)", s)
	}
}

func (d Difficulty) String() string { return string(d) }

// Personality is the static trait vector for a tier. All traits are in [0,1].
type Personality struct {
	Name           string
	Description    string
	Difficulty     Difficulty
	Aggressiveness float64
	Defensiveness  float64
	Territorial    float64
	Economical     float64
	RiskTolerance  float64
	PlanningDepth  int // 1-4, gates deception and search
}

var personalities = map[Difficulty]Personality{
	Easy: {
		Name:           "Intern Agent",
		Description:    "New to the conspiracy, makes obvious mistakes",
		Difficulty:     Easy,
		Aggressiveness: 0.2,
		Defensiveness:  0.1,
		Territorial:    0.3,
		Economical:     0.5,
		RiskTolerance:  0.2,
		PlanningDepth:  1,
	},
	Medium: {
		Name:           "Field Operative",
		Description:    "Experienced agent with solid tactical understanding",
		Difficulty:     Medium,
		Aggressiveness: 0.5,
		Defensiveness:  0.5,
		Territorial:    0.5,
		Economical:     0.6,
		RiskTolerance:  0.4,
		PlanningDepth:  2,
	},
	Hard: {
		Name:           "Senior Handler",
		Description:    "Veteran strategist with deep understanding of the game",
		Difficulty:     Hard,
		Aggressiveness: 0.8,
		Defensiveness:  0.8,
		Territorial:    0.7,
		Economical:     0.7,
		RiskTolerance:  0.3,
		PlanningDepth:  3,
	},
	Legendary: {
		Name:           "Shadow Director",
		Description:    "Master manipulator who sees all angles",
		Difficulty:     Legendary,
		Aggressiveness: 1.0,
		Defensiveness:  0.95,
		Territorial:    0.85,
		Economical:     0.9,
		RiskTolerance:  0.1,
		PlanningDepth:  4,
	},
}

// PersonalityFor returns the built-in personality for d. Unknown tiers get
// the medium personality.
func PersonalityFor(d Difficulty) Personality {
	if p, ok := personalities[d]; ok {
		return p
	}
	return personalities[Medium]
}

// withProfile overlays the runtime profile onto the personality
func (p Personality) withProfile(prof Profile) Personality {
	p.Aggressiveness = clamp01(prof.Aggression)
	p.RiskTolerance = clamp01(prof.RiskTolerance)
	p.PlanningDepth = prof.PlanningDepth
	return p
}

// planningRatio is PlanningDepth scaled into [0,1]
func (p Personality) planningRatio() float64 {
	return clamp01(float64(p.PlanningDepth) / 4)
}

// deceptive reports whether the deception overlay is active
func (p Personality) deceptive() bool {
	return p.PlanningDepth >= 3
}
