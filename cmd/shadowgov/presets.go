package main

import (
	"fmt"
	"strconv"

	"github.com/lox/shadowgov/sdk/bot"
)

type PresetsCmd struct{}

func (c *PresetsCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}

	t := newTable("difficulty", "personality", "lookahead", "rollouts", "beam", "randomness",
		"aggression", "risk", "depth", "search")
	for _, d := range bot.Difficulties {
		p, ok := cfg.Presets[d]
		if !ok {
			p = bot.DefaultPreset(d)
		}
		prof := p.Profile()
		search := "-"
		if prof.Searches() {
			search = fmt.Sprintf("mcts x%d", prof.Iterations())
		}
		t.Row(string(d), bot.PersonalityFor(d).Name,
			num(p.LookaheadDepth), num(p.RolloutsPerBranch), num(p.BeamWidth),
			num(p.Randomness), num(p.Aggression), num(p.RiskTolerance),
			strconv.Itoa(prof.PlanningDepth), search)
	}
	fmt.Println(t)
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
