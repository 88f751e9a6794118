package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lox/shadowgov/sdk/bot"
)

type DecideCmd struct {
	EngineFlags
}

func (c *DecideCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	engine, err := c.engine(cfg, logger)
	if err != nil {
		return err
	}
	snap, err := c.snapshot()
	if err != nil {
		return err
	}

	play := engine.SelectOptimalPlay(snap)
	if play == nil {
		logger.Warn("No playable card", "hand", len(snap.Hand), "ip", snap.AIIP)
	}
	return writeJSON(os.Stdout, play)
}

type PlanCmd struct {
	EngineFlags
	MaxActions int     `default:"3" help:"Most cards to play this turn"`
	Threshold  float64 `default:"0.3" help:"Stop once the best play's priority falls below this"`
	JSON       bool    `help:"Print the plan as JSON"`
}

func (c *PlanCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	engine, err := c.engine(cfg, logger)
	if err != nil {
		return err
	}
	snap, err := c.snapshot()
	if err != nil {
		return err
	}

	plan := engine.PlanTurn(snap, bot.PlanOptions{MaxActions: c.MaxActions, PriorityThreshold: c.Threshold})
	if c.JSON {
		return writeJSON(os.Stdout, plan)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s turn plan", engine.Personality().Name)))
	if len(plan.Actions) == 0 {
		fmt.Println(infoStyle.Render("No play clears the priority threshold."))
	}
	for i, a := range plan.Actions {
		target := ""
		if a.Play.TargetState != "" {
			target = " -> " + a.Play.TargetState
		}
		fmt.Printf("%d. %s%s (%s, cost %d, priority %.2f)\n",
			i+1, cardStyle.Render(a.Card.Name), target, a.Card.Type, a.Card.Cost, a.Play.Priority)
		for _, d := range a.Details {
			fmt.Println("   " + infoStyle.Render(d))
		}
	}
	fmt.Println(strings.Join(plan.SequenceDetails, "\n"))
	return nil
}

type AssessCmd struct {
	EngineFlags
	Evaluation bool `help:"Also print the full evaluation as JSON"`
}

func (c *AssessCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	engine, err := c.engine(cfg, logger)
	if err != nil {
		return err
	}
	snap, err := c.snapshot()
	if err != nil {
		return err
	}

	eval := engine.Evaluate(snap)
	fmt.Println(panelStyle.Render(engine.StrategicAssessment(snap)))
	fmt.Println(infoStyle.Render(bot.FormatEvaluationScore(eval.OverallScore)))
	if c.Evaluation {
		return writeJSON(os.Stdout, eval)
	}
	return nil
}
