package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lox/shadowgov/internal/store"
)

type RunsCmd struct {
	DB  string `arg:"" type:"existingfile" help:"SQLite database written by simulate --db"`
	ID  string `name:"run" help:"Show the summary of a single run"`
}

func (c *RunsCmd) Run(g *Globals) error {
	if _, _, err := g.load(); err != nil {
		return err
	}
	db, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := context.Background()

	runs, err := db.Runs(ctx)
	if err != nil {
		return err
	}
	if c.ID != "" {
		run, err := db.GetRun(ctx, c.ID)
		if err != nil {
			return err
		}
		runs = []store.Run{run}
	}
	if len(runs) == 0 {
		fmt.Println(infoStyle.Render("No runs recorded."))
		return nil
	}

	t := newTable("run", "started", "A", "B", "seed", "played", "A rate", "B rate", "draws", "margin")
	for _, run := range runs {
		stats, err := db.Summary(ctx, run.ID)
		if err != nil {
			return err
		}
		t.Row(run.ID, run.StartedAt.Local().Format(time.DateTime), run.DifficultyA, run.DifficultyB,
			strconv.FormatInt(run.Seed, 10),
			fmt.Sprintf("%d/%d", stats.Matches, run.Matches),
			pct(stats.WinRateA()), pct(stats.WinRateB()), strconv.Itoa(stats.Draws),
			fmt.Sprintf("%+.2f", stats.Mean()))
	}
	fmt.Println(t)
	return nil
}
