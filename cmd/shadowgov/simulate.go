package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/shadowgov/internal/report"
	"github.com/lox/shadowgov/internal/simulator"
	"github.com/lox/shadowgov/internal/statistics"
	"github.com/lox/shadowgov/internal/store"
	"github.com/lox/shadowgov/internal/tui"
	"github.com/lox/shadowgov/sdk/bot"
	"github.com/lox/shadowgov/sdk/config"
	"github.com/lox/shadowgov/sdk/game"
)

type SimulateCmd struct {
	A        string        `short:"a" default:"hard" help:"Difficulty of seat A"`
	B        string        `short:"b" default:"medium" help:"Difficulty of seat B"`
	Matches  int           `short:"n" default:"100" help:"Number of matches"`
	Seed     int64         `help:"Base seed, 0 uses the config seed or the current time"`
	Parallel int           `short:"p" default:"4" help:"Matches played at once"`
	Timeout  time.Duration `default:"1m" help:"Limit per match (0 for none)"`
	MaxTurns int           `default:"60" help:"Turns before the tiebreak decides"`
	DB       string        `help:"SQLite database to store results in"`
	Report   string        `help:"Write a JSON report to this file"`
	Results  bool          `help:"Include per-match results in the report"`
	TUI      bool          `name:"tui" help:"Show live progress"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	a, err := bot.ParseDifficulty(c.A)
	if err != nil {
		return fmt.Errorf("seat A: %w", err)
	}
	b, err := bot.ParseDifficulty(c.B)
	if err != nil {
		return fmt.Errorf("seat B: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var catalog game.MapCatalog
	if cfg.CatalogPath != "" {
		if catalog, err = game.LoadCatalogFile(cfg.CatalogPath); err != nil {
			return err
		}
	}

	factory, err := engineFactory(cfg, logger, a, b)
	if err != nil {
		return err
	}

	rules := simulator.DefaultRules()
	rules.MaxTurns = c.MaxTurns

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var db *store.Store
	var run store.Run
	if c.DB != "" {
		if db, err = store.Open(c.DB); err != nil {
			return err
		}
		defer db.Close()
		run, err = db.CreateRun(ctx, store.Run{DifficultyA: string(a), DifficultyB: string(b), Seed: seed, Matches: c.Matches})
		if err != nil {
			return err
		}
		logger.Info("Recording run", "db", c.DB, "run", run.ID)
	}

	var saveErr error
	onResult := func(r statistics.MatchResult) {
		if db == nil || saveErr != nil {
			return
		}
		saveErr = db.SaveResult(ctx, run.ID, r)
	}

	logger.Info("Starting simulation",
		"a", a, "b", b, "matches", c.Matches, "seed", seed, "parallel", c.Parallel)
	start := time.Now()

	execute := func(ctx context.Context, progress func(statistics.MatchResult)) (*statistics.Statistics, []statistics.MatchResult, error) {
		sim, err := simulator.New(simulator.Config{
			Matches:     c.Matches,
			A:           a,
			B:           b,
			Seed:        seed,
			Rules:       rules,
			Parallelism: c.Parallel,
			Timeout:     c.Timeout,
			Catalog:     catalog,
			NewEngine:   factory,
			Logger:      logger,
			OnResult: func(r statistics.MatchResult) {
				onResult(r)
				if progress != nil {
					progress(r)
				}
			},
		})
		if err != nil {
			return nil, nil, err
		}
		return sim.Run(ctx)
	}

	var stats *statistics.Statistics
	var results []statistics.MatchResult
	if c.TUI {
		title := fmt.Sprintf("%s (A) vs %s (B), seed %d", a, b, seed)
		err = tui.Run(ctx, title, c.Matches, logger, func(ctx context.Context, progress func(statistics.MatchResult)) error {
			var err error
			stats, results, err = execute(ctx, progress)
			return err
		})
	} else {
		stats, results, err = execute(ctx, nil)
	}
	if err != nil {
		return err
	}
	if saveErr != nil {
		return fmt.Errorf("failed to store results: %w", saveErr)
	}

	printSummary(a, b, seed, stats, time.Since(start))

	if c.Report != "" {
		r := report.Report{
			GeneratedAt: time.Now().UTC(),
			RunID:       run.ID,
			DifficultyA: string(a),
			DifficultyB: string(b),
			Seed:        seed,
			Summary:     report.Summarize(stats),
		}
		if c.Results {
			r.Results = results
		}
		if err := report.Write(c.Report, r); err != nil {
			return err
		}
		logger.Info("Report written", "file", c.Report)
	}
	return nil
}

// engineFactory builds engines from the config's presets and tuning. The
// option lists are built once per seat since they may load a catalog file.
func engineFactory(cfg *config.Config, logger *log.Logger, seats ...bot.Difficulty) (simulator.EngineFactory, error) {
	opts := make(map[bot.Difficulty][]bot.Option, len(seats))
	for _, d := range seats {
		o, err := cfg.EngineOptions(d, logger)
		if err != nil {
			return nil, err
		}
		opts[d] = o
	}
	return func(d bot.Difficulty, seed int64) (*bot.Engine, error) {
		o, ok := opts[d]
		if !ok {
			return nil, errors.New("no engine options for " + string(d))
		}
		return bot.New(d, append(o[:len(o):len(o)], bot.WithSeed(seed))...)
	}, nil
}

func printSummary(a, b bot.Difficulty, seed int64, stats *statistics.Statistics, elapsed time.Duration) {
	lo, hi := stats.ConfidenceInterval95()

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s (A) vs %s (B)", a, b)))
	fmt.Println(infoStyle.Render(fmt.Sprintf("%d matches in %s, seed %d", stats.Matches, elapsed.Round(time.Millisecond), seed)))

	t := newTable("", "A", "B")
	t.Row("wins", strconv.Itoa(stats.WinsA), strconv.Itoa(stats.WinsB))
	t.Row("win rate", pct(stats.WinRateA()), pct(stats.WinRateB()))
	fmt.Println(t)

	fmt.Printf("Draws: %d\n", stats.Draws)
	fmt.Printf("State margin (A-B): %+.2f ± %.2f (95%% CI [%+.2f, %+.2f]), median %+.1f\n",
		stats.Mean(), 1.96*stats.StdError(), lo, hi, stats.Median())
	fmt.Printf("Mean length: %.1f turns, %d cards played\n", stats.MeanTurns(), stats.CardsPlayed)

	reasons := make([]string, 0, len(stats.Reasons))
	for reason := range stats.Reasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Printf("  %-10s %d\n", reason, stats.Reasons[reason])
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
