// Package simulator plays engine-vs-engine matches to compare difficulty
// tiers and tuning.
package simulator

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/shadowgov/internal/matchid"
	"github.com/lox/shadowgov/internal/randutil"
	"github.com/lox/shadowgov/internal/statistics"
	"github.com/lox/shadowgov/sdk/bot"
	"github.com/lox/shadowgov/sdk/game"
	"golang.org/x/sync/errgroup"
)

//go:embed cards.hcl
var defaultCards []byte

// DefaultCatalog returns the built-in self-play deck
func DefaultCatalog() (game.MapCatalog, error) {
	return game.ParseCatalog(defaultCards, "cards.hcl")
}

// EngineFactory builds the engine for one seat of one match
type EngineFactory func(d bot.Difficulty, seed int64) (*bot.Engine, error)

// Config holds configuration for running simulations
type Config struct {
	Matches     int
	A, B        bot.Difficulty
	Seed        int64
	Rules       Rules
	Plan        bot.PlanOptions
	Parallelism int
	// Timeout bounds a single match; zero means no limit
	Timeout time.Duration
	Catalog game.MapCatalog
	// NewEngine overrides engine construction; nil uses bot.New with the
	// catalog
	NewEngine EngineFactory
	// OnResult is called once per finished match, never concurrently
	OnResult func(statistics.MatchResult)
	Logger   *log.Logger
}

// Simulator runs self-play matches
type Simulator struct {
	config Config
	deck   []game.Card
}

// New creates a simulator, filling in defaults for unset fields
func New(config Config) (*Simulator, error) {
	if config.Matches <= 0 {
		return nil, fmt.Errorf("matches must be positive, got %d", config.Matches)
	}
	if _, err := bot.ParseDifficulty(string(config.A)); err != nil {
		return nil, fmt.Errorf("seat A: %w", err)
	}
	if _, err := bot.ParseDifficulty(string(config.B)); err != nil {
		return nil, fmt.Errorf("seat B: %w", err)
	}
	if config.Rules == (Rules{}) {
		config.Rules = DefaultRules()
	}
	if config.Rules.MaxTurns <= 0 {
		return nil, fmt.Errorf("max turns must be positive, got %d", config.Rules.MaxTurns)
	}
	if config.Plan == (bot.PlanOptions{}) {
		config.Plan = bot.DefaultPlanOptions()
	}
	if config.Parallelism <= 0 {
		config.Parallelism = 1
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Catalog == nil {
		cat, err := DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("default catalog: %w", err)
		}
		config.Catalog = cat
	}
	if config.NewEngine == nil {
		cat := config.Catalog
		config.NewEngine = func(d bot.Difficulty, seed int64) (*bot.Engine, error) {
			return bot.New(d, bot.WithSeed(seed), bot.WithCatalog(cat))
		}
	}

	deck := config.Catalog.Cards()
	if len(deck) == 0 {
		return nil, fmt.Errorf("catalog has no cards")
	}
	return &Simulator{config: config, deck: deck}, nil
}

// Run plays every match and returns the aggregate statistics and the
// per-match results in match order
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, []statistics.MatchResult, error) {
	results := make([]statistics.MatchResult, s.config.Matches)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)
	for i := 0; i < s.config.Matches; i++ {
		g.Go(func() error {
			res, err := s.playMatchWithTimeout(ctx, i)
			if err != nil {
				return err
			}
			results[i] = res

			mu.Lock()
			defer mu.Unlock()
			if s.config.OnResult != nil {
				s.config.OnResult(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, results, nil
}

func (s *Simulator) playMatchWithTimeout(ctx context.Context, index int) (statistics.MatchResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	res, err := s.playMatch(ctx, index)
	if err != nil {
		return res, fmt.Errorf("match %d (seed: %d): %w", index+1, res.Seed, err)
	}
	return res, nil
}

// playMatch plays match index to completion. Seats alternate factions and
// who moves first so neither tier keeps a structural edge.
func (s *Simulator) playMatch(ctx context.Context, index int) (statistics.MatchResult, error) {
	seed := randutil.Derive(s.config.Seed, index)
	rng := randutil.New(seed)

	factionA := game.FactionGovernment
	if index%2 == 1 {
		factionA = game.FactionTruth
	}
	first := sideA
	if (index/2)%2 == 1 {
		first = sideB
	}

	res := statistics.MatchResult{
		ID:          matchid.NewGenerator(rng).Generate(),
		Index:       index,
		Seed:        seed,
		DifficultyA: string(s.config.A),
		DifficultyB: string(s.config.B),
		FactionA:    string(factionA),
	}

	var engines [2]*bot.Engine
	for i, d := range []bot.Difficulty{s.config.A, s.config.B} {
		e, err := s.config.NewEngine(d, randutil.Derive(seed, i))
		if err != nil {
			return res, fmt.Errorf("failed to build %s engine: %w", d, err)
		}
		engines[i] = e
	}

	m := newMatch(s.config.Rules, s.deck, rng, factionA)
	active := first
	winner, reason, decided := side(0), "", false

	for res.Turns < s.config.Rules.MaxTurns {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("aborted after %d turns: %w", res.Turns, err)
		}

		m.ip[active] += m.income(active)
		plan := engines[active].PlanTurn(m.snapshot(active), s.config.Plan)
		for _, action := range plan.Actions {
			if m.apply(active, action.Card, action.Play.TargetState) {
				res.CardsPlayed++
			}
		}
		m.refill(active)
		res.Turns++

		if winner, reason, decided = m.winner(); decided {
			break
		}
		active = m.endTurn(first, active)
	}

	if !decided {
		if winner, decided = m.tiebreak(); decided {
			reason = statistics.ReasonTiebreak
		} else {
			reason = statistics.ReasonTurnLimit
		}
	}

	res.Winner = statistics.Draw
	if decided {
		res.Winner = winner.outcome()
	}
	res.Reason = reason
	res.StatesA, res.StatesB = m.controlled(sideA), m.controlled(sideB)
	res.IPA, res.IPB = m.ip[sideA], m.ip[sideB]
	res.Truth = m.truth

	s.config.Logger.Debug("Match finished",
		"match", index+1,
		"id", res.ID,
		"winner", res.Winner,
		"reason", res.Reason,
		"turns", res.Turns,
		"states", fmt.Sprintf("%d-%d", res.StatesA, res.StatesB))
	return res, nil
}
