package bot

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/shadowgov/internal/randutil"
	"github.com/lox/shadowgov/sdk/game"
)

// Option configures an Engine
type Option func(*options)

type options struct {
	catalog    game.Catalog
	rng        RNG
	clock      quartz.Clock
	timeBudget time.Duration
	logger     *log.Logger
	tuning     *Tuning
	preset     *Preset
}

// WithCatalog sets the card metadata lookup
func WithCatalog(c game.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithRNG sets the randomness source. Use a seeded source for reproducible
// decisions.
func WithRNG(r RNG) Option {
	return func(o *options) { o.rng = r }
}

// WithSeed is shorthand for WithRNG(randutil.New(seed))
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = randutil.New(seed) }
}

// WithClock sets the clock used for decision timing and the search time budget
func WithClock(c quartz.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithTimeBudget bounds how long one search may run. Zero means the search
// always runs its full iteration count.
func WithTimeBudget(d time.Duration) Option {
	return func(o *options) { o.timeBudget = d }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTuning replaces the default tuning
func WithTuning(t Tuning) Option {
	return func(o *options) { o.tuning = &t }
}

// WithPreset replaces the built-in preset for the difficulty
func WithPreset(p Preset) Option {
	return func(o *options) { o.preset = &p }
}

// Engine decides which card the AI plays. An Engine is not safe for
// concurrent use; give each opponent its own.
type Engine struct {
	difficulty  Difficulty
	personality Personality
	profile     Profile
	preset      Preset
	tuning      Tuning
	strategist  Strategist
	base        *heuristic
	deception   *deceptionState
	clock       quartz.Clock
	logger      *log.Logger
}

// New builds the engine for a difficulty
func New(d Difficulty, opts ...Option) (*Engine, error) {
	d, err := ParseDifficulty(string(d))
	if err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.rng == nil {
		o.rng = randutil.New(time.Now().UnixNano())
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}
	if o.timeBudget < 0 {
		return nil, fmt.Errorf("time budget cannot be negative: %s", o.timeBudget)
	}

	preset := DefaultPreset(d)
	if o.preset != nil {
		preset = *o.preset
	}
	if err := preset.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s preset: %w", d, err)
	}
	tuning := DefaultTuning()
	if o.tuning != nil {
		tuning = *o.tuning
	}

	profile := preset.Profile()
	personality := PersonalityFor(d).withProfile(profile)
	logger := o.logger.WithPrefix("bot")
	deception := newDeceptionState(personality.RiskTolerance, o.catalog)

	h := &heuristic{
		personality: personality,
		randomness:  profile.Randomness,
		aggression:  profile.Aggression,
		rng:         o.rng,
		eval:        evaluator{personality: personality, tuning: tuning, catalog: o.catalog},
		moves:       moveGenerator{personality: personality, tuning: tuning, catalog: o.catalog},
		synergies:   Synergies(),
		deception:   deception,
		clock:       o.clock,
		logger:      logger,
	}

	e := &Engine{
		difficulty:  d,
		personality: personality,
		profile:     profile,
		preset:      preset,
		tuning:      tuning,
		strategist:  h,
		base:        h,
		deception:   deception,
		logger:      logger,
	}
	if profile.Searches() {
		e.strategist = &searcher{
			heuristic:  h,
			iterations: profile.Iterations(),
			clock:      o.clock,
			budget:     o.timeBudget,
		}
	}

	logger.Debug("Engine ready",
		"difficulty", d,
		"personality", personality.Name,
		"planningDepth", profile.PlanningDepth,
		"search", profile.Searches(),
		"iterations", profile.Iterations())
	return e, nil
}

// Difficulty returns the tier the engine was built for
func (e *Engine) Difficulty() Difficulty { return e.difficulty }

// Personality returns the effective trait vector
func (e *Engine) Personality() Personality { return e.personality }

// Profile returns the runtime parameters derived from the preset
func (e *Engine) Profile() Profile { return e.profile }

// Preset returns the preset the engine was built from
func (e *Engine) Preset() Preset { return e.preset }

// Tuning returns the weights in use
func (e *Engine) Tuning() Tuning { return e.tuning }

// Jitter is the upper bound of the random term added to heuristic priorities
func (e *Engine) Jitter() float64 { return e.profile.Randomness }

// Evaluate scores the snapshot from the AI's point of view
func (e *Engine) Evaluate(s *game.Snapshot) Evaluation {
	return e.strategist.Evaluate(s)
}

// GenerateMoves lists every affordable play with its base priority
func (e *Engine) GenerateMoves(s *game.Snapshot) []CardPlay {
	return e.strategist.GenerateMoves(s, e.Evaluate(s))
}

// PlaysFor lists the plays one card would produce, affordable or not
func (e *Engine) PlaysFor(card game.Card, s *game.Snapshot) []CardPlay {
	return e.base.moves.generate(card, s, e.Evaluate(s))
}

// RankPlays returns the heuristic ordering of every affordable play,
// including synergy, deception and jitter adjustments
func (e *Engine) RankPlays(s *game.Snapshot) []CardPlay {
	if s == nil {
		return nil
	}
	return e.base.rank(s, e.Evaluate(s))
}

// SelectOptimalPlay picks the card to play this turn. It returns nil when
// the hand is empty or nothing is affordable.
func (e *Engine) SelectOptimalPlay(s *game.Snapshot) *CardPlay {
	return e.decide(s, true)
}

func (e *Engine) decide(s *game.Snapshot, observe bool) *CardPlay {
	if s == nil || len(s.Hand) == 0 {
		return nil
	}
	if observe && e.personality.deceptive() {
		e.deception.observe(s)
	}

	start := e.clock.Now()
	ev := e.Evaluate(s)
	play := e.strategist.SelectPlay(s, ev)
	if play == nil {
		e.logger.Info("No playable card", "hand", len(s.Hand), "ip", s.AIIP)
		return nil
	}

	e.logger.Debug("Decision made",
		"difficulty", e.difficulty,
		"card", play.CardID,
		"target", play.TargetState,
		"priority", play.Priority,
		"overall", ev.OverallScore,
		"elapsed", e.clock.Since(start))
	return play
}
