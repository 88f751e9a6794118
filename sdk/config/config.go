// Package config loads engine configuration for shadowgov opponents.
// Settings come from an optional HCL file and can be overridden by the
// standard environment variables.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/shadowgov/sdk/bot"
	"github.com/lox/shadowgov/sdk/game"
)

// Environment variable names read by FromEnv and ApplyEnv
const (
	// EnvDifficulty selects the opponent tier
	EnvDifficulty = "SHADOWGOV_DIFFICULTY"

	// EnvSeed provides a random seed for deterministic decisions
	EnvSeed = "SHADOWGOV_SEED"

	// EnvTimeBudget bounds search time, as a Go duration ("250ms")
	EnvTimeBudget = "SHADOWGOV_TIME_BUDGET"
)

// Config is the resolved engine configuration
type Config struct {
	Difficulty bot.Difficulty
	// Seed is the random seed (0 means seed from the clock)
	Seed       int64
	TimeBudget time.Duration
	LogLevel   string
	// CatalogPath points at an HCL card catalog, empty for none
	CatalogPath string
	Presets     map[bot.Difficulty]bot.Preset
	Tuning      bot.Tuning
}

type fileConfig struct {
	Engine  *engineBlock  `hcl:"engine,block"`
	Presets []presetBlock `hcl:"preset,block"`
	Tuning  *tuningBlock  `hcl:"tuning,block"`
}

type engineBlock struct {
	Difficulty   string `hcl:"difficulty,optional"`
	Seed         int64  `hcl:"seed,optional"`
	TimeBudgetMS int    `hcl:"time_budget_ms,optional"`
	LogLevel     string `hcl:"log_level,optional"`
	Catalog      string `hcl:"catalog,optional"`
}

type presetBlock struct {
	Difficulty string   `hcl:"difficulty,label"`
	Body       hcl.Body `hcl:",remain"`
}

type tuningBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{
		Difficulty: bot.Medium,
		LogLevel:   "info",
		Presets:    make(map[bot.Difficulty]bot.Preset, len(bot.Difficulties)),
		Tuning:     bot.DefaultTuning(),
	}
	for _, d := range bot.Difficulties {
		cfg.Presets[d] = bot.DefaultPreset(d)
	}
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source over the defaults and validates the result
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if e := fc.Engine; e != nil {
		if e.Difficulty != "" {
			d, err := bot.ParseDifficulty(e.Difficulty)
			if err != nil {
				return nil, fmt.Errorf("engine: %w", err)
			}
			cfg.Difficulty = d
		}
		cfg.Seed = e.Seed
		cfg.TimeBudget = time.Duration(e.TimeBudgetMS) * time.Millisecond
		if e.LogLevel != "" {
			cfg.LogLevel = e.LogLevel
		}
		cfg.CatalogPath = e.Catalog
	}

	for _, pb := range fc.Presets {
		d, err := bot.ParseDifficulty(pb.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("preset: %w", err)
		}
		// Attributes left out keep the built-in value
		preset := cfg.Presets[d]
		if diags := gohcl.DecodeBody(pb.Body, nil, &preset); diags.HasErrors() {
			return nil, fmt.Errorf("preset %s: %s", d, diags.Error())
		}
		cfg.Presets[d] = preset
	}

	if fc.Tuning != nil {
		if err := decodeTuning(fc.Tuning.Body, &cfg.Tuning); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeTuning applies each section block's attributes to t
func decodeTuning(body hcl.Body, t *bot.Tuning) error {
	schema := &hcl.BodySchema{}
	for _, name := range bot.TuningSections() {
		schema.Blocks = append(schema.Blocks, hcl.BlockHeaderSchema{Type: name})
	}
	content, diags := body.Content(schema)
	if diags.HasErrors() {
		return fmt.Errorf("tuning: %s", diags.Error())
	}

	for _, block := range content.Blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return fmt.Errorf("tuning %s: %s", block.Type, diags.Error())
		}
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			var v float64
			if diags := gohcl.DecodeExpression(attrs[name].Expr, nil, &v); diags.HasErrors() {
				return fmt.Errorf("tuning %s.%s: %s", block.Type, name, diags.Error())
			}
			if err := t.Set(block.Type, name, v); err != nil {
				return fmt.Errorf("tuning: %w", err)
			}
		}
	}
	return nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if _, err := bot.ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	if c.TimeBudget < 0 {
		return fmt.Errorf("time budget cannot be negative: %s", c.TimeBudget)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	for d, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %s: %w", d, err)
		}
	}
	return nil
}

// FromEnv returns the defaults with environment overrides applied
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. Unset variables leave the
// field alone.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDifficulty); v != "" {
		d, err := bot.ParseDifficulty(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvDifficulty, err)
		}
		c.Difficulty = d
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Seed = seed
	}

	if v := os.Getenv(EnvTimeBudget); v != "" {
		budget, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvTimeBudget, err)
		}
		if budget < 0 {
			return fmt.Errorf("invalid %s value: %s is negative", EnvTimeBudget, v)
		}
		c.TimeBudget = budget
	}

	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Catalog loads the configured card catalog, or returns nil when none is set
func (c *Config) Catalog() (game.Catalog, error) {
	if c.CatalogPath == "" {
		return nil, nil
	}
	cat, err := game.LoadCatalogFile(c.CatalogPath)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// EngineOptions returns the bot options for an engine of difficulty d. The
// seed is left to the caller so that simulations can derive one per match.
func (c *Config) EngineOptions(d bot.Difficulty, logger *log.Logger) ([]bot.Option, error) {
	opts := []bot.Option{
		bot.WithTuning(c.Tuning),
		bot.WithTimeBudget(c.TimeBudget),
	}
	if p, ok := c.Presets[d]; ok {
		opts = append(opts, bot.WithPreset(p))
	}
	if logger != nil {
		opts = append(opts, bot.WithLogger(logger))
	}
	cat, err := c.Catalog()
	if err != nil {
		return nil, err
	}
	if cat != nil {
		opts = append(opts, bot.WithCatalog(cat))
	}
	return opts, nil
}
