package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/shadowgov/sdk/bot"
	"github.com/lox/shadowgov/sdk/config"
	"github.com/lox/shadowgov/sdk/game"
)

// Globals are the flags shared by every command
type Globals struct {
	Config   string `default:"shadowgov.hcl" help:"HCL config file (missing file uses defaults)"`
	LogLevel string `help:"Log level (debug|info|warn|error), overrides the config file"`
}

// load reads the config file, applies environment and flag overrides and
// builds the logger
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
	})
	return cfg, logger, nil
}

// EngineFlags selects and seeds the engine for the snapshot commands
type EngineFlags struct {
	Difficulty string `short:"d" help:"Difficulty (easy|medium|hard|legendary), defaults to the config file"`
	Seed       int64  `help:"RNG seed, 0 uses the config seed or a random one"`
	Snapshot   string `arg:"" optional:"" default:"-" help:"Snapshot JSON file, - for stdin"`
}

func (f *EngineFlags) engine(cfg *config.Config, logger *log.Logger) (*bot.Engine, error) {
	d := cfg.Difficulty
	if f.Difficulty != "" {
		var err error
		if d, err = bot.ParseDifficulty(f.Difficulty); err != nil {
			return nil, err
		}
	}

	opts, err := cfg.EngineOptions(d, logger)
	if err != nil {
		return nil, err
	}
	seed := f.Seed
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed != 0 {
		opts = append(opts, bot.WithSeed(seed))
	}
	return bot.New(d, opts...)
}

func (f *EngineFlags) snapshot() (*game.Snapshot, error) {
	var r io.Reader = os.Stdin
	if f.Snapshot != "-" {
		file, err := os.Open(f.Snapshot)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	return readSnapshot(r)
}

func readSnapshot(r io.Reader) (*game.Snapshot, error) {
	var s game.Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
