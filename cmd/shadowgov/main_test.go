package main

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/shadowgov/sdk/bot"
	"github.com/lox/shadowgov/sdk/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSnapshot = `{
  "round": 3,
  "turn": 5,
  "truth": 48,
  "aiFaction": "government",
  "aiIP": 20,
  "playerIP": 18,
  "opponentHandSize": 4,
  "hand": [
    {"id": "surveillance-network", "name": "Surveillance Network", "type": "ZONE", "cost": 6, "effects": {"pressureDelta": 2}},
    {"id": "cover-story", "name": "Cover Story", "type": "MEDIA", "cost": 4, "effects": {"truthDelta": -6}}
  ],
  "states": [
    {"id": "KS", "name": "Kansas", "baseIP": 2, "defense": 2, "pressure": 0, "owner": "neutral"},
    {"id": "NY", "name": "New York", "baseIP": 5, "defense": 5, "pressure": 2, "owner": "ai"}
  ],
  "cardsPlayedThisRound": [
    {"player": "human", "card": {"id": "expose", "name": "Expose", "type": "ATTACK", "cost": 5}}
  ],
  "someFutureField": true
}`

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestReadSnapshot(t *testing.T) {
	s, err := readSnapshot(strings.NewReader(sampleSnapshot))
	require.NoError(t, err)

	assert.Equal(t, 20, s.AIIP)
	assert.Len(t, s.Hand, 2)
	assert.Equal(t, 2, s.Hand[0].Effects.PressureDelta)
	assert.Len(t, s.States, 2)
	assert.Len(t, s.PlaysThisRound, 1)

	_, err = readSnapshot(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestEngineFlags(t *testing.T) {
	cfg := config.Default()

	t.Run("defaults to the config difficulty", func(t *testing.T) {
		e, err := (&EngineFlags{}).engine(cfg, quietLogger())
		require.NoError(t, err)
		assert.Equal(t, bot.Medium, e.Difficulty())
	})

	t.Run("flag overrides config", func(t *testing.T) {
		e, err := (&EngineFlags{Difficulty: "Legendary"}).engine(cfg, quietLogger())
		require.NoError(t, err)
		assert.Equal(t, bot.Legendary, e.Difficulty())
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		_, err := (&EngineFlags{Difficulty: "godlike"}).engine(cfg, quietLogger())
		assert.Error(t, err)
	})

	t.Run("seeded decisions repeat", func(t *testing.T) {
		f := &EngineFlags{Difficulty: "easy", Seed: 11}
		var picks []string
		for i := 0; i < 2; i++ {
			e, err := f.engine(cfg, quietLogger())
			require.NoError(t, err)
			s, err := readSnapshot(strings.NewReader(sampleSnapshot))
			require.NoError(t, err)
			play := e.SelectOptimalPlay(s)
			require.NotNil(t, play)
			picks = append(picks, play.CardID+"@"+play.TargetState)
		}
		assert.Equal(t, picks[0], picks[1])
	})
}

func TestEngineFactory(t *testing.T) {
	factory, err := engineFactory(config.Default(), quietLogger(), bot.Easy, bot.Hard)
	require.NoError(t, err)

	e, err := factory(bot.Hard, 5)
	require.NoError(t, err)
	assert.Equal(t, bot.Hard, e.Difficulty())

	_, err = factory(bot.Legendary, 5)
	assert.Error(t, err, "only the configured seats have options")
}

func TestGlobalsLoad(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "absent.hcl"), LogLevel: "debug"}
	cfg, logger, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	g.LogLevel = "loud"
	_, _, err = g.load()
	assert.Error(t, err)
}

func TestCLIParse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"simulate", "-a", "easy", "-b", "legendary", "-n", "10", "--tui", "--db", "out.db"})
	require.NoError(t, err)
	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, "easy", cli.Simulate.A)
	assert.Equal(t, "legendary", cli.Simulate.B)
	assert.Equal(t, 10, cli.Simulate.Matches)
	assert.True(t, cli.Simulate.TUI)
	assert.Equal(t, 60, cli.Simulate.MaxTurns)

	_, err = parser.Parse([]string{"decide", "-d", "hard", "snap.json"})
	require.NoError(t, err)
	assert.Equal(t, "hard", cli.Decide.Difficulty)
	assert.Equal(t, "snap.json", cli.Decide.Snapshot)
}
