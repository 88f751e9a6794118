package tui

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/shadowgov/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestProgressModel(t *testing.T) {
	t.Run("results advance progress", func(t *testing.T) {
		m := NewModel("easy vs hard", 4, nil, quietLogger())
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

		m.Update(ResultMsg{Index: 0, Winner: statistics.WinA, Reason: statistics.ReasonStates, StatesA: 10, StatesB: 2, Turns: 30})
		m.Update(ResultMsg{Index: 1, Winner: statistics.WinB, Reason: statistics.ReasonIP, StatesA: 1, StatesB: 5, Turns: 22})
		m.Update(ResultMsg{Index: 2, Winner: statistics.Draw, Reason: statistics.ReasonTurnLimit, StatesA: 4, StatesB: 4, Turns: 60})

		assert.Equal(t, 3, m.Done())
		assert.InDelta(t, 0.75, m.Percent(), 1e-9)
		assert.Equal(t, 1, m.stats.WinsA)
		assert.Equal(t, 1, m.stats.WinsB)
		assert.Equal(t, 1, m.stats.Draws)
		require.Len(t, m.lines, 3)
		assert.Contains(t, m.lines[1], "by ip in 22 turns")

		view := m.View()
		assert.Contains(t, view, "easy vs hard")
		assert.Contains(t, view, "3/4")
		assert.Contains(t, view, "win rate A 50.0%")
	})

	t.Run("done quits and keeps the error", func(t *testing.T) {
		m := NewModel("run", 1, nil, quietLogger())
		boom := errors.New("boom")

		_, cmd := m.Update(DoneMsg{Err: boom})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.ErrorIs(t, m.Err(), boom)
		assert.Contains(t, m.View(), "failed: boom")
	})

	t.Run("quitting early cancels the run", func(t *testing.T) {
		cancelled := false
		m := NewModel("run", 10, func() { cancelled = true }, quietLogger())

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.True(t, cancelled)
		assert.Contains(t, m.View(), "Cancelled.")
	})

	t.Run("quitting after done does not cancel", func(t *testing.T) {
		cancelled := false
		m := NewModel("run", 1, func() { cancelled = true }, quietLogger())
		m.Update(DoneMsg{})

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		assert.False(t, cancelled)
	})

	t.Run("percent with no matches", func(t *testing.T) {
		m := NewModel("run", 0, nil, quietLogger())
		assert.Zero(t, m.Percent())
	})
}
