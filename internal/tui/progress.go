// Package tui renders live progress for long self-play runs.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/shadowgov/internal/statistics"
)

const (
	defaultWidth = 60
	logHeight    = 8
)

// ResultMsg reports one finished match
type ResultMsg statistics.MatchResult

// DoneMsg reports the end of the run
type DoneMsg struct {
	Err error
}

// Model is the bubbletea model for a running simulation
type Model struct {
	title  string
	total  int
	done   int
	stats  statistics.Statistics
	lines  []string
	cancel context.CancelFunc
	logger *log.Logger

	progress progress.Model
	spinner  spinner.Model
	log      viewport.Model

	width    int
	finished bool
	quitting bool
	err      error
}

// NewModel creates a progress view for total matches. cancel is called when
// the user quits before the run is done.
func NewModel(title string, total int, cancel context.CancelFunc, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cancel == nil {
		cancel = func() {}
	}
	return &Model{
		title:    title,
		total:    total,
		cancel:   cancel,
		logger:   logger.WithPrefix("tui"),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultWidth)),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SeatAStyle)),
		log:      viewport.New(defaultWidth, logHeight),
		width:    defaultWidth,
	}
}

// Init starts the spinner
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(20, msg.Width-4)
		m.progress.Width = m.width
		m.log.Width = m.width
		m.logger.Debug("Resized", "width", msg.Width, "height", msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.finished {
				m.cancel()
			}
			m.quitting = true
			return m, tea.Quit
		}

	case ResultMsg:
		r := statistics.MatchResult(msg)
		m.done++
		m.stats.Add(r)
		m.lines = append(m.lines, formatResult(r))
		m.log.SetContent(strings.Join(m.lines, "\n"))
		m.log.GotoBottom()

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

func formatResult(r statistics.MatchResult) string {
	var winner string
	switch r.Winner {
	case statistics.WinA:
		winner = SeatAStyle.Render("A wins")
	case statistics.WinB:
		winner = SeatBStyle.Render("B wins")
	default:
		winner = DrawStyle.Render("draw")
	}
	return fmt.Sprintf("#%-4d %s by %s in %d turns (states %d-%d)",
		r.Index+1, winner, r.Reason, r.Turns, r.StatesA, r.StatesB)
}

// Percent is the share of matches finished
func (m *Model) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(1, float64(m.done)/float64(m.total))
}

// Done is the number of matches finished
func (m *Model) Done() int { return m.done }

// Err is the error the run finished with, if any
func (m *Model) Err() error { return m.err }

// View renders the TUI
func (m *Model) View() string {
	if m.quitting && !m.finished {
		return InfoStyle.Render("Cancelled.") + "\n"
	}

	status := m.spinner.View() + " running"
	if m.finished {
		status = SeatAStyle.Render("done")
		if m.err != nil {
			status = ErrorStyle.Render("failed: " + m.err.Error())
		}
	}

	score := fmt.Sprintf("%s %d  %s %d  %s %d",
		SeatAStyle.Render("A"), m.stats.WinsA,
		SeatBStyle.Render("B"), m.stats.WinsB,
		DrawStyle.Render("draws"), m.stats.Draws)
	rates := InfoStyle.Render(fmt.Sprintf("win rate A %.1f%%  mean margin %+.2f  mean turns %.1f",
		m.stats.WinRateA()*100, m.stats.Mean(), m.stats.MeanTurns()))

	body := lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(m.title),
		"",
		fmt.Sprintf("%s  %d/%d", status, m.done, m.total),
		m.progress.ViewAs(m.Percent()),
		"",
		score,
		rates,
		"",
		m.log.View(),
		InfoStyle.Render("q to quit"),
	)
	return PanelStyle.Width(m.width + 2).Render(body) + "\n"
}

// Run shows the progress view while run executes. run receives a callback
// to report each finished match and a context that is cancelled when the
// user quits.
func Run(ctx context.Context, title string, total int, logger *log.Logger,
	run func(ctx context.Context, onResult func(statistics.MatchResult)) error, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(title, total, cancel, logger)
	p := tea.NewProgram(model, opts...)

	go func() {
		err := run(ctx, func(r statistics.MatchResult) { p.Send(ResultMsg(r)) })
		p.Send(DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if !model.finished {
		return context.Canceled
	}
	return model.err
}
