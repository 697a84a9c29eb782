// Package tui provides the Bubble Tea dual N-back interface.
package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/nback/internal/clock"
	"github.com/verte-zerg/nback/internal/engine"
	"github.com/verte-zerg/nback/internal/model"
)

// dispatchMsg carries a scheduler fire onto the Bubble Tea event loop.
type dispatchMsg func()

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Option configures a Model.
type Option func(*Model)

// WithScheduler replaces the real-time ticker.
func WithScheduler(s clock.Scheduler) Option {
	return func(m *Model) {
		m.sched = s
	}
}

// WithGenerator replaces the random sequence generator.
func WithGenerator(g engine.SequenceSource) Option {
	return func(m *Model) {
		m.gen = g
	}
}

// Model implements the Bubble Tea session UI.
type Model struct {
	engine *engine.Engine
	sched  clock.Scheduler
	gen    engine.SequenceSource
	screen *screen
	send   func(tea.Msg)
	n      int

	width  int
	height int

	errMsg       string
	summaryTable table.Model

	settingsMode   bool
	settingsInputs []textinput.Model
	settingsIndex  int
	settingsError  string
}

// NewModel constructs a session TUI model.
func NewModel(cfg model.Config, opts ...Option) *Model {
	m := &Model{
		n:      cfg.N,
		screen: newScreen(newSpeaker(cfg.SpeechCmd)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sched == nil {
		m.sched = clock.NewTicker(m.dispatch)
	}
	m.engine = engine.New(cfg, m.gen, m.sched, m.screen, engine.WithErrorHandler(func(err error) {
		log.Printf("%v", err)
	}))
	m.initSettings()
	return m
}

// SetProgram routes scheduler fires through the running program.
func (m *Model) SetProgram(p *tea.Program) {
	m.send = p.Send
}

// Summaries returns the summary of every session ended in this run.
func (m *Model) Summaries() []model.Summary {
	return append([]model.Summary(nil), m.screen.summaries...)
}

func (m *Model) dispatch(fn func()) {
	if m.send == nil {
		return
	}
	m.send(dispatchMsg(fn))
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()
		m.syncSummaryTable()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.engine.Stop()
			return m, tea.Quit
		}
		if m.settingsMode {
			return m.updateSettings(msg)
		}
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	running := m.engine.State() == engine.StateRunning
	switch msg.String() {
	case "q":
		m.engine.Stop()
		return m, tea.Quit
	case "a":
		if m.screen.controls {
			m.engine.Respond(model.ModalityPosition)
		}
	case "l":
		if m.screen.controls {
			m.engine.Respond(model.ModalityLetter)
		}
	case "s", "enter":
		m.start()
	case "x", "esc":
		m.engine.Stop()
		m.syncSummaryTable()
	case "+", "=":
		if !running {
			m.setN(m.n + 1)
		}
	case "-":
		if !running {
			m.setN(m.n - 1)
		}
	case "/":
		if !running {
			return m.startSettings()
		}
	}
	return m, nil
}

func (m *Model) start() {
	m.errMsg = ""
	if err := m.engine.Start(m.n); err != nil {
		m.errMsg = startError(err)
		return
	}
	m.syncSummaryTable()
}

func (m *Model) setN(n int) {
	if n < 1 || n >= m.engine.Config().Trials {
		return
	}
	m.n = n
	m.errMsg = ""
}

func startError(err error) string {
	if errors.Is(err, engine.ErrInvalidConfig) {
		return fmt.Sprintf("cannot start: %v", err)
	}
	return err.Error()
}

func (m *Model) syncSummaryTable() {
	if m.screen.showing {
		return
	}
	if last, ok := m.engine.LastSummary(); ok {
		m.summaryTable = buildSummaryTable(last)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch {
	case m.settingsMode:
		body = m.renderSettings()
	case m.screen.showing:
		body = m.renderTrial()
	case m.hasSummary():
		body = m.renderSummary()
	default:
		body = m.renderWelcome()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	footerHeight := lipgloss.Height(footer)
	bodyHeight := max(1, m.height-footerHeight)
	top := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	bottom := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
	return top + "\n" + bottom
}

func (m *Model) renderTrial() string {
	cfg := m.engine.Config()
	grid := renderGrid(cfg.GridSide, m.screen.stimulus.Position)
	letter := renderLetter(m.screen.stimulus.Letter)
	return lipgloss.JoinVertical(lipgloss.Center, grid, "", letter)
}

func (m *Model) renderWelcome() string {
	cfg := m.engine.Config()
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Dual %d-back", m.n)),
		"",
		fmt.Sprintf("%d trials, one every %s", cfg.Trials, cfg.Interval),
		"Press a when the square is where it was " + stepsBack(m.n) + ".",
		"Press l when the letter is the one from " + stepsBack(m.n) + ".",
		"",
		"Press s to start.",
	}
	return strings.Join(lines, "\n")
}

func (m *Model) hasSummary() bool {
	_, ok := m.engine.LastSummary()
	return ok
}

func (m *Model) renderSummary() string {
	last, _ := m.engine.LastSummary()
	status := "Session complete"
	if !last.Completed {
		status = "Session stopped"
	}
	header := titleStyle.Render(fmt.Sprintf("%s: dual %d-back, %d of %d trials scored", status, last.N, last.Evaluated, last.Trials))
	if last.Evaluated == 0 {
		return header + "\n\nNo trials were scored."
	}
	return header + "\n\n" + m.summaryTable.View()
}

func stepsBack(n int) string {
	if n == 1 {
		return "1 step back"
	}
	return fmt.Sprintf("%d steps back", n)
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("N=%d", m.n)}
	if m.screen.showing {
		cfg := m.engine.Config()
		segments = append(segments, fmt.Sprintf("Trial %d/%d", m.screen.trial+1, cfg.Trials))
		segments = append(segments, responseMark("Position", m.engine.Responded(model.ModalityPosition)))
		segments = append(segments, responseMark("Letter", m.engine.Responded(model.ModalityLetter)))
		segments = append(segments, "a: position  l: letter  x: stop  q: quit")
	} else if !m.settingsMode {
		segments = append(segments, "s: start  -/+: N  /: settings  q: quit")
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.errMsg != "" {
		footer += "\n" + errorStyle.Render(m.errMsg)
	}
	return footer
}

func responseMark(label string, responded bool) string {
	if responded {
		return markStyle.Render(label + " ●")
	}
	return label + " ○"
}
