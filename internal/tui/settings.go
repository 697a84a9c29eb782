package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldN = iota
	fieldTrials
	fieldGrid
	fieldInterval
)

func newSettingsInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 12
	input.Width = 12
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) initSettings() {
	m.settingsInputs = []textinput.Model{
		newSettingsInput("N:        "),
		newSettingsInput("Trials:   "),
		newSettingsInput("Grid:     "),
		newSettingsInput("Interval: "),
	}
}

func (m *Model) setInputsFromConfig() {
	cfg := m.engine.Config()
	m.settingsInputs[fieldN].SetValue(strconv.Itoa(m.n))
	m.settingsInputs[fieldTrials].SetValue(strconv.Itoa(cfg.Trials))
	m.settingsInputs[fieldGrid].SetValue(strconv.Itoa(cfg.GridSide))
	m.settingsInputs[fieldInterval].SetValue(cfg.Interval.String())
}

func (m *Model) startSettings() (tea.Model, tea.Cmd) {
	m.settingsMode = true
	m.settingsError = ""
	m.setInputsFromConfig()
	return m, m.setSettingsIndex(0)
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.settingsMode = false
		m.settingsError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applySettings(); err != nil {
			m.settingsError = err.Error()
			return m, nil
		}
		m.settingsMode = false
		m.settingsError = ""
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.setSettingsIndex(m.settingsIndex + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setSettingsIndex(m.settingsIndex - 1)
	}
	var cmd tea.Cmd
	m.settingsInputs[m.settingsIndex], cmd = m.settingsInputs[m.settingsIndex].Update(msg)
	return m, cmd
}

func (m *Model) setSettingsIndex(idx int) tea.Cmd {
	count := len(m.settingsInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.settingsIndex = idx
	var cmd tea.Cmd
	for i := range m.settingsInputs {
		if i == m.settingsIndex {
			cmd = m.settingsInputs[i].Focus()
		} else {
			m.settingsInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applySettings() error {
	n, err := parsePositive(m.settingsInputs[fieldN].Value(), "N")
	if err != nil {
		return err
	}
	trials, err := parsePositive(m.settingsInputs[fieldTrials].Value(), "trials")
	if err != nil {
		return err
	}
	grid, err := parsePositive(m.settingsInputs[fieldGrid].Value(), "grid")
	if err != nil {
		return err
	}
	interval, err := time.ParseDuration(strings.TrimSpace(m.settingsInputs[fieldInterval].Value()))
	if err != nil {
		return fmt.Errorf("invalid interval (e.g. 2500ms or 3s)")
	}

	cfg := m.engine.Config()
	cfg.N = n
	cfg.Trials = trials
	cfg.GridSide = grid
	cfg.Interval = interval
	if err := m.engine.Configure(cfg); err != nil {
		return err
	}
	m.n = n
	return nil
}

func parsePositive(value, name string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s (use a positive integer)", name)
	}
	return parsed, nil
}

func (m *Model) renderSettings() string {
	lines := []string{titleStyle.Render("Settings"), ""}
	for _, input := range m.settingsInputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, "", footerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel"))
	if m.settingsError != "" {
		lines = append(lines, errorStyle.Render(m.settingsError))
	}
	return strings.Join(lines, "\n")
}
