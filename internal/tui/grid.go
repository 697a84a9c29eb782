package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const cellWidth = 5

var (
	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	activeCellStyle = cellStyle.
			BorderForeground(lipgloss.Color("#C89A3A")).
			Background(lipgloss.Color("#C89A3A"))
	letterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#8C8C8C"))
)

// renderGrid draws a side×side board with the active cell filled.
func renderGrid(side, active int) string {
	if side <= 0 {
		return ""
	}
	rows := make([]string, 0, side)
	for r := 0; r < side; r++ {
		cells := make([]string, 0, side)
		for c := 0; c < side; c++ {
			style := cellStyle
			if r*side+c == active {
				style = activeCellStyle
			}
			cells = append(cells, style.Render(""))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderLetter draws the letter in a box sized to its display width.
func renderLetter(letter string) string {
	width := max(cellWidth, runewidth.StringWidth(letter))
	return letterStyle.Render(centerText(letter, width))
}

func centerText(text string, width int) string {
	pad := width - runewidth.StringWidth(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}
