package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/nback/internal/model"
	"github.com/verte-zerg/nback/internal/stats"
)

func buildSummaryTable(s model.Summary) table.Model {
	headers, cells := stats.SummaryRows(s)
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := runewidth.StringWidth(h)
		for _, row := range cells {
			width = max(width, runewidth.StringWidth(row[i]))
		}
		columns[i] = table.Column{Title: h, Width: width}
	}
	rows := make([]table.Row, 0, len(cells))
	for _, row := range cells {
		rows = append(rows, table.Row(row))
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	t.SetStyles(summaryTableStyles())
	// The bordered header takes two lines; keep every row visible.
	t.SetHeight(len(rows) + 2)
	return t
}

func summaryTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	// No row is selected in a static summary.
	styles.Selected = styles.Cell
	return styles
}
