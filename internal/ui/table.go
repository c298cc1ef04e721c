package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a static table from headers and rows. Column widths
// follow the widest cell.
func RenderTable(headers []string, rows [][]string) string {
	if err := validateTableData(headers, rows); err != nil {
		return Error("%v", err)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i] + 2}
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = row
	}

	height := len(rows)
	if height == 0 {
		height = 1
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(height),
	)
	t.SetStyles(tableStyles())

	return t.View()
}

func validateTableData(headers []string, rows [][]string) error {
	if len(headers) == 0 {
		return fmt.Errorf("table must have at least one header")
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return fmt.Errorf("row %d has %d columns, expected %d", i, len(row), len(headers))
		}
	}
	return nil
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorSecondary)
	s.Selected = lipgloss.NewStyle().Foreground(ColorText)
	s.Cell = s.Cell.Foreground(ColorText)
	return s
}
