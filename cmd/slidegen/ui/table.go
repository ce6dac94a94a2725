package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders static rows under a header line.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row. Cells beyond the header count are dropped when
// rendering.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table. An empty table renders as "".
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// padding on both sides
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	header := styles.Bold.Padding(0, 1)
	cell := styles.Body.Padding(0, 1)
	sep := styles.Muted.Render("|")

	writeRow := func(style lipgloss.Style, cells []string) {
		for i := range widths {
			var v string
			if i < len(cells) {
				v = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(v))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeRow(header, t.Headers)
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(cell, row)
	}
	return sb.String()
}
