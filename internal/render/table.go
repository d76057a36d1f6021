package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a minimal column-aligned table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

// AddRow appends a row. Missing cells render blank; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table. Column widths account for styled cells.
func (t *Table) View(s Styles) string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				if w := lipgloss.Width(row[i]); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(s.Title.Render(t.Title))
		b.WriteString("\n")
	}
	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = s.Bold.Render(pad(h, widths[i]))
	}
	b.WriteString(strings.Join(header, "  "))
	b.WriteString("\n")

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}
	b.WriteString(s.Muted.Render(strings.Join(rule, "  ")))

	for _, row := range t.Rows {
		b.WriteString("\n")
		cells := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return b.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func itoa(n int) string { return strconv.Itoa(n) }
