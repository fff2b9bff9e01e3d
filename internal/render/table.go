package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a static table rendered with padded, pipe-separated columns.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates an empty table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row. Cells beyond the header count are dropped on render.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// String renders the table, or "" when it has no rows.
func (t *Table) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// lipgloss Width includes padding
	for i := range widths {
		widths[i] += 2
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	body := lipgloss.NewStyle().Padding(0, 1)

	var sb strings.Builder
	writeRow(&sb, header, widths, t.Headers)

	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(strings.Repeat("-", total))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		writeRow(&sb, body, widths, row)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, style lipgloss.Style, widths []int, cells []string) {
	n := len(cells)
	if n > len(widths) {
		n = len(widths)
	}
	for i := 0; i < n; i++ {
		sb.WriteString(style.Width(widths[i]).Render(cells[i]))
		if i < n-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")
}
