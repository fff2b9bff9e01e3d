package render

import (
	"github.com/charmbracelet/lipgloss"

	"warehouse/internal/grid"
	"warehouse/internal/logging"
	"warehouse/internal/logic"
)

// Palette colours per label, matching the diagram legend.
var palette = map[logic.Label]lipgloss.Color{
	logic.LabelSafe:       lipgloss.Color("#c6f6d5"),
	logic.LabelBoth:       lipgloss.Color("#f9d6d6"),
	logic.LabelHazard:     lipgloss.Color("#fff3b0"),
	logic.LabelObstructed: lipgloss.Color("#bcdff9"),
	logic.LabelUnknown:    lipgloss.Color("#e6e6e6"),
}

var cellStyle = lipgloss.NewStyle().
	Width(7).
	Align(lipgloss.Center).
	Foreground(lipgloss.Color("#000000")).
	Border(lipgloss.NormalBorder())

// Styled draws the floor as coloured boxes, top row first.
func Styled(s logic.Summary) string {
	lines := make([]string, 0, grid.Size)
	for _, y := range rows() {
		cells := make([]string, 0, grid.Size)
		for x := 1; x <= grid.Size; x++ {
			label := s.Classify(grid.Cell{X: x, Y: y})
			cells = append(cells, cellStyle.Background(palette[label]).Render(string(label)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	logging.RenderDebug("rendered styled grid for %d models", s.Count)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
