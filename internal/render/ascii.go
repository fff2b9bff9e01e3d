// Package render turns a knowledge summary into text for terminals and logs.
package render

import (
	"fmt"
	"io"
	"strings"

	"warehouse/internal/grid"
	"warehouse/internal/logic"
	"warehouse/internal/percept"
)

// rows lists y from the top of the floor down.
func rows() []int {
	out := make([]int, 0, grid.Size)
	for y := grid.Size; y >= 1; y-- {
		out = append(out, y)
	}
	return out
}

// ASCII draws the floor top row first, one label per cell.
func ASCII(s logic.Summary) string {
	lines := make([]string, 0, grid.Size)
	for _, y := range rows() {
		cells := make([]string, 0, grid.Size)
		for x := 1; x <= grid.Size; x++ {
			cells = append(cells, fmt.Sprintf("%-5s", s.Classify(grid.Cell{X: x, Y: y})))
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return strings.Join(lines, "\n")
}

// Report writes a human-readable summary of one scenario.
func Report(w io.Writer, name string, obs percept.Observations, s logic.Summary, drawing string) error {
	var b strings.Builder
	if len(obs) > 0 {
		fmt.Fprintf(&b, "--- Scenario %s: %s ---\n", name, obs)
	} else {
		fmt.Fprintf(&b, "--- Scenario %s ---\n", name)
	}
	fmt.Fprintf(&b, "Models consistent: %d\n", s.Count)
	fmt.Fprintf(&b, "Provably safe: %s\n", s.ProvablySafe)
	fmt.Fprintf(&b, "Possible damaged-floor locations: %s\n", s.PossibleHazard)
	fmt.Fprintf(&b, "Possible forklift locations: %s\n", s.PossibleObstruction)
	if s.ProvablyHazard.Len() > 0 {
		fmt.Fprintf(&b, "Damaged floor located: %s\n", s.ProvablyHazard)
	}
	if s.ProvablyObstruction.Len() > 0 {
		fmt.Fprintf(&b, "Forklift located: %s\n", s.ProvablyObstruction)
	}
	fmt.Fprintf(&b, "\nGrid:\n%s\n", drawing)

	_, err := io.WriteString(w, b.String())
	return err
}
