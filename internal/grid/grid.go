// Package grid defines the fixed 3x3 coordinate space of the warehouse and
// its orthogonal adjacency relation.
package grid

import "fmt"

// Size is the side length of the warehouse floor.
const Size = 3

// Cell is a floor coordinate, 1-indexed on both axes.
type Cell struct {
	X int
	Y int
}

// Origin is the agent's start square. It is known to be safe.
var Origin = Cell{X: 1, Y: 1}

// Coords is the universe of cells, rows bottom to top, columns left to right.
var Coords = buildCoords()

func buildCoords() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for y := 1; y <= Size; y++ {
		for x := 1; x <= Size; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

// String renders the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// InBounds reports whether the cell lies on the floor.
func (c Cell) InBounds() bool {
	return c.X >= 1 && c.X <= Size && c.Y >= 1 && c.Y <= Size
}

var offsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Neighbors returns the orthogonally adjacent cells of c that lie on the floor.
func Neighbors(c Cell) []Cell {
	neigh := make([]Cell, 0, len(offsets))
	for _, d := range offsets {
		n := Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if n.InBounds() {
			neigh = append(neigh, n)
		}
	}
	return neigh
}
