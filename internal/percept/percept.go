// Package percept maps hypothesised hazard and obstruction placements to the
// cells where the agent would sense them, and models the observations the
// agent has collected.
package percept

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"warehouse/internal/grid"
)

// SignalKind is the kind of percept sensed at a cell.
type SignalKind int

const (
	// HazardAdjacency (creaking) is sensed next to the damaged floor cell.
	HazardAdjacency SignalKind = iota + 1
	// ObstructionAdjacency (noise) is sensed next to the forklift cell.
	ObstructionAdjacency
)

// ErrUnknownSignal is returned when a signal name cannot be parsed.
var ErrUnknownSignal = errors.New("unknown signal kind")

// Valid reports whether k is one of the known kinds.
func (k SignalKind) Valid() bool {
	return k == HazardAdjacency || k == ObstructionAdjacency
}

// Symbol returns the one-letter propositional symbol (C or N).
func (k SignalKind) Symbol() string {
	switch k {
	case HazardAdjacency:
		return "C"
	case ObstructionAdjacency:
		return "N"
	default:
		return "?"
	}
}

func (k SignalKind) String() string {
	switch k {
	case HazardAdjacency:
		return "creak"
	case ObstructionAdjacency:
		return "noise"
	default:
		return fmt.Sprintf("signal(%d)", int(k))
	}
}

// ParseSignalKind accepts the symbol, the percept name or the thing it
// signals, case-insensitively.
func ParseSignalKind(s string) (SignalKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "creak", "hazard":
		return HazardAdjacency, nil
	case "n", "noise", "obstruction":
		return ObstructionAdjacency, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSignal, s)
}

// Key identifies one observation: a signal kind at a cell.
type Key struct {
	Kind SignalKind
	Cell grid.Cell
}

func (k Key) String() string {
	return k.Kind.Symbol() + k.Cell.String()
}

// Observations maps each observed (kind, cell) to the sensed truth value.
type Observations map[Key]bool

// Keys returns the observation keys in a stable order: by cell, then kind.
func (o Observations) Keys() []Key {
	keys := make([]Key, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Cell.Y != b.Cell.Y {
			return a.Cell.Y < b.Cell.Y
		}
		if a.Cell.X != b.Cell.X {
			return a.Cell.X < b.Cell.X
		}
		return a.Kind < b.Kind
	})
	return keys
}

// With returns a copy of o with one more observation.
func (o Observations) With(kind SignalKind, c grid.Cell, value bool) Observations {
	out := make(Observations, len(o)+1)
	for k, v := range o {
		out[k] = v
	}
	out[Key{Kind: kind, Cell: c}] = value
	return out
}

// String renders the observations as "¬C(1,1) N(2,1)".
func (o Observations) String() string {
	parts := make([]string, 0, len(o))
	for _, k := range o.Keys() {
		if o[k] {
			parts = append(parts, k.String())
		} else {
			parts = append(parts, "¬"+k.String())
		}
	}
	return strings.Join(parts, " ")
}

// DeriveHazardSignal returns the cells where creaking is sensed given the
// set of damaged cells.
func DeriveHazardSignal(hazards grid.CellSet) grid.CellSet {
	return adjacentTo(hazards)
}

// DeriveObstructionSignal returns the cells where noise is sensed given the
// set of forklift cells.
func DeriveObstructionSignal(obstructions grid.CellSet) grid.CellSet {
	return adjacentTo(obstructions)
}

// Derive dispatches on kind. It returns false for an unknown kind.
func Derive(kind SignalKind, sources grid.CellSet) (grid.CellSet, bool) {
	switch kind {
	case HazardAdjacency:
		return DeriveHazardSignal(sources), true
	case ObstructionAdjacency:
		return DeriveObstructionSignal(sources), true
	}
	return nil, false
}

func adjacentTo(sources grid.CellSet) grid.CellSet {
	out := grid.NewCellSet()
	for _, c := range grid.Coords {
		for _, n := range grid.Neighbors(c) {
			if sources.Has(n) {
				out.Add(c)
				break
			}
		}
	}
	return out
}
