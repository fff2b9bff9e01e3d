// Package logic enumerates the possible warehouse worlds consistent with the
// background axioms and the agent's observations, and derives the facts that
// hold across all of them.
//
// The hypothesis space is tiny (81 placements), so every call re-enumerates
// from scratch and nothing is cached between calls.
package logic

import (
	"fmt"

	"warehouse/internal/grid"
	"warehouse/internal/percept"
)

// World is one complete hypothesis: where the damaged floor and the forklift
// are, plus the percepts that placement implies.
type World struct {
	Hazard            grid.Cell
	Obstruction       grid.Cell
	HazardSignal      grid.CellSet
	ObstructionSignal grid.CellSet
}

// Signal evaluates a percept of the given kind at c in this world.
func (w World) Signal(kind percept.SignalKind, c grid.Cell) (bool, error) {
	switch kind {
	case percept.HazardAdjacency:
		return w.HazardSignal.Has(c), nil
	case percept.ObstructionAdjacency:
		return w.ObstructionSignal.Has(c), nil
	}
	return false, &InvalidInputError{Key: percept.Key{Kind: kind, Cell: c}}
}

// Safe reports whether c holds neither the hazard nor the obstruction.
func (w World) Safe(c grid.Cell) bool {
	return c != w.Hazard && c != w.Obstruction
}

func (w World) String() string {
	return fmt.Sprintf("D%s F%s", w.Hazard, w.Obstruction)
}

// InvalidInputError reports an observation with an unrecognised signal kind.
type InvalidInputError struct {
	Key percept.Key
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid observation %s: unknown signal kind %d", e.Key.Cell, int(e.Key.Kind))
}

// EnumerateModels returns every world with exactly one hazard and one
// obstruction, neither on the origin, whose derived percepts agree with every
// observation. Worlds come out hazard-major in grid.Coords order.
func EnumerateModels(obs percept.Observations) ([]World, error) {
	keys := obs.Keys()
	for _, k := range keys {
		if !k.Kind.Valid() {
			return nil, &InvalidInputError{Key: k}
		}
	}

	var models []World
	for _, d := range grid.Coords {
		hazards := grid.NewCellSet(d)
		for _, f := range grid.Coords {
			// The start square is safe.
			if d == grid.Origin || f == grid.Origin {
				continue
			}

			w := World{
				Hazard:            d,
				Obstruction:       f,
				HazardSignal:      percept.DeriveHazardSignal(hazards),
				ObstructionSignal: percept.DeriveObstructionSignal(grid.NewCellSet(f)),
			}
			if consistent(w, obs, keys) {
				models = append(models, w)
			}
		}
	}
	return models, nil
}

func consistent(w World, obs percept.Observations, keys []percept.Key) bool {
	for _, k := range keys {
		got, err := w.Signal(k.Kind, k.Cell)
		if err != nil || got != obs[k] {
			return false
		}
	}
	return true
}
