package logic

import "warehouse/internal/grid"

// Summary aggregates a model set into what the agent knows.
type Summary struct {
	Count               int
	ProvablySafe        grid.CellSet
	ProvablyHazard      grid.CellSet
	ProvablyObstruction grid.CellSet
	PossibleHazard      grid.CellSet
	PossibleObstruction grid.CellSet
}

// ProvableFacts returns the cells that are safe, damaged, and hold the
// forklift in every model. An empty model set proves nothing.
func ProvableFacts(models []World) (safe, hazard, obstruction grid.CellSet) {
	safe, hazard, obstruction = grid.NewCellSet(), grid.NewCellSet(), grid.NewCellSet()
	if len(models) == 0 {
		return safe, hazard, obstruction
	}

	for _, c := range grid.Coords {
		allSafe, allHazard, allObstruction := true, true, true
		for _, m := range models {
			allSafe = allSafe && m.Safe(c)
			allHazard = allHazard && m.Hazard == c
			allObstruction = allObstruction && m.Obstruction == c
		}
		if allSafe {
			safe.Add(c)
		}
		if allHazard {
			hazard.Add(c)
		}
		if allObstruction {
			obstruction.Add(c)
		}
	}
	return safe, hazard, obstruction
}

// Summarize computes the provable and possible facts of a model set.
func Summarize(models []World) Summary {
	safe, hazard, obstruction := ProvableFacts(models)
	s := Summary{
		Count:               len(models),
		ProvablySafe:        safe,
		ProvablyHazard:      hazard,
		ProvablyObstruction: obstruction,
		PossibleHazard:      grid.NewCellSet(),
		PossibleObstruction: grid.NewCellSet(),
	}
	for _, m := range models {
		s.PossibleHazard.Add(m.Hazard)
		s.PossibleObstruction.Add(m.Obstruction)
	}
	return s
}

// Label is the display classification of a cell.
type Label string

const (
	LabelSafe       Label = "SAFE"
	LabelBoth       Label = "P:D+F"
	LabelHazard     Label = "P:D"
	LabelObstructed Label = "P:F"
	LabelUnknown    Label = "???"
)

// Classify labels c for display. Provably safe wins over possibilities.
func (s Summary) Classify(c grid.Cell) Label {
	d, f := s.PossibleHazard.Has(c), s.PossibleObstruction.Has(c)
	switch {
	case s.ProvablySafe.Has(c):
		return LabelSafe
	case d && f:
		return LabelBoth
	case d:
		return LabelHazard
	case f:
		return LabelObstructed
	default:
		return LabelUnknown
	}
}

// Equal reports whether two summaries carry the same count and sets.
func (s Summary) Equal(o Summary) bool {
	return s.Count == o.Count &&
		s.ProvablySafe.Equal(o.ProvablySafe) &&
		s.ProvablyHazard.Equal(o.ProvablyHazard) &&
		s.ProvablyObstruction.Equal(o.ProvablyObstruction) &&
		s.PossibleHazard.Equal(o.PossibleHazard) &&
		s.PossibleObstruction.Equal(o.PossibleObstruction)
}
