package mangle

import (
	_ "embed"
	"errors"
	"fmt"

	"warehouse/internal/grid"
	"warehouse/internal/logging"
	"warehouse/internal/logic"
)

//go:embed warehouse.mg
var warehouseProgram string

// ErrKernelMismatch is returned when the Datalog derivation disagrees with
// the enumerating aggregator.
var ErrKernelMismatch = errors.New("kernel derivation disagrees with summary")

// Kernel re-derives provable and possible facts from a model set with Mangle
// rules. Each call builds a fresh engine, so a Kernel is safe for concurrent
// use.
type Kernel struct {
	config Config
}

// NewKernel returns a kernel using cfg for its per-call engines.
func NewKernel(cfg Config) *Kernel {
	return &Kernel{config: cfg}
}

// Program returns the Datalog source the kernel evaluates.
func Program() string {
	return warehouseProgram
}

// Derive asserts one world/5 fact per model and reads back the derived
// summary predicates.
func (k *Kernel) Derive(models []logic.World) (logic.Summary, error) {
	engine := NewEngine(k.config)
	engine.ToggleAutoEval(false)
	if err := engine.LoadSchemaString(warehouseProgram); err != nil {
		return logic.Summary{}, fmt.Errorf("load warehouse program: %w", err)
	}

	facts := make([]Fact, 0, len(grid.Coords)+len(models))
	for _, c := range grid.Coords {
		facts = append(facts, Fact{Predicate: "cell", Args: []interface{}{int64(c.X), int64(c.Y)}})
	}
	for i, m := range models {
		facts = append(facts, Fact{Predicate: "world", Args: []interface{}{
			int64(i),
			int64(m.Hazard.X), int64(m.Hazard.Y),
			int64(m.Obstruction.X), int64(m.Obstruction.Y),
		}})
	}
	if err := engine.AddFacts(facts); err != nil {
		return logic.Summary{}, fmt.Errorf("assert worlds: %w", err)
	}
	if err := engine.RecomputeRules(); err != nil {
		return logic.Summary{}, err
	}

	s := logic.Summary{Count: len(models)}
	targets := []struct {
		predicate string
		set       *grid.CellSet
	}{
		{"provably_safe", &s.ProvablySafe},
		{"provably_hazard", &s.ProvablyHazard},
		{"provably_obstruction", &s.ProvablyObstruction},
		{"possible_hazard", &s.PossibleHazard},
		{"possible_obstruction", &s.PossibleObstruction},
	}
	for _, t := range targets {
		cells, err := cellsOf(engine, t.predicate)
		if err != nil {
			return logic.Summary{}, err
		}
		*t.set = cells
	}

	logging.KernelDebug("derived %d provably safe cells from %d worlds", s.ProvablySafe.Len(), s.Count)
	return s, nil
}

// Verify derives the summary independently and compares it with want.
func (k *Kernel) Verify(models []logic.World, want logic.Summary) error {
	got, err := k.Derive(models)
	if err != nil {
		return err
	}
	if !got.Equal(want) {
		logging.KernelError("kernel mismatch: kernel safe=%v summary safe=%v", got.ProvablySafe, want.ProvablySafe)
		return fmt.Errorf("%w: kernel safe=%v hazard=%v obstruction=%v, summary safe=%v hazard=%v obstruction=%v",
			ErrKernelMismatch,
			got.ProvablySafe, got.PossibleHazard, got.PossibleObstruction,
			want.ProvablySafe, want.PossibleHazard, want.PossibleObstruction)
	}
	return nil
}

func cellsOf(engine *Engine, predicate string) (grid.CellSet, error) {
	facts, err := engine.GetFacts(predicate)
	if err != nil {
		return nil, err
	}
	out := grid.NewCellSet()
	for _, f := range facts {
		if len(f.Args) != 2 {
			return nil, fmt.Errorf("%s: expected 2 args, got %d", predicate, len(f.Args))
		}
		x, okX := f.Args[0].(int64)
		y, okY := f.Args[1].(int64)
		if !okX || !okY {
			return nil, fmt.Errorf("%s: non-numeric cell %v", predicate, f.Args)
		}
		out.Add(grid.Cell{X: int(x), Y: int(y)})
	}
	return out, nil
}
