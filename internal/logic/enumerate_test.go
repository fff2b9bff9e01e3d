package logic

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/grid"
	"warehouse/internal/percept"
)

func cell(x, y int) grid.Cell { return grid.Cell{X: x, Y: y} }

func scenarioA() percept.Observations {
	return percept.Observations{
		{Kind: percept.HazardAdjacency, Cell: grid.Origin}:      false,
		{Kind: percept.ObstructionAdjacency, Cell: grid.Origin}: false,
	}
}

func scenarioB() percept.Observations {
	return scenarioA().
		With(percept.HazardAdjacency, cell(2, 1), true).
		With(percept.ObstructionAdjacency, cell(2, 1), false)
}

func TestEnumerateNoObservations(t *testing.T) {
	models, err := EnumerateModels(nil)
	require.NoError(t, err)
	assert.Len(t, models, 64)

	colocated := 0
	for _, m := range models {
		if m.Hazard == m.Obstruction {
			colocated++
		}
	}
	assert.Equal(t, 8, colocated, "hazard and obstruction may share a cell")
}

func TestEnumerateOrder(t *testing.T) {
	models, err := EnumerateModels(percept.Observations{})
	require.NoError(t, err)
	require.NotEmpty(t, models)

	assert.Equal(t, cell(2, 1), models[0].Hazard)
	assert.Equal(t, cell(2, 1), models[0].Obstruction)
	assert.Equal(t, cell(2, 1), models[1].Hazard)
	assert.Equal(t, cell(3, 1), models[1].Obstruction)
	assert.Equal(t, cell(3, 3), models[63].Hazard)
	assert.Equal(t, cell(3, 3), models[63].Obstruction)
}

func TestEnumerateWorldsSatisfyObservations(t *testing.T) {
	for name, obs := range map[string]percept.Observations{
		"none": nil,
		"A":    scenarioA(),
		"B":    scenarioB(),
	} {
		t.Run(name, func(t *testing.T) {
			models, err := EnumerateModels(obs)
			require.NoError(t, err)
			for _, m := range models {
				assert.NotEqual(t, grid.Origin, m.Hazard)
				assert.NotEqual(t, grid.Origin, m.Obstruction)
				assert.True(t, percept.DeriveHazardSignal(grid.NewCellSet(m.Hazard)).Equal(m.HazardSignal))
				assert.True(t, percept.DeriveObstructionSignal(grid.NewCellSet(m.Obstruction)).Equal(m.ObstructionSignal))
				for k, want := range obs {
					got, err := m.Signal(k.Kind, k.Cell)
					require.NoError(t, err)
					assert.Equal(t, want, got, "world %v disagrees on %v", m, k)
				}
			}
		})
	}
}

func TestEnumerateScenarioA(t *testing.T) {
	models, err := EnumerateModels(scenarioA())
	require.NoError(t, err)
	assert.Len(t, models, 36)

	for _, m := range models {
		for _, near := range []grid.Cell{cell(1, 2), cell(2, 1)} {
			assert.NotEqual(t, near, m.Hazard)
			assert.NotEqual(t, near, m.Obstruction)
		}
	}
}

func TestEnumerateScenarioB(t *testing.T) {
	a, err := EnumerateModels(scenarioA())
	require.NoError(t, err)
	b, err := EnumerateModels(scenarioB())
	require.NoError(t, err)

	assert.Len(t, b, 8)
	assert.Less(t, len(b), len(a))
	for _, m := range b {
		assert.Contains(t, []grid.Cell{cell(3, 1), cell(2, 2)}, m.Hazard)
	}
}

func TestEnumerateIdempotent(t *testing.T) {
	first, err := EnumerateModels(scenarioB())
	require.NoError(t, err)
	second, err := EnumerateModels(scenarioB())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("EnumerateModels not deterministic (-first +second):\n%s", diff)
	}
}

func TestEnumerateMonotone(t *testing.T) {
	base, err := EnumerateModels(scenarioA())
	require.NoError(t, err)
	inBase := make(map[[2]grid.Cell]bool, len(base))
	for _, m := range base {
		inBase[[2]grid.Cell{m.Hazard, m.Obstruction}] = true
	}

	for _, c := range grid.Coords {
		for _, kind := range []percept.SignalKind{percept.HazardAdjacency, percept.ObstructionAdjacency} {
			for _, v := range []bool{true, false} {
				models, err := EnumerateModels(scenarioA().With(kind, c, v))
				require.NoError(t, err)
				assert.LessOrEqual(t, len(models), len(base))
				for _, m := range models {
					assert.True(t, inBase[[2]grid.Cell{m.Hazard, m.Obstruction}],
						"adding %s%v=%v produced new world %v", kind.Symbol(), c, v, m)
				}
			}
		}
	}
}

func TestEnumerateContradiction(t *testing.T) {
	// Creaking at the origin requires damage at (2,1) or (1,2); ruling both
	// out leaves nothing.
	obs := percept.Observations{
		{Kind: percept.HazardAdjacency, Cell: grid.Origin}: true,
		{Kind: percept.HazardAdjacency, Cell: cell(3, 1)}:  false,
		{Kind: percept.HazardAdjacency, Cell: cell(1, 3)}:  false,
	}
	models, err := EnumerateModels(obs)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestEnumerateInvalidSignal(t *testing.T) {
	obs := scenarioA()
	obs[percept.Key{Kind: percept.SignalKind(9), Cell: cell(2, 2)}] = true

	models, err := EnumerateModels(obs)
	require.Error(t, err)
	assert.Nil(t, models)

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, cell(2, 2), invalid.Key.Cell)
}

func TestWorldSignalUnknownKind(t *testing.T) {
	w := World{HazardSignal: grid.NewCellSet(), ObstructionSignal: grid.NewCellSet()}
	_, err := w.Signal(percept.SignalKind(0), grid.Origin)
	var invalid *InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}
