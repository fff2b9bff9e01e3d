package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/grid"
	"warehouse/internal/logging"
	"warehouse/internal/percept"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(logging.Reset)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRunDefaultScenarios(t *testing.T) {
	out, err := execute(t, "run", "--verify")
	require.NoError(t, err)

	assert.Contains(t, out, "--- Scenario start: ¬C(1,1) ¬N(1,1) ---")
	assert.Contains(t, out, "Models consistent: 36")
	assert.Contains(t, out, "Models consistent: 8")
	assert.Contains(t, out, "Possible damaged-floor locations: [(2,2) (3,1)]")
	assert.Equal(t, 2, strings.Count(out, "Kernel cross-check: ok"))
}

func TestRunSelectedScenario(t *testing.T) {
	out, err := execute(t, "run", "--scenario", "east")
	require.NoError(t, err)
	assert.NotContains(t, out, "Scenario start")
	assert.Contains(t, out, "Scenario east")

	_, err = execute(t, "run", "--scenario", "west")
	assert.Error(t, err)
}

func TestRunRecordAndHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	t.Setenv("WAREHOUSE_DB", db)

	out, err := execute(t, "run", "--scenario", "start")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded run ")

	out, err = execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO")
	assert.Contains(t, out, "start")
}

func TestEnumerate(t *testing.T) {
	out, err := execute(t, "enumerate", "--obs", "C:1,1=false", "--obs", "N:1,1=false", "--models", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Models consistent: 36")
	assert.Contains(t, out, "Kernel cross-check: ok")
	assert.Contains(t, out, " 36  D(3,3) F(3,3)")
}

func TestEnumerateNoPercepts(t *testing.T) {
	out, err := execute(t, "enumerate")
	require.NoError(t, err)
	assert.Contains(t, out, "Models consistent: 64")
}

func TestEnumerateBadPercept(t *testing.T) {
	_, err := execute(t, "enumerate", "--obs", "S:1,1=true")
	assert.ErrorIs(t, err, percept.ErrUnknownSignal)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.yaml")
	out, err := execute(t, "init-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	out, err = execute(t, "--config", path, "run")
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario east")
}

func TestParseObservation(t *testing.T) {
	tests := []struct {
		in      string
		want    percept.Key
		value   bool
		wantErr bool
	}{
		{in: "C:2,1=true", want: percept.Key{Kind: percept.HazardAdjacency, Cell: grid.Cell{X: 2, Y: 1}}, value: true},
		{in: "noise:3,3=false", want: percept.Key{Kind: percept.ObstructionAdjacency, Cell: grid.Cell{X: 3, Y: 3}}},
		{in: "C:2,1", wantErr: true},
		{in: "C:2,1=perhaps", wantErr: true},
		{in: "C2,1=true", wantErr: true},
		{in: "C:21=true", wantErr: true},
		{in: "C:a,1=true", wantErr: true},
		{in: "C:0,1=true", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, value, err := parseObservation(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
			assert.Equal(t, tt.value, value)
		})
	}
}
