package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/grid"
	"warehouse/internal/percept"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Scenarios, 2)

	east, ok := cfg.Scenario("east")
	require.True(t, ok)
	obs, err := east.Observations()
	require.NoError(t, err)
	assert.Len(t, obs, 4)
	assert.True(t, obs[percept.Key{Kind: percept.HazardAdjacency, Cell: grid.Cell{X: 2, Y: 1}}])

	_, ok = cfg.Scenario("missing")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Scenarios, cfg.Scenarios)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.yaml")
	content := `
logging:
  level: debug
kernel:
  verify: true
scenarios:
  - name: probe
    percepts:
      - {signal: creak, x: 1, y: 1, value: false}
      - {signal: noise, x: 1, y: 1, value: true}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Kernel.Verify)
	require.Len(t, cfg.Scenarios, 1)

	obs, err := cfg.Scenarios[0].Observations()
	require.NoError(t, err)
	assert.True(t, obs[percept.Key{Kind: percept.ObstructionAdjacency, Cell: grid.Origin}])
}

func TestLoadRejectsBadScenarios(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown signal", "scenarios:\n  - name: s\n    percepts:\n      - {signal: stench, x: 1, y: 1}\n"},
		{"off floor", "scenarios:\n  - name: s\n    percepts:\n      - {signal: C, x: 4, y: 1}\n"},
		{"conflict", "scenarios:\n  - name: s\n    percepts:\n      - {signal: C, x: 1, y: 1, value: true}\n      - {signal: C, x: 1, y: 1, value: false}\n"},
		{"no name", "scenarios:\n  - percepts: []\n"},
		{"duplicate", "scenarios:\n  - name: s\n  - name: s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.True(t, errors.Is(err, ErrInvalidScenario), "got %v", err)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "warehouse.yaml")
	cfg := DefaultConfig()
	cfg.Kernel.Verify = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Kernel.Verify)
	assert.Equal(t, cfg.Scenarios, loaded.Scenarios)
}
