package scenario

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"warehouse/internal/config"
	"warehouse/internal/logic"
	"warehouse/internal/mangle"
	"warehouse/internal/percept"
	"warehouse/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingVerifier struct{}

func (failingVerifier) Verify([]logic.World, logic.Summary) error {
	return mangle.ErrKernelMismatch
}

type memoryRecorder struct {
	mu    sync.Mutex
	names []string
}

func (m *memoryRecorder) Record(_ context.Context, name string, _ percept.Observations, _ logic.Summary) (store.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append(m.names, name)
	return store.Run{ID: "run-" + name, Scenario: name}, nil
}

func TestRunDefaultScenarios(t *testing.T) {
	r := &Runner{Verifier: mangle.NewKernel(mangle.DefaultConfig())}
	results, err := r.Run(context.Background(), config.DefaultConfig().Scenarios)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "start", results[0].Scenario.Name)
	assert.Equal(t, 36, results[0].Summary.Count)
	assert.Equal(t, "east", results[1].Scenario.Name)
	assert.Equal(t, 8, results[1].Summary.Count)
	for _, res := range results {
		assert.True(t, res.Verified)
		assert.Len(t, res.Models, res.Summary.Count)
	}
}

func TestRunRecordsEachScenario(t *testing.T) {
	rec := &memoryRecorder{}
	r := &Runner{Recorder: rec, Concurrency: 1}
	results, err := r.Run(context.Background(), config.DefaultConfig().Scenarios)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"start", "east"}, rec.names)
	assert.Equal(t, "run-start", results[0].RunID)
	assert.False(t, results[0].Verified)
}

func TestRunWithSQLiteStore(t *testing.T) {
	s, err := store.NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	r := &Runner{Recorder: s}
	results, err := r.Run(context.Background(), config.DefaultConfig().Scenarios)
	require.NoError(t, err)

	got, err := s.Get(context.Background(), results[1].RunID)
	require.NoError(t, err)
	assert.True(t, results[1].Summary.Equal(got.Summary))
}

func TestRunVerifierFailure(t *testing.T) {
	r := &Runner{Verifier: failingVerifier{}}
	_, err := r.Run(context.Background(), config.DefaultConfig().Scenarios)
	assert.True(t, errors.Is(err, mangle.ErrKernelMismatch))
}

func TestRunInvalidScenario(t *testing.T) {
	bad := config.Scenario{Name: "bad", Percepts: []config.PerceptSpec{{Signal: "smell", X: 1, Y: 1}}}
	_, err := (&Runner{}).Run(context.Background(), []config.Scenario{bad})
	assert.True(t, errors.Is(err, config.ErrInvalidScenario))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Runner{}).Run(ctx, config.DefaultConfig().Scenarios)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunEmpty(t *testing.T) {
	results, err := (&Runner{}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
