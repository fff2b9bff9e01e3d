// Package scenario evaluates configured scenarios against the enumeration
// engine, optionally cross-checking each summary with the Datalog kernel and
// recording it in the run history.
package scenario

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"warehouse/internal/config"
	"warehouse/internal/logging"
	"warehouse/internal/logic"
	"warehouse/internal/percept"
	"warehouse/internal/store"
)

// Verifier independently re-derives a summary.
type Verifier interface {
	Verify(models []logic.World, want logic.Summary) error
}

// Recorder persists a finished run.
type Recorder interface {
	Record(ctx context.Context, scenario string, obs percept.Observations, summary logic.Summary) (store.Run, error)
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario     config.Scenario
	Observations percept.Observations
	Models       []logic.World
	Summary      logic.Summary
	Verified     bool
	RunID        string
	Duration     time.Duration
}

// Runner evaluates scenarios. Verifier and Recorder are optional.
type Runner struct {
	Verifier    Verifier
	Recorder    Recorder
	Concurrency int
}

// Run evaluates all scenarios concurrently and returns results in input
// order. The first failure cancels the remaining scenarios.
func (r *Runner) Run(ctx context.Context, scenarios []config.Scenario) ([]Result, error) {
	results := make([]Result, len(scenarios))

	eg, egCtx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		eg.SetLimit(r.Concurrency)
	}
	for i, sc := range scenarios {
		i, sc := i, sc
		eg.Go(func() error {
			res, err := r.RunOne(egCtx, sc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunOne evaluates a single scenario.
func (r *Runner) RunOne(ctx context.Context, sc config.Scenario) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	log := logging.Get(logging.CategoryScenario).With("scenario", sc.Name)
	start := time.Now()

	obs, err := sc.Observations()
	if err != nil {
		return Result{}, err
	}

	models, err := logic.EnumerateModels(obs)
	if err != nil {
		log.Error("enumeration failed: %v", err)
		return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	logging.EnumerateDebug("scenario %s: %d observations, %d models", sc.Name, len(obs), len(models))

	res := Result{
		Scenario:     sc,
		Observations: obs,
		Models:       models,
		Summary:      logic.Summarize(models),
	}

	if r.Verifier != nil {
		if err := r.Verifier.Verify(models, res.Summary); err != nil {
			return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		res.Verified = true
	}

	if r.Recorder != nil {
		run, err := r.Recorder.Record(ctx, sc.Name, obs, res.Summary)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		res.RunID = run.ID
	}

	res.Duration = time.Since(start)
	log.Info("evaluated: %d models, %d provably safe cells in %v", res.Summary.Count, res.Summary.ProvablySafe.Len(), res.Duration)
	return res, nil
}
