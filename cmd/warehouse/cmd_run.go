package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"warehouse/internal/config"
	"warehouse/internal/logic"
	"warehouse/internal/mangle"
	"warehouse/internal/render"
	"warehouse/internal/scenario"
	"warehouse/internal/store"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		verify bool
		record bool
		styled bool
		only   []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the configured scenarios",
		Long: `Evaluates every scenario in the config (or those named with --scenario),
printing the model count, provably safe cells, possible hazard locations and
a grid for each.

  --verify  re-derive each summary with the Mangle kernel and fail on mismatch
  --record  store each run in the SQLite history`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			scenarios, err := selectScenarios(cfg, only)
			if err != nil {
				return err
			}

			runner := &scenario.Runner{}
			if verify || cfg.Kernel.Verify {
				runner.Verifier = mangle.NewKernel(cfg.Kernel.Mangle)
			}
			if record || cfg.Store.Enabled {
				s, err := store.NewRunStore(cfg.Store.DatabasePath)
				if err != nil {
					return err
				}
				defer s.Close()
				runner.Recorder = s
			}

			results, err := runner.Run(cmd.Context(), scenarios)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := writeResult(out, res, styled); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Cross-check summaries with the Mangle kernel")
	cmd.Flags().BoolVar(&record, "record", false, "Record runs in the history database")
	cmd.Flags().BoolVar(&styled, "styled", false, "Draw a coloured grid instead of ASCII")
	cmd.Flags().StringSliceVarP(&only, "scenario", "s", nil, "Run only the named scenarios")
	return cmd
}

func selectScenarios(cfg *config.Config, names []string) ([]config.Scenario, error) {
	if len(names) == 0 {
		return cfg.Scenarios, nil
	}
	out := make([]config.Scenario, 0, len(names))
	for _, name := range names {
		sc, ok := cfg.Scenario(name)
		if !ok {
			return nil, fmt.Errorf("%w: no scenario named %q", config.ErrInvalidScenario, name)
		}
		out = append(out, sc)
	}
	return out, nil
}

func writeResult(w io.Writer, res scenario.Result, styled bool) error {
	if err := render.Report(w, res.Scenario.Name, res.Observations, res.Summary, drawGrid(res.Summary, styled)); err != nil {
		return err
	}
	if res.Verified {
		fmt.Fprintln(w, "Kernel cross-check: ok")
	}
	if res.RunID != "" {
		fmt.Fprintf(w, "Recorded run %s\n", res.RunID)
	}
	return nil
}

func drawGrid(s logic.Summary, styled bool) string {
	if styled {
		return render.Styled(s)
	}
	return render.ASCII(s)
}
