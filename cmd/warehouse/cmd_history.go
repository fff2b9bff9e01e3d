package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"warehouse/internal/render"
	"warehouse/internal/store"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.NewRunStore(opts.cfg.Store.DatabasePath)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				run, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Run %s at %s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Percepts: %s\n", run.Observations)
				return render.Report(out, run.Scenario, nil, run.Summary, render.ASCII(run.Summary))
			}

			runs, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			table := render.NewTable("ID", "SCENARIO", "MODELS", "SAFE", "PERCEPTS", "WHEN")
			for _, run := range runs {
				table.AddRow(run.ID, run.Scenario, strconv.Itoa(run.Summary.Count),
					run.Summary.ProvablySafe.String(), run.Observations,
					run.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			_, err = fmt.Fprint(out, table.String())
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list")
	return cmd
}
