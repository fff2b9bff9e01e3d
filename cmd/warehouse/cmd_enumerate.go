package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"warehouse/internal/grid"
	"warehouse/internal/logic"
	"warehouse/internal/mangle"
	"warehouse/internal/percept"
	"warehouse/internal/render"
)

func newEnumerateCmd(opts *options) *cobra.Command {
	var (
		raw        []string
		listModels bool
		verify     bool
		styled     bool
	)

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Enumerate the worlds consistent with ad-hoc percepts",
		Long: `Each --obs flag adds one percept as KIND:X,Y=BOOL, where KIND is C (creak)
or N (noise).

Example:
  warehouse enumerate --obs C:1,1=false --obs N:1,1=false --obs C:2,1=true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := parseObservations(raw)
			if err != nil {
				return err
			}

			models, err := logic.EnumerateModels(obs)
			if err != nil {
				return err
			}
			summary := logic.Summarize(models)

			verified := false
			if verify || opts.cfg.Kernel.Verify {
				if err := mangle.NewKernel(opts.cfg.Kernel.Mangle).Verify(models, summary); err != nil {
					return err
				}
				verified = true
			}

			out := cmd.OutOrStdout()
			if err := render.Report(out, "ad-hoc", obs, summary, drawGrid(summary, styled)); err != nil {
				return err
			}
			if verified {
				fmt.Fprintln(out, "Kernel cross-check: ok")
			}
			if listModels {
				fmt.Fprintln(out, "\nModels:")
				for i, m := range models {
					fmt.Fprintf(out, "%3d  %s\n", i+1, m)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&raw, "obs", nil, "Percept KIND:X,Y=BOOL (repeatable)")
	cmd.Flags().BoolVar(&listModels, "models", false, "List every consistent world")
	cmd.Flags().BoolVar(&verify, "verify", false, "Cross-check with the Mangle kernel")
	cmd.Flags().BoolVar(&styled, "styled", false, "Draw a coloured grid instead of ASCII")
	return cmd
}

func parseObservations(raw []string) (percept.Observations, error) {
	obs := make(percept.Observations, len(raw))
	for _, r := range raw {
		key, value, err := parseObservation(r)
		if err != nil {
			return nil, err
		}
		obs[key] = value
	}
	return obs, nil
}

// parseObservation parses "C:2,1=true".
func parseObservation(s string) (percept.Key, bool, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return percept.Key{}, false, fmt.Errorf("percept %q: missing =BOOL", s)
	}
	value, err := strconv.ParseBool(strings.TrimSpace(rhs))
	if err != nil {
		return percept.Key{}, false, fmt.Errorf("percept %q: %w", s, err)
	}

	kindStr, coords, ok := strings.Cut(lhs, ":")
	if !ok {
		return percept.Key{}, false, fmt.Errorf("percept %q: expected KIND:X,Y", s)
	}
	kind, err := percept.ParseSignalKind(kindStr)
	if err != nil {
		return percept.Key{}, false, fmt.Errorf("percept %q: %w", s, err)
	}

	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return percept.Key{}, false, fmt.Errorf("percept %q: expected X,Y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return percept.Key{}, false, fmt.Errorf("percept %q: non-numeric coordinates", s)
	}
	c := grid.Cell{X: x, Y: y}
	if !c.InBounds() {
		return percept.Key{}, false, fmt.Errorf("percept %q: cell %s off the floor", s, c)
	}
	return percept.Key{Kind: kind, Cell: c}, value, nil
}
