// Command warehouse enumerates the possible worlds of the 3x3 hazardous
// warehouse and reports what the agent provably knows.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"warehouse/internal/config"
	"warehouse/internal/logging"
)

// options carries the global flags and the loaded configuration.
type options struct {
	verbose    bool
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "warehouse",
		Short: "Model-enumeration knowledge base for the 3x3 hazardous warehouse",
		Long: `warehouse enumerates every placement of the damaged floor and the forklift
that is consistent with the agent's percepts, then reports which cells are
provably safe and where the hazards may be.

Percepts: C (creaking) is sensed next to the damaged floor, N (noise) next to
the forklift. The start square (1,1) is always safe.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.verbose {
				cfg.Logging.Level = "debug"
			}
			if err := logging.Initialize(cfg.Logging); err != nil {
				return err
			}
			opts.cfg = cfg
			logging.BootDebug("config loaded from %s: %d scenarios", opts.configPath, len(cfg.Scenarios))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "warehouse.yaml", "Path to the YAML config")

	root.AddCommand(
		newRunCmd(opts),
		newEnumerateCmd(opts),
		newHistoryCmd(opts),
		newInitConfigCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
