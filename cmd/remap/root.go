package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ib-77/remap/pkg/config"
	"github.com/ib-77/remap/pkg/logging"
)

type rootOptions struct {
	verbosity  int
	configPath string
	cfg        *config.Config
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "remap",
		Short: "Route values and ranges through a staged range-mapping pipeline",
		Long: `remap reads an almanac (initial seeds plus ordered x-to-y map tables) and
reports the smallest value reachable from the seeds, both as single values and
as (start, length) ranges.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logging.SetupLogger(max(opts.verbosity, cfg.Verbosity), cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config file (REMAP_* env vars override it)")

	rootCmd.AddCommand(newSolveCmd(opts))
	rootCmd.AddCommand(newTraceCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
