package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ib-77/remap/pkg/almanac"
	"github.com/ib-77/remap/pkg/logging"
	"github.com/ib-77/remap/pkg/rop/core"
)

func newSolveCmd(opts *rootOptions) *cobra.Command {
	var sequential bool

	cmd := &cobra.Command{
		Use:   "solve <almanac>",
		Short: "Print the minimum output for the seed values and for the seed ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("solve")
			done := logging.LogOperationStart(logger, "solve")
			defer done()

			a, err := almanac.ParseFile(args[0])
			if err != nil {
				log.Error().Err(err).Str("path", args[0]).Msg("Failed to parse almanac")
				return err
			}

			pipeline, err := a.Pipeline()
			if err != nil {
				return err
			}
			logger.Info().Int("stages", pipeline.Len()).Int("seeds", len(a.Seeds)).Msg("Almanac loaded")

			scalarMin, err := pipeline.MinimumScalar(a.Seeds)
			if err != nil {
				return fmt.Errorf("seed values: %w", err)
			}

			ranges, err := a.SeedRanges()
			if err != nil {
				return fmt.Errorf("seed ranges: %w", err)
			}

			var rangeMin uint64
			if opts.cfg.Parallel && !sequential {
				ctx := core.WithWorkerOptions(cmd.Context(), opts.cfg.Workers)
				rangeMin, err = pipeline.MinimumOutputParallel(ctx, ranges, opts.cfg.Workers)
			} else {
				rangeMin, err = pipeline.MinimumOutput(ranges)
			}
			if err != nil {
				return fmt.Errorf("seed ranges: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, scalarMin)
			fmt.Fprintln(out, rangeMin)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sequential, "sequential", false, "Route ranges on a single goroutine")
	return cmd
}
