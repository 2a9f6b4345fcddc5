package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ib-77/remap/pkg/almanac"
)

func newTraceCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trace <almanac> <value>",
		Short: "Print a value after each stage of the almanac",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}

			a, err := almanac.ParseFile(args[0])
			if err != nil {
				return err
			}
			pipeline, err := a.Pipeline()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cats := a.Categories()
			steps := pipeline.Trace(v)

			if len(cats) > 0 {
				fmt.Fprintf(out, "%s %d\n", cats[0].Source, v)
			}
			for i, step := range steps {
				fmt.Fprintf(out, "%s %d\n", cats[i].Destination, step)
			}
			return nil
		},
	}
}
