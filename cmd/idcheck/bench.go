package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/idcheck-mcp-server/evals"
	"github.com/olgasafonova/idcheck-mcp-server/internal/checker"
)

func (c *cli) benchCmd() *cobra.Command {
	var rounds int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure cache and batch performance on the reference identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rounds < 1 {
				return fmt.Errorf("--rounds must be at least 1")
			}
			ctx := cmd.Context()

			var inputs []string
			for _, tc := range evals.DefaultSuite().Cases {
				inputs = append(inputs, tc.Input)
			}

			ck := c.newChecker(checker.WithCache(len(inputs)*2, time.Hour))
			defer ck.Close()

			fmt.Fprintln(c.out, "=== Cache Performance ===")
			fmt.Fprintln(c.out)

			start := time.Now()
			for _, in := range inputs {
				if _, err := ck.Validate(ctx, in, ""); err != nil {
					return err
				}
			}
			cold := time.Since(start)

			start = time.Now()
			for range rounds {
				for _, in := range inputs {
					if _, err := ck.Validate(ctx, in, ""); err != nil {
						return err
					}
				}
			}
			warm := time.Since(start) / time.Duration(rounds)

			fmt.Fprintf(c.out, "   First pass (computed): %v\n", cold)
			fmt.Fprintf(c.out, "   Later pass (cached):   %v\n", warm)
			if warm > 0 {
				fmt.Fprintf(c.out, "   Speedup: %.1fx\n", float64(cold)/float64(warm))
			}
			fmt.Fprintln(c.out)

			plain := c.newChecker()
			defer plain.Close()

			fmt.Fprintln(c.out, "=== Batch vs Sequential ===")
			fmt.Fprintln(c.out)

			start = time.Now()
			for range rounds {
				for _, in := range inputs {
					if _, err := plain.Validate(ctx, in, ""); err != nil {
						return err
					}
				}
			}
			seq := time.Since(start) / time.Duration(rounds)

			start = time.Now()
			for range rounds {
				if _, err := plain.ValidateBatch(ctx, inputs, ""); err != nil {
					return err
				}
			}
			batch := time.Since(start) / time.Duration(rounds)

			fmt.Fprintf(c.out, "   %d identifiers, %d rounds\n", len(inputs), rounds)
			fmt.Fprintf(c.out, "   Sequential: %v\n", seq)
			fmt.Fprintf(c.out, "   Batch:      %v\n", batch)
			return nil
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 100, "Repetitions per measurement")
	return cmd
}
