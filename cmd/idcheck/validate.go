package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/idcheck-mcp-server/internal/checker"
)

func (c *cli) validateCmd() *cobra.Command {
	var (
		scheme string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "validate [identifier...]",
		Short: "Validate identifiers (use - to read one per line from stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := expandArgs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ck := c.newChecker(checker.WithMaxBatchSize(max(len(inputs), checker.DefaultMaxBatchSize)))
			defer ck.Close()

			res, err := ck.ValidateBatch(cmd.Context(), inputs, scheme)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				printBatch(c.out, res)
			}
			if res.Invalid > 0 {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", "", "Scheme hint applied to every identifier (detected when empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func (c *cli) normalizeCmd() *cobra.Command {
	var scheme string
	cmd := &cobra.Command{
		Use:   "normalize <identifier>",
		Short: "Print the canonical and display forms of an identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ck := c.newChecker()
			defer ck.Close()

			res, err := ck.Normalize(args[0], scheme)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, res.Normalized)
			if res.Formatted != "" && res.Formatted != res.Normalized {
				fmt.Fprintf(c.out, "%s (%s)\n", res.Formatted, res.Scheme)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", "", "Scheme used for the display format")
	return cmd
}

// expandArgs replaces a "-" argument with the non-empty lines read from in.
func expandArgs(args []string, in io.Reader) ([]string, error) {
	var out []string
	for _, a := range args {
		if a != "-" {
			out = append(out, a)
			continue
		}
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				out = append(out, line)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	}
	return out, nil
}

func printBatch(w io.Writer, res checker.BatchResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range res.Results {
		status := "VALID"
		detail := r.Formatted
		if !r.Valid {
			status = "INVALID"
			detail = strings.Join(r.Messages(), "; ")
		}
		scheme := string(r.Scheme)
		if scheme == "" {
			scheme = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, scheme, r.Input, detail)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d checked, %d valid, %d invalid\n", res.Total, res.Valid, res.Invalid)
}
