package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/idcheck-mcp-server/evals"
	"github.com/olgasafonova/idcheck-mcp-server/internal/checker"
	"github.com/olgasafonova/idcheck-mcp-server/internal/classify"
)

func (c *cli) schemesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List supported identifier schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ck := c.newChecker()
			defer ck.Close()

			schemes := ck.Schemes()
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(schemes)
			}

			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY\tALGORITHM\tEXAMPLE")
			for _, s := range schemes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Country, s.Algorithm, s.Example)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalogue as JSON")
	return cmd
}

func (c *cli) classifyCmd() *cobra.Command {
	var (
		from, subject      string
		bodyFile, htmlFile string
		rules              string
		asJSON             bool
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Assign a message to an inbox category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := classify.Load(rules)
			if err != nil {
				return err
			}
			msg := classify.Message{From: from, Subject: subject}
			if msg.Body, err = readOptional(bodyFile); err != nil {
				return err
			}
			if msg.HTMLBody, err = readOptional(htmlFile); err != nil {
				return err
			}

			ck := c.newChecker(checker.WithClassifier(cl))
			defer ck.Close()

			res := ck.Classify(msg)
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(c.out, "%s (score %d)\n", res.Category, res.Score)
			for _, m := range res.Matches {
				fmt.Fprintf(c.out, "  %-24s %-12s +%d\n", m.Rule, m.Category, m.Weight)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Sender address")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "File holding the plain text body")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "File holding the HTML body")
	cmd.Flags().StringVar(&rules, "rules", "", "YAML rule table (built-in table when empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the classification as JSON")
	return cmd
}

func (c *cli) evalCmd() *cobra.Command {
	var (
		suitePath string
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run the reference identifier suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suite := evals.DefaultSuite()
			if suitePath != "" {
				var err error
				if suite, err = evals.LoadSuite(suitePath); err != nil {
					return err
				}
			}

			ck := c.newChecker()
			defer ck.Close()

			metrics, results := evals.Evaluate(cmd.Context(), suite, ck)
			if verbose {
				for _, r := range results {
					status := "PASS"
					if !r.Passed {
						status = "FAIL"
					}
					fmt.Fprintf(c.out, "%s  %-14s %s\n", status, r.CaseID, r.Input)
				}
			}
			fmt.Fprint(c.out, evals.FormatMetrics(metrics, suite.Name))
			if metrics.FailedTests > 0 {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&suitePath, "suite", "", "YAML suite file (built-in reference suite when empty)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every case")
	return cmd
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
