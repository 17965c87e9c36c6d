// Command idcheck validates tax and business identifiers from the command line.
//
// Usage:
//
//	idcheck validate DE136695976 "DE89 3704 0044 0532 0130 00"
//	idcheck validate --scheme EORI DE47110000
//	idcheck normalize de89370400440532013000
//	idcheck schemes
//	idcheck classify --subject "Ihre Rechnung" --body-file mail.txt
//	idcheck eval
//	idcheck bench
//
// validate and eval exit with status 1 when any identifier is invalid or any
// reference case fails.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/idcheck-mcp-server/internal/checker"
)

// errFailed signals a completed run with failing results. It sets the exit status
// without printing an extra error line.
var errFailed = errors.New("one or more checks failed")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type cli struct {
	out      io.Writer
	errOut   io.Writer
	logLevel string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "idcheck",
		Short:         "Validate German and EU tax and business identifiers offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		c.validateCmd(),
		c.normalizeCmd(),
		c.schemesCmd(),
		c.classifyCmd(),
		c.evalCmd(),
		c.benchCmd(),
	)
	return root
}

func (c *cli) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))
}

func (c *cli) newChecker(opts ...checker.Option) *checker.Checker {
	return checker.New(append([]checker.Option{checker.WithLogger(c.logger())}, opts...)...)
}
