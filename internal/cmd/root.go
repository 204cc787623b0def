// Package cmd implements the scalawrap command line.
package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezerfernandes/scalawrap/internal/book"
	"github.com/ezerfernandes/scalawrap/internal/wrapper"
)

//go:embed help/root.md
var rootHelp string

type options struct {
	verbose bool
	summary bool
}

// Execute runs the command line and exits with status 1 on failure.
func Execute(args []string, stdout, stderr io.Writer) {
	if code := exitCode(args, stdout, stderr); code != 0 {
		os.Exit(code)
	}
}

// exitCode runs the command line and reports a failure as one line on stderr.
func exitCode(args []string, stdout, stderr io.Writer) int {
	if err := run(args, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, strings.ReplaceAll(err.Error(), "\n", " "))

		return 1
	}

	return 0
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := rootCmd(&options{})

	if args == nil {
		args = []string{}
	}

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd.Execute()
}

func rootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "scalawrap <book>",
		Short: "Strip wrapper objects from Scala code blocks of a book",
		Long:  rootHelp,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				fmt.Fprintf(cmd.ErrOrStderr(), "USAGE: %s <book>\n", cmd.Name())

				return nil
			}

			return buildRun(args[0], opts, cmd.ErrOrStderr())
		},

		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a per-chapter report after the build")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func buildRun(root string, opts *options, stderr io.Writer) error {
	logger := newLogger(stderr, opts.verbose)

	md, err := book.Load(root)
	if err != nil {
		return err
	}

	md.Logger = logger

	pre := wrapper.New(stderr)
	pre.Logger = logger

	if err := md.WithPreprocessor(pre).Build(book.DirFS(root)); err != nil {
		return err
	}

	if opts.summary {
		printSummary(stderr, pre.Reports())
	}

	return nil
}
