package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/carlmjohnson/exitcode"
	"github.com/dustin/go-humanize"
	ansicolor "github.com/fatih/color"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func main() {
	err := realMain(
		context.Background(),
		os.Args,
		os.Stdin,
		os.Stdout,
		os.Stderr,
	)
	reportError(os.Stderr, err)
	os.Exit(exitcode.Get(err))
}

func realMain(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) error {
	exec := filepath.Base(args[0])

	fs := flag.NewFlagSet(exec, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flagFixed     = fs.Bool("F", false, "treat pattern as a literal string")
		flagLiteral   = fs.Bool("L", false, "insert replacement literally, without group references")
		flagDialect   = fs.String("dialect", string(dialectGo), "replacement syntax: go or java")
		flagColor     = fs.String("color", "auto", "colorize output: auto, always or never")
		flagHighlight = fs.Bool("highlight", false, "highlight inserted replacements")
		flagStripANSI = fs.Bool("strip-ansi", false, "remove ANSI escape sequences before matching")
		flagMaxLine   = fs.String("max-line", defaultMaxLine, "maximum line length")
		flagVerbose   = fs.Bool("v", false, "verbose mode")
	)

	rootCmd := &ffcli.Command{
		Name:       exec,
		ShortUsage: fmt.Sprintf("%v [flags] <pattern> <replacement>", exec),
		ShortHelp:  "Replace every match of pattern with replacement on each line of stdin",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 2 {
				usage(stderr, exec)
				return &usageError{err: fmt.Errorf("expected 2 arguments, got %d", len(args))}
			}

			logger := newLogger(stderr, *flagVerbose)

			d, err := parseDialect(*flagDialect)
			if err != nil {
				return exitcode.Set(err, exitUsage)
			}

			colored, err := colorEnabled(*flagColor, stdout)
			if err != nil {
				return exitcode.Set(err, exitUsage)
			}

			maxLine, err := parseMaxLine(*flagMaxLine)
			if err != nil {
				return exitcode.Set(err, exitUsage)
			}

			opts := Options{
				Fixed:   *flagFixed,
				Literal: *flagLiteral,
				Dialect: d,
			}
			if *flagHighlight {
				opts.Highlight = highlightColor(colored)
			}

			r, err := NewReplacer(args[0], args[1], opts)
			if err != nil {
				return err
			}

			logger.Debug("compiled",
				"pattern", r.String(),
				"template", r.Template(),
				"dialect", d,
				"max_line", humanize.IBytes(uint64(maxLine)),
			)

			stats, err := filter(ctx, stdin, stdout, r, filterConfig{
				maxLine:   maxLine,
				stripANSI: *flagStripANSI,
			})

			logger.Info("done",
				"lines", humanize.Comma(stats.Lines),
				"replacements", humanize.Comma(stats.Replacements),
				"read", humanize.Bytes(stats.BytesIn),
				"written", humanize.Bytes(stats.BytesOut),
			)

			return err
		},
	}

	if err := rootCmd.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &usageError{err: err}
	}

	return rootCmd.Run(ctx)
}

func usage(w io.Writer, exec string) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintf(w, "%v pattern replacement\n", exec)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func colorEnabled(mode string, stdout io.Writer) (bool, error) {
	switch mode {
	case "auto":
		return isTerminal(stdout), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid -color value %q (want auto, always or never)", mode)
	}
}

func highlightColor(enabled bool) *ansicolor.Color {
	c := ansicolor.New(ansicolor.FgGreen, ansicolor.Bold)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func parseMaxLine(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid -max-line value %q: %w", s, err)
	}
	if n == 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("invalid -max-line value %q: out of range", s)
	}
	return int(n), nil
}
