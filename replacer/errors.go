package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	ansicolor "github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	exitFault = 1
	exitUsage = 2
)

// usageError means the usage text has already been written to stderr.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	if e.err == nil {
		return "invalid usage"
	}
	return e.err.Error()
}

func (e *usageError) Unwrap() error { return e.err }
func (e *usageError) ExitCode() int { return exitUsage }

type patternError struct {
	pattern string
	err     error
}

func (e *patternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.pattern, e.err)
}

func (e *patternError) Unwrap() error { return e.err }
func (e *patternError) ExitCode() int { return exitUsage }

type replacementError struct {
	replacement string
	err         error
}

func (e *replacementError) Error() string {
	return fmt.Sprintf("invalid replacement %q: %v", e.replacement, e.err)
}

func (e *replacementError) Unwrap() error { return e.err }
func (e *replacementError) ExitCode() int { return exitUsage }

// readError carries the message of the underlying stdin fault unchanged.
type readError struct {
	err error
}

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }
func (e *readError) ExitCode() int { return exitFault }

type writeError struct {
	err error
}

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }
func (e *writeError) ExitCode() int { return exitFault }

func reportError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		return
	}

	label := ansicolor.New(ansicolor.FgRed, ansicolor.Bold)
	if isTerminal(w) {
		label.EnableColor()
	} else {
		label.DisableColor()
	}

	fmt.Fprintf(w, "%v %v\n", label.Sprint("error:"), err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
