package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/mattn/go-colorable"
)

const defaultMaxLine = "64MiB"

type filterConfig struct {
	maxLine   int
	stripANSI bool
}

type Stats struct {
	Lines        int64
	BytesIn      uint64
	BytesOut     uint64
	Replacements int64
}

// filter copies in to out line by line through r. A line is written before
// the next one is read; lines already written stay written on error.
func filter(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	r *Replacer,
	cfg filterConfig,
) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(in)
	initial := bufio.MaxScanTokenSize
	if cfg.maxLine > 0 {
		initial = min(initial, cfg.maxLine)
		scanner.Buffer(make([]byte, 0, initial), cfg.maxLine)
	}

	var strip *ansiStripper
	if cfg.stripANSI {
		strip = newANSIStripper()
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := scanner.Text()
		stats.Lines++
		stats.BytesIn += uint64(len(scanner.Bytes()))

		if strip != nil {
			line = strip.strip(line)
		}

		replaced, n := r.Replace(line)
		stats.Replacements += int64(n)

		written, err := fmt.Fprintln(out, replaced)
		stats.BytesOut += uint64(written)
		if err != nil {
			return stats, &writeError{err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, &readError{err: fmt.Errorf("line %d: %w", stats.Lines+1, err)}
	}

	return stats, nil
}

type ansiStripper struct {
	buf bytes.Buffer
	w   io.Writer
}

func newANSIStripper() *ansiStripper {
	s := &ansiStripper{}
	s.w = colorable.NewNonColorable(&s.buf)
	return s
}

func (s *ansiStripper) strip(line string) string {
	s.buf.Reset()
	_, _ = s.w.Write([]byte(line))
	return s.buf.String()
}
