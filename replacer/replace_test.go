package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReplacer_Replace(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name        string
		pattern     string
		replacement string
		opts        Options
		line        string
		expected    string
		count       int
	}{
		{name: "every occurrence", pattern: `a`, replacement: `b`, line: "banana", expected: "bbnbnb", count: 3},
		{name: "greedy runs", pattern: `[0-9]+`, replacement: `#`, line: "id42 and 007", expected: "id# and #", count: 2},
		{name: "no match", pattern: `z`, replacement: `y`, line: "banana", expected: "banana"},
		{name: "no-op", pattern: `x`, replacement: `x`, line: "xxyx", expected: "xxyx", count: 3},
		{name: "empty line", pattern: `a`, replacement: `b`, line: "", expected: ""},
		{name: "empty matches", pattern: `x*`, replacement: `-`, line: "abc", expected: "-a-b-c-", count: 4},
		{
			name:        "go group references",
			pattern:     `(\w+)@(\w+)`,
			replacement: `${2}@$1`,
			line:        "mail foo@bar now",
			expected:    "mail bar@foo now",
			count:       1,
		},
		{
			name:        "java group references",
			pattern:     `(\w+)@(\w+)`,
			replacement: `$2@$1`,
			opts:        Options{Dialect: dialectJava},
			line:        "foo@bar",
			expected:    "bar@foo",
			count:       1,
		},
		{
			name:        "java escaped dollar",
			pattern:     `(\d+)`,
			replacement: `\$$1`,
			opts:        Options{Dialect: dialectJava},
			line:        "costs 5",
			expected:    "costs $5",
			count:       1,
		},
		{
			name:        "fixed pattern",
			pattern:     `a.c`,
			replacement: `X`,
			opts:        Options{Fixed: true},
			line:        "abc a.c",
			expected:    "abc X",
			count:       1,
		},
		{
			name:        "literal replacement",
			pattern:     `(a)`,
			replacement: `$1`,
			opts:        Options{Literal: true},
			line:        "cat",
			expected:    "c$1t",
			count:       1,
		},
		{
			name:        "literal replacement skips dialect",
			pattern:     `a`,
			replacement: `$x\`,
			opts:        Options{Literal: true, Dialect: dialectJava},
			line:        "a",
			expected:    `$x\`,
			count:       1,
		},
		{
			name:        "highlight disabled",
			pattern:     `a`,
			replacement: `b`,
			opts:        Options{Highlight: highlightColor(false)},
			line:        "banana",
			expected:    "bbnbnb",
			count:       3,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReplacer(tc.pattern, tc.replacement, tc.opts)
			if err != nil {
				t.Fatalf("NewReplacer: %v", err)
			}

			got, n := r.Replace(tc.line)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if n != tc.count {
				t.Errorf("expected %d replacements, got %d", tc.count, n)
			}
		})
	}
}

func TestReplacer_highlight(t *testing.T) {
	t.Parallel()

	hl := highlightColor(true)
	r, err := NewReplacer(`(\d)`, `<$1>`, Options{Highlight: hl})
	if err != nil {
		t.Fatalf("NewReplacer: %v", err)
	}

	got, _ := r.Replace("a1b2")
	expected := "a" + hl.Sprint("<1>") + "b" + hl.Sprint("<2>")
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNewReplacer_errors(t *testing.T) {
	t.Parallel()

	_, err := NewReplacer(`a(`, `b`, Options{})
	var perr *patternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *patternError, got %T: %v", err, err)
	}
	if perr.ExitCode() != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, perr.ExitCode())
	}

	_, err = NewReplacer(`a(`, `b`, Options{Fixed: true})
	if err != nil {
		t.Errorf("fixed pattern should compile: %v", err)
	}

	_, err = NewReplacer(`(a)`, `$5`, Options{Dialect: dialectJava})
	var rerr *replacementError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *replacementError, got %T: %v", err, err)
	}
}
