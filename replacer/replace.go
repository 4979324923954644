package main

import (
	ansicolor "github.com/fatih/color"
	"github.com/grafana/regexp"
)

type Options struct {
	// Pattern is a literal string rather than a regular expression.
	Fixed bool

	// Replacement is inserted as is, group references are not expanded.
	Literal bool

	Dialect dialect

	// Highlight, when non-nil, wraps every inserted replacement.
	Highlight *ansicolor.Color
}

// Replacer substitutes every non-overlapping match of a pattern in a line.
// It holds no per-line state and is safe for concurrent use.
type Replacer struct {
	re       *regexp.Regexp
	template string
	literal  bool
	hl       *ansicolor.Color
}

func NewReplacer(pattern, replacement string, opts Options) (*Replacer, error) {
	expr := pattern
	if opts.Fixed {
		expr = regexp.QuoteMeta(pattern)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &patternError{pattern: pattern, err: err}
	}

	template := replacement
	if !opts.Literal && opts.Dialect == dialectJava {
		template, err = translateJava(re, replacement)
		if err != nil {
			return nil, &replacementError{replacement: replacement, err: err}
		}
	}

	return &Replacer{
		re:       re,
		template: template,
		literal:  opts.Literal,
		hl:       opts.Highlight,
	}, nil
}

func (r *Replacer) String() string { return r.re.String() }

// Template is the expansion template applied to each match.
func (r *Replacer) Template() string { return r.template }

// Replace returns line with every match substituted and the number of
// matches replaced. Empty matches directly after a previous match are
// skipped, as in Regexp.ReplaceAllString.
func (r *Replacer) Replace(line string) (string, int) {
	matches := r.re.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line, 0
	}

	var (
		buf  []byte
		last int
	)
	for _, m := range matches {
		buf = append(buf, line[last:m[0]]...)
		buf = r.expand(buf, line, m)
		last = m[1]
	}
	buf = append(buf, line[last:]...)

	return string(buf), len(matches)
}

func (r *Replacer) expand(dst []byte, line string, match []int) []byte {
	if r.hl == nil {
		if r.literal {
			return append(dst, r.template...)
		}
		return r.re.ExpandString(dst, r.template, line, match)
	}

	var s []byte
	if r.literal {
		s = []byte(r.template)
	} else {
		s = r.re.ExpandString(nil, r.template, line, match)
	}

	return append(dst, r.hl.Sprint(string(s))...)
}
