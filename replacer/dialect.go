package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/grafana/regexp"
)

type dialect string

const (
	dialectGo   dialect = "go"
	dialectJava dialect = "java"
)

func parseDialect(s string) (dialect, error) {
	switch d := dialect(strings.ToLower(s)); d {
	case dialectGo, dialectJava:
		return d, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (want go or java)", s)
	}
}

var (
	errEscapeMissing  = errors.New("character to be escaped is missing")
	errGroupIndex     = errors.New("illegal group reference: group index is missing")
	errIllegalGroup   = errors.New("illegal group reference")
	errGroupNameEmpty = errors.New("named capturing group has 0 length name")
	errGroupNameClose = errors.New("named capturing group is missing trailing '}'")
)

// translateJava rewrites a java.util.regex.Matcher replacement into a
// template for Regexp.Expand. Group references are resolved against re, so
// "$12" with only two groups means group 1 followed by a literal "2".
func translateJava(re *regexp.Regexp, repl string) (string, error) {
	var b strings.Builder
	groups := re.NumSubexp()

	for i := 0; i < len(repl); {
		c := repl[i]
		switch c {
		case '\\':
			i++
			if i == len(repl) {
				return "", errEscapeMissing
			}
			if repl[i] == '$' {
				b.WriteString("$$")
			} else {
				b.WriteByte(repl[i])
			}
			i++

		case '$':
			i++
			if i == len(repl) {
				return "", errGroupIndex
			}

			if repl[i] == '{' {
				i++
				start := i
				for i < len(repl) && isGroupNameChar(repl[i]) {
					i++
				}
				name := repl[start:i]
				if name == "" {
					return "", errGroupNameEmpty
				}
				if i == len(repl) || repl[i] != '}' {
					return "", errGroupNameClose
				}
				i++
				if !isLetter(name[0]) || re.SubexpIndex(name) < 0 {
					return "", fmt.Errorf("no group with name {%s}", name)
				}
				fmt.Fprintf(&b, "${%s}", name)
				continue
			}

			if !isDigit(repl[i]) {
				return "", errIllegalGroup
			}
			ref := int(repl[i] - '0')
			i++
			for i < len(repl) && isDigit(repl[i]) {
				next := ref*10 + int(repl[i]-'0')
				if next > groups {
					break
				}
				ref = next
				i++
			}
			if ref > groups {
				return "", fmt.Errorf("no group %d", ref)
			}
			b.WriteString("${" + strconv.Itoa(ref) + "}")

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), nil
}

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isGroupNameChar(c byte) bool { return isLetter(c) || isDigit(c) }
