// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package assetcfg

import (
	"fmt"
	"regexp"
	"strings"
)

// Glob is a compiled glob pattern for matching asset paths.
//
// Supported syntax:
//
//   - `?` matches any single character.
//   - `*` matches zero or more characters, crossing `/` boundaries.
//   - `**` recursively matches directories: leading `**/`, trailing
//     `/**`, infix `/**/`, or standalone `**`. In any other position
//     the two stars degrade to an ordinary `*`.
//   - `[ab]` matches `a` or `b`; `[!ab]` matches anything else;
//     ranges like `[a-z]` work. Metacharacters are escaped with
//     character-class notation, e.g. `[*]` matches a literal `*`.
//   - `{a,b}` matches alternative sub-patterns. Nesting is not
//     allowed.
//
// Matching is over the whole asset path as supplied by the caller
// (no leading slash), never a substring.
type Glob struct {
	pattern string
	matcher *regexp.Regexp
}

// CompileGlob compiles a glob pattern. Unclosed character classes,
// unclosed alternations, and nested alternations are errors.
func CompileGlob(pattern string) (*Glob, error) {
	alternatives, err := expandBraces(pattern)
	if err != nil {
		return nil, err
	}

	translated := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		expr, err := translateGlob(alt)
		if err != nil {
			return nil, fmt.Errorf("assetcfg: glob %q: %w", pattern, err)
		}
		translated = append(translated, expr)
	}

	matcher, err := regexp.Compile("^(?:" + strings.Join(translated, "|") + ")$")
	if err != nil {
		return nil, fmt.Errorf("assetcfg: glob %q: %w", pattern, err)
	}
	return &Glob{pattern: pattern, matcher: matcher}, nil
}

// Match reports whether the asset path matches the pattern.
func (g *Glob) Match(assetPath string) bool {
	return g.matcher.MatchString(assetPath)
}

// Pattern returns the source pattern.
func (g *Glob) Pattern() string {
	return g.pattern
}

// expandBraces rewrites one level of {a,b} alternation into a list of
// brace-free patterns. Multiple alternations multiply out; nesting is
// rejected.
func expandBraces(pattern string) ([]string, error) {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		if strings.IndexByte(pattern, '}') >= 0 {
			// A stray closing brace is literal; nothing to expand.
			return []string{pattern}, nil
		}
		return []string{pattern}, nil
	}

	closing := -1
	for i := open + 1; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			return nil, fmt.Errorf("assetcfg: glob %q: nested alternation", pattern)
		case '}':
			closing = i
		}
		if closing >= 0 {
			break
		}
	}
	if closing < 0 {
		return nil, fmt.Errorf("assetcfg: glob %q: unclosed alternation", pattern)
	}

	prefix := pattern[:open]
	body := pattern[open+1 : closing]
	rest := pattern[closing+1:]

	restExpanded, err := expandBraces(rest)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, alternative := range strings.Split(body, ",") {
		for _, tail := range restExpanded {
			result = append(result, prefix+alternative+tail)
		}
	}
	return result, nil
}

// translateGlob converts a brace-free glob into a regular expression
// fragment.
func translateGlob(pattern string) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '*':
			// Collapse runs of stars: * already crosses slash
			// boundaries. A "**/" at the start or after a slash
			// matches zero or more whole directories, so "**/*.html"
			// also matches "index.html".
			run := i
			for i < len(pattern) && pattern[i] == '*' {
				i++
			}
			if i-run >= 2 && (run == 0 || pattern[run-1] == '/') && i < len(pattern) && pattern[i] == '/' {
				out.WriteString("(?:.*/)?")
				i++
				continue
			}
			out.WriteString(".*")
			continue

		case '?':
			out.WriteString(".")

		case '[':
			fragment, consumed, err := translateClass(pattern[i:])
			if err != nil {
				return "", err
			}
			out.WriteString(fragment)
			i += consumed
			continue

		default:
			out.WriteString(regexp.QuoteMeta(string(c)))
		}
		i++
	}
	return out.String(), nil
}

// translateClass converts a [...] character class starting at
// input[0] == '['. Returns the regex fragment and the number of
// input bytes consumed.
func translateClass(input string) (string, int, error) {
	var out strings.Builder
	out.WriteByte('[')

	i := 1
	if i < len(input) && (input[i] == '!' || input[i] == '^') {
		out.WriteByte('^')
		i++
	}

	// A ']' directly after the (possibly negated) opening bracket is
	// a literal member, not the terminator.
	start := i
	for i < len(input) {
		c := input[i]
		if c == ']' && i > start {
			out.WriteByte(']')
			return out.String(), i + 1, nil
		}
		switch c {
		case '\\', '^', ']', '[':
			out.WriteByte('\\')
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
		i++
	}
	return "", 0, fmt.Errorf("unclosed character class")
}
