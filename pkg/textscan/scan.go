// Package textscan provides small scanning helpers for semi-structured
// source text: line splitting, balanced-delimiter capture, and a tolerant
// object-literal miner. It is the leaf dependency of the extract package
// and performs no I/O.
package textscan

import "strings"

// Lines splits s into lines, normalizing Windows line endings.
func Lines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// Block captures a balanced delimiter block starting at the first open
// delimiter at or after from. It tracks nesting depth with a counter and
// skips delimiters inside string literals, so nested structures are
// captured whole. Returns the inner text (delimiters excluded), the index
// one past the closing delimiter, and whether a balanced block was found.
//
// An unterminated block returns ok=false; callers treat that the same as
// no block at all.
func Block(s string, from int, open, close byte) (body string, end int, ok bool) {
	start := -1
	for i := from; i < len(s); i++ {
		if s[i] == open {
			start = i
			break
		}
	}
	if start == -1 {
		return "", -1, false
	}

	depth := 0
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start+1 : i], i + 1, true
			}
		}
	}
	return "", -1, false
}

// BlockAfter finds marker in s and captures the first balanced block that
// follows it. Convenience wrapper for the common "keyword then object"
// shape, e.g. `argTypes: { ... }`.
func BlockAfter(s, marker string, open, close byte) (string, bool) {
	idx := strings.Index(s, marker)
	if idx == -1 {
		return "", false
	}
	body, _, ok := Block(s, idx+len(marker), open, close)
	return body, ok
}

// StripQuotes removes one layer of matching surrounding quotes.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// IsQuoted reports whether s is wrapped in a matching pair of quotes.
func IsQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return first == last && (first == '\'' || first == '"' || first == '`')
}
