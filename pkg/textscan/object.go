package textscan

import (
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBool
	ValueObject
)

// Value is one entry mined from an object literal. It is an explicit
// tagged union: exactly one of Str, Num, Bool, or Obj is meaningful,
// selected by Kind. Unquoted tokens that are neither numeric nor boolean
// (identifiers, call expressions, array literals) are kept as raw strings.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Obj  Object
}

// Object is a mined object literal: key to tagged value.
type Object map[string]Value

// String returns a Value holding s.
func String(s string) Value { return Value{Kind: ValueString, Str: s} }

// Number returns a Value holding n.
func Number(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// Bool returns a Value holding b.
func Bool(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// Nested returns a Value holding obj.
func Nested(obj Object) Value { return Value{Kind: ValueObject, Obj: obj} }

// ParseObject mines key-value pairs from the body of an object literal
// (text between the braces, braces themselves optional). Quoted values
// become strings, numeric literals numbers, true/false booleans, and
// nested `{...}` blocks recurse. Anything else — identifiers, arrow
// functions, array literals — is kept as its raw trimmed text.
//
// The miner is tolerant by contract: malformed input yields whatever
// pairs could be recovered, never an error.
func ParseObject(body string) Object {
	body = strings.TrimSpace(body)
	if strings.HasPrefix(body, "{") {
		inner, _, ok := Block(body, 0, '{', '}')
		if ok {
			body = inner
		}
	}

	obj := Object{}
	i := 0
	for i < len(body) {
		// Find the next key.
		keyStart := i
		for keyStart < len(body) && !isIdentByte(body[keyStart]) && body[keyStart] != '\'' && body[keyStart] != '"' {
			keyStart++
		}
		if keyStart >= len(body) {
			break
		}

		key, afterKey := scanKey(body, keyStart)
		if key == "" {
			i = keyStart + 1
			continue
		}

		// Expect a colon; otherwise this token was not a key.
		colon := skipSpaces(body, afterKey)
		if colon >= len(body) || body[colon] != ':' {
			i = afterKey
			continue
		}

		valStart := skipSpaces(body, colon+1)
		if valStart >= len(body) {
			break
		}

		raw, next := scanValue(body, valStart)
		obj[key] = coerce(raw)
		i = next
	}
	return obj
}

// scanKey reads an identifier or quoted key starting at i.
func scanKey(s string, i int) (string, int) {
	if s[i] == '\'' || s[i] == '"' {
		quote := s[i]
		for j := i + 1; j < len(s); j++ {
			if s[j] == quote {
				return s[i+1 : j], j + 1
			}
		}
		return "", len(s)
	}
	j := i
	for j < len(s) && isIdentByte(s[j]) {
		j++
	}
	return s[i:j], j
}

// scanValue reads one value expression starting at i, returning its raw
// text and the index past the terminating comma (or end of input). Nested
// braces, brackets, parens, and string literals are skipped whole so that
// commas inside them do not terminate the value.
func scanValue(s string, i int) (string, int) {
	if s[i] == '{' {
		body, end, ok := Block(s, i, '{', '}')
		if !ok {
			return s[i:], len(s)
		}
		return "{" + body + "}", skipComma(s, end)
	}

	depth := 0
	var quote byte
	j := i
	for ; j < len(s); j++ {
		c := s[j]
		if quote != 0 {
			if c == '\\' {
				j++
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
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',', '\n':
			if depth <= 0 {
				return strings.TrimSpace(s[i:j]), j + 1
			}
		}
	}
	return strings.TrimSpace(s[i:j]), j
}

// coerce converts a raw value expression to its tagged form.
func coerce(raw string) Value {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), ","))

	if strings.HasPrefix(raw, "{") {
		return Nested(ParseObject(raw))
	}
	if IsQuoted(raw) {
		return String(StripQuotes(raw))
	}
	if raw == "true" {
		return Bool(true)
	}
	if raw == "false" {
		return Bool(false)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(n)
	}
	return String(raw)
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func skipComma(s string, i int) int {
	i = skipSpaces(s, i)
	if i < len(s) && s[i] == ',' {
		i++
	}
	return i
}
