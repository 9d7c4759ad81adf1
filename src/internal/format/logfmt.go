// Package format renders structured record values as single-line,
// greppable logfmt text.
package format

import (
	"strconv"
	"strings"

	"logmill/src/internal/core"
)

// Logfmt renders v as space-separated key=value tokens in traversal order,
// composing dotted keys for nested objects and 1-based index keys for
// sequences. A scalar renders as its bare token value.
func Logfmt(v *core.Value) string {
	if v.IsScalar() {
		return Scalar(v)
	}
	var tokens []string
	appendTokens(&tokens, "", v)
	return strings.Join(tokens, " ")
}

func appendTokens(tokens *[]string, prefix string, v *core.Value) {
	switch v.Kind() {
	case core.KindObject:
		v.Obj().Visit(func(key string, member *core.Value) {
			appendTokens(tokens, joinKey(prefix, key), member)
		})
	case core.KindArray:
		for i, item := range v.Items() {
			appendTokens(tokens, joinKey(prefix, strconv.Itoa(i+1)), item)
		}
	default:
		*tokens = append(*tokens, prefix+"="+Scalar(v))
	}
}

// Scalar renders one scalar token value: booleans and numbers as their
// literal text, strings unquoted when they consist only of safe characters
// and double-quoted with \ and " escaped otherwise, and null as "null".
func Scalar(v *core.Value) string {
	switch v.Kind() {
	case core.KindBool, core.KindNumber:
		return v.Text()
	case core.KindString:
		s := v.Str()
		if safeToken(s) {
			return s
		}
		return quote(s)
	default:
		return "null"
	}
}

// safeToken matches [A-Za-z0-9._:/-]+.
func safeToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == ':' || c == '/' || c == '-':
		default:
			return false
		}
	}
	return true
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
