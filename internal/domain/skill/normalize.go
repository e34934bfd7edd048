// Package skill turns free-text and list-valued skill fields into canonical
// lowercase tokens and resolves them against a reference vocabulary.
package skill

import (
	"strings"
	"unicode"
)

// Normalize lowercases raw, drops every character outside [a-z0-9+] and strips
// a trailing "js" suffix, so "Node.js", "nodejs" and "node" all become "node".
//
// The suffix rule is a heuristic: the standalone token "js" normalizes to "".
// The suffix is stripped until none remains, which keeps Normalize idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if isTokenRune(r) {
			b.WriteRune(r)
		}
	}
	s := b.String()
	for strings.HasSuffix(s, "js") {
		s = strings.TrimSuffix(s, "js")
	}
	return s
}

func isTokenRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '+'
}

// Tokenize lowercases text and splits it on whitespace after turning every
// character outside [a-z0-9+] into a boundary. Punctuation separates tokens
// instead of being deleted, so "java/script" yields "java" and "script".
func Tokenize(text string) []string {
	mapped := strings.Map(func(r rune) rune {
		if isTokenRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))
	return strings.Fields(mapped)
}

// ExtractJobSkills splits a job's skills field into normalized tokens. field
// may be a string or a []string; other types yield an empty slice. Pieces are
// separated by whitespace or commas. Tokens that normalize to "" are kept; use
// CompactTokens before matching.
func ExtractJobSkills(field any) []string {
	switch v := field.(type) {
	case string:
		return splitSkills(v, nil)
	case []string:
		out := []string{}
		for _, s := range v {
			out = splitSkills(s, out)
		}
		return out
	default:
		return []string{}
	}
}

func splitSkills(s string, out []string) []string {
	if out == nil {
		out = []string{}
	}
	pieces := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, p := range pieces {
		out = append(out, Normalize(strings.TrimSpace(p)))
	}
	return out
}

// CompactTokens drops empty tokens, preserving order and duplicates.
func CompactTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
