package skill

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEmptyEntry     = errors.New("skill entry has no aliases")
	ErrEmptyCanonical = errors.New("skill entry canonical alias normalizes to empty")
)

// Entry is one reference skill. The first alias names the canonical skill.
type Entry struct {
	Aliases []string
}

type compiledEntry struct {
	canonical string
	aliases   []string
}

// Vocabulary is an immutable, ordered set of reference skills. It is safe for
// concurrent use.
type Vocabulary struct {
	entries []compiledEntry
	byAlias map[string]string
}

func NewVocabulary(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		entries: make([]compiledEntry, 0, len(entries)),
		byAlias: make(map[string]string),
	}
	for i, e := range entries {
		if len(e.Aliases) == 0 {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyEntry)
		}
		canonical := Normalize(e.Aliases[0])
		if canonical == "" {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Aliases[0], ErrEmptyCanonical)
		}

		ce := compiledEntry{canonical: canonical}
		seen := make(map[string]struct{}, len(e.Aliases))
		for _, a := range e.Aliases {
			n := Normalize(a)
			if n == "" {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			ce.aliases = append(ce.aliases, n)
			if _, taken := v.byAlias[n]; !taken {
				v.byAlias[n] = canonical
			}
		}
		v.entries = append(v.entries, ce)
	}
	return v, nil
}

func MustVocabulary(entries []Entry) *Vocabulary {
	v, err := NewVocabulary(entries)
	if err != nil {
		panic(err)
	}
	return v
}

var defaultVocabulary = sync.OnceValue(func() *Vocabulary {
	return MustVocabulary(referenceEntries)
})

// DefaultVocabulary returns the process-wide reference vocabulary.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary()
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.entries)
}

// ExtractCanonical returns the canonical skills mentioned in text, in
// vocabulary declaration order. Matching is whole-token: "java" never matches
// inside "javascript".
func (v *Vocabulary) ExtractCanonical(text string) []string {
	out := []string{}
	if v == nil {
		return out
	}

	tokens := make(map[string]struct{})
	for _, t := range Tokenize(text) {
		if n := Normalize(t); n != "" {
			tokens[n] = struct{}{}
		}
	}
	if len(tokens) == 0 {
		return out
	}

	added := make(map[string]struct{})
	for _, e := range v.entries {
		if _, dup := added[e.canonical]; dup {
			continue
		}
		for _, a := range e.aliases {
			if _, ok := tokens[a]; ok {
				added[e.canonical] = struct{}{}
				out = append(out, e.canonical)
				break
			}
		}
	}
	return out
}

// ExtractSet is ExtractCanonical as a set.
func (v *Vocabulary) ExtractSet(text string) map[string]struct{} {
	skills := v.ExtractCanonical(text)
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

// Canonicalize maps a normalized token to its canonical skill. Tokens the
// vocabulary does not know are returned unchanged.
func (v *Vocabulary) Canonicalize(token string) string {
	if v == nil {
		return token
	}
	if c, ok := v.byAlias[token]; ok {
		return c
	}
	return token
}

// CanonicalizeAll applies Canonicalize to every token, keeping order.
func (v *Vocabulary) CanonicalizeAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, v.Canonicalize(t))
	}
	return out
}
