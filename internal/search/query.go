package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxVariants bounds how many ILIKE alternatives a single search expands to.
const MaxVariants = 6

type Query struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lower-cases input, drops punctuation and collapses
// whitespace.
func NormalizeQuery(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.ToLower(input) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns normalized followed by synonym variants. The leading
// one- or two-word phrase is substituted and the remainder kept, so
// "backend jakarta" also yields "back end jakarta".
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, MaxVariants)
	seen := make(map[string]struct{}, MaxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(out) >= MaxVariants {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)
	substitute := func(phrase string, rest []string) {
		tail := strings.Join(rest, " ")
		for _, syn := range GetSynonyms(phrase) {
			add(syn + " " + tail)
		}
	}

	if k, ok := compactKey(words[0]); ok {
		add(strings.Join(append([]string{k}, words[1:]...), " "))
		substitute(k, words[1:])
	}
	substitute(words[0], words[1:])
	if len(words) >= 2 {
		substitute(words[0]+" "+words[1], words[2:])
	}

	return out
}

// CollapseQuery lower-cases input and collapses whitespace, keeping
// punctuation so terms like "node.js" or "c++" survive intact.
func CollapseQuery(input string) string {
	return strings.Join(strings.Fields(strings.ToLower(input)), " ")
}

// minLossyLen is the shortest normalized form still worth matching when
// normalization changed the term; "c++" reduced to "c" would match almost
// every posting.
const minLossyLen = 3

// ProcessQuery puts the literal term first, followed by the normalized
// form and its synonyms.
func ProcessQuery(input string) Query {
	literal := CollapseQuery(input)
	q := Query{Original: input, Normalized: NormalizeQuery(input), Variants: []string{}}
	if literal == "" {
		return q
	}

	q.Variants = append(q.Variants, literal)
	if q.Normalized == "" {
		return q
	}
	if q.Normalized != literal && utf8.RuneCountInString(q.Normalized) < minLossyLen {
		return q
	}
	for _, v := range ExpandQuery(q.Normalized) {
		if v == literal || len(q.Variants) >= MaxVariants {
			continue
		}
		q.Variants = append(q.Variants, v)
	}
	return q
}
