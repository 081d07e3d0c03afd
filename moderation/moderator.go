// Package moderation masks forbidden words in inbound chat text before a
// bubble is rendered. Matching is case-insensitive, ignores punctuation and
// spacing inserted between letters, and undoes common leet substitutions.
package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Moderator implements contract.TextFilter.
type Moderator struct {
	log     *slog.Logger
	matcher *goahocorasick.Machine
	mask    rune
}

// normalized keeps, for every kept rune, its index in the original text.
type normalized struct {
	runes   []rune
	origIdx []int
}

// NewModerator builds the automaton. Words made only of noise are dropped.
func NewModerator(words []string, mask rune, log *slog.Logger) (*Moderator, error) {
	patterns := lo.FilterMap(words, func(w string, _ int) ([]rune, bool) {
		p := normalize(w).runes
		return p, len(p) > 0
	})
	m := &Moderator{log: log, mask: mask}
	if len(patterns) == 0 {
		log.Debug("Moderator built without patterns")
		return m, nil
	}
	m.matcher = new(goahocorasick.Machine)
	if err := m.matcher.Build(patterns); err != nil {
		return nil, err
	}
	log.Debug("Moderator built", "patterns", len(patterns))
	return m, nil
}

// Censor returns text with every match masked rune by rune, including the
// noise between matched letters, and the dictionary words that matched.
func (m *Moderator) Censor(text string) (string, []string) {
	if m.matcher == nil || text == "" {
		return text, nil
	}
	norm := normalize(text)
	if len(norm.runes) == 0 {
		return text, nil
	}
	hits := m.matcher.MultiPatternSearch(norm.runes, false)
	if len(hits) == 0 {
		return text, nil
	}

	out := []rune(text)
	var found []string
	for _, hit := range hits {
		start, end := hit.Pos, hit.Pos+len(hit.Word)
		if start < 0 || end > len(norm.origIdx) {
			continue
		}
		for i := norm.origIdx[start]; i <= norm.origIdx[end-1]; i++ {
			out[i] = m.mask
		}
		found = append(found, string(hit.Word))
	}
	if len(found) > 0 {
		m.log.Debug("Censored inbound text", "words", len(found))
	}
	return string(out), found
}

func normalize(s string) normalized {
	src := []rune(s)
	n := normalized{runes: make([]rune, 0, len(src)), origIdx: make([]int, 0, len(src))}
	for i, r := range src {
		r = unleet(r)
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		n.runes = append(n.runes, unicode.ToLower(r))
		n.origIdx = append(n.origIdx, i)
	}
	return n
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	}
	return r
}
