// Package lexicon wraps a level's permitted-word list into a fast,
// lowercase-normalized membership test. It has no knowledge of the board;
// the game package asks it whether run texts are allowed.
package lexicon

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// wordPattern is what a usable allowlist entry looks like after
// normalization. Anything else (digits, punctuation, embedded spaces,
// the empty string) is silently dropped rather than treated as an error.
var wordPattern = regexp.MustCompile(`^[a-z]+$`)

// Worded is anything that reads as a single word, such as a board run.
type Worded interface {
	Word() string
}

// An Allowlist is an immutable set of allowed words for one level.
type Allowlist struct {
	words map[string]struct{}
}

// Normalize trims and lowercases a candidate word. It returns the empty
// string if the result is not one or more lowercase letters.
func Normalize(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if !wordPattern.MatchString(word) {
		return ""
	}
	return word
}

// NewAllowlist builds an Allowlist from a raw word list. Entries that fail
// normalization are dropped and duplicates collapse.
func NewAllowlist(words []string) *Allowlist {
	normalized := lo.FilterMap(words, func(w string, _ int) (string, bool) {
		n := Normalize(w)
		return n, n != ""
	})
	set := make(map[string]struct{}, len(normalized))
	for _, w := range normalized {
		set[w] = struct{}{}
	}
	return &Allowlist{words: set}
}

// Contains reports whether the given word is allowed. The input is
// normalized first, so anything that fails normalization is simply not
// found.
func (a *Allowlist) Contains(word string) bool {
	n := Normalize(word)
	if n == "" {
		return false
	}
	_, ok := a.words[n]
	return ok
}

// Len returns the number of distinct allowed words.
func (a *Allowlist) Len() int {
	return len(a.words)
}

// ContainsAllRuns reports whether every run's text is an allowed word.
func ContainsAllRuns[T Worded](a *Allowlist, runs []T) bool {
	return lo.EveryBy(runs, func(r T) bool {
		return a.Contains(r.Word())
	})
}
