package analysis

import (
	"sort"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

// WordEntry is one row of the word-frequency table.
type WordEntry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DefaultExcludedWords are dropped before counting.
var DefaultExcludedWords = []string{
	"this", "that", "they", "their", "there", "were", "with",
	"from", "have", "very", "would", "about", "also",
}

// WordOptions controls tokenization and ranking.
type WordOptions struct {
	// Limit caps the ranked list; <= 0 means 20.
	Limit int
	// MinLength is the shortest token kept; <= 0 means 4.
	MinLength int
	// Excluded words are compared after punctuation is stripped and again
	// after stemming.
	Excluded []string
	// Stem reduces tokens to their English stem before counting.
	Stem bool
}

// DefaultWordOptions returns the stock settings: top 20, words longer than
// three characters, the default exclusion list, no stemming.
func DefaultWordOptions() WordOptions {
	return WordOptions{Limit: 20, MinLength: 4, Excluded: DefaultExcludedWords}
}

// WordAnalyzer ranks the words of review text.
type WordAnalyzer struct {
	limit    int
	minLen   int
	stem     bool
	excluded map[string]struct{}
}

// NewWordAnalyzer builds an analyzer from options.
func NewWordAnalyzer(opt WordOptions) *WordAnalyzer {
	a := &WordAnalyzer{
		limit:    opt.Limit,
		minLen:   opt.MinLength,
		stem:     opt.Stem,
		excluded: make(map[string]struct{}, len(opt.Excluded)),
	}
	if a.limit <= 0 {
		a.limit = 20
	}
	if a.minLen <= 0 {
		a.minLen = 4
	}
	for _, w := range opt.Excluded {
		a.excluded[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return a
}

// Tokens splits text into countable words: lowercased, split on whitespace,
// stripped of everything but ASCII letters, digits and underscore, and stemmed
// when enabled. A word is kept only if its final form is long enough,
// contains an ASCII letter and is not excluded.
func (a *WordAnalyzer) Tokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), isWordSeparator)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := stripNonWord(f)
		if a.stem && w != "" {
			if _, skip := a.excluded[w]; skip {
				continue
			}
			w = snowballeng.Stem(w, false)
		}
		if len(w) < a.minLen || !hasASCIILetter(w) {
			continue
		}
		if _, skip := a.excluded[w]; skip {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Analyze counts words across all review text and returns the top entries by
// count. Equal counts keep the order in which words were first seen.
func (a *WordAnalyzer) Analyze(reviews []*review.Review) []WordEntry {
	texts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if r.HasText() {
			texts = append(texts, r.Text)
		}
	}
	index := map[string]int{}
	var entries []WordEntry
	for _, w := range a.Tokens(strings.Join(texts, " ")) {
		if i, ok := index[w]; ok {
			entries[i].Count++
			continue
		}
		index[w] = len(entries)
		entries = append(entries, WordEntry{Word: w, Count: 1})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > a.limit {
		entries = entries[:a.limit]
	}
	if entries == nil {
		entries = []WordEntry{}
	}
	return entries
}

// Narrow keeps the entries of prev whose word is one of the category's
// keywords. It does not look at any review text.
func (a *WordAnalyzer) Narrow(prev []WordEntry, cat Category) []WordEntry {
	keys := make(map[string]struct{}, len(cat.Keywords))
	for _, k := range cat.Keywords {
		if a.stem {
			k = snowballeng.Stem(k, false)
		}
		keys[k] = struct{}{}
	}
	out := []WordEntry{}
	for _, e := range prev {
		if _, ok := keys[e.Word]; ok {
			out = append(out, e)
		}
	}
	return out
}

// isWordSeparator matches the whitespace set of ECMAScript's \s: Unicode
// White_Space without NEL, plus the byte order mark.
func isWordSeparator(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

func stripNonWord(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func hasASCIILetter(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}
