package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

// TermCount is one description token and its occurrence count.
type TermCount struct {
	Term  string
	Count int
}

// stopwords are dropped from the text-frequency view: high-frequency
// English function words that drown out the useful vocabulary.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
		"for", "from", "had", "has", "have", "in", "is", "it", "its",
		"no", "not", "of", "on", "or", "our", "so", "than", "that",
		"the", "their", "there", "they", "this", "to", "was", "were",
		"when", "which", "will", "with", "would", "you", "your",
	} {
		stopwords[w] = struct{}{}
	}
}

// TermFrequencies tokenizes the description field across the table and
// returns terms by descending count, ties in first-seen order. Tokens
// shorter than three runes and stopwords are dropped. A non-positive
// limit returns everything.
func TermFrequencies(t core.Table, limit int) []TermCount {
	counts := make(map[string]int)
	var order []string

	for _, rec := range t {
		for _, tok := range tokenize(rec.Description) {
			if _, ok := counts[tok]; !ok {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	out := make([]TermCount, 0, len(order))
	for _, term := range order {
		out = append(out, TermCount{Term: term, Count: counts[term]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}
