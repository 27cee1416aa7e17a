package textproc

import (
	"sort"
	"strings"
)

// MinKeywordBytes is the shortest word (in UTF-8 bytes) considered a keyword.
// Two-character CJK words are six bytes and so still count.
const MinKeywordBytes = 4

// Keyword is a ranked word and its occurrence count.
type Keyword struct {
	Word  string
	Count int
}

// ExtractKeywords returns up to maxKeywords words from text ordered by
// descending frequency. Text is normalized first, split on Unicode whitespace,
// and words of three bytes or fewer are dropped. Equal counts keep the order
// in which the words first appeared.
func ExtractKeywords(text string, maxKeywords int) []string {
	ranked := KeywordCounts(text, maxKeywords)
	words := make([]string, len(ranked))
	for i, k := range ranked {
		words[i] = k.Word
	}
	return words
}

// KeywordCounts is ExtractKeywords with the counts attached.
func KeywordCounts(text string, maxKeywords int) []Keyword {
	if maxKeywords <= 0 {
		return []Keyword{}
	}

	index := make(map[string]int)
	var ranked []Keyword
	for _, w := range strings.Fields(NormalizeText(text)) {
		if len(w) < MinKeywordBytes {
			continue
		}
		if i, ok := index[w]; ok {
			ranked[i].Count++
			continue
		}
		index[w] = len(ranked)
		ranked = append(ranked, Keyword{Word: w, Count: 1})
	}

	// stable: ties stay in first-seen order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	if ranked == nil {
		return []Keyword{}
	}
	return ranked
}
