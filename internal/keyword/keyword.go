// Package keyword derives search keywords from conversational text.
package keyword

import (
	"strings"
	"unicode"
)

// stopWords are function words (English + Chinese) that carry no retrieval
// value. Chinese entries include the common compound forms because CJK runs
// survive tokenization as a single token.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "could", "should",
		"may", "might", "must", "shall", "can", "need", "dare", "ought", "used", "to",
		"of", "in", "for", "on", "with", "at", "by", "from", "as", "into", "through",
		"during", "before", "after", "above", "below", "between", "under", "again",
		"further", "then", "once", "here", "there", "when", "where", "why", "how",
		"all", "each", "few", "more", "most", "other", "some", "such", "no", "nor",
		"not", "only", "own", "same", "so", "than", "too", "very", "just", "and",
		"but", "if", "or", "because", "until", "while", "this", "that", "these",
		"those", "what", "which", "who", "whom", "i", "you", "he", "she", "it", "we",
		"they", "me", "him", "her", "us", "them", "my", "your", "his", "its", "our",
		"their", "mine", "yours", "hers", "ours", "theirs",
		"请", "帮我", "给我", "我想", "你能", "可以", "这个", "那个", "什么",
		"怎么", "如何", "为什么", "请帮我", "请给我", "帮帮我",
	} {
		stopWords[w] = struct{}{}
	}
}

// Extract lowercases text, splits on non-alphanumeric boundaries, drops tokens
// of length <= 2 bytes and stop-words, and joins the rest with single spaces.
// An empty result means the text had no usable keywords.
func Extract(text string) string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var kept []string
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
