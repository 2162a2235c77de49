// internal/scoring/sentiment.go
package scoring

import "strings"

// SentimentFunc scores free text into roughly [0,1], 0.5 neutral. It is
// deliberately a narrow capability: the training scorer takes one as a
// dependency, so the word-count heuristic below can later be swapped for
// a real classifier without touching the scorers.
type SentimentFunc func(comment string) float64

// CommentSentiment is the default SentimentFunc: a fixed-list word-count
// heuristic. Positive majority yields 0.7 plus 0.1 per positive hit
// (deliberately unclamped upward, callers clamp at the point of use);
// negative majority yields 0.3 minus 0.1 per negative hit; ties and
// empty comments yield 0.5.
func CommentSentiment(comment string) float64 {
	if comment == "" {
		return 0.5
	}
	lower := strings.ToLower(comment)

	positive := countOccurrences(lower, positiveWords)
	negative := countOccurrences(lower, negativeWords)

	switch {
	case positive > negative:
		return 0.7 + 0.1*float64(positive)
	case negative > positive:
		return 0.3 - 0.1*float64(negative)
	default:
		return 0.5
	}
}

func countOccurrences(text string, words []string) int {
	total := 0
	for _, w := range words {
		total += strings.Count(text, w)
	}
	return total
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
