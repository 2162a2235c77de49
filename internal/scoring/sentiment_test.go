// internal/scoring/sentiment_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentSentiment(t *testing.T) {
	tests := []struct {
		name     string
		comment  string
		expected float64
	}{
		{"empty comment is neutral", "", 0.5},
		{"no keywords is neutral", "did the usual intervals on the track", 0.5},
		{"single positive word", "felt great today", 0.8},
		{"two positive words", "great session, felt strong", 0.9},
		{"three positive hits", "great great great", 1.0},
		{"single negative word", "legs were tired", 0.2},
		{"two negative words", "tired and heavy legs", 0.1},
		{"balanced comment is neutral", "good pace but tired at the end", 0.5},
		{"case insensitive", "GREAT workout", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CommentSentiment(tt.comment), 1e-9)
		})
	}
}

// The heuristic is deliberately unclamped upward; the scorers clamp at
// the point of use.
func TestCommentSentiment_UnclampedUpward(t *testing.T) {
	score := CommentSentiment("great strong solid smooth fresh")
	assert.Greater(t, score, 1.0)
}

func TestCommentSentiment_Deterministic(t *testing.T) {
	comment := "strong finish but sluggish start"
	assert.Equal(t, CommentSentiment(comment), CommentSentiment(comment))
}
