package sentiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusgo/assistant/domain"
	"github.com/campusgo/assistant/sentiment"
)

func TestAnalyzePositive(t *testing.T) {
	s := sentiment.Analyze("This campus is amazing, I love it here!")
	assert.Equal(t, domain.SentimentPositive, s.Label)
	assert.Greater(t, s.Score, 1)
	assert.Contains(t, s.Positive, "amazing")
	assert.Contains(t, s.Positive, "love")
	assert.Empty(t, s.Negative)
}

func TestAnalyzeNegative(t *testing.T) {
	s := sentiment.Analyze("I'm so frustrated, the wifi is terrible and broken")
	assert.Equal(t, domain.SentimentNegative, s.Label)
	assert.Less(t, s.Score, -1)
	assert.Contains(t, s.Negative, "frustrated")
	assert.Contains(t, s.Negative, "terrible")
}

func TestAnalyzeNeutral(t *testing.T) {
	s := sentiment.Analyze("What are the library hours?")
	assert.Equal(t, domain.SentimentNeutral, s.Label)
	assert.Equal(t, 0, s.Score)
}

func TestAnalyzeBoundaryScores(t *testing.T) {
	// A single mildly positive word scores 1: still neutral
	s := sentiment.Analyze("cool")
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, domain.SentimentNeutral, s.Label)

	// Score of exactly -1 is also neutral
	s = sentiment.Analyze("this thing is broken")
	assert.Equal(t, -1, s.Score)
	assert.Equal(t, domain.SentimentNeutral, s.Label)
}

func TestAnalyzeEmpty(t *testing.T) {
	s := sentiment.Analyze("")
	assert.Equal(t, domain.SentimentNeutral, s.Label)
	assert.Equal(t, 0, s.Score)
	assert.Zero(t, s.Comparative)
}

func TestHumanizeByLabel(t *testing.T) {
	answer := "The library is open 8am-11pm."

	out := sentiment.Humanize(answer, domain.Sentiment{Label: domain.SentimentNegative})
	assert.Equal(t, "I'm sorry you're having trouble. "+answer, out)

	out = sentiment.Humanize(answer, domain.Sentiment{Label: domain.SentimentPositive})
	assert.Equal(t, "Great question! "+answer, out)

	out = sentiment.Humanize(answer, domain.Sentiment{Label: domain.SentimentNeutral})
	assert.Equal(t, "Here's what I found: "+answer, out)
}

func TestHumanizeIdempotent(t *testing.T) {
	answer := "The library is open 8am-11pm."
	for _, label := range []domain.SentimentLabel{
		domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative,
	} {
		s := domain.Sentiment{Label: label}
		once := sentiment.Humanize(answer, s)
		twice := sentiment.Humanize(once, s)
		assert.Equal(t, once, twice)
	}
}

func TestHumanizeCrossLabelGuard(t *testing.T) {
	// An answer already framed for one mood is not reframed for another
	framed := sentiment.Humanize("Dining is open.", domain.Sentiment{Label: domain.SentimentPositive})
	out := sentiment.Humanize(framed, domain.Sentiment{Label: domain.SentimentNegative})
	assert.Equal(t, framed, out)
}

func TestHumanizeApologyPassesThrough(t *testing.T) {
	// Answers that already open apologetically keep their frame
	answer := "Sorry, I couldn't find an answer to that right now. Please try again in a moment."
	for _, label := range []domain.SentimentLabel{
		domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative,
	} {
		out := sentiment.Humanize(answer, domain.Sentiment{Label: label})
		assert.Equal(t, answer, out)
	}
}

func TestHumanizeEmptyAnswer(t *testing.T) {
	out := sentiment.Humanize("", domain.Sentiment{Label: domain.SentimentNegative})
	assert.Equal(t, "", out)
}
