// Package sentiment classifies query tone and adjusts response framing to
// match it.
package sentiment

import (
	"strings"

	"github.com/campusgo/assistant/domain"
)

// Analyze scores text against the valence lexicon. The summed score maps to
// a label: above 1 is positive, below -1 is negative, anything in between is
// neutral.
func Analyze(text string) domain.Sentiment {
	tokens := tokenize(text)

	s := domain.Sentiment{}
	for _, tok := range tokens {
		score, ok := lexicon[tok]
		if !ok {
			continue
		}
		s.Score += score
		if score > 0 {
			s.Positive = append(s.Positive, tok)
		} else {
			s.Negative = append(s.Negative, tok)
		}
	}

	if len(tokens) > 0 {
		s.Comparative = float64(s.Score) / float64(len(tokens))
	}

	switch {
	case s.Score > 1:
		s.Label = domain.SentimentPositive
	case s.Score < -1:
		s.Label = domain.SentimentNegative
	default:
		s.Label = domain.SentimentNeutral
	}
	return s
}

func tokenize(text string) []string {
	trimmed := strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', '.', ',', ';', ':', '\'', '"':
			return -1
		}
		return r
	}, strings.ToLower(text))
	return strings.Fields(trimmed)
}
