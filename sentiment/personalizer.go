package sentiment

import (
	"strings"

	"github.com/campusgo/assistant/domain"
)

const (
	openerNegative = "I'm sorry you're having trouble. "
	openerPositive = "Great question! "
	openerNeutral  = "Here's what I found: "
)

// framingPrefixes guards against double framing: an answer that already
// opens with one of these is returned unchanged.
var framingPrefixes = []string{
	"i'm sorry",
	"sorry",
	"great question",
	"here's what i found",
}

// Humanize prefixes the answer with a framing opener matched to the query's
// sentiment. Empty answers and answers that already carry a framing opener
// pass through untouched, so the operation is idempotent.
func Humanize(answer string, s domain.Sentiment) string {
	if answer == "" {
		return answer
	}

	lower := strings.ToLower(answer)
	for _, prefix := range framingPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return answer
		}
	}

	switch s.Label {
	case domain.SentimentNegative:
		return openerNegative + answer
	case domain.SentimentPositive:
		return openerPositive + answer
	default:
		return openerNeutral + answer
	}
}
