// Package suggest derives follow-up query suggestions from the topic of the
// query just answered.
package suggest

import "strings"

type topicSuggestions struct {
	keywords    []string
	suggestions []string
}

// Topics in priority order; the first one cued by the query wins.
var topics = []topicSuggestions{
	{
		keywords: []string{"dining", "food"},
		suggestions: []string{
			"What dining locations are open right now?",
			"What are today's dining hours?",
			"Are there any food trucks on campus?",
		},
	},
	{
		keywords: []string{"event", "events"},
		suggestions: []string{
			"What events are happening this week?",
			"Are there any free events today?",
			"How do I register for campus events?",
		},
	},
	{
		keywords: []string{"building", "location"},
		suggestions: []string{
			"Where is the nearest study space?",
			"What are the library hours?",
			"How do I get a campus map?",
		},
	},
	{
		keywords: []string{"course", "class"},
		suggestions: []string{
			"When does course registration open?",
			"How do I contact my instructor?",
			"Where can I find the course catalog?",
		},
	},
}

var defaultSuggestions = []string{
	"What's open for dining right now?",
	"What events are happening this week?",
	"What are the library hours?",
}

// For returns up to 3 follow-up suggestions matched to the query's topic, or
// a generic list when no topic matches.
func For(query string) []string {
	lower := strings.ToLower(query)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return t.suggestions
			}
		}
	}
	return defaultSuggestions
}
