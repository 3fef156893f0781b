// Package faq matches incoming queries against curated question templates.
package faq

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusgo/assistant/domain"
)

// MatchThreshold is the minimum keyword overlap score for a template to
// answer a query. A score at exactly the threshold does not match.
const MatchThreshold = 0.3

// TemplateSource provides the candidate templates, highest priority first.
type TemplateSource interface {
	ListFAQTemplates(ctx context.Context) ([]domain.FAQTemplate, error)
}

// Matcher scores queries against FAQ templates by keyword overlap.
type Matcher struct {
	source TemplateSource
	log    zerolog.Logger
}

// NewMatcher creates a matcher over the given template source.
func NewMatcher(source TemplateSource, log zerolog.Logger) *Matcher {
	return &Matcher{
		source: source,
		log:    log.With().Str("component", "faq").Logger(),
	}
}

// Match returns the best-scoring template above the threshold, or nil when
// no template qualifies. Templates arrive ordered by priority descending and
// only a strictly higher score displaces the current best, so priority
// breaks ties. Source errors degrade to no match.
func (m *Matcher) Match(ctx context.Context, query string) *domain.FAQTemplate {
	templates, err := m.source.ListFAQTemplates(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load faq templates")
		return nil
	}

	tokens := strings.Fields(strings.ToLower(query))

	var best *domain.FAQTemplate
	bestScore := 0.0
	for i := range templates {
		score := Score(tokens, templates[i].Keywords)
		if score > MatchThreshold && score > bestScore {
			best = &templates[i]
			bestScore = score
		}
	}

	if best != nil {
		m.log.Debug().Str("template_id", best.ID).Float64("score", bestScore).Msg("faq match")
	}
	return best
}

// Score is the fraction of a template's keywords found in the query tokens.
// A keyword counts when any token contains it or it contains any token, so
// "libraries" still matches the keyword "library". Templates with no
// keywords score zero.
func Score(tokens []string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	matched := 0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, tok := range tokens {
			if strings.Contains(tok, kw) || strings.Contains(kw, tok) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(keywords))
}
