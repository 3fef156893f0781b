// Package localsearch routes queries to campus data domains and runs the
// matching lookups.
package localsearch

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgo/assistant/domain"
)

const resultLimit = 5

// Store provides the per-domain lookups the router dispatches to.
type Store interface {
	SearchDining(ctx context.Context, term string, limit int) ([]domain.DiningLocation, error)
	ListOpenDining(ctx context.Context, limit int) ([]domain.DiningLocation, error)
	SearchBuildings(ctx context.Context, term string, limit int) ([]domain.Building, error)
	SearchEvents(ctx context.Context, term string, after time.Time, limit int) ([]domain.CampusEvent, error)
	ListUpcomingEvents(ctx context.Context, after time.Time, limit int) ([]domain.CampusEvent, error)
	SearchCourses(ctx context.Context, term string, limit int) ([]domain.Course, error)
}

// Router matches queries to search domains by keyword and falls through to
// the next domain when a lookup comes back empty.
type Router struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewRouter creates a router over the given store.
func NewRouter(store Store, log zerolog.Logger) *Router {
	return &Router{
		store: store,
		log:   log.With().Str("component", "localsearch").Logger(),
		now:   time.Now,
	}
}

// SetNow overrides the clock, for tests.
func (r *Router) SetNow(now func() time.Time) {
	r.now = now
}

// Domain keyword cues, checked in this fixed order. A query can cue several
// domains; empty results fall through to the next cued domain.
var domainKeywords = []struct {
	domain   domain.SearchDomain
	keywords []string
}{
	{domain.DomainDining, []string{"dining", "food", "eat", "restaurant", "cafe", "cafeteria", "hungry", "meal", "lunch", "dinner", "breakfast"}},
	{domain.DomainBuildings, []string{"building", "hall", "located", "address", "room", "center"}},
	{domain.DomainEvents, []string{"event", "events", "happening", "concert", "fair", "activities"}},
	{domain.DomainCourses, []string{"course", "courses", "class", "classes", "professor", "instructor", "section"}},
}

var stopwords = map[string]bool{
	"what": true, "whats": true, "what's": true, "when": true, "where": true,
	"who": true, "how": true, "is": true, "are": true, "the": true, "a": true,
	"an": true, "for": true, "to": true, "in": true, "on": true, "at": true,
	"of": true, "me": true, "my": true, "i": true, "do": true, "does": true,
	"can": true, "you": true, "find": true, "tell": true, "about": true,
	"right": true, "now": true, "today": true, "this": true, "week": true,
	"any": true, "there": true, "open": true,
}

// Search routes the query to its cued domains and returns the first
// non-empty result. Returns nil when no domain is cued or every cued lookup
// comes back empty. Store errors are logged and treated as empty results.
func (r *Router) Search(ctx context.Context, query string) *domain.LocalSearchResult {
	tokens := tokenize(query)

	for _, dk := range domainKeywords {
		if !cued(tokens, dk.keywords) {
			continue
		}
		result := r.search(ctx, dk.domain, tokens)
		if result != nil && result.Count() > 0 {
			r.log.Debug().Str("domain", string(dk.domain)).Int("count", result.Count()).Msg("local search hit")
			return result
		}
	}
	return nil
}

func (r *Router) search(ctx context.Context, d domain.SearchDomain, tokens []string) *domain.LocalSearchResult {
	term := searchTerm(tokens)
	result := &domain.LocalSearchResult{Domain: d, Source: domain.SourceLocal}

	switch d {
	case domain.DomainDining:
		if term != "" {
			locations, err := r.store.SearchDining(ctx, term, resultLimit)
			if err != nil {
				r.log.Warn().Err(err).Msg("dining search failed")
				return nil
			}
			if len(locations) > 0 {
				result.Dining = locations
				return result
			}
		}
		// No name matched; list what is open instead
		locations, err := r.store.ListOpenDining(ctx, resultLimit)
		if err != nil {
			r.log.Warn().Err(err).Msg("open dining lookup failed")
			return nil
		}
		result.Dining = locations

	case domain.DomainBuildings:
		if term == "" {
			return nil
		}
		buildings, err := r.store.SearchBuildings(ctx, term, resultLimit)
		if err != nil {
			r.log.Warn().Err(err).Msg("building search failed")
			return nil
		}
		result.Buildings = buildings

	case domain.DomainEvents:
		if term != "" {
			events, err := r.store.SearchEvents(ctx, term, r.now(), resultLimit)
			if err != nil {
				r.log.Warn().Err(err).Msg("event search failed")
				return nil
			}
			if len(events) > 0 {
				result.Events = events
				return result
			}
		}
		events, err := r.store.ListUpcomingEvents(ctx, r.now(), resultLimit)
		if err != nil {
			r.log.Warn().Err(err).Msg("upcoming events lookup failed")
			return nil
		}
		result.Events = events

	case domain.DomainCourses:
		if term == "" {
			return nil
		}
		courses, err := r.store.SearchCourses(ctx, term, resultLimit)
		if err != nil {
			r.log.Warn().Err(err).Msg("course search failed")
			return nil
		}
		result.Courses = courses
	}

	return result
}

// allCues holds every domain's cue keywords. Cue words route the query but
// never filter it.
var allCues = func() map[string]bool {
	m := make(map[string]bool)
	for _, dk := range domainKeywords {
		for _, kw := range dk.keywords {
			m[kw] = true
		}
	}
	return m
}()

// searchTerm picks the first token that is neither a stopword nor a cue
// keyword, to use as the lookup filter.
func searchTerm(tokens []string) string {
	for _, tok := range tokens {
		if !stopwords[tok] && !allCues[tok] {
			return tok
		}
	}
	return ""
}

// cued reports whether any query token contains one of the domain's cue
// keywords. Plain substring containment, so "restaurants" and "lunchtime"
// still cue dining.
func cued(tokens []string, keywords []string) bool {
	for _, tok := range tokens {
		for _, kw := range keywords {
			if strings.Contains(tok, kw) {
				return true
			}
		}
	}
	return false
}

func tokenize(query string) []string {
	trimmed := strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', '.', ',', ';', ':':
			return -1
		}
		return r
	}, strings.ToLower(query))
	return strings.Fields(trimmed)
}
