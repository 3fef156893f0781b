// Package resolver sequences the tiered query-resolution pipeline: FAQ
// match, cache lookup, local data search, then AI fallback.
package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgo/assistant/domain"
	"github.com/campusgo/assistant/llm"
	"github.com/campusgo/assistant/metrics"
	"github.com/campusgo/assistant/sentiment"
	"github.com/campusgo/assistant/suggest"
)

// ErrorAnswer is returned when the AI fallback fails.
const ErrorAnswer = "Sorry, I couldn't find an answer to that right now. Please try again in a moment."

// BlockedAnswer is returned when the fallback policy refuses to forward a
// query to the external AI service.
const BlockedAnswer = "I can't help with requests involving sensitive personal information."

const systemPrompt = "You are a helpful campus assistant. Answer questions about campus life, facilities, dining, events, and courses concisely."

// writeBackTimeout bounds the fire-and-forget cache write after the request
// context is gone.
const writeBackTimeout = 5 * time.Second

// FAQMatcher finds a template answer for a query.
type FAQMatcher interface {
	Match(ctx context.Context, query string) *domain.FAQTemplate
}

// Cache serves and stores previously resolved answers with their category.
type Cache interface {
	Get(ctx context.Context, query string) (*domain.CachedAnswer, string, bool)
	Put(ctx context.Context, query string, answer *domain.CachedAnswer, category string)
}

// LocalSearcher queries the structured campus data domains.
type LocalSearcher interface {
	Search(ctx context.Context, query string) *domain.LocalSearchResult
}

// FallbackGate decides whether a query may reach the external AI service.
type FallbackGate interface {
	Evaluate(ctx context.Context, input interface{}) (string, error)
}

// ContextProvider supplies recent conversation history for the AI fallback.
type ContextProvider interface {
	GetRecentContext(ctx context.Context, sessionID string, maxMessages int) ([]domain.Message, error)
	GetContextSummary(ctx context.Context, sessionID string) string
}

// Resolver runs queries through the pipeline tiers in order and stops at the
// first tier that produces an answer.
type Resolver struct {
	faq             FAQMatcher
	cache           Cache
	local           LocalSearcher
	ai              llm.LLMClient
	gate            FallbackGate
	memory          ContextProvider
	model           string
	contextMessages int
	log             zerolog.Logger
	metrics         *metrics.Metrics
}

// New creates a resolver. gate and memory may be nil, disabling the policy
// check and conversation context respectively.
func New(faq FAQMatcher, cache Cache, local LocalSearcher, ai llm.LLMClient,
	gate FallbackGate, memory ContextProvider, model string,
	log zerolog.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		faq:     faq,
		cache:   cache,
		local:   local,
		ai:      ai,
		gate:    gate,
		memory:  memory,
		model:   model,
		log:     log.With().Str("component", "resolver").Logger(),
		metrics: m,
	}
}

// SetContextMessages caps how much conversation history is sent to the AI
// fallback. Zero keeps the memory default.
func (r *Resolver) SetContextMessages(n int) {
	r.contextMessages = n
}

// Resolve runs the pipeline for a query. The terminal answer is framed by the
// sentiment of the original query and annotated with follow-up suggestions.
func (r *Resolver) Resolve(ctx context.Context, req domain.ResolveRequest) *domain.Resolution {
	start := time.Now()
	mood := sentiment.Analyze(req.Query)

	answer, source, category, local := r.resolve(ctx, req)

	res := &domain.Resolution{
		Answer:      sentiment.Humanize(answer, mood),
		Source:      source,
		Category:    category,
		Sentiment:   mood.Label,
		Suggestions: suggest.For(req.Query),
		Local:       local,
		LatencyMs:   time.Since(start).Milliseconds(),
	}

	r.metrics.RecordResolution(string(source), time.Since(start))
	r.log.Info().
		Str("source", string(source)).
		Str("session_id", req.SessionID).
		Int64("latency_ms", res.LatencyMs).
		Msg("query resolved")
	return res
}

func (r *Resolver) resolve(ctx context.Context, req domain.ResolveRequest) (string, domain.Source, string, *domain.LocalSearchResult) {
	if tmpl := r.faq.Match(ctx, req.Query); tmpl != nil {
		return tmpl.Answer, domain.SourceFAQ, tmpl.Category, nil
	}

	if cached, category, ok := r.cache.Get(ctx, req.Query); ok {
		return cached.Answer, domain.SourceCache, category, nil
	}

	if result := r.local.Search(ctx, req.Query); result != nil && result.Count() > 0 {
		return renderLocal(result), domain.SourceLocal, string(result.Domain), result
	}

	return r.fallback(ctx, req)
}

// fallback delegates to the external AI service and writes the raw answer
// back into the cache without waiting for the write to finish.
func (r *Resolver) fallback(ctx context.Context, req domain.ResolveRequest) (string, domain.Source, string, *domain.LocalSearchResult) {
	if blocked := r.gateBlocks(ctx, req); blocked {
		r.metrics.RecordFallbackBlocked()
		return BlockedAnswer, domain.SourceAIFallback, "", nil
	}

	resp, err := r.ai.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model:    r.model,
		Messages: r.buildMessages(ctx, req),
	})
	if err != nil {
		r.metrics.RecordFallbackError()
		r.log.Error().Err(err).Msg("ai fallback failed")
		return ErrorAnswer, domain.SourceError, "", nil
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		r.metrics.RecordFallbackError()
		r.log.Error().Msg("ai fallback returned no choices")
		return ErrorAnswer, domain.SourceError, "", nil
	}

	answer := resp.Choices[0].Message.Content

	// Fire-and-forget: the unframed answer goes into the cache so a later
	// hit can be framed for its own query's mood.
	go func() {
		wbCtx, cancel := context.WithTimeout(context.Background(), writeBackTimeout)
		defer cancel()
		r.cache.Put(wbCtx, req.Query, &domain.CachedAnswer{Answer: answer}, "")
	}()

	return answer, domain.SourceAIFallback, "", nil
}

// gateBlocks consults the fallback policy. Policy errors fail open.
func (r *Resolver) gateBlocks(ctx context.Context, req domain.ResolveRequest) bool {
	if r.gate == nil {
		return false
	}
	decision, err := r.gate.Evaluate(ctx, map[string]interface{}{
		"query":   req.Query,
		"user_id": req.UserID,
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("fallback policy evaluation failed")
		return false
	}
	return decision == "block"
}

func (r *Resolver) buildMessages(ctx context.Context, req domain.ResolveRequest) []llm.ChatMessage {
	messages := []llm.ChatMessage{{Role: "system", Content: systemPrompt}}

	if r.memory != nil && req.SessionID != "" {
		if summary := r.memory.GetContextSummary(ctx, req.SessionID); summary != "" {
			messages = append(messages, llm.ChatMessage{
				Role:    "system",
				Content: "The conversation so far has touched on: " + summary + ".",
			})
		}
		history, err := r.memory.GetRecentContext(ctx, req.SessionID, r.contextMessages)
		if err != nil {
			r.log.Warn().Err(err).Msg("failed to load conversation context")
		}
		for _, msg := range history {
			messages = append(messages, llm.ChatMessage{Role: msg.Role, Content: msg.Content})
		}
	}

	return append(messages, llm.ChatMessage{Role: "user", Content: req.Query})
}

// renderLocal turns structured records into a readable answer.
func renderLocal(res *domain.LocalSearchResult) string {
	var b strings.Builder

	switch res.Domain {
	case domain.DomainDining:
		b.WriteString("Dining locations: ")
		for i, d := range res.Dining {
			if i > 0 {
				b.WriteString("; ")
			}
			status := "closed"
			if d.IsOpen {
				status = "open"
			}
			fmt.Fprintf(&b, "%s (%s, %s now)", d.Name, d.Hours, status)
		}
		b.WriteString(".")

	case domain.DomainBuildings:
		for i, bl := range res.Buildings {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s (%s) is at %s.", bl.Name, bl.Code, bl.Address)
		}

	case domain.DomainEvents:
		b.WriteString("Upcoming events: ")
		for i, e := range res.Events {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s at %s on %s", e.Title, e.Location, e.StartTime.Format("Mon Jan 2, 3:04 PM"))
		}
		b.WriteString(".")

	case domain.DomainCourses:
		for i, c := range res.Courses {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s %s with %s, %s.", c.Code, c.Name, c.Instructor, c.Schedule)
		}
	}

	return b.String()
}
