// Package domain defines the core domain models for the campus assistant.
package domain

// Source identifies which pipeline stage produced a resolution.
type Source string

const (
	SourceFAQ        Source = "faq"
	SourceCache      Source = "cache"
	SourceLocal      Source = "local_database"
	SourceAIFallback Source = "ai_fallback"
	SourceError      Source = "error"
)

// SearchDomain is a structured local-data category the router can answer from.
type SearchDomain string

const (
	DomainDining    SearchDomain = "dining"
	DomainBuildings SearchDomain = "buildings"
	DomainEvents    SearchDomain = "events"
	DomainCourses   SearchDomain = "courses"
)

// SentimentLabel is the coarse three-way sentiment classification.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
