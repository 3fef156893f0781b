package domain

import (
	"encoding/json"
	"time"
)

// FAQTemplate is a hand-authored keyword-tagged question/answer pair.
// Templates are immutable once loaded; ordering is by Priority descending.
type FAQTemplate struct {
	ID       string   `json:"id"`
	Keywords []string `json:"keywords"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Priority int      `json:"priority"`
}

// CacheEntry is a persisted previously-computed answer. The field names match
// the interop record shape: query_key, response_data, category, expires_at,
// hit_count.
type CacheEntry struct {
	QueryKey     string          `json:"query_key"`
	ResponseData json.RawMessage `json:"response_data"`
	Category     string          `json:"category,omitempty"`
	ExpiresAt    time.Time       `json:"expires_at"`
	HitCount     int             `json:"hit_count"`
}

// CachedAnswer is the payload stored in a cache entry's response_data.
type CachedAnswer struct {
	Answer string `json:"answer"`
}

// DiningLocation is a campus dining venue.
type DiningLocation struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Hours  string `json:"hours"`
	IsOpen bool   `json:"is_open"`
}

// Building is a campus building.
type Building struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address"`
}

// CampusEvent is a scheduled campus event.
type CampusEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	StartTime time.Time `json:"start_time"`
}

// Course is a course catalog entry.
type Course struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Schedule   string `json:"schedule"`
}

// LocalSearchResult holds records from the first local domain that matched a
// query. Exactly one of the record slices is populated. Transient, never
// persisted.
type LocalSearchResult struct {
	Domain    SearchDomain     `json:"domain"`
	Dining    []DiningLocation `json:"dining,omitempty"`
	Buildings []Building       `json:"buildings,omitempty"`
	Events    []CampusEvent    `json:"events,omitempty"`
	Courses   []Course         `json:"courses,omitempty"`
	Source    Source           `json:"source"`
}

// Count returns the number of records in the populated slice.
func (r *LocalSearchResult) Count() int {
	return len(r.Dining) + len(r.Buildings) + len(r.Events) + len(r.Courses)
}

// Session represents a conversation session. The session identifier is
// generated once per client lifetime and is not tied to authentication.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single conversation turn, ordered by MessageIndex within a
// session.
type Message struct {
	MessageID    string          `json:"message_id"`
	SessionID    string          `json:"session_id"`
	Role         string          `json:"role"`
	Content      string          `json:"content"`
	MessageIndex int             `json:"message_index"`
	CreatedAt    time.Time       `json:"created_at"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
}

// Sentiment is the full classifier output for a piece of text.
type Sentiment struct {
	Score       int            `json:"score"`
	Comparative float64        `json:"comparative"`
	Label       SentimentLabel `json:"label"`
	Positive    []string       `json:"positive,omitempty"`
	Negative    []string       `json:"negative,omitempty"`
}

// ResolveRequest is the input to the resolution pipeline.
type ResolveRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// Resolution is the terminal result of the pipeline, after tone framing and
// suggestion annotation.
type Resolution struct {
	Answer      string             `json:"answer"`
	Source      Source             `json:"source"`
	Category    string             `json:"category,omitempty"`
	Sentiment   SentimentLabel     `json:"sentiment"`
	Suggestions []string           `json:"suggestions"`
	Local       *LocalSearchResult `json:"local_results,omitempty"`
	LatencyMs   int64              `json:"latency_ms"`
}
