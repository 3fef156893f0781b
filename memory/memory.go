// Package memory tracks per-session conversation history and summarizes what
// the conversation has touched on.
package memory

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgo/assistant/domain"
	"github.com/campusgo/assistant/store"
)

const (
	// DefaultContextMessages is how many recent messages are handed to the
	// AI fallback as context.
	DefaultContextMessages = 10

	// summaryWindow is how many recent messages the topic summary scans.
	summaryWindow = 6
)

// MessageStore persists conversation messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)
}

// Memory records conversation turns and derives context for the AI fallback.
type Memory struct {
	store MessageStore
	log   zerolog.Logger
}

// New creates a conversation memory over the given message store.
func New(s MessageStore, log zerolog.Logger) *Memory {
	return &Memory{
		store: s,
		log:   log.With().Str("component", "memory").Logger(),
	}
}

// AddMessage appends a turn to the session history.
func (m *Memory) AddMessage(ctx context.Context, sessionID, role, content string, metadata []byte) (*domain.Message, error) {
	msg := &domain.Message{
		MessageID: store.NewID("msg"),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}
	if err := m.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetRecentContext returns the last maxMessages messages in conversation
// order. maxMessages <= 0 uses the default of 10.
func (m *Memory) GetRecentContext(ctx context.Context, sessionID string, maxMessages int) ([]domain.Message, error) {
	if maxMessages <= 0 {
		maxMessages = DefaultContextMessages
	}
	return m.store.GetRecentMessages(ctx, sessionID, maxMessages)
}

// Conversation topics the summary recognizes, each keyed by any of its cue
// words.
var summaryTopics = []struct {
	name string
	cues []string
}{
	{"dining", []string{"dining", "food"}},
	{"events", []string{"event"}},
	{"buildings", []string{"building", "location"}},
	{"courses", []string{"course", "class"}},
	{"parking", []string{"parking"}},
}

// GetContextSummary scans the last few messages for known topics and returns
// them comma-joined, or "" when the conversation has touched none. Store
// errors degrade to an empty summary.
func (m *Memory) GetContextSummary(ctx context.Context, sessionID string) string {
	messages, err := m.store.GetRecentMessages(ctx, sessionID, summaryWindow)
	if err != nil {
		m.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load recent messages")
		return ""
	}

	var found []string
	for _, topic := range summaryTopics {
		for _, msg := range messages {
			if containsAny(strings.ToLower(msg.Content), topic.cues) {
				found = append(found, topic.name)
				break
			}
		}
	}
	return strings.Join(found, ", ")
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
