// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"time"

	"github.com/campusgo/assistant/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// FAQ template operations
	ListFAQTemplates(ctx context.Context) ([]domain.FAQTemplate, error)
	CreateFAQTemplate(ctx context.Context, t *domain.FAQTemplate) error

	// Campus data operations
	SearchDining(ctx context.Context, term string, limit int) ([]domain.DiningLocation, error)
	ListOpenDining(ctx context.Context, limit int) ([]domain.DiningLocation, error)
	SearchBuildings(ctx context.Context, term string, limit int) ([]domain.Building, error)
	SearchEvents(ctx context.Context, term string, after time.Time, limit int) ([]domain.CampusEvent, error)
	ListUpcomingEvents(ctx context.Context, after time.Time, limit int) ([]domain.CampusEvent, error)
	SearchCourses(ctx context.Context, term string, limit int) ([]domain.Course, error)

	// Response cache operations
	GetResponseCache(ctx context.Context, key string) (*domain.CacheEntry, error)
	UpsertResponseCache(ctx context.Context, entry *domain.CacheEntry) error
	IncrementCacheHit(ctx context.Context, key string) error

	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error)

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int, beforeIndex int) ([]domain.Message, error)
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
