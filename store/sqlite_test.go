package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgo/assistant/domain"
	"github.com/campusgo/assistant/store"
	"github.com/campusgo/assistant/tests/helpers"
)

func TestFAQTemplates(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()

	err := s.CreateFAQTemplate(ctx, &domain.FAQTemplate{
		ID:       "faq_1",
		Keywords: []string{"library", "hours"},
		Question: "What are the library hours?",
		Answer:   "8am-11pm.",
		Category: "facilities",
		Priority: 5,
	})
	require.NoError(t, err)

	err = s.CreateFAQTemplate(ctx, &domain.FAQTemplate{
		ID:       "faq_2",
		Keywords: []string{"wifi"},
		Question: "How do I connect to wifi?",
		Answer:   "Use CampusNet.",
		Category: "it",
		Priority: 10,
	})
	require.NoError(t, err)

	templates, err := s.ListFAQTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	// Ordered by priority descending
	assert.Equal(t, "faq_2", templates[0].ID)
	assert.Equal(t, []string{"wifi"}, templates[0].Keywords)
	assert.Equal(t, "faq_1", templates[1].ID)
}

func TestSearchDining(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoData(ctx))

	results, err := s.SearchDining(ctx, "commons", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The Commons", results[0].Name)

	open, err := s.ListOpenDining(ctx, 10)
	require.NoError(t, err)
	require.Len(t, open, 2)
	for _, d := range open {
		assert.True(t, d.IsOpen)
	}
}

func TestSearchDiningEscapesLikeMetacharacters(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoData(ctx))

	_, err := s.DB().ExecContext(ctx,
		`INSERT INTO dining_locations (id, name, hours, is_open) VALUES (?, ?, ?, ?)`,
		"din_pct", "100% Juice Bar", "9am-5pm", true)
	require.NoError(t, err)

	// A bare wildcard matches nothing, not everything
	results, err := s.SearchDining(ctx, "50%", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	// A literal metacharacter in a name is still findable
	results, err = s.SearchDining(ctx, "100%", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "100% Juice Bar", results[0].Name)
}

func TestSearchBuildings(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoData(ctx))

	byName, err := s.SearchBuildings(ctx, "science", 10)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "SCI", byName[0].Code)

	byCode, err := s.SearchBuildings(ctx, "eng", 10)
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "Engineering Hall", byCode[0].Name)
}

func TestSearchEvents(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoData(ctx))

	now := time.Now()

	results, err := s.SearchEvents(ctx, "career", now, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Career Fair", results[0].Title)

	// Past cutoff excludes everything
	results, err = s.SearchEvents(ctx, "career", now.Add(30*24*time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	upcoming, err := s.ListUpcomingEvents(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	// Ordered by start time ascending
	assert.Equal(t, "Career Fair", upcoming[0].Title)
}

func TestSearchCourses(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoData(ctx))

	byCode, err := s.SearchCourses(ctx, "cs101", 10)
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "Intro to Computer Science", byCode[0].Name)

	byName, err := s.SearchCourses(ctx, "algebra", 10)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "MATH201", byName[0].Code)
}

func TestResponseCache(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()

	missing, err := s.GetResponseCache(ctx, "no_such_key")
	require.NoError(t, err)
	assert.Nil(t, missing)

	entry := &domain.CacheEntry{
		QueryKey:     "library_hours",
		ResponseData: json.RawMessage(`{"answer":"8am-11pm."}`),
		Category:     "facilities",
		ExpiresAt:    time.Now().Add(24 * time.Hour),
		HitCount:     1,
	}
	require.NoError(t, s.UpsertResponseCache(ctx, entry))

	got, err := s.GetResponseCache(ctx, "library_hours")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "facilities", got.Category)
	assert.Equal(t, 1, got.HitCount)
	assert.JSONEq(t, `{"answer":"8am-11pm."}`, string(got.ResponseData))

	require.NoError(t, s.IncrementCacheHit(ctx, "library_hours"))
	got, err = s.GetResponseCache(ctx, "library_hours")
	require.NoError(t, err)
	assert.Equal(t, 2, got.HitCount)

	// Upsert replaces the existing row and resets hit count
	entry.ResponseData = json.RawMessage(`{"answer":"updated"}`)
	entry.HitCount = 1
	require.NoError(t, s.UpsertResponseCache(ctx, entry))
	got, err = s.GetResponseCache(ctx, "library_hours")
	require.NoError(t, err)
	assert.Equal(t, 1, got.HitCount)
	assert.JSONEq(t, `{"answer":"updated"}`, string(got.ResponseData))
}

func TestSessionsAndMessages(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()

	session, err := s.GetOrCreateSession(ctx, "sess_abc", "user_1")
	require.NoError(t, err)
	assert.Equal(t, "sess_abc", session.SessionID)

	again, err := s.GetOrCreateSession(ctx, "sess_abc", "user_1")
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, again.SessionID)

	for i, content := range []string{"first", "second", "third"} {
		msg := &domain.Message{
			MessageID: store.NewID("msg"),
			SessionID: "sess_abc",
			Role:      domain.RoleUser,
			Content:   content,
			CreatedAt: time.Now(),
		}
		require.NoError(t, s.CreateMessage(ctx, msg))
		assert.Equal(t, i, msg.MessageIndex)
	}

	messages, err := s.GetMessages(ctx, "sess_abc", 10, -1)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "third", messages[2].Content)

	// Cursor pagination
	before, err := s.GetMessages(ctx, "sess_abc", 10, 2)
	require.NoError(t, err)
	require.Len(t, before, 2)
	assert.Equal(t, "second", before[1].Content)

	recent, err := s.GetRecentMessages(ctx, "sess_abc", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Content)
	assert.Equal(t, "third", recent[1].Content)
}
