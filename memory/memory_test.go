package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgo/assistant/domain"
	"github.com/campusgo/assistant/memory"
	"github.com/campusgo/assistant/tests/helpers"
)

func newTestMemory(t *testing.T) (*memory.Memory, string) {
	t.Helper()
	s := helpers.NewTestSQLiteStore(t)
	_, err := s.GetOrCreateSession(context.Background(), "sess_test", "user_1")
	require.NoError(t, err)
	return memory.New(s, zerolog.Nop()), "sess_test"
}

func TestAddMessageAssignsIndex(t *testing.T) {
	m, sessionID := newTestMemory(t)
	ctx := context.Background()

	first, err := m.AddMessage(ctx, sessionID, domain.RoleUser, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, first.MessageIndex)
	assert.NotEmpty(t, first.MessageID)

	second, err := m.AddMessage(ctx, sessionID, domain.RoleAssistant, "hi there", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, second.MessageIndex)
}

func TestGetRecentContext(t *testing.T) {
	m, sessionID := newTestMemory(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := m.AddMessage(ctx, sessionID, domain.RoleUser, fmt.Sprintf("message %d", i), nil)
		require.NoError(t, err)
	}

	// Default window is 10, returned in conversation order
	messages, err := m.GetRecentContext(ctx, sessionID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 10)
	assert.Equal(t, "message 5", messages[0].Content)
	assert.Equal(t, "message 14", messages[9].Content)

	messages, err = m.GetRecentContext(ctx, sessionID, 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "message 12", messages[0].Content)
}

func TestGetContextSummary(t *testing.T) {
	m, sessionID := newTestMemory(t)
	ctx := context.Background()

	turns := []string{
		"Where can I find food on campus?",
		"The Commons is open until 9pm.",
		"And where is parking near the science building?",
	}
	for _, content := range turns {
		_, err := m.AddMessage(ctx, sessionID, domain.RoleUser, content, nil)
		require.NoError(t, err)
	}

	summary := m.GetContextSummary(ctx, sessionID)
	assert.Equal(t, "dining, buildings, parking", summary)
}

func TestGetContextSummaryWindow(t *testing.T) {
	m, sessionID := newTestMemory(t)
	ctx := context.Background()

	// The dining mention falls outside the 6-message window
	_, err := m.AddMessage(ctx, sessionID, domain.RoleUser, "where is the food", nil)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		_, err := m.AddMessage(ctx, sessionID, domain.RoleUser, "nothing topical here", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, "", m.GetContextSummary(ctx, sessionID))
}

func TestGetContextSummaryEmpty(t *testing.T) {
	m, sessionID := newTestMemory(t)
	assert.Equal(t, "", m.GetContextSummary(context.Background(), sessionID))
}
