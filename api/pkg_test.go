package api

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusgo/assistant/cache"
	"github.com/campusgo/assistant/config"
	"github.com/campusgo/assistant/faq"
	"github.com/campusgo/assistant/llm"
	"github.com/campusgo/assistant/localsearch"
	"github.com/campusgo/assistant/memory"
	"github.com/campusgo/assistant/resolver"
	"github.com/campusgo/assistant/tests/helpers"
)

// newTestHandler builds a handler over an in-memory store with the mock LLM
// client standing in for the AI fallback.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	s := helpers.NewTestSQLiteStore(t)
	log := zerolog.Nop()

	mem := memory.New(s, log)
	r := resolver.New(
		faq.NewMatcher(s, log),
		cache.New(s, log, nil),
		localsearch.NewRouter(s, log),
		llm.NewMockClient(),
		nil,
		mem,
		"test-model",
		log,
		nil,
	)

	return NewHandler(s, r, mem, &config.Config{}, log)
}
