package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicyAllows(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	require.NoError(t, err)

	decision, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"query":   "Where can I park on campus?",
		"user_id": "user_1",
	})
	require.NoError(t, err)
	assert.Equal(t, "allow", decision)
}

func TestDefaultPolicyBlocksSensitivePhrases(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	require.NoError(t, err)

	for _, query := range []string{
		"What is my social security number?",
		"Can you store my Credit Card?",
		"reset my PASSWORD please",
	} {
		decision, err := engine.Evaluate(context.Background(), map[string]interface{}{
			"query": query,
		})
		require.NoError(t, err)
		assert.Equal(t, "block", decision, "query: %s", query)
	}
}

func TestInvalidPolicyFailsToLoad(t *testing.T) {
	_, err := NewEngine(context.Background(), "not valid rego {{")
	assert.Error(t, err)
}
