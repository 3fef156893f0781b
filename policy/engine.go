// Package policy gates AI fallback requests through an OPA policy.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.fallback_policy.decision"),
		rego.Module("fallback_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks whether a query may be forwarded to the AI fallback.
// Input is a map with the keys: query, user_id. Returns the decision
// ("allow" or "block"). Missing results default to allow.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "allow", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "allow", nil
}

// DefaultPolicy blocks queries that look like they carry sensitive personal
// data, so they are never forwarded to the external AI service.
const DefaultPolicy = `
package fallback_policy

import rego.v1

blocked_phrases := ["social security", "credit card", "password"]

default decision := "allow"

decision := "block" if {
	some phrase in blocked_phrases
	contains(lower(input.query), phrase)
}
`
