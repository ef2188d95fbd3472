// Package llm provides the model providers used for report extraction and
// vulnerability triage, backed by Genkit.
package llm

import (
	"context"
	"errors"
)

// ErrNoResponse is returned when the model produced an empty completion.
var ErrNoResponse = errors.New("model returned an empty response")

// Provider generates a completion for a system prompt plus a user query.
// Implementations return the raw model text; JSON extraction happens in the
// parser package.
type Provider interface {
	Generate(ctx context.Context, system, query string) (string, error)
	Name() string
	Model() string
}
