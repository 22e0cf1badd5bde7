// File path: internal/llm/providers/provider.go
package providers

import "context"

// ChatRequest describes a single completion call: an optional system
// instruction, the user prompt, and sampling controls. Zero-valued
// Temperature and MaxTokens leave the backend defaults in place.
type ChatRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int64
}

// Provider is the text-generation backend contract. Implementations must be
// safe for concurrent use.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
	Name() string
}
