// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"fmt"
	"strings"
)

// LocalProvider is an offline fallback used when no API key is configured.
// It returns a canned four-variant payload for drafting prompts so the full
// pipeline can be exercised without a backend, and a short echo otherwise.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

const cannedVariants = `[
  {"variant": "direct", "content": "Placeholder direct message generated offline.", "matchReason": "offline stub"},
  {"variant": "value", "content": "Placeholder value message generated offline.", "matchReason": "offline stub"},
  {"variant": "curiosity", "content": "Placeholder curiosity message generated offline.", "matchReason": "offline stub"},
  {"variant": "relationship", "content": "Placeholder relationship message generated offline.", "matchReason": "offline stub"}
]`

func (l *LocalProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("empty prompt")
	}
	if strings.Contains(req.Prompt, "Generate 4 variants") {
		return cannedVariants, nil
	}
	summary := strings.TrimSpace(req.Prompt)
	if runes := []rune(summary); len(runes) > 200 {
		summary = string(runes[:200])
	}
	return "[local] " + summary, nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
