// File path: internal/llm/llm.go
package llm

import (
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/llm/providers"
)

type ChatRequest = providers.ChatRequest

type Provider = providers.Provider

// NewProvider selects the backing generation provider from the environment.
// OPENAI_API_KEY enables the OpenAI provider; without it the local offline
// stub is used so the service still starts in development.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
		return providers.NewLocalProvider()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
		} else {
			logger.Info("llm: configuring OpenAI client with request timeout", "timeout", timeout)
			opts = append(opts, option.WithRequestTimeout(timeout))
		}
	}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI provider selected")
	return providers.NewOpenAIProvider(client)
}
