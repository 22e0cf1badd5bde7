// File path: internal/llm/providers/openai_client.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"

	"github.com/outreachready/backend/internal/common"
)

type OpenAIProvider struct {
	client    openai.Client
	chatModel string
}

func NewOpenAIProvider(client openai.Client) *OpenAIProvider {
	chatModel := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL"))
	if chatModel == "" {
		chatModel = "gpt-4o"
	}
	common.Logger().Info("llm: OpenAI provider configured", "chat_model", chatModel)
	return &OpenAIProvider{client: client, chatModel: chatModel}
}

func (o *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	logger := common.Logger()
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.chatModel),
	}
	if req.System != "" {
		params.Messages = append(params.Messages, openai.SystemMessage(req.System))
	}
	params.Messages = append(params.Messages, openai.UserMessage(req.Prompt))
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	logger.Debug("llm: sending chat completion request", "model", o.chatModel, "prompt_length", len(req.Prompt))
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("llm: chat completion failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	logger.Debug("llm: chat completion succeeded")
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
