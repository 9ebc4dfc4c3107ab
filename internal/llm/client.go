// Package llm wraps the chat completion service used by the agent.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/quillcli/quill/internal/config"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Provider submits a message history plus a tool manifest and returns the
// next assistant message. It is the loop's only network dependency.
type Provider interface {
	Chat(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error)
}

// Client is the OpenAI-backed Provider.
type Client struct {
	api    *openai.Client
	model  string
	logger *zap.Logger
}

// NewClient builds a client from configuration. An OPENAI_BASE_URL
// override points it at any OpenAI-compatible endpoint.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		apiCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &Client{
		api:    openai.NewClientWithConfig(apiCfg),
		model:  cfg.OpenAIModel,
		logger: logger,
	}
}

// Chat performs one chat completion call with the tool manifest bound.
func (c *Client) Chat(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error) {
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	})
	if err != nil {
		return openai.ChatCompletionMessage{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, fmt.Errorf("chat completion: empty response")
	}

	msg := resp.Choices[0].Message
	c.logger.Debug("chat completion",
		zap.String("model", c.model),
		zap.Int("messages", len(messages)),
		zap.Int("tool_calls", len(msg.ToolCalls)),
		zap.Duration("duration", time.Since(start)))

	return msg, nil
}
