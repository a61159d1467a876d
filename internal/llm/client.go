// Package llm talks to the external completion provider. This is the one
// boundary where failures are absorbed instead of surfaced: a broken provider
// degrades chat quality, it never breaks the chat endpoint.
package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Fallback is returned in place of a completion whenever the provider fails
const Fallback = "The assistant is having trouble right now. Please try again."

// Completer is implemented by the production client and by test stubs
type Completer interface {
	Complete(ctx context.Context, instructions, message string) (string, error)
}

type Client struct {
	c     *openai.Client
	model string
}

// NewClient builds a client for any OpenAI-compatible endpoint. The default
// config points at Gemini's OpenAI-compatible surface.
func NewClient() *Client {
	cfg := openai.DefaultConfig(viper.GetString("llm.api_key"))
	if base := viper.GetString("llm.base_url"); base != "" {
		cfg.BaseURL = base
	}

	return &Client{
		c:     openai.NewClientWithConfig(cfg),
		model: viper.GetString("llm.model"),
	}
}

func (c *Client) Complete(ctx context.Context, instructions, message string) (string, error) {
	resp, err := c.c.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("provider returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Generate runs a completion and swallows any failure into Fallback. Callers
// treat the result as a successful response with degraded content.
func Generate(ctx context.Context, c Completer, instructions, message string) string {
	out, err := c.Complete(ctx, instructions, message)
	if err != nil {
		zap.L().Error("Completion request failed", zap.Error(err))
		return Fallback
	}

	return out
}
