package service

import (
	"context"
	"fmt"

	"go_4_goal_wizard/internal/config"
	"go_4_goal_wizard/internal/middleware"

	"github.com/sashabaranov/go-openai"
)

// OpenAIChatClient は go-openai 経由で Chat Completions API を呼び出します
type OpenAIChatClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIChatClient(cfg *config.Config) *OpenAIChatClient {
	return &OpenAIChatClient{
		client: openai.NewClient(cfg.OpenAI.APIKey),
		model:  cfg.OpenAI.Model,
	}
}

func (c *OpenAIChatClient) ChatCompletion(ctx context.Context, system, user string, opts ChatOptions) (string, error) {
	logger := middleware.GetLogger(ctx)
	logger.Debug("Generating text via OpenAI", "model", c.model)

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = opts.Temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logger.Warn("OpenAI API call failed", "error", err)
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		logger.Warn("OpenAI returned no choices")
		return "", fmt.Errorf("OpenAI returned no choices")
	}

	logger.Debug("Received response from OpenAI", "finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
