// Package ai adapts the external text-generation service behind the
// ports.Analyzer contract.
package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Config captures the settings of the analysis model.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIAnalyzer generates financial analyses through an OpenAI-compatible
// chat-completion endpoint.
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnalyzer creates an analyzer. The model defaults to gpt-4o-mini
// when unset.
func NewOpenAIAnalyzer(cfg Config) (*OpenAIAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ai: missing API key")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAnalyzer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Disabled is the Analyzer wired when no API key is configured: every call
// fails, which the analysis service surfaces as an internal error.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("ai: no API key configured")
}

// Generate sends the prompt and returns the model's answer.
func (a *OpenAIAnalyzer) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
