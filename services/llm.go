package services

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LLMClient wraps the OpenAI-compatible chat model used for reflection
// summaries and goal step generation.
type LLMClient struct {
	Chat llms.Model
}

func NewLLMClient(apiKey, apiEndpoint, model string) (*LLMClient, error) {
	if model == "" {
		model = "deepseek/deepseek-v3"
	}
	chat, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(apiEndpoint),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &LLMClient{
		Chat: chat,
	}, nil
}
