package llm

import (
	"context"
	"fmt"

	"github.com/conneroisu/groq-go"
)

var _ Provider = (*GroqProvider)(nil)

// GroqProvider is the primary hosted chat provider.
type GroqProvider struct {
	client *groq.Client
	model  groq.ChatModel
}

func NewGroqProvider(apiKey, model string) (*GroqProvider, error) {
	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &GroqProvider{
		client: client,
		model:  groq.ChatModel(model),
	}, nil
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := p.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: p.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
