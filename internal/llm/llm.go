package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrExhausted is returned when every provider in a chain failed or
// produced empty output.
var ErrExhausted = errors.New("all text-generation providers failed")

// Provider is one text-generation backend. Network errors, non-2xx
// responses and malformed payloads all surface as errors; callers advance
// to the next provider without retrying.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Chain tries providers strictly in order until one returns non-empty text.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	for _, provider := range c.providers {
		text, err := provider.Complete(ctx, prompt, maxTokens, temperature)
		if err != nil {
			slog.Warn("Text provider failed, trying next", "provider", provider.Name(), "error", err)
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			slog.Warn("Text provider returned empty output, trying next", "provider", provider.Name())
			continue
		}

		slog.Debug("Text provider succeeded", "provider", provider.Name())
		return text, nil
	}

	return "", ErrExhausted
}

// Providers returns the configured provider count, for wiring diagnostics.
func (c *Chain) Providers() int {
	return len(c.providers)
}
