package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// ErrExhausted is returned when no provider produced a usable audio file.
var ErrExhausted = errors.New("all voiceover providers failed")

// Provider synthesizes one script into an audio file at outPath. Success
// means the file exists and is non-empty after the call returns.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, text, outPath string) error
}

// Chain tries providers in fixed order until one writes a usable file.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Synthesize(ctx context.Context, text, outPath string) error {
	for _, provider := range c.providers {
		slog.Info("Trying voiceover provider", "provider", provider.Name())

		if err := provider.Synthesize(ctx, text, outPath); err != nil {
			slog.Warn("Voiceover provider failed, trying next", "provider", provider.Name(), "error", err)
			continue
		}

		if err := verifyAudioFile(outPath); err != nil {
			slog.Warn("Voiceover provider wrote no usable audio, trying next", "provider", provider.Name(), "error", err)
			continue
		}

		slog.Info("Voiceover generated", "provider", provider.Name(), "path", outPath)
		return nil
	}

	return ErrExhausted
}

func verifyAudioFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat audio file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("audio file is empty: %s", path)
	}
	return nil
}
