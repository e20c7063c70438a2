package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/llm"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/prompts"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

// wordsPerSecond is the speaking rate assumed for voiceover scripts.
const wordsPerSecond = 2.5

var hookStyles = []string{
	"Did you know...",
	"This is trending right now:",
	"Everyone's wearing this:",
	"The fashion industry doesn't want you to know:",
	"3 seconds to learn this trend:",
	"POV: You're about to look expensive:",
	"Stop wearing this, wear this instead:",
}

var callsToAction = []string{
	"Follow for daily fashion tips!",
	"Save this for later!",
	"Tag someone who needs this!",
	"Which outfit would you wear? Comment below!",
	"Double tap if you agree!",
}

var defaultHashtags = []string{"#fashion", "#style", "#trending", "#ootd", "#fashiontips"}

// Generator produces scripts and platform metadata from trends. Provider
// exhaustion never aborts a run; deterministic fallbacks fill in instead.
type Generator struct {
	chain   *llm.Chain
	prompts *prompts.Prompts
}

func NewGenerator(chain *llm.Chain, promptSet *prompts.Prompts) *Generator {
	return &Generator{chain: chain, prompts: promptSet}
}

// Script writes a voiceover script for the trend. The word target scales
// with the requested duration at 2.5 words per second.
func (g *Generator) Script(ctx context.Context, trend model.TrendRecord, durationSeconds int) string {
	prompt, err := g.prompts.RenderScript(prompts.ScriptParams{
		Title:       trend.Title,
		Description: trend.Description,
		Keywords:    strings.Join(trend.Keywords, ", "),
		Duration:    durationSeconds,
		WordCount:   int(float64(durationSeconds) * wordsPerSecond),
		Hook:        hookStyles[rand.Intn(len(hookStyles))],
		CTA:         callsToAction[rand.Intn(len(callsToAction))],
	})
	if err != nil {
		slog.Error("Failed to render script prompt", "error", err)
		return fallbackScript(trend)
	}

	script, err := g.chain.Complete(ctx, prompt, 300, 0.8)
	if err != nil {
		slog.Error("Script generation failed, using fallback", "trend", trend.Title, "error", err)
		return fallbackScript(trend)
	}

	slog.Info("Generated script", "trend", trend.Title, "words", len(strings.Fields(script)))
	return script
}

// Metadata generates title, description, hashtags and keywords for the
// script. Model output is expected to be a JSON object, possibly wrapped in
// code fences.
func (g *Generator) Metadata(ctx context.Context, script string, trend model.TrendRecord) model.ContentMetadata {
	prompt, err := g.prompts.RenderMetadata(prompts.MetadataParams{
		Script:     script,
		TrendTitle: trend.Title,
	})
	if err != nil {
		slog.Error("Failed to render metadata prompt", "error", err)
		return fallbackMetadata(script, trend)
	}

	raw, err := g.chain.Complete(ctx, prompt, 400, 0.7)
	if err != nil {
		slog.Error("Metadata generation failed, using fallback", "trend", trend.Title, "error", err)
		return fallbackMetadata(script, trend)
	}

	var meta model.ContentMetadata
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &meta); err != nil {
		slog.Error("Metadata response is not valid JSON, using fallback", "trend", trend.Title, "error", err)
		return fallbackMetadata(script, trend)
	}

	meta.Tags = tagsFromHashtags(meta.Hashtags)

	slog.Info("Generated metadata", "title", meta.Title)
	return meta
}

// BatchGenerate builds one content package per trend. A trend whose
// generation fails entirely is skipped rather than aborting the batch.
func (g *Generator) BatchGenerate(ctx context.Context, trends []model.TrendRecord, durationSeconds int) []model.ContentPackage {
	packages := make([]model.ContentPackage, 0, len(trends))

	for _, trend := range trends {
		script := g.Script(ctx, trend, durationSeconds)
		if script == "" {
			slog.Warn("Skipping trend with empty script", "trend", trend.Title)
			continue
		}

		packages = append(packages, model.ContentPackage{
			Script:   script,
			Metadata: g.Metadata(ctx, script, trend),
			Trend:    trend,
			Status:   model.StatusReady,
		})
	}

	slog.Info("Generated content batch", "packages", len(packages), "trends", len(trends))
	return packages
}

// stripCodeFences extracts the payload from a fenced block when the model
// wraps its JSON in markdown.
func stripCodeFences(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

func tagsFromHashtags(hashtags []string) []string {
	tags := make([]string, 0, len(hashtags))
	for _, tag := range hashtags {
		tags = append(tags, strings.ReplaceAll(tag, "#", ""))
	}
	return tags
}

func fallbackScript(trend model.TrendRecord) string {
	return fmt.Sprintf(`Did you know this is trending right now?

%s

Here's what makes it special:
• Unique style
• Easy to wear
• Perfect for any occasion

Try this trend and stand out!

Follow for daily fashion tips!`, trend.Title)
}

func fallbackMetadata(script string, trend model.TrendRecord) model.ContentMetadata {
	title := textutil.Truncate(trend.Title, 60)
	description := textutil.Truncate(script, 200)

	tags := trend.Keywords
	if len(tags) == 0 {
		tags = []string{"fashion", "style", "trend"}
	}

	return model.ContentMetadata{
		Title:       title,
		Description: description,
		Tags:        tags,
		Hashtags:    append([]string(nil), defaultHashtags...),
	}
}
