package agent

import (
	"fmt"
	"log/slog"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/content"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/distribution"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/llm"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/media"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/speech"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/stock"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/store"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/trends"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/prompts"
)

const speechLanguage = "en"

// Build wires a complete Agent from configuration. Components whose
// credentials are missing are simply left out; the workflow degrades to
// whatever is configured rather than failing at startup.
func Build(cfg *config.Config) (*Agent, error) {
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	promptSet, err := prompts.Load()
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	aggregator := BuildTrendAggregator(cfg)
	generator := content.NewGenerator(buildLLMChain(cfg), promptSet)
	assembler := buildAssembler(cfg)
	publisher := buildPublisher(cfg)

	return New(Options{
		Config:    cfg,
		Trends:    aggregator,
		Content:   generator,
		Media:     assembler,
		Publisher: publisher,
		Store:     db,
	}), nil
}

// BuildTrendAggregator wires the trend sources on their own, for commands
// that inspect trends without running the full pipeline.
func BuildTrendAggregator(cfg *config.Config) *trends.Aggregator {
	var sources []trends.Source

	if cfg.RedditClientID != "" && cfg.RedditClientSecret != "" {
		source, err := trends.NewRedditSource(trends.RedditCredentials{
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			Username:     cfg.RedditUsername,
			Password:     cfg.RedditPassword,
		}, cfg.Trends.Subreddits)
		if err != nil {
			slog.Warn("Reddit source unavailable", "error", err)
		} else {
			sources = append(sources, source)
		}
	}

	if cfg.TwitterBearerToken != "" {
		sources = append(sources, trends.NewTwitterSource(cfg.TwitterBearerToken, cfg.Trends.TwitterHashtags))
	}

	sources = append(sources, trends.NewGoogleTrendsSource(), trends.NewTikTokSource())

	slog.Info("Trend sources configured", "count", len(sources))
	return trends.NewAggregator(sources...)
}

func buildLLMChain(cfg *config.Config) *llm.Chain {
	var providers []llm.Provider

	if cfg.GroqAPIKey != "" {
		provider, err := llm.NewGroqProvider(cfg.GroqAPIKey, cfg.Content.GroqModel)
		if err != nil {
			slog.Warn("Groq provider unavailable", "error", err)
		} else {
			providers = append(providers, provider)
		}
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Content.OpenAIModel))
	}
	if cfg.HuggingFaceAPIKey != "" {
		providers = append(providers, llm.NewHuggingFaceProvider(cfg.HuggingFaceAPIKey, cfg.Content.HFModel))
	}
	if cfg.Ollama.Enabled {
		providers = append(providers, llm.NewOllamaProvider(cfg.Ollama.BaseURL, cfg.Ollama.Model))
	}

	if len(providers) == 0 {
		slog.Warn("No LLM providers configured, content will use templates")
	}
	return llm.NewChain(providers...)
}

func buildAssembler(cfg *config.Config) *media.Assembler {
	voices := []speech.Provider{speech.NewGoogleTranslate(speechLanguage)}
	if cfg.ElevenLabsAPIKey != "" {
		voices = append(voices, speech.NewElevenLabs(cfg.ElevenLabsAPIKey))
	}
	if cfg.Coqui.Enabled {
		voices = append(voices, speech.NewCoqui(cfg.Coqui.ServerURL, speechLanguage))
	}

	var pexels *stock.PexelsClient
	if cfg.PexelsAPIKey != "" {
		pexels = stock.NewPexelsClient(cfg.PexelsAPIKey)
	}
	var unsplash *stock.UnsplashClient
	if cfg.UnsplashAccessKey != "" {
		unsplash = stock.NewUnsplashClient(cfg.UnsplashAccessKey)
	}

	return media.NewAssembler(media.AssemblerOptions{
		Voice:     speech.NewChain(voices...),
		Pexels:    pexels,
		Unsplash:  unsplash,
		Watermark: cfg.Media.Watermark,
	})
}

func buildPublisher(cfg *config.Config) *distribution.Publisher {
	var uploaders []distribution.Uploader

	if rules, ok := enabledPlatform(cfg, "youtube"); ok && cfg.YouTubeClientID != "" && cfg.YouTubeClientSecret != "" {
		auth := distribution.NewYouTubeAuth(cfg.YouTubeClientID, cfg.YouTubeClientSecret, cfg.YouTubeTokenPath)
		if err := auth.LoadToken(); err != nil {
			slog.Warn("YouTube token not loaded, run the auth command first", "error", err)
		}
		uploaders = append(uploaders, distribution.NewYouTubeUploader(auth, limitsFrom(rules)))
	}

	if rules, ok := enabledPlatform(cfg, "twitter"); ok &&
		cfg.TwitterConsumerKey != "" && cfg.TwitterConsumerSecret != "" &&
		cfg.TwitterAccessToken != "" && cfg.TwitterAccessSecret != "" {
		uploaders = append(uploaders, distribution.NewTwitterUploader(distribution.TwitterCredentials{
			ConsumerKey:    cfg.TwitterConsumerKey,
			ConsumerSecret: cfg.TwitterConsumerSecret,
			AccessToken:    cfg.TwitterAccessToken,
			AccessSecret:   cfg.TwitterAccessSecret,
		}, limitsFrom(rules)))
	}

	if rules, ok := enabledPlatform(cfg, "instagram"); ok && cfg.InstagramUsername != "" && cfg.InstagramPassword != "" {
		uploaders = append(uploaders, distribution.NewInstagramUploader(cfg.InstagramUsername, cfg.InstagramPassword, limitsFrom(rules)))
	}

	if rules, ok := enabledPlatform(cfg, "facebook"); ok && cfg.FacebookPageID != "" && cfg.FacebookAccessToken != "" {
		uploaders = append(uploaders, distribution.NewFacebookUploader(cfg.FacebookPageID, cfg.FacebookAccessToken, limitsFrom(rules)))
	}

	if rules, ok := enabledPlatform(cfg, "tiktok"); ok && cfg.TikTokSessionID != "" {
		uploaders = append(uploaders, distribution.NewTikTokUploader(cfg.TikTokSessionID, limitsFrom(rules)))
	}

	if len(uploaders) == 0 {
		slog.Warn("No upload platforms configured")
	} else {
		platforms := make([]string, 0, len(uploaders))
		for _, u := range uploaders {
			platforms = append(platforms, string(u.Platform()))
		}
		slog.Info("Upload platforms configured", "platforms", platforms)
	}

	return distribution.NewPublisher(uploaders...)
}

func enabledPlatform(cfg *config.Config, name string) (config.PlatformRules, bool) {
	rules, ok := cfg.Platforms[name]
	if !ok || !rules.Enabled {
		return config.PlatformRules{}, false
	}
	return rules, true
}

func limitsFrom(rules config.PlatformRules) distribution.Limits {
	return distribution.Limits{
		MaxFileSizeMB:  rules.MaxFileSizeMB,
		MaxDurationSec: rules.MaxDurationSec,
	}
}
