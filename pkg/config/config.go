package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "config.yaml"
	defaultOutputDir      = "./output/videos"
	defaultDatabasePath   = "./data/agent.db"
	defaultDailyVideos    = 10
	defaultPacingMinutes  = 60
	defaultAspectRatio    = "9:16"
	defaultScriptDuration = 45
	defaultGroqModel      = "llama-3.1-70b-versatile"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultHFModel        = "mistralai/Mistral-7B-Instruct-v0.3"
	defaultOllamaModel    = "llama3"
	defaultOllamaURL      = "http://localhost:11434"
	defaultCoquiURL       = "http://localhost:5002"
	defaultTokenPath      = "./youtube_token.json"
	defaultWatermark      = "@FashionAI"
	defaultRedditAgent    = "fashion_agent_v1.0"
)

type Config struct {
	GroqAPIKey         string
	OpenAIAPIKey       string
	HuggingFaceAPIKey  string
	ElevenLabsAPIKey   string
	PexelsAPIKey       string
	UnsplashAccessKey  string
	RedditClientID     string
	RedditClientSecret string
	RedditUsername     string
	RedditPassword     string
	TwitterBearerToken string

	TwitterConsumerKey    string
	TwitterConsumerSecret string
	TwitterAccessToken    string
	TwitterAccessSecret   string
	YouTubeClientID       string
	YouTubeClientSecret   string
	YouTubeTokenPath      string
	TikTokSessionID       string
	InstagramUsername     string
	InstagramPassword     string
	FacebookPageID        string
	FacebookAccessToken   string

	OutputDir    string
	DatabasePath string

	Agent     AgentConfig              `yaml:"agent"`
	Trends    TrendsConfig             `yaml:"trends"`
	Content   ContentConfig            `yaml:"content"`
	Media     MediaConfig              `yaml:"media"`
	Ollama    OllamaConfig             `yaml:"ollama"`
	Coqui     CoquiConfig              `yaml:"coqui"`
	Platforms map[string]PlatformRules `yaml:"platforms"`
}

type AgentConfig struct {
	DailyVideoCount int `yaml:"daily_video_count"`
	PacingMinutes   int `yaml:"pacing_minutes"`
}

type TrendsConfig struct {
	Subreddits      []string `yaml:"subreddits"`
	TwitterHashtags []string `yaml:"twitter_hashtags"`
	Niches          []string `yaml:"niches"`
}

type ContentConfig struct {
	GroqModel       string `yaml:"groq_model"`
	OpenAIModel     string `yaml:"openai_model"`
	HFModel         string `yaml:"hf_model"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

type MediaConfig struct {
	AspectRatio string `yaml:"aspect_ratio"`
	Watermark   string `yaml:"watermark"`
}

type OllamaConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type CoquiConfig struct {
	Enabled   bool   `yaml:"enabled"`
	ServerURL string `yaml:"server_url"`
}

// PlatformRules holds per-platform upload constraints enforced before
// dispatch.
type PlatformRules struct {
	Enabled        bool `yaml:"enabled"`
	MaxFileSizeMB  int  `yaml:"max_file_size_mb"`
	MaxDurationSec int  `yaml:"max_duration_sec"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		HuggingFaceAPIKey:  os.Getenv("HUGGINGFACE_API_KEY"),
		ElevenLabsAPIKey:   os.Getenv("ELEVENLABS_API_KEY"),
		PexelsAPIKey:       os.Getenv("PEXELS_API_KEY"),
		UnsplashAccessKey:  os.Getenv("UNSPLASH_ACCESS_KEY"),
		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUsername:     os.Getenv("REDDIT_USERNAME"),
		RedditPassword:     os.Getenv("REDDIT_PASSWORD"),
		TwitterBearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),

		TwitterConsumerKey:    os.Getenv("TWITTER_CONSUMER_KEY"),
		TwitterConsumerSecret: os.Getenv("TWITTER_CONSUMER_SECRET"),
		TwitterAccessToken:    os.Getenv("TWITTER_ACCESS_TOKEN_POST"),
		TwitterAccessSecret:   os.Getenv("TWITTER_ACCESS_SECRET_POST"),
		YouTubeClientID:       os.Getenv("YOUTUBE_CLIENT_ID"),
		YouTubeClientSecret:   os.Getenv("YOUTUBE_CLIENT_SECRET"),
		YouTubeTokenPath:      getEnvOrDefault("YOUTUBE_TOKEN_PATH", defaultTokenPath),
		TikTokSessionID:       os.Getenv("TIKTOK_SESSION_ID"),
		InstagramUsername:     os.Getenv("INSTAGRAM_USERNAME"),
		InstagramPassword:     os.Getenv("INSTAGRAM_PASSWORD"),
		FacebookPageID:        os.Getenv("FACEBOOK_PAGE_ID"),
		FacebookAccessToken:   os.Getenv("FACEBOOK_ACCESS_TOKEN"),

		OutputDir:    getEnvOrDefault("OUTPUT_DIR", defaultOutputDir),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
	}

	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	return cfg
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyAgentDefaults(cfg)
	applyTrendsDefaults(cfg)
	applyContentDefaults(cfg)
	applyMediaDefaults(cfg)
	applyProviderDefaults(cfg)
	applyPlatformDefaults(cfg)
}

func applyAgentDefaults(cfg *Config) {
	if cfg.Agent.DailyVideoCount == 0 {
		cfg.Agent.DailyVideoCount = defaultDailyVideos
	}
	if cfg.Agent.PacingMinutes == 0 {
		cfg.Agent.PacingMinutes = defaultPacingMinutes
	}
}

func applyTrendsDefaults(cfg *Config) {
	if len(cfg.Trends.Subreddits) == 0 {
		cfg.Trends.Subreddits = []string{
			"fashion", "streetwear", "malefashion", "femalefashion",
			"streetwearstartup", "sneakers", "frugalmalefashion", "frugalfemalefashion",
		}
	}
	if len(cfg.Trends.TwitterHashtags) == 0 {
		cfg.Trends.TwitterHashtags = []string{
			"#fashion", "#ootd", "#streetwear", "#fashiontrends", "#style",
			"#fashionblogger", "#outfitoftheday", "#fashionista", "#styleinspo",
		}
	}
}

func applyContentDefaults(cfg *Config) {
	if cfg.Content.GroqModel == "" {
		cfg.Content.GroqModel = defaultGroqModel
	}
	if cfg.Content.OpenAIModel == "" {
		cfg.Content.OpenAIModel = defaultOpenAIModel
	}
	if cfg.Content.HFModel == "" {
		cfg.Content.HFModel = defaultHFModel
	}
	if cfg.Content.DurationSeconds == 0 {
		cfg.Content.DurationSeconds = defaultScriptDuration
	}
}

func applyMediaDefaults(cfg *Config) {
	if cfg.Media.AspectRatio == "" {
		cfg.Media.AspectRatio = defaultAspectRatio
	}
	if cfg.Media.Watermark == "" {
		cfg.Media.Watermark = defaultWatermark
	}
}

func applyProviderDefaults(cfg *Config) {
	if cfg.Ollama.BaseURL == "" {
		cfg.Ollama.BaseURL = defaultOllamaURL
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = defaultOllamaModel
	}
	if cfg.Coqui.ServerURL == "" {
		cfg.Coqui.ServerURL = defaultCoquiURL
	}
}

func applyPlatformDefaults(cfg *Config) {
	if cfg.Platforms == nil {
		cfg.Platforms = map[string]PlatformRules{}
	}

	defaults := map[string]PlatformRules{
		"youtube":   {Enabled: true, MaxFileSizeMB: 256, MaxDurationSec: 60},
		"tiktok":    {Enabled: true, MaxFileSizeMB: 287, MaxDurationSec: 60},
		"instagram": {Enabled: true, MaxFileSizeMB: 100, MaxDurationSec: 90},
		"twitter":   {Enabled: true, MaxFileSizeMB: 512, MaxDurationSec: 140},
		"facebook":  {Enabled: true, MaxFileSizeMB: 100, MaxDurationSec: 60},
	}

	for name, rules := range defaults {
		if _, ok := cfg.Platforms[name]; !ok {
			cfg.Platforms[name] = rules
		}
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
