package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1/text-to-speech"
	elevenLabsModel   = "eleven_turbo_v2_5"
	elevenLabsTimeout = 60 * time.Second
)

// voicePresets keeps delivery varied across videos. One is picked at random
// per synthesis call.
var voicePresets = []elevenLabsVoice{
	{Name: "rachel", ID: "21m00Tcm4TlvDq8ikWAM"},
	{Name: "adam", ID: "pNInz6obpgDQGcFmaJgB"},
	{Name: "bella", ID: "EXAVITQu4vr4xnSDxMaL"},
	{Name: "josh", ID: "TxGEqnHWrfWFTfGW9XjX"},
}

type elevenLabsVoice struct {
	Name string
	ID   string
}

type elevenLabsRequest struct {
	Text          string             `json:"text"`
	ModelID       string             `json:"model_id"`
	VoiceSettings elevenLabsSettings `json:"voice_settings"`
}

type elevenLabsSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type elevenLabsErrorResponse struct {
	Detail struct {
		Message string `json:"message"`
	} `json:"detail"`
}

var _ Provider = (*ElevenLabs)(nil)

// ElevenLabs is the paid hosted tier of the voiceover chain.
type ElevenLabs struct {
	apiKey     string
	httpClient *http.Client
	stability  float64
	similarity float64
	baseURL    string
}

func NewElevenLabs(apiKey string) *ElevenLabs {
	return &ElevenLabs{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: elevenLabsTimeout},
		stability:  0.5,
		similarity: 0.75,
		baseURL:    elevenLabsBaseURL,
	}
}

func (e *ElevenLabs) Name() string { return "elevenlabs" }

func (e *ElevenLabs) Synthesize(ctx context.Context, text, outPath string) error {
	voice := voicePresets[rand.Intn(len(voicePresets))]

	data, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: elevenLabsModel,
		VoiceSettings: elevenLabsSettings{
			Stability:       e.stability,
			SimilarityBoost: e.similarity,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", e.baseURL, voice.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp elevenLabsErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Detail.Message != "" {
			return fmt.Errorf("elevenlabs: %s", errResp.Detail.Message)
		}
		return fmt.Errorf("elevenlabs: %s", resp.Status)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}

	return nil
}

// SetBaseURL overrides the endpoint for testing.
func (e *ElevenLabs) SetBaseURL(url string) {
	e.baseURL = url
}
