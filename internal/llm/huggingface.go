package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	hfBaseURL = "https://api-inference.huggingface.co/models/"
	hfTimeout = 30 * time.Second
)

var _ Provider = (*HuggingFaceProvider)(nil)

// HuggingFaceProvider uses the free hosted inference endpoint. A model that
// is still loading counts as a failure so the chain can move on.
type HuggingFaceProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	ReturnFull   bool    `json:"return_full_text"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error string `json:"error"`
}

func NewHuggingFaceProvider(apiKey, model string) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: hfTimeout},
		baseURL:    hfBaseURL,
	}
}

func (p *HuggingFaceProvider) Name() string { return "huggingface" }

func (p *HuggingFaceProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	payload, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens: maxTokens,
			Temperature:  temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+p.model, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("huggingface: %s", apiErr.Error)
		}
		return "", fmt.Errorf("huggingface: %s", resp.Status)
	}

	var generations []hfGeneration
	if err := json.Unmarshal(body, &generations); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(generations) == 0 {
		return "", fmt.Errorf("no generations in response")
	}

	return generations[0].GeneratedText, nil
}

// SetBaseURL overrides the endpoint for testing.
func (p *HuggingFaceProvider) SetBaseURL(url string) {
	p.baseURL = url
}
