package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	coquiDefaultURL = "http://localhost:8020"
	coquiTimeout    = 120 * time.Second
)

var _ Provider = (*Coqui)(nil)

// Coqui talks to a locally running open-source TTS server. It is the last
// resort of the chain: slow but free and offline.
type Coqui struct {
	serverURL  string
	language   string
	httpClient *http.Client
}

func NewCoqui(serverURL, language string) *Coqui {
	if serverURL == "" {
		serverURL = coquiDefaultURL
	}
	if language == "" {
		language = "en"
	}
	return &Coqui{
		serverURL:  serverURL,
		language:   language,
		httpClient: &http.Client{Timeout: coquiTimeout},
	}
}

func (c *Coqui) Name() string { return "coqui" }

func (c *Coqui) Synthesize(ctx context.Context, text, outPath string) error {
	if !c.serverRunning(ctx) {
		return fmt.Errorf("coqui server not running at %s", c.serverURL)
	}

	data, err := json.Marshal(map[string]string{
		"text":     text,
		"language": c.language,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/tts_to_audio", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("coqui server error: %s - %s", resp.Status, string(body))
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

func (c *Coqui) serverRunning(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
