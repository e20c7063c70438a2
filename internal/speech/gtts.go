package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	gttsBaseURL   = "https://translate.google.com/translate_tts"
	gttsTimeout   = 30 * time.Second
	gttsChunkSize = 200
)

var _ Provider = (*GoogleTranslate)(nil)

// GoogleTranslate uses the public translate speech endpoint. It needs no
// credentials, which makes it the first provider in the chain. Long scripts
// are synthesized in chunks and the MP3 frames concatenated.
type GoogleTranslate struct {
	httpClient *http.Client
	language   string
	baseURL    string
}

func NewGoogleTranslate(language string) *GoogleTranslate {
	if language == "" {
		language = "en"
	}
	return &GoogleTranslate{
		httpClient: &http.Client{Timeout: gttsTimeout},
		language:   language,
		baseURL:    gttsBaseURL,
	}
}

func (g *GoogleTranslate) Name() string { return "gtts" }

func (g *GoogleTranslate) Synthesize(ctx context.Context, text, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer func() { _ = out.Close() }()

	for _, chunk := range splitIntoChunks(text, gttsChunkSize) {
		audio, err := g.fetchChunk(ctx, chunk)
		if err != nil {
			return err
		}
		if _, err := out.Write(audio); err != nil {
			return fmt.Errorf("write audio file: %w", err)
		}
	}

	return nil
}

func (g *GoogleTranslate) fetchChunk(ctx context.Context, chunk string) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", g.language)
	query.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translate tts: %s", resp.Status)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return audio, nil
}

// splitIntoChunks breaks text on word boundaries so no chunk exceeds the
// endpoint's query length limit.
func splitIntoChunks(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder

	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > size {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// SetBaseURL overrides the endpoint for testing.
func (g *GoogleTranslate) SetBaseURL(url string) {
	g.baseURL = url
}
