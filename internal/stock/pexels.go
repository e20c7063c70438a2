package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/httputil"
)

const (
	pexelsBaseURL     = "https://api.pexels.com/videos/search"
	pexelsSearchLimit = 10 * time.Second
	pexelsFetchLimit  = 60 * time.Second
)

// PexelsVideo is one search hit with its downloadable renditions.
type PexelsVideo struct {
	ID         int64             `json:"id"`
	Duration   float64           `json:"duration"`
	VideoFiles []PexelsVideoFile `json:"video_files"`
}

type PexelsVideoFile struct {
	Link    string `json:"link"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Quality string `json:"quality"`
}

type pexelsSearchResponse struct {
	Videos []PexelsVideo `json:"videos"`
}

// PexelsClient searches and downloads stock video clips.
type PexelsClient struct {
	apiKey       string
	searchClient *httputil.RetryClient
	fetchClient  *http.Client
	baseURL      string
}

func NewPexelsClient(apiKey string) *PexelsClient {
	return &PexelsClient{
		apiKey:       apiKey,
		searchClient: httputil.NewRetryClient(&http.Client{Timeout: pexelsSearchLimit}, httputil.DefaultRetryConfig()),
		fetchClient:  &http.Client{Timeout: pexelsFetchLimit},
		baseURL:      pexelsBaseURL,
	}
}

// Search returns up to perPage videos matching the query. Orientation is
// "portrait" or "landscape".
func (c *PexelsClient) Search(ctx context.Context, query string, perPage int, orientation string) ([]PexelsVideo, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", orientation)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.searchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels search: %s", resp.Status)
	}

	var parsed pexelsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return parsed.Videos, nil
}

// Download saves one rendition to destPath.
func (c *PexelsClient) Download(ctx context.Context, fileURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.fetchClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pexels download: %s", resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// SetBaseURL overrides the endpoint for testing.
func (c *PexelsClient) SetBaseURL(url string) {
	c.baseURL = url
}
