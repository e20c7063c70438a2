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
	unsplashBaseURL     = "https://api.unsplash.com/search/photos"
	unsplashSearchLimit = 10 * time.Second
	unsplashFetchLimit  = 30 * time.Second
)

// UnsplashPhoto is one search hit with its image URLs.
type UnsplashPhoto struct {
	ID   string `json:"id"`
	URLs struct {
		Regular string `json:"regular"`
		Full    string `json:"full"`
	} `json:"urls"`
}

type unsplashSearchResponse struct {
	Results []UnsplashPhoto `json:"results"`
}

// UnsplashClient searches and downloads stock photos for the slideshow
// fallback when no usable stock video exists.
type UnsplashClient struct {
	accessKey    string
	searchClient *httputil.RetryClient
	fetchClient  *http.Client
	baseURL      string
}

func NewUnsplashClient(accessKey string) *UnsplashClient {
	return &UnsplashClient{
		accessKey:    accessKey,
		searchClient: httputil.NewRetryClient(&http.Client{Timeout: unsplashSearchLimit}, httputil.DefaultRetryConfig()),
		fetchClient:  &http.Client{Timeout: unsplashFetchLimit},
		baseURL:      unsplashBaseURL,
	}
}

// Search returns up to perPage photos matching the query.
func (c *UnsplashClient) Search(ctx context.Context, query string, perPage int, orientation string) ([]UnsplashPhoto, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", orientation)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.searchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash search: %s", resp.Status)
	}

	var parsed unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return parsed.Results, nil
}

// Download saves one photo to destPath.
func (c *UnsplashClient) Download(ctx context.Context, photoURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.fetchClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unsplash download: %s", resp.Status)
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
func (c *UnsplashClient) SetBaseURL(url string) {
	c.baseURL = url
}
