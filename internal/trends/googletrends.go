package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/httputil"
)

const (
	dailyTrendsURL     = "https://trends.google.com/trends/api/dailytrends?hl=en-US&tz=360&geo=US"
	googleTrendsScore  = 80
	dailyTrendsTimeout = 10 * time.Second
)

// GoogleTrendsSource reads the daily trending searches feed and keeps the
// fashion-related entries.
type GoogleTrendsSource struct {
	httpClient *httputil.RetryClient
	baseURL    string
}

type dailyTrendsResponse struct {
	Default struct {
		TrendingSearchesDays []struct {
			TrendingSearches []struct {
				Title struct {
					Query string `json:"query"`
				} `json:"title"`
				FormattedTraffic string `json:"formattedTraffic"`
			} `json:"trendingSearches"`
		} `json:"trendingSearchesDays"`
	} `json:"default"`
}

func NewGoogleTrendsSource() *GoogleTrendsSource {
	return &GoogleTrendsSource{
		httpClient: httputil.NewRetryClient(&http.Client{Timeout: dailyTrendsTimeout}, httputil.DefaultRetryConfig()),
		baseURL:    dailyTrendsURL,
	}
}

func (s *GoogleTrendsSource) Name() string { return "google_trends" }

func (s *GoogleTrendsSource) Fetch(ctx context.Context) ([]model.TrendRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daily trends api error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed dailyTrendsResponse
	if err := json.Unmarshal(stripAntiHijackPrefix(body), &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	var records []model.TrendRecord
	for _, day := range parsed.Default.TrendingSearchesDays {
		for _, search := range day.TrendingSearches {
			query := search.Title.Query
			if !IsFashionRelated(query) {
				continue
			}

			records = append(records, model.TrendRecord{
				Source:     model.SourceGoogleTrends,
				Title:      query,
				Keywords:   []string{strings.ToLower(query)},
				Score:      googleTrendsScore,
				DetectedAt: time.Now(),
			})
		}
	}

	return records, nil
}

// stripAntiHijackPrefix removes the ")]}'," guard Google prepends to the
// trends JSON payload.
func stripAntiHijackPrefix(body []byte) []byte {
	if idx := strings.IndexByte(string(body), '{'); idx > 0 {
		return body[idx:]
	}
	return body
}

// SetBaseURL overrides the endpoint for testing.
func (s *GoogleTrendsSource) SetBaseURL(url string) {
	s.baseURL = url
}
