package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/httputil"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

const (
	recentSearchURL      = "https://api.twitter.com/2/tweets/search/recent"
	twitterTimeout       = 15 * time.Second
	twitterMinEngagement = 50
	maxHashtagQueries    = 5
)

// TwitterSource searches recent tweets for the configured fashion hashtags
// and scores them by engagement.
type TwitterSource struct {
	bearerToken string
	hashtags    []string
	httpClient  *httputil.RetryClient
	baseURL     string
}

type tweetSearchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

func NewTwitterSource(bearerToken string, hashtags []string) *TwitterSource {
	return &TwitterSource{
		bearerToken: bearerToken,
		hashtags:    hashtags,
		httpClient:  httputil.NewRetryClient(&http.Client{Timeout: twitterTimeout}, httputil.DefaultRetryConfig()),
		baseURL:     recentSearchURL,
	}
}

func (s *TwitterSource) Name() string { return "twitter" }

func (s *TwitterSource) Fetch(ctx context.Context) ([]model.TrendRecord, error) {
	var records []model.TrendRecord

	hashtags := s.hashtags
	if len(hashtags) > maxHashtagQueries {
		hashtags = hashtags[:maxHashtagQueries]
	}

	for _, hashtag := range hashtags {
		tweets, err := s.searchRecent(ctx, hashtag+" -is:retweet lang:en")
		if err != nil {
			return nil, err
		}
		records = append(records, tweets...)
	}

	return records, nil
}

func (s *TwitterSource) searchRecent(ctx context.Context, query string) ([]model.TrendRecord, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", "10")
	params.Set("tweet.fields", "public_metrics,created_at")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.bearerToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter api error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed tweetSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	var records []model.TrendRecord
	for _, tweet := range parsed.Data {
		engagement := tweet.PublicMetrics.LikeCount + tweet.PublicMetrics.RetweetCount
		if engagement <= twitterMinEngagement {
			continue
		}

		records = append(records, model.TrendRecord{
			Source:      model.SourceTwitter,
			Title:       textutil.Truncate(tweet.Text, 100),
			Description: tweet.Text,
			Keywords:    ExtractKeywords(tweet.Text),
			Score:       engagement,
			DetectedAt:  time.Now(),
		})
	}

	return records, nil
}

// SetBaseURL overrides the endpoint for testing.
func (s *TwitterSource) SetBaseURL(url string) {
	s.baseURL = url
}
