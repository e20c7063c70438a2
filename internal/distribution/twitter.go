package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"unicode/utf8"

	"github.com/dghubble/oauth1"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

const (
	twitterMediaUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	twitterTweetsURL      = "https://api.twitter.com/2/tweets"
	twitterVerifyURL      = "https://api.twitter.com/2/users/me"
	twitterTextLimit      = 280
	twitterChunkSize      = 4 * 1024 * 1024
)

// TwitterCredentials are the user-context OAuth1 keys for posting.
type TwitterCredentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

var _ Uploader = (*TwitterUploader)(nil)

// TwitterUploader posts videos as tweets: chunked media upload on the v1.1
// API followed by tweet creation on v2, both under the same user context.
type TwitterUploader struct {
	creds     TwitterCredentials
	limits    Limits
	uploadURL string
	tweetsURL string
	verifyURL string
}

func NewTwitterUploader(creds TwitterCredentials, limits Limits) *TwitterUploader {
	return &TwitterUploader{
		creds:     creds,
		limits:    limits,
		uploadURL: twitterMediaUploadURL,
		tweetsURL: twitterTweetsURL,
		verifyURL: twitterVerifyURL,
	}
}

func (u *TwitterUploader) Platform() model.Platform { return model.PlatformTwitter }

func (u *TwitterUploader) client(ctx context.Context) *http.Client {
	config := oauth1.NewConfig(u.creds.ConsumerKey, u.creds.ConsumerSecret)
	token := oauth1.NewToken(u.creds.AccessToken, u.creds.AccessSecret)
	return config.Client(ctx, token)
}

func (u *TwitterUploader) Authenticate(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.verifyURL, nil)
	if err != nil {
		return false
	}

	resp, err := u.client(ctx).Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

func (u *TwitterUploader) Upload(ctx context.Context, videoPath string, meta model.ContentMetadata) (string, error) {
	if !ValidateVideo(ctx, videoPath, u.limits.MaxFileSizeMB, u.limits.MaxDurationSec) {
		return "", fmt.Errorf("video fails twitter limits")
	}

	httpClient := u.client(ctx)

	mediaID, err := u.uploadMedia(ctx, httpClient, videoPath)
	if err != nil {
		return "", fmt.Errorf("media upload: %w", err)
	}

	text := buildTweetText(meta)

	tweetID, err := u.createTweet(ctx, httpClient, text, mediaID)
	if err != nil {
		return "", fmt.Errorf("create tweet: %w", err)
	}

	return fmt.Sprintf("https://twitter.com/i/status/%s", tweetID), nil
}

// buildTweetText starts from the description and appends hashtags while
// the 280-character budget allows.
func buildTweetText(meta model.ContentMetadata) string {
	text := textutil.Truncate(meta.Description, twitterTextLimit)

	for _, tag := range meta.Tags {
		candidate := fmt.Sprintf("%s #%s", text, tag)
		if utf8.RuneCountInString(candidate) > twitterTextLimit {
			break
		}
		text = candidate
	}

	return text
}

func (u *TwitterUploader) uploadMedia(ctx context.Context, httpClient *http.Client, videoPath string) (string, error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		return "", fmt.Errorf("stat video: %w", err)
	}

	initParams := url.Values{}
	initParams.Set("command", "INIT")
	initParams.Set("media_type", "video/mp4")
	initParams.Set("media_category", "tweet_video")
	initParams.Set("total_bytes", strconv.FormatInt(info.Size(), 10))

	var initResp struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := u.postForm(ctx, httpClient, initParams, &initResp); err != nil {
		return "", fmt.Errorf("INIT: %w", err)
	}

	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer func() { _ = file.Close() }()

	chunk := make([]byte, twitterChunkSize)
	for segment := 0; ; segment++ {
		n, readErr := io.ReadFull(file, chunk)
		if n > 0 {
			if err := u.appendChunk(ctx, httpClient, initResp.MediaIDString, segment, chunk[:n]); err != nil {
				return "", fmt.Errorf("APPEND segment %d: %w", segment, err)
			}
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("read video: %w", readErr)
		}
	}

	finalizeParams := url.Values{}
	finalizeParams.Set("command", "FINALIZE")
	finalizeParams.Set("media_id", initResp.MediaIDString)

	var finalizeResp struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := u.postForm(ctx, httpClient, finalizeParams, &finalizeResp); err != nil {
		return "", fmt.Errorf("FINALIZE: %w", err)
	}

	return finalizeResp.MediaIDString, nil
}

func (u *TwitterUploader) postForm(ctx context.Context, httpClient *http.Client, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, bytes.NewBufferString(params.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twitter media api: %s - %s", resp.Status, string(body))
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

func (u *TwitterUploader) appendChunk(ctx context.Context, httpClient *http.Client, mediaID string, segment int, data []byte) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("command", "APPEND")
	_ = writer.WriteField("media_id", mediaID)
	_ = writer.WriteField("segment_index", strconv.Itoa(segment))

	part, err := writer.CreateFormFile("media", "chunk")
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write chunk: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twitter media api: %s - %s", resp.Status, string(respBody))
	}
	return nil
}

func (u *TwitterUploader) createTweet(ctx context.Context, httpClient *http.Client, text, mediaID string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"text": text,
		"media": map[string]any{
			"media_ids": []string{mediaID},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.tweetsURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("twitter api: %s - %s", resp.Status, string(body))
	}

	var parsed struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	return parsed.Data.ID, nil
}

func (u *TwitterUploader) Analytics(ctx context.Context, contentID string) (model.Stats, error) {
	params := url.Values{}
	params.Set("tweet.fields", "public_metrics")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.tweetsURL+"/"+contentID+"?"+params.Encode(), nil)
	if err != nil {
		return model.Stats{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := u.client(ctx).Do(req)
	if err != nil {
		return model.Stats{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.Stats{}, fmt.Errorf("twitter analytics: %s", resp.Status)
	}

	var parsed struct {
		Data struct {
			PublicMetrics struct {
				ImpressionCount int64 `json:"impression_count"`
				LikeCount       int64 `json:"like_count"`
				ReplyCount      int64 `json:"reply_count"`
				RetweetCount    int64 `json:"retweet_count"`
			} `json:"public_metrics"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.Stats{}, fmt.Errorf("parse response: %w", err)
	}

	metrics := parsed.Data.PublicMetrics
	return model.Stats{
		Views:    metrics.ImpressionCount,
		Likes:    metrics.LikeCount,
		Comments: metrics.ReplyCount,
		Shares:   metrics.RetweetCount,
	}, nil
}

// SetEndpoints overrides the API endpoints for testing.
func (u *TwitterUploader) SetEndpoints(uploadURL, tweetsURL, verifyURL string) {
	u.uploadURL = uploadURL
	u.tweetsURL = tweetsURL
	u.verifyURL = verifyURL
}
