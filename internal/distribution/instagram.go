package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

const (
	instagramBaseURL      = "https://www.instagram.com"
	instagramCaptionLimit = 2200
	instagramHashtagLimit = 30
	instagramTimeout      = 5 * time.Minute
)

var _ Uploader = (*InstagramUploader)(nil)

// InstagramUploader publishes Reels through the web session endpoints.
// There is no official API for personal accounts, so this logs in with
// username and password and keeps the session cookies for the upload.
type InstagramUploader struct {
	username   string
	password   string
	limits     Limits
	httpClient *http.Client
	baseURL    string
	loggedIn   bool
}

func NewInstagramUploader(username, password string, limits Limits) *InstagramUploader {
	jar, _ := cookiejar.New(nil)
	return &InstagramUploader{
		username:   username,
		password:   password,
		limits:     limits,
		httpClient: &http.Client{Timeout: instagramTimeout, Jar: jar},
		baseURL:    instagramBaseURL,
	}
}

func (u *InstagramUploader) Platform() model.Platform { return model.PlatformInstagram }

func (u *InstagramUploader) Authenticate(ctx context.Context) bool {
	if u.loggedIn {
		return true
	}

	csrfToken, err := u.fetchCSRFToken(ctx)
	if err != nil {
		return false
	}

	form := url.Values{}
	form.Set("username", u.username)
	// The web login endpoint accepts this non-encrypted password envelope.
	form.Set("enc_password", fmt.Sprintf("#PWD_INSTAGRAM_BROWSER:0:%d:%s", time.Now().Unix(), u.password))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/accounts/login/ajax/", strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRFToken", csrfToken)
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	var parsed struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false
	}

	u.loggedIn = parsed.Authenticated
	return u.loggedIn
}

func (u *InstagramUploader) fetchCSRFToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/accounts/login/", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	endpoint, err := url.Parse(u.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	for _, cookie := range u.httpClient.Jar.Cookies(endpoint) {
		if cookie.Name == "csrftoken" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("no csrf token in login response")
}

func (u *InstagramUploader) Upload(ctx context.Context, videoPath string, meta model.ContentMetadata) (string, error) {
	if !ValidateVideo(ctx, videoPath, u.limits.MaxFileSizeMB, u.limits.MaxDurationSec) {
		return "", fmt.Errorf("video fails instagram limits")
	}

	if !u.Authenticate(ctx) {
		return "", fmt.Errorf("instagram login failed")
	}

	uploadID, err := u.uploadClip(ctx, videoPath)
	if err != nil {
		return "", fmt.Errorf("clip upload: %w", err)
	}

	code, err := u.configureClip(ctx, uploadID, buildInstagramCaption(meta))
	if err != nil {
		return "", fmt.Errorf("configure clip: %w", err)
	}

	return fmt.Sprintf("https://www.instagram.com/reel/%s/", code), nil
}

func buildInstagramCaption(meta model.ContentMetadata) string {
	caption := textutil.Truncate(meta.Description, instagramCaptionLimit)

	tags := meta.Tags
	if len(tags) > instagramHashtagLimit {
		tags = tags[:instagramHashtagLimit]
	}

	var hashtags []string
	for _, tag := range tags {
		hashtags = append(hashtags, "#"+tag)
	}

	return caption + "\n\n" + strings.Join(hashtags, " ")
}

func (u *InstagramUploader) uploadClip(ctx context.Context, videoPath string) (string, error) {
	data, err := os.ReadFile(videoPath)
	if err != nil {
		return "", fmt.Errorf("read video: %w", err)
	}

	uploadID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/rupload_igvideo/"+uploadID, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Entity-Name", uploadID)
	req.Header.Set("X-Entity-Length", fmt.Sprintf("%d", len(data)))
	req.Header.Set("Offset", "0")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("instagram upload: %s - %s", resp.Status, string(body))
	}

	return uploadID, nil
}

func (u *InstagramUploader) configureClip(ctx context.Context, uploadID, caption string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("upload_id", uploadID)
	_ = writer.WriteField("caption", caption)
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/igtv/configure_to_igtv/", body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("instagram configure: %s - %s", resp.Status, string(respBody))
	}

	var parsed struct {
		Media struct {
			Code string `json:"code"`
		} `json:"media"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if parsed.Media.Code == "" {
		return "", fmt.Errorf("no media code in response")
	}

	return parsed.Media.Code, nil
}

func (u *InstagramUploader) Analytics(ctx context.Context, contentID string) (model.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/p/"+contentID+"/?__a=1&__d=dis", nil)
	if err != nil {
		return model.Stats{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return model.Stats{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.Stats{}, fmt.Errorf("instagram analytics: %s", resp.Status)
	}

	var parsed struct {
		Items []struct {
			PlayCount    int64 `json:"play_count"`
			LikeCount    int64 `json:"like_count"`
			CommentCount int64 `json:"comment_count"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.Stats{}, fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Items) == 0 {
		return model.Stats{}, fmt.Errorf("media %s not found", contentID)
	}

	item := parsed.Items[0]
	return model.Stats{
		Views:    item.PlayCount,
		Likes:    item.LikeCount,
		Comments: item.CommentCount,
	}, nil
}

// SetBaseURL overrides the endpoint for testing.
func (u *InstagramUploader) SetBaseURL(url string) {
	u.baseURL = url
	u.loggedIn = false
}
