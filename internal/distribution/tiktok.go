package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

const (
	tiktokUploadURL     = "https://www.tiktok.com/api/v1/item/upload/"
	tiktokCaptionLimit  = 2200
	tiktokHashtagLimit  = 5
	tiktokUploadTimeout = 5 * time.Minute
)

var _ Uploader = (*TikTokUploader)(nil)

// TikTokUploader is best-effort only. There is no official upload API
// without business approval; this pushes through the web endpoint with a
// session cookie and fails loudly when the endpoint rejects it.
type TikTokUploader struct {
	sessionID  string
	limits     Limits
	httpClient *http.Client
	uploadURL  string
}

func NewTikTokUploader(sessionID string, limits Limits) *TikTokUploader {
	return &TikTokUploader{
		sessionID:  sessionID,
		limits:     limits,
		httpClient: &http.Client{Timeout: tiktokUploadTimeout},
		uploadURL:  tiktokUploadURL,
	}
}

func (u *TikTokUploader) Platform() model.Platform { return model.PlatformTikTok }

func (u *TikTokUploader) Authenticate(_ context.Context) bool {
	if u.sessionID == "" {
		slog.Warn("TikTok session ID not configured")
		return false
	}
	return true
}

func (u *TikTokUploader) Upload(ctx context.Context, videoPath string, meta model.ContentMetadata) (string, error) {
	if !u.Authenticate(ctx) {
		return "", fmt.Errorf("tiktok session not configured")
	}

	if !ValidateVideo(ctx, videoPath, u.limits.MaxFileSizeMB, u.limits.MaxDurationSec) {
		return "", fmt.Errorf("video fails tiktok limits")
	}

	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer func() { _ = file.Close() }()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("caption", buildTikTokCaption(meta))

	part, err := writer.CreateFormFile("video", filepath.Base(videoPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy video: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: u.sessionID})

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
		return "", fmt.Errorf("tiktok upload rejected (no official api): %s - %s", resp.Status, string(respBody))
	}

	var parsed struct {
		ItemID string `json:"item_id"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil || parsed.ItemID == "" {
		return "", fmt.Errorf("tiktok upload gave no item id (no official api)")
	}

	return fmt.Sprintf("https://www.tiktok.com/@me/video/%s", parsed.ItemID), nil
}

func buildTikTokCaption(meta model.ContentMetadata) string {
	caption := textutil.Truncate(meta.Description, tiktokCaptionLimit)

	tags := meta.Tags
	if len(tags) > tiktokHashtagLimit {
		tags = tags[:tiktokHashtagLimit]
	}
	var hashtags []string
	for _, tag := range tags {
		hashtags = append(hashtags, "#"+tag)
	}

	return strings.TrimSpace(caption + " " + strings.Join(hashtags, " "))
}

// Analytics is not available without a business account.
func (u *TikTokUploader) Analytics(_ context.Context, contentID string) (model.Stats, error) {
	return model.Stats{}, fmt.Errorf("tiktok analytics requires a business account (content %s)", contentID)
}

// SetUploadURL overrides the endpoint for testing.
func (u *TikTokUploader) SetUploadURL(url string) {
	u.uploadURL = url
}
