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
	"strings"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

const (
	facebookGraphURL        = "https://graph.facebook.com/v18.0"
	facebookDescLimit       = 1000
	facebookUploadTimeout   = 5 * time.Minute
	facebookMetadataTimeout = 30 * time.Second
)

var _ Uploader = (*FacebookUploader)(nil)

// FacebookUploader publishes Reels to a page through the Graph API's
// three-phase upload: start, transfer, finish.
type FacebookUploader struct {
	pageID      string
	accessToken string
	limits      Limits
	metaClient  *http.Client
	fileClient  *http.Client
	baseURL     string
}

func NewFacebookUploader(pageID, accessToken string, limits Limits) *FacebookUploader {
	return &FacebookUploader{
		pageID:      pageID,
		accessToken: accessToken,
		limits:      limits,
		metaClient:  &http.Client{Timeout: facebookMetadataTimeout},
		fileClient:  &http.Client{Timeout: facebookUploadTimeout},
		baseURL:     facebookGraphURL,
	}
}

func (u *FacebookUploader) Platform() model.Platform { return model.PlatformFacebook }

func (u *FacebookUploader) Authenticate(ctx context.Context) bool {
	params := url.Values{}
	params.Set("access_token", u.accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/me?"+params.Encode(), nil)
	if err != nil {
		return false
	}

	resp, err := u.metaClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

func (u *FacebookUploader) Upload(ctx context.Context, videoPath string, meta model.ContentMetadata) (string, error) {
	if !ValidateVideo(ctx, videoPath, u.limits.MaxFileSizeMB, u.limits.MaxDurationSec) {
		return "", fmt.Errorf("video fails facebook limits")
	}

	description := buildFacebookDescription(meta)

	videoID, sessionID, err := u.startUpload(ctx, description)
	if err != nil {
		return "", fmt.Errorf("start phase: %w", err)
	}

	if err := u.transferUpload(ctx, sessionID, videoPath); err != nil {
		return "", fmt.Errorf("transfer phase: %w", err)
	}

	if err := u.finishUpload(ctx, sessionID); err != nil {
		return "", fmt.Errorf("finish phase: %w", err)
	}

	return fmt.Sprintf("https://www.facebook.com/reel/%s", videoID), nil
}

func buildFacebookDescription(meta model.ContentMetadata) string {
	var hashtags []string
	for _, tag := range meta.Tags {
		hashtags = append(hashtags, "#"+tag)
	}

	description := meta.Description + "\n\n" + strings.Join(hashtags, " ")
	return textutil.Truncate(description, facebookDescLimit)
}

func (u *FacebookUploader) reelsURL() string {
	return fmt.Sprintf("%s/%s/video_reels", u.baseURL, u.pageID)
}

func (u *FacebookUploader) startUpload(ctx context.Context, description string) (videoID, sessionID string, err error) {
	params := url.Values{}
	params.Set("access_token", u.accessToken)
	params.Set("upload_phase", "start")
	params.Set("description", description)

	var parsed struct {
		VideoID         string `json:"video_id"`
		UploadSessionID string `json:"upload_session_id"`
	}
	if err := u.postParams(ctx, u.reelsURL(), params, &parsed); err != nil {
		return "", "", err
	}

	return parsed.VideoID, parsed.UploadSessionID, nil
}

func (u *FacebookUploader) transferUpload(ctx context.Context, sessionID, videoPath string) error {
	file, err := os.Open(videoPath)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	defer func() { _ = file.Close() }()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("video_file_chunk", "video.mp4")
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy video: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}

	params := url.Values{}
	params.Set("access_token", u.accessToken)
	params.Set("upload_phase", "transfer")
	params.Set("upload_session_id", sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.reelsURL()+"?"+params.Encode(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.fileClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("facebook api: %s - %s", resp.Status, string(respBody))
	}
	return nil
}

func (u *FacebookUploader) finishUpload(ctx context.Context, sessionID string) error {
	params := url.Values{}
	params.Set("access_token", u.accessToken)
	params.Set("upload_phase", "finish")
	params.Set("upload_session_id", sessionID)

	return u.postParams(ctx, u.reelsURL(), params, nil)
}

func (u *FacebookUploader) postParams(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := u.metaClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("facebook api: %s - %s", resp.Status, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

func (u *FacebookUploader) Analytics(ctx context.Context, contentID string) (model.Stats, error) {
	params := url.Values{}
	params.Set("fields", "views,likes.summary(true),comments.summary(true)")
	params.Set("access_token", u.accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/"+contentID+"?"+params.Encode(), nil)
	if err != nil {
		return model.Stats{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := u.metaClient.Do(req)
	if err != nil {
		return model.Stats{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.Stats{}, fmt.Errorf("facebook analytics: %s", resp.Status)
	}

	var parsed struct {
		Views int64 `json:"views"`
		Likes struct {
			Summary struct {
				TotalCount int64 `json:"total_count"`
			} `json:"summary"`
		} `json:"likes"`
		Comments struct {
			Summary struct {
				TotalCount int64 `json:"total_count"`
			} `json:"summary"`
		} `json:"comments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.Stats{}, fmt.Errorf("parse response: %w", err)
	}

	return model.Stats{
		Views:    parsed.Views,
		Likes:    parsed.Likes.Summary.TotalCount,
		Comments: parsed.Comments.Summary.TotalCount,
	}, nil
}

// SetBaseURL overrides the Graph API endpoint for testing.
func (u *FacebookUploader) SetBaseURL(url string) {
	u.baseURL = url
}
