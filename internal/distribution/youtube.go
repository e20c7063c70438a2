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
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

const (
	youtubeUploadURL = "https://www.googleapis.com/upload/youtube/v3/videos"
	youtubeVideosURL = "https://www.googleapis.com/youtube/v3/videos"
	// Howto & Style.
	youtubeCategoryID = "26"
	youtubeTitleLimit = 100
)

var youtubeScopes = []string{
	"https://www.googleapis.com/auth/youtube.upload",
	"https://www.googleapis.com/auth/youtube.readonly",
}

// YouTubeAuth manages the stored OAuth token for the channel.
type YouTubeAuth struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenPath string
}

func NewYouTubeAuth(clientID, clientSecret, tokenPath string) *YouTubeAuth {
	return &YouTubeAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       youtubeScopes,
			RedirectURL:  "http://localhost:8080/callback",
		},
		tokenPath: tokenPath,
	}
}

func (a *YouTubeAuth) LoadToken() error {
	data, err := os.ReadFile(a.tokenPath)
	if err != nil {
		return fmt.Errorf("read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("parse token: %w", err)
	}

	a.token = &token
	return nil
}

func (a *YouTubeAuth) SaveToken() error {
	data, err := json.MarshalIndent(a.token, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	if err := os.WriteFile(a.tokenPath, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	return nil
}

func (a *YouTubeAuth) AuthURL() string {
	return a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

func (a *YouTubeAuth) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}

	a.token = token
	return a.SaveToken()
}

func (a *YouTubeAuth) Client(ctx context.Context) (*http.Client, error) {
	if a.token == nil {
		if err := a.LoadToken(); err != nil {
			return nil, err
		}
	}

	return a.config.Client(ctx, a.token), nil
}

func (a *YouTubeAuth) IsAuthenticated() bool {
	if a.token == nil {
		if err := a.LoadToken(); err != nil {
			return false
		}
	}
	return a.token != nil && (a.token.Valid() || a.token.RefreshToken != "")
}

type youtubeSnippet struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CategoryID  string   `json:"categoryId"`
}

type youtubeStatus struct {
	PrivacyStatus           string `json:"privacyStatus"`
	SelfDeclaredMadeForKids bool   `json:"selfDeclaredMadeForKids"`
}

type youtubeVideoBody struct {
	Snippet youtubeSnippet `json:"snippet"`
	Status  youtubeStatus  `json:"status"`
}

type youtubeUploadResponse struct {
	ID string `json:"id"`
}

type youtubeListResponse struct {
	Items []struct {
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

var _ Uploader = (*YouTubeUploader)(nil)

// YouTubeUploader publishes videos as Shorts on the authenticated channel.
type YouTubeUploader struct {
	auth      *YouTubeAuth
	uploadURL string
	videosURL string
	limits    Limits
}

// Limits are the per-platform validation bounds.
type Limits struct {
	MaxFileSizeMB  int
	MaxDurationSec int
}

func NewYouTubeUploader(auth *YouTubeAuth, limits Limits) *YouTubeUploader {
	return &YouTubeUploader{
		auth:      auth,
		uploadURL: youtubeUploadURL,
		videosURL: youtubeVideosURL,
		limits:    limits,
	}
}

func (u *YouTubeUploader) Platform() model.Platform { return model.PlatformYouTube }

func (u *YouTubeUploader) Authenticate(_ context.Context) bool {
	if !u.auth.IsAuthenticated() {
		slog.Error("YouTube token missing or expired", "hint", "run the oauth exchange flow")
		return false
	}
	return true
}

func (u *YouTubeUploader) Upload(ctx context.Context, videoPath string, meta model.ContentMetadata) (string, error) {
	if !ValidateVideo(ctx, videoPath, u.limits.MaxFileSizeMB, u.limits.MaxDurationSec) {
		return "", fmt.Errorf("video fails youtube limits")
	}

	httpClient, err := u.auth.Client(ctx)
	if err != nil {
		return "", fmt.Errorf("auth client: %w", err)
	}

	title := textutil.Truncate(meta.Title, youtubeTitleLimit)
	description := meta.Description
	if !strings.Contains(description, "#Shorts") {
		description += "\n\n#Shorts"
	}

	bodyJSON, err := json.Marshal(youtubeVideoBody{
		Snippet: youtubeSnippet{
			Title:       title,
			Description: description,
			Tags:        meta.Tags,
			CategoryID:  youtubeCategoryID,
		},
		Status: youtubeStatus{PrivacyStatus: "public"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	videoFile, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer func() { _ = videoFile.Close() }()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	metaPart, err := writer.CreateFormField("snippet")
	if err != nil {
		return "", fmt.Errorf("create metadata part: %w", err)
	}
	if _, err := metaPart.Write(bodyJSON); err != nil {
		return "", fmt.Errorf("write metadata part: %w", err)
	}

	videoPart, err := writer.CreateFormFile("file", filepath.Base(videoPath))
	if err != nil {
		return "", fmt.Errorf("create video part: %w", err)
	}
	if _, err := io.Copy(videoPart, videoFile); err != nil {
		return "", fmt.Errorf("copy video: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	reqURL := fmt.Sprintf("%s?uploadType=multipart&part=snippet,status", u.uploadURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube upload: %s", string(respBody))
	}

	var uploadResp youtubeUploadResponse
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	return fmt.Sprintf("https://youtube.com/shorts/%s", uploadResp.ID), nil
}

func (u *YouTubeUploader) Analytics(ctx context.Context, contentID string) (model.Stats, error) {
	httpClient, err := u.auth.Client(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("auth client: %w", err)
	}

	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", contentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.videosURL+"?"+params.Encode(), nil)
	if err != nil {
		return model.Stats{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.Stats{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.Stats{}, fmt.Errorf("youtube analytics: %s", resp.Status)
	}

	var parsed youtubeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.Stats{}, fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Items) == 0 {
		return model.Stats{}, fmt.Errorf("video %s not found", contentID)
	}

	stats := parsed.Items[0].Statistics
	return model.Stats{
		Views:    parseCount(stats.ViewCount),
		Likes:    parseCount(stats.LikeCount),
		Comments: parseCount(stats.CommentCount),
	}, nil
}

// SetEndpoints overrides the API endpoints for testing.
func (u *YouTubeUploader) SetEndpoints(uploadURL, videosURL string) {
	u.uploadURL = uploadURL
	u.videosURL = videosURL
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
