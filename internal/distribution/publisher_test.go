package distribution

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

type fakeUploader struct {
	platform model.Platform
	url      string
	err      error
	panics   bool
	gotMeta  model.ContentMetadata
}

func (f *fakeUploader) Platform() model.Platform          { return f.platform }
func (f *fakeUploader) Authenticate(context.Context) bool { return true }

func (f *fakeUploader) Upload(_ context.Context, _ string, meta model.ContentMetadata) (string, error) {
	f.gotMeta = meta
	if f.panics {
		panic("uploader blew up")
	}
	return f.url, f.err
}

func (f *fakeUploader) Analytics(context.Context, string) (model.Stats, error) {
	return model.Stats{}, nil
}

func TestPublishOneResultPerPlatform(t *testing.T) {
	youtube := &fakeUploader{platform: model.PlatformYouTube, url: "https://youtube.com/shorts/abc"}
	twitter := &fakeUploader{platform: model.PlatformTwitter, err: errors.New("rate limited")}
	facebook := &fakeUploader{platform: model.PlatformFacebook, url: "https://www.facebook.com/reel/123"}
	publisher := NewPublisher(youtube, twitter, facebook)

	results := publisher.Publish(context.Background(), "video.mp4", model.ContentMetadata{Title: "t"})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want one slot per platform", len(results))
	}
	if results[model.PlatformYouTube] == nil || *results[model.PlatformYouTube] != "https://youtube.com/shorts/abc" {
		t.Errorf("youtube result = %v", results[model.PlatformYouTube])
	}
	if results[model.PlatformTwitter] != nil {
		t.Errorf("twitter result = %v, want nil on failure", *results[model.PlatformTwitter])
	}
	if results[model.PlatformFacebook] == nil {
		t.Error("facebook result is nil, want success despite twitter failure")
	}
}

func TestPublishSurvivesPanickingUploader(t *testing.T) {
	bad := &fakeUploader{platform: model.PlatformTikTok, panics: true}
	good := &fakeUploader{platform: model.PlatformYouTube, url: "https://youtube.com/shorts/xyz"}
	publisher := NewPublisher(bad, good)

	results := publisher.Publish(context.Background(), "video.mp4", model.ContentMetadata{})

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[model.PlatformTikTok] != nil {
		t.Error("panicking uploader should record a failure")
	}
	if results[model.PlatformYouTube] == nil {
		t.Error("healthy uploader should still succeed")
	}
}

func TestPublishAdaptsMetadataPerPlatform(t *testing.T) {
	youtube := &fakeUploader{platform: model.PlatformYouTube, url: "u"}
	tiktok := &fakeUploader{platform: model.PlatformTikTok, url: "u"}
	publisher := NewPublisher(youtube, tiktok)

	meta := model.ContentMetadata{
		Title:       "Base Title",
		Description: "Base description",
		Tags:        []string{"fashion", "style"},
	}
	publisher.Publish(context.Background(), "video.mp4", meta)

	if !strings.HasSuffix(youtube.gotMeta.Title, "#Shorts") {
		t.Errorf("youtube got title %q, want shorts marker", youtube.gotMeta.Title)
	}
	if youtube.gotMeta.Title == tiktok.gotMeta.Title && youtube.gotMeta.Description == tiktok.gotMeta.Description {
		t.Error("platforms received identical metadata, want per-platform adaptation")
	}
	if meta.Title != "Base Title" {
		t.Error("base metadata was mutated")
	}
}

func TestUploaderFor(t *testing.T) {
	youtube := &fakeUploader{platform: model.PlatformYouTube}
	publisher := NewPublisher(youtube)

	got, err := publisher.UploaderFor(model.PlatformYouTube)
	if err != nil || got != Uploader(youtube) {
		t.Errorf("UploaderFor(youtube) = %v, %v", got, err)
	}

	if _, err := publisher.UploaderFor(model.PlatformTwitter); err == nil {
		t.Error("UploaderFor(twitter) expected error for unconfigured platform")
	}
}

func TestContentID(t *testing.T) {
	tests := []struct {
		name     string
		platform model.Platform
		url      string
		want     string
	}{
		{"youtube shorts", model.PlatformYouTube, "https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"instagram reel trailing slash", model.PlatformInstagram, "https://www.instagram.com/reel/Cx1yz/", "Cx1yz"},
		{"facebook reel", model.PlatformFacebook, "https://www.facebook.com/reel/98765", "98765"},
		{"twitter status", model.PlatformTwitter, "https://twitter.com/i/status/17201", "17201"},
		{"tiktok last segment", model.PlatformTikTok, "https://www.tiktok.com/@me/video/7281", "7281"},
		{"unrecognized shape", model.PlatformYouTube, "https://example.com/other", "https://example.com/other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentID(tt.platform, tt.url); got != tt.want {
				t.Errorf("ContentID(%q, %q) = %q, want %q", tt.platform, tt.url, got, tt.want)
			}
		})
	}
}

func TestBuildTweetText(t *testing.T) {
	meta := model.ContentMetadata{
		Description: strings.Repeat("x", 270),
		Tags:        []string{"fashion", "style", "trend"},
	}

	text := buildTweetText(meta)
	if len(text) > twitterTextLimit {
		t.Errorf("len(text) = %d, want <= %d", len(text), twitterTextLimit)
	}
	// 270 chars + " #fashion" would overflow, so no hashtags fit.
	if strings.Contains(text, "#") {
		t.Errorf("text = %q, want no hashtags when budget is exhausted", text)
	}

	meta.Description = "short"
	text = buildTweetText(meta)
	for _, tag := range meta.Tags {
		if !strings.Contains(text, "#"+tag) {
			t.Errorf("text = %q, missing #%s", text, tag)
		}
	}
}

func TestBuildTikTokCaption(t *testing.T) {
	meta := model.ContentMetadata{
		Description: "cool outfit",
		Tags:        []string{"a", "b", "c", "d", "e", "f", "g"},
	}

	caption := buildTikTokCaption(meta)
	if got := strings.Count(caption, "#"); got != tiktokHashtagLimit {
		t.Errorf("hashtag count = %d, want %d", got, tiktokHashtagLimit)
	}
}

func TestBuildTweetTextMultiByteDescription(t *testing.T) {
	meta := model.ContentMetadata{
		Description: strings.Repeat("é", 300),
		Tags:        []string{"fashion"},
	}

	text := buildTweetText(meta)
	if !utf8.ValidString(text) {
		t.Errorf("text is not valid UTF-8: %q", text)
	}
	if n := utf8.RuneCountInString(text); n != twitterTextLimit {
		t.Errorf("rune count = %d, want %d", n, twitterTextLimit)
	}
	if strings.Contains(text, "#") {
		t.Errorf("text = %q, want no hashtags when budget is exhausted", text)
	}
}
