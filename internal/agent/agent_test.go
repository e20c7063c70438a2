package agent

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/distribution"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/store"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
)

type fakeTrends struct {
	records []model.TrendRecord
}

func (f *fakeTrends) Collect(_ context.Context, max int) []model.TrendRecord {
	if len(f.records) > max {
		return f.records[:max]
	}
	return f.records
}

type fakeContent struct{}

func (fakeContent) BatchGenerate(_ context.Context, trends []model.TrendRecord, _ int) []model.ContentPackage {
	packages := make([]model.ContentPackage, 0, len(trends))
	for _, trend := range trends {
		packages = append(packages, model.ContentPackage{
			Script:   "script for " + trend.Title,
			Metadata: model.ContentMetadata{Title: trend.Title, Keywords: trend.Keywords},
			Trend:    trend,
			Status:   model.StatusReady,
		})
	}
	return packages
}

type fakeMedia struct {
	failFirst bool
	calls     int
	paths     []string
}

func (f *fakeMedia) Assemble(_ context.Context, _ string, _ model.ContentMetadata, outputPath, _ string) bool {
	f.calls++
	if f.failFirst && f.calls == 1 {
		return false
	}
	if err := os.WriteFile(outputPath, []byte("video"), 0o644); err != nil {
		return false
	}
	f.paths = append(f.paths, outputPath)
	return true
}

func (f *fakeMedia) Duration(context.Context, string) (float64, error) {
	return 42.5, nil
}

type fakeUploader struct {
	platform model.Platform
	url      string
	stats    model.Stats
	statsErr error
}

func (f *fakeUploader) Platform() model.Platform          { return f.platform }
func (f *fakeUploader) Authenticate(context.Context) bool { return true }

func (f *fakeUploader) Upload(context.Context, string, model.ContentMetadata) (string, error) {
	if f.url == "" {
		return "", fmt.Errorf("upload rejected")
	}
	return f.url, nil
}

func (f *fakeUploader) Analytics(context.Context, string) (model.Stats, error) {
	return f.stats, f.statsErr
}

type fakeDispatcher struct {
	uploaders []*fakeUploader
}

func (f *fakeDispatcher) Publish(ctx context.Context, videoPath string, meta model.ContentMetadata) map[model.Platform]*string {
	results := make(map[model.Platform]*string, len(f.uploaders))
	for _, u := range f.uploaders {
		if url, err := u.Upload(ctx, videoPath, meta); err == nil {
			results[u.Platform()] = &url
		} else {
			results[u.Platform()] = nil
		}
	}
	return results
}

func (f *fakeDispatcher) Platforms() []model.Platform {
	platforms := make([]model.Platform, 0, len(f.uploaders))
	for _, u := range f.uploaders {
		platforms = append(platforms, u.Platform())
	}
	return platforms
}

func (f *fakeDispatcher) UploaderFor(platform model.Platform) (distribution.Uploader, error) {
	for _, u := range f.uploaders {
		if u.Platform() == platform {
			return u, nil
		}
	}
	return nil, fmt.Errorf("no uploader for platform %s", platform)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		OutputDir:    filepath.Join(t.TempDir(), "videos"),
		DatabasePath: filepath.Join(t.TempDir(), "agent.db"),
		Agent:        config.AgentConfig{DailyVideoCount: 5, PacingMinutes: 30},
		Content:      config.ContentConfig{DurationSeconds: 45},
		Media:        config.MediaConfig{AspectRatio: "9:16"},
	}
}

func testAgent(t *testing.T, cfg *config.Config, trends TrendCollector, media VideoAssembler, dispatcher Dispatcher) (*Agent, *store.Store) {
	t.Helper()
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	a := New(Options{
		Config:    cfg,
		Trends:    trends,
		Content:   fakeContent{},
		Media:     media,
		Publisher: dispatcher,
		Store:     db,
	})
	a.pause = func(context.Context, time.Duration) {}
	return a, db
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	trendSource := &fakeTrends{records: []model.TrendRecord{
		{Source: model.SourceReddit, Title: "Quiet luxury", Keywords: []string{"luxury"}, Score: 300},
		{Source: model.SourceTwitter, Title: "Y2K revival", Keywords: []string{"y2k"}, Score: 200},
	}}
	media := &fakeMedia{}
	dispatcher := &fakeDispatcher{uploaders: []*fakeUploader{
		{platform: model.PlatformYouTube, url: "https://youtube.com/shorts/abc"},
		{platform: model.PlatformTwitter, url: ""},
	}}

	a, db := testAgent(t, cfg, trendSource, media, dispatcher)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if media.calls != 2 {
		t.Errorf("assembler calls = %d, want 2", media.calls)
	}
	for _, path := range media.paths {
		if !strings.HasPrefix(filepath.Base(path), "fashion_short_") {
			t.Errorf("output filename = %q, want fashion_short_ prefix", filepath.Base(path))
		}
	}

	ctx := context.Background()

	unused, err := db.UnusedTrends(ctx, 10)
	if err != nil {
		t.Fatalf("UnusedTrends() error = %v", err)
	}
	if len(unused) != 0 {
		t.Errorf("unused trends = %d, want all marked used", len(unused))
	}

	successes, err := db.SuccessfulUploads(ctx)
	if err != nil {
		t.Fatalf("SuccessfulUploads() error = %v", err)
	}
	// Two videos, one succeeding platform each.
	if len(successes) != 2 {
		t.Fatalf("successful uploads = %d, want 2", len(successes))
	}
	for _, upload := range successes {
		if upload.ContentID != "abc" {
			t.Errorf("content id = %q, want extracted from shorts URL", upload.ContentID)
		}
	}

	recent, err := db.RecentUploads(ctx, 10)
	if err != nil {
		t.Fatalf("RecentUploads() error = %v", err)
	}
	// Failed twitter uploads are recorded too.
	if len(recent) != 4 {
		t.Errorf("recorded uploads = %d, want 4", len(recent))
	}
}

func TestRunAbortsWithoutTrends(t *testing.T) {
	cfg := testConfig(t)
	a, _ := testAgent(t, cfg, &fakeTrends{}, &fakeMedia{}, &fakeDispatcher{})

	if err := a.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil, want abort when no trends detected")
	}
}

func TestRunSkipsFailedAssembly(t *testing.T) {
	cfg := testConfig(t)
	trendSource := &fakeTrends{records: []model.TrendRecord{
		{Source: model.SourceFallback, Title: "first", Score: 200},
		{Source: model.SourceFallback, Title: "second", Score: 100},
	}}
	media := &fakeMedia{failFirst: true}
	dispatcher := &fakeDispatcher{uploaders: []*fakeUploader{
		{platform: model.PlatformYouTube, url: "https://youtube.com/shorts/xyz"},
	}}

	a, db := testAgent(t, cfg, trendSource, media, dispatcher)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want failed video skipped not fatal", err)
	}

	successes, err := db.SuccessfulUploads(context.Background())
	if err != nil {
		t.Fatalf("SuccessfulUploads() error = %v", err)
	}
	if len(successes) != 1 {
		t.Errorf("successful uploads = %d, want only the second video published", len(successes))
	}
}

func TestRunPacesBetweenVideos(t *testing.T) {
	cfg := testConfig(t)
	trendSource := &fakeTrends{records: []model.TrendRecord{
		{Source: model.SourceFallback, Title: "a", Score: 3},
		{Source: model.SourceFallback, Title: "b", Score: 2},
		{Source: model.SourceFallback, Title: "c", Score: 1},
	}}
	dispatcher := &fakeDispatcher{uploaders: []*fakeUploader{
		{platform: model.PlatformYouTube, url: "https://youtube.com/shorts/p"},
	}}

	a, _ := testAgent(t, cfg, trendSource, &fakeMedia{}, dispatcher)

	var waits []time.Duration
	a.pause = func(_ context.Context, d time.Duration) { waits = append(waits, d) }

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// No pause after the last video.
	if len(waits) != 2 {
		t.Fatalf("pause calls = %d, want 2", len(waits))
	}
	for _, wait := range waits {
		if wait != 30*time.Minute {
			t.Errorf("pause = %v, want 30m", wait)
		}
	}
}

func TestRefreshAnalytics(t *testing.T) {
	cfg := testConfig(t)
	dispatcher := &fakeDispatcher{uploaders: []*fakeUploader{
		{platform: model.PlatformYouTube, stats: model.Stats{Views: 1200, Likes: 80, Comments: 14}},
		{platform: model.PlatformTikTok, statsErr: fmt.Errorf("tiktok analytics requires a business account")},
	}}

	a, db := testAgent(t, cfg, &fakeTrends{}, &fakeMedia{}, dispatcher)
	ctx := context.Background()

	videoID, err := db.SaveVideo(ctx, "s", model.ContentMetadata{Title: "v"}, "", 0)
	if err != nil {
		t.Fatalf("SaveVideo() error = %v", err)
	}
	ytURL := "https://youtube.com/shorts/ok"
	if _, err := db.SaveUpload(ctx, videoID, model.PlatformYouTube, "ok", &ytURL); err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	ttURL := "https://tiktok.com/@user/video/123"
	if _, err := db.SaveUpload(ctx, videoID, model.PlatformTikTok, "123", &ttURL); err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}

	if err := a.RefreshAnalytics(ctx); err != nil {
		t.Fatalf("RefreshAnalytics() error = %v", err)
	}

	totals, err := db.TotalAnalytics(ctx)
	if err != nil {
		t.Fatalf("TotalAnalytics() error = %v", err)
	}
	if totals.Views != 1200 || totals.Likes != 80 {
		t.Errorf("totals = %+v, want youtube stats stored and tiktok skipped", totals)
	}
	if totals.Uploads != 1 {
		t.Errorf("totals.Uploads = %d, want tiktok failure skipped", totals.Uploads)
	}
}

func TestReport(t *testing.T) {
	cfg := testConfig(t)
	a, db := testAgent(t, cfg, &fakeTrends{}, &fakeMedia{}, &fakeDispatcher{})
	ctx := context.Background()

	videoID, _ := db.SaveVideo(ctx, "s", model.ContentMetadata{Title: "Styling Hacks"}, "", 0)
	url := "https://youtube.com/shorts/r1"
	uploadID, _ := db.SaveUpload(ctx, videoID, model.PlatformYouTube, "r1", &url)
	_ = db.UpsertAnalytics(ctx, uploadID, model.Stats{Views: 900, Likes: 70})

	var buf bytes.Buffer
	if err := a.Report(ctx, &buf); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"PERFORMANCE REPORT", "Views:    900", "youtube", "Styling Hacks"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}
