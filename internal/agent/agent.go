package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/distribution"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/store"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
)

// TrendCollector detects currently popular topics.
type TrendCollector interface {
	Collect(ctx context.Context, max int) []model.TrendRecord
}

// ContentGenerator turns trends into scripts plus metadata.
type ContentGenerator interface {
	BatchGenerate(ctx context.Context, trends []model.TrendRecord, durationSeconds int) []model.ContentPackage
}

// VideoAssembler renders one content package into a video file.
type VideoAssembler interface {
	Assemble(ctx context.Context, script string, meta model.ContentMetadata, outputPath, aspectRatio string) bool
	Duration(ctx context.Context, path string) (float64, error)
}

// Dispatcher pushes a finished video to every configured platform.
type Dispatcher interface {
	Publish(ctx context.Context, videoPath string, meta model.ContentMetadata) map[model.Platform]*string
	Platforms() []model.Platform
	UploaderFor(platform model.Platform) (distribution.Uploader, error)
}

// Agent runs the daily trend-to-upload workflow end to end.
type Agent struct {
	cfg       *config.Config
	trends    TrendCollector
	content   ContentGenerator
	media     VideoAssembler
	publisher Dispatcher
	store     *store.Store

	// pause is replaced in tests so pacing does not sleep for real.
	pause func(ctx context.Context, d time.Duration)
	now   func() time.Time
}

type Options struct {
	Config    *config.Config
	Trends    TrendCollector
	Content   ContentGenerator
	Media     VideoAssembler
	Publisher Dispatcher
	Store     *store.Store
}

func New(opts Options) *Agent {
	return &Agent{
		cfg:       opts.Config,
		trends:    opts.Trends,
		content:   opts.Content,
		media:     opts.Media,
		publisher: opts.Publisher,
		store:     opts.Store,
		pause:     sleepContext,
		now:       time.Now,
	}
}

// Close releases the backing database.
func (a *Agent) Close() error {
	return a.store.Close()
}

// Run executes one full daily cycle: detect trends, generate content, render
// videos, and publish each one to every platform. A failure in one video
// never aborts the rest of the batch; the run only errors when no trends or
// no content could be produced at all.
func (a *Agent) Run(ctx context.Context) error {
	slog.Info("Starting daily workflow", "videos", a.cfg.Agent.DailyVideoCount)

	trends := a.trends.Collect(ctx, a.cfg.Agent.DailyVideoCount)
	if len(trends) == 0 {
		return fmt.Errorf("no trends detected")
	}

	for i := range trends {
		id, err := a.store.SaveTrend(ctx, trends[i])
		if err != nil {
			slog.Warn("Failed to save trend", "title", trends[i].Title, "error", err)
			continue
		}
		trends[i].ID = id
	}

	packages := a.content.BatchGenerate(ctx, trends, a.cfg.Content.DurationSeconds)
	if len(packages) == 0 {
		return fmt.Errorf("no content generated")
	}
	slog.Info("Content generated", "packages", len(packages))

	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	uploadsOK := 0
	for i, pkg := range packages {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		slog.Info("Processing video", "index", i+1, "total", len(packages), "trend", pkg.Trend.Title)

		filename := fmt.Sprintf("fashion_short_%s_%d.mp4", a.now().Format("20060102_150405"), i)
		outputPath := filepath.Join(a.cfg.OutputDir, filename)

		if !a.media.Assemble(ctx, pkg.Script, pkg.Metadata, outputPath, a.cfg.Media.AspectRatio) {
			slog.Error("Video assembly failed, skipping", "trend", pkg.Trend.Title)
			continue
		}

		if duration, err := a.media.Duration(ctx, outputPath); err == nil {
			slog.Info("Video rendered", "path", outputPath, "duration", duration)
		}

		videoID, err := a.store.SaveVideo(ctx, pkg.Script, pkg.Metadata, outputPath, pkg.Trend.ID)
		if err != nil {
			slog.Error("Failed to save video record", "error", err)
			continue
		}

		if pkg.Trend.ID > 0 {
			if err := a.store.MarkTrendUsed(ctx, pkg.Trend.ID); err != nil {
				slog.Warn("Failed to mark trend used", "trend_id", pkg.Trend.ID, "error", err)
			}
		}

		results := a.publisher.Publish(ctx, outputPath, pkg.Metadata)
		for platform, url := range results {
			contentID := ""
			if url != nil {
				contentID = distribution.ContentID(platform, *url)
				uploadsOK++
				slog.Info("Upload succeeded", "platform", platform, "url", *url)
			} else {
				slog.Warn("Upload failed", "platform", platform)
			}

			if _, err := a.store.SaveUpload(ctx, videoID, platform, contentID, url); err != nil {
				slog.Error("Failed to record upload", "platform", platform, "error", err)
			}
		}

		// Stagger uploads so platforms do not see a burst of posts.
		if i < len(packages)-1 && a.cfg.Agent.PacingMinutes > 0 {
			wait := time.Duration(a.cfg.Agent.PacingMinutes) * time.Minute
			slog.Info("Pacing before next video", "wait", wait)
			a.pause(ctx, wait)
		}
	}

	totals, err := a.store.TotalAnalytics(ctx)
	if err != nil {
		slog.Warn("Failed to read totals", "error", err)
	}

	slog.Info("Daily workflow complete",
		"videos", len(packages),
		"successful_uploads", uploadsOK,
		"platforms", len(a.publisher.Platforms()),
		"all_time_views", totals.Views,
	)
	return nil
}

// RefreshAnalytics pulls fresh engagement stats for every successful upload
// and stores them, overwriting the previous snapshot per upload.
func (a *Agent) RefreshAnalytics(ctx context.Context) error {
	uploads, err := a.store.SuccessfulUploads(ctx)
	if err != nil {
		return fmt.Errorf("list uploads: %w", err)
	}

	slog.Info("Refreshing analytics", "uploads", len(uploads))

	for _, upload := range uploads {
		uploader, err := a.publisher.UploaderFor(upload.Platform)
		if err != nil {
			continue
		}

		stats, err := uploader.Analytics(ctx, upload.ContentID)
		if err != nil {
			slog.Debug("Analytics unavailable", "platform", upload.Platform, "content_id", upload.ContentID, "error", err)
			continue
		}

		if err := a.store.UpsertAnalytics(ctx, upload.ID, stats); err != nil {
			slog.Error("Failed to store analytics", "upload_id", upload.ID, "error", err)
			continue
		}
		slog.Info("Analytics updated", "platform", upload.Platform, "views", stats.Views, "likes", stats.Likes)
	}

	return nil
}

// Report writes the all-time performance summary to w.
func (a *Agent) Report(ctx context.Context, w io.Writer) error {
	totals, err := a.store.TotalAnalytics(ctx)
	if err != nil {
		return fmt.Errorf("read totals: %w", err)
	}

	performance, err := a.store.PlatformPerformance(ctx)
	if err != nil {
		return fmt.Errorf("read platform performance: %w", err)
	}

	recent, err := a.store.RecentUploads(ctx, 10)
	if err != nil {
		return fmt.Errorf("read recent uploads: %w", err)
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "PERFORMANCE REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintln(w, "\nTotal Performance:")
	fmt.Fprintf(w, "  Views:    %d\n", totals.Views)
	fmt.Fprintf(w, "  Likes:    %d\n", totals.Likes)
	fmt.Fprintf(w, "  Comments: %d\n", totals.Comments)
	fmt.Fprintf(w, "  Uploads:  %d\n", totals.Uploads)

	fmt.Fprintln(w, "\nBy Platform:")
	for _, p := range performance {
		fmt.Fprintf(w, "  %s: %d uploads, %d views (avg %.0f)\n",
			p.Platform, p.Uploads, p.Views, p.AvgViews)
	}

	if len(recent) > 0 {
		fmt.Fprintln(w, "\nRecent Uploads:")
		for _, u := range recent {
			fmt.Fprintf(w, "  [%s] %s - %d views, %d likes\n",
				u.Platform, u.Title, u.Views, u.Likes)
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
