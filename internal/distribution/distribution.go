package distribution

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// Uploader is one platform adapter. Upload returns the public URL of the
// published content; Analytics reads current engagement by content ID.
type Uploader interface {
	Platform() model.Platform
	Authenticate(ctx context.Context) bool
	Upload(ctx context.Context, videoPath string, meta model.ContentMetadata) (string, error)
	Analytics(ctx context.Context, contentID string) (model.Stats, error)
}

// ValidateVideo checks the platform's file size and duration limits before
// spending an upload attempt.
func ValidateVideo(ctx context.Context, videoPath string, maxSizeMB, maxDurationSec int) bool {
	info, err := os.Stat(videoPath)
	if err != nil {
		slog.Error("Cannot stat video file", "path", videoPath, "error", err)
		return false
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	if sizeMB > float64(maxSizeMB) {
		slog.Error("Video too large", "size_mb", fmt.Sprintf("%.2f", sizeMB), "limit_mb", maxSizeMB)
		return false
	}

	duration, err := probeDuration(ctx, videoPath)
	if err != nil {
		slog.Error("Cannot probe video duration", "path", videoPath, "error", err)
		return false
	}
	if duration > float64(maxDurationSec) {
		slog.Error("Video too long", "duration", duration, "limit_sec", maxDurationSec)
		return false
	}

	return true
}

func probeDuration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	cmd := exec.CommandContext(ctx, "ffprobe", args...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var dur float64
	if _, err := fmt.Sscanf(string(output), "%f", &dur); err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}

	return dur, nil
}
