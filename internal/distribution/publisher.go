package distribution

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/content"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// Publisher fans one finished video out to every configured platform
// concurrently. A platform failure never blocks or cancels the others.
type Publisher struct {
	uploaders []Uploader
}

func NewPublisher(uploaders ...Uploader) *Publisher {
	return &Publisher{uploaders: uploaders}
}

// Publish uploads the video everywhere and returns one entry per configured
// platform. A nil URL marks a failed upload.
func (p *Publisher) Publish(ctx context.Context, videoPath string, meta model.ContentMetadata) map[model.Platform]*string {
	results := make(map[model.Platform]*string, len(p.uploaders))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(p.uploaders))

	for _, uploader := range p.uploaders {
		g.Go(func() (err error) {
			platform := uploader.Platform()

			defer func() {
				if r := recover(); r != nil {
					slog.Error("Uploader panicked", "platform", platform, "panic", r)
					err = nil
				}
			}()

			adapted := content.AdaptForPlatform(meta, platform)

			url, uploadErr := uploader.Upload(gctx, videoPath, adapted)
			mu.Lock()
			defer mu.Unlock()
			if uploadErr != nil {
				slog.Error("Upload failed", "platform", platform, "error", uploadErr)
				results[platform] = nil
				return nil
			}

			slog.Info("Upload succeeded", "platform", platform, "url", url)
			results[platform] = &url
			return nil
		})
	}

	_ = g.Wait()

	// Uploaders that never ran (cancelled context) still get a slot.
	for _, uploader := range p.uploaders {
		platform := uploader.Platform()
		if _, ok := results[platform]; !ok {
			results[platform] = nil
		}
	}

	return results
}

// Platforms lists the configured destinations in dispatch order.
func (p *Publisher) Platforms() []model.Platform {
	platforms := make([]model.Platform, 0, len(p.uploaders))
	for _, uploader := range p.uploaders {
		platforms = append(platforms, uploader.Platform())
	}
	return platforms
}

// UploaderFor returns the adapter for a platform, or an error when none is
// configured.
func (p *Publisher) UploaderFor(platform model.Platform) (Uploader, error) {
	for _, uploader := range p.uploaders {
		if uploader.Platform() == platform {
			return uploader, nil
		}
	}
	return nil, fmt.Errorf("no uploader configured for platform %q", platform)
}
