package trends

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

const (
	tiktokTagURL  = "https://www.tiktok.com/tag/fashion"
	tiktokTimeout = 10 * time.Second
)

// TikTokSource probes the public tag page but never yields records: the page
// requires script-driven parsing and gets blocked routinely, so the
// aggregator's fallback generator covers this source. The empty return is
// deliberate.
type TikTokSource struct {
	httpClient *http.Client
}

func NewTikTokSource() *TikTokSource {
	return &TikTokSource{
		httpClient: &http.Client{Timeout: tiktokTimeout},
	}
}

func (s *TikTokSource) Name() string { return "tiktok" }

func (s *TikTokSource) Fetch(ctx context.Context) ([]model.TrendRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tiktokTagURL, nil)
	if err != nil {
		return nil, nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Warn("TikTok trends unavailable", "error", err)
		return nil, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		slog.Info("TikTok: using fallback trends (tag page parsing unreliable)")
	}

	return nil, nil
}
