package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// UpsertAnalytics overwrites the single snapshot row for an upload, or
// creates it on first refresh.
func (s *Store) UpsertAnalytics(ctx context.Context, uploadID int64, stats model.Stats) error {
	var existingID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM analytics WHERE upload_id = ?`, uploadID).Scan(&existingID)

	switch {
	case err == nil:
		_, err = s.db.ExecContext(ctx,
			`UPDATE analytics
			 SET views = ?, likes = ?, comments = ?, shares = ?, revenue = ?,
			     last_updated = CURRENT_TIMESTAMP
			 WHERE upload_id = ?`,
			stats.Views, stats.Likes, stats.Comments, stats.Shares, stats.Revenue, uploadID,
		)
		if err != nil {
			return fmt.Errorf("update analytics: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO analytics (upload_id, views, likes, comments, shares, revenue)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uploadID, stats.Views, stats.Likes, stats.Comments, stats.Shares, stats.Revenue,
		)
		if err != nil {
			return fmt.Errorf("insert analytics: %w", err)
		}
	default:
		return fmt.Errorf("query analytics: %w", err)
	}

	return nil
}

// Totals is the aggregate engagement across all platforms.
type Totals struct {
	Views    int64
	Likes    int64
	Comments int64
	Shares   int64
	Uploads  int64
}

// TotalAnalytics sums engagement over every tracked upload. An empty store
// reports zeros.
func (s *Store) TotalAnalytics(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(views), 0), COALESCE(SUM(likes), 0),
		        COALESCE(SUM(comments), 0), COALESCE(SUM(shares), 0),
		        COUNT(DISTINCT upload_id)
		 FROM analytics`,
	).Scan(&t.Views, &t.Likes, &t.Comments, &t.Shares, &t.Uploads)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}

	return t, nil
}

// PlatformStats is aggregate performance for one platform.
type PlatformStats struct {
	Platform model.Platform
	Uploads  int64
	Views    int64
	Likes    int64
	AvgViews float64
}

// PlatformPerformance groups successful uploads by platform, best total
// views first.
func (s *Store) PlatformPerformance(ctx context.Context) ([]PlatformStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.platform, COUNT(u.id),
		        COALESCE(SUM(a.views), 0), COALESCE(SUM(a.likes), 0),
		        COALESCE(AVG(a.views), 0)
		 FROM uploads u
		 LEFT JOIN analytics a ON u.id = a.upload_id
		 WHERE u.status = 'success'
		 GROUP BY u.platform
		 ORDER BY SUM(a.views) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query platform performance: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []PlatformStats
	for rows.Next() {
		var p PlatformStats
		var platform string
		if err := rows.Scan(&platform, &p.Uploads, &p.Views, &p.Likes, &p.AvgViews); err != nil {
			return nil, fmt.Errorf("scan platform stats: %w", err)
		}
		p.Platform = model.Platform(platform)
		stats = append(stats, p)
	}

	return stats, rows.Err()
}
