package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// SaveTrend records a detected trend and returns its row id.
func (s *Store) SaveTrend(ctx context.Context, trend model.TrendRecord) (int64, error) {
	keywords, err := json.Marshal(trend.Keywords)
	if err != nil {
		return 0, fmt.Errorf("marshal keywords: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO trends (source, title, keywords, score) VALUES (?, ?, ?, ?)`,
		string(trend.Source), trend.Title, string(keywords), trend.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("insert trend: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("trend id: %w", err)
	}
	return id, nil
}

// MarkTrendUsed flags a trend so it is never turned into a video twice.
func (s *Store) MarkTrendUsed(ctx context.Context, trendID int64) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE trends SET used = 1 WHERE id = ?`, trendID); err != nil {
		return fmt.Errorf("mark trend used: %w", err)
	}
	return nil
}

// UnusedTrends returns up to limit unused trends, best score first.
func (s *Store) UnusedTrends(ctx context.Context, limit int) ([]model.TrendRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, title, keywords, score, detected_at
		 FROM trends
		 WHERE used = 0
		 ORDER BY score DESC, detected_at DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query unused trends: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var trends []model.TrendRecord
	for rows.Next() {
		var t model.TrendRecord
		var source, keywords string
		if err := rows.Scan(&t.ID, &source, &t.Title, &keywords, &t.Score, &t.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		t.Source = model.TrendSource(source)
		if keywords != "" {
			if err := json.Unmarshal([]byte(keywords), &t.Keywords); err != nil {
				return nil, fmt.Errorf("parse keywords: %w", err)
			}
		}
		trends = append(trends, t)
	}

	return trends, rows.Err()
}
