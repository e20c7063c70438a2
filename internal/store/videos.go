package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// SaveVideo records one produced video and returns its row id. trendID may
// be zero when the video came from a fallback trend that was never stored.
func (s *Store) SaveVideo(ctx context.Context, script string, meta model.ContentMetadata, filePath string, trendID int64) (int64, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return 0, fmt.Errorf("marshal metadata: %w", err)
	}

	var trendRef sql.NullInt64
	if trendID > 0 {
		trendRef = sql.NullInt64{Int64: trendID, Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO videos (trend_id, script, metadata, file_path) VALUES (?, ?, ?, ?)`,
		trendRef, script, string(metaJSON), filePath,
	)
	if err != nil {
		return 0, fmt.Errorf("insert video: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("video id: %w", err)
	}
	return id, nil
}
