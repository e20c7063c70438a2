package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// SaveUpload records one (video, platform) outcome. A nil url marks the
// upload as failed.
func (s *Store) SaveUpload(ctx context.Context, videoID int64, platform model.Platform, contentID string, url *string) (int64, error) {
	status := model.UploadFailed
	if url != nil {
		status = model.UploadSuccess
	}

	var urlValue sql.NullString
	if url != nil {
		urlValue = sql.NullString{String: *url, Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (video_id, platform, content_id, url, status) VALUES (?, ?, ?, ?, ?)`,
		videoID, string(platform), contentID, urlValue, string(status),
	)
	if err != nil {
		return 0, fmt.Errorf("insert upload: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("upload id: %w", err)
	}
	return id, nil
}

// SuccessfulUploads lists every successful upload with its platform content
// id, for analytics refreshes.
func (s *Store) SuccessfulUploads(ctx context.Context) ([]model.UploadResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, platform, content_id, url, uploaded_at
		 FROM uploads
		 WHERE status = 'success'
		 ORDER BY uploaded_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var uploads []model.UploadResult
	for rows.Next() {
		var u model.UploadResult
		var platform string
		var url sql.NullString
		if err := rows.Scan(&u.ID, &u.VideoID, &platform, &u.ContentID, &url, &u.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		u.Platform = model.Platform(platform)
		u.Status = model.UploadSuccess
		if url.Valid {
			u.URL = &url.String
		}
		uploads = append(uploads, u)
	}

	return uploads, rows.Err()
}

// RecentUpload is one row of the recent-uploads report.
type RecentUpload struct {
	ID         int64
	Platform   model.Platform
	URL        string
	UploadedAt time.Time
	Title      string
	Views      int64
	Likes      int64
	Comments   int64
}

// RecentUploads lists the latest uploads joined with their video metadata
// and current analytics.
func (s *Store) RecentUploads(ctx context.Context, limit int) ([]RecentUpload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.platform, COALESCE(u.url, ''), u.uploaded_at,
		        COALESCE(v.metadata, ''),
		        COALESCE(a.views, 0), COALESCE(a.likes, 0), COALESCE(a.comments, 0)
		 FROM uploads u
		 JOIN videos v ON u.video_id = v.id
		 LEFT JOIN analytics a ON u.id = a.upload_id
		 ORDER BY u.uploaded_at DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent uploads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var uploads []RecentUpload
	for rows.Next() {
		var u RecentUpload
		var platform, metaJSON string
		if err := rows.Scan(&u.ID, &platform, &u.URL, &u.UploadedAt, &metaJSON, &u.Views, &u.Likes, &u.Comments); err != nil {
			return nil, fmt.Errorf("scan recent upload: %w", err)
		}
		u.Platform = model.Platform(platform)
		u.Title = titleFromMetadata(metaJSON)
		uploads = append(uploads, u)
	}

	return uploads, rows.Err()
}

func titleFromMetadata(metaJSON string) string {
	if metaJSON == "" {
		return ""
	}
	var meta model.ContentMetadata
	if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
		return ""
	}
	return meta.Title
}
