// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/domain"
)

// VideosStats returns the total number of videos and the newest UploadedAt.
// When there are no videos, count is 0 and latest is nil.
func VideosStats(ctx context.Context, db *gorm.DB) (count int64, latest *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Video{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest uploaded_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UploadedAt time.Time
	}
	if err = db.WithContext(ctx).Model(&domain.Video{}).
		Select("uploaded_at").Order("uploaded_at DESC").Limit(1).
		Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UploadedAt, nil
}
