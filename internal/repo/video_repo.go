// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Video model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business rules, only persistence and query composition.
//
// Error semantics:
//   - When a video is not found, functions return gorm.ErrRecordNotFound
//     (exported here as ErrNotFound).
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/domain"
)

// CreateVideo inserts a video row with zero generated clips. Callers set
// the clip count with SetVideoClipCount once the clips exist.
func CreateVideo(ctx context.Context, db *gorm.DB, title, url string, durationSeconds int) (*domain.Video, error) {
	v := &domain.Video{
		ID:              uuid.NewString(),
		Title:           title,
		URL:             url,
		DurationSeconds: durationSeconds,
		UploadedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// SetVideoClipCount records how many clips were generated for a video.
func SetVideoClipCount(ctx context.Context, db *gorm.DB, id string, n int) error {
	res := db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		Update("total_clips_generated", n)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetVideo fetches a single video by ID, or ErrNotFound.
func GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error) {
	var v domain.Video
	if err := db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// CountVideos returns the total number of videos.
func CountVideos(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Video{}).Count(&total).Error
	return total, err
}

// ListVideosPage returns a page of videos, newest upload first.
func ListVideosPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Video, error) {
	var out []domain.Video
	err := db.WithContext(ctx).
		Order("uploaded_at desc, id asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteVideo removes a video; FK cascades remove its clips, and through
// them, views and questions.
func DeleteVideo(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Video{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// VideoStats aggregates engagement for one video.
type VideoStats struct {
	TotalClips     int64 `json:"total_clips"`
	DryClips       int64 `json:"dry_clips"`
	TotalQuestions int64 `json:"total_questions"`
	UniqueViewers  int64 `json:"unique_viewers"`
	TotalViews     int64 `json:"total_views"`
}

// GetVideoStats computes VideoStats with one query per figure so the joins
// never multiply rows.
func GetVideoStats(ctx context.Context, db *gorm.DB, videoID string) (*VideoStats, error) {
	db = db.WithContext(ctx)
	var st VideoStats

	clips := db.Model(&domain.Clip{}).Where("video_id = ?", videoID)
	if err := clips.Count(&st.TotalClips).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Clip{}).Where("video_id = ? AND is_dry = ?", videoID, true).Count(&st.DryClips).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Question{}).
		Joins("JOIN clips ON clips.id = questions.clip_id").
		Where("clips.video_id = ?", videoID).
		Count(&st.TotalQuestions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.ClipView{}).
		Joins("JOIN clips ON clips.id = clip_views.clip_id").
		Where("clips.video_id = ?", videoID).
		Count(&st.TotalViews).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.ClipView{}).
		Joins("JOIN clips ON clips.id = clip_views.clip_id").
		Where("clips.video_id = ?", videoID).
		Distinct("clip_views.user_id").
		Count(&st.UniqueViewers).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
