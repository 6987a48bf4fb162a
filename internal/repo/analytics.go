package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/domain"
)

// ClipTotals aggregates the clips created since a point in time.
type ClipTotals struct {
	TotalClips    int64
	DryClips      int64
	TotalServed   int64
	QuestionCount int64
	UniqueViewers int64
}

// ClipTotalsSince aggregates clips created at or after since, the questions
// attached to them since then, and the distinct users who viewed them.
func ClipTotalsSince(ctx context.Context, db *gorm.DB, since time.Time) (*ClipTotals, error) {
	db = db.WithContext(ctx)
	var out ClipTotals

	var row struct {
		Total  int64
		Dry    int64
		Served int64
	}
	if err := db.Model(&domain.Clip{}).
		Select("COUNT(*) AS total, "+
			"COALESCE(SUM(CASE WHEN is_dry = ? THEN 1 ELSE 0 END), 0) AS dry, "+
			"COALESCE(SUM(served_count), 0) AS served", true).
		Where("created_at >= ?", since).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	out.TotalClips, out.DryClips, out.TotalServed = row.Total, row.Dry, row.Served

	if err := db.Model(&domain.Question{}).
		Joins("JOIN clips ON clips.id = questions.clip_id").
		Where("clips.created_at >= ? AND questions.created_at >= ?", since, since).
		Count(&out.QuestionCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.ClipView{}).
		Joins("JOIN clips ON clips.id = clip_views.clip_id").
		Where("clips.created_at >= ? AND clip_views.viewed_at >= ?", since, since).
		Distinct("clip_views.user_id").
		Count(&out.UniqueViewers).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// UserTotals aggregates account activity.
type UserTotals struct {
	TotalUsers    int64
	ActiveSince   int64
	QuestionCount int64
}

// UserTotalsSince counts all users, those who logged in at or after
// activeSince, and questions created at or after since.
func UserTotalsSince(ctx context.Context, db *gorm.DB, since, activeSince time.Time) (*UserTotals, error) {
	db = db.WithContext(ctx)
	var out UserTotals
	if err := db.Model(&domain.User{}).Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.User{}).Where("last_login >= ?", activeSince).Count(&out.ActiveSince).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Question{}).Where("created_at >= ?", since).Count(&out.QuestionCount).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ViewStamp is one (user, time) pair from the view log.
type ViewStamp struct {
	UserID   string
	ViewedAt time.Time
}

// ViewStampsSince returns every view at or after since, oldest first.
func ViewStampsSince(ctx context.Context, db *gorm.DB, since time.Time) ([]ViewStamp, error) {
	var out []ViewStamp
	err := db.WithContext(ctx).
		Model(&domain.ClipView{}).
		Select("user_id, viewed_at").
		Where("viewed_at >= ?", since).
		Order("viewed_at asc").
		Scan(&out).Error
	return out, err
}

// TextLengths is the rune length of one question/answer pair.
type TextLengths struct {
	QuestionLen int
	AnswerLen   int
}

// QuestionTextLengths returns the character lengths of every question and
// answer, ordered by question length.
func QuestionTextLengths(ctx context.Context, db *gorm.DB) ([]TextLengths, error) {
	var out []TextLengths
	err := db.WithContext(ctx).
		Model(&domain.Question{}).
		Select("LENGTH(question_text) AS question_len, LENGTH(answer_text) AS answer_len").
		Order("question_len asc").
		Scan(&out).Error
	return out, err
}

// VideoPerformanceRow aggregates engagement per video.
type VideoPerformanceRow struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	DurationSeconds int     `json:"duration_seconds"`
	TotalClips      int64   `json:"total_clips"`
	DryClips        int64   `json:"dry_clips"`
	TotalQuestions  int64   `json:"total_questions"`
	AvgClipViews    float64 `json:"avg_clip_views"`
	UniqueViewers   int64   `json:"unique_viewers"`
}

// VideoPerformance returns one row per video. Each figure is a correlated
// subquery so joins never multiply rows.
func VideoPerformance(ctx context.Context, db *gorm.DB) ([]VideoPerformanceRow, error) {
	var out []VideoPerformanceRow
	err := db.WithContext(ctx).Raw(`
		SELECT v.id, v.title, v.duration_seconds,
			(SELECT COUNT(*) FROM clips c WHERE c.video_id = v.id) AS total_clips,
			(SELECT COUNT(*) FROM clips c WHERE c.video_id = v.id AND c.is_dry = ?) AS dry_clips,
			(SELECT COUNT(*) FROM questions q JOIN clips c ON c.id = q.clip_id WHERE c.video_id = v.id) AS total_questions,
			(SELECT COALESCE(AVG(c.served_count), 0) FROM clips c WHERE c.video_id = v.id) AS avg_clip_views,
			(SELECT COUNT(DISTINCT cv.user_id) FROM clip_views cv JOIN clips c ON c.id = cv.clip_id WHERE c.video_id = v.id) AS unique_viewers
		FROM videos v
		ORDER BY v.uploaded_at DESC, v.id ASC`, true).
		Scan(&out).Error
	return out, err
}
