package repo

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/clip-qa-backend/internal/domain"
)

const servedClipColumns = "clips.id, clips.video_id, clips.start_time, clips.end_time, " +
	"clips.is_dry, clips.served_count, videos.title AS video_title, videos.url AS url"

// CreateClips bulk-inserts clips in batches.
func CreateClips(ctx context.Context, db *gorm.DB, clips []domain.Clip) error {
	if len(clips) == 0 {
		return nil
	}
	return db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(clips, 200).Error
}

// GetClip fetches a single clip by ID, or ErrNotFound.
func GetClip(ctx context.Context, db *gorm.DB, id string) (*domain.Clip, error) {
	var c domain.Clip
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetServedClip fetches a clip joined with its video's title and URL.
func GetServedClip(ctx context.Context, db *gorm.DB, id string) (*domain.ServedClip, error) {
	var out domain.ServedClip
	res := db.WithContext(ctx).
		Table("clips").
		Select(servedClipColumns).
		Joins("JOIN videos ON videos.id = clips.video_id").
		Where("clips.id = ?", id).
		Limit(1).
		Scan(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &out, nil
}

// MinServedCount returns the lowest served count among non-dry clips.
// ok is false when no non-dry clip exists.
func MinServedCount(ctx context.Context, db *gorm.DB) (lowest int, ok bool, err error) {
	var v sql.NullInt64
	err = db.WithContext(ctx).
		Model(&domain.Clip{}).
		Select("MIN(served_count)").
		Where("is_dry = ?", false).
		Scan(&v).Error
	if err != nil || !v.Valid {
		return 0, false, err
	}
	return int(v.Int64), true, nil
}

// CountClipsAtServed counts non-dry clips whose served count equals served.
func CountClipsAtServed(ctx context.Context, db *gorm.DB, served int) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Clip{}).
		Where("is_dry = ? AND served_count = ?", false, served).
		Count(&n).Error
	return n, err
}

// PickClipAtServed returns the offset-th (by id) non-dry clip whose served
// count equals served. With forUpdate the row is locked until the
// surrounding transaction ends; only PostgreSQL honours the lock.
func PickClipAtServed(ctx context.Context, db *gorm.DB, served, offset int, forUpdate bool) (*domain.Clip, error) {
	q := db.WithContext(ctx).
		Where("is_dry = ? AND served_count = ?", false, served).
		Order("id").
		Offset(offset)
	if forUpdate && IsPostgres(db) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var c domain.Clip
	if err := q.Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// PickLeastServedClip returns the first (by served count, then id) non-dry
// clip, or ErrNotFound when the pool is empty.
func PickLeastServedClip(ctx context.Context, db *gorm.DB, forUpdate bool) (*domain.Clip, error) {
	q := db.WithContext(ctx).
		Where("is_dry = ?", false).
		Order("served_count asc, id asc")
	if forUpdate && IsPostgres(db) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var c domain.Clip
	if err := q.Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementServed adds one to a clip's served count in SQL, so concurrent
// increments never overwrite each other.
func IncrementServed(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.Clip{}).
		Where("id = ?", id).
		UpdateColumn("served_count", gorm.Expr("served_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetClipDry sets or clears a clip's dry flag.
func SetClipDry(ctx context.Context, db *gorm.DB, id string, dry bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Clip{}).
		Where("id = ?", id).
		UpdateColumn("is_dry", dry)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveClips counts the non-dry clips, the size of the selection pool.
func CountActiveClips(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Clip{}).Where("is_dry = ?", false).Count(&n).Error
	return n, err
}

// ListClipsByVideo returns every clip of a video ordered by start offset.
func ListClipsByVideo(ctx context.Context, db *gorm.DB, videoID string) ([]domain.Clip, error) {
	var out []domain.Clip
	err := db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("start_time asc").
		Find(&out).Error
	return out, err
}

// ClipsWithin returns the clips of a video that lie entirely inside
// [start, end], ordered by start offset.
func ClipsWithin(ctx context.Context, db *gorm.DB, videoID string, start, end int) ([]domain.Clip, error) {
	var out []domain.Clip
	err := db.WithContext(ctx).
		Where("video_id = ? AND start_time >= ? AND end_time <= ?", videoID, start, end).
		Order("start_time asc").
		Find(&out).Error
	return out, err
}

// ClipsOverlapping returns the clips of a video sharing at least one
// instant with the half-open range [start, end), ordered by start offset.
func ClipsOverlapping(ctx context.Context, db *gorm.DB, videoID string, start, end int) ([]domain.Clip, error) {
	var out []domain.Clip
	err := db.WithContext(ctx).
		Where("video_id = ? AND start_time < ? AND end_time > ?", videoID, end, start).
		Order("start_time asc").
		Find(&out).Error
	return out, err
}

// PopularClips returns up to limit non-dry clips that have at least one
// question, ordered by question count then served count.
func PopularClips(ctx context.Context, db *gorm.DB, limit int) ([]domain.PopularClip, error) {
	var out []domain.PopularClip
	err := db.WithContext(ctx).Raw(`
		SELECT `+servedClipColumns+`,
			(SELECT COUNT(*) FROM questions q WHERE q.clip_id = clips.id) AS question_count,
			(SELECT COUNT(DISTINCT cv.user_id) FROM clip_views cv WHERE cv.clip_id = clips.id) AS unique_viewers
		FROM clips
		JOIN videos ON videos.id = clips.video_id
		WHERE clips.is_dry = ?
		  AND EXISTS (SELECT 1 FROM questions q WHERE q.clip_id = clips.id)
		ORDER BY question_count DESC, clips.served_count DESC, clips.id ASC
		LIMIT ?`, false, limit).
		Scan(&out).Error
	return out, err
}
