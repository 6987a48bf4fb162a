package repo

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/clip-qa-backend/internal/domain"
)

// AppendView records that userID was served (or dismissed) clipID.
// sessionDuration is nil for a plain serve.
func AppendView(ctx context.Context, db *gorm.DB, clipID, userID string, sessionDuration *int) (*domain.ClipView, error) {
	v := &domain.ClipView{
		ID:              ulid.Make().String(),
		ClipID:          clipID,
		UserID:          userID,
		ViewedAt:        time.Now().UTC(),
		SessionDuration: sessionDuration,
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// CountViews returns how many views a clip has.
func CountViews(ctx context.Context, db *gorm.DB, clipID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ClipView{}).Where("clip_id = ?", clipID).Count(&n).Error
	return n, err
}
