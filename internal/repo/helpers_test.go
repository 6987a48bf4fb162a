package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/clip-qa-backend/internal/domain"
)

// newTestDB opens a unique in-memory database per test. With migrate=false
// no tables exist, which drives the error paths.
func newTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if migrate {
		if err := AutoMigrate(db); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u, err := CreateUser(context.Background(), db, name, "hash", domain.RoleUser)
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

// seedVideo creates a video plus its clips at offsets 0..n-1.
func seedVideo(t *testing.T, db *gorm.DB, title string, n int) (*domain.Video, []domain.Clip) {
	t.Helper()
	ctx := context.Background()
	v, err := CreateVideo(ctx, db, title, "https://cdn.example/"+title+".mp4", n+9)
	if err != nil {
		t.Fatalf("seed video: %v", err)
	}
	clips := make([]domain.Clip, n)
	now := time.Now().UTC()
	for i := range clips {
		clips[i] = domain.Clip{
			ID:        fmt.Sprintf("%s-c%03d", title, i),
			VideoID:   v.ID,
			StartTime: i,
			EndTime:   i + 10,
			CreatedAt: now,
		}
	}
	if err := CreateClips(ctx, db, clips); err != nil {
		t.Fatalf("seed clips: %v", err)
	}
	if err := SetVideoClipCount(ctx, db, v.ID, n); err != nil {
		t.Fatalf("seed clip count: %v", err)
	}
	return v, clips
}
