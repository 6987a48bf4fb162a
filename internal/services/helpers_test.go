package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/clip-qa-backend/internal/config"
	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/repo"
)

// newTestDB opens a migrated SQLite file through the production opener, so
// the DSN pragmas and pool settings under test match the server's.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.Open(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "clipqa.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db.Session(&gorm.Session{Logger: logger.Default.LogMode(logger.Silent)})
}

func mustUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), db, name, "hash", domain.RoleUser)
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func mustVideo(t *testing.T, db *gorm.DB, duration int) *domain.Video {
	t.Helper()
	v, err := NewVideoService(db, 0, 0).Create(context.Background(), VideoInput{
		Title:           "video-" + uuid.NewString()[:8],
		URL:             "https://cdn.example/v.mp4",
		DurationSeconds: duration,
	})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	return v
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
