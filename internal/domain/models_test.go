package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	// foreign_keys via DSN so every pooled connection enforces cascades.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Video{}, &Clip{}, &ClipView{}, &Question{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		User{}.TableName():        "users",
		Video{}.TableName():       "videos",
		Clip{}.TableName():        "clips",
		ClipView{}.TableName():    "clip_views",
		Question{}.TableName():    "questions",
		Idempotency{}.TableName(): "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_Indexes(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()

	for _, tbl := range []any{&User{}, &Video{}, &Clip{}, &ClipView{}, &Question{}, &Idempotency{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	checks := []struct {
		model any
		name  string
	}{
		{&User{}, "ux_users_username"},
		{&Clip{}, "idx_clips_pool"},
		{&Clip{}, "idx_clips_video_start"},
		{&ClipView{}, "idx_views_clip"},
		{&Question{}, "idx_questions_clip"},
		{&Question{}, "idx_questions_user"},
		{&Idempotency{}, "ux_idem_user_scope_key"},
	}
	for _, c := range checks {
		if !m.HasIndex(c.model, c.name) {
			t.Fatalf("expected index %s on %T", c.name, c.model)
		}
	}
}

func TestConstraints_RejectInvalidRows(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	if err := db.Create(&User{ID: "u1", Username: "alice", PasswordHash: "x", Role: "root"}).Error; err == nil {
		t.Fatalf("expected role check violation")
	}
	if err := db.Create(&User{ID: "u1", Username: "alice", PasswordHash: "x", Role: RoleUser}).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if err := db.Create(&User{ID: "u2", Username: "alice", PasswordHash: "y", Role: RoleUser}).Error; err == nil {
		t.Fatalf("expected unique username violation")
	}

	if err := db.Create(&Video{ID: "v1", Title: "T", URL: "https://x/v.mp4", DurationSeconds: 30, UploadedAt: now}).Error; err != nil {
		t.Fatalf("insert video: %v", err)
	}
	if err := db.Create(&Clip{ID: "c-bad", VideoID: "v1", StartTime: 0, EndTime: 9}).Error; err == nil {
		t.Fatalf("expected clip length check violation")
	}
	if err := db.Create(&Clip{ID: "c-orphan", VideoID: "nope", StartTime: 0, EndTime: 10}).Error; err == nil {
		t.Fatalf("expected FK violation for unknown video")
	}
}

func TestCascades_VideoDeleteRemovesDependents(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(db.Create(&User{ID: "u1", Username: "bob", PasswordHash: "x", Role: RoleUser}).Error)
	must(db.Create(&Video{ID: "v1", Title: "T", URL: "u", DurationSeconds: 20, UploadedAt: now}).Error)
	must(db.Create(&Clip{ID: "c1", VideoID: "v1", StartTime: 0, EndTime: 10}).Error)
	must(db.Create(&ClipView{ID: "01J00000000000000000000000", ClipID: "c1", UserID: "u1", ViewedAt: now}).Error)
	must(db.Create(&Question{ID: "q1", ClipID: "c1", UserID: "u1", QuestionText: "what?", AnswerText: "ok"}).Error)

	must(db.Delete(&Video{}, "id = ?", "v1").Error)

	for _, tbl := range []any{&Clip{}, &ClipView{}, &Question{}} {
		var n int64
		must(db.Model(tbl).Count(&n).Error)
		if n != 0 {
			t.Fatalf("expected %T rows to cascade-delete, got %d", tbl, n)
		}
	}
}

func TestCascades_UserDeleteRemovesViewsAndQuestions(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	db.Create(&User{ID: "u1", Username: "carol", PasswordHash: "x", Role: RoleUser})
	db.Create(&Video{ID: "v1", Title: "T", URL: "u", DurationSeconds: 20, UploadedAt: now})
	db.Create(&Clip{ID: "c1", VideoID: "v1", StartTime: 0, EndTime: 10})
	db.Create(&ClipView{ID: "01J00000000000000000000001", ClipID: "c1", UserID: "u1", ViewedAt: now})
	db.Create(&Question{ID: "q1", ClipID: "c1", UserID: "u1", QuestionText: "what?", AnswerText: "ok"})

	if err := db.Delete(&User{}, "id = ?", "u1").Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	var views, qs, clips int64
	db.Model(&ClipView{}).Count(&views)
	db.Model(&Question{}).Count(&qs)
	db.Model(&Clip{}).Count(&clips)
	if views != 0 || qs != 0 {
		t.Fatalf("expected views/questions removed, got views=%d questions=%d", views, qs)
	}
	if clips != 1 {
		t.Fatalf("clips must survive user deletion, got %d", clips)
	}
}
