package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/config"
	"github.com/tbourn/clip-qa-backend/internal/domain"
)

func openTemp(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "clipqa.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestOpen_SQLiteSettings(t *testing.T) {
	db := openTemp(t)

	pragmas := map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"busy_timeout": "5000",
		"synchronous":  "1", // NORMAL
	}
	for name, want := range pragmas {
		var got string
		if err := db.Raw("PRAGMA " + name).Row().Scan(&got); err != nil {
			t.Fatalf("PRAGMA %s: %v", name, err)
		}
		if got != want {
			t.Errorf("PRAGMA %s = %q; want %q", name, got, want)
		}
	}

	sqlDB, _ := db.DB()
	if n := sqlDB.Stats().MaxOpenConnections; n != 1 {
		t.Errorf("MaxOpenConnections = %d; want 1", n)
	}
	if IsPostgres(db) {
		t.Error("sqlite handle reported as postgres")
	}
	if len(db.Config.Plugins) == 0 {
		t.Error("tracing plugin not installed")
	}
}

func TestOpen_Errors(t *testing.T) {
	cases := []config.DBConfig{
		{Driver: "mysql"},
		{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "missing-dir", "clipqa.db")},
	}
	for _, cfg := range cases {
		if db, err := Open(cfg); err == nil || db != nil {
			t.Errorf("Open(%+v) = %v, %v; want error", cfg, db, err)
		}
	}
}

func TestAutoMigrate_CreatesSchemaAndEnforcesFKs(t *testing.T) {
	db := openTemp(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	// Rerunning is how the CLI's migrate command behaves on an up-to-date store.
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("second AutoMigrate: %v", err)
	}

	for _, m := range []any{&domain.User{}, &domain.Video{}, &domain.Clip{}, &domain.ClipView{}, &domain.Question{}, &domain.Idempotency{}} {
		if !db.Migrator().HasTable(m) {
			t.Errorf("missing table for %T", m)
		}
	}

	orphan := []domain.Clip{{ID: "orphan-c0", VideoID: "no-such-video", StartTime: 0, EndTime: 10}}
	if err := CreateClips(context.Background(), db, orphan); err == nil {
		t.Fatal("clip without a video was accepted; foreign_keys pragma not applied")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	db := newTestDB(t, true)
	seedUser(t, db, "dup")
	_, dupErr := CreateUser(context.Background(), db, "dup", "h", domain.RoleUser)

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"sqlite duplicate", dupErr, true},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"postgres 23505", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, false},
		{"nil", nil, false},
		{"other", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Errorf("%s: IsUniqueViolation(%v) = %v; want %v", tc.name, tc.err, got, tc.want)
		}
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	db := newTestDB(t, true)
	_, fkErr := AppendView(context.Background(), db, "no-clip", "no-user", nil)

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"sqlite missing parent", fkErr, true},
		{"gorm sentinel", gorm.ErrForeignKeyViolated, true},
		{"postgres 23503", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, false},
		{"nil", nil, false},
		{"other", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsForeignKeyViolation(tc.err); got != tc.want {
			t.Errorf("%s: IsForeignKeyViolation(%v) = %v; want %v", tc.name, tc.err, got, tc.want)
		}
	}
}
