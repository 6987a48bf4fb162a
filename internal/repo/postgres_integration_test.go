//go:build integration

package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/domain"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("clipqa_test"),
		postgres.WithUsername("clipqa"),
		postgres.WithPassword("clipqa_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func TestPostgres_SchemaConstraintsAndUniqueMapping(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	if !IsPostgres(db) {
		t.Fatalf("expected postgres dialector")
	}

	if _, err := CreateUser(ctx, db, "pg-user", "h", domain.RoleUser); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, err := CreateUser(ctx, db, "pg-user", "h", domain.RoleUser)
	if !IsUniqueViolation(err) {
		t.Fatalf("expected SQLSTATE 23505 to map to unique violation, got %v", err)
	}

	v, _ := CreateVideo(ctx, db, "pg", "https://cdn/pg.mp4", 30)
	bad := []domain.Clip{{ID: "00000000-0000-0000-0000-000000000001", VideoID: v.ID, StartTime: 0, EndTime: 5}}
	if err := CreateClips(ctx, db, bad); err == nil {
		t.Fatalf("expected clip length check violation")
	}
}

func TestPostgres_ConcurrentIncrementsAreNotLost(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	v, _ := CreateVideo(ctx, db, "race", "https://cdn/race.mp4", 10)
	clip := domain.Clip{ID: "00000000-0000-0000-0000-0000000000aa", VideoID: v.ID, StartTime: 0, EndTime: 10}
	if err := CreateClips(ctx, db, []domain.Clip{clip}); err != nil {
		t.Fatalf("CreateClips: %v", err)
	}

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = db.Transaction(func(tx *gorm.DB) error {
				c, err := PickClipAtServed(ctx, tx, 0, 0, true)
				if err != nil {
					c, err = PickLeastServedClip(ctx, tx, true)
					if err != nil {
						return err
					}
				}
				return IncrementServed(ctx, tx, c.ID)
			})
		}()
	}
	wg.Wait()

	got, err := GetClip(ctx, db, clip.ID)
	if err != nil {
		t.Fatalf("GetClip: %v", err)
	}
	if got.ServedCount != workers {
		t.Fatalf("expected served_count=%d, got %d", workers, got.ServedCount)
	}
}
