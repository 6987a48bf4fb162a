package repo

import (
	"context"
	"testing"
	"time"
)

func TestVideosStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t, false)
	if _, _, err := VideosStats(context.Background(), db); err == nil {
		t.Fatalf("expected error due to missing videos table")
	}
}

func TestVideosStats_ZeroRows(t *testing.T) {
	db := newTestDB(t, true)
	count, latest, err := VideosStats(context.Background(), db)
	if err != nil {
		t.Fatalf("VideosStats error: %v", err)
	}
	if count != 0 || latest != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, latest)
	}
}

func TestVideosStats_Success_Max(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, true)

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	a, _ := CreateVideo(ctx, db, "a", "u", 10)
	b, _ := CreateVideo(ctx, db, "b", "u", 10)
	db.Exec("UPDATE videos SET uploaded_at = ? WHERE id = ?", t1, a.ID)
	db.Exec("UPDATE videos SET uploaded_at = ? WHERE id = ?", t2, b.ID)

	count, latest, err := VideosStats(ctx, db)
	if err != nil {
		t.Fatalf("VideosStats error: %v", err)
	}
	if count != 2 || latest == nil || !latest.Equal(t2) {
		t.Fatalf("expected (2, %v), got (%d, %v)", t2, count, latest)
	}
}

// Force the second query to fail by renaming the column it selects.
func TestVideosStats_SelectLatest_ErrorPath(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, true)
	_, _ = CreateVideo(ctx, db, "a", "u", 10)

	if err := db.Exec(`ALTER TABLE videos RENAME COLUMN uploaded_at TO uploaded_at_old`).Error; err != nil {
		t.Fatalf("rename column: %v", err)
	}
	if _, _, err := VideosStats(ctx, db); err == nil {
		t.Fatalf("expected error from latest-uploaded select after column rename")
	}
}
