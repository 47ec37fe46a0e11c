package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"app/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// openTestDB connects to the database named by TEST_DATABASE_URL, or skips
// the test when it is not set.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skip database integration test")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("failed to ping test DB: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *sql.DB) *model.User {
	t.Helper()
	u := &model.User{Name: "Test User", Email: "view-repo-test@example.com", PasswordHash: "x"}
	if err := NewUserRepo(db).CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM course_views WHERE user_id = $1`, u.UserID)
		db.Exec(`DELETE FROM users WHERE id = $1`, u.UserID)
	})
	return u
}

func TestRecordViewUpsertIdempotence(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	ctx := context.Background()
	u := createTestUser(t, db)
	repo := NewViewRepo(db)

	if err := repo.RecordView(ctx, u.UserID, "1001"); err != nil {
		t.Fatalf("first RecordView returned error: %v", err)
	}
	views, err := repo.RecentViews(ctx, u.UserID, 10)
	if err != nil {
		t.Fatalf("RecentViews returned error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	firstViewedAt := views[0].ViewedAt

	if err := repo.RecordView(ctx, u.UserID, "1001"); err != nil {
		t.Fatalf("second RecordView returned error: %v", err)
	}
	views, err = repo.RecentViews(ctx, u.UserID, 10)
	if err != nil {
		t.Fatalf("RecentViews returned error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("repeat view must not create a second row, got %d rows", len(views))
	}
	if views[0].ViewedAt.Before(firstViewedAt) {
		t.Error("viewed_at should move forward on repeat view")
	}
}

func TestRecentViewsOrderAndLimit(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	ctx := context.Background()
	u := createTestUser(t, db)
	repo := NewViewRepo(db)

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.RecordView(ctx, u.UserID, id); err != nil {
			t.Fatalf("RecordView(%s) returned error: %v", id, err)
		}
	}

	views, err := repo.RecentViews(ctx, u.UserID, 2)
	if err != nil {
		t.Fatalf("RecentViews returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected limit of 2 to be honored, got %d", len(views))
	}
	if views[0].ViewedAt.Before(views[1].ViewedAt) {
		t.Error("views should be ordered most recent first")
	}
}
