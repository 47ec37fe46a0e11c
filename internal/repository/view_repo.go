package repository

import (
	"context"
	"database/sql"

	"app/internal/model"
)

// ViewRepository is the append-and-query log of course view events.
type ViewRepository interface {
	// RecordView upserts the (user, course) view row, bumping viewed_at.
	RecordView(ctx context.Context, userID, courseID string) error
	// RecentViews returns the user's view events, most recent first.
	RecentViews(ctx context.Context, userID string, limit int) ([]model.CourseView, error)
}

type viewRepo struct {
	db *sql.DB
}

func NewViewRepo(db *sql.DB) ViewRepository {
	return &viewRepo{db: db}
}

// RecordView relies on the database for atomicity: concurrent views of the
// same course by the same user must not create duplicate rows.
func (r *viewRepo) RecordView(ctx context.Context, userID, courseID string) error {
	query := `
		INSERT INTO course_views (user_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, course_id) DO UPDATE SET viewed_at = now()
	`
	_, err := r.db.ExecContext(ctx, query, userID, courseID)
	return err
}

func (r *viewRepo) RecentViews(ctx context.Context, userID string, limit int) ([]model.CourseView, error) {
	query := `
		SELECT user_id, course_id, viewed_at
		FROM course_views
		WHERE user_id = $1
		ORDER BY viewed_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []model.CourseView
	for rows.Next() {
		var v model.CourseView
		if err := rows.Scan(&v.UserID, &v.CourseID, &v.ViewedAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	// If no views found, return an empty slice, not nil
	if len(views) == 0 {
		return []model.CourseView{}, nil
	}
	return views, nil
}
