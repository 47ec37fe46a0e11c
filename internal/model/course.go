package model

import "time"

// Course is a single catalog record loaded from the course CSV. The catalog
// is read-only; the numeric count fields are parsed leniently and default to
// zero when the source value is not a number.
type Course struct {
	ID              string `json:"course_id"`
	Title           string `json:"course_title"`
	IsPaid          string `json:"is_paid"`
	Price           string `json:"price"`
	NumSubscribers  int    `json:"num_subscribers"`
	NumReviews      int    `json:"num_reviews"`
	NumLectures     int    `json:"num_lectures"`
	Level           string `json:"level"`
	ContentDuration string `json:"content_duration"`
	PublishedAt     string `json:"published_timestamp"`
	Subject         string `json:"subject"`
}

// CourseView records that a user viewed a course. There is at most one row
// per (user, course) pair; a repeat view bumps ViewedAt instead of inserting.
type CourseView struct {
	UserID   string    `db:"user_id" json:"user_id"`
	CourseID string    `db:"course_id" json:"course_id"`
	ViewedAt time.Time `db:"viewed_at" json:"viewed_at"`
}
