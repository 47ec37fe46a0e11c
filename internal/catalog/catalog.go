package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"app/internal/model"
)

// Source provides the raw catalog CSV. The catalog is loaded fresh on every
// call; there is no cross-request cache.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// Catalog is the parsed, read-only course table for a single request.
type Catalog struct {
	courses []model.Course
	byID    map[string]model.Course
}

// All returns every course in file order.
func (c *Catalog) All() []model.Course {
	return c.courses
}

// ByID looks up a course by its id.
func (c *Catalog) ByID(id string) (model.Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// Load fetches the CSV from the source and parses it.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	rc, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer rc.Close()
	return Parse(rc)
}

// Parse reads header-keyed CSV course records. Unknown columns are ignored
// and numeric fields that fail to parse are treated as zero.
func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var courses []model.Course
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog record: %w", err)
		}
		courses = append(courses, model.Course{
			ID:              field(record, "course_id"),
			Title:           field(record, "course_title"),
			IsPaid:          field(record, "is_paid"),
			Price:           field(record, "price"),
			NumSubscribers:  atoiOrZero(field(record, "num_subscribers")),
			NumReviews:      atoiOrZero(field(record, "num_reviews")),
			NumLectures:     atoiOrZero(field(record, "num_lectures")),
			Level:           field(record, "level"),
			ContentDuration: field(record, "content_duration"),
			PublishedAt:     field(record, "published_timestamp"),
			Subject:         field(record, "subject"),
		})
	}

	byID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	return &Catalog{courses: courses, byID: byID}, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
