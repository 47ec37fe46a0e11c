package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"app/internal/catalog"
	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseService exposes the read-only catalog and view recording.
type CourseService interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, courseID string) (*model.Course, error)
	// RecordView upserts the view event and, when analytics are enabled,
	// publishes it best-effort.
	RecordView(ctx context.Context, userID, courseID string) error
}

type courseService struct {
	source    catalog.Source
	viewRepo  repository.ViewRepository
	publisher pubsub.Publisher // nil when analytics are disabled
	viewTopic string
	logger    zerolog.Logger
}

func NewCourseService(source catalog.Source, viewRepo repository.ViewRepository, publisher pubsub.Publisher, viewTopic string, logger zerolog.Logger) CourseService {
	return &courseService{
		source:    source,
		viewRepo:  viewRepo,
		publisher: publisher,
		viewTopic: viewTopic,
		logger:    logger.With().Str("service", "CourseService").Logger(),
	}
}

// ListCourses re-reads the catalog on every call; there is no cross-request
// cache to invalidate.
func (s *courseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	cat, err := catalog.Load(ctx, s.source)
	if err != nil {
		return nil, err
	}
	return cat.All(), nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*model.Course, error) {
	cat, err := catalog.Load(ctx, s.source)
	if err != nil {
		return nil, err
	}
	c, ok := cat.ByID(courseID)
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &c, nil
}

func (s *courseService) RecordView(ctx context.Context, userID, courseID string) error {
	if err := s.viewRepo.RecordView(ctx, userID, courseID); err != nil {
		return err
	}

	// The view row is committed; analytics publishing failures are logged
	// and swallowed so they never fail the request.
	if s.publisher != nil && s.viewTopic != "" {
		event := model.CourseView{UserID: userID, CourseID: courseID, ViewedAt: time.Now()}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to marshal view event")
			return nil
		}
		if _, err := s.publisher.Publish(ctx, s.viewTopic, payload); err != nil {
			s.logger.Warn().Err(err).Str("course_id", courseID).Msg("Failed to publish view event")
		}
	}
	return nil
}
