package service

import (
	"context"

	"app/internal/catalog"
	"app/internal/recommender"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// recentViewWindow is how many view events feed the scoring engine.
const recentViewWindow = 10

// RecommendationService produces ranked course suggestions for a user.
type RecommendationService interface {
	// Recommend tries the remote model backend when configured and falls
	// back to the in-process scoring engine.
	Recommend(ctx context.Context, userID string, topK int) (*recommender.Result, error)
	// DebugRecommend always runs the in-process engine so the debug block
	// reflects the local scoring, with a fixed wide cut of 20.
	DebugRecommend(ctx context.Context, userID string) (*recommender.Result, error)
}

type recommendationService struct {
	viewRepo repository.ViewRepository
	source   catalog.Source
	remote   *recommender.RemoteClient // nil when no backend is configured
	logger   zerolog.Logger
}

func NewRecommendationService(viewRepo repository.ViewRepository, source catalog.Source, remote *recommender.RemoteClient, logger zerolog.Logger) RecommendationService {
	return &recommendationService{
		viewRepo: viewRepo,
		source:   source,
		remote:   remote,
		logger:   logger.With().Str("service", "RecommendationService").Logger(),
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userID string, topK int) (*recommender.Result, error) {
	if s.remote != nil {
		res, err := s.remote.Recommend(ctx, userID, topK)
		if err == nil {
			return res, nil
		}
		s.logger.Warn().Err(err).Msg("Model backend unavailable, using scoring engine")
	}
	return s.heuristic(ctx, userID, topK)
}

func (s *recommendationService) DebugRecommend(ctx context.Context, userID string) (*recommender.Result, error) {
	return s.heuristic(ctx, userID, 20)
}

func (s *recommendationService) heuristic(ctx context.Context, userID string, topK int) (*recommender.Result, error) {
	views, err := s.viewRepo.RecentViews(ctx, userID, recentViewWindow)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(ctx, s.source)
	if err != nil {
		return nil, err
	}
	return recommender.Recommend(views, cat.All(), topK), nil
}
