package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// defaultTopK is how many recommendations a request gets when it does not
// ask for a specific count.
const defaultTopK = 12

// RecommendationHandler serves personalized course suggestions
type RecommendationHandler struct {
	recService service.RecommendationService
	logger     zerolog.Logger
}

func NewRecommendationHandler(recService service.RecommendationService, logger zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{recService: recService, logger: logger}
}

// RegisterRoutes mounts recommendation routes; all of them need a session.
func (h *RecommendationHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/recommendations", authMw(http.HandlerFunc(h.getRecommendations)))
	mux.Handle("/recommendations/debug", authMw(http.HandlerFunc(h.debugRecommendations)))
}

// getRecommendations godoc
// @Summary Get personalized recommendations
// @Description Ranks catalog courses against the user's recent view history.
// @Tags recommendations
// @Produce json
// @Param topK query int false "Number of recommendations (default 12)"
// @Success 200 {object} dto.RecommendationResponseDTO
// @Failure 400 {string} string "topK must be a positive integer"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to get recommendations"
// @Router /recommendations [get]
func (h *RecommendationHandler) getRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	topK := defaultTopK
	if s := r.URL.Query().Get("topK"); s != "" {
		k, err := strconv.Atoi(s)
		if err != nil || k < 1 {
			http.Error(w, "topK must be a positive integer", http.StatusBadRequest)
			return
		}
		topK = k
	}

	res, err := h.recService.Recommend(r.Context(), userID, topK)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to get recommendations")
		http.Error(w, "Failed to get recommendations", http.StatusInternalServerError)
		return
	}

	resp := dto.RecommendationResponseDTO{
		Recommendations: res.Recommendations,
		Message:         res.Message,
		Debug:           res.Debug,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// debugRecommendations godoc
// @Summary Inspect recommendation scoring
// @Description Extended diagnostic view of the in-process scoring for the current user.
// @Tags recommendations
// @Produce json
// @Success 200 {object} dto.DebugRecommendationResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to debug recommendations"
// @Router /recommendations/debug [get]
func (h *RecommendationHandler) debugRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	res, err := h.recService.DebugRecommend(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to debug recommendations")
		http.Error(w, "Failed to debug recommendations", http.StatusInternalServerError)
		return
	}

	resp := dto.DebugRecommendationResponseDTO{
		Success: true,
		UserProfile: dto.DebugProfileDTO{
			UserID:            userID,
			ViewedCourses:     res.Debug.ViewedCourses,
			ResolvedCourses:   res.Debug.ResolvedCourses,
			PreferredSubjects: res.Debug.PreferredSubjects,
			PreferredLevels:   res.Debug.PreferredLevels,
		},
		ScoringWeights: dto.ScoringWeightsDTO{
			SubjectWeight:    200,
			LevelWeight:      50,
			PopularityWeight: 5,
			RandomnessWeight: 2,
		},
		TopScoredCourses: res.Recommendations,
		Debug:            res.Debug,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
