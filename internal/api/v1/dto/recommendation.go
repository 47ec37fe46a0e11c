package dto

import "app/internal/recommender"

// RecommendationResponseDTO is the ranked list plus rationale and debug
// metadata.
type RecommendationResponseDTO struct {
	Recommendations []recommender.ScoredCourse `json:"recommendations"`
	Message         string                     `json:"message"`
	Debug           recommender.Debug          `json:"debug"`
}

// DebugProfileDTO summarizes the view history the scoring ran against.
type DebugProfileDTO struct {
	UserID            string   `json:"user_id"`
	ViewedCourses     int      `json:"viewed_courses"`
	ResolvedCourses   int      `json:"resolved_courses"`
	PreferredSubjects []string `json:"preferred_subjects"`
	PreferredLevels   []string `json:"preferred_levels"`
}

// ScoringWeightsDTO reports the multi-view scoring constants.
type ScoringWeightsDTO struct {
	SubjectWeight    float64 `json:"subject_weight"`
	LevelWeight      float64 `json:"level_weight"`
	PopularityWeight float64 `json:"popularity_weight"`
	RandomnessWeight float64 `json:"randomness_weight"`
}

// DebugRecommendationResponseDTO is the extended diagnostic view.
type DebugRecommendationResponseDTO struct {
	Success          bool                       `json:"success"`
	UserProfile      DebugProfileDTO            `json:"user_profile"`
	ScoringWeights   ScoringWeightsDTO          `json:"scoring_weights"`
	TopScoredCourses []recommender.ScoredCourse `json:"top_scored_courses"`
	Debug            recommender.Debug          `json:"debug"`
}
