package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"app/internal/model"

	"github.com/rs/zerolog"
)

// RemoteClient talks to an external model service exposing POST /recommend.
// It is tried ahead of the in-process engine when configured; any failure
// falls back to the heuristic.
type RemoteClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

func NewRemoteClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *RemoteClient {
	return &RemoteClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("service", "RemoteRecommender").Logger(),
	}
}

type remoteRequest struct {
	UserID string `json:"userId"`
	TopK   int    `json:"topK"`
}

type remoteResponse struct {
	Recommendations []model.Course `json:"recommendations"`
}

// Recommend requests a ranked list from the model backend.
func (c *RemoteClient) Recommend(ctx context.Context, userID string, topK int) (*Result, error) {
	reqBody := remoteRequest{UserID: userID, TopK: topK}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	url := fmt.Sprintf("%s/recommend", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request to model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			c.logger.Warn().Err(readErr).Int("status_code", resp.StatusCode).Msg("Failed to read error body from model service")
			return nil, fmt.Errorf("model service returned status %d", resp.StatusCode)
		}
		errorMsg := string(bodyBytes)
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("error_body", errorMsg).
			Msg("Model service returned error")
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, errorMsg)
	}

	var remote remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		return nil, fmt.Errorf("decoding model service response: %w", err)
	}

	recs := make([]ScoredCourse, 0, len(remote.Recommendations))
	for _, course := range remote.Recommendations {
		recs = append(recs, ScoredCourse{Course: course})
	}
	return &Result{
		Recommendations: recs,
		Message:         "Recommendations from the model backend.",
		Debug: Debug{
			PreferredSubjects: []string{},
			PreferredLevels:   []string{},
			Algorithm:         AlgorithmRemote,
			ReturnedCourseIDs: courseIDs(recs),
		},
	}, nil
}
