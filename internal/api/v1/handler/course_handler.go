package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// CourseHandler handles catalog browsing and view recording
type CourseHandler struct {
	courseService service.CourseService
	logger        zerolog.Logger
}

func NewCourseHandler(courseService service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, logger: logger}
}

// RegisterRoutes mounts course routes. Browsing is public; recording a view
// requires a session.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/courses", http.HandlerFunc(h.listCourses))

	recordView := authMw(http.HandlerFunc(h.recordView))
	mux.Handle("/courses/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/view") {
			if r.Method != http.MethodPost {
				http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
				return
			}
			recordView.ServeHTTP(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getCourse(w, r)
	}))
}

// listCourses godoc
// @Summary List all courses
// @Description Returns the full course catalog.
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseListResponseDTO
// @Failure 500 {string} string "Failed to load courses"
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load catalog")
		http.Error(w, "Failed to load courses", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CourseListResponseDTO{Courses: courses})
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves a catalog record by its ID.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseDetailResponseDTO
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to load course"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	courseID := strings.TrimPrefix(r.URL.Path, "/courses/")
	if courseID == "" || strings.Contains(courseID, "/") {
		http.NotFound(w, r)
		return
	}
	course, err := h.courseService.GetCourse(r.Context(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			http.Error(w, "Course not found", http.StatusNotFound)
		default:
			h.logger.Error().Err(err).Msg("Failed to load catalog")
			http.Error(w, "Failed to load course", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CourseDetailResponseDTO{Course: *course})
}

// recordView godoc
// @Summary Record a course view
// @Description Upserts the (user, course) view event, bumping its timestamp.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.ViewRecordedResponseDTO
// @Failure 400 {string} string "Course ID is required"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to record course view"
// @Router /courses/{courseId}/view [post]
func (h *CourseHandler) recordView(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	courseID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/courses/"), "/view")
	if courseID == "" {
		http.Error(w, "Course ID is required", http.StatusBadRequest)
		return
	}

	if err := h.courseService.RecordView(r.Context(), userID, courseID); err != nil {
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to record course view")
		http.Error(w, "Failed to record course view", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.ViewRecordedResponseDTO{Success: true, Message: "Course view recorded"})
}
