package dto

import "app/internal/model"

// CourseListResponseDTO wraps the full catalog listing.
type CourseListResponseDTO struct {
	Courses []model.Course `json:"courses"`
}

// CourseDetailResponseDTO wraps a single catalog record.
type CourseDetailResponseDTO struct {
	Course model.Course `json:"course"`
}

// ViewRecordedResponseDTO acknowledges a recorded course view.
type ViewRecordedResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
