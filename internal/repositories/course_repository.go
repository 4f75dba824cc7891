package repositories

import (
	"context"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"gorm.io/gorm"
)

// CourseRepository interface for the course catalog
type CourseRepository interface {
	// Create inserts the course together with its lessons, questions and choices.
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	// GetByIDWithDetails preloads lessons, questions and choices ordered by ID.
	GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	List(ctx context.Context, tx *gorm.DB, filters CourseFilters) ([]*models.Course, error)
	// IncrementEnrollment adds one to total_enrollment with a single UPDATE.
	IncrementEnrollment(ctx context.Context, tx *gorm.DB, id uint) error
}

// QuestionRepository interface for exam questions and choices
type QuestionRepository interface {
	// GetChoicesByIDs resolves choice IDs; unknown IDs are absent from the result.
	GetChoicesByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Choice, error)
}
