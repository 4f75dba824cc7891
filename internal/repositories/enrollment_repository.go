package repositories

import (
	"context"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"gorm.io/gorm"
)

// EnrollmentRepository interface for the enrollment ledger
type EnrollmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error
	GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (*models.Enrollment, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, courseID uint) (bool, error)
	// GetEnrolledCourseIDs returns which of courseIDs the user is enrolled in.
	GetEnrolledCourseIDs(ctx context.Context, tx *gorm.DB, userID uint, courseIDs []uint) (map[uint]bool, error)
	CountByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error)
}

// SubmissionRepository interface for exam submissions
type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	// GetByIDWithDetails preloads the enrollment and the selected choices.
	GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	// ReplaceChoices makes choices the complete selected set of the submission.
	ReplaceChoices(ctx context.Context, tx *gorm.DB, submission *models.Submission, choices []models.Choice) error
}
