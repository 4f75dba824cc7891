package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repository groups the per-aggregate repositories and owns transactions.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository
	Question() QuestionRepository
	Submission() SubmissionRepository

	// WithTransaction runs fn inside one database transaction. fn receives the
	// transaction handle to pass to repository calls.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "total_enrollment", "name", "pub_date"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// PopularCourseLimit is the size of the course list page.
const PopularCourseLimit = 10
