package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/events"
	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"gorm.io/gorm"
)

type enrollmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewEnrollmentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		ops:       NewServiceLogger(logger, LogConfig{Service: serviceName, Component: "enrollment"}),
	}
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, viewer *models.User, courseID uint) (bool, error) {
	return isEnrolled(ctx, s.repo, viewer, courseID)
}

func (s *enrollmentService) Enroll(ctx context.Context, viewer *models.User, courseID uint) (result *EnrollResult, err error) {
	op := s.ops.WithOperation(ctx, "enroll", viewerID(viewer))
	defer func() { op.LogResult(courseID, "course", err) }()

	if _, err = s.repo.Course().GetByID(ctx, nil, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	result = &EnrollResult{CourseID: courseID}
	if !viewer.IsAuthenticated() {
		return result, nil
	}

	enrolled, err := s.repo.Enrollment().Exists(ctx, nil, viewer.ID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrolled {
		result.Enrolled = true
		return result, nil
	}

	enrollment := &models.Enrollment{
		UserID:       viewer.ID,
		CourseID:     courseID,
		Mode:         models.EnrollmentModeHonor,
		DateEnrolled: time.Now().UTC(),
		Rating:       5,
	}

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Enrollment().Create(ctx, tx, enrollment); err != nil {
			return err
		}
		return s.repo.Course().IncrementEnrollment(ctx, tx, courseID)
	})
	if err != nil {
		// A concurrent request inserted the same (user, course) first
		if repositories.IsDuplicateKeyError(err) {
			result.Enrolled = true
			return result, nil
		}
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}

	result.Enrolled = true
	result.Created = true
	op.LogAudit(AuditEventCreate, enrollment.ID, "enrollment", nil, map[string]interface{}{
		"course_id":     courseID,
		"mode":          string(enrollment.Mode),
		"date_enrolled": enrollment.DateEnrolled,
	})

	publishEvent(ctx, s.publisher, s.logger, events.NewEnrollmentCreatedEvent(
		enrollment.ID, viewer.ID, courseID, string(enrollment.Mode), enrollment.DateEnrolled))

	return result, nil
}

// isEnrolled never touches the database for the anonymous viewer
func isEnrolled(ctx context.Context, repo repositories.Repository, viewer *models.User, courseID uint) (bool, error) {
	if !viewer.IsAuthenticated() {
		return false, nil
	}
	enrolled, err := repo.Enrollment().Exists(ctx, nil, viewer.ID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return enrolled, nil
}

func viewerID(viewer *models.User) uint {
	if viewer == nil {
		return 0
	}
	return viewer.ID
}
