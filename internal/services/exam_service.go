package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/SAP-F-2025/onlinecourse-service/internal/events"
	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"github.com/SAP-F-2025/onlinecourse-service/internal/validator"
	"gorm.io/gorm"
)

type examService struct {
	repo           repositories.Repository
	publisher      events.EventPublisher
	validator      *validator.Validator
	passingPercent int
	logger         *slog.Logger
	ops            *ServiceLogger
}

func NewExamService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, passingPercent int) ExamService {
	return &examService{
		repo:           repo,
		publisher:      publisher,
		validator:      validator,
		passingPercent: passingPercent,
		logger:         logger,
		ops:            NewServiceLogger(logger, LogConfig{Service: serviceName, Component: "exam"}),
	}
}

func (s *examService) ExtractAnswers(form url.Values) ([]uint, error) {
	return ExtractAnswers(form)
}

func (s *examService) Submit(ctx context.Context, viewer *models.User, courseID uint, choiceIDs []uint) (submissionID uint, err error) {
	op := s.ops.WithOperation(ctx, "submit_exam", viewerID(viewer))
	defer func() { op.LogResult(submissionID, "submission", err) }()

	if err = s.validator.Validate(&SubmitRequest{ChoiceIDs: choiceIDs}); err != nil {
		return 0, err
	}

	if _, err = s.repo.Course().GetByID(ctx, nil, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, ErrCourseNotFound
		}
		return 0, fmt.Errorf("failed to get course: %w", err)
	}

	if !viewer.IsAuthenticated() {
		return 0, fmt.Errorf("%w: anonymous viewer for course %d", ErrEnrollmentNotFound, courseID)
	}

	enrollment, err := s.repo.Enrollment().GetByUserAndCourse(ctx, nil, viewer.ID, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, fmt.Errorf("%w: user %d course %d", ErrEnrollmentNotFound, viewer.ID, courseID)
		}
		return 0, fmt.Errorf("failed to get enrollment: %w", err)
	}

	ids := dedupeIDs(choiceIDs)
	submission := &models.Submission{EnrollmentID: enrollment.ID}

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Submission().Create(ctx, tx, submission); err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}

		// Unknown ids are absent from the lookup and therefore dropped
		choices, err := s.repo.Question().GetChoicesByIDs(ctx, tx, ids)
		if err != nil {
			return fmt.Errorf("failed to resolve choices: %w", err)
		}

		return s.repo.Submission().ReplaceChoices(ctx, tx, submission, choices)
	})
	if err != nil {
		return 0, err
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewSubmissionCreatedEvent(
		submission.ID, enrollment.ID, viewer.ID, courseID, submission.SelectedChoiceIDs()))

	return submission.ID, nil
}

func (s *examService) GetResult(ctx context.Context, viewer *models.User, courseID, submissionID uint) (*ExamResult, error) {
	course, err := s.repo.Course().GetByIDWithDetails(ctx, nil, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if !viewer.IsAuthenticated() {
		return nil, ErrSubmissionNotFound
	}

	submission, err := s.repo.Submission().GetByIDWithDetails(ctx, nil, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	// Other users' submissions and other courses' submissions look absent
	if submission.Enrollment.CourseID != courseID || submission.Enrollment.UserID != viewer.ID {
		return nil, ErrSubmissionNotFound
	}

	course.IsEnrolled = true
	return ComputeResult(course, submission, s.passingPercent), nil
}
