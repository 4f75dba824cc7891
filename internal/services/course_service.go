package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
)

type courseService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger) CourseService {
	return &courseService{
		repo:   repo,
		logger: logger,
	}
}

func (s *courseService) ListPopular(ctx context.Context, viewer *models.User) ([]*models.Course, error) {
	courses, err := s.repo.Course().List(ctx, nil, repositories.CourseFilters{
		Limit:     repositories.PopularCourseLimit,
		SortBy:    "total_enrollment",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if !viewer.IsAuthenticated() || len(courses) == 0 {
		return courses, nil
	}

	ids := make([]uint, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}

	enrolled, err := s.repo.Enrollment().GetEnrolledCourseIDs(ctx, nil, viewer.ID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}
	for _, course := range courses {
		course.IsEnrolled = enrolled[course.ID]
	}

	return courses, nil
}

func (s *courseService) GetDetail(ctx context.Context, viewer *models.User, courseID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByIDWithDetails(ctx, nil, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	course.IsEnrolled, err = isEnrolled(ctx, s.repo, viewer, courseID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Course detail loaded", "course_id", courseID, "questions", len(course.Questions))
	return course, nil
}
