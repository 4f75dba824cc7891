package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/cache"
	"github.com/SAP-F-2025/onlinecourse-service/internal/events"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"github.com/SAP-F-2025/onlinecourse-service/internal/validator"
)

const serviceName = "onlinecourse-service"

// Options carries the tunables the services read from configuration
type Options struct {
	JWTSecret      string
	SessionTTL     time.Duration
	PassingPercent int
}

// ServiceManager wires every service over one repository
type ServiceManager struct {
	Auth         AuthService
	Course       CourseService
	Enrollment   EnrollmentService
	Exam         ExamService
	ImportExport ImportExportService
	Sessions     *SessionManager
}

func NewServiceManager(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, opts Options) *ServiceManager {
	sessions := NewSessionManager(opts.JWTSecret, opts.SessionTTL, cacheService)
	exam := NewExamService(repo, publisher, logger, validator, opts.PassingPercent)

	return &ServiceManager{
		Auth:         NewAuthService(repo, sessions, publisher, logger, validator),
		Course:       NewCourseService(repo, logger),
		Enrollment:   NewEnrollmentService(repo, publisher, logger),
		Exam:         exam,
		ImportExport: NewImportExportService(repo, exam, logger, validator),
		Sessions:     sessions,
	}
}

// publishEvent runs after the write has committed; failures are only logged.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishEvent(ctx, event); err != nil {
		logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
	}
}
