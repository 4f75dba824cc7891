package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/onlinecourse-service/internal/events"
	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"github.com/SAP-F-2025/onlinecourse-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	sessions  *SessionManager
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewAuthService(repo repositories.Repository, sessions *SessionManager, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		sessions:  sessions,
		publisher: publisher,
		validator: validator,
		logger:    logger,
		ops:       NewServiceLogger(logger, LogConfig{Service: serviceName, Component: "auth"}),
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (result *AuthResult, err error) {
	op := s.ops.WithOperation(ctx, "register", 0)
	defer func() {
		var userID uint
		if result != nil {
			userID = result.User.ID
		}
		op.LogResult(userID, "user", err)
	}()

	req.Username = strings.TrimSpace(req.Username)
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.User().ExistsByUsername(ctx, nil, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err = user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.repo.User().Create(ctx, nil, user); err != nil {
		// Lost a race with a concurrent registration of the same name
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	op.LogAudit(AuditEventCreate, user.ID, "user", nil, map[string]interface{}{"username": user.Username})
	publishEvent(ctx, s.publisher, s.logger, events.NewUserRegisteredEvent(user.ID, user.Username))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (result *AuthResult, err error) {
	op := s.ops.WithOperation(ctx, "login", 0)
	defer func() {
		if IsUnauthorized(err) {
			op.LogSecurity(SecurityEventLoginFailed, SecuritySeverityLow, "login failed",
				map[string]interface{}{"username": req.Username})
		}
	}()

	req.Username = strings.TrimSpace(req.Username)
	if err = s.validator.Validate(req); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.User().GetByUsername(ctx, nil, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err = user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return s.issue(user)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return err
	}
	s.logger.Debug("Session revoked")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (user *models.User, err error) {
	op := s.ops.WithOperation(ctx, "authenticate", 0)
	defer func() {
		if !IsUnauthorized(err) {
			return
		}
		// Replaying a logged-out session is more suspicious than an expired one
		severity := SecuritySeverityLow
		if errors.Is(err, ErrSessionRevoked) {
			severity = SecuritySeverityMedium
		}
		op.LogSecurity(SecurityEventInvalidToken, severity, "session token rejected",
			map[string]interface{}{"reason": err.Error()})
	}()

	claims, err := s.sessions.Parse(ctx, token)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err = s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.sessions.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
