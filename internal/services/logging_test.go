package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/cache"
	"github.com/SAP-F-2025/onlinecourse-service/internal/events"
	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// logLines decodes every JSON record written to buf
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func findLine(lines []map[string]interface{}, key, value string) map[string]interface{} {
	for _, line := range lines {
		if line[key] == value {
			return line
		}
	}
	return nil
}

func TestLogAudit_RedactsCredentials(t *testing.T) {
	logger, buf := newBufferLogger()
	ops := NewServiceLogger(logger, LogConfig{Service: serviceName, Component: "test"})

	op := ops.WithOperation(context.Background(), "register", 0)
	op.LogAudit(AuditEventCreate, 7, "user", nil, map[string]interface{}{
		"username": "alice",
		"password": "hunter2",
		"profile":  map[string]interface{}{"psw": "hunter2", "first_name": "Alice"},
	})

	line := findLine(logLines(t, buf), "event_type", "create")
	require.NotNil(t, line)

	newValue := line["new_value"].(map[string]interface{})
	assert.Equal(t, "alice", newValue["username"])
	assert.Equal(t, "[REDACTED]", newValue["password"])
	profile := newValue["profile"].(map[string]interface{})
	assert.Equal(t, "[REDACTED]", profile["psw"])
	assert.Equal(t, "Alice", profile["first_name"])
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestLogSecurity_RedactsMetadata(t *testing.T) {
	logger, buf := newBufferLogger()
	ops := NewServiceLogger(logger, LogConfig{Service: serviceName, Component: "test"})

	ctx := context.WithValue(context.Background(), ClientIPKey, "10.0.0.1")
	op := ops.WithOperation(ctx, "login", 0)
	op.LogSecurity(SecurityEventLoginFailed, SecuritySeverityLow, "login failed", map[string]interface{}{
		"username":      "bob",
		"session_token": "eyJhbGciOi",
	})

	line := findLine(logLines(t, buf), "security_event", "login_failed")
	require.NotNil(t, line)
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "bob", line["meta_username"])
	assert.Equal(t, "[REDACTED]", line["meta_session_token"])
	assert.Equal(t, "10.0.0.1", line["ip_address"])
	assert.NotContains(t, buf.String(), "eyJhbGciOi")
}

func TestSanitizeForLogging_PassesThroughNonMaps(t *testing.T) {
	assert.Equal(t, 42, SanitizeForLogging(42))
	assert.Equal(t, "plain", SanitizeForLogging("plain"))

	sanitized := SanitizeForLogging([]interface{}{
		map[string]interface{}{"Authorization": "Bearer abc"},
		"keep",
	}).([]interface{})
	assert.Equal(t, "[REDACTED]", sanitized[0].(map[string]interface{})["Authorization"])
	assert.Equal(t, "keep", sanitized[1])
}

func TestFormatError(t *testing.T) {
	assert.Nil(t, FormatError(nil))

	validation := FormatError(ValidationErrors{
		{Field: "username", Message: "required"},
		{Field: "password", Message: "required"},
	})
	assert.Equal(t, "validation", validation["type"])
	assert.Equal(t, 2, validation["count"])
	assert.Equal(t, []string{"username", "password"}, validation["fields"])

	single := FormatError(NewValidationError("choice_1", "invalid choice", "x"))
	assert.Equal(t, "validation", single["type"])
	assert.Equal(t, []string{"choice_1"}, single["fields"])

	assert.Equal(t, "not_found", FormatError(fmt.Errorf("load: %w", ErrCourseNotFound))["type"])
	assert.Equal(t, "unauthorized", FormatError(ErrSessionRevoked)["type"])
	assert.Equal(t, "conflict", FormatError(ErrUserAlreadyExists)["type"])
	assert.Equal(t, "internal", FormatError(fmt.Errorf("boom"))["type"])
}

func TestLogResult_IncludesErrorDetails(t *testing.T) {
	logger, buf := newBufferLogger()
	ops := NewServiceLogger(logger, LogConfig{Service: serviceName, Component: "test"})

	ops.WithOperation(context.Background(), "get_course", 1).LogResult(9, "course", ErrCourseNotFound)

	line := findLine(logLines(t, buf), "operation", "get_course")
	require.NotNil(t, line)
	assert.Equal(t, "not_found", line["status"])
	assert.Equal(t, "INFO", line["level"])
	details := line["error_details"].(map[string]interface{})
	assert.Equal(t, "not_found", details["type"])
}

func TestAuthService_Authenticate_LogsRevokedToken(t *testing.T) {
	logger, buf := newBufferLogger()
	repo := newMockRepository()
	sessions := NewSessionManager("test-secret", time.Hour, cache.NewMemoryCache())
	svc := NewAuthService(repo, sessions, events.NewMockEventPublisher(testLogger()), logger, validator.New())
	ctx := context.Background()

	result, err := svc.Login(ctx, &LoginRequest{Username: "", Password: ""})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)

	token, _, err := sessions.Issue(&models.User{ID: 5, Username: "carol"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrSessionRevoked)

	lines := logLines(t, buf)
	failed := findLine(lines, "security_event", "login_failed")
	require.NotNil(t, failed)
	assert.Equal(t, "low", failed["severity"])

	rejected := findLine(lines, "security_event", "invalid_token")
	require.NotNil(t, rejected)
	assert.Equal(t, "medium", rejected["severity"])
	assert.NotContains(t, buf.String(), token)
}
