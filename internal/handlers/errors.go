package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/gin-gonic/gin"
)

// statusForError maps a service error onto an HTTP status and public message
func statusForError(err error) (int, string) {
	switch {
	case services.IsValidation(err):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, services.ErrCourseNotFound):
		return http.StatusNotFound, "Course not found"
	case errors.Is(err, services.ErrEnrollmentNotFound):
		return http.StatusNotFound, "Not enrolled in course"
	case errors.Is(err, services.ErrSubmissionNotFound):
		return http.StatusNotFound, "Submission not found"
	case services.IsNotFound(err):
		return http.StatusNotFound, "Resource not found"
	case services.IsConflict(err):
		return http.StatusConflict, err.Error()
	case services.IsUnauthorized(err):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// handleServiceError writes the JSON error response for err
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: services.ValidationErrors{*validationError},
		})
		return
	}

	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		h.RespondWithError(c, status, message, err)
		return
	}
	c.JSON(status, ErrorResponse{Message: message})
}

// renderServiceError renders the HTML error page for err
func (h *BaseHandler) renderServiceError(c *gin.Context, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		h.LogError(c, err, "Request failed", "status_code", status)
	}
	h.RenderPage(c, status, "error.html", gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": message,
	})
}
