package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// Keys stored on the gin context by the session middleware
const (
	ContextUserKey    = "user"
	ContextUserIDKey  = "user_id"
	ContextTokenKey   = "session_token"
	contextRequestKey = "request_id"
)

// currentUser returns the signed-in user, or nil for the anonymous viewer
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

func requestID(c *gin.Context) string {
	if id := c.GetString(contextRequestKey); id != "" {
		return id
	}
	return c.GetHeader(utils.RequestIDHeader)
}

func parseUintParam(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(param)), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIDParam writes a 400 JSON response and returns false on a malformed id
func parseIDParam(c *gin.Context, param string) (uint, bool) {
	id, err := parseUintParam(c, param)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: err.Error(),
		})
		return 0, false
	}
	return id, true
}

// bearerToken extracts the token from an "Authorization: Bearer" header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
