package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/SAP-F-2025/onlinecourse-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie written by the HTML pages
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (cfg CookieConfig) set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}

func (cfg CookieConfig) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, "", -1, "/", "", cfg.Secure, true)
}

// RequestContext copies request metadata into the request context so the
// service loggers can attach it to audit and security events.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, services.RequestIDKey, requestID(c))
		ctx = context.WithValue(ctx, services.ClientIPKey, c.ClientIP())
		ctx = context.WithValue(ctx, services.UserAgentKey, c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SessionMiddleware resolves the bearer token or session cookie to a user.
// Requests without a valid session continue as the anonymous viewer.
func SessionMiddleware(authService services.AuthService, cookie CookieConfig, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		fromCookie := false
		if token == "" {
			if value, err := c.Cookie(cookie.Name); err == nil && value != "" {
				token, fromCookie = value, true
			}
		}
		if token == "" {
			c.Next()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("Ignoring session token", "error", err, "request_id", requestID(c))
			if fromCookie && services.IsUnauthorized(err) {
				cookie.clear(c)
			}
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// RequireAuth rejects anonymous API requests with 401
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}
		c.Next()
	}
}
