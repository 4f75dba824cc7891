package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/SAP-F-2025/onlinecourse-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const indexPath = "/onlinecourse/"

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService services.AuthService, cookie CookieConfig, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		cookie:      cookie,
	}
}

// ===== HTML PAGES =====

// RegistrationPage renders the sign-up form
func (h *AuthHandler) RegistrationPage(c *gin.Context) {
	h.RenderPage(c, http.StatusOK, "registration.html", gin.H{"title": "Sign Up"})
}

// Register creates the account from the sign-up form and signs the user in.
// A taken username re-renders the form with the submitted values.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderServiceError(c, services.NewValidationError("form", err.Error(), nil))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		data := gin.H{"title": "Sign Up", "form": req}
		var validationErrors services.ValidationErrors
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			data["message"] = services.ErrUserAlreadyExists.Error()
		case errors.As(err, &validationErrors):
			data["errors"] = validationErrors
		default:
			h.renderServiceError(c, err)
			return
		}
		h.RenderPage(c, http.StatusOK, "registration.html", data)
		return
	}

	h.cookie.set(c, result.Token)
	h.LogInfo(c, "User registered", "username", result.User.Username)
	c.Redirect(http.StatusFound, indexPath)
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.RenderPage(c, http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderServiceError(c, services.NewValidationError("form", err.Error(), nil))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.RenderPage(c, http.StatusOK, "login.html", gin.H{
				"title":   "Login",
				"message": services.ErrInvalidCredentials.Error(),
				"form":    gin.H{"Username": req.Username},
			})
			return
		}
		h.renderServiceError(c, err)
		return
	}

	h.cookie.set(c, result.Token)
	c.Redirect(http.StatusFound, indexPath)
}

// Logout revokes the session cookie and returns to the course list
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.LogError(c, err, "Failed to revoke session")
		}
	}
	h.cookie.clear(c)
	c.Redirect(http.StatusFound, indexPath)
}

// ===== JSON API =====

// APIRegister creates an account and returns a bearer token
// @Summary Register user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterRequest true "Account data"
// @Success 201 {object} SuccessResponse{data=services.AuthResult}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) APIRegister(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "User registered", result, "username", result.User.Username)
}

// APILogin exchanges credentials for a bearer token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} SuccessResponse{data=services.AuthResult}
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) APILogin(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Logged in", result)
}

// APILogout revokes the bearer token of the request
func (h *AuthHandler) APILogout(c *gin.Context) {
	token := c.GetString(ContextTokenKey)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Logged out", nil)
}
