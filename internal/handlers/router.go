package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/SAP-F-2025/onlinecourse-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authHandler   *AuthHandler
	courseHandler *CourseHandler
	examHandler   *ExamHandler
	authService   services.AuthService
	cookie        CookieConfig
	logger        utils.Logger
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	cookie CookieConfig,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:   NewAuthHandler(serviceManager.Auth, cookie, logger),
		courseHandler: NewCourseHandler(serviceManager.Course, serviceManager.Enrollment, logger),
		examHandler:   NewExamHandler(serviceManager.Exam, serviceManager.ImportExport, logger),
		authService:   serviceManager.Auth,
		cookie:        cookie,
		logger:        logger,
	}
}

// SetupRoutes sets up the HTML pages, the JSON API and the health check.
// The router must already have its HTML templates loaded.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, indexPath)
	})

	router.Use(RequestContext(), SessionMiddleware(hm.authService, hm.cookie, hm.logger))

	// Server-rendered pages
	site := router.Group("/onlinecourse")
	{
		site.GET("/", hm.courseHandler.ListPage)
		site.GET("/registration", hm.authHandler.RegistrationPage)
		site.POST("/registration", hm.authHandler.Register)
		site.GET("/login", hm.authHandler.LoginPage)
		site.POST("/login", hm.authHandler.Login)
		site.GET("/logout", hm.authHandler.Logout)

		site.GET("/:course_id/", hm.courseHandler.DetailPage)
		site.POST("/:course_id/enroll", hm.courseHandler.Enroll)
		site.POST("/:course_id/submit", hm.examHandler.Submit)

		site.GET("/course/:course_id/submission/:submission_id/result", hm.examHandler.ResultPage)
		site.GET("/course/:course_id/submission/:submission_id/result.xlsx", hm.examHandler.ExportResult)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.APIRegister)
			auth.POST("/login", hm.authHandler.APILogin)
			auth.POST("/logout", RequireAuth(), hm.authHandler.APILogout)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", hm.courseHandler.APIList)
			courses.GET("/:id", hm.courseHandler.APIGet)
			courses.POST("/:id/enroll", RequireAuth(), hm.courseHandler.APIEnroll)
			courses.POST("/:id/submissions", RequireAuth(), hm.examHandler.APISubmit)
			courses.GET("/:id/submissions/:submission_id/result", RequireAuth(), hm.examHandler.APIResult)
		}
	}
}

// HealthCheck reports that the process is serving requests
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "onlinecourse-service",
	})
}
