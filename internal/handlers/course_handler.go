package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/SAP-F-2025/onlinecourse-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	BaseHandler
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
}

func NewCourseHandler(courseService services.CourseService, enrollmentService services.EnrollmentService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:       NewBaseHandler(logger),
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

func coursePath(courseID uint) string {
	return fmt.Sprintf("/onlinecourse/%d/", courseID)
}

// ===== HTML PAGES =====

// ListPage renders the most popular courses
func (h *CourseHandler) ListPage(c *gin.Context) {
	courses, err := h.courseService.ListPopular(c.Request.Context(), currentUser(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	h.RenderPage(c, http.StatusOK, "course_list.html", gin.H{"courses": courses})
}

// DetailPage renders a course with its lessons and exam form
func (h *CourseHandler) DetailPage(c *gin.Context) {
	courseID, err := parseUintParam(c, "course_id")
	if err != nil {
		h.renderServiceError(c, services.ErrCourseNotFound)
		return
	}

	course, err := h.courseService.GetDetail(c.Request.Context(), currentUser(c), courseID)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	h.RenderPage(c, http.StatusOK, "course_detail.html", gin.H{
		"title":  course.Name,
		"course": course,
	})
}

// Enroll enrolls the viewer and redirects to the course page.
// Anonymous viewers are redirected without an enrollment.
func (h *CourseHandler) Enroll(c *gin.Context) {
	courseID, err := parseUintParam(c, "course_id")
	if err != nil {
		h.renderServiceError(c, services.ErrCourseNotFound)
		return
	}

	result, err := h.enrollmentService.Enroll(c.Request.Context(), currentUser(c), courseID)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	h.LogDebug(c, "Enrollment resolved", "course_id", courseID, "enrolled", result.Enrolled, "created", result.Created)
	c.Redirect(http.StatusFound, coursePath(courseID))
}

// ===== JSON API =====

// APIList returns the most popular courses
// @Summary List popular courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Router /courses [get]
func (h *CourseHandler) APIList(c *gin.Context) {
	courses, err := h.courseService.ListPopular(c.Request.Context(), currentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// APIGet returns a course with lessons, questions and choices
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) APIGet(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetDetail(c.Request.Context(), currentUser(c), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// APIEnroll enrolls the authenticated user in a course
// @Summary Enroll in course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} SuccessResponse{data=services.EnrollResult}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) APIEnroll(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.enrollmentService.Enroll(c.Request.Context(), currentUser(c), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	h.RespondWithSuccess(c, status, "Enrolled in course", result, "course_id", courseID)
}
