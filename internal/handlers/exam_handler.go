package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/SAP-F-2025/onlinecourse-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExamHandler struct {
	BaseHandler
	examService         services.ExamService
	importExportService services.ImportExportService
}

func NewExamHandler(examService services.ExamService, importExportService services.ImportExportService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler:         NewBaseHandler(logger),
		examService:         examService,
		importExportService: importExportService,
	}
}

func resultPath(courseID, submissionID uint) string {
	return fmt.Sprintf("/onlinecourse/course/%d/submission/%d/result", courseID, submissionID)
}

// parseResultParams reads the course and submission ids of a result URL.
// Malformed ids are treated as a missing submission.
func parseResultParams(c *gin.Context, courseParam string) (uint, uint, error) {
	courseID, err := parseUintParam(c, courseParam)
	if err != nil {
		return 0, 0, services.ErrCourseNotFound
	}
	submissionID, err := parseUintParam(c, "submission_id")
	if err != nil {
		return 0, 0, services.ErrSubmissionNotFound
	}
	return courseID, submissionID, nil
}

// ===== HTML PAGES =====

// Submit records the exam form and redirects to its result page
func (h *ExamHandler) Submit(c *gin.Context) {
	courseID, err := parseUintParam(c, "course_id")
	if err != nil {
		h.renderServiceError(c, services.ErrCourseNotFound)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		h.renderServiceError(c, services.NewValidationError("form", err.Error(), nil))
		return
	}
	choiceIDs, err := h.examService.ExtractAnswers(c.Request.PostForm)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	submissionID, err := h.examService.Submit(c.Request.Context(), currentUser(c), courseID, choiceIDs)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.LogInfo(c, "Exam submitted", "course_id", courseID, "submission_id", submissionID, "choices", len(choiceIDs))
	c.Redirect(http.StatusFound, resultPath(courseID, submissionID))
}

// ResultPage renders the graded view of a submission
func (h *ExamHandler) ResultPage(c *gin.Context) {
	courseID, submissionID, err := parseResultParams(c, "course_id")
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	result, err := h.examService.GetResult(c.Request.Context(), currentUser(c), courseID, submissionID)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	h.RenderPage(c, http.StatusOK, "exam_result.html", gin.H{
		"title":  result.Course.Name,
		"result": result,
	})
}

// ExportResult streams the graded submission as an Excel workbook
func (h *ExamHandler) ExportResult(c *gin.Context) {
	courseID, submissionID, err := parseResultParams(c, "course_id")
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	data, err := h.importExportService.ExportResultToExcel(c.Request.Context(), currentUser(c), courseID, submissionID)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("course_%d_submission_%d_result.xlsx", courseID, submissionID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ===== JSON API =====

// APISubmit records an exam submission
// @Summary Submit exam
// @Tags exams
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param submission body services.SubmitRequest true "Selected choices"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id}/submissions [post]
func (h *ExamHandler) APISubmit(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	submissionID, err := h.examService.Submit(c.Request.Context(), currentUser(c), courseID, req.ChoiceIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Submission recorded", gin.H{
		"submission_id": submissionID,
		"result_url":    fmt.Sprintf("/api/v1/courses/%d/submissions/%d/result", courseID, submissionID),
	}, "course_id", courseID, "submission_id", submissionID)
}

// APIResult returns the graded view of a submission
// @Summary Get exam result
// @Tags exams
// @Produce json
// @Param id path int true "Course ID"
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} services.ExamResult
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id}/submissions/{submission_id}/result [get]
func (h *ExamHandler) APIResult(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(c, "submission_id")
	if !ok {
		return
	}

	result, err := h.examService.GetResult(c.Request.Context(), currentUser(c), courseID, submissionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
