package services

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
)

// A nil *models.User is the anonymous viewer in every method below.

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResult, error)
	// Logout revokes the session token until it would have expired.
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token to its user.
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type CourseService interface {
	// ListPopular returns the top courses by enrollment count.
	ListPopular(ctx context.Context, viewer *models.User) ([]*models.Course, error)
	GetDetail(ctx context.Context, viewer *models.User, courseID uint) (*models.Course, error)
}

type EnrollmentService interface {
	IsEnrolled(ctx context.Context, viewer *models.User, courseID uint) (bool, error)
	Enroll(ctx context.Context, viewer *models.User, courseID uint) (*EnrollResult, error)
}

type ExamService interface {
	// ExtractAnswers reads the selected choice IDs from a submitted exam form.
	ExtractAnswers(form url.Values) ([]uint, error)
	Submit(ctx context.Context, viewer *models.User, courseID uint, choiceIDs []uint) (uint, error)
	GetResult(ctx context.Context, viewer *models.User, courseID, submissionID uint) (*ExamResult, error)
}

type ImportExportService interface {
	ImportCourseFromFile(ctx context.Context, reader io.Reader, filename string) (*models.Course, error)
	ExportResultToExcel(ctx context.Context, viewer *models.User, courseID, submissionID uint) ([]byte, error)
}

// ===== REQUEST TYPES =====

type RegisterRequest struct {
	Username  string `form:"username" json:"username" validate:"required,min=1,max=150,username"`
	Password  string `form:"psw" json:"password" validate:"required,min=1,max=128"`
	FirstName string `form:"firstname" json:"first_name" validate:"max=150"`
	LastName  string `form:"lastname" json:"last_name" validate:"max=150"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required,max=150"`
	Password string `form:"psw" json:"password" validate:"required"`
}

type SubmitRequest struct {
	ChoiceIDs []uint `json:"choice_ids" validate:"dive,gt=0"`
}

// ===== RESPONSE TYPES =====

type AuthResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type EnrollResult struct {
	CourseID uint `json:"course_id"`
	Enrolled bool `json:"enrolled"`
	// Created is true only when this call inserted the enrollment.
	Created bool `json:"created"`
}

type QuestionResult struct {
	QuestionID        uint   `json:"question_id"`
	Text              string `json:"question_text"`
	Grade             int    `json:"grade"`
	SelectedChoiceIDs []uint `json:"selected_choice_ids"`
	CorrectChoiceIDs  []uint `json:"correct_choice_ids"`
	Passed            bool   `json:"passed"`
}

// ExamResult is recomputed on every view and never persisted
type ExamResult struct {
	Course          *models.Course    `json:"course"`
	SubmissionID    uint              `json:"submission_id"`
	TotalScore      int               `json:"total_score"`
	PossibleScore   int               `json:"possible_score"`
	PassingPercent  int               `json:"passing_percent"`
	Passed          bool              `json:"passed"`
	Questions       []QuestionResult  `json:"questions"`
	SelectedChoices []models.Choice   `json:"selected_choices"`
	SelectedIDs     map[uint]struct{} `json:"-"`
}

// IsSelected reports whether the submission selected choiceID
func (r *ExamResult) IsSelected(choiceID uint) bool {
	_, ok := r.SelectedIDs[choiceID]
	return ok
}
