package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRepository is a mock implementation of repositories.Repository
type MockRepository struct {
	mock.Mock
	users       *MockUserRepository
	courses     *MockCourseRepository
	enrollments *MockEnrollmentRepository
	questions   *MockQuestionRepository
	submissions *MockSubmissionRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		users:       &MockUserRepository{},
		courses:     &MockCourseRepository{},
		enrollments: &MockEnrollmentRepository{},
		questions:   &MockQuestionRepository{},
		submissions: &MockSubmissionRepository{},
	}
}

func (m *MockRepository) User() repositories.UserRepository             { return m.users }
func (m *MockRepository) Course() repositories.CourseRepository         { return m.courses }
func (m *MockRepository) Enrollment() repositories.EnrollmentRepository { return m.enrollments }
func (m *MockRepository) Question() repositories.QuestionRepository     { return m.questions }
func (m *MockRepository) Submission() repositories.SubmissionRepository { return m.submissions }

// WithTransaction runs fn with a nil handle unless an error is configured
func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

func (m *MockRepository) AssertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.courses.AssertExpectations(t)
	m.enrollments.AssertExpectations(t)
	m.questions.AssertExpectations(t)
	m.submissions.AssertExpectations(t)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	args := m.Called(ctx, tx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	args := m.Called(ctx, tx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	args := m.Called(ctx, tx, username)
	return args.Bool(0), args.Error(1)
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	args := m.Called(ctx, tx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	args := m.Called(ctx, tx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseRepository) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	args := m.Called(ctx, tx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, error) {
	args := m.Called(ctx, tx, filters)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *MockCourseRepository) IncrementEnrollment(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockEnrollmentRepository is a mock implementation of EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	args := m.Called(ctx, tx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	args := m.Called(ctx, tx, userID, courseID)
	enrollment, _ := args.Get(0).(*models.Enrollment)
	return enrollment, args.Error(1)
}

func (m *MockEnrollmentRepository) Exists(ctx context.Context, tx *gorm.DB, userID, courseID uint) (bool, error) {
	args := m.Called(ctx, tx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnrollmentRepository) GetEnrolledCourseIDs(ctx context.Context, tx *gorm.DB, userID uint, courseIDs []uint) (map[uint]bool, error) {
	args := m.Called(ctx, tx, userID, courseIDs)
	ids, _ := args.Get(0).(map[uint]bool)
	return ids, args.Error(1)
}

func (m *MockEnrollmentRepository) CountByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	args := m.Called(ctx, tx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetChoicesByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Choice, error) {
	args := m.Called(ctx, tx, ids)
	choices, _ := args.Get(0).([]models.Choice)
	return choices, args.Error(1)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	args := m.Called(ctx, tx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	args := m.Called(ctx, tx, id)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

func (m *MockSubmissionRepository) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	args := m.Called(ctx, tx, id)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

func (m *MockSubmissionRepository) ReplaceChoices(ctx context.Context, tx *gorm.DB, submission *models.Submission, choices []models.Choice) error {
	args := m.Called(ctx, tx, submission, choices)
	return args.Error(0)
}
