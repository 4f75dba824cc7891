package handlers

import (
	"context"
	"io"
	"net/url"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*services.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*services.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) ListPopular(ctx context.Context, viewer *models.User) ([]*models.Course, error) {
	args := m.Called(ctx, viewer)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *MockCourseService) GetDetail(ctx context.Context, viewer *models.User, courseID uint) (*models.Course, error) {
	args := m.Called(ctx, viewer, courseID)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) IsEnrolled(ctx context.Context, viewer *models.User, courseID uint) (bool, error) {
	args := m.Called(ctx, viewer, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnrollmentService) Enroll(ctx context.Context, viewer *models.User, courseID uint) (*services.EnrollResult, error) {
	args := m.Called(ctx, viewer, courseID)
	result, _ := args.Get(0).(*services.EnrollResult)
	return result, args.Error(1)
}

type MockExamService struct {
	mock.Mock
}

func (m *MockExamService) ExtractAnswers(form url.Values) ([]uint, error) {
	args := m.Called(form)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

func (m *MockExamService) Submit(ctx context.Context, viewer *models.User, courseID uint, choiceIDs []uint) (uint, error) {
	args := m.Called(ctx, viewer, courseID, choiceIDs)
	id, _ := args.Get(0).(uint)
	return id, args.Error(1)
}

func (m *MockExamService) GetResult(ctx context.Context, viewer *models.User, courseID, submissionID uint) (*services.ExamResult, error) {
	args := m.Called(ctx, viewer, courseID, submissionID)
	result, _ := args.Get(0).(*services.ExamResult)
	return result, args.Error(1)
}

type MockImportExportService struct {
	mock.Mock
}

func (m *MockImportExportService) ImportCourseFromFile(ctx context.Context, reader io.Reader, filename string) (*models.Course, error) {
	args := m.Called(ctx, reader, filename)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockImportExportService) ExportResultToExcel(ctx context.Context, viewer *models.User, courseID, submissionID uint) ([]byte, error) {
	args := m.Called(ctx, viewer, courseID, submissionID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
