package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/onlinecourse-service/internal/events"
	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestEnrollmentService() (*enrollmentService, *MockRepository, *events.MockEventPublisher) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewEnrollmentService(repo, publisher, testLogger()).(*enrollmentService)
	return svc, repo, publisher
}

func TestEnrollmentService_IsEnrolled_Anonymous(t *testing.T) {
	svc, repo, _ := newTestEnrollmentService()

	enrolled, err := svc.IsEnrolled(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.False(t, enrolled)
	repo.enrollments.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrollmentService_IsEnrolled(t *testing.T) {
	svc, repo, _ := newTestEnrollmentService()
	user := &models.User{ID: 5}

	repo.enrollments.On("Exists", mock.Anything, mock.Anything, uint(5), uint(1)).Return(true, nil)
	repo.enrollments.On("Exists", mock.Anything, mock.Anything, uint(5), uint(2)).Return(false, nil)

	enrolled, err := svc.IsEnrolled(context.Background(), user, 1)
	require.NoError(t, err)
	assert.True(t, enrolled)

	enrolled, err = svc.IsEnrolled(context.Background(), user, 2)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestEnrollmentService_Enroll_Idempotent(t *testing.T) {
	svc, repo, publisher := newTestEnrollmentService()
	ctx := context.Background()
	user := &models.User{ID: 5}

	repo.courses.On("GetByID", mock.Anything, mock.Anything, uint(1)).Return(&models.Course{ID: 1}, nil)
	repo.enrollments.On("Exists", mock.Anything, mock.Anything, uint(5), uint(1)).Return(false, nil).Once()
	repo.enrollments.On("Exists", mock.Anything, mock.Anything, uint(5), uint(1)).Return(true, nil).Once()
	repo.On("WithTransaction", mock.Anything).Return(nil).Once()
	repo.enrollments.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(e *models.Enrollment) bool {
		return e.UserID == 5 && e.CourseID == 1 && e.Mode == models.EnrollmentModeHonor
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*models.Enrollment).ID = 77
	}).Return(nil).Once()
	repo.courses.On("IncrementEnrollment", mock.Anything, mock.Anything, uint(1)).Return(nil).Once()

	first, err := svc.Enroll(ctx, user, 1)
	require.NoError(t, err)
	assert.True(t, first.Enrolled)
	assert.True(t, first.Created)

	second, err := svc.Enroll(ctx, user, 1)
	require.NoError(t, err)
	assert.True(t, second.Enrolled)
	assert.False(t, second.Created)

	repo.AssertAll(t)
	repo.enrollments.AssertNumberOfCalls(t, "Create", 1)
	repo.courses.AssertNumberOfCalls(t, "IncrementEnrollment", 1)

	published := publisher.EventsOfType(events.EventEnrollmentCreated)
	require.Len(t, published, 1)
	data := published[0].Data.(events.EnrollmentCreatedEvent)
	assert.Equal(t, uint(77), data.EnrollmentID)
	assert.Equal(t, "honor", data.Mode)
}

func TestEnrollmentService_Enroll_ConcurrentDuplicate(t *testing.T) {
	svc, repo, publisher := newTestEnrollmentService()
	user := &models.User{ID: 5}

	repo.courses.On("GetByID", mock.Anything, mock.Anything, uint(1)).Return(&models.Course{ID: 1}, nil)
	repo.enrollments.On("Exists", mock.Anything, mock.Anything, uint(5), uint(1)).Return(false, nil)
	repo.On("WithTransaction", mock.Anything).Return(nil)
	repo.enrollments.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	result, err := svc.Enroll(context.Background(), user, 1)
	require.NoError(t, err)
	assert.True(t, result.Enrolled)
	assert.False(t, result.Created)
	repo.courses.AssertNotCalled(t, "IncrementEnrollment", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestEnrollmentService_Enroll_Anonymous(t *testing.T) {
	svc, repo, _ := newTestEnrollmentService()

	repo.courses.On("GetByID", mock.Anything, mock.Anything, uint(1)).Return(&models.Course{ID: 1}, nil)

	result, err := svc.Enroll(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.False(t, result.Enrolled)
	assert.False(t, result.Created)
	repo.enrollments.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "WithTransaction", mock.Anything)
}

func TestEnrollmentService_Enroll_CourseNotFound(t *testing.T) {
	svc, repo, _ := newTestEnrollmentService()

	repo.courses.On("GetByID", mock.Anything, mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Enroll(context.Background(), &models.User{ID: 5}, 99)
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.True(t, IsNotFound(err))
}
