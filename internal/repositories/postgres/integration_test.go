package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"github.com/SAP-F-2025/onlinecourse-service/pkg"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to TEST_DATABASE_URL or skips the test
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, pkg.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, repo repositories.Repository) *models.User {
	t.Helper()
	user := &models.User{Username: "user-" + uuid.NewString()[:8], PasswordHash: "x"}
	require.NoError(t, repo.User().Create(context.Background(), nil, user))
	return user
}

func seedCourse(t *testing.T, repo repositories.Repository) *models.Course {
	t.Helper()
	course := &models.Course{
		Name:    "Course " + uuid.NewString()[:8],
		Lessons: []models.Lesson{{Order: 2, Title: "Second"}, {Order: 1, Title: "First"}},
		Questions: []models.Question{
			{Text: "Q1", Grade: 5, Choices: []models.Choice{
				{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}, {Text: "c"},
			}},
			{Text: "Q2", Grade: 3, Choices: []models.Choice{{Text: "d"}, {Text: "e"}}},
		},
	}
	require.NoError(t, repo.Course().Create(context.Background(), nil, course))
	return course
}

func TestEnrollment_UniquePerUserAndCourse(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo)
	course := seedCourse(t, repo)

	enroll := func() error {
		return repo.WithTransaction(ctx, func(tx *gorm.DB) error {
			enrollment := &models.Enrollment{
				UserID:       user.ID,
				CourseID:     course.ID,
				Mode:         models.EnrollmentModeHonor,
				DateEnrolled: time.Now(),
				Rating:       5,
			}
			if err := repo.Enrollment().Create(ctx, tx, enrollment); err != nil {
				return err
			}
			return repo.Course().IncrementEnrollment(ctx, tx, course.ID)
		})
	}

	require.NoError(t, enroll())
	err := enroll()
	require.Error(t, err)
	assert.True(t, repositories.IsDuplicateKeyError(err))

	count, err := repo.Enrollment().CountByCourse(ctx, nil, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := repo.Course().GetByID(ctx, nil, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalEnrollment)

	enrolled, err := repo.Enrollment().GetEnrolledCourseIDs(ctx, nil, user.ID, []uint{course.ID, course.ID + 100000})
	require.NoError(t, err)
	assert.True(t, enrolled[course.ID])
	assert.False(t, enrolled[course.ID+100000])
}

func TestCourse_GetByIDWithDetailsOrdering(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	course := seedCourse(t, repo)

	detail, err := repo.Course().GetByIDWithDetails(context.Background(), nil, course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Questions, 2)
	assert.Equal(t, "Q1", detail.Questions[0].Text)
	assert.Len(t, detail.Questions[0].Choices, 3)
	require.Len(t, detail.Lessons, 2)
}

func TestCourse_NotFound(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	_, err := repo.Course().GetByID(context.Background(), nil, 999999999)
	assert.True(t, repositories.IsNotFoundError(err))

	err = repo.Course().IncrementEnrollment(context.Background(), nil, 999999999)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestSubmission_ReplaceChoices(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo)
	course := seedCourse(t, repo)

	enrollment := &models.Enrollment{UserID: user.ID, CourseID: course.ID, Mode: models.EnrollmentModeHonor, DateEnrolled: time.Now()}
	require.NoError(t, repo.Enrollment().Create(ctx, nil, enrollment))

	submission := &models.Submission{EnrollmentID: enrollment.ID}
	require.NoError(t, repo.Submission().Create(ctx, nil, submission))

	q1 := course.Questions[0].Choices
	require.NoError(t, repo.Submission().ReplaceChoices(ctx, nil, submission, []models.Choice{q1[0], q1[2]}))
	require.NoError(t, repo.Submission().ReplaceChoices(ctx, nil, submission, []models.Choice{q1[1]}))

	stored, err := repo.Submission().GetByIDWithDetails(ctx, nil, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{q1[1].ID}, stored.SelectedChoiceIDs())
	assert.Equal(t, user.ID, stored.Enrollment.UserID)

	choices, err := repo.Question().GetChoicesByIDs(ctx, nil, []uint{q1[0].ID, 999999999})
	require.NoError(t, err)
	require.Len(t, choices, 1)
	assert.Equal(t, q1[0].ID, choices[0].ID)
}
