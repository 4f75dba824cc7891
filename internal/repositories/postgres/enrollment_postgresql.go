package postgres

import (
	"context"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"gorm.io/gorm"
)

type EnrollmentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (e *EnrollmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	db := e.helpers.GetDB(tx)
	return db.WithContext(ctx).Create(enrollment).Error
}

func (e *EnrollmentPostgreSQL) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	db := e.helpers.GetDB(tx)
	var enrollment models.Enrollment
	if err := db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (e *EnrollmentPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, userID, courseID uint) (bool, error) {
	db := e.helpers.GetDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (e *EnrollmentPostgreSQL) GetEnrolledCourseIDs(ctx context.Context, tx *gorm.DB, userID uint, courseIDs []uint) (map[uint]bool, error) {
	enrolled := make(map[uint]bool, len(courseIDs))
	if len(courseIDs) == 0 {
		return enrolled, nil
	}

	db := e.helpers.GetDB(tx)
	var ids []uint
	if err := db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id IN ?", userID, courseIDs).
		Pluck("course_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		enrolled[id] = true
	}
	return enrolled, nil
}

func (e *EnrollmentPostgreSQL) CountByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	db := e.helpers.GetDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
