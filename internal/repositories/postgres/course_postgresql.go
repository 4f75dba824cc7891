package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"gorm.io/gorm"
)

var courseSortColumns = map[string]bool{
	"total_enrollment": true,
	"name":             true,
	"pub_date":         true,
	"created_at":       true,
}

type CoursePostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Create inserts the course and its nested lessons, questions and choices
func (c *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := c.helpers.GetDB(tx)
	if err := db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	db := c.helpers.GetDB(tx)
	var course models.Course
	if err := db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	db := c.helpers.GetDB(tx)
	var course models.Course
	err := db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order ASC, id ASC")
		}).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, error) {
	db := c.helpers.GetDB(tx)
	query := db.WithContext(ctx).Model(&models.Course{})
	query = c.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder,
		filters.Limit, filters.Offset, courseSortColumns, "total_enrollment DESC")

	var courses []*models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *CoursePostgreSQL) IncrementEnrollment(ctx context.Context, tx *gorm.DB, id uint) error {
	db := c.helpers.GetDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		UpdateColumn("total_enrollment", gorm.Expr("total_enrollment + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
