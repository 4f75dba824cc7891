package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"gorm.io/gorm"
)

type SubmissionPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := s.helpers.GetDB(tx)
	// The association is written by ReplaceChoices, never on insert
	return db.WithContext(ctx).Omit("Choices").Create(submission).Error
}

func (s *SubmissionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := s.helpers.GetDB(tx)
	var submission models.Submission
	if err := db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := s.helpers.GetDB(tx)
	var submission models.Submission
	if err := db.WithContext(ctx).
		Preload("Enrollment").
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id ASC")
		}).
		First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) ReplaceChoices(ctx context.Context, tx *gorm.DB, submission *models.Submission, choices []models.Choice) error {
	db := s.helpers.GetDB(tx)
	if err := db.WithContext(ctx).Model(submission).Association("Choices").Replace(choices); err != nil {
		return fmt.Errorf("failed to replace submission choices: %w", err)
	}
	submission.Choices = choices
	return nil
}
