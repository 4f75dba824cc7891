package postgres

import (
	"context"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (q *QuestionPostgreSQL) GetChoicesByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Choice, error) {
	if len(ids) == 0 {
		return []models.Choice{}, nil
	}

	db := q.helpers.GetDB(tx)
	var choices []models.Choice
	if err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&choices).Error; err != nil {
		return nil, err
	}
	return choices, nil
}
