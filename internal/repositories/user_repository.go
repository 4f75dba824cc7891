package repositories

import (
	"context"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"gorm.io/gorm"
)

// UserRepository interface for identity storage
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error)
}
