package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"zelador/internal/domain/admin"
	"zelador/internal/infrastructure/persistence/mappers"
	"zelador/internal/infrastructure/persistence/models"
	"zelador/internal/shared/db"
)

type AdminUserRepository struct {
	db     *gorm.DB
	mapper mappers.AdminUserMapper
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{
		db:     db,
		mapper: mappers.NewAdminUserMapper(),
	}
}

func (r *AdminUserRepository) Save(ctx context.Context, u *admin.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}

	return u.SetID(model.ID)
}

func (r *AdminUserRepository) GetByID(ctx context.Context, id uint) (*admin.User, error) {
	var model models.AdminUserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*admin.User, error) {
	var model models.AdminUserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

// ListEmails returns every administrator address for notification fan-out.
func (r *AdminUserRepository) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.AdminUserModel{}).
		Order("id ASC").
		Pluck("email", &emails).Error; err != nil {
		return nil, fmt.Errorf("failed to list admin emails: %w", err)
	}

	return emails, nil
}
