package mappers

import (
	"zelador/internal/domain/admin"
	"zelador/internal/infrastructure/persistence/models"
)

type AdminUserMapper interface {
	ToModel(u *admin.User) *models.AdminUserModel
	ToDomain(model *models.AdminUserModel) *admin.User
}

type AdminUserMapperImpl struct{}

func NewAdminUserMapper() AdminUserMapper {
	return &AdminUserMapperImpl{}
}

func (m *AdminUserMapperImpl) ToModel(u *admin.User) *models.AdminUserModel {
	return &models.AdminUserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
	}
}

func (m *AdminUserMapperImpl) ToDomain(model *models.AdminUserModel) *admin.User {
	return admin.ReconstructUser(
		model.ID,
		model.Name,
		model.Email,
		model.PasswordHash,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
