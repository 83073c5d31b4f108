package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"zelador/internal/domain/assistance"
	"zelador/internal/infrastructure/persistence/mappers"
	"zelador/internal/infrastructure/persistence/models"
	"zelador/internal/shared/db"
)

// allowedAssistanceOrderByFields defines the whitelist of allowed ORDER BY
// fields to prevent SQL injection attacks.
var allowedAssistanceOrderByFields = map[string]bool{
	"id":           true,
	"status":       true,
	"urgency":      true,
	"building_id":  true,
	"supplier_id":  true,
	"alert_level":  true,
	"scheduled_at": true,
	"opened_at":    true,
	"updated_at":   true,
}

type AssistanceRepository struct {
	db     *gorm.DB
	mapper mappers.AssistanceMapper
}

func NewAssistanceRepository(db *gorm.DB) *AssistanceRepository {
	return &AssistanceRepository{
		db:     db,
		mapper: mappers.NewAssistanceMapper(),
	}
}

func (r *AssistanceRepository) Save(ctx context.Context, a *assistance.Assistance) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save assistance: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return err
	}
	a.SyncPersistedVersion()

	return nil
}

// Update is an optimistic compare-and-swap: the write matches both the id and
// the version the aggregate was loaded with. Zero rows means either the row
// is gone or another writer got there first.
func (r *AssistanceRepository) Update(ctx context.Context, a *assistance.Assistance) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AssistanceModel{}).
		Where("id = ? AND version = ?", a.ID(), a.PersistedVersion()).
		Select("*").
		Omit("id").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update assistance: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.AssistanceModel{}).Where("id = ?", a.ID()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check assistance existence: %w", err)
		}
		if count == 0 {
			return assistance.ErrNotFound
		}
		return assistance.ErrVersionConflict
	}

	a.SyncPersistedVersion()
	return nil
}

func (r *AssistanceRepository) GetByID(ctx context.Context, id uint) (*assistance.Assistance, error) {
	var model models.AssistanceModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assistance.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find assistance: %w", err)
	}

	return r.hydrate(ctx, &model)
}

// GetByTokenValue resolves an active token to its aggregate. Consumed tokens
// do not resolve; the unique index on the value column makes this a single
// lookup.
func (r *AssistanceRepository) GetByTokenValue(ctx context.Context, value string) (*assistance.Assistance, *assistance.Token, error) {
	var tokenModel models.AssistanceTokenModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("value = ? AND consumed_at IS NULL", value).
		First(&tokenModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, assistance.ErrTokenNotFound
		}
		return nil, nil, fmt.Errorf("failed to find token: %w", err)
	}

	a, err := r.GetByID(ctx, tokenModel.AssistanceID)
	if err != nil {
		return nil, nil, err
	}

	token, err := r.mapper.TokenToDomain(&tokenModel)
	if err != nil {
		return nil, nil, err
	}

	// Return the aggregate's own pointer so consuming the token is visible
	// through both references.
	if matched := a.TokenFor(token.Purpose()); matched != nil && matched.ID() == token.ID() {
		return a, matched, nil
	}
	a.AttachToken(token)
	return a, token, nil
}

func (r *AssistanceRepository) List(ctx context.Context, filter assistance.Filter) ([]*assistance.Assistance, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AssistanceModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Urgency != nil {
		query = query.Where("urgency = ?", filter.Urgency.String())
	}
	if filter.BuildingID != nil {
		query = query.Where("building_id = ?", *filter.BuildingID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.InterventionTypeID != nil {
		query = query.Where("intervention_type_id = ?", *filter.InterventionTypeID)
	}
	if filter.MinAlertLevel != nil {
		query = query.Where("alert_level >= ?", *filter.MinAlertLevel)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assistances: %w", err)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedAssistanceOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("opened_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var assistanceModels []models.AssistanceModel
	if err := query.Find(&assistanceModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assistances: %w", err)
	}

	result := make([]*assistance.Assistance, len(assistanceModels))
	for i := range assistanceModels {
		a, err := r.hydrate(ctx, &assistanceModels[i])
		if err != nil {
			return nil, 0, err
		}
		result[i] = a
	}

	return result, total, nil
}

// DeleteCascade removes the request and every dependent row in one
// transaction.
func (r *AssistanceRepository) DeleteCascade(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assistance_id = ?", id).Delete(&models.AssistanceTokenModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete tokens: %w", err)
		}
		if err := tx.Where("assistance_id = ?", id).Delete(&models.AssistancePhotoModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete photos: %w", err)
		}
		if err := tx.Where("assistance_id = ?", id).Delete(&models.ActivityLogEntryModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete activity log: %w", err)
		}
		if err := tx.Where("assistance_id = ?", id).Delete(&models.EmailLogEntryModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete email log: %w", err)
		}

		result := tx.Delete(&models.AssistanceModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete assistance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return assistance.ErrNotFound
		}
		return nil
	})
}

func (r *AssistanceRepository) SaveToken(ctx context.Context, t *assistance.Token) error {
	model := r.mapper.TokenToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *AssistanceRepository) UpdateToken(ctx context.Context, t *assistance.Token) error {
	model := r.mapper.TokenToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AssistanceTokenModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update token: %w", result.Error)
	}
	return nil
}

func (r *AssistanceRepository) SavePhoto(ctx context.Context, p *assistance.Photo) error {
	model := r.mapper.PhotoToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save photo: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *AssistanceRepository) FindPhotosByAssistanceID(ctx context.Context, assistanceID uint) ([]*assistance.Photo, error) {
	var photoModels []models.AssistancePhotoModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("assistance_id = ?", assistanceID).
		Order("uploaded_at ASC").
		Find(&photoModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find photos: %w", err)
	}

	photos := make([]*assistance.Photo, len(photoModels))
	for i := range photoModels {
		photos[i] = r.mapper.PhotoToDomain(&photoModels[i])
	}
	return photos, nil
}

// hydrate converts a model and attaches tokens and the photo count. Tokens
// are attached in issue order so the latest per purpose wins.
func (r *AssistanceRepository) hydrate(ctx context.Context, model *models.AssistanceModel) (*assistance.Assistance, error) {
	a, err := r.mapper.ToDomain(model)
	if err != nil {
		return nil, err
	}

	tx := db.GetTxFromContext(ctx, r.db)

	var tokenModels []models.AssistanceTokenModel
	if err := tx.
		Where("assistance_id = ?", model.ID).
		Order("issued_at ASC, id ASC").
		Find(&tokenModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}

	for i := range tokenModels {
		token, err := r.mapper.TokenToDomain(&tokenModels[i])
		if err != nil {
			return nil, err
		}
		a.AttachToken(token)
	}

	var photoCount int64
	if err := tx.
		Model(&models.AssistancePhotoModel{}).
		Where("assistance_id = ?", model.ID).
		Count(&photoCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}
	a.SetPhotoCount(int(photoCount))

	return a, nil
}
