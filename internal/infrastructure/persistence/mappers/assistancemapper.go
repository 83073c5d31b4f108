package mappers

import (
	"fmt"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/infrastructure/persistence/models"
)

// AssistanceMapper handles the conversion between the assistance aggregate
// and its persistence models. ToDomain reconstructs the root only; tokens and
// the photo count are attached separately by the repository.
type AssistanceMapper interface {
	ToModel(a *assistance.Assistance) *models.AssistanceModel
	ToDomain(model *models.AssistanceModel) (*assistance.Assistance, error)

	TokenToModel(t *assistance.Token) *models.AssistanceTokenModel
	TokenToDomain(model *models.AssistanceTokenModel) (*assistance.Token, error)

	PhotoToModel(p *assistance.Photo) *models.AssistancePhotoModel
	PhotoToDomain(model *models.AssistancePhotoModel) *assistance.Photo
}

type AssistanceMapperImpl struct{}

func NewAssistanceMapper() AssistanceMapper {
	return &AssistanceMapperImpl{}
}

func (m *AssistanceMapperImpl) ToModel(a *assistance.Assistance) *models.AssistanceModel {
	return &models.AssistanceModel{
		ID:                      a.ID(),
		BuildingID:              a.BuildingID(),
		SupplierID:              a.SupplierID(),
		InterventionTypeID:      a.InterventionTypeID(),
		Status:                  a.Status().String(),
		Urgency:                 a.Urgency().String(),
		Description:             a.Description(),
		AdminNotes:              a.AdminNotes(),
		ScheduledAt:             timePtrToMillis(a.ScheduledAt()),
		RejectionReason:         a.RejectionReason(),
		RescheduleReason:        a.RescheduleReason(),
		AlertLevel:              a.AlertLevel(),
		ValidationReminderCount: a.ValidationReminderCount(),
		ValidationEmailSentAt:   timePtrToMillis(a.ValidationEmailSentAt()),
		Version:                 a.Version(),
		OpenedAt:                a.OpenedAt().UnixMilli(),
		UpdatedAt:               a.UpdatedAt().UnixMilli(),
		ClosedAt:                timePtrToMillis(a.ClosedAt()),
	}
}

func (m *AssistanceMapperImpl) ToDomain(model *models.AssistanceModel) (*assistance.Assistance, error) {
	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("assistance %d: %w", model.ID, err)
	}
	urgency, err := vo.NewUrgency(model.Urgency)
	if err != nil {
		return nil, fmt.Errorf("assistance %d: %w", model.ID, err)
	}

	return assistance.ReconstructAssistance(
		model.ID,
		model.BuildingID,
		model.SupplierID,
		model.InterventionTypeID,
		status,
		urgency,
		model.Description,
		model.AdminNotes,
		millisPtrToTime(model.ScheduledAt),
		model.RejectionReason,
		model.RescheduleReason,
		model.AlertLevel,
		model.ValidationReminderCount,
		millisPtrToTime(model.ValidationEmailSentAt),
		model.Version,
		millisToTime(model.OpenedAt),
		millisToTime(model.UpdatedAt),
		millisPtrToTime(model.ClosedAt),
	)
}

func (m *AssistanceMapperImpl) TokenToModel(t *assistance.Token) *models.AssistanceTokenModel {
	return &models.AssistanceTokenModel{
		ID:           t.ID(),
		AssistanceID: t.AssistanceID(),
		Purpose:      t.Purpose().String(),
		Value:        t.Value(),
		IssuedAt:     t.IssuedAt().UnixMilli(),
		ConsumedAt:   timePtrToMillis(t.ConsumedAt()),
	}
}

func (m *AssistanceMapperImpl) TokenToDomain(model *models.AssistanceTokenModel) (*assistance.Token, error) {
	purpose, err := vo.NewTokenPurpose(model.Purpose)
	if err != nil {
		return nil, fmt.Errorf("token %d: %w", model.ID, err)
	}

	return assistance.ReconstructToken(
		model.ID,
		model.AssistanceID,
		purpose,
		model.Value,
		millisToTime(model.IssuedAt),
		millisPtrToTime(model.ConsumedAt),
	)
}

func (m *AssistanceMapperImpl) PhotoToModel(p *assistance.Photo) *models.AssistancePhotoModel {
	return &models.AssistancePhotoModel{
		ID:           p.ID(),
		AssistanceID: p.AssistanceID(),
		StoragePath:  p.StoragePath(),
		ContentType:  p.ContentType(),
		SizeBytes:    p.SizeBytes(),
		UploadedAt:   p.UploadedAt().UnixMilli(),
	}
}

func (m *AssistanceMapperImpl) PhotoToDomain(model *models.AssistancePhotoModel) *assistance.Photo {
	return assistance.ReconstructPhoto(
		model.ID,
		model.AssistanceID,
		model.StoragePath,
		model.ContentType,
		model.SizeBytes,
		millisToTime(model.UploadedAt),
	)
}
