package mappers

import (
	"encoding/json"
	"fmt"

	"zelador/internal/domain/assistance"
	"zelador/internal/infrastructure/persistence/models"
)

type EmailLogMapper interface {
	ToModel(e *assistance.EmailLogEntry) (*models.EmailLogEntryModel, error)
	ToDomain(model *models.EmailLogEntryModel) (*assistance.EmailLogEntry, error)
}

type EmailLogMapperImpl struct{}

func NewEmailLogMapper() EmailLogMapper {
	return &EmailLogMapperImpl{}
}

func (m *EmailLogMapperImpl) ToModel(e *assistance.EmailLogEntry) (*models.EmailLogEntryModel, error) {
	recipients, err := json.Marshal(e.Recipients())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recipients: %w", err)
	}

	return &models.EmailLogEntryModel{
		ID:           e.ID(),
		AssistanceID: e.AssistanceID(),
		Template:     e.Template(),
		Recipients:   recipients,
		Success:      e.Success(),
		ErrorDetail:  e.ErrorDetail(),
		CreatedAt:    e.CreatedAt().UnixMilli(),
	}, nil
}

func (m *EmailLogMapperImpl) ToDomain(model *models.EmailLogEntryModel) (*assistance.EmailLogEntry, error) {
	var recipients []string
	if len(model.Recipients) > 0 {
		if err := json.Unmarshal(model.Recipients, &recipients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipients (id=%d): %w", model.ID, err)
		}
	}

	return assistance.ReconstructEmailLogEntry(
		model.ID,
		model.AssistanceID,
		model.Template,
		recipients,
		model.Success,
		model.ErrorDetail,
		millisToTime(model.CreatedAt),
	), nil
}
