package mappers

import (
	"fmt"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/infrastructure/persistence/models"
)

type ActivityLogMapper interface {
	ToModel(e *assistance.ActivityLogEntry) *models.ActivityLogEntryModel
	ToDomain(model *models.ActivityLogEntryModel) (*assistance.ActivityLogEntry, error)
}

type ActivityLogMapperImpl struct{}

func NewActivityLogMapper() ActivityLogMapper {
	return &ActivityLogMapperImpl{}
}

func (m *ActivityLogMapperImpl) ToModel(e *assistance.ActivityLogEntry) *models.ActivityLogEntryModel {
	return &models.ActivityLogEntryModel{
		ID:           e.ID(),
		AssistanceID: e.AssistanceID(),
		Actor:        e.Actor().String(),
		Description:  e.Description(),
		CreatedAt:    e.CreatedAt().UnixMilli(),
	}
}

func (m *ActivityLogMapperImpl) ToDomain(model *models.ActivityLogEntryModel) (*assistance.ActivityLogEntry, error) {
	actor, err := vo.NewActor(model.Actor)
	if err != nil {
		return nil, fmt.Errorf("activity log entry %d: %w", model.ID, err)
	}

	return assistance.ReconstructActivityLogEntry(
		model.ID,
		model.AssistanceID,
		actor,
		model.Description,
		millisToTime(model.CreatedAt),
	), nil
}
