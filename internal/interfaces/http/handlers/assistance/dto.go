package assistance

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"zelador/internal/application/assistance/usecases"
	"zelador/internal/shared/errors"
)

type CreateAssistanceRequest struct {
	BuildingID         uint   `json:"building_id" binding:"required"`
	SupplierID         uint   `json:"supplier_id" binding:"required"`
	InterventionTypeID *uint  `json:"intervention_type_id,omitempty"`
	Urgency            string `json:"urgency" binding:"required"`
	Description        string `json:"description" binding:"required,max=5000"`
	AdminNotes         string `json:"admin_notes,omitempty"`
}

func (r *CreateAssistanceRequest) ToCommand() usecases.CreateAssistanceCommand {
	return usecases.CreateAssistanceCommand{
		BuildingID:         r.BuildingID,
		SupplierID:         r.SupplierID,
		InterventionTypeID: r.InterventionTypeID,
		Urgency:            r.Urgency,
		Description:        r.Description,
		AdminNotes:         r.AdminNotes,
	}
}

type UpdateAssistanceRequest struct {
	Description string `json:"description,omitempty" binding:"max=5000"`
	AdminNotes  string `json:"admin_notes,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
}

type ChangeStatusRequest struct {
	Status      string     `json:"status" binding:"required,assistancestatus"`
	Notes       string     `json:"notes,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type CancelAssistanceRequest struct {
	Notes string `json:"notes,omitempty"`
}

type ReassignAssistanceRequest struct {
	NewSupplierID uint `json:"new_supplier_id" binding:"required"`
}

type RegenerateTokenRequest struct {
	Purpose string `json:"purpose" binding:"required,oneof=interaction acceptance scheduling validation"`
}

type ListAssistancesRequest struct {
	Status             string
	Urgency            string
	BuildingID         *uint
	SupplierID         *uint
	InterventionTypeID *uint
	MinAlertLevel      *int
	OnlyLate           bool
	Page               int
	PageSize           int
	SortBy             string
	SortOrder          string
}

func (r *ListAssistancesRequest) ToQuery() usecases.ListAssistancesQuery {
	return usecases.ListAssistancesQuery{
		Status:             r.Status,
		Urgency:            r.Urgency,
		BuildingID:         r.BuildingID,
		SupplierID:         r.SupplierID,
		InterventionTypeID: r.InterventionTypeID,
		MinAlertLevel:      r.MinAlertLevel,
		OnlyLate:           r.OnlyLate,
		Page:               r.Page,
		PageSize:           r.PageSize,
		SortBy:             r.SortBy,
		SortOrder:          r.SortOrder,
	}
}

func parseListAssistancesRequest(c *gin.Context) (*ListAssistancesRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	req := &ListAssistancesRequest{
		Status:    c.Query("status"),
		Urgency:   c.Query("urgency"),
		OnlyLate:  c.Query("only_late") == "true",
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	for param, target := range map[string]**uint{
		"building_id":          &req.BuildingID,
		"supplier_id":          &req.SupplierID,
		"intervention_type_id": &req.InterventionTypeID,
	} {
		if raw := c.Query(param); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, errors.NewValidationError("invalid " + param)
			}
			id := uint(parsed)
			*target = &id
		}
	}

	if raw := c.Query("min_alert_level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.NewValidationError("invalid min_alert_level")
		}
		req.MinAlertLevel = &level
	}

	return req, nil
}

func parseAssistanceID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid assistance ID")
	}
	return uint(id), nil
}
