// Package assistance exposes the maintenance request HTTP surface: the
// authenticated admin endpoints and the token-gated supplier endpoints.
package assistance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zelador/internal/application/assistance/usecases"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
	"zelador/internal/shared/utils"
)

type AssistanceHandler struct {
	createUC          usecases.CreateAssistanceExecutor
	getUC             usecases.GetAssistanceExecutor
	listUC            usecases.ListAssistancesExecutor
	updateUC          usecases.UpdateAssistanceExecutor
	changeStatusUC    usecases.ChangeStatusExecutor
	cancelUC          usecases.CancelAssistanceExecutor
	reassignUC        usecases.ReassignAssistanceExecutor
	deleteUC          usecases.DeleteAssistanceExecutor
	regenerateTokenUC usecases.RegenerateTokenExecutor
	statsUC           usecases.GetAssistanceStatsExecutor
	activityLogUC     usecases.ListActivityLogExecutor
	logger            logger.Interface
}

func NewAssistanceHandler(
	createUC usecases.CreateAssistanceExecutor,
	getUC usecases.GetAssistanceExecutor,
	listUC usecases.ListAssistancesExecutor,
	updateUC usecases.UpdateAssistanceExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	cancelUC usecases.CancelAssistanceExecutor,
	reassignUC usecases.ReassignAssistanceExecutor,
	deleteUC usecases.DeleteAssistanceExecutor,
	regenerateTokenUC usecases.RegenerateTokenExecutor,
	statsUC usecases.GetAssistanceStatsExecutor,
	activityLogUC usecases.ListActivityLogExecutor,
) *AssistanceHandler {
	return &AssistanceHandler{
		createUC:          createUC,
		getUC:             getUC,
		listUC:            listUC,
		updateUC:          updateUC,
		changeStatusUC:    changeStatusUC,
		cancelUC:          cancelUC,
		reassignUC:        reassignUC,
		deleteUC:          deleteUC,
		regenerateTokenUC: regenerateTokenUC,
		statsUC:           statsUC,
		activityLogUC:     activityLogUC,
		logger:            logger.NewLogger(),
	}
}

// Create handles POST /assistances
func (h *AssistanceHandler) Create(c *gin.Context) {
	var req CreateAssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create assistance", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Assistance request created successfully")
}

// Get handles GET /assistances/:id
func (h *AssistanceHandler) Get(c *gin.Context) {
	assistanceID, err := parseAssistanceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetAssistanceQuery{AssistanceID: assistanceID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /assistances
func (h *AssistanceHandler) List(c *gin.Context) {
	req, err := parseListAssistancesRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), req.ToQuery())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update handles PUT /assistances/:id
func (h *AssistanceHandler) Update(c *gin.Context) {
	assistanceID, err := parseAssistanceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateAssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update assistance", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.UpdateAssistanceCommand{
		AssistanceID: assistanceID,
		Description:  req.Description,
		AdminNotes:   req.AdminNotes,
		Urgency:      req.Urgency,
	}

	result, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assistance request updated successfully", result)
}

// ChangeStatus handles PATCH /assistances/:id/status
func (h *AssistanceHandler) ChangeStatus(c *gin.Context) {
	assistanceID, err := parseAssistanceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change status", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.ChangeStatusCommand{
		AssistanceID: assistanceID,
		NewStatus:    req.Status,
		Notes:        req.Notes,
		ScheduledAt:  req.ScheduledAt,
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assistance status updated successfully", result)
}

// Cancel handles POST /assistances/:id/cancel
func (h *AssistanceHandler) Cancel(c *gin.Context) {
	assistanceID, err := parseAssistanceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Notes are optional, so an empty body is accepted.
	var req CancelAssistanceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
			return
		}
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelAssistanceCommand{
		AssistanceID: assistanceID,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assistance request cancelled", result)
}

// Reassign handles POST /assistances/:id/reassign
func (h *AssistanceHandler) Reassign(c *gin.Context) {
	assistanceID, err := parseAssistanceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReassignAssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.reassignUC.Execute(c.Request.Context(), usecases.ReassignAssistanceCommand{
		AssistanceID:  assistanceID,
		NewSupplierID: req.NewSupplierID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assistance request reassigned successfully", result)
}

// Delete handles DELETE /assistances/:id
func (h *AssistanceHandler) Delete(c *gin.Context) {
	assistanceID, err := parseAssistanceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if _, err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteAssistanceCommand{AssistanceID: assistanceID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// RegenerateToken handles POST /assistances/:id/tokens
func (h *AssistanceHandler) RegenerateToken(c *gin.Context) {
	assistanceID, err := parseAssistanceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RegenerateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for regenerate token", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.regenerateTokenUC.Execute(c.Request.Context(), usecases.RegenerateTokenCommand{
		AssistanceID: assistanceID,
		Purpose:      req.Purpose,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Token regenerated successfully")
}

// Stats handles GET /assistances/stats
func (h *AssistanceHandler) Stats(c *gin.Context) {
	result, err := h.statsUC.Execute(c.Request.Context(), usecases.GetAssistanceStatsQuery{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ActivityLog handles GET /assistances/:id/activity
func (h *AssistanceHandler) ActivityLog(c *gin.Context) {
	assistanceID, err := parseAssistanceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	entries, err := h.activityLogUC.Execute(c.Request.Context(), usecases.ListActivityLogQuery{AssistanceID: assistanceID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", entries)
}
