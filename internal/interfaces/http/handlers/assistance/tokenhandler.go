package assistance

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zelador/internal/application/assistance/usecases"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
	"zelador/internal/shared/utils"
)

// maxCompletionPhotos caps a single completion upload; the storage layer
// additionally enforces the per-file size limit.
const maxCompletionPhotos = 10

// TokenHandler serves the public supplier surface. Every endpoint is
// authenticated solely by the opaque token in the URL; there is no session
// and no supplier account.
type TokenHandler struct {
	resolveUC  usecases.ResolveTokenExecutor
	acceptUC   usecases.AcceptAssistanceExecutor
	rejectUC   usecases.RejectAssistanceExecutor
	scheduleUC usecases.ScheduleAssistanceExecutor
	completeUC usecases.CompleteAssistanceExecutor
	logger     logger.Interface
}

func NewTokenHandler(
	resolveUC usecases.ResolveTokenExecutor,
	acceptUC usecases.AcceptAssistanceExecutor,
	rejectUC usecases.RejectAssistanceExecutor,
	scheduleUC usecases.ScheduleAssistanceExecutor,
	completeUC usecases.CompleteAssistanceExecutor,
) *TokenHandler {
	return &TokenHandler{
		resolveUC:  resolveUC,
		acceptUC:   acceptUC,
		rejectUC:   rejectUC,
		scheduleUC: scheduleUC,
		completeUC: completeUC,
		logger:     logger.NewLogger(),
	}
}

type AcceptRequest struct {
	// ScheduleDatetime accepts and schedules in one step when present.
	ScheduleDatetime *time.Time `json:"schedule_datetime,omitempty"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}

type ScheduleRequest struct {
	Datetime         time.Time `json:"datetime" binding:"required"`
	RescheduleReason string    `json:"reschedule_reason,omitempty"`
}

// Resolve handles GET /t/:token
func (h *TokenHandler) Resolve(c *gin.Context) {
	query := usecases.ResolveTokenQuery{
		TokenValue: c.Param("token"),
		Action:     c.DefaultQuery("action", "view"),
	}

	result, err := h.resolveUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Accept handles POST /t/:token/accept
func (h *TokenHandler) Accept(c *gin.Context) {
	var req AcceptRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for accept", "error", err)
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
			return
		}
	}

	result, err := h.acceptUC.Execute(c.Request.Context(), usecases.AcceptAssistanceCommand{
		TokenValue:       c.Param("token"),
		ScheduleDatetime: req.ScheduleDatetime,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assistance request accepted", result)
}

// Reject handles POST /t/:token/reject
func (h *TokenHandler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for reject", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.rejectUC.Execute(c.Request.Context(), usecases.RejectAssistanceCommand{
		TokenValue: c.Param("token"),
		Reason:     req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assistance request rejected", result)
}

// Schedule handles POST /t/:token/schedule
func (h *TokenHandler) Schedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for schedule", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.scheduleUC.Execute(c.Request.Context(), usecases.ScheduleAssistanceCommand{
		TokenValue:       c.Param("token"),
		Datetime:         req.Datetime,
		RescheduleReason: req.RescheduleReason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Intervention scheduled", result)
}

// Complete handles POST /t/:token/complete with a multipart form carrying
// the completion photos under the "photos" field.
func (h *TokenHandler) Complete(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("expected a multipart form with photos"))
		return
	}

	files := form.File["photos"]
	if len(files) > maxCompletionPhotos {
		utils.ErrorResponseWithError(c, errors.NewValidationError("too many photos in one upload"))
		return
	}

	photos := make([]usecases.PhotoUpload, 0, len(files))
	for _, file := range files {
		opened, err := file.Open()
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read uploaded photo"))
			return
		}

		data, err := io.ReadAll(opened)
		opened.Close()
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read uploaded photo"))
			return
		}

		photos = append(photos, usecases.PhotoUpload{
			Filename: file.Filename,
			Data:     data,
		})
	}

	result, err := h.completeUC.Execute(c.Request.Context(), usecases.CompleteAssistanceCommand{
		TokenValue: c.Param("token"),
		Photos:     photos,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assistance request completed", result)
}
