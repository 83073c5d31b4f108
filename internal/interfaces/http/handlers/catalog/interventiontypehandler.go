package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zelador/internal/application/catalog/usecases"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
	"zelador/internal/shared/utils"
)

type InterventionTypeHandler struct {
	createUC *usecases.CreateInterventionTypeUseCase
	getUC    *usecases.GetInterventionTypeUseCase
	listUC   *usecases.ListInterventionTypesUseCase
	updateUC *usecases.UpdateInterventionTypeUseCase
	deleteUC *usecases.DeleteInterventionTypeUseCase
	logger   logger.Interface
}

func NewInterventionTypeHandler(
	createUC *usecases.CreateInterventionTypeUseCase,
	getUC *usecases.GetInterventionTypeUseCase,
	listUC *usecases.ListInterventionTypesUseCase,
	updateUC *usecases.UpdateInterventionTypeUseCase,
	deleteUC *usecases.DeleteInterventionTypeUseCase,
) *InterventionTypeHandler {
	return &InterventionTypeHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger.NewLogger(),
	}
}

// Create handles POST /intervention-types
func (h *InterventionTypeHandler) Create(c *gin.Context) {
	var req CreateInterventionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create intervention type", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateInterventionTypeCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Intervention type created successfully")
}

// Get handles GET /intervention-types/:id
func (h *InterventionTypeHandler) Get(c *gin.Context) {
	typeID, err := parseIDParam(c, "intervention type")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetInterventionTypeQuery{InterventionTypeID: typeID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /intervention-types
func (h *InterventionTypeHandler) List(c *gin.Context) {
	req := parseListCatalogRequest(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListInterventionTypesQuery{
		ActiveOnly: req.ActiveOnly,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update handles PUT /intervention-types/:id
func (h *InterventionTypeHandler) Update(c *gin.Context) {
	typeID, err := parseIDParam(c, "intervention type")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateInterventionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update intervention type", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateInterventionTypeCommand{
		InterventionTypeID: typeID,
		Name:               req.Name,
		Description:        req.Description,
		Active:             req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Intervention type updated successfully", result)
}

// Delete handles DELETE /intervention-types/:id
func (h *InterventionTypeHandler) Delete(c *gin.Context) {
	typeID, err := parseIDParam(c, "intervention type")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteInterventionTypeCommand{InterventionTypeID: typeID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
