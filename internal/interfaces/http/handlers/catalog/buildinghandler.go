// Package catalog exposes the admin CRUD endpoints for buildings, suppliers
// and intervention types.
package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zelador/internal/application/catalog/usecases"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
	"zelador/internal/shared/utils"
)

type BuildingHandler struct {
	createUC *usecases.CreateBuildingUseCase
	getUC    *usecases.GetBuildingUseCase
	listUC   *usecases.ListBuildingsUseCase
	updateUC *usecases.UpdateBuildingUseCase
	deleteUC *usecases.DeleteBuildingUseCase
	logger   logger.Interface
}

func NewBuildingHandler(
	createUC *usecases.CreateBuildingUseCase,
	getUC *usecases.GetBuildingUseCase,
	listUC *usecases.ListBuildingsUseCase,
	updateUC *usecases.UpdateBuildingUseCase,
	deleteUC *usecases.DeleteBuildingUseCase,
) *BuildingHandler {
	return &BuildingHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger.NewLogger(),
	}
}

// Create handles POST /buildings
func (h *BuildingHandler) Create(c *gin.Context) {
	var req CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create building", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateBuildingCommand{
		Name:      req.Name,
		Address:   req.Address,
		AdminName: req.AdminName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Building created successfully")
}

// Get handles GET /buildings/:id
func (h *BuildingHandler) Get(c *gin.Context) {
	buildingID, err := parseIDParam(c, "building")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetBuildingQuery{BuildingID: buildingID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /buildings
func (h *BuildingHandler) List(c *gin.Context) {
	req := parseListCatalogRequest(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListBuildingsQuery{
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

// Update handles PUT /buildings/:id
func (h *BuildingHandler) Update(c *gin.Context) {
	buildingID, err := parseIDParam(c, "building")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update building", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateBuildingCommand{
		BuildingID: buildingID,
		Name:       req.Name,
		Address:    req.Address,
		AdminName:  req.AdminName,
		Active:     req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Building updated successfully", result)
}

// Delete handles DELETE /buildings/:id
func (h *BuildingHandler) Delete(c *gin.Context) {
	buildingID, err := parseIDParam(c, "building")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteBuildingCommand{BuildingID: buildingID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
