package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zelador/internal/application/catalog/usecases"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
	"zelador/internal/shared/utils"
)

type SupplierHandler struct {
	createUC *usecases.CreateSupplierUseCase
	getUC    *usecases.GetSupplierUseCase
	listUC   *usecases.ListSuppliersUseCase
	updateUC *usecases.UpdateSupplierUseCase
	deleteUC *usecases.DeleteSupplierUseCase
	logger   logger.Interface
}

func NewSupplierHandler(
	createUC *usecases.CreateSupplierUseCase,
	getUC *usecases.GetSupplierUseCase,
	listUC *usecases.ListSuppliersUseCase,
	updateUC *usecases.UpdateSupplierUseCase,
	deleteUC *usecases.DeleteSupplierUseCase,
) *SupplierHandler {
	return &SupplierHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger.NewLogger(),
	}
}

// Create handles POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create supplier", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSupplierCommand{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Trade: req.Trade,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Supplier created successfully")
}

// Get handles GET /suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	supplierID, err := parseIDParam(c, "supplier")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetSupplierQuery{SupplierID: supplierID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	req := parseListCatalogRequest(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListSuppliersQuery{
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

// Update handles PUT /suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, err := parseIDParam(c, "supplier")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update supplier", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateSupplierCommand{
		SupplierID: supplierID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Trade:      req.Trade,
		Active:     req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Supplier updated successfully", result)
}

// Delete handles DELETE /suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, err := parseIDParam(c, "supplier")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteSupplierCommand{SupplierID: supplierID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
