package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"zelador/internal/shared/errors"
)

type CreateBuildingRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Address   string `json:"address" binding:"required,max=500"`
	AdminName string `json:"admin_name,omitempty" binding:"max=200"`
}

type UpdateBuildingRequest struct {
	Name      string `json:"name,omitempty" binding:"max=200"`
	Address   string `json:"address,omitempty" binding:"max=500"`
	AdminName string `json:"admin_name,omitempty" binding:"max=200"`
	Active    *bool  `json:"active,omitempty"`
}

type CreateSupplierRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty" binding:"max=50"`
	Trade string `json:"trade,omitempty" binding:"max=100"`
}

type UpdateSupplierRequest struct {
	Name   string `json:"name,omitempty" binding:"max=200"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty" binding:"max=50"`
	Trade  string `json:"trade,omitempty" binding:"max=100"`
	Active *bool  `json:"active,omitempty"`
}

type CreateInterventionTypeRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description,omitempty" binding:"max=1000"`
}

type UpdateInterventionTypeRequest struct {
	Name        string `json:"name,omitempty" binding:"max=200"`
	Description string `json:"description,omitempty" binding:"max=1000"`
	Active      *bool  `json:"active,omitempty"`
}

// ListCatalogRequest covers the shared listing query parameters of the three
// catalog collections.
type ListCatalogRequest struct {
	ActiveOnly bool
	Search     string
	Page       int
	PageSize   int
}

func parseListCatalogRequest(c *gin.Context) ListCatalogRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return ListCatalogRequest{
		ActiveOnly: c.Query("active_only") == "true",
		Search:     c.Query("search"),
		Page:       page,
		PageSize:   pageSize,
	}
}

func parseIDParam(c *gin.Context, label string) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + label + " ID")
	}
	return uint(id), nil
}
