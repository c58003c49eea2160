package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopzeo/internal/models"
	"shopzeo/internal/repository"
)

type BrandsHandler struct {
	repo   *repository.CatalogRepository
	logger *logrus.Entry
}

func NewBrandsHandler(repo *repository.CatalogRepository, logger *logrus.Entry) *BrandsHandler {
	return &BrandsHandler{repo: repo, logger: logger}
}

// CreateBrand creates a new brand
// POST /api/brands
func (h *BrandsHandler) CreateBrand(c *gin.Context) {
	var req models.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	brand := &models.Brand{
		Name:     req.Name,
		Logo:     req.Logo,
		IsActive: true,
	}
	if req.SortOrder != nil {
		brand.SortOrder = *req.SortOrder
	}

	if err := h.repo.CreateBrand(brand); err != nil {
		h.logger.WithError(err).Error("Failed to create brand")
		respondInternal(c, "CREATION_FAILED", "Failed to create brand")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    brand,
		Message: stringPtr("Brand created successfully"),
	})
}

// GetBrands lists brands with pagination
// GET /api/brands
func (h *BrandsHandler) GetBrands(c *gin.Context) {
	page, limit := parsePagination(c)

	brands, total, err := h.repo.GetBrands(page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list brands")
		respondInternal(c, "LIST_FAILED", "Failed to retrieve brands")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       brands,
		Pagination: paginationInfo(page, limit, total),
	})
}

// GetBrand retrieves one brand by ID
// GET /api/brands/:id
func (h *BrandsHandler) GetBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	brand, err := h.repo.GetBrandByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Brand not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load brand")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve brand")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: brand})
}

// UpdateBrand applies a partial update to a brand
// PUT /api/brands/:id
func (h *BrandsHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Logo != nil {
		updates["logo"] = *req.Logo
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "EMPTY_UPDATE", Message: "No fields to update"},
		})
		return
	}

	if err := h.repo.UpdateBrandFields(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Brand not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update brand")
		respondInternal(c, "UPDATE_FAILED", "Failed to update brand")
		return
	}

	brand, err := h.repo.GetBrandByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload brand after update")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve brand")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    brand,
		Message: stringPtr("Brand updated successfully"),
	})
}

// DeleteBrand soft deletes a brand
// DELETE /api/brands/:id
func (h *BrandsHandler) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteBrand(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Brand not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete brand")
		respondInternal(c, "DELETE_FAILED", "Failed to delete brand")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Brand deleted successfully"),
	})
}
