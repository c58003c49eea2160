package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopzeo/internal/models"
	"shopzeo/internal/repository"
)

type CategoriesHandler struct {
	repo   *repository.CatalogRepository
	logger *logrus.Entry
}

func NewCategoriesHandler(repo *repository.CatalogRepository, logger *logrus.Entry) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, logger: logger}
}

// CreateCategory creates a new category
// POST /api/categories
func (h *CategoriesHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    true,
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := h.repo.CreateCategory(category); err != nil {
		h.logger.WithError(err).Error("Failed to create category")
		respondInternal(c, "CREATION_FAILED", "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    category,
		Message: stringPtr("Category created successfully"),
	})
}

// GetCategories lists categories with pagination
// GET /api/categories
func (h *CategoriesHandler) GetCategories(c *gin.Context) {
	page, limit := parsePagination(c)

	categories, total, err := h.repo.GetCategories(page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list categories")
		respondInternal(c, "LIST_FAILED", "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       categories,
		Pagination: paginationInfo(page, limit, total),
	})
}

// GetCategory retrieves one category by ID
// GET /api/categories/:id
func (h *CategoriesHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.repo.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load category")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: category})
}

// UpdateCategory applies a partial update to a category
// PUT /api/categories/:id
func (h *CategoriesHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
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

	if err := h.repo.UpdateCategoryFields(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update category")
		respondInternal(c, "UPDATE_FAILED", "Failed to update category")
		return
	}

	category, err := h.repo.GetCategoryByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload category after update")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    category,
		Message: stringPtr("Category updated successfully"),
	})
}

// DeleteCategory soft deletes a category
// DELETE /api/categories/:id
func (h *CategoriesHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteCategory(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete category")
		respondInternal(c, "DELETE_FAILED", "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Category deleted successfully"),
	})
}

// CreateSubCategory creates a new subcategory under an existing category
// POST /api/subcategories
func (h *CategoriesHandler) CreateSubCategory(c *gin.Context) {
	var req models.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.repo.GetCategoryByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load parent category")
		respondInternal(c, "FETCH_FAILED", "Failed to verify parent category")
		return
	}

	subCategory := &models.SubCategory{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Image:      req.Image,
		IsActive:   true,
	}
	if req.SortOrder != nil {
		subCategory.SortOrder = *req.SortOrder
	}

	if err := h.repo.CreateSubCategory(subCategory); err != nil {
		h.logger.WithError(err).Error("Failed to create subcategory")
		respondInternal(c, "CREATION_FAILED", "Failed to create subcategory")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    subCategory,
		Message: stringPtr("Subcategory created successfully"),
	})
}

// GetSubCategories lists subcategories, optionally filtered by category
// GET /api/subcategories
func (h *CategoriesHandler) GetSubCategories(c *gin.Context) {
	page, limit := parsePagination(c)

	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_ID", Message: "categoryId must be a valid UUID", Field: "categoryId"},
			})
			return
		}
		categoryID = &id
	}

	subCategories, total, err := h.repo.GetSubCategories(categoryID, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list subcategories")
		respondInternal(c, "LIST_FAILED", "Failed to retrieve subcategories")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       subCategories,
		Pagination: paginationInfo(page, limit, total),
	})
}

// GetSubCategory retrieves one subcategory by ID
// GET /api/subcategories/:id
func (h *CategoriesHandler) GetSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	subCategory, err := h.repo.GetSubCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Subcategory not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load subcategory")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve subcategory")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: subCategory})
}

// UpdateSubCategory applies a partial update to a subcategory
// PUT /api/subcategories/:id
func (h *CategoriesHandler) UpdateSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Image != nil {
		updates["image"] = *req.Image
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

	if err := h.repo.UpdateSubCategoryFields(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Subcategory not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update subcategory")
		respondInternal(c, "UPDATE_FAILED", "Failed to update subcategory")
		return
	}

	subCategory, err := h.repo.GetSubCategoryByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload subcategory after update")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve subcategory")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    subCategory,
		Message: stringPtr("Subcategory updated successfully"),
	})
}

// DeleteSubCategory soft deletes a subcategory
// DELETE /api/subcategories/:id
func (h *CategoriesHandler) DeleteSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteSubCategory(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Subcategory not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete subcategory")
		respondInternal(c, "DELETE_FAILED", "Failed to delete subcategory")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Subcategory deleted successfully"),
	})
}
