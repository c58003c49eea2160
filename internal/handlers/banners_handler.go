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

var validBannerTypes = map[models.BannerType]struct{}{
	models.BannerTypeStoreWise:    {},
	models.BannerTypeItemWise:     {},
	models.BannerTypeCategoryWise: {},
	models.BannerTypeCommon:       {},
}

type BannersHandler struct {
	repo   repository.BannersRepositoryInterface
	logger *logrus.Entry
}

func NewBannersHandler(repo repository.BannersRepositoryInterface, logger *logrus.Entry) *BannersHandler {
	return &BannersHandler{repo: repo, logger: logger}
}

// CreateBanner creates a new promotional banner
// POST /api/banners
func (h *BannersHandler) CreateBanner(c *gin.Context) {
	var req models.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if _, ok := validBannerTypes[req.Type]; !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_TYPE",
				Message: "type must be one of store_wise, item_wise, category_wise, common",
				Field:   "type",
			},
		})
		return
	}

	banner := &models.Banner{
		Title:       req.Title,
		Type:        req.Type,
		Image:       req.Image,
		Data:        req.Data,
		DefaultLink: req.DefaultLink,
		ZoneID:      1,
		IsActive:    true,
		CreatedBy:   "admin",
	}
	if req.ZoneID != nil {
		banner.ZoneID = *req.ZoneID
	}
	if req.IsFeatured != nil {
		banner.IsFeatured = *req.IsFeatured
	}
	if userID, ok := c.Get("user_id"); ok {
		if s, ok := userID.(string); ok && s != "" {
			banner.CreatedBy = s
		}
	}

	if err := h.repo.CreateBanner(banner); err != nil {
		h.logger.WithError(err).Error("Failed to create banner")
		respondInternal(c, "CREATION_FAILED", "Failed to create banner")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    banner,
		Message: stringPtr("Banner created successfully"),
	})
}

// GetBanners lists banners with pagination and filters
// GET /api/banners
func (h *BannersHandler) GetBanners(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := repository.BannerListFilter{
		BannerType: c.Query("type"),
		Page:       page,
		Limit:      limit,
	}
	if raw := c.Query("isActive"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	banners, total, err := h.repo.GetBanners(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list banners")
		respondInternal(c, "LIST_FAILED", "Failed to retrieve banners")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       banners,
		Pagination: paginationInfo(page, limit, total),
	})
}

// GetBanner retrieves one banner by ID
// GET /api/banners/:id
func (h *BannersHandler) GetBanner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	banner, err := h.repo.GetBannerByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Banner not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load banner")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve banner")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: banner})
}

// UpdateBanner applies a partial update to a banner
// PUT /api/banners/:id
func (h *BannersHandler) UpdateBanner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Type != nil {
		if _, ok := validBannerTypes[*req.Type]; !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "INVALID_TYPE",
					Message: "type must be one of store_wise, item_wise, category_wise, common",
					Field:   "type",
				},
			})
			return
		}
		updates["type"] = *req.Type
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Data != nil {
		updates["data"] = *req.Data
	}
	if req.DefaultLink != nil {
		updates["default_link"] = *req.DefaultLink
	}
	if req.ZoneID != nil {
		updates["zone_id"] = *req.ZoneID
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "EMPTY_UPDATE", Message: "No fields to update"},
		})
		return
	}

	if err := h.repo.UpdateBannerFields(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Banner not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update banner")
		respondInternal(c, "UPDATE_FAILED", "Failed to update banner")
		return
	}

	banner, err := h.repo.GetBannerByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload banner after update")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve banner")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    banner,
		Message: stringPtr("Banner updated successfully"),
	})
}

// ToggleBannerStatus flips a banner's active flag
// PATCH /api/banners/:id/status
func (h *BannersHandler) ToggleBannerStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	banner, err := h.repo.ToggleBannerStatus(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Banner not found")
			return
		}
		h.logger.WithError(err).Error("Failed to toggle banner status")
		respondInternal(c, "UPDATE_FAILED", "Failed to toggle banner status")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    banner,
		Message: stringPtr("Banner status updated"),
	})
}

// DeleteBanner soft deletes a banner
// DELETE /api/banners/:id
func (h *BannersHandler) DeleteBanner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteBanner(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Banner not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete banner")
		respondInternal(c, "DELETE_FAILED", "Failed to delete banner")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Banner deleted successfully"),
	})
}
