package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopzeo/internal/models"
	"shopzeo/internal/repository"
)

type StoresHandler struct {
	repo   *repository.StoresRepository
	logger *logrus.Entry
}

func NewStoresHandler(repo *repository.StoresRepository, logger *logrus.Entry) *StoresHandler {
	return &StoresHandler{repo: repo, logger: logger}
}

// CreateStore creates a new vendor store
// POST /api/stores
func (h *StoresHandler) CreateStore(c *gin.Context) {
	var req models.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	store := &models.Store{
		Name:          req.Name,
		Description:   req.Description,
		Logo:          req.Logo,
		Banner:        req.Banner,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		GSTNumber:     req.GSTNumber,
		GSTPercentage: req.GSTPercentage,
		IsActive:      true,
	}
	if req.CommissionRate != nil {
		store.CommissionRate = *req.CommissionRate
	} else {
		store.CommissionRate = 15
	}

	if err := h.repo.CreateStore(store); err != nil {
		h.logger.WithError(err).Error("Failed to create store")
		respondInternal(c, "CREATION_FAILED", "Failed to create store")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    store,
		Message: stringPtr("Store created successfully"),
	})
}

// GetStores lists stores with pagination and filters
// GET /api/stores
func (h *StoresHandler) GetStores(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := repository.StoreListFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("isActive"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}
	if raw := c.Query("isVerified"); raw != "" {
		verified := raw == "true"
		filter.IsVerified = &verified
	}

	stores, total, err := h.repo.GetStores(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list stores")
		respondInternal(c, "LIST_FAILED", "Failed to retrieve stores")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       stores,
		Pagination: paginationInfo(page, limit, total),
	})
}

// GetStore retrieves one store by ID
// GET /api/stores/:id
func (h *StoresHandler) GetStore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	store, err := h.repo.GetStoreByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Store not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load store")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve store")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: store})
}

// UpdateStore applies a partial update to a store
// PUT /api/stores/:id
func (h *StoresHandler) UpdateStore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateStoreRequest
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
	if req.Logo != nil {
		updates["logo"] = *req.Logo
	}
	if req.Banner != nil {
		updates["banner"] = *req.Banner
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.GSTNumber != nil {
		updates["gst_number"] = *req.GSTNumber
	}
	if req.GSTPercentage != nil {
		updates["gst_percentage"] = *req.GSTPercentage
	}
	if req.CommissionRate != nil {
		updates["commission_rate"] = *req.CommissionRate
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "EMPTY_UPDATE", Message: "No fields to update"},
		})
		return
	}

	if err := h.repo.UpdateStoreFields(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Store not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update store")
		respondInternal(c, "UPDATE_FAILED", "Failed to update store")
		return
	}

	store, err := h.repo.GetStoreByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload store after update")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve store")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    store,
		Message: stringPtr("Store updated successfully"),
	})
}

// ToggleStoreStatus flips a store's active flag
// PATCH /api/stores/:id/status
func (h *StoresHandler) ToggleStoreStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	store, err := h.repo.ToggleStoreStatus(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Store not found")
			return
		}
		h.logger.WithError(err).Error("Failed to toggle store status")
		respondInternal(c, "UPDATE_FAILED", "Failed to toggle store status")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    store,
		Message: stringPtr("Store status updated"),
	})
}

// ToggleStoreVerification flips a store's verified flag
// PATCH /api/stores/:id/verification
func (h *StoresHandler) ToggleStoreVerification(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	store, err := h.repo.ToggleStoreVerification(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Store not found")
			return
		}
		h.logger.WithError(err).Error("Failed to toggle store verification")
		respondInternal(c, "UPDATE_FAILED", "Failed to toggle store verification")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    store,
		Message: stringPtr("Store verification updated"),
	})
}

// DeleteStore soft deletes a store
// DELETE /api/stores/:id
func (h *StoresHandler) DeleteStore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteStore(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Store not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete store")
		respondInternal(c, "DELETE_FAILED", "Failed to delete store")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Store deleted successfully"),
	})
}

// ExportStores downloads every store as a CSV file
// GET /api/stores/export
func (h *StoresHandler) ExportStores(c *gin.Context) {
	stores, err := h.repo.GetAllStores()
	if err != nil {
		h.logger.WithError(err).Error("Failed to export stores")
		respondInternal(c, "EXPORT_FAILED", "Failed to export stores")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=stores_%s.csv", time.Now().Format("2006-01-02")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"ID", "Name", "Slug", "Email", "Phone", "Address", "GST Number", "Commission Rate", "Rating", "Total Products", "Active", "Verified", "Created At"})
	for _, store := range stores {
		writer.Write([]string{
			store.ID.String(),
			store.Name,
			store.Slug,
			derefString(store.Email),
			derefString(store.Phone),
			derefString(store.Address),
			derefString(store.GSTNumber),
			strconv.FormatFloat(store.CommissionRate, 'f', 2, 64),
			strconv.FormatFloat(store.Rating, 'f', 2, 64),
			strconv.Itoa(store.TotalProducts),
			strconv.FormatBool(store.IsActive),
			strconv.FormatBool(store.IsVerified),
			store.CreatedAt.Format(time.RFC3339),
		})
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
