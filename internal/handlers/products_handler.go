package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopzeo/internal/events"
	"shopzeo/internal/models"
	"shopzeo/internal/repository"
)

type ProductsHandler struct {
	repo      *repository.ProductsRepository
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewProductsHandler(repo *repository.ProductsRepository, publisher *events.Publisher, logger *logrus.Entry) *ProductsHandler {
	return &ProductsHandler{repo: repo, publisher: publisher, logger: logger}
}

// CreateProduct creates a new product
// POST /api/products
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product := &models.Product{
		SkuID:                   req.SkuID,
		ProductCode:             req.ProductCode,
		AmazonASIN:              req.AmazonASIN,
		Name:                    req.Name,
		Description:             req.Description,
		SellingPrice:            req.SellingPrice,
		BillingPriceMRP:         req.BillingPriceMRP,
		CostPrice:               req.CostPrice,
		GSTPercentage:           req.GSTPercentage,
		Quantity:                req.Quantity,
		PackagingLength:         req.PackagingLength,
		PackagingWidth:          req.PackagingWidth,
		PackagingHeight:         req.PackagingHeight,
		PackagingWeight:         req.PackagingWeight,
		ProductType:             req.ProductType,
		Size:                    req.Size,
		Colour:                  req.Colour,
		ReturnExchangeCondition: req.ReturnExchangeCondition,
		HSNCode:                 req.HSNCode,
		CustomisationID:         req.CustomisationID,
		CategoryID:              req.CategoryID,
		SubCategoryID:           req.SubCategoryID,
		StoreID:                 req.StoreID,
		IsActive:                true,
	}
	if len(req.Images) > 0 {
		joined := strings.Join(req.Images, ",")
		product.Images = &joined
	}
	if len(req.Videos) > 0 {
		joined := strings.Join(req.Videos, ",")
		product.Videos = &joined
	}

	if err := h.repo.CreateProduct(product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_SKU",
					Message: "A product with this SKU already exists",
					Field:   "skuId",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create product")
		respondInternal(c, "CREATION_FAILED", "Failed to create product")
		return
	}

	h.publisher.PublishProductCreated(c.Request.Context(), product)

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product created successfully"),
	})
}

// GetProducts lists products with pagination and filters
// GET /api/products
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := repository.ProductListFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_ID", Message: "categoryId must be a valid UUID", Field: "categoryId"},
			})
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("storeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_ID", Message: "storeId must be a valid UUID", Field: "storeId"},
			})
			return
		}
		filter.StoreID = &id
	}
	if raw := c.Query("isActive"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	products, total, err := h.repo.GetProducts(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		respondInternal(c, "LIST_FAILED", "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       products,
		Pagination: paginationInfo(page, limit, total),
	})
}

// GetProduct retrieves one product by ID
// GET /api/products/:id
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.repo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load product")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// UpdateProduct applies a partial update to a product
// PUT /api/products/:id
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ProductCode != nil {
		updates["product_code"] = *req.ProductCode
	}
	if req.AmazonASIN != nil {
		updates["amazon_asin"] = *req.AmazonASIN
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.SellingPrice != nil {
		updates["selling_price"] = *req.SellingPrice
	}
	if req.BillingPriceMRP != nil {
		updates["billing_price_mrp"] = *req.BillingPriceMRP
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.GSTPercentage != nil {
		updates["gst_percentage"] = *req.GSTPercentage
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.PackagingLength != nil {
		updates["packaging_length"] = *req.PackagingLength
	}
	if req.PackagingWidth != nil {
		updates["packaging_width"] = *req.PackagingWidth
	}
	if req.PackagingHeight != nil {
		updates["packaging_height"] = *req.PackagingHeight
	}
	if req.PackagingWeight != nil {
		updates["packaging_weight"] = *req.PackagingWeight
	}
	if len(req.Images) > 0 {
		updates["images"] = strings.Join(req.Images, ",")
	}
	if len(req.Videos) > 0 {
		updates["videos"] = strings.Join(req.Videos, ",")
	}
	if req.ProductType != nil {
		updates["product_type"] = *req.ProductType
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if req.Colour != nil {
		updates["colour"] = *req.Colour
	}
	if req.ReturnExchangeCondition != nil {
		updates["return_exchange_condition"] = *req.ReturnExchangeCondition
	}
	if req.HSNCode != nil {
		updates["hsn_code"] = *req.HSNCode
	}
	if req.CustomisationID != nil {
		updates["customisation_id"] = *req.CustomisationID
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.SubCategoryID != nil {
		updates["sub_category_id"] = *req.SubCategoryID
	}
	if req.StoreID != nil {
		updates["store_id"] = *req.StoreID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "EMPTY_UPDATE", Message: "No fields to update"},
		})
		return
	}

	if err := h.repo.UpdateProductFields(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update product")
		respondInternal(c, "UPDATE_FAILED", "Failed to update product")
		return
	}

	product, err := h.repo.GetProductByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload product after update")
		respondInternal(c, "FETCH_FAILED", "Failed to retrieve product")
		return
	}

	h.publisher.PublishProductUpdated(c.Request.Context(), product)

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product updated successfully"),
	})
}

// ToggleProductStatus flips a product's active flag
// PATCH /api/products/:id/status
func (h *ProductsHandler) ToggleProductStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.repo.ToggleProductStatus(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to toggle product status")
		respondInternal(c, "UPDATE_FAILED", "Failed to toggle product status")
		return
	}

	h.publisher.PublishProductUpdated(c.Request.Context(), product)

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product status updated"),
	})
}

// ToggleProductFeatured flips a product's featured flag
// PATCH /api/products/:id/featured
func (h *ProductsHandler) ToggleProductFeatured(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.repo.ToggleProductFeatured(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to toggle product featured flag")
		respondInternal(c, "UPDATE_FAILED", "Failed to toggle product featured flag")
		return
	}

	h.publisher.PublishProductUpdated(c.Request.Context(), product)

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product featured flag updated"),
	})
}

// DeleteProduct soft deletes a product
// DELETE /api/products/:id
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteProduct(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete product")
		respondInternal(c, "DELETE_FAILED", "Failed to delete product")
		return
	}

	h.publisher.PublishProductDeleted(c.Request.Context(), id)

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Product deleted successfully"),
	})
}
