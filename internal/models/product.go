package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog product. Media URLs are stored comma-joined
// in column order, matching the CSV import contract.
type Product struct {
	ID                      uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SkuID                   string          `json:"skuId" gorm:"column:sku_id;not null;uniqueIndex:idx_products_sku_id"`
	ProductCode             *string         `json:"productCode,omitempty" gorm:"column:product_code"`
	AmazonASIN              *string         `json:"amazonAsin,omitempty" gorm:"column:amazon_asin"`
	Name                    string          `json:"name" gorm:"not null"`
	Slug                    string          `json:"slug" gorm:"not null;index"`
	Description             *string         `json:"description,omitempty"`
	SellingPrice            *float64        `json:"sellingPrice,omitempty" gorm:"type:decimal(10,2)"`
	BillingPriceMRP         *float64        `json:"mrp,omitempty" gorm:"column:billing_price_mrp;type:decimal(10,2)"`
	CostPrice               *float64        `json:"costPrice,omitempty" gorm:"type:decimal(10,2)"`
	GSTPercentage           *float64        `json:"gstPercentage,omitempty" gorm:"column:gst_percentage;type:decimal(5,2)"`
	Quantity                *int            `json:"quantity,omitempty"`
	PackagingLength         *float64        `json:"packagingLength,omitempty" gorm:"type:decimal(10,2)"`
	PackagingWidth          *float64        `json:"packagingWidth,omitempty" gorm:"type:decimal(10,2)"`
	PackagingHeight         *float64        `json:"packagingHeight,omitempty" gorm:"type:decimal(10,2)"`
	PackagingWeight         *float64        `json:"packagingWeight,omitempty" gorm:"type:decimal(10,2)"`
	Images                  *string         `json:"images,omitempty"`
	Videos                  *string         `json:"videos,omitempty"`
	ProductType             *string         `json:"productType,omitempty"`
	Size                    *string         `json:"size,omitempty"`
	Colour                  *string         `json:"colour,omitempty"`
	ReturnExchangeCondition *string         `json:"returnExchangeCondition,omitempty"`
	HSNCode                 *string         `json:"hsnCode,omitempty" gorm:"column:hsn_code"`
	CustomisationID         *string         `json:"customisationId,omitempty" gorm:"column:customisation_id"`
	CategoryID              uuid.UUID       `json:"categoryId" gorm:"type:uuid;not null;index"`
	SubCategoryID           *uuid.UUID      `json:"subCategoryId,omitempty" gorm:"type:uuid;index"`
	StoreID                 uuid.UUID       `json:"storeId" gorm:"type:uuid;not null;index"`
	IsActive                bool            `json:"isActive" gorm:"not null;default:true"`
	IsFeatured              bool            `json:"isFeatured" gorm:"not null;default:false"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
	DeletedAt               *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Category represents a top-level product category
type Category struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string          `json:"name" gorm:"not null"`
	Slug        string          `json:"slug" gorm:"not null;uniqueIndex"`
	Description *string         `json:"description,omitempty"`
	Image       *string         `json:"image,omitempty"`
	IsActive    bool            `json:"isActive" gorm:"not null;default:true"`
	SortOrder   int             `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// SubCategory represents a category child; names are only unique within a category
type SubCategory struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CategoryID uuid.UUID       `json:"categoryId" gorm:"type:uuid;not null;index"`
	Name       string          `json:"name" gorm:"not null"`
	Slug       string          `json:"slug" gorm:"not null;index"`
	Image      *string         `json:"image,omitempty"`
	IsActive   bool            `json:"isActive" gorm:"not null;default:true"`
	SortOrder  int             `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	DeletedAt  *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Store represents a vendor storefront
type Store struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string          `json:"name" gorm:"not null"`
	Slug           string          `json:"slug" gorm:"not null;uniqueIndex"`
	Description    *string         `json:"description,omitempty"`
	Logo           *string         `json:"logo,omitempty"`
	Banner         *string         `json:"banner,omitempty"`
	Address        *string         `json:"address,omitempty"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	GSTNumber      *string         `json:"gstNumber,omitempty" gorm:"column:gst_number"`
	GSTPercentage  *float64        `json:"gstPercentage,omitempty" gorm:"column:gst_percentage;type:decimal(5,2)"`
	CommissionRate float64         `json:"commissionRate" gorm:"not null;default:15"`
	Rating         float64         `json:"rating" gorm:"not null;default:0"`
	TotalProducts  int             `json:"totalProducts" gorm:"not null;default:0"`
	IsActive       bool            `json:"isActive" gorm:"not null;default:true"`
	IsVerified     bool            `json:"isVerified" gorm:"not null;default:false"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Brand represents a product brand
type Brand struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string          `json:"name" gorm:"not null"`
	Slug      string          `json:"slug" gorm:"not null;uniqueIndex"`
	Logo      *string         `json:"logo,omitempty"`
	IsActive  bool            `json:"isActive" gorm:"not null;default:true"`
	SortOrder int             `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// BannerType enumerates banner placement targets
type BannerType string

const (
	BannerTypeStoreWise    BannerType = "store_wise"
	BannerTypeItemWise     BannerType = "item_wise"
	BannerTypeCategoryWise BannerType = "category_wise"
	BannerTypeCommon       BannerType = "common"
)

// Banner represents a promotional banner placed in a zone (1=homepage, 2=category page)
type Banner struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       *string         `json:"title,omitempty"`
	Type        BannerType      `json:"type" gorm:"not null"`
	Image       *string         `json:"image,omitempty"`
	Data        *string         `json:"data,omitempty"`
	DefaultLink *string         `json:"defaultLink,omitempty"`
	ZoneID      int64           `json:"zoneId" gorm:"column:zone_id;not null;default:1"`
	IsFeatured  bool            `json:"isFeatured" gorm:"not null;default:false"`
	IsActive    bool            `json:"isActive" gorm:"not null;default:true"`
	CreatedBy   string          `json:"createdBy" gorm:"not null;default:'admin'"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Request types

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SkuID                   string     `json:"skuId" binding:"required"`
	ProductCode             *string    `json:"productCode,omitempty"`
	AmazonASIN              *string    `json:"amazonAsin,omitempty"`
	Name                    string     `json:"name" binding:"required"`
	Description             *string    `json:"description,omitempty"`
	SellingPrice            *float64   `json:"sellingPrice,omitempty"`
	BillingPriceMRP         *float64   `json:"mrp,omitempty"`
	CostPrice               *float64   `json:"costPrice,omitempty"`
	GSTPercentage           *float64   `json:"gstPercentage,omitempty"`
	Quantity                *int       `json:"quantity,omitempty"`
	PackagingLength         *float64   `json:"packagingLength,omitempty"`
	PackagingWidth          *float64   `json:"packagingWidth,omitempty"`
	PackagingHeight         *float64   `json:"packagingHeight,omitempty"`
	PackagingWeight         *float64   `json:"packagingWeight,omitempty"`
	Images                  []string   `json:"images,omitempty"`
	Videos                  []string   `json:"videos,omitempty"`
	ProductType             *string    `json:"productType,omitempty"`
	Size                    *string    `json:"size,omitempty"`
	Colour                  *string    `json:"colour,omitempty"`
	ReturnExchangeCondition *string    `json:"returnExchangeCondition,omitempty"`
	HSNCode                 *string    `json:"hsnCode,omitempty"`
	CustomisationID         *string    `json:"customisationId,omitempty"`
	CategoryID              uuid.UUID  `json:"categoryId" binding:"required"`
	SubCategoryID           *uuid.UUID `json:"subCategoryId,omitempty"`
	StoreID                 uuid.UUID  `json:"storeId" binding:"required"`
}

// UpdateProductRequest represents a request to update a product; nil fields are left unchanged
type UpdateProductRequest struct {
	ProductCode             *string    `json:"productCode,omitempty"`
	AmazonASIN              *string    `json:"amazonAsin,omitempty"`
	Name                    *string    `json:"name,omitempty"`
	Description             *string    `json:"description,omitempty"`
	SellingPrice            *float64   `json:"sellingPrice,omitempty"`
	BillingPriceMRP         *float64   `json:"mrp,omitempty"`
	CostPrice               *float64   `json:"costPrice,omitempty"`
	GSTPercentage           *float64   `json:"gstPercentage,omitempty"`
	Quantity                *int       `json:"quantity,omitempty"`
	PackagingLength         *float64   `json:"packagingLength,omitempty"`
	PackagingWidth          *float64   `json:"packagingWidth,omitempty"`
	PackagingHeight         *float64   `json:"packagingHeight,omitempty"`
	PackagingWeight         *float64   `json:"packagingWeight,omitempty"`
	Images                  []string   `json:"images,omitempty"`
	Videos                  []string   `json:"videos,omitempty"`
	ProductType             *string    `json:"productType,omitempty"`
	Size                    *string    `json:"size,omitempty"`
	Colour                  *string    `json:"colour,omitempty"`
	ReturnExchangeCondition *string    `json:"returnExchangeCondition,omitempty"`
	HSNCode                 *string    `json:"hsnCode,omitempty"`
	CustomisationID         *string    `json:"customisationId,omitempty"`
	CategoryID              *uuid.UUID `json:"categoryId,omitempty"`
	SubCategoryID           *uuid.UUID `json:"subCategoryId,omitempty"`
	StoreID                 *uuid.UUID `json:"storeId,omitempty"`
	IsActive                *bool      `json:"isActive,omitempty"`
	IsFeatured              *bool      `json:"isFeatured,omitempty"`
}

// CreateStoreRequest represents a request to create a store
type CreateStoreRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    *string  `json:"description,omitempty"`
	Logo           *string  `json:"logo,omitempty"`
	Banner         *string  `json:"banner,omitempty"`
	Address        *string  `json:"address,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Email          *string  `json:"email,omitempty"`
	GSTNumber      *string  `json:"gstNumber,omitempty"`
	GSTPercentage  *float64 `json:"gstPercentage,omitempty"`
	CommissionRate *float64 `json:"commissionRate,omitempty"`
}

// UpdateStoreRequest represents a request to update a store
type UpdateStoreRequest struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Logo           *string  `json:"logo,omitempty"`
	Banner         *string  `json:"banner,omitempty"`
	Address        *string  `json:"address,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Email          *string  `json:"email,omitempty"`
	GSTNumber      *string  `json:"gstNumber,omitempty"`
	GSTPercentage  *float64 `json:"gstPercentage,omitempty"`
	CommissionRate *float64 `json:"commissionRate,omitempty"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
}

// CreateSubCategoryRequest represents a request to create a subcategory
type CreateSubCategoryRequest struct {
	CategoryID uuid.UUID `json:"categoryId" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	Image      *string   `json:"image,omitempty"`
	SortOrder  *int      `json:"sortOrder,omitempty"`
}

// UpdateSubCategoryRequest represents a request to update a subcategory
type UpdateSubCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	Image     *string `json:"image,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name      string  `json:"name" binding:"required"`
	Logo      *string `json:"logo,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// UpdateBrandRequest represents a request to update a brand
type UpdateBrandRequest struct {
	Name      *string `json:"name,omitempty"`
	Logo      *string `json:"logo,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// CreateBannerRequest represents a request to create a banner
type CreateBannerRequest struct {
	Title       *string    `json:"title,omitempty"`
	Type        BannerType `json:"type" binding:"required"`
	Image       *string    `json:"image,omitempty"`
	Data        *string    `json:"data,omitempty"`
	DefaultLink *string    `json:"defaultLink,omitempty"`
	ZoneID      *int64     `json:"zoneId,omitempty"`
	IsFeatured  *bool      `json:"isFeatured,omitempty"`
}

// UpdateBannerRequest represents a request to update a banner
type UpdateBannerRequest struct {
	Title       *string     `json:"title,omitempty"`
	Type        *BannerType `json:"type,omitempty"`
	Image       *string     `json:"image,omitempty"`
	Data        *string     `json:"data,omitempty"`
	DefaultLink *string     `json:"defaultLink,omitempty"`
	ZoneID      *int64      `json:"zoneId,omitempty"`
	IsFeatured  *bool       `json:"isFeatured,omitempty"`
	IsActive    *bool       `json:"isActive,omitempty"`
}

// Response types

type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

type ListResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// TableName returns the table name for the SubCategory model
func (SubCategory) TableName() string {
	return "sub_categories"
}

// TableName returns the table name for the Store model
func (Store) TableName() string {
	return "stores"
}

// TableName returns the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}

// TableName returns the table name for the Banner model
func (Banner) TableName() string {
	return "banners"
}
