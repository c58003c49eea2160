package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shopzeo/internal/models"
)

// CatalogRepository manages categories, subcategories and brands
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCatalogRepository(db *gorm.DB, redis *redis.Client) *CatalogRepository {
	return &CatalogRepository{db: db, redis: redis}
}

func (r *CatalogRepository) invalidateCategoryListCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, "shopzeo:categories:list:*", 100).Iterator()
	for iter.Next(ctx) {
		r.redis.Del(ctx, iter.Val())
	}
}

// Category operations

func (r *CatalogRepository) CreateCategory(category *models.Category) error {
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.Slug == "" {
		category.Slug = models.GenerateSlug(category.Name)
	}

	err := r.db.Create(category).Error
	if err == nil {
		r.invalidateCategoryListCache(context.Background())
	}
	return err
}

// GetCategories retrieves categories with pagination, cached per page
func (r *CatalogRepository) GetCategories(page, limit int) ([]models.Category, int64, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("shopzeo:categories:list:%d:%d", page, limit)

	type categoriesResult struct {
		Categories []models.Category `json:"categories"`
		Total      int64             `json:"total"`
	}

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached categoriesResult
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Categories, cached.Total, nil
			}
		}
	}

	var categories []models.Category
	var total int64
	query := r.db.Model(&models.Category{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("sort_order ASC, name ASC").Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(categoriesResult{Categories: categories, Total: total}); err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryCacheTTL)
		}
	}

	return categories, total, nil
}

func (r *CatalogRepository) GetCategoryByID(categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) UpdateCategoryFields(categoryID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Category{}).Where("id = ?", categoryID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateCategoryListCache(context.Background())
	return nil
}

func (r *CatalogRepository) DeleteCategory(categoryID uuid.UUID) error {
	result := r.db.Where("id = ?", categoryID).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateCategoryListCache(context.Background())
	return nil
}

// SubCategory operations

func (r *CatalogRepository) CreateSubCategory(subCategory *models.SubCategory) error {
	subCategory.CreatedAt = time.Now()
	subCategory.UpdatedAt = time.Now()
	if subCategory.ID == uuid.Nil {
		subCategory.ID = uuid.New()
	}
	if subCategory.Slug == "" {
		subCategory.Slug = models.GenerateSlug(subCategory.Name)
	}
	return r.db.Create(subCategory).Error
}

// GetSubCategories retrieves subcategories, optionally scoped to one category
func (r *CatalogRepository) GetSubCategories(categoryID *uuid.UUID, page, limit int) ([]models.SubCategory, int64, error) {
	var subCategories []models.SubCategory
	var total int64

	query := r.db.Model(&models.SubCategory{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("sort_order ASC, name ASC").Offset(offset).Limit(limit).Find(&subCategories).Error; err != nil {
		return nil, 0, err
	}
	return subCategories, total, nil
}

func (r *CatalogRepository) GetSubCategoryByID(subCategoryID uuid.UUID) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	if err := r.db.Where("id = ?", subCategoryID).First(&subCategory).Error; err != nil {
		return nil, err
	}
	return &subCategory, nil
}

func (r *CatalogRepository) UpdateSubCategoryFields(subCategoryID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.SubCategory{}).Where("id = ?", subCategoryID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteSubCategory(subCategoryID uuid.UUID) error {
	result := r.db.Where("id = ?", subCategoryID).Delete(&models.SubCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Brand operations

func (r *CatalogRepository) CreateBrand(brand *models.Brand) error {
	brand.CreatedAt = time.Now()
	brand.UpdatedAt = time.Now()
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	if brand.Slug == "" {
		brand.Slug = models.GenerateSlug(brand.Name)
	}
	return r.db.Create(brand).Error
}

func (r *CatalogRepository) GetBrands(page, limit int) ([]models.Brand, int64, error) {
	var brands []models.Brand
	var total int64

	query := r.db.Model(&models.Brand{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("sort_order ASC, name ASC").Offset(offset).Limit(limit).Find(&brands).Error; err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

func (r *CatalogRepository) GetBrandByID(brandID uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.Where("id = ?", brandID).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *CatalogRepository) UpdateBrandFields(brandID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Brand{}).Where("id = ?", brandID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteBrand(brandID uuid.UUID) error {
	result := r.db.Where("id = ?", brandID).Delete(&models.Brand{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
