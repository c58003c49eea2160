package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shopzeo/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL  = 5 * time.Minute
	CategoryCacheTTL = 30 * time.Minute // Categories rarely change
)

// ErrDuplicateSKU reports a unique-index violation on products.sku_id
var ErrDuplicateSKU = errors.New("a product with this SKU already exists")

// isUniqueViolation matches Postgres error class 23505 (unique_violation)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ImportRepositoryInterface is the persistence surface the bulk importer
// needs: reference-entity lookups, SKU lookup and product writes, all of
// which must run inside one import transaction via WithTransaction.
type ImportRepositoryInterface interface {
	CategoryByName(name string) (*models.Category, error)
	SubCategoryByName(name string, categoryID *uuid.UUID) (*models.SubCategory, error)
	StoreByName(name string) (*models.Store, error)
	ActiveStoreNames() ([]string, error)
	ProductBySKU(skuID string) (*models.Product, error)
	CreateProduct(product *models.Product) error
	SaveProduct(product *models.Product) error
	WithTransaction(fn func(ImportRepositoryInterface) error) error
}

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
	inTx  bool
}

// Ensure the repository satisfies the import surface
var _ ImportRepositoryInterface = (*ProductsRepository)(nil)

func NewProductsRepository(db *gorm.DB, redis *redis.Client) *ProductsRepository {
	return &ProductsRepository{db: db, redis: redis}
}

// WithTransaction runs fn against a transaction-scoped repository. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *ProductsRepository) WithTransaction(fn func(ImportRepositoryInterface) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ProductsRepository{db: tx, redis: r.redis, inTx: true})
	})
}

// invalidateProductCache drops the cached copy of a single product
func (r *ProductsRepository) invalidateProductCache(ctx context.Context, productID uuid.UUID) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, fmt.Sprintf("shopzeo:product:%s", productID.String()))
}

// Product CRUD operations

// CreateProduct creates a new product, generating a slug from the name when
// absent. A unique-index violation on sku_id is returned as ErrDuplicateSKU.
// Inside an import transaction the insert runs under a savepoint: on Postgres
// a constraint violation aborts the whole transaction otherwise, and the
// importer must be able to carry on with the remaining rows.
func (r *ProductsRepository) CreateProduct(product *models.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Slug == "" {
		product.Slug = models.GenerateSlug(product.Name)
	}

	if !r.inTx {
		err := r.db.Create(product).Error
		if isUniqueViolation(err) {
			return ErrDuplicateSKU
		}
		return err
	}

	if err := r.db.SavePoint("product_create").Error; err != nil {
		return err
	}
	err := r.db.Create(product).Error
	if err == nil {
		return nil
	}
	if rbErr := r.db.RollbackTo("product_create").Error; rbErr != nil {
		return rbErr
	}
	if isUniqueViolation(err) {
		return ErrDuplicateSKU
	}
	return err
}

// SaveProduct writes every column of an existing product. Used by the
// importer's upsert path, which replaces the full field set in place.
func (r *ProductsRepository) SaveProduct(product *models.Product) error {
	product.UpdatedAt = time.Now()
	err := r.db.Save(product).Error
	if err == nil {
		r.invalidateProductCache(context.Background(), product.ID)
	}
	return err
}

// GetProductByID retrieves a product by ID with caching
func (r *ProductsRepository) GetProductByID(productID uuid.UUID) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("shopzeo:product:%s", productID.String())

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := r.db.Where("id = ?", productID).First(&product).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// ProductBySKU retrieves a product by its SKU id, the natural key used for
// duplicate and upsert detection during import.
func (r *ProductsRepository) ProductBySKU(skuID string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("sku_id = ?", skuID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductListFilter narrows GetProducts results
type ProductListFilter struct {
	Search     string
	CategoryID *uuid.UUID
	StoreID    *uuid.UUID
	IsActive   *bool
	Page       int
	Limit      int
}

// GetProducts retrieves products with pagination and optional filters
func (r *ProductsRepository) GetProducts(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{})
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku_id) LIKE ?", like, like)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// UpdateProductFields applies a partial update to a product
func (r *ProductsRepository) UpdateProductFields(productID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Product{}).Where("id = ?", productID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCache(context.Background(), productID)
	return nil
}

// ToggleProductStatus flips is_active and returns the updated product
func (r *ProductsRepository) ToggleProductStatus(productID uuid.UUID) (*models.Product, error) {
	product, err := r.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	product.IsActive = !product.IsActive
	if err := r.UpdateProductFields(productID, map[string]interface{}{"is_active": product.IsActive}); err != nil {
		return nil, err
	}
	return product, nil
}

// ToggleProductFeatured flips is_featured and returns the updated product
func (r *ProductsRepository) ToggleProductFeatured(productID uuid.UUID) (*models.Product, error) {
	product, err := r.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	product.IsFeatured = !product.IsFeatured
	if err := r.UpdateProductFields(productID, map[string]interface{}{"is_featured": product.IsFeatured}); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft deletes a product
func (r *ProductsRepository) DeleteProduct(productID uuid.UUID) error {
	result := r.db.Where("id = ?", productID).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCache(context.Background(), productID)
	return nil
}

// Reference entity lookups (import surface)

// CategoryByName retrieves a category by name, case-insensitive. When more
// than one category matches case-insensitively the first row wins; the
// import contract leaves collisions undefined.
func (r *ProductsRepository) CategoryByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SubCategoryByName retrieves a subcategory by name, case-insensitive,
// scoped to the given category. A nil categoryID is allowed and matches
// nothing, so the lookup fails as not-found.
func (r *ProductsRepository) SubCategoryByName(name string, categoryID *uuid.UUID) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	err := r.db.Where("category_id = ? AND LOWER(name) = LOWER(?)", categoryID, strings.TrimSpace(name)).
		First(&subCategory).Error
	if err != nil {
		return nil, err
	}
	return &subCategory, nil
}

// StoreByName retrieves a store by name, case-insensitive. First match wins.
func (r *ProductsRepository) StoreByName(name string) (*models.Store, error) {
	var store models.Store
	err := r.db.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// ActiveStoreNames lists the names of all active stores, used to enrich
// store-not-found errors during import.
func (r *ProductsRepository) ActiveStoreNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.Store{}).
		Where("is_active = ?", true).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
