package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shopzeo/internal/models"
)

type StoresRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewStoresRepository(db *gorm.DB, redis *redis.Client) *StoresRepository {
	return &StoresRepository{db: db, redis: redis}
}

func (r *StoresRepository) CreateStore(store *models.Store) error {
	store.CreatedAt = time.Now()
	store.UpdatedAt = time.Now()
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	if store.Slug == "" {
		store.Slug = models.GenerateSlug(store.Name)
	}
	return r.db.Create(store).Error
}

// StoreListFilter narrows GetStores results
type StoreListFilter struct {
	Search     string
	IsActive   *bool
	IsVerified *bool
	Page       int
	Limit      int
}

// GetStores retrieves stores with pagination and optional filters
func (r *StoresRepository) GetStores(filter StoreListFilter) ([]models.Store, int64, error) {
	var stores []models.Store
	var total int64

	query := r.db.Model(&models.Store{})
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&stores).Error; err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}

// GetAllStores returns every store without pagination, for CSV export
func (r *StoresRepository) GetAllStores() ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Order("created_at DESC").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *StoresRepository) GetStoreByID(storeID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("id = ?", storeID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *StoresRepository) UpdateStoreFields(storeID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Store{}).Where("id = ?", storeID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleStoreStatus flips is_active and returns the new value
func (r *StoresRepository) ToggleStoreStatus(storeID uuid.UUID) (*models.Store, error) {
	store, err := r.GetStoreByID(storeID)
	if err != nil {
		return nil, err
	}
	store.IsActive = !store.IsActive
	store.UpdatedAt = time.Now()
	if err := r.db.Model(store).Updates(map[string]interface{}{
		"is_active":  store.IsActive,
		"updated_at": store.UpdatedAt,
	}).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// ToggleStoreVerification flips is_verified and returns the new value
func (r *StoresRepository) ToggleStoreVerification(storeID uuid.UUID) (*models.Store, error) {
	store, err := r.GetStoreByID(storeID)
	if err != nil {
		return nil, err
	}
	store.IsVerified = !store.IsVerified
	store.UpdatedAt = time.Now()
	if err := r.db.Model(store).Updates(map[string]interface{}{
		"is_verified": store.IsVerified,
		"updated_at":  store.UpdatedAt,
	}).Error; err != nil {
		return nil, err
	}
	return store, nil
}

func (r *StoresRepository) DeleteStore(storeID uuid.UUID) error {
	result := r.db.Where("id = ?", storeID).Delete(&models.Store{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
