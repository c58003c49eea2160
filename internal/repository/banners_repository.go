package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shopzeo/internal/models"
)

// BannersRepositoryInterface is the persistence surface the banner
// handlers depend on
type BannersRepositoryInterface interface {
	CreateBanner(banner *models.Banner) error
	GetBanners(filter BannerListFilter) ([]models.Banner, int64, error)
	GetBannerByID(bannerID uuid.UUID) (*models.Banner, error)
	UpdateBannerFields(bannerID uuid.UUID, updates map[string]interface{}) error
	ToggleBannerStatus(bannerID uuid.UUID) (*models.Banner, error)
	DeleteBanner(bannerID uuid.UUID) error
}

type BannersRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ BannersRepositoryInterface = (*BannersRepository)(nil)

func NewBannersRepository(db *gorm.DB, redis *redis.Client) *BannersRepository {
	return &BannersRepository{db: db, redis: redis}
}

func (r *BannersRepository) CreateBanner(banner *models.Banner) error {
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = time.Now()
	if banner.ID == uuid.Nil {
		banner.ID = uuid.New()
	}
	return r.db.Create(banner).Error
}

// BannerListFilter narrows GetBanners results
type BannerListFilter struct {
	BannerType string
	IsActive   *bool
	Page       int
	Limit      int
}

func (r *BannersRepository) GetBanners(filter BannerListFilter) ([]models.Banner, int64, error) {
	var banners []models.Banner
	var total int64

	query := r.db.Model(&models.Banner{})
	if filter.BannerType != "" {
		query = query.Where("type = ?", filter.BannerType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&banners).Error; err != nil {
		return nil, 0, err
	}

	return banners, total, nil
}

func (r *BannersRepository) GetBannerByID(bannerID uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.Where("id = ?", bannerID).First(&banner).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *BannersRepository) UpdateBannerFields(bannerID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Banner{}).Where("id = ?", bannerID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleBannerStatus flips is_active and returns the new value
func (r *BannersRepository) ToggleBannerStatus(bannerID uuid.UUID) (*models.Banner, error) {
	banner, err := r.GetBannerByID(bannerID)
	if err != nil {
		return nil, err
	}
	banner.IsActive = !banner.IsActive
	banner.UpdatedAt = time.Now()
	if err := r.db.Model(banner).Updates(map[string]interface{}{
		"is_active":  banner.IsActive,
		"updated_at": banner.UpdatedAt,
	}).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *BannersRepository) DeleteBanner(bannerID uuid.UUID) error {
	result := r.db.Where("id = ?", bannerID).Delete(&models.Banner{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
