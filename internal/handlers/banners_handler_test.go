package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shopzeo/internal/models"
	"shopzeo/internal/repository"
)

// MockBannersRepository is a mock implementation of BannersRepositoryInterface
type MockBannersRepository struct {
	mock.Mock
}

var _ repository.BannersRepositoryInterface = (*MockBannersRepository)(nil)

func (m *MockBannersRepository) CreateBanner(banner *models.Banner) error {
	return m.Called(banner).Error(0)
}

func (m *MockBannersRepository) GetBanners(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Banner), args.Get(1).(int64), args.Error(2)
}

func (m *MockBannersRepository) GetBannerByID(bannerID uuid.UUID) (*models.Banner, error) {
	args := m.Called(bannerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Banner), args.Error(1)
}

func (m *MockBannersRepository) UpdateBannerFields(bannerID uuid.UUID, updates map[string]interface{}) error {
	return m.Called(bannerID, updates).Error(0)
}

func (m *MockBannersRepository) ToggleBannerStatus(bannerID uuid.UUID) (*models.Banner, error) {
	args := m.Called(bannerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Banner), args.Error(1)
}

func (m *MockBannersRepository) DeleteBanner(bannerID uuid.UUID) error {
	return m.Called(bannerID).Error(0)
}

func newBannersTestRouter(t *testing.T) (*gin.Engine, *MockBannersRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := new(MockBannersRepository)
	handler := NewBannersHandler(repo, logrus.NewEntry(logger))
	router := gin.New()
	router.GET("/banners", handler.GetBanners)
	return router, repo
}

func TestGetBanners(t *testing.T) {
	router, repo := newBannersTestRouter(t)

	title := "Diwali Sale"
	banners := []models.Banner{
		{ID: uuid.New(), Title: &title, Type: models.BannerTypeCommon, ZoneID: 1, IsActive: true},
	}
	repo.On("GetBanners", repository.BannerListFilter{Page: 1, Limit: 20}).
		Return(banners, int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/banners", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success    bool                  `json:"success"`
		Data       []models.Banner       `json:"data"`
		Pagination models.PaginationInfo `json:"pagination"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, models.BannerTypeCommon, body.Data[0].Type)
	assert.Equal(t, int64(1), body.Pagination.Total)
	repo.AssertExpectations(t)
}

func TestGetBannersPassesFilters(t *testing.T) {
	router, repo := newBannersTestRouter(t)

	active := true
	repo.On("GetBanners", repository.BannerListFilter{
		BannerType: "store_wise",
		IsActive:   &active,
		Page:       1,
		Limit:      20,
	}).Return([]models.Banner{}, int64(0), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/banners?type=store_wise&isActive=true", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}
