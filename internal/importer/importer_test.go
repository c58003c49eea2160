package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"shopzeo/internal/models"
	"shopzeo/internal/repository"
)

// MockImportRepository is a mock implementation of ImportRepositoryInterface
type MockImportRepository struct {
	mock.Mock
}

// Ensure MockImportRepository implements the interface
var _ repository.ImportRepositoryInterface = (*MockImportRepository)(nil)

func (m *MockImportRepository) CategoryByName(name string) (*models.Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockImportRepository) SubCategoryByName(name string, categoryID *uuid.UUID) (*models.SubCategory, error) {
	args := m.Called(name, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubCategory), args.Error(1)
}

func (m *MockImportRepository) StoreByName(name string) (*models.Store, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockImportRepository) ActiveStoreNames() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImportRepository) ProductBySKU(skuID string) (*models.Product, error) {
	args := m.Called(skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockImportRepository) CreateProduct(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockImportRepository) SaveProduct(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// WithTransaction executes fn against the mock itself, then returns the
// configured error as the commit outcome.
func (m *MockImportRepository) WithTransaction(fn func(repository.ImportRepositoryInterface) error) error {
	args := m.Called()
	if err := fn(m); err != nil {
		return err
	}
	return args.Error(0)
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// buildCSV renders rows (label -> value) under the full column header
func buildCSV(t *testing.T, rows ...map[string]string) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	cols := models.ImportColumnNames()
	if err := w.Write(cols); err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			t.Fatal(err)
		}
	}
	w.Flush()
	return &buf
}

func validRow(sku string) map[string]string {
	return map[string]string{
		"Name":          "Blue Cotton T-Shirt",
		"Sku Id":        sku,
		"Category Name": "Clothing",
		"Store Name":    "Acme Traders",
		"Selling Price": "499",
	}
}

func newTestFixtures() (*models.Category, *models.Store) {
	category := &models.Category{ID: uuid.New(), Name: "Clothing"}
	store := &models.Store{ID: uuid.New(), Name: "Acme Traders", IsActive: true}
	return category, store
}

func TestRunCreatesValidRows(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	var created []*models.Product
	repo.On("CreateProduct", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		created = append(created, args.Get(0).(*models.Product))
	}).Return(nil)

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, validRow("TSH-001"), validRow("TSH-002")), Options{})

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Results.Total)
	assert.Equal(t, 2, report.Results.Success)
	assert.Equal(t, 0, report.Results.Failed)
	assert.Equal(t, 0, report.Results.Upserts)
	assert.Empty(t, report.Results.Errors)
	assert.Len(t, created, 2)
	assert.Equal(t, category.ID, created[0].CategoryID)
	assert.Equal(t, store.ID, created[0].StoreID)
	assert.True(t, created[0].IsActive)
}

func TestRunRequiredFieldFailures(t *testing.T) {
	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)

	noName := validRow("TSH-001")
	noName["Name"] = ""
	noSku := validRow("")
	noStore := validRow("TSH-003")
	noStore["Store Name"] = "   "

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, noName, noSku, noStore), Options{})

	assert.NoError(t, err)
	assert.Equal(t, 3, report.Results.Total)
	assert.Equal(t, 0, report.Results.Success)
	assert.Equal(t, 3, report.Results.Failed)
	assert.Len(t, report.Results.Errors, 3)

	assert.Equal(t, 1, report.Results.Errors[0].Row)
	assert.Equal(t, "Name is required", report.Results.Errors[0].Error)
	assert.Equal(t, 2, report.Results.Errors[1].Row)
	assert.Equal(t, "N/A", report.Results.Errors[1].Sku)
	assert.Equal(t, "Sku Id is required", report.Results.Errors[1].Error)
	assert.Equal(t, 3, report.Results.Errors[2].Row)
	assert.Equal(t, "Store Name is required", report.Results.Errors[2].Error)

	repo.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

func TestRunNumericValidationFailures(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	negative := validRow("TSH-001")
	negative["Selling Price"] = "-5"
	garbage := validRow("TSH-002")
	garbage["GST %"] = "twelve"

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, negative, garbage), Options{})

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Results.Failed)
	assert.Equal(t, "Selling Price must be a valid non-negative number", report.Results.Errors[0].Error)
	assert.Equal(t, "GST % must be a valid non-negative number", report.Results.Errors[1].Error)
	repo.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

func TestRunEndToEndThreeRows(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("StoreByName", "Ghost Mart").Return(nil, gorm.ErrRecordNotFound)
	repo.On("ActiveStoreNames").Return([]string{"Acme Traders", "Budget Bazaar"}, nil)
	repo.On("ProductBySKU", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateProduct", mock.AnythingOfType("*models.Product")).Return(nil)

	good := validRow("TSH-001")
	badPrice := validRow("TSH-002")
	badPrice["Selling Price"] = "-1"
	badStore := validRow("TSH-003")
	badStore["Store Name"] = "Ghost Mart"

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, good, badPrice, badStore), Options{})

	assert.NoError(t, err)
	assert.Equal(t, 3, report.Results.Total)
	assert.Equal(t, 1, report.Results.Success)
	assert.Equal(t, 2, report.Results.Failed)
	assert.Equal(t, 0, report.Results.Duplicates)
	assert.Equal(t, 0, report.Results.Upserts)
	assert.Len(t, report.Results.Errors, 2)
	assert.Equal(t, 2, report.Results.Errors[0].Row)
	assert.Equal(t, 3, report.Results.Errors[1].Row)
	assert.NotEqual(t, report.Results.Errors[0].Error, report.Results.Errors[1].Error)
	assert.Contains(t, report.Results.Errors[1].Error, `Store "Ghost Mart" not found`)
	assert.Contains(t, report.Results.Errors[1].Error, "Available stores: Acme Traders, Budget Bazaar")
}

func TestRunUpsertModeUpdatesExisting(t *testing.T) {
	category, store := newTestFixtures()
	existingID := uuid.New()
	existing := &models.Product{ID: existingID, SkuID: "TSH-001"}

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", "TSH-001").Return(existing, nil)

	var saved *models.Product
	repo.On("SaveProduct", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.Product)
	}).Return(nil)

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, validRow("TSH-001")), Options{Mode: models.UpsertModeUpsert})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Results.Total)
	assert.Equal(t, 0, report.Results.Success)
	assert.Equal(t, 1, report.Results.Upserts)
	assert.NotNil(t, saved)
	assert.Equal(t, existingID, saved.ID)
	repo.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

func TestRunSkipModeReportsDuplicates(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", mock.Anything).Return(&models.Product{ID: uuid.New()}, nil)

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, validRow("TSH-001"), validRow("TSH-002")), Options{Mode: models.UpsertModeSkip})

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Results.Total)
	assert.Equal(t, 2, report.Results.Duplicates)
	assert.Equal(t, 0, report.Results.Success)
	assert.Equal(t, 0, report.Results.Failed)
	// Skip-mode duplicates land in failedRows for re-export but not in errors
	assert.Empty(t, report.Results.Errors)
	assert.Len(t, report.FailedRows, 2)
	assert.Equal(t, "SKU already exists (skip mode)", report.FailedRows[0].Error)
	assert.Equal(t, "TSH-001", report.FailedRows[0].Sku)
	repo.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

func TestRunSkipModeReclassifiesRaceAsDuplicate(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", "TSH-001").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateProduct", mock.AnythingOfType("*models.Product")).
		Return(repository.ErrDuplicateSKU)

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, validRow("TSH-001")), Options{Mode: models.UpsertModeSkip})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Results.Duplicates)
	assert.Equal(t, 0, report.Results.Failed)
	assert.Empty(t, report.Results.Errors)
}

func TestRunUpsertModeCreateRaceStaysFailure(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", "TSH-001").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateProduct", mock.AnythingOfType("*models.Product")).
		Return(repository.ErrDuplicateSKU)

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, validRow("TSH-001")), Options{Mode: models.UpsertModeUpsert})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Results.Duplicates)
	assert.Equal(t, 1, report.Results.Failed)
	assert.Len(t, report.Results.Errors, 1)
}

func TestRunMediaNormalization(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	var created *models.Product
	repo.On("CreateProduct", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Product)
	}).Return(nil)

	row := validRow("TSH-001")
	row["Image 1"] = "http://x/a.jpg"
	row["Image 2"] = "b.jpg"
	row["Video 1"] = "clip.mp4"

	imp := New(repo, testLogger())
	_, err := imp.Run(buildCSV(t, row), Options{})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotNil(t, created.Images)
	assert.Equal(t, "http://x/a.jpg,/uploads/products/b.jpg", *created.Images)
	assert.NotNil(t, created.Videos)
	assert.Equal(t, "/uploads/products/clip.mp4", *created.Videos)
}

func TestRunGeneratesSlugFromName(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	var created *models.Product
	repo.On("CreateProduct", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Product)
	}).Return(nil)

	row := validRow("TSH-001")
	row["Name"] = "Men's T-Shirt!! 2024"

	imp := New(repo, testLogger())
	_, err := imp.Run(buildCSV(t, row), Options{})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "mens-t-shirt-2024", created.Slug)
}

func TestRunSubCategoryScopedToCategory(t *testing.T) {
	category, store := newTestFixtures()
	subCategory := &models.SubCategory{ID: uuid.New(), CategoryID: category.ID, Name: "T-Shirts"}

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(nil)
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("SubCategoryByName", "T-Shirts", &category.ID).Return(subCategory, nil)
	repo.On("ProductBySKU", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	var created *models.Product
	repo.On("CreateProduct", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Product)
	}).Return(nil)

	row := validRow("TSH-001")
	row["Sub Category Name"] = "T-Shirts"

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, row), Options{})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Results.Success)
	assert.NotNil(t, created.SubCategoryID)
	assert.Equal(t, subCategory.ID, *created.SubCategoryID)
}

func TestRunRejectsUnknownHeader(t *testing.T) {
	repo := new(MockImportRepository)

	csvText := "Name,Sku Id,Category Name,Store Name,Mystery Column\nA,B,C,D,E\n"
	imp := New(repo, testLogger())
	report, err := imp.Run(strings.NewReader(csvText), Options{})

	assert.Nil(t, report)
	var headerErr *HeaderError
	assert.ErrorAs(t, err, &headerErr)
	assert.Contains(t, headerErr.Message, "Mystery Column")
	repo.AssertNotCalled(t, "WithTransaction")
}

func TestRunRejectsMissingRequiredHeader(t *testing.T) {
	repo := new(MockImportRepository)

	csvText := "Name,Category Name,Store Name\nA,C,D\n"
	imp := New(repo, testLogger())
	report, err := imp.Run(strings.NewReader(csvText), Options{})

	assert.Nil(t, report)
	var headerErr *HeaderError
	assert.ErrorAs(t, err, &headerErr)
	assert.Contains(t, headerErr.Message, "Sku Id")
	repo.AssertNotCalled(t, "WithTransaction")
}

func TestRunRejectsEmptyFile(t *testing.T) {
	repo := new(MockImportRepository)

	imp := New(repo, testLogger())
	report, err := imp.Run(strings.NewReader(""), Options{})

	assert.Nil(t, report)
	var headerErr *HeaderError
	assert.ErrorAs(t, err, &headerErr)
}

func TestRunCommitFailureAbortsImport(t *testing.T) {
	category, store := newTestFixtures()

	repo := new(MockImportRepository)
	repo.On("WithTransaction").Return(errors.New("commit failed"))
	repo.On("CategoryByName", "Clothing").Return(category, nil)
	repo.On("StoreByName", "Acme Traders").Return(store, nil)
	repo.On("ProductBySKU", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateProduct", mock.AnythingOfType("*models.Product")).Return(nil)

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, validRow("TSH-001")), Options{})

	assert.Nil(t, report)
	assert.EqualError(t, err, "commit failed")
}

func TestRunInvalidMode(t *testing.T) {
	repo := new(MockImportRepository)

	imp := New(repo, testLogger())
	report, err := imp.Run(buildCSV(t, validRow("TSH-001")), Options{Mode: "merge"})

	assert.Nil(t, report)
	var headerErr *HeaderError
	assert.ErrorAs(t, err, &headerErr)
}
