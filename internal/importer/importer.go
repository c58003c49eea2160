package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopzeo/internal/models"
	"shopzeo/internal/repository"
)

// Options configures one import run
type Options struct {
	// Mode controls duplicate-SKU handling; empty defaults to upsert
	Mode models.UpsertMode
}

// Importer streams a product CSV into the catalog inside one transaction.
// Rows are processed strictly in file order; a row failure is recorded and
// the stream continues, while a read or commit failure rolls everything back.
type Importer struct {
	repo   repository.ImportRepositoryInterface
	logger *logrus.Entry
}

func New(repo repository.ImportRepositoryInterface, logger *logrus.Entry) *Importer {
	return &Importer{repo: repo, logger: logger}
}

type rowOutcome int

const (
	rowCreated rowOutcome = iota
	rowUpserted
	rowSkipped
)

// Run parses the CSV from r and imports every data row. The header is
// validated before the transaction opens, so a HeaderError never touches
// the database. The returned report is nil when the import aborted.
func (im *Importer) Run(r io.Reader, opts Options) (*models.ImportReport, error) {
	mode := opts.Mode
	if mode == "" {
		mode = models.UpsertModeUpsert
	}
	if !mode.Valid() {
		return nil, &HeaderError{Message: fmt.Sprintf("invalid upsert mode %q", mode)}
	}

	reader := csv.NewReader(r)

	headerRecord, err := reader.Read()
	if err == io.EOF {
		return nil, &HeaderError{Message: "CSV file is empty"}
	}
	if err != nil {
		return nil, &HeaderError{Message: fmt.Sprintf("unreadable CSV header: %v", err)}
	}
	header, err := mapHeader(headerRecord)
	if err != nil {
		return nil, err
	}

	report := &models.ImportReport{
		Results:    models.ImportCounts{Errors: []models.ImportRowError{}},
		FailedRows: []models.FailedRow{},
	}

	err = im.repo.WithTransaction(func(tx repository.ImportRepositoryInterface) error {
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read csv stream: %w", err)
			}

			report.Results.Total++
			rowNum := report.Results.Total
			raw := bindRow(header, record)

			outcome, rowErr := im.importRow(tx, raw, mode)
			switch {
			case rowErr != nil:
				report.Results.Failed++
				sku := strings.TrimSpace(raw["Sku Id"])
				if sku == "" {
					sku = "N/A"
				}
				report.Results.Errors = append(report.Results.Errors, models.ImportRowError{
					Row:   rowNum,
					Sku:   sku,
					Error: rowErr.Error(),
				})
				report.FailedRows = append(report.FailedRows, models.FailedRow{
					Row:   rowNum,
					Sku:   sku,
					Error: rowErr.Error(),
					Data:  raw,
				})
				im.logger.WithFields(logrus.Fields{"row": rowNum, "sku": sku}).
					WithError(rowErr).Debug("Import row failed")
			case outcome == rowSkipped:
				report.Results.Duplicates++
				report.FailedRows = append(report.FailedRows, models.FailedRow{
					Row:   rowNum,
					Sku:   strings.TrimSpace(raw["Sku Id"]),
					Error: "SKU already exists (skip mode)",
					Data:  raw,
				})
			case outcome == rowUpserted:
				report.Results.Upserts++
			default:
				report.Results.Success++
			}
		}
	})
	if err != nil {
		return nil, err
	}

	im.logger.WithFields(logrus.Fields{
		"total":      report.Results.Total,
		"success":    report.Results.Success,
		"failed":     report.Results.Failed,
		"duplicates": report.Results.Duplicates,
		"upserts":    report.Results.Upserts,
		"mode":       mode,
	}).Info("Bulk import completed")

	return report, nil
}

// importRow runs the per-row state machine: required fields, entity
// resolution, duplicate handling per mode, then numeric validation and the
// write. Every returned error is row-local.
func (im *Importer) importRow(tx repository.ImportRepositoryInterface, raw map[string]string, mode models.UpsertMode) (rowOutcome, error) {
	name, err := requireNonEmpty(raw["Name"], "Name")
	if err != nil {
		return 0, err
	}
	skuID, err := requireNonEmpty(raw["Sku Id"], "Sku Id")
	if err != nil {
		return 0, err
	}
	categoryName, err := requireNonEmpty(raw["Category Name"], "Category Name")
	if err != nil {
		return 0, err
	}
	storeName, err := requireNonEmpty(raw["Store Name"], "Store Name")
	if err != nil {
		return 0, err
	}

	category, err := im.resolveCategory(tx, categoryName)
	if err != nil {
		return 0, err
	}
	store, err := im.resolveStore(tx, storeName)
	if err != nil {
		return 0, err
	}
	var subCategoryID *uuid.UUID
	if subName := strings.TrimSpace(raw["Sub Category Name"]); subName != "" {
		var categoryID *uuid.UUID
		if category != nil {
			categoryID = &category.ID
		}
		subCategory, err := im.resolveSubCategory(tx, subName, categoryID)
		if err != nil {
			return 0, err
		}
		subCategoryID = &subCategory.ID
	}

	if mode == models.UpsertModeSkip {
		_, err := tx.ProductBySKU(skuID)
		if err == nil {
			return rowSkipped, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
	}

	sellingPrice, err := parseNonNegative(raw["Selling Price"], "Selling Price")
	if err != nil {
		return 0, err
	}
	mrp, err := parseNonNegative(raw["MRP"], "MRP")
	if err != nil {
		return 0, err
	}
	costPrice, err := parseNonNegative(raw["Cost Price"], "Cost Price")
	if err != nil {
		return 0, err
	}
	gstPercentage, err := parseNonNegative(raw["GST %"], "GST %")
	if err != nil {
		return 0, err
	}
	quantity, err := parseNonNegativeInt(raw["Quantity"], "Quantity")
	if err != nil {
		return 0, err
	}
	packagingLength, err := parseNonNegative(raw["Packaging Length (in cm)"], "Packaging Length (in cm)")
	if err != nil {
		return 0, err
	}
	packagingWidth, err := parseNonNegative(raw["Packaging Breadth (in cm)"], "Packaging Breadth (in cm)")
	if err != nil {
		return 0, err
	}
	packagingHeight, err := parseNonNegative(raw["Packaging Height (in cm)"], "Packaging Height (in cm)")
	if err != nil {
		return 0, err
	}
	packagingWeight, err := parseNonNegative(raw["Packaging Weight (in kg)"], "Packaging Weight (in kg)")
	if err != nil {
		return 0, err
	}

	product := models.Product{
		SkuID:                   skuID,
		Name:                    name,
		Slug:                    models.GenerateSlug(name),
		ProductCode:             optionalString(raw["Product Code"]),
		AmazonASIN:              optionalString(raw["Amazon ASIN"]),
		Description:             optionalString(raw["Description"]),
		SellingPrice:            sellingPrice,
		BillingPriceMRP:         mrp,
		CostPrice:               costPrice,
		GSTPercentage:           gstPercentage,
		Quantity:                quantity,
		PackagingLength:         packagingLength,
		PackagingWidth:          packagingWidth,
		PackagingHeight:         packagingHeight,
		PackagingWeight:         packagingWeight,
		ProductType:             optionalString(raw["Product Type"]),
		Size:                    optionalString(raw["Size"]),
		Colour:                  optionalString(raw["Colour"]),
		ReturnExchangeCondition: optionalString(raw["Return/Exchange Condition"]),
		HSNCode:                 optionalString(raw["HSN Code"]),
		CustomisationID:         optionalString(raw["Customisation Id"]),
		CategoryID:              category.ID,
		SubCategoryID:           subCategoryID,
		StoreID:                 store.ID,
		IsActive:                true,
		IsFeatured:              false,
	}

	images, videos := mediaLists(raw)
	if len(images) > 0 {
		joined := strings.Join(images, ",")
		product.Images = &joined
	}
	if len(videos) > 0 {
		joined := strings.Join(videos, ",")
		product.Videos = &joined
	}

	if mode == models.UpsertModeUpsert {
		existing, err := tx.ProductBySKU(skuID)
		if err == nil {
			product.ID = existing.ID
			product.CreatedAt = existing.CreatedAt
			if err := tx.SaveProduct(&product); err != nil {
				return 0, err
			}
			return rowUpserted, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
	}

	if err := tx.CreateProduct(&product); err != nil {
		// A unique violation in skip mode means a SKU appeared between the
		// duplicate check and the insert; report it as a duplicate, not a failure.
		if mode == models.UpsertModeSkip && errors.Is(err, repository.ErrDuplicateSKU) {
			return rowSkipped, nil
		}
		return 0, err
	}
	return rowCreated, nil
}

func (im *Importer) resolveCategory(tx repository.ImportRepositoryInterface, name string) (*models.Category, error) {
	category, err := tx.CategoryByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{
				Entity:  "category",
				Name:    name,
				Message: fmt.Sprintf("Category %q not found. Please check the spelling or create it first.", name),
			}
		}
		return nil, err
	}
	return category, nil
}

func (im *Importer) resolveSubCategory(tx repository.ImportRepositoryInterface, name string, categoryID *uuid.UUID) (*models.SubCategory, error) {
	subCategory, err := tx.SubCategoryByName(name, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{
				Entity:  "subcategory",
				Name:    name,
				Message: fmt.Sprintf("Subcategory %q not found in the selected category. Please check the spelling or create it first.", name),
			}
		}
		return nil, err
	}
	return subCategory, nil
}

// resolveStore enriches the not-found message with every active store name.
// The extra table scan only runs on failing rows and import volumes are small.
func (im *Importer) resolveStore(tx repository.ImportRepositoryInterface, name string) (*models.Store, error) {
	store, err := tx.StoreByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			names, listErr := tx.ActiveStoreNames()
			if listErr != nil {
				im.logger.WithError(listErr).Warn("Failed to list active stores for import error message")
			}
			return nil, &NotFoundError{
				Entity: "store",
				Name:   name,
				Message: fmt.Sprintf("Store %q not found. Please check the spelling or create it first. Available stores: %s",
					name, strings.Join(names, ", ")),
			}
		}
		return nil, err
	}
	return store, nil
}
