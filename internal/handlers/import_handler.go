package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"shopzeo/internal/events"
	"shopzeo/internal/importer"
	"shopzeo/internal/models"
	"shopzeo/internal/repository"
)

type ImportHandler struct {
	repo      *repository.ProductsRepository
	publisher *events.Publisher
	logger    *logrus.Entry
	uploadDir string
}

func NewImportHandler(repo *repository.ProductsRepository, publisher *events.Publisher, logger *logrus.Entry, uploadDir string) *ImportHandler {
	return &ImportHandler{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		uploadDir: uploadDir,
	}
}

// ImportCSV runs a bulk product import from an uploaded CSV file
// POST /api/admin/products/import-csv
func (h *ImportHandler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "CSV file is required",
			},
		})
		return
	}

	mode := models.UpsertMode(c.DefaultPostForm("upsertMode", string(models.UpsertModeUpsert)))
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_MODE",
				Message: `upsertMode must be "skip" or "upsert"`,
				Field:   "upsertMode",
			},
		})
		return
	}

	// The upload is staged on local disk and removed whatever the outcome
	tmpPath := filepath.Join(h.uploadDir, fmt.Sprintf("import-%s.csv", uuid.New().String()))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		h.logger.WithError(err).Error("Failed to stage uploaded import file")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPLOAD_FAILED",
				Message: "Failed to store uploaded file",
			},
		})
		return
	}
	defer os.Remove(tmpPath)

	file, err := os.Open(tmpPath)
	if err != nil {
		h.logger.WithError(err).Error("Failed to open staged import file")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPLOAD_FAILED",
				Message: "Failed to read uploaded file",
			},
		})
		return
	}
	defer file.Close()

	report, err := importer.New(h.repo, h.logger).Run(file, importer.Options{Mode: mode})
	if err != nil {
		var headerErr *importer.HeaderError
		if errors.As(err, &headerErr) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "INVALID_HEADER",
					Message: headerErr.Message,
				},
			})
			return
		}
		h.logger.WithError(err).Error("Bulk import aborted")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "IMPORT_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	h.publisher.PublishProductsImported(report.Results)

	c.JSON(http.StatusOK, models.ImportResponse{
		Success:    true,
		Message:    "Bulk import completed",
		Results:    report.Results,
		FailedRows: report.FailedRows,
	})
}

// GetImportStatus reports the state of the last import. Imports run
// synchronously within the request, so a reachable service has no
// import in flight.
// GET /api/admin/products/import-status
func (h *ImportHandler) GetImportStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  "completed",
	})
}

// DownloadFailedRows re-exports previously failed rows as a CSV the
// operator can fix and re-upload. The rows are echoed back by the client
// from an earlier import response.
// POST /api/admin/products/download-failed-rows
func (h *ImportHandler) DownloadFailedRows(c *gin.Context) {
	var req models.DownloadFailedRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_BODY",
				Message: "Request body must contain a failedRows array",
			},
		})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=failed_rows.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	columns := models.ImportColumnNames()
	header := append(append([]string{}, columns...), "Error Reason")
	writer.Write(header)

	for _, failed := range req.FailedRows {
		record := make([]string, 0, len(columns)+1)
		for _, col := range columns {
			record = append(record, failed.Data[col])
		}
		record = append(record, failed.Error)
		writer.Write(record)
	}
}

// GetImportTemplate returns the import template definition or file
// GET /api/admin/products/import-template
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	template := models.ProductImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c, template)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

// generateCSVTemplate generates and downloads a CSV template (headers only)
func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)
}

// generateXLSXTemplate generates and downloads an Excel template
func (h *ImportHandler) generateXLSXTemplate(c *gin.Context, template models.ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Products"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Name)

		if col.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Product Import Instructions")

	f.SetCellValue("Instructions", "A3", "BEFORE IMPORTING:")
	f.SetCellValue("Instructions", "A4", "- Categories, subcategories and stores are matched by name (case-insensitive) and must already exist.")
	f.SetCellValue("Instructions", "A5", "- Sku Id identifies each product; duplicates are skipped or updated depending on the chosen upsert mode.")
	f.SetCellValue("Instructions", "A6", "- Image/Video columns accept full http(s) URLs or uploaded filenames.")

	f.SetCellValue("Instructions", "A8", "Column Definitions:")
	f.SetCellValue("Instructions", "A9", "Column")
	f.SetCellValue("Instructions", "B9", "Description")
	f.SetCellValue("Instructions", "C9", "Required")
	f.SetCellValue("Instructions", "D9", "Type")
	f.SetCellValue("Instructions", "E9", "Example")

	for i, col := range template.Columns {
		row := i + 10
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), col.Description)
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}

	f.SetColWidth("Instructions", "A", "A", 25)
	f.SetColWidth("Instructions", "B", "B", 60)
	f.SetColWidth("Instructions", "C", "C", 15)
	f.SetColWidth("Instructions", "D", "D", 15)
	f.SetColWidth("Instructions", "E", "E", 40)

	sheetIdx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.xlsx")

	f.Write(c.Writer)
}
