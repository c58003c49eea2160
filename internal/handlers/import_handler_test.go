package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"shopzeo/internal/models"
)

func newImportTestRouter(t *testing.T) (*gin.Engine, *ImportHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewImportHandler(nil, nil, logrus.NewEntry(logger), t.TempDir())
	router := gin.New()
	return router, handler
}

func TestGetImportStatus(t *testing.T) {
	router, handler := newImportTestRouter(t)
	router.GET("/import-status", handler.GetImportStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/import-status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "completed", body["status"])
}

func TestGetImportTemplateJSON(t *testing.T) {
	router, handler := newImportTestRouter(t)
	router.GET("/import-template", handler.GetImportTemplate)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/import-template", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success  bool                  `json:"success"`
		Template models.ImportTemplate `json:"template"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "products", body.Template.Entity)
	assert.Len(t, body.Template.Columns, 35)
}

func TestGetImportTemplateCSV(t *testing.T) {
	router, handler := newImportTestRouter(t)
	router.GET("/import-template", handler.GetImportTemplate)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/import-template?format=csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	records, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, models.ImportColumnNames(), records[0])
}

func TestDownloadFailedRows(t *testing.T) {
	router, handler := newImportTestRouter(t)
	router.POST("/download-failed-rows", handler.DownloadFailedRows)

	payload := models.DownloadFailedRowsRequest{
		FailedRows: []models.FailedRow{
			{
				Row:   2,
				Sku:   "TSH-002",
				Error: "Selling Price must be a valid non-negative number",
				Data: map[string]string{
					"Name":          "Bad Shirt",
					"Sku Id":        "TSH-002",
					"Selling Price": "-1",
					"Category Name": "Clothing",
					"Store Name":    "Acme Traders",
				},
			},
		},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/download-failed-rows", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	records, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	header := records[0]
	assert.Len(t, header, 36)
	assert.Equal(t, "Error Reason", header[35])

	row := records[1]
	nameIdx := indexOf(header, "Name")
	priceIdx := indexOf(header, "Selling Price")
	assert.Equal(t, "Bad Shirt", row[nameIdx])
	assert.Equal(t, "-1", row[priceIdx])
	assert.Equal(t, "Selling Price must be a valid non-negative number", row[35])
}

func TestDownloadFailedRowsRejectsBadBody(t *testing.T) {
	router, handler := newImportTestRouter(t)
	router.POST("/download-failed-rows", handler.DownloadFailedRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/download-failed-rows", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportCSVRequiresFile(t *testing.T) {
	router, handler := newImportTestRouter(t)
	router.POST("/import-csv", handler.ImportCSV)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import-csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_REQUIRED", resp.Error.Code)
}

func indexOf(slice []string, value string) int {
	for i, s := range slice {
		if s == value {
			return i
		}
	}
	return -1
}
