package models

// UpsertMode controls how rows with an already-known SKU are handled
type UpsertMode string

const (
	// UpsertModeSkip leaves existing products untouched and reports the row as a duplicate
	UpsertModeSkip UpsertMode = "skip"
	// UpsertModeUpsert updates the existing product in place
	UpsertModeUpsert UpsertMode = "upsert"
)

// Valid reports whether the mode is one of the supported values
func (m UpsertMode) Valid() bool {
	return m == UpsertModeSkip || m == UpsertModeUpsert
}

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string or number
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of the import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// ImportRowError records one failed row for the aggregate response
type ImportRowError struct {
	Row   int    `json:"row"`
	Sku   string `json:"sku"`
	Error string `json:"error"`
}

// FailedRow carries the original raw row alongside the failure reason so the
// operator can download, fix and re-upload just the failed rows.
type FailedRow struct {
	Row   int               `json:"row"`
	Sku   string            `json:"sku"`
	Error string            `json:"error"`
	Data  map[string]string `json:"data"`
}

// ImportCounts aggregates per-row outcomes across one import request.
// Total counts attempts: it is incremented for every data row seen,
// before any validation runs.
type ImportCounts struct {
	Total      int              `json:"total"`
	Success    int              `json:"success"`
	Failed     int              `json:"failed"`
	Duplicates int              `json:"duplicates"`
	Upserts    int              `json:"upserts"`
	Errors     []ImportRowError `json:"errors"`
}

// ImportReport is the full outcome of one import run
type ImportReport struct {
	Results    ImportCounts `json:"results"`
	FailedRows []FailedRow  `json:"failedRows"`
}

// ImportResponse is the HTTP payload returned by the import endpoint
type ImportResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Results    ImportCounts `json:"results"`
	FailedRows []FailedRow  `json:"failedRows"`
}

// DownloadFailedRowsRequest echoes back the failed rows from a previous import
type DownloadFailedRowsRequest struct {
	FailedRows []FailedRow `json:"failedRows"`
}

// ProductImportColumns returns the fixed 35-column product CSV contract,
// in file order. The labels are user-facing; the importer maps them to
// product fields.
func ProductImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "Product Code", Description: "Internal product code", Required: false, Type: "string", Example: "PC-1001"},
		{Name: "Amazon ASIN", Description: "Amazon ASIN if listed there", Required: false, Type: "string", Example: "B08N5WRWNW"},
		{Name: "Name", Description: "Product display name", Required: true, Type: "string", Example: "Blue Cotton T-Shirt"},
		{Name: "Sku Id", Description: "Unique SKU, used for duplicate/upsert matching", Required: true, Type: "string", Example: "TSH-BLU-001"},
		{Name: "Description", Description: "Product description", Required: false, Type: "string", Example: ""},
		{Name: "Selling Price", Description: "Selling price, non-negative", Required: false, Type: "number", Example: "499"},
		{Name: "MRP", Description: "Maximum retail price, non-negative", Required: false, Type: "number", Example: "799"},
		{Name: "Cost Price", Description: "Cost price, non-negative", Required: false, Type: "number", Example: "250"},
		{Name: "Quantity", Description: "Stock quantity", Required: false, Type: "number", Example: "100"},
		{Name: "Packaging Length (in cm)", Description: "Package length", Required: false, Type: "number", Example: "30"},
		{Name: "Packaging Breadth (in cm)", Description: "Package breadth", Required: false, Type: "number", Example: "25"},
		{Name: "Packaging Height (in cm)", Description: "Package height", Required: false, Type: "number", Example: "3"},
		{Name: "Packaging Weight (in kg)", Description: "Package weight", Required: false, Type: "number", Example: "0.3"},
		{Name: "GST %", Description: "GST percentage, non-negative", Required: false, Type: "number", Example: "12"},
		{Name: "Image 1", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: "https://cdn.example.com/a.jpg"},
		{Name: "Image 2", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Image 3", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Image 4", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Image 5", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Image 6", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Image 7", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Image 8", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Image 9", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Image 10", Description: "Image URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Video 1", Description: "Video URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Video 2", Description: "Video URL or uploaded filename", Required: false, Type: "string", Example: ""},
		{Name: "Product Type", Description: "Free-text product type", Required: false, Type: "string", Example: "Apparel"},
		{Name: "Size", Description: "Size label", Required: false, Type: "string", Example: "M"},
		{Name: "Colour", Description: "Colour label", Required: false, Type: "string", Example: "Blue"},
		{Name: "Return/Exchange Condition", Description: "Return policy text", Required: false, Type: "string", Example: "7 day return"},
		{Name: "HSN Code", Description: "HSN tax code", Required: false, Type: "string", Example: "6109"},
		{Name: "Customisation Id", Description: "Customisation reference", Required: false, Type: "string", Example: ""},
		{Name: "Category Name", Description: "Existing category name, case-insensitive", Required: true, Type: "string", Example: "Clothing"},
		{Name: "Sub Category Name", Description: "Existing subcategory name within the category", Required: false, Type: "string", Example: "T-Shirts"},
		{Name: "Store Name", Description: "Existing store name, case-insensitive", Required: true, Type: "string", Example: "Acme Traders"},
	}
}

// ProductImportTemplate returns the template definition for the product importer
func ProductImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "products",
		Version: "1.0",
		Columns: ProductImportColumns(),
	}
}

// ImportColumnNames returns just the ordered column labels
func ImportColumnNames() []string {
	cols := ProductImportColumns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
