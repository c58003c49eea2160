package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopzeo/internal/models"
)

func TestRequireNonEmpty(t *testing.T) {
	value, err := requireNonEmpty("  Acme  ", "Store Name")
	assert.NoError(t, err)
	assert.Equal(t, "Acme", value)

	_, err = requireNonEmpty("   ", "Store Name")
	assert.EqualError(t, err, "Store Name is required")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Store Name", validationErr.Field)
}

func TestParseNonNegative(t *testing.T) {
	price, err := parseNonNegative("499.50", "Selling Price")
	assert.NoError(t, err)
	assert.Equal(t, 499.50, *price)

	// Blank means absent, not invalid
	price, err = parseNonNegative("", "Selling Price")
	assert.NoError(t, err)
	assert.Nil(t, price)

	_, err = parseNonNegative("-1", "MRP")
	assert.EqualError(t, err, "MRP must be a valid non-negative number")

	_, err = parseNonNegative("abc", "Cost Price")
	assert.EqualError(t, err, "Cost Price must be a valid non-negative number")

	// ParseFloat happily produces NaN and Inf; neither belongs in a price column
	for _, input := range []string{"NaN", "nan", "Inf", "+Inf", "Infinity"} {
		_, err = parseNonNegative(input, "Selling Price")
		assert.EqualError(t, err, "Selling Price must be a valid non-negative number", "input %q", input)
	}
}

func TestParseNonNegativeInt(t *testing.T) {
	qty, err := parseNonNegativeInt("100", "Quantity")
	assert.NoError(t, err)
	assert.Equal(t, 100, *qty)

	qty, err = parseNonNegativeInt("", "Quantity")
	assert.NoError(t, err)
	assert.Nil(t, qty)

	_, err = parseNonNegativeInt("-3", "Quantity")
	assert.EqualError(t, err, "Quantity must be a valid non-negative number")
}

func TestMapHeaderAcceptsReorderedColumns(t *testing.T) {
	header, err := mapHeader([]string{"Store Name", "Sku Id", "Name", "Category Name"})
	assert.NoError(t, err)
	assert.Equal(t, 2, header["Name"])
	assert.Equal(t, 0, header["Store Name"])
}

func TestMapHeaderRejectsDuplicates(t *testing.T) {
	_, err := mapHeader([]string{"Name", "Sku Id", "Category Name", "Store Name", "Name"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "Name"`)
}

func TestMapHeaderStripsBOM(t *testing.T) {
	header, err := mapHeader([]string{"\uFEFF" + "Name", "Sku Id", "Category Name", "Store Name"})
	assert.NoError(t, err)
	assert.Equal(t, 0, header["Name"])
}

func TestMapHeaderAcceptsFullTemplate(t *testing.T) {
	header, err := mapHeader(models.ImportColumnNames())
	assert.NoError(t, err)
	assert.Len(t, header, 35)
}

func TestBindRowHandlesShortRecords(t *testing.T) {
	header := map[string]int{"Name": 0, "Sku Id": 1, "Store Name": 2}
	row := bindRow(header, []string{"Shirt"})
	assert.Equal(t, "Shirt", row["Name"])
	assert.Equal(t, "", row["Sku Id"])
	assert.Equal(t, "", row["Store Name"])
}

func TestMediaLists(t *testing.T) {
	row := map[string]string{
		"Image 1":  "http://x/a.jpg",
		"Image 2":  "b.jpg",
		"Image 5":  "https://cdn.example.com/c.png",
		"Image 10": "  d.webp  ",
		"Video 2":  "clip.mp4",
	}

	images, videos := mediaLists(row)

	// Blank slots are dropped; column order is preserved
	assert.Equal(t, []string{
		"http://x/a.jpg",
		"/uploads/products/b.jpg",
		"https://cdn.example.com/c.png",
		"/uploads/products/d.webp",
	}, images)
	assert.Equal(t, []string{"/uploads/products/clip.mp4"}, videos)
}

func TestMediaListsEmptyRow(t *testing.T) {
	images, videos := mediaLists(map[string]string{})
	assert.Empty(t, images)
	assert.Empty(t, videos)
}
