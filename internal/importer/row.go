package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"shopzeo/internal/models"
)

// requiredColumns must appear in the header for an import to start at all;
// every other known column is optional and may be omitted entirely.
var requiredColumns = []string{"Name", "Sku Id", "Category Name", "Store Name"}

// mapHeader validates the CSV header row against the fixed column contract
// and returns a label -> record index mapping. Column order is free, but an
// unknown label, a duplicated label or a missing required label rejects the
// whole file before any transaction is opened.
func mapHeader(record []string) (map[string]int, error) {
	known := make(map[string]struct{}, len(models.ImportColumnNames()))
	for _, name := range models.ImportColumnNames() {
		known[name] = struct{}{}
	}

	header := make(map[string]int, len(record))
	for i, cell := range record {
		name := strings.TrimSpace(cell)
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		if _, ok := known[name]; !ok {
			return nil, &HeaderError{Message: fmt.Sprintf("unknown column %q in CSV header", name)}
		}
		if _, dup := header[name]; dup {
			return nil, &HeaderError{Message: fmt.Sprintf("duplicate column %q in CSV header", name)}
		}
		header[name] = i
	}

	for _, name := range requiredColumns {
		if _, ok := header[name]; !ok {
			return nil, &HeaderError{Message: fmt.Sprintf("missing required column %q in CSV header", name)}
		}
	}

	return header, nil
}

// bindRow converts one CSV record into a label -> value map using the
// validated header. Missing trailing cells bind as empty strings.
func bindRow(header map[string]int, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for name, idx := range header {
		if idx < len(record) {
			row[name] = record[idx]
		} else {
			row[name] = ""
		}
	}
	return row
}

// requireNonEmpty trims the value and fails when nothing remains
func requireNonEmpty(value, fieldName string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{Field: fieldName, Message: fmt.Sprintf("%s is required", fieldName)}
	}
	return trimmed, nil
}

// parseNonNegative parses an optional decimal field. Blank input is absent,
// not an error; anything else must parse as a non-negative number.
func parseNonNegative(value, fieldName string) (*float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || num < 0 || math.IsNaN(num) || math.IsInf(num, 0) {
		return nil, &ValidationError{Field: fieldName, Message: fmt.Sprintf("%s must be a valid non-negative number", fieldName)}
	}
	return &num, nil
}

// parseNonNegativeInt is parseNonNegative for whole-number fields
func parseNonNegativeInt(value, fieldName string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	num, err := strconv.Atoi(trimmed)
	if err != nil || num < 0 {
		return nil, &ValidationError{Field: fieldName, Message: fmt.Sprintf("%s must be a valid non-negative number", fieldName)}
	}
	return &num, nil
}

// optionalString trims an optional text field, mapping blank to nil
func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
