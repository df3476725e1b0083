// Package bulkimport maps spreadsheet rows onto property listings, validating
// required columns and coercing typed fields. Rows that fail validation are
// reported individually and excluded from the valid set.
package bulkimport

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mkessler/plotmark/internal/property"
)

// requiredColumns must all be present in the header row, and non-empty in
// every valid data row.
var requiredColumns = []string{
	"title", "description", "price", "propertyType", "location",
	"address", "area", "latitude", "longitude",
}

// Result holds the outcome of one import: the valid properties in sheet
// order plus one error string per rejected row or missing column.
type Result struct {
	Valid  []*property.Property `json:"valid"`
	Errors []string             `json:"errors"`
}

// ParseFile reads an xlsx file from disk. See Parse.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close file: %v)", err, closeErr)
		}
	}()

	return Parse(f)
}

// Parse reads the first sheet of an xlsx workbook. The first row is the
// header; every later row maps to a property. A malformed workbook is an
// error; malformed rows are per-row errors in the result.
func Parse(r io.Reader) (*Result, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() {
		if closeErr := wb.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close workbook: %v)", err, closeErr)
		}
	}()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	result := &Result{}

	columns := headerIndex(rows[0])
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("missing required column %q", col))
		}
	}
	if len(result.Errors) > 0 {
		// Without the full required header no row can be mapped.
		return result, nil
	}

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		p, rowErrs := mapRow(columns, row, rowNum)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}
		result.Valid = append(result.Valid, p)
	}

	return result, nil
}

// headerIndex maps trimmed header names to their column position.
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name != "" {
			columns[name] = i
		}
	}
	return columns
}

// cell returns the trimmed cell under the named column, or "" when the row
// is short or the column is absent.
func cell(columns map[string]int, row []string, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// mapRow converts one data row into a property, collecting every field
// error so a bad row reports all of its problems at once.
func mapRow(columns map[string]int, row []string, rowNum int) (*property.Property, []string) {
	var errs []string

	for _, col := range requiredColumns {
		if cell(columns, row, col) == "" {
			errs = append(errs, fmt.Sprintf("row %d: missing required field %q", rowNum, col))
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	p := &property.Property{
		Title:        cell(columns, row, "title"),
		Description:  cell(columns, row, "description"),
		PropertyType: cell(columns, row, "propertyType"),
		Location:     cell(columns, row, "location"),
		Address:      cell(columns, row, "address"),
	}

	p.Price = requireFloat(columns, row, "price", rowNum, &errs)
	p.Area = requireFloat(columns, row, "area", rowNum, &errs)
	p.Latitude = requireFloat(columns, row, "latitude", rowNum, &errs)
	p.Longitude = requireFloat(columns, row, "longitude", rowNum, &errs)

	if v := cell(columns, row, "builder"); v != "" {
		p.Builder = &v
	}
	if v := cell(columns, row, "possessionDate"); v != "" {
		p.PossessionDate = &v
	}
	p.Bedrooms = optionalInt(columns, row, "bedrooms", rowNum, &errs)
	p.Bathrooms = optionalInt(columns, row, "bathrooms", rowNum, &errs)
	p.Floors = optionalInt(columns, row, "floors", rowNum, &errs)
	p.PricePerSqFt = optionalFloat(columns, row, "pricePerSqFt", rowNum, &errs)

	p.Amenities = splitList(cell(columns, row, "amenities"))
	p.Tags = splitList(cell(columns, row, "tags"))
	p.Images = splitList(cell(columns, row, "images"))
	p.FeaturedImage = cell(columns, row, "featuredImage")
	p.IsFeatured = parseBool(cell(columns, row, "isFeatured"))
	p.IsVerified = parseBool(cell(columns, row, "isVerified"))

	if len(errs) > 0 {
		return nil, errs
	}
	return p, nil
}

// requireFloat parses a required numeric cell, recording a row error on
// failure.
func requireFloat(columns map[string]int, row []string, name string, rowNum int, errs *[]string) float64 {
	raw := cell(columns, row, name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("row %d: invalid %s %q", rowNum, name, raw))
		return 0
	}
	return v
}

// optionalFloat parses an optional numeric cell; empty is nil, garbage is a
// row error.
func optionalFloat(columns map[string]int, row []string, name string, rowNum int, errs *[]string) *float64 {
	raw := cell(columns, row, name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("row %d: invalid %s %q", rowNum, name, raw))
		return nil
	}
	return &v
}

// optionalInt parses an optional integer cell; empty is nil, garbage is a
// row error.
func optionalInt(columns map[string]int, row []string, name string, rowNum int, errs *[]string) *int64 {
	raw := cell(columns, row, name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("row %d: invalid %s %q", rowNum, name, raw))
		return nil
	}
	return &v
}

// splitList splits a comma-separated cell into trimmed, non-empty items.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// parseBool coerces yes/true/1 (case-insensitive) to true.
func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// Inserter persists imported properties. *property.Repository satisfies it.
type Inserter interface {
	Insert(p *property.Property) (*property.Property, error)
}

// Importer parses a workbook and persists its valid rows.
type Importer struct {
	inserter Inserter
}

// NewImporter creates an importer writing to the given store.
func NewImporter(inserter Inserter) *Importer {
	return &Importer{inserter: inserter}
}

// Import parses r and inserts every valid row. Insert failures are reported
// alongside the row validation errors; valid rows that persisted are
// returned in the result.
func (im *Importer) Import(r io.Reader) (*Result, error) {
	parsed, err := Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: parsed.Errors}
	for _, p := range parsed.Valid {
		saved, err := im.inserter.Insert(p)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("saving %q: %v", p.Title, err))
			continue
		}
		result.Valid = append(result.Valid, saved)
	}

	return result, nil
}
