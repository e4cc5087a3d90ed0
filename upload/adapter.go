package upload

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kolabix/digidinez-sub000/models"
)

const (
	sheetCategories = "Categories"
	sheetTags       = "Tags"
	sheetMenuItems  = "Menu Items"
)

// Column headers shared by the adapter and the template generator. The
// template emits them in exactly this order; the adapter matches them
// case-insensitively so hand-edited files with reordered columns still parse.
var (
	categoryHeaders = []string{"Name", "Sort Order"}
	tagHeaders      = []string{"Name", "Color"}
	menuItemHeaders = []string{
		"Name", "Description", "Price", "Categories", "Tags", "Food Type",
		"Is Spicy", "Spicy Level", "Preparation Time", "Is Available",
		"Calories", "Protein", "Carbs", "Fat", "Allergens",
	}
)

// Parse turns an uploaded file into a typed upload document. The declared
// filename decides the format; anything unreadable fails the whole request
// with a *FileFormatError and no partial output.
func Parse(data []byte, filename string) (*models.UploadDocument, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseWorkbook(data)
	case ".csv":
		return parseCSV(data)
	default:
		return nil, &FileFormatError{Reason: fmt.Sprintf("unsupported file type %q, expected .xlsx or .csv", filepath.Ext(filename))}
	}
}

func parseWorkbook(data []byte) (*models.UploadDocument, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FileFormatError{Reason: "could not read workbook: " + err.Error()}
	}
	defer f.Close()

	doc := &models.UploadDocument{}

	if rows, ok := sheetRows(f, sheetCategories); ok {
		doc.Categories = categoryRowsFrom(rows)
	}
	if rows, ok := sheetRows(f, sheetTags); ok {
		doc.Tags = tagRowsFrom(rows)
	}
	if rows, ok := sheetRows(f, sheetMenuItems); ok {
		doc.MenuItems = menuItemRowsFrom(rows)
	}

	return doc, nil
}

// sheetRows returns the rows of a named sheet, or ok=false when the workbook
// has no such sheet. An absent sheet simply omits that section.
func sheetRows(f *excelize.File, name string) ([][]string, bool) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, false
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, false
	}
	return rows, true
}

func categoryRowsFrom(rows [][]string) []models.CategoryRow {
	out := []models.CategoryRow{}
	if len(rows) == 0 {
		return out
	}
	cols := headerIndex(rows[0])
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		out = append(out, models.CategoryRow{
			Name:      cell(row, cols, "name"),
			SortOrder: cell(row, cols, "sort order"),
			Index:     len(out) + 1,
		})
	}
	return out
}

func tagRowsFrom(rows [][]string) []models.TagRow {
	out := []models.TagRow{}
	if len(rows) == 0 {
		return out
	}
	cols := headerIndex(rows[0])
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		out = append(out, models.TagRow{
			Name:  cell(row, cols, "name"),
			Color: cell(row, cols, "color"),
			Index: len(out) + 1,
		})
	}
	return out
}

func menuItemRowsFrom(rows [][]string) []models.MenuItemRow {
	out := []models.MenuItemRow{}
	if len(rows) == 0 {
		return out
	}
	cols := headerIndex(rows[0])
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		out = append(out, menuItemRowFrom(row, cols, len(out)+1))
	}
	return out
}

func menuItemRowFrom(row []string, cols map[string]int, index int) models.MenuItemRow {
	return models.MenuItemRow{
		Name:            cell(row, cols, "name"),
		Description:     cell(row, cols, "description"),
		Price:           cell(row, cols, "price"),
		Categories:      cell(row, cols, "categories"),
		Tags:            cell(row, cols, "tags"),
		FoodType:        cell(row, cols, "food type"),
		IsSpicy:         cell(row, cols, "is spicy"),
		SpicyLevel:      cell(row, cols, "spicy level"),
		PreparationTime: cell(row, cols, "preparation time"),
		IsAvailable:     cell(row, cols, "is available"),
		Calories:        cell(row, cols, "calories"),
		Protein:         cell(row, cols, "protein"),
		Carbs:           cell(row, cols, "carbs"),
		Fat:             cell(row, cols, "fat"),
		Allergens:       cell(row, cols, "allergens"),
		Index:           index,
	}
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, exists := cols[key]; !exists {
			cols[key] = i
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, key string) string {
	i, ok := cols[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseCSV reads a single-stream CSV. A CSV has no sheet boundaries, so every
// row must carry a Section column naming Categories, Tags or Menu Items;
// guessing the section from which columns happen to be present is not
// supported.
func parseCSV(data []byte) (*models.UploadDocument, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &FileFormatError{Reason: "could not read CSV: " + err.Error()}
	}
	if len(records) == 0 {
		return nil, &FileFormatError{Reason: "CSV file is empty"}
	}

	cols := headerIndex(records[0])
	if _, ok := cols["section"]; !ok {
		return nil, &FileFormatError{Reason: `CSV uploads require a "Section" column naming Categories, Tags or Menu Items; use the XLSX template for multi-sheet uploads`}
	}

	doc := &models.UploadDocument{}
	for i, row := range records[1:] {
		if blankRow(row) {
			continue
		}
		switch strings.ToLower(cell(row, cols, "section")) {
		case "categories", "category":
			if doc.Categories == nil {
				doc.Categories = []models.CategoryRow{}
			}
			doc.Categories = append(doc.Categories, models.CategoryRow{
				Name:      cell(row, cols, "name"),
				SortOrder: cell(row, cols, "sort order"),
				Index:     len(doc.Categories) + 1,
			})
		case "tags", "tag":
			if doc.Tags == nil {
				doc.Tags = []models.TagRow{}
			}
			doc.Tags = append(doc.Tags, models.TagRow{
				Name:  cell(row, cols, "name"),
				Color: cell(row, cols, "color"),
				Index: len(doc.Tags) + 1,
			})
		case "menu items", "menu item", "menuitems":
			if doc.MenuItems == nil {
				doc.MenuItems = []models.MenuItemRow{}
			}
			doc.MenuItems = append(doc.MenuItems, menuItemRowFrom(row, cols, len(doc.MenuItems)+1))
		default:
			return nil, &FileFormatError{Reason: fmt.Sprintf("row %d: unknown section %q", i+2, cell(row, cols, "section"))}
		}
	}

	return doc, nil
}
