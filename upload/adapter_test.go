package upload_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kolabix/digidinez-sub000/upload"
)

// buildWorkbook creates an in-memory workbook with the given sheets, each as
// a header row followed by data rows, and returns the serialized bytes.
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			f.SetSheetName("Sheet1", name)
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("NewSheet(%s) failed: %v", name, err)
			}
		}
		for i := range rows {
			axis, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName failed: %v", err)
			}
			if err := f.SetSheetRow(name, axis, &rows[i]); err != nil {
				t.Fatalf("SetSheetRow failed: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func TestParseWorkbookAllSections(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"Categories": {
			{"Name", "Sort Order"},
			{"Starters", 1},
			{"Mains", 2},
		},
		"Tags": {
			{"Name", "Color"},
			{"Spicy", "#FF0000"},
		},
		"Menu Items": {
			{"Name", "Description", "Price", "Categories", "Tags", "Food Type", "Is Spicy", "Spicy Level", "Preparation Time", "Is Available", "Calories", "Protein", "Carbs", "Fat", "Allergens"},
			{"Paneer Tikka", "Chargrilled paneer", 249, "Starters", "Spicy", "veg", "true", 2, 20, "true", 320, 18, 12, 22, "dairy"},
		},
	})

	doc, err := upload.Parse(data, "menu.xlsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(doc.Categories) != 2 {
		t.Fatalf("Categories=%d, want 2", len(doc.Categories))
	}
	if doc.Categories[0].Name != "Starters" || doc.Categories[0].SortOrder != "1" {
		t.Fatalf("Categories[0]=%+v", doc.Categories[0])
	}
	if doc.Categories[1].Index != 2 {
		t.Fatalf("Index=%d, want 2", doc.Categories[1].Index)
	}
	if len(doc.Tags) != 1 || doc.Tags[0].Color != "#FF0000" {
		t.Fatalf("Tags=%+v", doc.Tags)
	}
	if len(doc.MenuItems) != 1 {
		t.Fatalf("MenuItems=%d, want 1", len(doc.MenuItems))
	}
	item := doc.MenuItems[0]
	if item.Name != "Paneer Tikka" || item.Price != "249" || item.Categories != "Starters" || item.SpicyLevel != "2" {
		t.Fatalf("MenuItems[0]=%+v", item)
	}
}

func TestParseWorkbookOmitsAbsentSections(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"Categories": {
			{"Name", "Sort Order"},
			{"Starters", 1},
		},
	})

	doc, err := upload.Parse(data, "menu.xlsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Categories == nil {
		t.Fatal("Categories should be present")
	}
	if doc.Tags != nil || doc.MenuItems != nil {
		t.Fatalf("absent sheets must stay nil: tags=%v items=%v", doc.Tags, doc.MenuItems)
	}
}

func TestParseWorkbookSkipsBlankRowsAndReordersColumns(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"Categories": {
			{"Sort Order", "Name"},
			{1, "Starters"},
			{"", ""},
			{2, "Desserts"},
		},
	})

	doc, err := upload.Parse(data, "menu.xlsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Categories) != 2 {
		t.Fatalf("Categories=%d, want 2 (blank row skipped)", len(doc.Categories))
	}
	if doc.Categories[1].Name != "Desserts" || doc.Categories[1].SortOrder != "2" {
		t.Fatalf("Categories[1]=%+v, reordered headers should still map", doc.Categories[1])
	}
	if doc.Categories[1].Index != 2 {
		t.Fatalf("Index=%d, blank rows must not consume an index", doc.Categories[1].Index)
	}
}

func TestParseCorruptWorkbookFailsWhole(t *testing.T) {
	_, err := upload.Parse([]byte("this is not a workbook"), "menu.xlsx")
	var formatErr *upload.FileFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("err=%v, want *FileFormatError", err)
	}
}

func TestParseUnknownExtension(t *testing.T) {
	_, err := upload.Parse([]byte("Name,Sort Order\nStarters,1\n"), "menu.txt")
	var formatErr *upload.FileFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("err=%v, want *FileFormatError", err)
	}
}

func TestParseCSVWithSectionColumn(t *testing.T) {
	csvData := "Section,Name,Sort Order,Color,Price,Food Type\n" +
		"Categories,Starters,1,,,\n" +
		"Tags,Spicy,,#FF0000,,\n" +
		"Menu Items,Paneer Tikka,,,249,veg\n"

	doc, err := upload.Parse([]byte(csvData), "menu.csv")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(doc.Categories) != 1 || doc.Categories[0].Name != "Starters" || doc.Categories[0].SortOrder != "1" {
		t.Fatalf("Categories=%+v", doc.Categories)
	}
	if len(doc.Tags) != 1 || doc.Tags[0].Color != "#FF0000" {
		t.Fatalf("Tags=%+v", doc.Tags)
	}
	if len(doc.MenuItems) != 1 || doc.MenuItems[0].Price != "249" || doc.MenuItems[0].FoodType != "veg" {
		t.Fatalf("MenuItems=%+v", doc.MenuItems)
	}
}

func TestParseCSVWithoutSectionColumn(t *testing.T) {
	csvData := "Name,Sort Order\nStarters,1\n"

	_, err := upload.Parse([]byte(csvData), "menu.csv")
	var formatErr *upload.FileFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("err=%v, want *FileFormatError", err)
	}
}

func TestParseCSVUnknownSection(t *testing.T) {
	csvData := "Section,Name\nCategories,Starters\nBeverages,Cola\n"

	_, err := upload.Parse([]byte(csvData), "menu.csv")
	var formatErr *upload.FileFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("err=%v, want *FileFormatError", err)
	}
	if got := formatErr.Error(); !strings.Contains(got, "row 3") || !strings.Contains(got, "Beverages") {
		t.Fatalf("error %q should name the offending row and section", got)
	}
}
