package upload

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kolabix/digidinez-sub000/models"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate applies the field-level rules to every record of every present
// section. It does no I/O. A single violation rejects the whole upload before
// any persistence call; this is the only gate that can abort the batch.
func Validate(doc *models.UploadDocument) ValidationResult {
	errs := []string{}

	for _, row := range doc.Categories {
		errs = append(errs, validateCategoryRow(row)...)
	}
	for _, row := range doc.Tags {
		errs = append(errs, validateTagRow(row)...)
	}
	for _, row := range doc.MenuItems {
		errs = append(errs, validateMenuItemRow(row)...)
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func validateCategoryRow(row models.CategoryRow) []string {
	var errs []string
	name := strings.TrimSpace(row.Name)
	if name == "" {
		errs = append(errs, fmt.Sprintf("Category %d: Name is required", row.Index))
	} else if utf8.RuneCountInString(name) > 50 {
		errs = append(errs, fmt.Sprintf("Category %d: Name must be at most 50 characters", row.Index))
	}
	if row.SortOrder != "" {
		if n, err := parseInt(row.SortOrder); err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("Category %d: Sort Order must be a non-negative integer", row.Index))
		}
	}
	return errs
}

func validateTagRow(row models.TagRow) []string {
	var errs []string
	name := strings.TrimSpace(row.Name)
	if name == "" {
		errs = append(errs, fmt.Sprintf("Tag %d: Name is required", row.Index))
	} else if utf8.RuneCountInString(name) > 30 {
		errs = append(errs, fmt.Sprintf("Tag %d: Name must be at most 30 characters", row.Index))
	}
	if !hexColorPattern.MatchString(strings.TrimSpace(row.Color)) {
		errs = append(errs, fmt.Sprintf("Tag %d: Color must be a hex color such as #FF0000", row.Index))
	}
	return errs
}

func validateMenuItemRow(row models.MenuItemRow) []string {
	var errs []string
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf("Menu Item %d: ", row.Index)+fmt.Sprintf(format, args...))
	}

	name := strings.TrimSpace(row.Name)
	if name == "" {
		fail("Name is required")
	} else if utf8.RuneCountInString(name) > 100 {
		fail("Name must be at most 100 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(row.Description)) > 500 {
		fail("Description must be at most 500 characters")
	}
	if price, err := parseFloat(row.Price); err != nil || price <= 0 {
		fail("Price must be a positive number")
	}
	if ft := strings.ToLower(strings.TrimSpace(row.FoodType)); ft != "" && ft != "veg" && ft != "non-veg" {
		fail("Food Type must be either veg or non-veg")
	}
	if row.SpicyLevel != "" {
		if n, err := parseInt(row.SpicyLevel); err != nil || n < 0 || n > 3 {
			fail("Spicy Level must be an integer between 0 and 3")
		}
	}
	if row.PreparationTime != "" {
		if n, err := parseInt(row.PreparationTime); err != nil || n < 0 {
			fail("Preparation Time must be a non-negative integer")
		}
	}
	for _, f := range []struct{ label, value string }{
		{"Calories", row.Calories},
		{"Protein", row.Protein},
		{"Carbs", row.Carbs},
		{"Fat", row.Fat},
	} {
		if f.value == "" {
			continue
		}
		if n, err := parseFloat(f.value); err != nil || n < 0 {
			fail("%s must be a non-negative number", f.label)
		}
	}
	if row.IsSpicy != "" {
		if _, ok := parseBool(row.IsSpicy); !ok {
			fail("Is Spicy must be true or false")
		}
	}
	if row.IsAvailable != "" {
		if _, ok := parseBool(row.IsAvailable); !ok {
			fail("Is Available must be true or false")
		}
	}
	return errs
}
