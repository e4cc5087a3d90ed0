package upload

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kolabix/digidinez-sub000/models"
)

// Canned rows emitted for sections the restaurant has no records in yet, so
// first-time users download a non-empty example in the exact shape the
// adapter consumes.
var (
	sampleCategoryRows = [][]interface{}{
		{"Starters", 1},
		{"Main Course", 2},
		{"Desserts", 3},
	}
	sampleTagRows = [][]interface{}{
		{"Spicy", "#FF0000"},
		{"Vegan", "#4CAF50"},
		{"Chef's Special", "#FFC107"},
	}
	sampleMenuItemRows = [][]interface{}{
		{"Paneer Tikka", "Chargrilled cottage cheese with mint chutney", 249, "Starters", "Spicy", "veg", "true", 2, 20, "true", 320, 18, 12, 22, "dairy"},
		{"Butter Chicken", "Tandoori chicken in a tomato butter gravy", 399, "Main Course", "Chef's Special", "non-veg", "false", 1, 30, "true", 540, 32, 18, 36, "dairy,nuts"},
		{"Gulab Jamun", "Milk dumplings in saffron syrup", 129, "Desserts", "", "veg", "false", 0, 10, "true", 380, 6, 52, 14, "dairy,gluten"},
	}
)

// BuildTemplate serializes the restaurant's current categories, tags and menu
// items into the three-sheet workbook shape the adapter consumes, falling
// back to canned sample rows for any empty section. Re-uploading the result
// with updateExisting set is a no-op create-wise (round-trip symmetry).
func BuildTemplate(ctx context.Context, restaurantID string, categories CategoryStore, tags TagStore, items MenuItemStore) (*excelize.File, error) {
	cats, err := categories.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("fetching categories for %s: %w", restaurantID, err)
	}
	tagList, err := tags.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("fetching tags for %s: %w", restaurantID, err)
	}
	itemList, err := items.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("fetching menu items for %s: %w", restaurantID, err)
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetCategories)
	if _, err := f.NewSheet(sheetTags); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetMenuItems); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	if err := writeSheet(f, sheetCategories, categoryHeaders, categorySheetRows(cats)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, sheetTags, tagHeaders, tagSheetRows(tagList)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, sheetMenuItems, menuItemHeaders, menuItemSheetRows(itemList, cats, tagList)); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func categorySheetRows(cats []models.Category) [][]interface{} {
	if len(cats) == 0 {
		return sampleCategoryRows
	}
	rows := make([][]interface{}, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []interface{}{c.Name, c.Sort_order})
	}
	return rows
}

func tagSheetRows(tags []models.Tag) [][]interface{} {
	if len(tags) == 0 {
		return sampleTagRows
	}
	rows := make([][]interface{}, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []interface{}{t.Name, t.Color})
	}
	return rows
}

func menuItemSheetRows(items []models.MenuItem, cats []models.Category, tags []models.Tag) [][]interface{} {
	if len(items) == 0 {
		return sampleMenuItemRows
	}

	categoryNames := make(map[string]string, len(cats))
	for _, c := range cats {
		categoryNames[c.Category_id] = c.Name
	}
	tagNames := make(map[string]string, len(tags))
	for _, t := range tags {
		tagNames[t.Tag_id] = t.Name
	}

	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, []interface{}{
			item.Name,
			item.Description,
			item.Price,
			joinNames(item.Category_ids, categoryNames),
			joinNames(item.Tag_ids, tagNames),
			item.Food_type,
			strconv.FormatBool(item.Is_spicy),
			item.Spicy_level,
			formatOptionalInt(item.Preparation_time),
			strconv.FormatBool(item.Is_available),
			formatOptionalFloat(item.Nutrition_info.Calories),
			formatOptionalFloat(item.Nutrition_info.Protein),
			formatOptionalFloat(item.Nutrition_info.Carbs),
			formatOptionalFloat(item.Nutrition_info.Fat),
			strings.Join(item.Allergens, ","),
		})
	}
	return rows
}

// joinNames renders ID references back to their comma-joined names; IDs whose
// entity has since been deleted are dropped rather than rendered as raw IDs.
func joinNames(ids []string, names map[string]string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
		}
	}
	return strings.Join(out, ",")
}

func formatOptionalInt(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}

func formatOptionalFloat(n *float64) interface{} {
	if n == nil {
		return ""
	}
	return *n
}
