package upload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kolabix/digidinez-sub000/models"
)

// Reconciler applies a validated upload document against persisted state.
// Sections run strictly in the order categories, tags, menu items: items
// reference the other two by name and must see categories/tags committed
// earlier in the same upload. Each record is reconciled independently; a
// failure on one record is recorded in its section's error list and the loop
// continues.
type Reconciler struct {
	Categories CategoryStore
	Tags       TagStore
	MenuItems  MenuItemStore
}

// Apply runs the three passes and returns the per-section results. It returns
// a non-nil error only for infrastructure failures outside any single record
// (the lookup-snapshot fetch before the menu item pass); callers should map
// that to a 500 with no partial-results body.
func (rc *Reconciler) Apply(ctx context.Context, restaurantID string, doc *models.UploadDocument, updateExisting bool) (*models.UploadResult, error) {
	result := models.NewUploadResult()

	rc.applyCategories(ctx, restaurantID, doc.Categories, updateExisting, &result.Categories)
	rc.applyTags(ctx, restaurantID, doc.Tags, updateExisting, &result.Tags)
	if err := rc.applyMenuItems(ctx, restaurantID, doc.MenuItems, updateExisting, &result.MenuItems); err != nil {
		return nil, err
	}

	return result, nil
}

func (rc *Reconciler) applyCategories(ctx context.Context, restaurantID string, rows []models.CategoryRow, updateExisting bool, res *models.SectionResult) {
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)

		existing, err := rc.Categories.FindOne(ctx, restaurantID, name)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Category %q: %v", name, err))
			continue
		}

		if existing != nil {
			if !updateExisting {
				res.Errors = append(res.Errors, fmt.Sprintf("Category %q already exists", name))
				continue
			}
			// An empty cell leaves the stored sort order alone.
			if row.SortOrder != "" {
				existing.Sort_order, _ = parseInt(row.SortOrder)
			}
			existing.Updated_at = time.Now()
			if err := rc.Categories.Save(ctx, existing); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("Category %q: %v", name, err))
				continue
			}
			res.Updated++
			continue
		}

		sortOrder := 0
		if row.SortOrder != "" {
			sortOrder, _ = parseInt(row.SortOrder)
		}
		category := models.Category{
			ID:            primitive.NewObjectID(),
			Name:          name,
			Sort_order:    sortOrder,
			Restaurant_id: restaurantID,
			Created_at:    time.Now(),
			Updated_at:    time.Now(),
		}
		category.Category_id = category.ID.Hex()
		if err := rc.Categories.Create(ctx, &category); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Category %q: %v", name, err))
			continue
		}
		res.Created++
	}
}

func (rc *Reconciler) applyTags(ctx context.Context, restaurantID string, rows []models.TagRow, updateExisting bool, res *models.SectionResult) {
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		color := strings.TrimSpace(row.Color)

		existing, err := rc.Tags.FindOne(ctx, restaurantID, name)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Tag %q: %v", name, err))
			continue
		}

		if existing != nil {
			if !updateExisting {
				res.Errors = append(res.Errors, fmt.Sprintf("Tag %q already exists", name))
				continue
			}
			existing.Color = color
			existing.Updated_at = time.Now()
			if err := rc.Tags.Save(ctx, existing); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("Tag %q: %v", name, err))
				continue
			}
			res.Updated++
			continue
		}

		tag := models.Tag{
			ID:            primitive.NewObjectID(),
			Name:          name,
			Color:         color,
			Restaurant_id: restaurantID,
			Created_at:    time.Now(),
			Updated_at:    time.Now(),
		}
		tag.Tag_id = tag.ID.Hex()
		if err := rc.Tags.Create(ctx, &tag); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Tag %q: %v", name, err))
			continue
		}
		res.Created++
	}
}

func (rc *Reconciler) applyMenuItems(ctx context.Context, restaurantID string, rows []models.MenuItemRow, updateExisting bool, res *models.SectionResult) error {
	if len(rows) == 0 {
		return nil
	}

	// Lookup snapshot: taken once, after the category and tag passes have
	// committed, so rows can reference categories/tags created earlier in the
	// same upload. Keys are lower-cased trimmed names. The maps are never
	// refreshed mid-pass.
	categories, err := rc.Categories.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("fetching categories for %s: %w", restaurantID, err)
	}
	tags, err := rc.Tags.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("fetching tags for %s: %w", restaurantID, err)
	}

	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryIDs[strings.ToLower(strings.TrimSpace(c.Name))] = c.Category_id
	}
	tagIDs := make(map[string]string, len(tags))
	for _, t := range tags {
		tagIDs[strings.ToLower(strings.TrimSpace(t.Name))] = t.Tag_id
	}

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)

		// Unresolved references are reported but do not block the item: the
		// record is still written with whatever subset of names resolved.
		var resolvedCategories []string
		for _, ref := range splitNames(row.Categories) {
			if id, ok := categoryIDs[strings.ToLower(ref)]; ok {
				resolvedCategories = append(resolvedCategories, id)
			} else {
				res.Errors = append(res.Errors, fmt.Sprintf("Menu Item %q: Category %q not found", name, ref))
			}
		}
		var resolvedTags []string
		for _, ref := range splitNames(row.Tags) {
			if id, ok := tagIDs[strings.ToLower(ref)]; ok {
				resolvedTags = append(resolvedTags, id)
			} else {
				res.Errors = append(res.Errors, fmt.Sprintf("Menu Item %q: Tag %q not found", name, ref))
			}
		}

		fields := parseMenuItemFields(row)

		existing, err := rc.MenuItems.FindOne(ctx, restaurantID, name)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Menu Item %q: %v", name, err))
			continue
		}

		if existing != nil {
			if !updateExisting {
				res.Errors = append(res.Errors, fmt.Sprintf("Menu Item %q already exists", name))
				continue
			}
			existing.Description = fields.description
			existing.Price = fields.price
			existing.Category_ids = resolvedCategories
			existing.Tag_ids = resolvedTags
			existing.Food_type = fields.foodType
			existing.Is_spicy = fields.isSpicy
			existing.Spicy_level = fields.spicyLevel
			existing.Preparation_time = fields.preparationTime
			existing.Is_available = fields.isAvailable
			existing.Nutrition_info = fields.nutrition
			existing.Allergens = fields.allergens
			existing.Updated_at = time.Now()
			if err := rc.MenuItems.Save(ctx, existing); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("Menu Item %q: %v", name, err))
				continue
			}
			res.Updated++
			continue
		}

		item := models.MenuItem{
			ID:               primitive.NewObjectID(),
			Name:             name,
			Description:      fields.description,
			Price:            fields.price,
			Category_ids:     resolvedCategories,
			Tag_ids:          resolvedTags,
			Food_type:        fields.foodType,
			Is_spicy:         fields.isSpicy,
			Spicy_level:      fields.spicyLevel,
			Preparation_time: fields.preparationTime,
			Is_available:     fields.isAvailable,
			Nutrition_info:   fields.nutrition,
			Allergens:        fields.allergens,
			Restaurant_id:    restaurantID,
			Created_at:       time.Now(),
			Updated_at:       time.Now(),
		}
		item.Item_id = item.ID.Hex()
		if err := rc.MenuItems.Create(ctx, &item); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Menu Item %q: %v", name, err))
			continue
		}
		res.Created++
	}

	return nil
}

type menuItemFields struct {
	description     string
	price           float64
	foodType        string
	isSpicy         bool
	spicyLevel      int
	preparationTime *int
	isAvailable     bool
	nutrition       models.NutritionInfo
	allergens       []string
}

// parseMenuItemFields converts raw cells to typed values. The structural
// validator has already run, so parse failures cannot occur on required
// fields; optional empty cells fall back to their defaults.
func parseMenuItemFields(row models.MenuItemRow) menuItemFields {
	fields := menuItemFields{
		description: strings.TrimSpace(row.Description),
		foodType:    "veg",
		isAvailable: true,
		allergens:   splitNames(row.Allergens),
	}

	fields.price, _ = parseFloat(row.Price)

	if ft := strings.ToLower(strings.TrimSpace(row.FoodType)); ft != "" {
		fields.foodType = ft
	}
	if row.IsSpicy != "" {
		fields.isSpicy, _ = parseBool(row.IsSpicy)
	}
	if row.SpicyLevel != "" {
		fields.spicyLevel, _ = parseInt(row.SpicyLevel)
	}
	if row.PreparationTime != "" {
		if n, err := parseInt(row.PreparationTime); err == nil {
			fields.preparationTime = &n
		}
	}
	if row.IsAvailable != "" {
		fields.isAvailable, _ = parseBool(row.IsAvailable)
	}

	fields.nutrition = models.NutritionInfo{
		Calories: optionalFloat(row.Calories),
		Protein:  optionalFloat(row.Protein),
		Carbs:    optionalFloat(row.Carbs),
		Fat:      optionalFloat(row.Fat),
	}

	return fields
}

func optionalFloat(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := parseFloat(s)
	if err != nil {
		return nil
	}
	return &n
}
