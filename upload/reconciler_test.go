package upload_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kolabix/digidinez-sub000/models"
	"github.com/kolabix/digidinez-sub000/upload"
)

func newReconciler() (*upload.Reconciler, *memCategoryStore, *memTagStore, *memMenuItemStore) {
	cats := &memCategoryStore{}
	tags := &memTagStore{}
	items := &memMenuItemStore{}
	return &upload.Reconciler{Categories: cats, Tags: tags, MenuItems: items}, cats, tags, items
}

func TestApplyCreatesAllSectionsOnEmptyRestaurant(t *testing.T) {
	rc, cats, tags, items := newReconciler()

	doc := &models.UploadDocument{
		Categories: []models.CategoryRow{{Name: "Starters", SortOrder: "1", Index: 1}},
		Tags:       []models.TagRow{{Name: "Spicy", Color: "#FF0000", Index: 1}},
		MenuItems: []models.MenuItemRow{{
			Name: "Paneer Tikka", Price: "249", Categories: "Starters", Tags: "Spicy", FoodType: "veg", Index: 1,
		}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, false)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	summary := result.Summary()
	if summary.TotalCreated != 3 {
		t.Fatalf("TotalCreated=%d, want 3", summary.TotalCreated)
	}
	if summary.TotalUpdated != 0 {
		t.Fatalf("TotalUpdated=%d, want 0", summary.TotalUpdated)
	}
	if summary.TotalErrors != 0 {
		t.Fatalf("TotalErrors=%d, want 0: %v", summary.TotalErrors, result)
	}

	if len(items.items) != 1 {
		t.Fatalf("items=%d, want 1", len(items.items))
	}
	item := items.items[0]
	if item.Price != 249 {
		t.Fatalf("Price=%v, want 249", item.Price)
	}
	if len(item.Category_ids) != 1 || item.Category_ids[0] != cats.categories[0].Category_id {
		t.Fatalf("Category_ids=%v, want the Starters id", item.Category_ids)
	}
	if len(item.Tag_ids) != 1 || item.Tag_ids[0] != tags.tags[0].Tag_id {
		t.Fatalf("Tag_ids=%v, want the Spicy id", item.Tag_ids)
	}
	if item.Restaurant_id != "rest1" {
		t.Fatalf("Restaurant_id=%q", item.Restaurant_id)
	}
}

func TestApplyDuplicateSkippedWithoutUpdateFlag(t *testing.T) {
	rc, cats, _, _ := newReconciler()
	seedCategory(cats, "Starters", 1)

	doc := &models.UploadDocument{
		Categories: []models.CategoryRow{{Name: "Starters", SortOrder: "5", Index: 1}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, false)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Categories.Created != 0 || result.Categories.Updated != 0 {
		t.Fatalf("created=%d updated=%d, want 0/0", result.Categories.Created, result.Categories.Updated)
	}
	if len(result.Categories.Errors) != 1 {
		t.Fatalf("errors=%v, want exactly one", result.Categories.Errors)
	}
	msg := result.Categories.Errors[0]
	if !strings.Contains(msg, "Starters") || !strings.Contains(msg, "already exists") {
		t.Fatalf("error %q should name the category and say already exists", msg)
	}
	if cats.categories[0].Sort_order != 1 {
		t.Fatalf("Sort_order=%d, existing record must not be mutated", cats.categories[0].Sort_order)
	}
}

func TestApplyUpdatesExistingInPlace(t *testing.T) {
	rc, cats, tags, _ := newReconciler()
	seedCategory(cats, "Starters", 1)
	seedTag(tags, "Spicy", "#FF0000")

	doc := &models.UploadDocument{
		Categories: []models.CategoryRow{{Name: "Starters", SortOrder: "7", Index: 1}},
		Tags:       []models.TagRow{{Name: "Spicy", Color: "#00FF00", Index: 1}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, true)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	summary := result.Summary()
	if summary.TotalCreated != 0 || summary.TotalUpdated != 2 || summary.TotalErrors != 0 {
		t.Fatalf("summary=%+v, want 0 created, 2 updated, 0 errors", summary)
	}
	if cats.categories[0].Sort_order != 7 {
		t.Fatalf("Sort_order=%d, want 7", cats.categories[0].Sort_order)
	}
	if tags.tags[0].Color != "#00FF00" {
		t.Fatalf("Color=%q, want #00FF00", tags.tags[0].Color)
	}
}

func TestApplyUpdateKeepsSortOrderWhenCellEmpty(t *testing.T) {
	rc, cats, _, _ := newReconciler()
	seedCategory(cats, "Starters", 7)

	doc := &models.UploadDocument{
		Categories: []models.CategoryRow{{Name: "Starters", SortOrder: "", Index: 1}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, true)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Categories.Updated != 1 {
		t.Fatalf("updated=%d, want 1", result.Categories.Updated)
	}
	if cats.categories[0].Sort_order != 7 {
		t.Fatalf("Sort_order=%d, an empty cell must not reset the stored value", cats.categories[0].Sort_order)
	}
}

func TestApplyPartialReferenceResolution(t *testing.T) {
	rc, cats, _, items := newReconciler()
	mains := seedCategory(cats, "Mains", 1)

	doc := &models.UploadDocument{
		MenuItems: []models.MenuItemRow{{
			Name: "Paneer Tikka", Description: "Chargrilled paneer", Price: "249",
			Categories: "Starters,Mains", FoodType: "veg", Index: 1,
		}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, false)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.MenuItems.Created != 1 {
		t.Fatalf("created=%d, want 1 (unresolved reference must not block the item)", result.MenuItems.Created)
	}
	if len(result.MenuItems.Errors) != 1 {
		t.Fatalf("errors=%v, want exactly one", result.MenuItems.Errors)
	}
	msg := result.MenuItems.Errors[0]
	if !strings.Contains(msg, "Starters") || !strings.Contains(msg, "not found") {
		t.Fatalf("error %q should name Starters as not found", msg)
	}

	item := items.items[0]
	if len(item.Category_ids) != 1 || item.Category_ids[0] != mains.Category_id {
		t.Fatalf("Category_ids=%v, want only the Mains id", item.Category_ids)
	}
	if item.Price != 249 || item.Description != "Chargrilled paneer" {
		t.Fatalf("item fields must still be persisted: %+v", item)
	}
}

func TestApplyItemSeesCategoryFromSameUpload(t *testing.T) {
	rc, cats, _, items := newReconciler()

	doc := &models.UploadDocument{
		Categories: []models.CategoryRow{{Name: "Brunch", SortOrder: "4", Index: 1}},
		MenuItems: []models.MenuItemRow{{
			Name: "Eggs Benedict", Price: "199", Categories: "Brunch", FoodType: "non-veg", Index: 1,
		}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, false)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if got := result.Summary().TotalErrors; got != 0 {
		t.Fatalf("TotalErrors=%d, want 0: %v", got, result.MenuItems.Errors)
	}
	if len(items.items) != 1 {
		t.Fatalf("items=%d, want 1", len(items.items))
	}
	if len(items.items[0].Category_ids) != 1 || items.items[0].Category_ids[0] != cats.categories[0].Category_id {
		t.Fatalf("item must reference the Brunch category created in the same upload")
	}
}

func TestApplyReferenceMatchingIsCaseInsensitive(t *testing.T) {
	rc, cats, _, items := newReconciler()
	seedCategory(cats, "Starters", 1)

	doc := &models.UploadDocument{
		MenuItems: []models.MenuItemRow{{
			Name: "Spring Rolls", Price: "99", Categories: " sTARTERS ", FoodType: "veg", Index: 1,
		}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, false)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := result.Summary().TotalErrors; got != 0 {
		t.Fatalf("TotalErrors=%d, want 0: %v", got, result.MenuItems.Errors)
	}
	if len(items.items[0].Category_ids) != 1 {
		t.Fatalf("Category_ids=%v, want one resolved id", items.items[0].Category_ids)
	}
}

func TestApplyRecordFailureDoesNotStopTheLoop(t *testing.T) {
	rc, cats, _, _ := newReconciler()
	cats.createErr = map[string]error{"Broken": errors.New("write rejected")}

	doc := &models.UploadDocument{
		Categories: []models.CategoryRow{
			{Name: "Broken", SortOrder: "1", Index: 1},
			{Name: "Desserts", SortOrder: "2", Index: 2},
		},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, false)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Categories.Created != 1 {
		t.Fatalf("created=%d, want 1", result.Categories.Created)
	}
	if len(result.Categories.Errors) != 1 || !strings.Contains(result.Categories.Errors[0], "Broken") {
		t.Fatalf("errors=%v, want one naming Broken", result.Categories.Errors)
	}
	if len(cats.categories) != 1 || cats.categories[0].Name != "Desserts" {
		t.Fatalf("Desserts must still be created: %+v", cats.categories)
	}
}

func TestApplySnapshotFetchFailureAborts(t *testing.T) {
	rc, cats, _, _ := newReconciler()
	cats.listErr = errors.New("store unreachable")

	doc := &models.UploadDocument{
		MenuItems: []models.MenuItemRow{{Name: "Paneer Tikka", Price: "249", Index: 1}},
	}

	if _, err := rc.Apply(context.Background(), "rest1", doc, false); err == nil {
		t.Fatal("Apply should fail when the lookup snapshot cannot be fetched")
	}
}

func TestApplyParsesOptionalItemFields(t *testing.T) {
	rc, _, _, items := newReconciler()

	doc := &models.UploadDocument{
		MenuItems: []models.MenuItemRow{{
			Name: "Vindaloo", Price: "349", FoodType: "non-veg",
			IsSpicy: "yes", SpicyLevel: "3", PreparationTime: "25", IsAvailable: "false",
			Calories: "540", Fat: "21.5", Allergens: "nuts, dairy", Index: 1,
		}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, false)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.MenuItems.Created != 1 {
		t.Fatalf("created=%d, want 1", result.MenuItems.Created)
	}

	item := items.items[0]
	if !item.Is_spicy || item.Spicy_level != 3 {
		t.Fatalf("spicy fields wrong: %+v", item)
	}
	if item.Preparation_time == nil || *item.Preparation_time != 25 {
		t.Fatalf("Preparation_time=%v, want 25", item.Preparation_time)
	}
	if item.Is_available {
		t.Fatal("Is_available should be false")
	}
	if item.Nutrition_info.Calories == nil || *item.Nutrition_info.Calories != 540 {
		t.Fatalf("Calories=%v, want 540", item.Nutrition_info.Calories)
	}
	if item.Nutrition_info.Fat == nil || *item.Nutrition_info.Fat != 21.5 {
		t.Fatalf("Fat=%v, want 21.5", item.Nutrition_info.Fat)
	}
	if item.Nutrition_info.Protein != nil {
		t.Fatalf("Protein=%v, want nil for the empty cell", item.Nutrition_info.Protein)
	}
	if len(item.Allergens) != 2 || item.Allergens[0] != "nuts" || item.Allergens[1] != "dairy" {
		t.Fatalf("Allergens=%v", item.Allergens)
	}
}

func TestApplyDefaultsForEmptyOptionalFields(t *testing.T) {
	rc, _, _, items := newReconciler()

	doc := &models.UploadDocument{
		MenuItems: []models.MenuItemRow{{Name: "Plain Rice", Price: "79", Index: 1}},
	}

	if _, err := rc.Apply(context.Background(), "rest1", doc, false); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	item := items.items[0]
	if item.Food_type != "veg" {
		t.Fatalf("Food_type=%q, want veg default", item.Food_type)
	}
	if !item.Is_available {
		t.Fatal("Is_available should default to true")
	}
	if item.Is_spicy || item.Spicy_level != 0 || item.Preparation_time != nil {
		t.Fatalf("unexpected defaults: %+v", item)
	}
}

func TestSummaryCountsErrorsAcrossSections(t *testing.T) {
	rc, cats, tags, _ := newReconciler()
	seedCategory(cats, "Starters", 1)
	seedTag(tags, "Spicy", "#FF0000")

	doc := &models.UploadDocument{
		Categories: []models.CategoryRow{{Name: "Starters", SortOrder: "1", Index: 1}},
		Tags:       []models.TagRow{{Name: "Spicy", Color: "#FF0000", Index: 1}},
		MenuItems: []models.MenuItemRow{{
			Name: "Mystery Dish", Price: "100", Categories: "Nowhere", Tags: "Nothing", Index: 1,
		}},
	}

	result, err := rc.Apply(context.Background(), "rest1", doc, false)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := len(result.Categories.Errors) + len(result.Tags.Errors) + len(result.MenuItems.Errors)
	if got := result.Summary().TotalErrors; got != want {
		t.Fatalf("TotalErrors=%d, want %d", got, want)
	}
	if want != 4 {
		t.Fatalf("expected 4 errors (2 duplicates, 2 unresolved references), got %d: %+v", want, result)
	}
}
