package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/kolabix/digidinez-sub000/config"
	middleware "github.com/kolabix/digidinez-sub000/middlewares"
	"github.com/kolabix/digidinez-sub000/models"
)

var menuItemCollection *mongo.Collection = database.OpenCollection(database.Client, "menu_item")

// Get all menu items with pagination
func GetMenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	recordPerPage, err := strconv.Atoi(r.URL.Query().Get("recordPerPage"))
	if err != nil || recordPerPage < 1 {
		recordPerPage = 10
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	startIndex := (page - 1) * recordPerPage

	totalItems, err := menuItemCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving total item count"}`, http.StatusInternalServerError)
		return
	}

	matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "restaurant_id", Value: restaurantId}}}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}}
	skipStage := bson.D{{Key: "$skip", Value: startIndex}}
	limitStage := bson.D{{Key: "$limit", Value: int64(recordPerPage)}}
	projectStage := bson.D{
		{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
		}},
	}

	result, err := menuItemCollection.Aggregate(ctx, mongo.Pipeline{matchStage, sortStage, skipStage, limitStage, projectStage})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving menu items"}`, http.StatusInternalServerError)
		return
	}

	var allItems []bson.M
	if err = result.All(ctx, &allItems); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding menu items"}`, http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"message": "Menu items retrieved successfully",
		"data":    allItems,
		"pagination": map[string]interface{}{
			"current_page":     page,
			"records_per_page": recordPerPage,
			"total_items":      totalItems,
			"total_pages":      (totalItems + int64(recordPerPage) - 1) / int64(recordPerPage),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Get a single menu item
func GetMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)
	params := mux.Vars(r)
	itemId := params["item_id"]

	var item models.MenuItem
	if err := menuItemCollection.FindOne(ctx, bson.M{"restaurant_id": restaurantId, "item_id": itemId}).Decode(&item); err != nil {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item retrieved successfully",
		"data":    item,
	})
}

// Create a menu item; category/tag references must already exist
func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	item.Name = strings.TrimSpace(item.Name)
	item.Restaurant_id = restaurantId
	if item.Food_type == "" {
		item.Food_type = "veg"
	}

	if validationErr := validate.Struct(item); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	count, err := menuItemCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "name": item.Name})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error checking existing menu items"}`, http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, `{"success": false, "message": "Menu item with the same name already exists"}`, http.StatusConflict)
		return
	}

	for _, categoryId := range item.Category_ids {
		n, err := categoryCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "category_id": categoryId})
		if err != nil || n == 0 {
			http.Error(w, `{"success": false, "message": "Unknown category reference"}`, http.StatusBadRequest)
			return
		}
	}
	for _, tagId := range item.Tag_ids {
		n, err := tagCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "tag_id": tagId})
		if err != nil || n == 0 {
			http.Error(w, `{"success": false, "message": "Unknown tag reference"}`, http.StatusBadRequest)
			return
		}
	}

	item.ID = primitive.NewObjectID()
	item.Item_id = item.ID.Hex()
	item.Created_at = time.Now()
	item.Updated_at = time.Now()

	if _, insertErr := menuItemCollection.InsertOne(ctx, item); insertErr != nil {
		http.Error(w, `{"success": false, "message": "Menu item could not be created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// Update a menu item from the non-nil fields of the request body
func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)
	params := mux.Vars(r)
	itemId := params["item_id"]

	var body struct {
		Name            *string               `json:"name"`
		Description     *string               `json:"description"`
		Price           *float64              `json:"price"`
		CategoryIds     []string              `json:"category_ids"`
		TagIds          []string              `json:"tag_ids"`
		FoodType        *string               `json:"food_type"`
		IsSpicy         *bool                 `json:"is_spicy"`
		SpicyLevel      *int                  `json:"spicy_level"`
		PreparationTime *int                  `json:"preparation_time"`
		IsAvailable     *bool                 `json:"is_available"`
		NutritionInfo   *models.NutritionInfo `json:"nutrition_info"`
		Allergens       []string              `json:"allergens"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	filter := bson.M{"restaurant_id": restaurantId, "item_id": itemId}

	var existing models.MenuItem
	if err := menuItemCollection.FindOne(ctx, filter).Decode(&existing); err != nil {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	updateObj := bson.M{"updated_at": time.Now()}

	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" || len(name) > 100 {
			http.Error(w, `{"success": false, "message": "Name must be 1-100 characters"}`, http.StatusBadRequest)
			return
		}
		if name != existing.Name {
			count, err := menuItemCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "name": name})
			if err != nil {
				http.Error(w, `{"success": false, "message": "Error checking duplicate menu items"}`, http.StatusInternalServerError)
				return
			}
			if count > 0 {
				http.Error(w, `{"success": false, "message": "Another menu item with the same name exists"}`, http.StatusConflict)
				return
			}
			updateObj["name"] = name
		}
	}
	if body.Description != nil {
		if len(*body.Description) > 500 {
			http.Error(w, `{"success": false, "message": "Description must be at most 500 characters"}`, http.StatusBadRequest)
			return
		}
		updateObj["description"] = *body.Description
	}
	if body.Price != nil {
		if *body.Price <= 0 {
			http.Error(w, `{"success": false, "message": "Price must be a positive number"}`, http.StatusBadRequest)
			return
		}
		updateObj["price"] = *body.Price
	}
	if body.CategoryIds != nil {
		for _, categoryId := range body.CategoryIds {
			n, err := categoryCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "category_id": categoryId})
			if err != nil || n == 0 {
				http.Error(w, `{"success": false, "message": "Unknown category reference"}`, http.StatusBadRequest)
				return
			}
		}
		updateObj["category_ids"] = body.CategoryIds
	}
	if body.TagIds != nil {
		for _, tagId := range body.TagIds {
			n, err := tagCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "tag_id": tagId})
			if err != nil || n == 0 {
				http.Error(w, `{"success": false, "message": "Unknown tag reference"}`, http.StatusBadRequest)
				return
			}
		}
		updateObj["tag_ids"] = body.TagIds
	}
	if body.FoodType != nil {
		ft := strings.ToLower(strings.TrimSpace(*body.FoodType))
		if ft != "veg" && ft != "non-veg" {
			http.Error(w, `{"success": false, "message": "Food type must be either veg or non-veg"}`, http.StatusBadRequest)
			return
		}
		updateObj["food_type"] = ft
	}
	if body.IsSpicy != nil {
		updateObj["is_spicy"] = *body.IsSpicy
	}
	if body.SpicyLevel != nil {
		if *body.SpicyLevel < 0 || *body.SpicyLevel > 3 {
			http.Error(w, `{"success": false, "message": "Spicy level must be between 0 and 3"}`, http.StatusBadRequest)
			return
		}
		updateObj["spicy_level"] = *body.SpicyLevel
	}
	if body.PreparationTime != nil {
		if *body.PreparationTime < 0 {
			http.Error(w, `{"success": false, "message": "Preparation time must be non-negative"}`, http.StatusBadRequest)
			return
		}
		updateObj["preparation_time"] = *body.PreparationTime
	}
	if body.IsAvailable != nil {
		updateObj["is_available"] = *body.IsAvailable
	}
	if body.NutritionInfo != nil {
		updateObj["nutrition_info"] = *body.NutritionInfo
	}
	if body.Allergens != nil {
		updateObj["allergens"] = body.Allergens
	}

	if _, err := menuItemCollection.UpdateOne(ctx, filter, bson.M{"$set": updateObj}); err != nil {
		http.Error(w, `{"success": false, "message": "Menu item update failed"}`, http.StatusInternalServerError)
		return
	}

	var updated models.MenuItem
	if err := menuItemCollection.FindOne(ctx, filter).Decode(&updated); err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving updated menu item"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item updated successfully",
		"data":    updated,
	})
}

// Delete a menu item
func DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)
	params := mux.Vars(r)
	itemId := params["item_id"]

	result, err := menuItemCollection.DeleteOne(ctx, bson.M{"restaurant_id": restaurantId, "item_id": itemId})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting menu item"}`, http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item deleted successfully",
	})
}

// Toggle a menu item's availability
func ToggleMenuItemAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)
	params := mux.Vars(r)
	itemId := params["item_id"]

	filter := bson.M{"restaurant_id": restaurantId, "item_id": itemId}

	var item models.MenuItem
	if err := menuItemCollection.FindOne(ctx, filter).Decode(&item); err != nil {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	update := bson.M{"$set": bson.M{"is_available": !item.Is_available, "updated_at": time.Now()}}
	if _, err := menuItemCollection.UpdateOne(ctx, filter, update); err != nil {
		http.Error(w, `{"success": false, "message": "Menu item update failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item availability toggled",
		"data":    map[string]interface{}{"item_id": itemId, "is_available": !item.Is_available},
	})
}

// Public combined menu: categories in sort order, each with its available items
func GetPublicMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	restaurantId := params["restaurant_id"]

	var restaurant models.Restaurant
	if err := restaurantCollection.FindOne(ctx, bson.M{"restaurant_id": restaurantId}).Decode(&restaurant); err != nil {
		http.Error(w, `{"success": false, "message": "Restaurant not found"}`, http.StatusNotFound)
		return
	}

	categories, err := categoryStore.FindByRestaurant(ctx, restaurantId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving categories"}`, http.StatusInternalServerError)
		return
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Sort_order < categories[j].Sort_order
	})
	items, err := menuItemStore.FindByRestaurant(ctx, restaurantId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving menu items"}`, http.StatusInternalServerError)
		return
	}

	itemsByCategory := make(map[string][]models.MenuItem)
	var uncategorized []models.MenuItem
	for _, item := range items {
		if !item.Is_available {
			continue
		}
		if len(item.Category_ids) == 0 {
			uncategorized = append(uncategorized, item)
			continue
		}
		for _, categoryId := range item.Category_ids {
			itemsByCategory[categoryId] = append(itemsByCategory[categoryId], item)
		}
	}

	type menuSection struct {
		Category models.Category   `json:"category"`
		Items    []models.MenuItem `json:"items"`
	}
	sections := []menuSection{}
	for _, category := range categories {
		sections = append(sections, menuSection{
			Category: category,
			Items:    itemsByCategory[category.Category_id],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu retrieved successfully",
		"data": map[string]interface{}{
			"restaurant":    restaurant,
			"sections":      sections,
			"uncategorized": uncategorized,
		},
	})
}
