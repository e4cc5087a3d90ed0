package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/kolabix/digidinez-sub000/config"
	middleware "github.com/kolabix/digidinez-sub000/middlewares"
	"github.com/kolabix/digidinez-sub000/models"
)

var categoryCollection *mongo.Collection = database.OpenCollection(database.Client, "category")
var validate = validator.New()

// Get all categories for the authenticated restaurant, sorted by sort order
func GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cursor, err := categoryCollection.Find(ctx, bson.M{"restaurant_id": restaurantId}, opts)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving categories"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding categories"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// Create a category
func CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	category.Name = strings.TrimSpace(category.Name)
	category.Restaurant_id = restaurantId

	if validationErr := validate.Struct(category); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	count, err := categoryCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "name": category.Name})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error checking existing categories"}`, http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, `{"success": false, "message": "Category with the same name already exists"}`, http.StatusConflict)
		return
	}

	category.ID = primitive.NewObjectID()
	category.Category_id = category.ID.Hex()
	category.Created_at = time.Now()
	category.Updated_at = time.Now()

	if _, insertErr := categoryCollection.InsertOne(ctx, category); insertErr != nil {
		http.Error(w, `{"success": false, "message": "Category could not be created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Category created successfully",
		"data":    category,
	})
}

// Update a category's name or sort order
func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)
	params := mux.Vars(r)
	categoryId := params["category_id"]

	var body struct {
		Name      *string `json:"name"`
		SortOrder *int    `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	filter := bson.M{"restaurant_id": restaurantId, "category_id": categoryId}

	var existing models.Category
	if err := categoryCollection.FindOne(ctx, filter).Decode(&existing); err != nil {
		http.Error(w, `{"success": false, "message": "Category not found"}`, http.StatusNotFound)
		return
	}

	updateObj := bson.M{"updated_at": time.Now()}

	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" || utf8.RuneCountInString(name) > 50 {
			http.Error(w, `{"success": false, "message": "Name must be 1-50 characters"}`, http.StatusBadRequest)
			return
		}
		if name != existing.Name {
			count, err := categoryCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "name": name})
			if err != nil {
				http.Error(w, `{"success": false, "message": "Error checking duplicate categories"}`, http.StatusInternalServerError)
				return
			}
			if count > 0 {
				http.Error(w, `{"success": false, "message": "Another category with the same name exists"}`, http.StatusConflict)
				return
			}
			updateObj["name"] = name
		}
	}
	if body.SortOrder != nil {
		if *body.SortOrder < 0 {
			http.Error(w, `{"success": false, "message": "Sort order must be non-negative"}`, http.StatusBadRequest)
			return
		}
		updateObj["sort_order"] = *body.SortOrder
	}

	if _, err := categoryCollection.UpdateOne(ctx, filter, bson.M{"$set": updateObj}); err != nil {
		http.Error(w, `{"success": false, "message": "Category update failed"}`, http.StatusInternalServerError)
		return
	}

	var updated models.Category
	if err := categoryCollection.FindOne(ctx, filter).Decode(&updated); err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving updated category"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Category updated successfully",
		"data":    updated,
	})
}

// Delete a category; refused while menu items still reference it
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)
	params := mux.Vars(r)
	categoryId := params["category_id"]

	referenced, err := menuItemStore.CountByCategory(ctx, restaurantId, categoryId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error checking menu item references"}`, http.StatusInternalServerError)
		return
	}
	if referenced > 0 {
		http.Error(w, `{"success": false, "message": "Category is still used by menu items"}`, http.StatusConflict)
		return
	}

	result, err := categoryCollection.DeleteOne(ctx, bson.M{"restaurant_id": restaurantId, "category_id": categoryId})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting category"}`, http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, `{"success": false, "message": "Category not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Category deleted successfully",
	})
}
