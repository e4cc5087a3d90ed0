package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/kolabix/digidinez-sub000/config"
	middleware "github.com/kolabix/digidinez-sub000/middlewares"
	"github.com/kolabix/digidinez-sub000/models"
)

var tagCollection *mongo.Collection = database.OpenCollection(database.Client, "tag")

// Get all tags for the authenticated restaurant
func GetTags(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	cursor, err := tagCollection.Find(ctx, bson.M{"restaurant_id": restaurantId})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving tags"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	tags := []models.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding tags"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Tags retrieved successfully",
		"data":    tags,
	})
}

// Create a tag
func CreateTag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	var tag models.Tag
	if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	tag.Name = strings.TrimSpace(tag.Name)
	tag.Restaurant_id = restaurantId

	if validationErr := validate.Struct(tag); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	count, err := tagCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "name": tag.Name})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error checking existing tags"}`, http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, `{"success": false, "message": "Tag with the same name already exists"}`, http.StatusConflict)
		return
	}

	tag.ID = primitive.NewObjectID()
	tag.Tag_id = tag.ID.Hex()
	tag.Created_at = time.Now()
	tag.Updated_at = time.Now()

	if _, insertErr := tagCollection.InsertOne(ctx, tag); insertErr != nil {
		http.Error(w, `{"success": false, "message": "Tag could not be created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Tag created successfully",
		"data":    tag,
	})
}

// Update a tag's name or color
func UpdateTag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)
	params := mux.Vars(r)
	tagId := params["tag_id"]

	var body struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	filter := bson.M{"restaurant_id": restaurantId, "tag_id": tagId}

	var existing models.Tag
	if err := tagCollection.FindOne(ctx, filter).Decode(&existing); err != nil {
		http.Error(w, `{"success": false, "message": "Tag not found"}`, http.StatusNotFound)
		return
	}

	updateObj := bson.M{"updated_at": time.Now()}

	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" || utf8.RuneCountInString(name) > 30 {
			http.Error(w, `{"success": false, "message": "Name must be 1-30 characters"}`, http.StatusBadRequest)
			return
		}
		if name != existing.Name {
			count, err := tagCollection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantId, "name": name})
			if err != nil {
				http.Error(w, `{"success": false, "message": "Error checking duplicate tags"}`, http.StatusInternalServerError)
				return
			}
			if count > 0 {
				http.Error(w, `{"success": false, "message": "Another tag with the same name exists"}`, http.StatusConflict)
				return
			}
			updateObj["name"] = name
		}
	}
	if body.Color != nil {
		probe := existing
		probe.Color = *body.Color
		if validationErr := validate.Struct(probe); validationErr != nil {
			http.Error(w, `{"success": false, "message": "Color must be a valid hex color"}`, http.StatusBadRequest)
			return
		}
		updateObj["color"] = *body.Color
	}

	if _, err := tagCollection.UpdateOne(ctx, filter, bson.M{"$set": updateObj}); err != nil {
		http.Error(w, `{"success": false, "message": "Tag update failed"}`, http.StatusInternalServerError)
		return
	}

	var updated models.Tag
	if err := tagCollection.FindOne(ctx, filter).Decode(&updated); err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving updated tag"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Tag updated successfully",
		"data":    updated,
	})
}

// Delete a tag; refused while menu items still reference it
func DeleteTag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)
	params := mux.Vars(r)
	tagId := params["tag_id"]

	referenced, err := menuItemStore.CountByTag(ctx, restaurantId, tagId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error checking menu item references"}`, http.StatusInternalServerError)
		return
	}
	if referenced > 0 {
		http.Error(w, `{"success": false, "message": "Tag is still used by menu items"}`, http.StatusConflict)
		return
	}

	result, err := tagCollection.DeleteOne(ctx, bson.M{"restaurant_id": restaurantId, "tag_id": tagId})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting tag"}`, http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, `{"success": false, "message": "Tag not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Tag deleted successfully",
	})
}
