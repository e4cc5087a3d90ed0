package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/kolabix/digidinez-sub000/config"
	"github.com/kolabix/digidinez-sub000/helper"
	middleware "github.com/kolabix/digidinez-sub000/middlewares"
	"github.com/kolabix/digidinez-sub000/models"
)

var restaurantCollection *mongo.Collection = database.OpenCollection(database.Client, "restaurant")

var objectStore helper.ObjectStore = helper.NewDiskObjectStore()

// Get the authenticated restaurant's profile
func GetRestaurantProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	var restaurant models.Restaurant
	if err := restaurantCollection.FindOne(ctx, bson.M{"restaurant_id": restaurantId}).Decode(&restaurant); err != nil {
		http.Error(w, `{"success": false, "message": "Restaurant not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Restaurant retrieved successfully",
		"data":    restaurant,
	})
}

// Update profile fields from the non-nil parts of the request body
func UpdateRestaurantProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	var body struct {
		Name        *string `json:"name"`
		Address     *string `json:"address"`
		Phone       *string `json:"phone"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	updateObj := bson.D{}
	if body.Name != nil && *body.Name != "" {
		updateObj = append(updateObj, bson.E{Key: "name", Value: strings.TrimSpace(*body.Name)})
	}
	if body.Address != nil {
		updateObj = append(updateObj, bson.E{Key: "address", Value: body.Address})
	}
	if body.Phone != nil {
		updateObj = append(updateObj, bson.E{Key: "phone", Value: body.Phone})
	}
	if body.Description != nil {
		if len(*body.Description) > 500 {
			http.Error(w, `{"success": false, "message": "Description must be at most 500 characters"}`, http.StatusBadRequest)
			return
		}
		updateObj = append(updateObj, bson.E{Key: "description", Value: body.Description})
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	filter := bson.M{"restaurant_id": restaurantId}
	if _, err := restaurantCollection.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: updateObj}}); err != nil {
		http.Error(w, `{"success": false, "message": "Restaurant update failed"}`, http.StatusInternalServerError)
		return
	}

	var updated models.Restaurant
	if err := restaurantCollection.FindOne(ctx, filter).Decode(&updated); err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving updated restaurant"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Restaurant updated successfully",
		"data":    updated,
	})
}

// Upload a restaurant image to the object store
func UploadRestaurantImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid multipart form"}`, http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, `{"success": false, "message": "Image file is required"}`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".webp" {
		http.Error(w, `{"success": false, "message": "Image must be png, jpg, jpeg or webp"}`, http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error reading image"}`, http.StatusInternalServerError)
		return
	}

	key := restaurantId + "-" + uuid.New().String() + ext
	url, err := objectStore.Put(key, data)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error storing image"}`, http.StatusInternalServerError)
		return
	}

	update := bson.M{"$set": bson.M{"image_url": url, "updated_at": time.Now()}}
	if _, err := restaurantCollection.UpdateOne(ctx, bson.M{"restaurant_id": restaurantId}, update); err != nil {
		http.Error(w, `{"success": false, "message": "Error saving image URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Image uploaded successfully",
		"data":    map[string]interface{}{"image_url": url},
	})
}

// Delete the restaurant image from the object store and the profile
func DeleteRestaurantImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	var restaurant models.Restaurant
	if err := restaurantCollection.FindOne(ctx, bson.M{"restaurant_id": restaurantId}).Decode(&restaurant); err != nil {
		http.Error(w, `{"success": false, "message": "Restaurant not found"}`, http.StatusNotFound)
		return
	}
	if restaurant.Image_url == nil {
		http.Error(w, `{"success": false, "message": "No image to delete"}`, http.StatusNotFound)
		return
	}

	if err := objectStore.Delete(filepath.Base(*restaurant.Image_url)); err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting image"}`, http.StatusInternalServerError)
		return
	}

	update := bson.M{"$set": bson.M{"image_url": nil, "updated_at": time.Now()}}
	if _, err := restaurantCollection.UpdateOne(ctx, bson.M{"restaurant_id": restaurantId}, update); err != nil {
		http.Error(w, `{"success": false, "message": "Error clearing image URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Image deleted successfully",
	})
}

// Generate the public menu QR code, store it and save its URL
func GenerateRestaurantQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	menuBase := os.Getenv("MENU_BASE_URL")
	if menuBase == "" {
		http.Error(w, `{"success": false, "message": "MENU_BASE_URL is not configured"}`, http.StatusServiceUnavailable)
		return
	}
	menuURL := strings.TrimRight(menuBase, "/") + "/" + restaurantId

	png, err := qrcode.Encode(menuURL, qrcode.Medium, 512)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error generating QR code"}`, http.StatusInternalServerError)
		return
	}

	key := restaurantId + "-qr.png"
	url, err := objectStore.Put(key, png)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error storing QR code"}`, http.StatusInternalServerError)
		return
	}

	update := bson.M{"$set": bson.M{"qr_url": url, "updated_at": time.Now()}}
	if _, err := restaurantCollection.UpdateOne(ctx, bson.M{"restaurant_id": restaurantId}, update); err != nil {
		http.Error(w, `{"success": false, "message": "Error saving QR URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "QR code generated successfully",
		"data":    map[string]interface{}{"qr_url": url, "menu_url": menuURL},
	})
}

// Trigger a rebuild of the public menu site via the configured deploy hook
func TriggerDeploy(w http.ResponseWriter, r *http.Request) {
	restaurantId := middleware.GetRestaurantFromContext(r)

	hookURL := os.Getenv("DEPLOY_HOOK_URL")
	if hookURL == "" {
		http.Error(w, `{"success": false, "message": "DEPLOY_HOOK_URL is not configured"}`, http.StatusServiceUnavailable)
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	body := strings.NewReader(`{"restaurant_id": "` + restaurantId + `"}`)
	resp, err := client.Post(hookURL, "application/json", body)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Deploy hook unreachable"}`, http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		http.Error(w, `{"success": false, "message": "Deploy hook rejected the request"}`, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Deployment triggered",
	})
}
