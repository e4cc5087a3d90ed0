package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	database "github.com/kolabix/digidinez-sub000/config"
	"github.com/kolabix/digidinez-sub000/helper"
	"github.com/kolabix/digidinez-sub000/models"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")

func GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	userId := params["user_id"]

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&user)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	responseUser := struct {
		FirstName    string    `json:"first_name"`
		LastName     string    `json:"last_name"`
		Email        string    `json:"email"`
		Phone        string    `json:"phone"`
		RestaurantID string    `json:"restaurant_id"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
		UserID       string    `json:"user_id"`
	}{
		FirstName:    *user.First_name,
		LastName:     *user.Last_name,
		Email:        *user.Email,
		Phone:        *user.Phone,
		RestaurantID: user.Restaurant_id,
		CreatedAt:    user.Created_at,
		UpdatedAt:    user.Updated_at,
		UserID:       user.User_id,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responseUser)
}

// SignUp registers an owner account and provisions their restaurant
func SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var body struct {
		models.User
		RestaurantName string `json:"restaurant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user := body.User

	if validationErr := validate.Struct(user); validationErr != nil {
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
		return
	}

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		http.Error(w, "Error checking email", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "Email already exists", http.StatusConflict)
		return
	}

	password := HashPassword(*user.Password)
	user.Password = &password

	user.Created_at = time.Now()
	user.Updated_at = time.Now()
	user.ID = primitive.NewObjectID()
	user.User_id = user.ID.Hex()

	restaurantName := body.RestaurantName
	if restaurantName == "" {
		restaurantName = *user.First_name + "'s Restaurant"
	}

	restaurant := models.Restaurant{
		ID:         primitive.NewObjectID(),
		Name:       restaurantName,
		Owner_id:   user.User_id,
		Created_at: time.Now(),
		Updated_at: time.Now(),
	}
	restaurant.Restaurant_id = restaurant.ID.Hex()

	if _, insertErr := restaurantCollection.InsertOne(ctx, restaurant); insertErr != nil {
		http.Error(w, "Restaurant creation failed", http.StatusInternalServerError)
		return
	}
	user.Restaurant_id = restaurant.Restaurant_id

	token, refreshToken, _ := helper.GenerateAllTokens(*user.Email, *user.First_name, *user.Last_name, user.User_id, user.Restaurant_id)
	user.Token = &token
	user.Refresh_Token = &refreshToken

	_, insertErr := userCollection.InsertOne(ctx, user)
	if insertErr != nil {
		http.Error(w, "User creation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "User created successfully",
		"data": map[string]interface{}{
			"user_id":       user.User_id,
			"restaurant_id": user.Restaurant_id,
			"token":         token,
			"refresh_token": refreshToken,
		},
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var user models.User
	var foundUser models.User

	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := userCollection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&foundUser)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	passwordIsValid, msg := VerifyPassword(*user.Password, *foundUser.Password)
	if !passwordIsValid {
		http.Error(w, msg, http.StatusUnauthorized)
		return
	}

	token, refreshToken, _ := helper.GenerateAllTokens(*foundUser.Email, *foundUser.First_name, *foundUser.Last_name, foundUser.User_id, foundUser.Restaurant_id)
	helper.UpdateAllTokens(token, refreshToken, foundUser.User_id)

	// Create a response struct excluding the password
	responseUser := struct {
		Email        string `json:"email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		UserID       string `json:"user_id"`
		RestaurantID string `json:"restaurant_id"`
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}{
		Email:        *foundUser.Email,
		FirstName:    *foundUser.First_name,
		LastName:     *foundUser.Last_name,
		UserID:       foundUser.User_id,
		RestaurantID: foundUser.Restaurant_id,
		Token:        token,
		RefreshToken: refreshToken,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responseUser)
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	if err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword)); err != nil {
		return false, "Incorrect password"
	}
	return true, ""
}
