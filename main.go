package main

import (
	"log"
	"net/http"
	"os"

	middleware "github.com/kolabix/digidinez-sub000/middlewares"
	routes "github.com/kolabix/digidinez-sub000/routes"
	"github.com/joho/godotenv"

	"github.com/gorilla/mux"
)

// LoadEnv loads environment variables from the .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	// Load environment variables
	LoadEnv()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	router := mux.NewRouter()

	// Public Routes (No Authentication)
	routes.PublicRoutes(router)

	// Stored restaurant images and QR codes
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Apply Authentication Middleware to Protected Routes
	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication)
	routes.ProtectedRoutes(securedRoutes)
	routes.RestaurantProtectedRoutes(securedRoutes)
	routes.CategoryProtectedRoutes(securedRoutes)
	routes.TagProtectedRoutes(securedRoutes)
	routes.MenuItemProtectedRoutes(securedRoutes)
	routes.BulkUploadProtectedRoutes(securedRoutes)

	log.Printf("Server running on port %s", port)
	http.ListenAndServe(":"+port, router)
}
