package routes

import (
	"net/http"

	controllers "github.com/kolabix/digidinez-sub000/controllers"
	"github.com/gorilla/mux"
)

func RestaurantProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/restaurant", controllers.GetRestaurantProfile).Methods(http.MethodGet)
	router.HandleFunc("/restaurant", controllers.UpdateRestaurantProfile).Methods(http.MethodPatch)
	router.HandleFunc("/restaurant/image", controllers.UploadRestaurantImage).Methods(http.MethodPost)
	router.HandleFunc("/restaurant/image", controllers.DeleteRestaurantImage).Methods(http.MethodDelete)
	router.HandleFunc("/restaurant/qr", controllers.GenerateRestaurantQR).Methods(http.MethodGet)
	router.HandleFunc("/restaurant/deploy", controllers.TriggerDeploy).Methods(http.MethodPost)
}
