package routes

import (
	"net/http"

	controllers "github.com/kolabix/digidinez-sub000/controllers"
	"github.com/gorilla/mux"
)

func MenuItemProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/items", controllers.GetMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/items", controllers.CreateMenuItem).Methods(http.MethodPost)
	router.HandleFunc("/items/{item_id}", controllers.GetMenuItem).Methods(http.MethodGet)
	router.HandleFunc("/items/{item_id}", controllers.UpdateMenuItem).Methods(http.MethodPatch)
	router.HandleFunc("/items/{item_id}", controllers.DeleteMenuItem).Methods(http.MethodDelete)
	router.HandleFunc("/items/{item_id}/availability", controllers.ToggleMenuItemAvailability).Methods(http.MethodPatch)
}
