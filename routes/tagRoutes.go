package routes

import (
	"net/http"

	controllers "github.com/kolabix/digidinez-sub000/controllers"
	"github.com/gorilla/mux"
)

func TagProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/tags", controllers.GetTags).Methods(http.MethodGet)
	router.HandleFunc("/tags", controllers.CreateTag).Methods(http.MethodPost)
	router.HandleFunc("/tags/{tag_id}", controllers.UpdateTag).Methods(http.MethodPatch)
	router.HandleFunc("/tags/{tag_id}", controllers.DeleteTag).Methods(http.MethodDelete)
}
