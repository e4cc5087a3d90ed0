package routes

import (
	"net/http"

	controllers "github.com/kolabix/digidinez-sub000/controllers"
	"github.com/gorilla/mux"
)

func BulkUploadProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/menu/bulk-upload", controllers.BulkUploadMenu).Methods(http.MethodPost)
	router.HandleFunc("/menu/bulk-upload/template", controllers.DownloadMenuTemplate).Methods(http.MethodGet)
}
