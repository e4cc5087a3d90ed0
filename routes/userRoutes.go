package routes

import (
	"net/http"

	controllers "github.com/kolabix/digidinez-sub000/controllers"
	"github.com/gorilla/mux"
)

func PublicRoutes(router *mux.Router) {
	router.HandleFunc("/users/signup", controllers.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/users/login", controllers.Login).Methods(http.MethodPost)
	router.HandleFunc("/menu/{restaurant_id}", controllers.GetPublicMenu).Methods(http.MethodGet)
}

func ProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/users/{user_id}", controllers.GetUser).Methods(http.MethodGet)
}
