package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/roomhunt/room_rental_system/backend/controllers"
	"github.com/roomhunt/room_rental_system/backend/middleware"
)

// Routes mounts the whole API surface under /api. Guard choice per route:
// signup/login must be logged out (stale tokens pass through), the room
// mutations and logout must be logged in, everything else is open.
func Routes(router *mux.Router, auth *controllers.AuthController, rooms *controllers.RoomsController, profile *controllers.ProfileController, guards *middleware.Auth) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("", rooms.AllRooms).Methods("GET")
	api.HandleFunc("/", rooms.AllRooms).Methods("GET")

	api.HandleFunc("/auth/session", auth.GetSession).Methods("GET")
	api.Handle("/auth/signup", guards.RequireLoggedOut(http.HandlerFunc(auth.Signup))).Methods("POST")
	api.Handle("/auth/login", guards.RequireLoggedOut(http.HandlerFunc(auth.Login))).Methods("POST")
	api.Handle("/auth/logout", guards.RequireLoggedIn(http.HandlerFunc(auth.Logout))).Methods("DELETE")

	// /profile/update must be registered before the /profile/{id} wildcard.
	api.HandleFunc("/profile/update", profile.Update).Methods("PUT")
	api.HandleFunc("/profile/{id}", profile.SavedRooms).Methods("GET")

	api.HandleFunc("/rooms/for-rent", rooms.ForRent).Methods("GET")
	api.HandleFunc("/rooms/for-rent/{id}", rooms.RoomByID).Methods("GET")
	api.HandleFunc("/rooms/your-rooms", rooms.YourRooms).Methods("POST")
	api.Handle("/rooms/create", guards.RequireLoggedIn(http.HandlerFunc(rooms.Create))).Methods("POST")
	api.Handle("/rooms/update", guards.RequireLoggedIn(http.HandlerFunc(rooms.Update))).Methods("PUT")
	api.HandleFunc("/rooms/update-saved", rooms.UpdateSaved).Methods("PUT")
	api.Handle("/rooms/delete", guards.RequireLoggedIn(http.HandlerFunc(rooms.Delete))).Methods("DELETE")
}
