package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roomhunt/room_rental_system/backend/store"
)

type ProfileController struct {
	Users  store.UserStore
	Rooms  store.RoomStore
	Logger zerolog.Logger
}

// SavedRooms returns the user's bookmarked rooms as a plain array.
func (c *ProfileController) SavedRooms(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := c.Users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		c.Logger.Error().Err(err).Msg("failed to load user")
		writeError(w, http.StatusInternalServerError, "Failed to load saved rooms")
		return
	}

	rooms, err := c.Rooms.FindByIDs(r.Context(), user.SavedRooms)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to load saved rooms")
		writeError(w, http.StatusInternalServerError, "Failed to load saved rooms")
		return
	}

	writeJSON(w, http.StatusOK, rooms)
}

// Update rewrites the four editable profile fields.
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID   string `json:"userId"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		LastName string `json:"lastName"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := c.Users.UpdateProfile(r.Context(), userID, store.ProfileUpdate{
		Email:    body.Email,
		Name:     body.Name,
		LastName: body.LastName,
		Phone:    body.Phone,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		c.Logger.Error().Err(err).Msg("failed to update profile")
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
