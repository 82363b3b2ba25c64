package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roomhunt/room_rental_system/backend/cache"
	"github.com/roomhunt/room_rental_system/backend/models"
	"github.com/roomhunt/room_rental_system/backend/storage"
	"github.com/roomhunt/room_rental_system/backend/store"
)

// RoomsController serves the public room search, the owner's listing CRUD
// and the per-user saved-room toggle.
type RoomsController struct {
	Rooms  store.RoomStore
	Users  store.UserStore
	Assets storage.AssetCleaner
	Cache  cache.RoomCache
	Logger zerolog.Logger
}

// populatedRoom swaps the owner id for the full user record. The outer
// field shadows the embedded one on marshal.
type populatedRoom struct {
	models.Room
	PublishedBy *models.User `json:"publishedBy"`
}

// AllRooms serves the home feed with every room, active or not.
func (c *RoomsController) AllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.Rooms.FindAll(r.Context())
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to load rooms")
		writeError(w, http.StatusInternalServerError, "Failed to load rooms")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"allRooms": rooms})
}

// ForRent is the public search. Absent filter fields impose no constraint;
// provided ones compose as a conjunction on top of the active-ad predicate.
func (c *RoomsController) ForRent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := store.RoomFilter{Location: query.Get("location")}

	if price := query.Get("price"); price != "" {
		min, max, err := parsePriceRange(price)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Price filter must be of the form min-max.")
			return
		}
		filter.MinPrice = min
		filter.MaxPrice = max
		filter.HasPrice = true
	}

	if double := query.Get("isDouble"); double != "" {
		value, err := strconv.ParseBool(double)
		if err != nil {
			writeError(w, http.StatusBadRequest, "isDouble filter must be a boolean.")
			return
		}
		filter.IsDouble = &value
	}

	key := cache.Key(query)
	if data, ok := c.Cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	rooms, err := c.Rooms.Search(r.Context(), filter)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to search rooms")
		writeError(w, http.StatusInternalServerError, "Failed to search rooms")
		return
	}

	body, err := json.Marshal(map[string]interface{}{"rooms": rooms})
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to encode search response")
		writeError(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}

	c.Cache.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// RoomByID returns a single room with its owner populated.
func (c *RoomsController) RoomByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := c.Rooms.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "Room not found")
			return
		}
		c.Logger.Error().Err(err).Str("room", id.Hex()).Msg("failed to load room")
		writeError(w, http.StatusInternalServerError, "Failed to load room")
		return
	}

	owner, err := c.Users.FindByID(r.Context(), room.PublishedBy)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		c.Logger.Error().Err(err).Msg("failed to load room owner")
		writeError(w, http.StatusInternalServerError, "Failed to load room")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"room": populatedRoom{Room: *room, PublishedBy: owner},
	})
}

// YourRooms lists everything the given user published, including inactive
// and rented rooms. The public visibility filter deliberately does not apply.
func (c *RoomsController) YourRooms(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(body.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	rooms, err := c.Rooms.FindByOwner(r.Context(), ownerID)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to load user rooms")
		writeError(w, http.StatusInternalServerError, "Failed to load rooms")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"userRooms": rooms})
}

func (c *RoomsController) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	for _, field := range []string{"title", "publishedBy", "price", "bathrooms", "totalRooms", "area"} {
		if missing(body[field]) {
			writeError(w, http.StatusBadRequest, "Please provide all the data.")
			return
		}
	}

	price, okPrice := asNumber(body["price"])
	bathrooms, okBathrooms := asNumber(body["bathrooms"])
	totalRooms, okTotalRooms := asNumber(body["totalRooms"])
	area, okArea := asNumber(body["area"])
	if !okPrice || !okBathrooms || !okTotalRooms || !okArea {
		writeError(w, http.StatusBadRequest, "Price, nº of bathrooms, nº of rooms and area must be numbers ")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(asString(body["publishedBy"]))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	room, err := c.Rooms.Insert(r.Context(), &models.Room{
		Image:       asString(body["image"]),
		Title:       asString(body["title"]),
		Location:    asString(body["location"]),
		Description: asString(body["description"]),
		PublishedBy: ownerID,
		Price:       price,
		IsDouble:    asBool(body["isDouble"]),
		Bathrooms:   int(bathrooms),
		TotalRooms:  int(totalRooms),
		Area:        area,
		IsAdActive:  asBool(body["isAdActive"]),
		IsRented:    asBool(body["isRented"]),
	})
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to create room")
		writeError(w, http.StatusInternalServerError, "Failed to create room")
		return
	}

	// Owner-set append is a separate write; on failure the room exists
	// without an owner-set entry. Accepted best-effort semantics.
	if err := c.Users.AddRoom(r.Context(), ownerID, room.ID); err != nil {
		c.Logger.Error().Err(err).Str("room", room.ID.Hex()).Msg("failed to append room to owner set")
		writeError(w, http.StatusInternalServerError, "Failed to create room")
		return
	}

	go c.Cache.Invalidate(context.Background())

	writeJSON(w, http.StatusOK, room)
}

// Update merges the provided fields into the room. When a new image is
// supplied the old asset is removed first, best-effort.
func (c *RoomsController) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	roomID, err := primitive.ObjectIDFromHex(asString(body["roomId"]))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	newImg := asString(body["newImg"])
	oldImg := asString(body["oldImg"])
	if newImg != "" && oldImg != "" {
		if err := c.Assets.Remove(r.Context(), oldImg); err != nil {
			c.Logger.Warn().Err(err).Str("asset", oldImg).Msg("failed to remove replaced photo")
		}
	}

	fields := make(map[string]interface{}, len(body))
	for key, value := range body {
		switch key {
		case "roomId", "newImg", "oldImg", "_id", "publishedBy":
			// Not updatable: the owner reference is immutable and image
			// replacement goes through newImg.
		default:
			fields[key] = value
		}
	}
	if newImg != "" {
		fields["image"] = newImg
	}

	for _, field := range []string{"price", "bathrooms", "totalRooms", "area"} {
		value, ok := fields[field]
		if !ok {
			continue
		}
		number, okNum := asNumber(value)
		if !okNum {
			writeError(w, http.StatusBadRequest, "Price, nº of bathrooms, nº of rooms and area must be numbers ")
			return
		}
		if field == "bathrooms" || field == "totalRooms" {
			fields[field] = int(number)
		} else {
			fields[field] = number
		}
	}

	room, err := c.Rooms.Update(r.Context(), roomID, fields)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "Room not found")
			return
		}
		c.Logger.Error().Err(err).Str("room", roomID.Hex()).Msg("failed to update room")
		writeError(w, http.StatusInternalServerError, "Failed to update room")
		return
	}

	go c.Cache.Invalidate(context.Background())

	writeJSON(w, http.StatusOK, room)
}

// UpdateSaved toggles the room in the user's saved set: present means pull,
// absent means push. Applying the same pair twice restores the original
// membership.
func (c *RoomsController) UpdateSaved(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
		RoomID string `json:"roomId"`
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
	roomID, err := primitive.ObjectIDFromHex(body.RoomID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	user, err := c.Users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		c.Logger.Error().Err(err).Msg("failed to load user")
		writeError(w, http.StatusInternalServerError, "Failed to update saved rooms")
		return
	}

	// Read-then-write: concurrent toggles on the same pair can race. The
	// $addToSet/$pull store primitives keep the set itself consistent.
	if user.HasSaved(roomID) {
		user, err = c.Users.UnsaveRoom(r.Context(), userID, roomID)
	} else {
		user, err = c.Users.SaveRoom(r.Context(), userID, roomID)
	}
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to toggle saved room")
		writeError(w, http.StatusInternalServerError, "Failed to update saved rooms")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Delete removes the room, its owner-set entry and its photo asset. Cleanup
// runs before the record delete, in the owner-set, asset, record order; a
// failure partway leaves the remaining steps undone.
func (c *RoomsController) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID string `json:"roomId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	roomID, err := primitive.ObjectIDFromHex(body.RoomID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := c.Rooms.FindByID(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "Room not found")
			return
		}
		c.Logger.Error().Err(err).Msg("failed to load room")
		writeError(w, http.StatusInternalServerError, "Failed to delete room")
		return
	}

	if err := c.Users.RemoveRoom(r.Context(), room.PublishedBy, room.ID); err != nil && !errors.Is(err, store.ErrUserNotFound) {
		c.Logger.Error().Err(err).Msg("failed to remove room from owner set")
		writeError(w, http.StatusInternalServerError, "Failed to delete room")
		return
	}

	if room.Image != "" {
		if err := c.Assets.Remove(r.Context(), room.Image); err != nil {
			c.Logger.Warn().Err(err).Str("asset", room.Image).Msg("failed to remove room photo")
		}
	}

	deleted, err := c.Rooms.Delete(r.Context(), roomID)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to delete room")
		writeError(w, http.StatusInternalServerError, "Failed to delete room")
		return
	}

	go c.Cache.Invalidate(context.Background())

	writeJSON(w, http.StatusOK, deleted)
}

// parsePriceRange parses a "min-max" filter. A missing max means unbounded.
func parsePriceRange(s string) (float64, float64, error) {
	parts := strings.SplitN(s, "-", 2)

	min, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, err
	}

	max := math.Inf(1)
	if len(parts) == 2 && parts[1] != "" {
		max, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, 0, err
		}
	}
	return min, max, nil
}

func missing(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

// asNumber accepts JSON numbers and numeric strings, mirroring the loose
// isNaN-style check clients rely on.
func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asString(value interface{}) string {
	s, _ := value.(string)
	return s
}

func asBool(value interface{}) bool {
	b, _ := value.(bool)
	return b
}
