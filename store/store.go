package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roomhunt/room_rental_system/backend/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrDuplicateEmail  = errors.New("email already in use")
)

// ProfileUpdate carries the profile fields a user may change. All four are
// written unconditionally, matching the profile update contract.
type ProfileUpdate struct {
	Email    string
	Name     string
	LastName string
	Phone    string
}

// RoomFilter is the public for-rent search filter. Zero-value fields impose
// no constraint; the active-ad restriction is always applied by Search.
type RoomFilter struct {
	Location string
	MinPrice float64
	MaxPrice float64 // +Inf means unbounded
	HasPrice bool
	IsDouble *bool
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error)
	AddRoom(ctx context.Context, userID, roomID primitive.ObjectID) error
	RemoveRoom(ctx context.Context, userID, roomID primitive.ObjectID) error
	SaveRoom(ctx context.Context, userID, roomID primitive.ObjectID) (*models.User, error)
	UnsaveRoom(ctx context.Context, userID, roomID primitive.ObjectID) (*models.User, error)
}

type RoomStore interface {
	Insert(ctx context.Context, room *models.Room) (*models.Room, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Room, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Room, error)
	FindAll(ctx context.Context) ([]models.Room, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Room, error)
	Search(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Room, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Room, error)
}

// SessionStore resolves opaque bearer tokens. Get treats an expired and an
// unknown token identically: both are ErrSessionNotFound.
type SessionStore interface {
	Create(ctx context.Context, userID primitive.ObjectID) (*models.Session, error)
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}
