package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. The password digest is never serialized to
// JSON; the rooms and savedRooms id sets are only mutated through the room
// routes.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Name       string               `bson:"name" json:"name"`
	LastName   string               `bson:"lastName" json:"lastName"`
	Phone      string               `bson:"phone" json:"phone"`
	IsLandlord bool                 `bson:"isLandlord" json:"isLandlord"`
	Rooms      []primitive.ObjectID `bson:"rooms" json:"rooms"`
	SavedRooms []primitive.ObjectID `bson:"savedRooms" json:"savedRooms"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasSaved reports whether roomID is in the user's saved set.
func (u *User) HasSaved(roomID primitive.ObjectID) bool {
	for _, id := range u.SavedRooms {
		if id == roomID {
			return true
		}
	}
	return false
}
