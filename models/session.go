package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the server-side proof of authentication. Its id doubles as the
// opaque bearer token clients send in the Authorization header. Expiry is
// enforced by a TTL index on createdAt, not by read-time checks.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Token returns the session id in the form clients carry it.
func (s *Session) Token() string {
	return s.ID.Hex()
}
