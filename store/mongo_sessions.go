package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roomhunt/room_rental_system/backend/models"
)

// MongoSessionStore keeps one document per live session. A TTL index on
// createdAt (see config.EnsureIndexes) deletes stale sessions after 24h, so
// Get never has to compute expiry itself: gone is gone.
type MongoSessionStore struct {
	sessions *mongo.Collection
}

func NewMongoSessionStore(sessions *mongo.Collection) *MongoSessionStore {
	return &MongoSessionStore{sessions: sessions}
}

func (s *MongoSessionStore) Create(ctx context.Context, userID primitive.ObjectID) (*models.Session, error) {
	session := &models.Session{
		ID:        primitive.NewObjectID(),
		User:      userID,
		CreatedAt: time.Now(),
	}
	if _, err := s.sessions.InsertOne(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *MongoSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	id, err := primitive.ObjectIDFromHex(token)
	if err != nil {
		// A malformed token can never reference a session.
		return nil, ErrSessionNotFound
	}

	var session models.Session
	if err := s.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *MongoSessionStore) Delete(ctx context.Context, token string) error {
	id, err := primitive.ObjectIDFromHex(token)
	if err != nil {
		return ErrSessionNotFound
	}

	res, err := s.sessions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}
