package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roomhunt/room_rental_system/backend/models"
)

type MongoUserStore struct {
	users *mongo.Collection
}

func NewMongoUserStore(users *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{users: users}
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Rooms == nil {
		user.Rooms = []primitive.ObjectID{}
	}
	if user.SavedRooms == nil {
		user.SavedRooms = []primitive.ObjectID{}
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error) {
	set := bson.M{
		"email":     update.Email,
		"name":      update.Name,
		"lastName":  update.LastName,
		"phone":     update.Phone,
		"updatedAt": time.Now(),
	}
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (s *MongoUserStore) AddRoom(ctx context.Context, userID, roomID primitive.ObjectID) error {
	_, err := s.findOneAndUpdate(ctx, userID, bson.M{"$push": bson.M{"rooms": roomID}})
	return err
}

func (s *MongoUserStore) RemoveRoom(ctx context.Context, userID, roomID primitive.ObjectID) error {
	_, err := s.findOneAndUpdate(ctx, userID, bson.M{"$pull": bson.M{"rooms": roomID}})
	return err
}

// SaveRoom uses $addToSet so a racing double-apply cannot duplicate the id.
func (s *MongoUserStore) SaveRoom(ctx context.Context, userID, roomID primitive.ObjectID) (*models.User, error) {
	return s.findOneAndUpdate(ctx, userID, bson.M{"$addToSet": bson.M{"savedRooms": roomID}})
}

func (s *MongoUserStore) UnsaveRoom(ctx context.Context, userID, roomID primitive.ObjectID) (*models.User, error) {
	return s.findOneAndUpdate(ctx, userID, bson.M{"$pull": bson.M{"savedRooms": roomID}})
}

func (s *MongoUserStore) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
