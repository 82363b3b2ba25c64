package store

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roomhunt/room_rental_system/backend/models"
)

type MongoRoomStore struct {
	rooms *mongo.Collection
}

func NewMongoRoomStore(rooms *mongo.Collection) *MongoRoomStore {
	return &MongoRoomStore{rooms: rooms}
}

func (s *MongoRoomStore) Insert(ctx context.Context, room *models.Room) (*models.Room, error) {
	if room.ID.IsZero() {
		room.ID = primitive.NewObjectID()
	}
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	if _, err := s.rooms.InsertOne(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *MongoRoomStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	var room models.Room
	err := s.rooms.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *MongoRoomStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Room, error) {
	if len(ids) == 0 {
		return []models.Room{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *MongoRoomStore) FindAll(ctx context.Context) ([]models.Room, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoRoomStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Room, error) {
	return s.find(ctx, bson.M{"publishedBy": ownerID})
}

func (s *MongoRoomStore) Search(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	return s.find(ctx, searchQuery(filter))
}

// searchQuery composes the provided predicates as a conjunction. Only active
// ads are ever eligible for the public search.
func searchQuery(filter RoomFilter) bson.M {
	query := bson.M{"isAdActive": true}
	if filter.Location != "" {
		query["location"] = filter.Location
	}
	if filter.HasPrice {
		price := bson.M{"$gte": filter.MinPrice}
		if !math.IsInf(filter.MaxPrice, 1) {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.IsDouble != nil {
		query["isDouble"] = *filter.IsDouble
	}
	return query
}

func (s *MongoRoomStore) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Room, error) {
	set := bson.M{"updatedAt": time.Now()}
	for key, value := range fields {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var room models.Room
	err := s.rooms.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&room)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *MongoRoomStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	var room models.Room
	err := s.rooms.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *MongoRoomStore) find(ctx context.Context, query bson.M) ([]models.Room, error) {
	cursor, err := s.rooms.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
