package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Session documents expire a day after creation. The store deletes them;
// nothing in the request path computes expiry.
const sessionTTLSeconds = 24 * 60 * 60

// Collections bundles the three collections the stores are built on.
type Collections struct {
	Users    *mongo.Collection
	Rooms    *mongo.Collection
	Sessions *mongo.Collection
}

func ConnectDB() (*mongo.Client, error) {
	mongoURI := os.Getenv("MONGOURI")
	if mongoURI == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}

	clientOptions := options.Client().ApplyURI(mongoURI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	return client, nil
}

func InitCollections(client *mongo.Client) *Collections {
	dbName := os.Getenv("DB")
	db := client.Database(dbName)
	return &Collections{
		Users:    db.Collection("users"),
		Rooms:    db.Collection("rooms"),
		Sessions: db.Collection("sessions"),
	}
}

// EnsureIndexes creates the unique email index and the session TTL index.
// Index creation is idempotent, so this runs on every startup.
func EnsureIndexes(ctx context.Context, c *Collections) error {
	_, err := c.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}

	_, err = c.Sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(sessionTTLSeconds),
	})
	if err != nil {
		return fmt.Errorf("create session TTL index: %w", err)
	}
	return nil
}

func CloseDBConnection(client *mongo.Client) error {
	return client.Disconnect(context.TODO())
}
