package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Room struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	PublishedBy primitive.ObjectID `bson:"publishedBy" json:"publishedBy"`
	Price       float64            `bson:"price" json:"price"`
	IsDouble    bool               `bson:"isDouble" json:"isDouble"`
	Bathrooms   int                `bson:"bathrooms" json:"bathrooms"`
	TotalRooms  int                `bson:"totalRooms" json:"totalRooms"`
	Area        float64            `bson:"area" json:"area"`
	IsAdActive  bool               `bson:"isAdActive" json:"isAdActive"`
	IsRented    bool               `bson:"isRented" json:"isRented"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
