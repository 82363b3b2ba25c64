package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSearchQuery(t *testing.T) {
	t.Run("always restricts to active ads", func(t *testing.T) {
		query := searchQuery(RoomFilter{})
		assert.Equal(t, bson.M{"isAdActive": true}, query)
	})

	t.Run("bounded price range", func(t *testing.T) {
		query := searchQuery(RoomFilter{HasPrice: true, MinPrice: 100, MaxPrice: 500})
		assert.Equal(t, bson.M{"$gte": 100.0, "$lte": 500.0}, query["price"])
	})

	t.Run("unbounded max omits the upper bound", func(t *testing.T) {
		query := searchQuery(RoomFilter{HasPrice: true, MinPrice: 250, MaxPrice: math.Inf(1)})
		assert.Equal(t, bson.M{"$gte": 250.0}, query["price"])
	})

	t.Run("all predicates compose", func(t *testing.T) {
		double := true
		query := searchQuery(RoomFilter{
			Location: "Madrid",
			HasPrice: true,
			MinPrice: 100,
			MaxPrice: 500,
			IsDouble: &double,
		})
		assert.Equal(t, bson.M{
			"isAdActive": true,
			"location":   "Madrid",
			"price":      bson.M{"$gte": 100.0, "$lte": 500.0},
			"isDouble":   true,
		}, query)
	})

	t.Run("absent fields impose no constraint", func(t *testing.T) {
		query := searchQuery(RoomFilter{Location: "Madrid"})
		_, hasPrice := query["price"]
		_, hasDouble := query["isDouble"]
		assert.False(t, hasPrice)
		assert.False(t, hasDouble)
	})
}
