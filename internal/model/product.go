package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product represents an item in the catalog.
type Product struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Price     float64       `bson:"price"`
	Image     string        `bson:"image"`
	CreatedAt time.Time     `bson:"created_at"`
}
