package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category represents a product category.
type Category struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	CreatedAt   time.Time     `bson:"created_at"`
}
