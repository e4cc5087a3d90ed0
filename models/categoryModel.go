package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category names are unique per restaurant on the trimmed name.
type Category struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `json:"name" bson:"name" validate:"required,max=50"`
	Sort_order    int                `json:"sort_order" bson:"sort_order" validate:"gte=0"`
	Restaurant_id string             `json:"restaurant_id" bson:"restaurant_id"`
	Created_at    time.Time          `json:"created_at" bson:"created_at"`
	Updated_at    time.Time          `json:"updated_at" bson:"updated_at"`
	Category_id   string             `json:"category_id" bson:"category_id"`
}
