package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tag struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `json:"name" bson:"name" validate:"required,max=30"`
	Color         string             `json:"color" bson:"color" validate:"required,hexcolor"`
	Restaurant_id string             `json:"restaurant_id" bson:"restaurant_id"`
	Created_at    time.Time          `json:"created_at" bson:"created_at"`
	Updated_at    time.Time          `json:"updated_at" bson:"updated_at"`
	Tag_id        string             `json:"tag_id" bson:"tag_id"`
}
