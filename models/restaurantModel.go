package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Restaurant struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Address       *string            `json:"address" bson:"address"`
	Phone         *string            `json:"phone" bson:"phone"`
	Description   *string            `json:"description" bson:"description" validate:"omitempty,max=500"`
	Image_url     *string            `json:"image_url" bson:"image_url"`
	Qr_url        *string            `json:"qr_url" bson:"qr_url"`
	Owner_id      string             `json:"owner_id" bson:"owner_id"`
	Created_at    time.Time          `json:"created_at" bson:"created_at"`
	Updated_at    time.Time          `json:"updated_at" bson:"updated_at"`
	Restaurant_id string             `json:"restaurant_id" bson:"restaurant_id"`
}
