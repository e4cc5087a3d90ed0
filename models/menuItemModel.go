package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NutritionInfo struct {
	Calories *float64 `json:"calories,omitempty" bson:"calories,omitempty" validate:"omitempty,gte=0"`
	Protein  *float64 `json:"protein,omitempty" bson:"protein,omitempty" validate:"omitempty,gte=0"`
	Carbs    *float64 `json:"carbs,omitempty" bson:"carbs,omitempty" validate:"omitempty,gte=0"`
	Fat      *float64 `json:"fat,omitempty" bson:"fat,omitempty" validate:"omitempty,gte=0"`
}

type MenuItem struct {
	ID               primitive.ObjectID `bson:"_id"`
	Name             string             `json:"name" bson:"name" validate:"required,max=100"`
	Description      string             `json:"description" bson:"description" validate:"max=500"`
	Price            float64            `json:"price" bson:"price" validate:"required,gt=0"`
	Category_ids     []string           `json:"category_ids" bson:"category_ids"`
	Tag_ids          []string           `json:"tag_ids" bson:"tag_ids"`
	Food_type        string             `json:"food_type" bson:"food_type" validate:"required,oneof=veg non-veg"`
	Is_spicy         bool               `json:"is_spicy" bson:"is_spicy"`
	Spicy_level      int                `json:"spicy_level" bson:"spicy_level" validate:"gte=0,lte=3"`
	Preparation_time *int               `json:"preparation_time,omitempty" bson:"preparation_time,omitempty" validate:"omitempty,gte=0"`
	Is_available     bool               `json:"is_available" bson:"is_available"`
	Nutrition_info   NutritionInfo      `json:"nutrition_info" bson:"nutrition_info"`
	Allergens        []string           `json:"allergens" bson:"allergens"`
	Restaurant_id    string             `json:"restaurant_id" bson:"restaurant_id"`
	Created_at       time.Time          `json:"created_at" bson:"created_at"`
	Updated_at       time.Time          `json:"updated_at" bson:"updated_at"`
	Item_id          string             `json:"item_id" bson:"item_id"`
}
