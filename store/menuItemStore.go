package store

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/kolabix/digidinez-sub000/config"
	"github.com/kolabix/digidinez-sub000/models"
)

type MenuItemStore struct {
	collection *mongo.Collection
}

func NewMenuItemStore(client *mongo.Client) *MenuItemStore {
	return &MenuItemStore{collection: database.OpenCollection(client, "menu_item")}
}

func (s *MenuItemStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuItemStore) FindOne(ctx context.Context, restaurantID, name string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.collection.FindOne(ctx, bson.M{
		"restaurant_id": restaurantID,
		"name":          strings.TrimSpace(name),
	}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuItemStore) Create(ctx context.Context, item *models.MenuItem) error {
	_, err := s.collection.InsertOne(ctx, item)
	return err
}

func (s *MenuItemStore) Save(ctx context.Context, item *models.MenuItem) error {
	update := bson.M{"$set": bson.M{
		"description":      item.Description,
		"price":            item.Price,
		"category_ids":     item.Category_ids,
		"tag_ids":          item.Tag_ids,
		"food_type":        item.Food_type,
		"is_spicy":         item.Is_spicy,
		"spicy_level":      item.Spicy_level,
		"preparation_time": item.Preparation_time,
		"is_available":     item.Is_available,
		"nutrition_info":   item.Nutrition_info,
		"allergens":        item.Allergens,
		"updated_at":       item.Updated_at,
	}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"item_id": item.Item_id}, update)
	return err
}

// CountByCategory reports how many menu items still reference a category;
// used to guard interactive category deletion.
func (s *MenuItemStore) CountByCategory(ctx context.Context, restaurantID, categoryID string) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{
		"restaurant_id": restaurantID,
		"category_ids":  categoryID,
	})
}

func (s *MenuItemStore) CountByTag(ctx context.Context, restaurantID, tagID string) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{
		"restaurant_id": restaurantID,
		"tag_ids":       tagID,
	})
}
