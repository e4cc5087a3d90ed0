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

// CategoryStore persists categories scoped to a restaurant. It satisfies the
// upload package's store interface.
type CategoryStore struct {
	collection *mongo.Collection
}

func NewCategoryStore(client *mongo.Client) *CategoryStore {
	return &CategoryStore{collection: database.OpenCollection(client, "category")}
}

func (s *CategoryStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FindOne matches the trimmed name exactly within the restaurant's scope and
// returns (nil, nil) when no category matches.
func (s *CategoryStore) FindOne(ctx context.Context, restaurantID, name string) (*models.Category, error) {
	var category models.Category
	err := s.collection.FindOne(ctx, bson.M{
		"restaurant_id": restaurantID,
		"name":          strings.TrimSpace(name),
	}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryStore) Create(ctx context.Context, category *models.Category) error {
	_, err := s.collection.InsertOne(ctx, category)
	return err
}

// Save writes the mutable fields of an existing category.
func (s *CategoryStore) Save(ctx context.Context, category *models.Category) error {
	update := bson.M{"$set": bson.M{
		"sort_order": category.Sort_order,
		"updated_at": category.Updated_at,
	}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"category_id": category.Category_id}, update)
	return err
}
