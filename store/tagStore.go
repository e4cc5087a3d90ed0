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

type TagStore struct {
	collection *mongo.Collection
}

func NewTagStore(client *mongo.Client) *TagStore {
	return &TagStore{collection: database.OpenCollection(client, "tag")}
}

func (s *TagStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Tag, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagStore) FindOne(ctx context.Context, restaurantID, name string) (*models.Tag, error) {
	var tag models.Tag
	err := s.collection.FindOne(ctx, bson.M{
		"restaurant_id": restaurantID,
		"name":          strings.TrimSpace(name),
	}).Decode(&tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagStore) Create(ctx context.Context, tag *models.Tag) error {
	_, err := s.collection.InsertOne(ctx, tag)
	return err
}

func (s *TagStore) Save(ctx context.Context, tag *models.Tag) error {
	update := bson.M{"$set": bson.M{
		"color":      tag.Color,
		"updated_at": tag.Updated_at,
	}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"tag_id": tag.Tag_id}, update)
	return err
}
