package upload_test

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kolabix/digidinez-sub000/models"
)

// In-memory stores backing the pipeline tests. FindOne matches the trimmed
// name exactly, mirroring the Mongo implementations.

type memCategoryStore struct {
	categories []models.Category
	createErr  map[string]error
	listErr    error
}

func (s *memCategoryStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Category(nil), s.categories...), nil
}

func (s *memCategoryStore) FindOne(ctx context.Context, restaurantID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	for i := range s.categories {
		if s.categories[i].Name == name {
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memCategoryStore) Create(ctx context.Context, category *models.Category) error {
	if err := s.createErr[category.Name]; err != nil {
		return err
	}
	s.categories = append(s.categories, *category)
	return nil
}

func (s *memCategoryStore) Save(ctx context.Context, category *models.Category) error {
	for i := range s.categories {
		if s.categories[i].Category_id == category.Category_id {
			s.categories[i] = *category
			return nil
		}
	}
	return errors.New("category not found")
}

type memTagStore struct {
	tags      []models.Tag
	createErr map[string]error
	listErr   error
}

func (s *memTagStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Tag, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Tag(nil), s.tags...), nil
}

func (s *memTagStore) FindOne(ctx context.Context, restaurantID, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	for i := range s.tags {
		if s.tags[i].Name == name {
			t := s.tags[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (s *memTagStore) Create(ctx context.Context, tag *models.Tag) error {
	if err := s.createErr[tag.Name]; err != nil {
		return err
	}
	s.tags = append(s.tags, *tag)
	return nil
}

func (s *memTagStore) Save(ctx context.Context, tag *models.Tag) error {
	for i := range s.tags {
		if s.tags[i].Tag_id == tag.Tag_id {
			s.tags[i] = *tag
			return nil
		}
	}
	return errors.New("tag not found")
}

type memMenuItemStore struct {
	items     []models.MenuItem
	createErr map[string]error
}

func (s *memMenuItemStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	return append([]models.MenuItem(nil), s.items...), nil
}

func (s *memMenuItemStore) FindOne(ctx context.Context, restaurantID, name string) (*models.MenuItem, error) {
	name = strings.TrimSpace(name)
	for i := range s.items {
		if s.items[i].Name == name {
			item := s.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (s *memMenuItemStore) Create(ctx context.Context, item *models.MenuItem) error {
	if err := s.createErr[item.Name]; err != nil {
		return err
	}
	s.items = append(s.items, *item)
	return nil
}

func (s *memMenuItemStore) Save(ctx context.Context, item *models.MenuItem) error {
	for i := range s.items {
		if s.items[i].Item_id == item.Item_id {
			s.items[i] = *item
			return nil
		}
	}
	return errors.New("menu item not found")
}

func seedCategory(s *memCategoryStore, name string, sortOrder int) models.Category {
	c := models.Category{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Sort_order:    sortOrder,
		Restaurant_id: "rest1",
	}
	c.Category_id = c.ID.Hex()
	s.categories = append(s.categories, c)
	return c
}

func seedTag(s *memTagStore, name, color string) models.Tag {
	t := models.Tag{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Color:         color,
		Restaurant_id: "rest1",
	}
	t.Tag_id = t.ID.Hex()
	s.tags = append(s.tags, t)
	return t
}

func seedMenuItem(s *memMenuItemStore, name string, price float64, categoryIDs, tagIDs []string) models.MenuItem {
	item := models.MenuItem{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Price:         price,
		Category_ids:  categoryIDs,
		Tag_ids:       tagIDs,
		Food_type:     "veg",
		Is_available:  true,
		Restaurant_id: "rest1",
	}
	item.Item_id = item.ID.Hex()
	s.items = append(s.items, item)
	return item
}
