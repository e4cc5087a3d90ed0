package upload

import (
	"context"

	"github.com/kolabix/digidinez-sub000/models"
)

// Store interfaces consumed by the reconciler and the template generator.
// FindOne matches on the trimmed name within the restaurant's scope and
// returns (nil, nil) when no document matches, so callers can tell an absent
// record apart from a store failure. Save persists the mutable fields of an
// already-existing document.

type CategoryStore interface {
	FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error)
	FindOne(ctx context.Context, restaurantID, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Save(ctx context.Context, category *models.Category) error
}

type TagStore interface {
	FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Tag, error)
	FindOne(ctx context.Context, restaurantID, name string) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Save(ctx context.Context, tag *models.Tag) error
}

type MenuItemStore interface {
	FindByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	FindOne(ctx context.Context, restaurantID, name string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Save(ctx context.Context, item *models.MenuItem) error
}
