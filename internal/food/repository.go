package food

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("food item not found")

type Repository interface {
	Create(ctx context.Context, item *FoodItem) error
	Update(ctx context.Context, item *FoodItem) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*FoodItem, error)
	List(ctx context.Context, filter ListFilter) ([]*FoodItem, int, error)

	Count(ctx context.Context) (int, error)

	// review aggregates
	MostLoved(ctx context.Context, limit int) ([]*FoodItem, error)
	ListReviewed(ctx context.Context) ([]*FoodItem, error)
	UpdateReviewStats(ctx context.Context, id string, stats ReviewStats) error

	// order counters
	MostSelling(ctx context.Context, limit int) ([]*FoodItem, error)
	IncrementOrders(ctx context.Context, id string, quantity int) error

	// TopSellingWithTag returns nil when no available item carries tag.
	TopSellingWithTag(ctx context.Context, tag string) (*FoodItem, error)
	// MostReviewed returns nil when the category has no available items.
	MostReviewed(ctx context.Context, category string) (*FoodItem, error)
}
