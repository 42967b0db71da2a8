package order

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, int, error)
	UpdateStatus(ctx context.Context, o *Order) error

	// Trending sums ordered quantities per food item since a point in time,
	// largest first.
	Trending(ctx context.Context, since time.Time, limit int) ([]ItemCount, error)
	// Stats aggregates all orders; RevenueByDay only covers orders since.
	Stats(ctx context.Context, since time.Time) (*Stats, error)
}
