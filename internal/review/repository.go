package review

import (
	"context"
	"errors"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/sentiment"
)

var (
	ErrDuplicate = errors.New("review already exists for this user and item")
	ErrNotFound  = errors.New("review not found")
)

type Repository interface {
	// Create returns ErrDuplicate when the user already reviewed the item.
	Create(ctx context.Context, r *Review) error
	Exists(ctx context.Context, userID, foodItemID string) (bool, error)
	ListByFood(ctx context.Context, foodItemID string) ([]*Review, error)
	ListAll(ctx context.Context) ([]*Review, error)
	UpdateSentiment(ctx context.Context, id string, result sentiment.Result) error

	FoodStats(ctx context.Context, foodItemID string) (Stats, error)
	Overview(ctx context.Context) (sentiment.Summary, float64, error)
}
