package favorite

import "context"

type Repository interface {
	// Toggle adds the item when absent and removes it when present,
	// reporting whether it is now a favorite.
	Toggle(ctx context.Context, userID, foodItemID string) (bool, error)
	// List returns a user's favorite item ids in the order they were added.
	List(ctx context.Context, userID string) ([]string, error)
}
