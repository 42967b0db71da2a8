package favorite

import (
	"context"
	"slices"
	"sync"
)

type InMemoryRepository struct {
	mu        sync.Mutex
	favorites map[string][]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{favorites: make(map[string][]string)}
}

func (r *InMemoryRepository) Toggle(_ context.Context, userID, foodItemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.favorites[userID]
	if i := slices.Index(ids, foodItemID); i >= 0 {
		r.favorites[userID] = slices.Delete(ids, i, i+1)
		return false, nil
	}
	r.favorites[userID] = append(ids, foodItemID)
	return true, nil
}

func (r *InMemoryRepository) List(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.favorites[userID]...), nil
}
