package food

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*FoodItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*FoodItem)}
}

func (r *InMemoryRepository) Create(_ context.Context, item *FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = clone(item)
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, item *FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return ErrNotFound
	}
	updated := clone(item)
	// review aggregates are owned by UpdateReviewStats
	updated.AverageRating = existing.AverageRating
	updated.ReviewCount = existing.ReviewCount
	updated.SentimentScore = existing.SentimentScore
	updated.TotalOrders = existing.TotalOrders
	updated.CreatedAt = existing.CreatedAt
	r.items[item.ID] = updated
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id string) (*FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(item), nil
}

func (r *InMemoryRepository) List(_ context.Context, filter ListFilter) ([]*FoodItem, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var matched []*FoodItem
	for _, item := range r.items {
		if !item.IsAvailable {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		matched = append(matched, item)
	}

	slices.SortFunc(matched, compareBy(filter.Sort))

	total := len(matched)
	start := min(filter.Offset(), total)
	end := min(start+filter.Limit, total)

	out := make([]*FoodItem, 0, end-start)
	for _, item := range matched[start:end] {
		out = append(out, clone(item))
	}
	return out, total, nil
}

func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *InMemoryRepository) MostLoved(_ context.Context, limit int) ([]*FoodItem, error) {
	reviewed := r.reviewed(true)
	slices.SortFunc(reviewed, func(a, b *FoodItem) int {
		if c := cmp.Compare(b.AverageRating, a.AverageRating); c != 0 {
			return c
		}
		return cmp.Compare(b.SentimentScore, a.SentimentScore)
	})
	if len(reviewed) > limit {
		reviewed = reviewed[:limit]
	}
	return reviewed, nil
}

func (r *InMemoryRepository) ListReviewed(_ context.Context) ([]*FoodItem, error) {
	reviewed := r.reviewed(false)
	slices.SortFunc(reviewed, func(a, b *FoodItem) int { return strings.Compare(a.Name, b.Name) })
	return reviewed, nil
}

func (r *InMemoryRepository) UpdateReviewStats(_ context.Context, id string, stats ReviewStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	item.AverageRating = stats.AverageRating
	item.ReviewCount = stats.ReviewCount
	item.SentimentScore = stats.SentimentScore
	return nil
}

func (r *InMemoryRepository) MostSelling(_ context.Context, limit int) ([]*FoodItem, error) {
	items := r.available(func(*FoodItem) bool { return true })
	slices.SortStableFunc(items, compareBy(SortPopular))
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *InMemoryRepository) IncrementOrders(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	item.TotalOrders += quantity
	return nil
}

func (r *InMemoryRepository) TopSellingWithTag(_ context.Context, tag string) (*FoodItem, error) {
	items := r.available(func(item *FoodItem) bool { return slices.Contains(item.HealthTags, tag) })
	return first(items, compareBy(SortPopular)), nil
}

func (r *InMemoryRepository) MostReviewed(_ context.Context, category string) (*FoodItem, error) {
	items := r.available(func(item *FoodItem) bool { return item.Category == category })
	return first(items, func(a, b *FoodItem) int { return cmp.Compare(b.ReviewCount, a.ReviewCount) }), nil
}

// available returns copies of available items matching keep, newest first.
func (r *InMemoryRepository) available(keep func(*FoodItem) bool) []*FoodItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*FoodItem
	for _, item := range r.items {
		if item.IsAvailable && keep(item) {
			out = append(out, clone(item))
		}
	}
	slices.SortFunc(out, compareBy(SortNewest))
	return out
}

func first(items []*FoodItem, compare func(a, b *FoodItem) int) *FoodItem {
	if len(items) == 0 {
		return nil
	}
	slices.SortStableFunc(items, compare)
	return items[0]
}

func (r *InMemoryRepository) reviewed(availableOnly bool) []*FoodItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*FoodItem
	for _, item := range r.items {
		if item.ReviewCount < 1 || (availableOnly && !item.IsAvailable) {
			continue
		}
		out = append(out, clone(item))
	}
	return out
}

func compareBy(sort string) func(a, b *FoodItem) int {
	switch sort {
	case SortPriceAsc:
		return func(a, b *FoodItem) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		return func(a, b *FoodItem) int { return cmp.Compare(b.Price, a.Price) }
	case SortRating:
		return func(a, b *FoodItem) int { return cmp.Compare(b.AverageRating, a.AverageRating) }
	case SortPopular:
		return func(a, b *FoodItem) int { return cmp.Compare(b.TotalOrders, a.TotalOrders) }
	default:
		return func(a, b *FoodItem) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}

func clone(item *FoodItem) *FoodItem {
	c := *item
	c.HealthTags = slices.Clone(item.HealthTags)
	return &c
}
