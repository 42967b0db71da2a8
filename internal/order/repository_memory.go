package order

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]*Order)}
}

func (r *InMemoryRepository) Create(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	r.orders[o.ID] = clone(o)
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(o), nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Order, error) {
	return r.filter(func(o *Order) bool { return o.UserID == userID }), nil
}

func (r *InMemoryRepository) List(_ context.Context, filter ListFilter) ([]*Order, int, error) {
	matched := r.filter(func(o *Order) bool { return filter.Status == "" || o.Status == filter.Status })

	total := len(matched)
	start := min(filter.Offset(), total)
	end := min(start+filter.Limit, total)
	return matched[start:end], total, nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[o.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = o.Status
	stored.DeliveredAt = o.DeliveredAt
	stored.UpdatedAt = o.UpdatedAt
	return nil
}

func (r *InMemoryRepository) Trending(_ context.Context, since time.Time, limit int) ([]ItemCount, error) {
	counts := map[string]int{}
	for _, o := range r.filter(func(o *Order) bool { return !o.CreatedAt.Before(since) }) {
		for _, item := range o.Items {
			counts[item.FoodItemID] += item.Quantity
		}
	}

	out := make([]ItemCount, 0, len(counts))
	for _, id := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, ItemCount{FoodItemID: id, Quantity: counts[id]})
	}
	slices.SortStableFunc(out, func(a, b ItemCount) int { return cmp.Compare(b.Quantity, a.Quantity) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Stats(_ context.Context, since time.Time) (*Stats, error) {
	orders := r.filter(func(*Order) bool { return true })

	stats := &Stats{TotalOrders: len(orders), ByStatus: map[Status]int{}}
	days := map[string]*DayRevenue{}
	categories := map[string]*CategoryOrders{}

	for _, o := range orders {
		stats.ByStatus[o.Status]++

		for _, item := range o.Items {
			c, ok := categories[item.Category]
			if !ok {
				c = &CategoryOrders{Category: item.Category}
				categories[item.Category] = c
			}
			c.TotalOrders += item.Quantity
			c.Revenue += item.Price * float64(item.Quantity)
		}

		if o.Status == StatusCancelled {
			continue
		}
		stats.TotalRevenue += o.TotalAmount

		if o.CreatedAt.Before(since) {
			continue
		}
		day := o.CreatedAt.UTC().Format(time.DateOnly)
		d, ok := days[day]
		if !ok {
			d = &DayRevenue{Date: day}
			days[day] = d
		}
		d.Revenue += o.TotalAmount
		d.Orders++
	}

	stats.RevenueByDay = make([]DayRevenue, 0, len(days))
	for _, day := range slices.Sorted(maps.Keys(days)) {
		stats.RevenueByDay = append(stats.RevenueByDay, *days[day])
	}

	stats.ByCategory = make([]CategoryOrders, 0, len(categories))
	for _, name := range slices.Sorted(maps.Keys(categories)) {
		stats.ByCategory = append(stats.ByCategory, *categories[name])
	}
	slices.SortStableFunc(stats.ByCategory, func(a, b CategoryOrders) int {
		return cmp.Compare(b.TotalOrders, a.TotalOrders)
	})
	return stats, nil
}

// filter returns matching copies, newest first.
func (r *InMemoryRepository) filter(keep func(*Order) bool) []*Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, clone(o))
		}
	}
	slices.SortFunc(out, func(a, b *Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

func clone(o *Order) *Order {
	c := *o
	c.Items = slices.Clone(o.Items)
	if o.DeliveredAt != nil {
		t := *o.DeliveredAt
		c.DeliveredAt = &t
	}
	return &c
}
