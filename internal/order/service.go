package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/metrics"
)

const (
	trendingWindow = 7 * 24 * time.Hour
	trendingLimit  = 8
)

var ErrOrderNotFound = apperrors.NotFound("Order not found")

// FoodCatalog is the part of the food service orders depend on.
type FoodCatalog interface {
	Get(ctx context.Context, id string) (*food.FoodItem, error)
	RecordOrder(ctx context.Context, id string, quantity int) error
	MostSelling(ctx context.Context) ([]*food.FoodItem, error)
}

type Service struct {
	repo  Repository
	foods FoodCatalog
	clock clockwork.Clock
}

func NewService(repo Repository, foods FoodCatalog, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{repo: repo, foods: foods, clock: clock}
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------

// Create prices the order from the current catalog, stores it and bumps
// the order counter of every item in it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(in.Items))
	var total float64
	for _, line := range in.Items {
		item, err := s.foods.Get(ctx, line.FoodItemID)
		if apperrors.IsType(err, apperrors.TypeNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("Food item %s not found", line.FoodItemID))
		}
		if err != nil {
			return nil, err
		}
		if !item.IsAvailable {
			return nil, apperrors.Validation(fmt.Sprintf("%s is currently unavailable", item.Name))
		}

		items = append(items, Item{
			FoodItemID: item.ID,
			Name:       item.Name,
			Category:   item.Category,
			Price:      item.Price,
			Quantity:   line.Quantity,
			Image:      item.Image,
		})
		total += item.Price * float64(line.Quantity)
	}

	now := s.clock.Now().UTC()
	o := &Order{
		UserID:          in.UserID,
		Items:           items,
		TotalAmount:     math.Round(total*100) / 100,
		Status:          StatusPending,
		DeliveryAddress: in.DeliveryAddress,
		PaymentMethod:   in.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apperrors.Internal("failed to place order", err)
	}

	for _, item := range o.Items {
		if err := s.foods.RecordOrder(ctx, item.FoodItemID, item.Quantity); err != nil {
			slog.WarnContext(ctx, "Failed to update order count",
				"order_id", o.ID,
				"food_id", item.FoodItemID,
				"error", err,
			)
		}
	}

	metrics.OrdersPlacedTotal.WithLabelValues(string(o.PaymentMethod)).Inc()
	slog.InfoContext(ctx, "Order placed",
		"order_id", o.ID,
		"user_id", o.UserID,
		"items", len(o.Items),
		"total_amount", o.TotalAmount,
	)
	return o, nil
}

// Mine returns a user's orders, newest first.
func (s *Service) Mine(ctx context.Context, userID string) ([]*Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load orders", err)
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

// --------------------------------------------------
// ADMIN: list and status updates
// --------------------------------------------------
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, food.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, food.Pagination{}, apperrors.Validation("unknown order status").WithField("allowed", Statuses)
	}
	filter = filter.Normalize()

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, food.Pagination{}, apperrors.Internal("failed to list orders", err)
	}
	if orders == nil {
		orders = []*Order{}
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	return orders, food.Pagination{Page: filter.Page, Limit: filter.Limit, Total: total, Pages: pages}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("unknown order status").WithField("allowed", Statuses)
	}

	o, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load order", err)
	}

	now := s.clock.Now().UTC()
	o.Status = status
	o.UpdatedAt = now
	if status == StatusDelivered {
		o.DeliveredAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, apperrors.Internal("failed to update order", err)
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(string(status)).Inc()
	slog.InfoContext(ctx, "Order status updated", "order_id", o.ID, "status", status)
	return o, nil
}

// --------------------------------------------------
// Trending and dashboard figures
// --------------------------------------------------

// Trending returns the items ordered most in the last seven days. With no
// recent orders it falls back to the lifetime best sellers.
func (s *Service) Trending(ctx context.Context) ([]*TrendingItem, error) {
	counts, err := s.repo.Trending(ctx, s.clock.Now().Add(-trendingWindow), trendingLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to load trending items", err)
	}

	out := []*TrendingItem{}
	for _, c := range counts {
		item, err := s.foods.Get(ctx, c.FoodItemID)
		if apperrors.IsType(err, apperrors.TypeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, &TrendingItem{FoodItem: item, TrendingOrders: c.Quantity})
	}
	if len(out) > 0 {
		return out, nil
	}

	selling, err := s.foods.MostSelling(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range selling {
		out = append(out, &TrendingItem{FoodItem: item})
	}
	return out, nil
}

// Stats returns store-wide order figures with revenue per day for the
// last seven days.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx, s.clock.Now().Add(-trendingWindow))
	if err != nil {
		return nil, apperrors.Internal("failed to load order stats", err)
	}
	return stats, nil
}
