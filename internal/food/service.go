package food

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
)

const (
	mostLovedLimit   = 8
	mostSellingLimit = 8
)

var ErrFoodNotFound = apperrors.NotFound("Food item not found")

type Service struct {
	repo  Repository
	clock clockwork.Clock
}

func NewService(repo Repository, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{repo: repo, clock: clock}
}

// List returns one page of available items plus paging info.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*FoodItem, Pagination, error) {
	filter = filter.Normalize()

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, apperrors.Internal("failed to list food items", err)
	}
	if items == nil {
		items = []*FoodItem{}
	}
	return items, NewPagination(filter, total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*FoodItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load food item", err)
	}
	return item, nil
}

func (s *Service) MostLoved(ctx context.Context) ([]*FoodItem, error) {
	items, err := s.repo.MostLoved(ctx, mostLovedLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to load most loved items", err)
	}
	if items == nil {
		items = []*FoodItem{}
	}
	return items, nil
}

// MostSelling returns available items by lifetime order count.
func (s *Service) MostSelling(ctx context.Context) ([]*FoodItem, error) {
	items, err := s.repo.MostSelling(ctx, mostSellingLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to load most selling items", err)
	}
	if items == nil {
		items = []*FoodItem{}
	}
	return items, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperrors.Internal("failed to count food items", err)
	}
	return n, nil
}

// TopSellingWithTag returns the best selling available item carrying a
// health tag, or nil.
func (s *Service) TopSellingWithTag(ctx context.Context, tag string) (*FoodItem, error) {
	item, err := s.repo.TopSellingWithTag(ctx, tag)
	if err != nil {
		return nil, apperrors.Internal("failed to load top item for tag", err)
	}
	return item, nil
}

// MostReviewed returns the available item in category with the most
// reviews, or nil.
func (s *Service) MostReviewed(ctx context.Context, category string) (*FoodItem, error) {
	item, err := s.repo.MostReviewed(ctx, category)
	if err != nil {
		return nil, apperrors.Internal("failed to load most reviewed item", err)
	}
	return item, nil
}

// ListReviewed returns every item with at least one review.
func (s *Service) ListReviewed(ctx context.Context) ([]*FoodItem, error) {
	items, err := s.repo.ListReviewed(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load reviewed items", err)
	}
	return items, nil
}

// --------------------------------------------------
// ADMIN: create / update / delete
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, in Input) (*FoodItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	item := &FoodItem{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		HealthTags:  in.HealthTags,
		IsAvailable: in.IsAvailable == nil || *in.IsAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apperrors.Internal("failed to create food item", err)
	}

	slog.InfoContext(ctx, "Food item created", "food_id", item.ID, "name", item.Name)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*FoodItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Category = in.Category
	item.Price = in.Price
	item.Description = in.Description
	item.Image = in.Image
	item.HealthTags = in.HealthTags
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	item.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, apperrors.Internal("failed to update food item", err)
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ErrFoodNotFound
	}
	if err != nil {
		return apperrors.Internal("failed to delete food item", err)
	}
	slog.InfoContext(ctx, "Food item deleted", "food_id", id)
	return nil
}

// RecordOrder adds quantity to an item's lifetime order count.
func (s *Service) RecordOrder(ctx context.Context, id string, quantity int) error {
	err := s.repo.IncrementOrders(ctx, id, quantity)
	if errors.Is(err, ErrNotFound) {
		return ErrFoodNotFound
	}
	return err
}

// UpdateReviewStats stores recomputed review aggregates on an item.
func (s *Service) UpdateReviewStats(ctx context.Context, id string, stats ReviewStats) error {
	err := s.repo.UpdateReviewStats(ctx, id, stats)
	if errors.Is(err, ErrNotFound) {
		return ErrFoodNotFound
	}
	return err
}
