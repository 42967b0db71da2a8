// Package favorite keeps each customer's saved food items.
package favorite

import (
	"context"
	"log/slog"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
)

// FoodCatalog is the part of the food service favorites depend on.
type FoodCatalog interface {
	Get(ctx context.Context, id string) (*food.FoodItem, error)
}

// ToggleResult reports the state after a toggle.
type ToggleResult struct {
	IsFavorite bool     `json:"is_favorite"`
	Favorites  []string `json:"favorites"`
}

type Service struct {
	repo  Repository
	foods FoodCatalog
}

func NewService(repo Repository, foods FoodCatalog) *Service {
	return &Service{repo: repo, foods: foods}
}

func (s *Service) Toggle(ctx context.Context, userID, foodItemID string) (*ToggleResult, error) {
	if _, err := s.foods.Get(ctx, foodItemID); err != nil {
		return nil, err
	}

	added, err := s.repo.Toggle(ctx, userID, foodItemID)
	if err != nil {
		return nil, apperrors.Internal("failed to update favorites", err)
	}

	ids, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load favorites", err)
	}

	slog.DebugContext(ctx, "Favorite toggled", "user_id", userID, "food_id", foodItemID, "is_favorite", added)
	return &ToggleResult{IsFavorite: added, Favorites: ids}, nil
}

// List returns the user's favorite items that still exist.
func (s *Service) List(ctx context.Context, userID string) ([]*food.FoodItem, error) {
	ids, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load favorites", err)
	}

	items := make([]*food.FoodItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.foods.Get(ctx, id)
		if apperrors.IsType(err, apperrors.TypeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
