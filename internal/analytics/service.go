package analytics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/order"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/review"
)

var ErrRecomputeRunning = apperrors.Conflict("a sentiment recompute is already running")

type Reviews interface {
	Overview(ctx context.Context) (*review.Overview, error)
	Rescore(ctx context.Context) (*review.RescoreReport, error)
}

type Catalog interface {
	ListReviewed(ctx context.Context) ([]*food.FoodItem, error)
	MostLoved(ctx context.Context) ([]*food.FoodItem, error)
	MostSelling(ctx context.Context) ([]*food.FoodItem, error)
	Count(ctx context.Context) (int, error)
	TopSellingWithTag(ctx context.Context, tag string) (*food.FoodItem, error)
	MostReviewed(ctx context.Context, category string) (*food.FoodItem, error)
}

type Orders interface {
	Stats(ctx context.Context) (*order.Stats, error)
	Trending(ctx context.Context) ([]*order.TrendingItem, error)
}

type Users interface {
	CountCustomers(ctx context.Context) (int, error)
}

type Service struct {
	reviews Reviews
	catalog Catalog
	orders  Orders
	users   Users

	recomputing sync.Mutex
}

func NewService(reviews Reviews, catalog Catalog, orders Orders, users Users) *Service {
	return &Service{reviews: reviews, catalog: catalog, orders: orders, users: users}
}

// Sentiment builds the dashboard report.
func (s *Service) Sentiment(ctx context.Context) (*Report, error) {
	overview, err := s.reviews.Overview(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.catalog.ListReviewed(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		TotalReviews: overview.Distribution.Total(),
		Distribution: overview.Distribution,
		AverageScore: overview.AverageScore,
	}

	var best, worst *food.FoodItem
	for _, item := range items {
		if best == nil || item.SentimentScore > best.SentimentScore {
			best = item
		}
		if worst == nil || item.SentimentScore < worst.SentimentScore {
			worst = item
		}
	}
	report.MostLoved = toItem(best)
	report.MostCriticized = toItem(worst)

	return report, nil
}

// Dashboard gathers the admin overview.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	foods, err := s.catalog.Count(ctx)
	if err != nil {
		return nil, err
	}
	overview, err := s.reviews.Overview(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalOrders:           stats.TotalOrders,
		TotalUsers:            users,
		TotalFoodItems:        foods,
		TotalReviews:          overview.Distribution.Total(),
		TotalRevenue:          stats.TotalRevenue,
		OrdersByStatus:        stats.ByStatus,
		RevenueByDay:          stats.RevenueByDay,
		SentimentDistribution: overview.Distribution,
		OrdersByCategory:      stats.ByCategory,
	}

	selling, err := s.catalog.MostSelling(ctx)
	if err != nil {
		return nil, err
	}
	if len(selling) > 0 {
		d.MostSelling = selling[0]
	}

	loved, err := s.catalog.MostLoved(ctx)
	if err != nil {
		return nil, err
	}
	if len(loved) > 0 {
		d.MostLoved = loved[0]
	}

	reviewed, err := s.catalog.ListReviewed(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range reviewed {
		if d.HighestRated == nil || item.AverageRating > d.HighestRated.AverageRating {
			d.HighestRated = item
		}
	}

	trending, err := s.orders.Trending(ctx)
	if err != nil {
		return nil, err
	}
	// a zero count means the list fell back to lifetime sellers
	if len(trending) > 0 && trending[0].TrendingOrders > 0 {
		d.TrendingItem = &WeeklyTrend{
			Name:           trending[0].Name,
			Category:       trending[0].Category,
			OrdersThisWeek: trending[0].TrendingOrders,
		}
	}

	return d, nil
}

// HealthInsights reports the best seller per health tag and the drink
// with the most reviews. Tags with no available item are left out.
func (s *Service) HealthInsights(ctx context.Context) (*HealthInsights, error) {
	out := &HealthInsights{HealthTagInsights: []TagInsight{}}
	for _, tag := range food.HealthTags {
		item, err := s.catalog.TopSellingWithTag(ctx, tag)
		if err != nil {
			return nil, err
		}
		if item != nil {
			out.HealthTagInsights = append(out.HealthTagInsights, TagInsight{Tag: tag, TopItem: item})
		}
	}

	drink, err := s.catalog.MostReviewed(ctx, food.CategoryDrinks)
	if err != nil {
		return nil, err
	}
	out.MostReviewedDrink = drink
	return out, nil
}

// Recompute rescores every stored review. Only one run at a time.
func (s *Service) Recompute(ctx context.Context) (*review.RescoreReport, error) {
	if !s.recomputing.TryLock() {
		return nil, ErrRecomputeRunning
	}
	defer s.recomputing.Unlock()

	slog.InfoContext(ctx, "Sentiment recompute started")
	return s.reviews.Rescore(ctx)
}

func toItem(f *food.FoodItem) *ItemSentiment {
	if f == nil {
		return nil
	}
	return &ItemSentiment{
		ID:             f.ID,
		Name:           f.Name,
		Category:       f.Category,
		SentimentScore: f.SentimentScore,
		AverageRating:  f.AverageRating,
		ReviewCount:    f.ReviewCount,
	}
}
