package review

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/sentiment"
)

type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews map[string]*Review
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{reviews: make(map[string]*Review)}
}

func (r *InMemoryRepository) Create(_ context.Context, rev *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.UserID == rev.UserID && existing.FoodItemID == rev.FoodItemID {
			return ErrDuplicate
		}
	}
	if rev.ID == "" {
		rev.ID = uuid.New().String()
	}
	stored := *rev
	r.reviews[rev.ID] = &stored
	return nil
}

func (r *InMemoryRepository) Exists(_ context.Context, userID, foodItemID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.reviews {
		if existing.UserID == userID && existing.FoodItemID == foodItemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) ListByFood(_ context.Context, foodItemID string) ([]*Review, error) {
	return r.filter(func(rev *Review) bool { return rev.FoodItemID == foodItemID }), nil
}

func (r *InMemoryRepository) ListAll(_ context.Context) ([]*Review, error) {
	return r.filter(func(*Review) bool { return true }), nil
}

func (r *InMemoryRepository) UpdateSentiment(_ context.Context, id string, result sentiment.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rev, ok := r.reviews[id]
	if !ok {
		return ErrNotFound
	}
	rev.SentimentScore = result.Score
	rev.SentimentLabel = result.Label
	return nil
}

func (r *InMemoryRepository) FoodStats(ctx context.Context, foodItemID string) (Stats, error) {
	reviews, _ := r.ListByFood(ctx, foodItemID)
	if len(reviews) == 0 {
		return Stats{}, nil
	}

	var rating, score float64
	for _, rev := range reviews {
		rating += float64(rev.Rating)
		score += rev.SentimentScore
	}
	n := float64(len(reviews))
	return Stats{Count: len(reviews), AverageRating: rating / n, AverageSentiment: score / n}, nil
}

func (r *InMemoryRepository) Overview(ctx context.Context) (sentiment.Summary, float64, error) {
	reviews, _ := r.ListAll(ctx)

	var summary sentiment.Summary
	scores := make([]float64, 0, len(reviews))
	for _, rev := range reviews {
		summary.Add(rev.SentimentLabel)
		scores = append(scores, rev.SentimentScore)
	}
	return summary, sentiment.AverageScore(scores), nil
}

// filter returns matching copies, newest first.
func (r *InMemoryRepository) filter(keep func(*Review) bool) []*Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Review{}
	for _, rev := range r.reviews {
		if keep(rev) {
			c := *rev
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *Review) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}
