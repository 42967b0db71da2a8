package review

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/metrics"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/sentiment"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/storage"
)

var ErrAlreadyReviewed = apperrors.Conflict("You have already reviewed this item")

// FoodCatalog is the part of the food service reviews depend on.
type FoodCatalog interface {
	Get(ctx context.Context, id string) (*food.FoodItem, error)
	UpdateReviewStats(ctx context.Context, id string, stats food.ReviewStats) error
}

// Storage keeps voice review audio.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// SummaryStore caches per-item sentiment summaries.
type SummaryStore interface {
	Get(ctx context.Context, foodID string) (sentiment.Summary, bool)
	Set(ctx context.Context, foodID string, s sentiment.Summary)
	Invalidate(ctx context.Context, foodID string)
}

type nopSummaries struct{}

func (nopSummaries) Get(context.Context, string) (sentiment.Summary, bool) {
	return sentiment.Summary{}, false
}

func (nopSummaries) Set(context.Context, string, sentiment.Summary) {}

func (nopSummaries) Invalidate(context.Context, string) {}

type Service struct {
	repo      Repository
	foods     FoodCatalog
	storage   Storage
	summaries SummaryStore
	clock     clockwork.Clock
}

// NewService wires the review service. storage and summaries may be nil.
func NewService(repo Repository, foods FoodCatalog, store Storage, summaries SummaryStore, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if summaries == nil {
		summaries = nopSummaries{}
	}
	return &Service{
		repo:      repo,
		foods:     foods,
		storage:   store,
		summaries: summaries,
		clock:     clock,
	}
}

// --------------------------------------------------
// Submit a review
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, in CreateInput) (*Review, error) {
	if in.FoodItemID == "" {
		return nil, apperrors.Validation("food_item_id is required")
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}
	text, _ := in.Text.(string)
	if utf8.RuneCountInString(text) > MaxTextLength {
		return nil, apperrors.Validation(fmt.Sprintf("text must be at most %d characters", MaxTextLength))
	}
	transcript, _ := in.VoiceTranscript.(string)

	if _, err := s.foods.Get(ctx, in.FoodItemID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, in.UserID, in.FoodItemID)
	if err != nil {
		return nil, apperrors.Internal("failed to check existing review", err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	scored, source := textToScore(in.VoiceTranscript, in.Text)
	result := sentiment.AnalyzeValue(scored)

	audio, err := s.uploadAudio(ctx, in.FoodItemID, in.AudioData)
	if err != nil {
		return nil, err
	}

	rev := &Review{
		UserID:          in.UserID,
		FoodItemID:      in.FoodItemID,
		Rating:          in.Rating,
		Text:            text,
		AudioURL:        audio.url,
		VoiceTranscript: transcript,
		SentimentScore:  result.Score,
		SentimentLabel:  result.Label,
		ScoreSource:     source,
		CreatedAt:       s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		s.discardAudio(ctx, audio.key)
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, apperrors.Internal("failed to save review", err)
	}

	metrics.ReviewsScoredTotal.WithLabelValues(string(result.Label)).Inc()
	metrics.ReviewSentimentScore.Observe(result.Score)

	slog.InfoContext(ctx, "Review created",
		"review_id", rev.ID,
		"food_id", rev.FoodItemID,
		"rating", rev.Rating,
		"sentiment_score", rev.SentimentScore,
		"sentiment_label", rev.SentimentLabel,
	)

	if err := s.refreshAggregates(ctx, rev.FoodItemID); err != nil {
		return nil, apperrors.Internal("failed to update review aggregates", err)
	}

	return rev, nil
}

// textToScore picks the voice transcript when it is set, then the typed
// text, matching JavaScript truthiness for the raw JSON values. A non-string
// winner is returned as is and reported as SourceNone.
func textToScore(voiceTranscript, text any) (any, ScoreSource) {
	if truthy(voiceTranscript) {
		return voiceTranscript, sourceOf(voiceTranscript, SourceTranscript)
	}
	if truthy(text) {
		return text, sourceOf(text, SourceText)
	}
	return "", SourceNone
}

func sourceOf(v any, source ScoreSource) ScoreSource {
	if _, ok := v.(string); ok {
		return source
	}
	return SourceNone
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

type uploadedAudio struct {
	key string
	url string
}

func (s *Service) uploadAudio(ctx context.Context, foodID string, raw any) (uploadedAudio, error) {
	data, _ := raw.(string)
	if data == "" {
		return uploadedAudio{}, nil
	}
	if s.storage == nil {
		slog.DebugContext(ctx, "Audio storage not configured, dropping voice recording", "food_id", foodID)
		return uploadedAudio{}, nil
	}

	audio, err := storage.DecodeAudio(data)
	if err != nil {
		return uploadedAudio{}, apperrors.Validation(err.Error())
	}

	key := fmt.Sprintf("reviews/%s/%s.%s", foodID, uuid.New().String(), audio.Extension())
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(audio.Data), audio.ContentType)
	if err != nil {
		return uploadedAudio{}, apperrors.Internal("failed to upload audio", err)
	}
	return uploadedAudio{key: key, url: url}, nil
}

// discardAudio removes an upload whose review was never stored.
func (s *Service) discardAudio(ctx context.Context, key string) {
	if key == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		slog.WarnContext(ctx, "Failed to remove orphaned audio", "key", key, "error", err)
	}
}

// refreshAggregates recomputes an item's rating and sentiment averages and
// drops its cached summary.
func (s *Service) refreshAggregates(ctx context.Context, foodID string) error {
	stats, err := s.repo.FoodStats(ctx, foodID)
	if err != nil {
		return err
	}

	agg := food.ReviewStats{}
	if stats.Count > 0 {
		agg = food.ReviewStats{
			AverageRating:  roundHalfUp(stats.AverageRating, 10),
			ReviewCount:    stats.Count,
			SentimentScore: sentiment.Round2(stats.AverageSentiment),
		}
	}

	if err := s.foods.UpdateReviewStats(ctx, foodID, agg); err != nil {
		return err
	}
	s.summaries.Invalidate(ctx, foodID)
	return nil
}

func roundHalfUp(x, scale float64) float64 {
	return math.Floor(x*scale+0.5) / scale
}

// --------------------------------------------------
// Listing and preview
// --------------------------------------------------
func (s *Service) ListForFood(ctx context.Context, foodID string) (*FoodReviews, error) {
	reviews, err := s.repo.ListByFood(ctx, foodID)
	if err != nil {
		return nil, apperrors.Internal("failed to load reviews", err)
	}

	summary, ok := s.summaries.Get(ctx, foodID)
	if !ok {
		summary = summarize(reviews)
		s.summaries.Set(ctx, foodID, summary)
	}

	return &FoodReviews{Reviews: reviews, Summary: summary, Total: len(reviews)}, nil
}

func summarize(reviews []*Review) sentiment.Summary {
	var sum sentiment.Summary
	for _, r := range reviews {
		sum.Add(r.SentimentLabel)
	}
	return sum
}

// Analyze scores text without storing anything.
func (s *Service) Analyze(text any) sentiment.Result {
	return sentiment.AnalyzeValue(text)
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	dist, avg, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load sentiment overview", err)
	}
	return &Overview{Distribution: dist, AverageScore: sentiment.Round2(avg)}, nil
}

// --------------------------------------------------
// Rescore stored reviews
// --------------------------------------------------

// Rescore re-applies the scorer to every stored review and refreshes the
// aggregates of items whose reviews changed.
func (s *Service) Rescore(ctx context.Context) (*RescoreReport, error) {
	reviews, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load reviews", err)
	}

	report := &RescoreReport{Scanned: len(reviews)}
	touched := map[string]struct{}{}

	for _, rev := range reviews {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := sentiment.AnalyzeString(rev.ScoredText())
		if result.Score == rev.SentimentScore && result.Label == rev.SentimentLabel {
			continue
		}

		if err := s.repo.UpdateSentiment(ctx, rev.ID, result); err != nil {
			return report, apperrors.Internal("failed to update review sentiment", err)
		}
		report.Changed++
		touched[rev.FoodItemID] = struct{}{}
	}

	for foodID := range touched {
		err := s.refreshAggregates(ctx, foodID)
		if errors.Is(err, food.ErrFoodNotFound) {
			continue
		}
		if err != nil {
			return report, apperrors.Internal("failed to update review aggregates", err)
		}
		report.ItemsUpdated++
	}

	metrics.ReviewsRescoredTotal.Add(float64(report.Changed))
	slog.InfoContext(ctx, "Rescore finished",
		"scanned", report.Scanned,
		"changed", report.Changed,
		"items_updated", report.ItemsUpdated,
	)
	return report, nil
}
