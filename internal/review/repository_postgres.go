package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/sentiment"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectReview = `
	SELECT
		r.id::text,
		r.user_id::text,
		COALESCE(u.name, ''),
		r.food_item_id::text,
		r.rating,
		r.text,
		r.audio_url,
		r.voice_transcript,
		r.sentiment_score,
		r.sentiment_label,
		r.score_source,
		r.created_at
	FROM reviews r
	LEFT JOIN users u ON u.id = r.user_id
`

// --------------------------------------------------
// Create a review
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, rev *Review) error {
	if rev.ID == "" {
		rev.ID = uuid.New().String()
	}

	query := `
		INSERT INTO reviews (
			id,
			user_id,
			food_item_id,
			rating,
			text,
			audio_url,
			voice_transcript,
			sentiment_score,
			sentiment_label,
			score_source,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING (SELECT name FROM users WHERE id = $2)
	`

	var name *string
	err := r.db.QueryRow(ctx, query,
		rev.ID,
		rev.UserID,
		rev.FoodItemID,
		rev.Rating,
		rev.Text,
		rev.AudioURL,
		rev.VoiceTranscript,
		rev.SentimentScore,
		string(rev.SentimentLabel),
		string(rev.ScoreSource),
		rev.CreatedAt,
	).Scan(&name)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	if name != nil {
		rev.UserName = *name
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, foodItemID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND food_item_id = $2)`,
		userID, foodItemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) ListByFood(ctx context.Context, foodItemID string) ([]*Review, error) {
	if _, err := uuid.Parse(foodItemID); err != nil {
		return []*Review{}, nil
	}
	return r.query(ctx, selectReview+` WHERE r.food_item_id = $1 ORDER BY r.created_at DESC`, foodItemID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Review, error) {
	return r.query(ctx, selectReview+` ORDER BY r.created_at DESC`)
}

func (r *PostgresRepository) UpdateSentiment(ctx context.Context, id string, result sentiment.Result) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reviews SET sentiment_score = $2, sentiment_label = $3 WHERE id = $1`,
		id, result.Score, string(result.Label),
	)
	if err != nil {
		return fmt.Errorf("update review sentiment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------
func (r *PostgresRepository) FoodStats(ctx context.Context, foodItemID string) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			count(*),
			COALESCE(avg(rating), 0)::float8,
			COALESCE(avg(sentiment_score), 0)::float8
		FROM reviews
		WHERE food_item_id = $1
	`, foodItemID).Scan(&s.Count, &s.AverageRating, &s.AverageSentiment)
	if err != nil {
		return Stats{}, fmt.Errorf("review stats: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Overview(ctx context.Context) (sentiment.Summary, float64, error) {
	var (
		s   sentiment.Summary
		avg float64
	)
	err := r.db.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE sentiment_label = 'positive'),
			count(*) FILTER (WHERE sentiment_label = 'neutral'),
			count(*) FILTER (WHERE sentiment_label = 'negative'),
			COALESCE(avg(sentiment_score), 0)::float8
		FROM reviews
	`).Scan(&s.Positive, &s.Neutral, &s.Negative, &avg)
	if err != nil {
		return sentiment.Summary{}, 0, fmt.Errorf("review overview: %w", err)
	}
	return s, avg, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		var (
			rev    Review
			label  string
			source string
		)
		if err := rows.Scan(
			&rev.ID,
			&rev.UserID,
			&rev.UserName,
			&rev.FoodItemID,
			&rev.Rating,
			&rev.Text,
			&rev.AudioURL,
			&rev.VoiceTranscript,
			&rev.SentimentScore,
			&label,
			&source,
			&rev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rev.SentimentLabel = sentiment.Label(label)
		rev.ScoreSource = ScoreSource(source)
		reviews = append(reviews, &rev)
	}
	return reviews, rows.Err()
}
