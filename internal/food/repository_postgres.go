package food

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `
	id::text,
	name,
	category,
	price,
	description,
	image,
	health_tags,
	total_orders,
	average_rating,
	review_count,
	sentiment_score,
	is_available,
	created_at,
	updated_at
`

var orderBy = map[string]string{
	SortNewest:    "created_at DESC",
	SortPriceAsc:  "price ASC, created_at DESC",
	SortPriceDesc: "price DESC, created_at DESC",
	SortRating:    "average_rating DESC, review_count DESC",
	SortPopular:   "total_orders DESC, created_at DESC",
}

// --------------------------------------------------
// Create a food item
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, item *FoodItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	query := `
		INSERT INTO food_items (
			id,
			name,
			category,
			price,
			description,
			image,
			health_tags,
			is_available,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Price,
		item.Description,
		item.Image,
		tagsOrEmpty(item.HealthTags),
		item.IsAvailable,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert food item: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Update editable fields
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, item *FoodItem) error {
	query := `
		UPDATE food_items
		SET
			name = $2,
			category = $3,
			price = $4,
			description = $5,
			image = $6,
			health_tags = $7,
			is_available = $8,
			updated_at = $9
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Price,
		item.Description,
		item.Image,
		tagsOrEmpty(item.HealthTags),
		item.IsAvailable,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update food item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM food_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete food item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*FoodItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM food_items WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find food item: %w", err)
	}
	return item, nil
}

// --------------------------------------------------
// List available items with filters and paging
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*FoodItem, int, error) {
	where := []string{"is_available = true"}
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM food_items WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count food items: %w", err)
	}

	order, ok := orderBy[filter.Sort]
	if !ok {
		order = orderBy[SortNewest]
	}
	args = append(args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(
		`SELECT %s FROM food_items WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		selectColumns, clause, order, len(args)-1, len(args),
	)

	items, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// --------------------------------------------------
// Most loved: reviewed items by rating, then sentiment
// --------------------------------------------------
func (r *PostgresRepository) MostLoved(ctx context.Context, limit int) ([]*FoodItem, error) {
	return r.query(ctx, `
		SELECT `+selectColumns+`
		FROM food_items
		WHERE is_available = true AND review_count >= 1
		ORDER BY average_rating DESC, sentiment_score DESC
		LIMIT $1
	`, limit)
}

func (r *PostgresRepository) ListReviewed(ctx context.Context) ([]*FoodItem, error) {
	return r.query(ctx, `
		SELECT `+selectColumns+`
		FROM food_items
		WHERE review_count >= 1
		ORDER BY name
	`)
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM food_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count food items: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) UpdateReviewStats(ctx context.Context, id string, stats ReviewStats) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE food_items
		SET average_rating = $2, review_count = $3, sentiment_score = $4
		WHERE id = $1
	`, id, stats.AverageRating, stats.ReviewCount, stats.SentimentScore)
	if err != nil {
		return fmt.Errorf("update review stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Order counters
// --------------------------------------------------
func (r *PostgresRepository) MostSelling(ctx context.Context, limit int) ([]*FoodItem, error) {
	return r.query(ctx, `
		SELECT `+selectColumns+`
		FROM food_items
		WHERE is_available = true
		ORDER BY total_orders DESC, created_at DESC
		LIMIT $1
	`, limit)
}

func (r *PostgresRepository) IncrementOrders(ctx context.Context, id string, quantity int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE food_items SET total_orders = total_orders + $2 WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("increment orders: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) TopSellingWithTag(ctx context.Context, tag string) (*FoodItem, error) {
	return r.queryOne(ctx, `
		SELECT `+selectColumns+`
		FROM food_items
		WHERE is_available = true AND $1 = ANY(health_tags)
		ORDER BY total_orders DESC, created_at DESC
		LIMIT 1
	`, tag)
}

func (r *PostgresRepository) MostReviewed(ctx context.Context, category string) (*FoodItem, error) {
	return r.queryOne(ctx, `
		SELECT `+selectColumns+`
		FROM food_items
		WHERE is_available = true AND category = $1
		ORDER BY review_count DESC, created_at DESC
		LIMIT 1
	`, category)
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*FoodItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query food item: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*FoodItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query food items: %w", err)
	}
	defer rows.Close()

	var items []*FoodItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (*FoodItem, error) {
	var item FoodItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Price,
		&item.Description,
		&item.Image,
		&item.HealthTags,
		&item.TotalOrders,
		&item.AverageRating,
		&item.ReviewCount,
		&item.SentimentScore,
		&item.IsAvailable,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
