package favorite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Toggle(ctx context.Context, userID, foodItemID string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin favorite tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND food_item_id = $2`,
		userID, foodItemID,
	)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}

	added := tag.RowsAffected() == 0
	if added {
		_, err = tx.Exec(ctx, `
			INSERT INTO favorites (user_id, food_item_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, userID, foodItemID)
		if err != nil {
			return false, fmt.Errorf("add favorite: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit favorite: %w", err)
	}
	return added, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT food_item_id::text
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at, food_item_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan favorites: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
