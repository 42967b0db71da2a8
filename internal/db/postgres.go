package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/retry"
)

var connectPolicy = retry.Policy{
	MaxAttempts:    5,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     8 * time.Second,
	OnRetry: func(attempt int, err error, backoff time.Duration) {
		slog.Warn("Postgres not reachable, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)
	},
}

// Connect opens a pool against dsn, retrying the first ping with backoff.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := retry.Do(ctx, connectPolicy, retry.Always, func() (*pgxpool.Pool, error) {
		p, err := pgxpool.NewWithConfig(ctx, config.Copy())
		if err != nil {
			return nil, err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	slog.Info("Connected to PostgreSQL")
	return pool, nil
}

// InitSchema creates or updates the tables used by the API.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	statements := []struct {
		name string
		sql  string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				email VARCHAR(255) UNIQUE NOT NULL,
				password VARCHAR(255) NOT NULL,
				role VARCHAR(20) NOT NULL DEFAULT 'customer',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`},
		{"food_items", `
			CREATE TABLE IF NOT EXISTS food_items (
				id UUID PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				category VARCHAR(20) NOT NULL,
				price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
				description VARCHAR(500) NOT NULL,
				image VARCHAR(500) NOT NULL DEFAULT '/images/default-food.jpg',
				health_tags TEXT[] NOT NULL DEFAULT '{}',
				total_orders INTEGER NOT NULL DEFAULT 0,
				average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
				review_count INTEGER NOT NULL DEFAULT 0,
				sentiment_score DOUBLE PRECISION NOT NULL DEFAULT 0
					CHECK (sentiment_score BETWEEN -1 AND 1),
				is_available BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`},
		{"food_items_category_idx", `
			CREATE INDEX IF NOT EXISTS food_items_category_idx ON food_items (category)
		`},
		{"reviews", `
			CREATE TABLE IF NOT EXISTS reviews (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				food_item_id UUID NOT NULL REFERENCES food_items(id) ON DELETE CASCADE,
				rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
				text VARCHAR(1000) NOT NULL DEFAULT '',
				audio_url VARCHAR(500) NOT NULL DEFAULT '',
				voice_transcript TEXT NOT NULL DEFAULT '',
				sentiment_score DOUBLE PRECISION NOT NULL DEFAULT 0
					CHECK (sentiment_score BETWEEN -1 AND 1),
				sentiment_label VARCHAR(10) NOT NULL DEFAULT 'neutral'
					CHECK (sentiment_label IN ('positive', 'neutral', 'negative')),
				score_source VARCHAR(20) NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				CONSTRAINT reviews_user_food_key UNIQUE (user_id, food_item_id)
			)
		`},
		{"reviews_score_source", `
			ALTER TABLE reviews ADD COLUMN IF NOT EXISTS score_source VARCHAR(20) NOT NULL DEFAULT ''
		`},
		{"reviews_food_item_idx", `
			CREATE INDEX IF NOT EXISTS reviews_food_item_idx ON reviews (food_item_id, created_at DESC)
		`},
		{"orders", `
			CREATE TABLE IF NOT EXISTS orders (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				total_amount DOUBLE PRECISION NOT NULL CHECK (total_amount >= 0),
				status VARCHAR(20) NOT NULL DEFAULT 'pending'
					CHECK (status IN ('pending', 'confirmed', 'preparing', 'out_for_delivery', 'delivered', 'cancelled')),
				street VARCHAR(255) NOT NULL,
				city VARCHAR(100) NOT NULL,
				state VARCHAR(100) NOT NULL,
				pincode VARCHAR(20) NOT NULL,
				payment_method VARCHAR(10) NOT NULL DEFAULT 'cod'
					CHECK (payment_method IN ('cod', 'online')),
				delivered_at TIMESTAMPTZ NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`},
		{"orders_user_idx", `
			CREATE INDEX IF NOT EXISTS orders_user_idx ON orders (user_id, created_at DESC)
		`},
		{"orders_created_idx", `
			CREATE INDEX IF NOT EXISTS orders_created_idx ON orders (created_at)
		`},
		// items are snapshots, so food_item_id has no foreign key
		{"order_items", `
			CREATE TABLE IF NOT EXISTS order_items (
				order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
				position SMALLINT NOT NULL,
				food_item_id UUID NOT NULL,
				name VARCHAR(100) NOT NULL,
				category VARCHAR(20) NOT NULL,
				price DOUBLE PRECISION NOT NULL,
				quantity INTEGER NOT NULL CHECK (quantity > 0),
				image VARCHAR(500) NOT NULL DEFAULT '',
				PRIMARY KEY (order_id, position)
			)
		`},
		{"favorites", `
			CREATE TABLE IF NOT EXISTS favorites (
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				food_item_id UUID NOT NULL REFERENCES food_items(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (user_id, food_item_id)
			)
		`},
	}

	for _, s := range statements {
		if _, err := db.Exec(ctx, s.sql); err != nil {
			return fmt.Errorf("init schema (%s): %w", s.name, err)
		}
	}

	slog.Info("Schema initialized")
	return nil
}
