package order

import (
	"context"
	"fmt"
	"time"

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

const selectOrder = `
	SELECT
		o.id::text,
		o.user_id::text,
		COALESCE(u.name, ''),
		COALESCE(u.email, ''),
		o.total_amount,
		o.status,
		o.street,
		o.city,
		o.state,
		o.pincode,
		o.payment_method,
		o.delivered_at,
		o.created_at,
		o.updated_at
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
`

// --------------------------------------------------
// Create an order with its items in one transaction
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id,
			user_id,
			total_amount,
			status,
			street,
			city,
			state,
			pincode,
			payment_method,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		o.ID,
		o.UserID,
		o.TotalAmount,
		string(o.Status),
		o.DeliveryAddress.Street,
		o.DeliveryAddress.City,
		o.DeliveryAddress.State,
		o.DeliveryAddress.Pincode,
		string(o.PaymentMethod),
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, item := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, position, food_item_id, name, category, price, quantity, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, o.ID, i, item.FoodItemID, item.Name, item.Category, item.Price, item.Quantity, item.Image)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	orders, err := r.query(ctx, selectOrder+` WHERE o.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return orders[0], nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return r.query(ctx, selectOrder+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
}

// --------------------------------------------------
// Admin listing with optional status filter
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Order, int, error) {
	where := "TRUE"
	var args []any
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = "o.status = $1"
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders o WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(`%s WHERE %s ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`,
		selectOrder, where, len(args)-1, len(args))

	orders, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, o *Order) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $2, delivered_at = $3, updated_at = $4
		WHERE id = $1
	`, o.ID, string(o.Status), o.DeliveredAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------
func (r *PostgresRepository) Trending(ctx context.Context, since time.Time, limit int) ([]ItemCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.food_item_id::text, sum(oi.quantity)::int
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1
		GROUP BY oi.food_item_id
		ORDER BY 2 DESC, 1
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query trending: %w", err)
	}
	defer rows.Close()

	out := []ItemCount{}
	for rows.Next() {
		var c ItemCount
		if err := rows.Scan(&c.FoodItemID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan trending: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Stats(ctx context.Context, since time.Time) (*Stats, error) {
	stats := &Stats{ByStatus: map[Status]int{}}

	err := r.db.QueryRow(ctx, `
		SELECT
			count(*),
			COALESCE(sum(total_amount) FILTER (WHERE status <> 'cancelled'), 0)::float8
		FROM orders
	`).Scan(&stats.TotalOrders, &stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("order totals: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT status, count(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan orders by status: %w", err)
		}
		stats.ByStatus[Status(status)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}

	stats.RevenueByDay, err = collect(ctx, r.db, `
		SELECT
			to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			sum(total_amount)::float8,
			count(*)
		FROM orders
		WHERE created_at >= $1 AND status <> 'cancelled'
		GROUP BY day
		ORDER BY day
	`, []any{since}, func(row pgx.CollectableRow) (DayRevenue, error) {
		var d DayRevenue
		err := row.Scan(&d.Date, &d.Revenue, &d.Orders)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}

	stats.ByCategory, err = collect(ctx, r.db, `
		SELECT category, sum(quantity)::int, sum(price * quantity)::float8
		FROM order_items
		GROUP BY category
		ORDER BY 2 DESC, 1
	`, nil, func(row pgx.CollectableRow) (CategoryOrders, error) {
		var c CategoryOrders
		err := row.Scan(&c.Category, &c.TotalOrders, &c.Revenue)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("orders by category: %w", err)
	}

	return stats, nil
}

func collect[T any](ctx context.Context, db *pgxpool.Pool, query string, args []any, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// query loads orders and then their items.
func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Order, error) {
		var (
			o       Order
			status  string
			payment string
		)
		err := row.Scan(
			&o.ID,
			&o.UserID,
			&o.UserName,
			&o.UserEmail,
			&o.TotalAmount,
			&status,
			&o.DeliveryAddress.Street,
			&o.DeliveryAddress.City,
			&o.DeliveryAddress.State,
			&o.DeliveryAddress.Pincode,
			&payment,
			&o.DeliveredAt,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		o.Status = Status(status)
		o.PaymentMethod = PaymentMethod(payment)
		o.Items = []Item{}
		return &o, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	if len(orders) == 0 {
		return []*Order{}, nil
	}

	byID := make(map[string]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT order_id::text, food_item_id::text, name, category, price, quantity, image
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID string
			item    Item
		)
		if err := itemRows.Scan(
			&orderID,
			&item.FoodItemID,
			&item.Name,
			&item.Category,
			&item.Price,
			&item.Quantity,
			&item.Image,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	return orders, nil
}
