package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

var orderOrderColumns = map[string]string{
	"orderDate":   "order_date",
	"totalAmount": "total_amount",
	"createdAt":   "created_at",
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, total_amount, order_date, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		order.ID, order.CustomerID, order.TotalAmount, order.OrderDate, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, productID := range order.ProductIDs {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id)
			VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, order.ID, productID); err != nil {
			return fmt.Errorf("insert order product link: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}

	return nil
}

func (r *orderRepository) Get(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, total_amount, order_date, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerID, &order.TotalAmount, &order.OrderDate, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	productIDs, err := r.loadProductIDs(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.ProductIDs = productIDs

	return order, nil
}

func (r *orderRepository) List(filter domain.OrderFilter, page domain.Page) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	builder := orderConds(filter)
	query := `
		SELECT id, customer_id, total_amount, order_date, created_at
		FROM orders
	` + builder.where() + orderClause(page, orderOrderColumns, "created_at ASC, id ASC")
	window, args := windowClause(page, builder.args)

	rows, err := r.db.QueryContext(ctx, query+window, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.TotalAmount, &order.OrderDate, &order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		productIDs, err := r.loadProductIDs(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].ProductIDs = productIDs
	}

	return orders, nil
}

func (r *orderRepository) Count(filter domain.OrderFilter) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	builder := orderConds(filter)

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders`+builder.where(), builder.args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) loadProductIDs(ctx context.Context, orderID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id
		FROM order_products
		WHERE order_id = $1
		ORDER BY product_id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order product ids: %w", err)
	}

	return ids, nil
}

func orderConds(filter domain.OrderFilter) *condBuilder {
	builder := &condBuilder{}
	if filter.CustomerID != "" {
		builder.add("customer_id = $%d", filter.CustomerID)
	}
	if filter.ProductID != "" {
		builder.add("id IN (SELECT order_id FROM order_products WHERE product_id = $%d)", filter.ProductID)
	}
	if filter.TotalMin != nil {
		builder.add("total_amount >= $%d", *filter.TotalMin)
	}
	if filter.TotalMax != nil {
		builder.add("total_amount <= $%d", *filter.TotalMax)
	}
	if filter.PlacedAfter != nil {
		builder.add("order_date >= $%d", *filter.PlacedAfter)
	}
	if filter.PlacedBefore != nil {
		builder.add("order_date <= $%d", *filter.PlacedBefore)
	}
	return builder
}

var _ domain.OrderRepository = (*orderRepository)(nil)
