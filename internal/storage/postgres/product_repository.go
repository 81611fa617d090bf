package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

var productOrderColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, stock, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		product.ID, product.Name, product.Price, product.Stock, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *productRepository) Get(id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&product.ID, &product.Name, &product.Price, &product.Stock, &product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetByIDs(ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("select products by ids: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *productRepository) List(filter domain.ProductFilter, page domain.Page) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	builder := productConds(filter)
	query := `
		SELECT id, name, price, stock, created_at
		FROM products
	` + builder.where() + orderClause(page, productOrderColumns, "created_at ASC, id ASC")
	window, args := windowClause(page, builder.args)

	rows, err := r.db.QueryContext(ctx, query+window, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *productRepository) Count(filter domain.ProductFilter) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	builder := productConds(filter)

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products`+builder.where(), builder.args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Price, &product.Stock, &product.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func productConds(filter domain.ProductFilter) *condBuilder {
	builder := &condBuilder{}
	if filter.NameContains != "" {
		builder.add("name ILIKE '%%' || $%d || '%%'", filter.NameContains)
	}
	if filter.PriceMin != nil {
		builder.add("price >= $%d", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		builder.add("price <= $%d", *filter.PriceMax)
	}
	if filter.StockMin != nil {
		builder.add("stock >= $%d", *filter.StockMin)
	}
	if filter.StockMax != nil {
		builder.add("stock <= $%d", *filter.StockMax)
	}
	return builder
}

var _ domain.ProductRepository = (*productRepository)(nil)
