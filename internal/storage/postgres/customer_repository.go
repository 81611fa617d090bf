package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

var customerOrderColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(customer domain.Customer) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.CreatedAt,
	)
	if err != nil {
		// Уникальный индекс по LOWER(email) страхует от гонки между
		// проверкой EmailExists и вставкой.
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

func (r *customerRepository) Get(id string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) EmailExists(email string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM customers WHERE LOWER(email) = LOWER($1))
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *customerRepository) List(filter domain.CustomerFilter, page domain.Page) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	builder := customerConds(filter)
	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
	` + builder.where() + orderClause(page, customerOrderColumns, "created_at ASC, id ASC")
	window, args := windowClause(page, builder.args)

	rows, err := r.db.QueryContext(ctx, query+window, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) Count(filter domain.CustomerFilter) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	builder := customerConds(filter)

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers`+builder.where(), builder.args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

func customerConds(filter domain.CustomerFilter) *condBuilder {
	builder := &condBuilder{}
	if filter.NameContains != "" {
		builder.add("name ILIKE '%%' || $%d || '%%'", filter.NameContains)
	}
	if filter.EmailContains != "" {
		builder.add("email ILIKE '%%' || $%d || '%%'", filter.EmailContains)
	}
	if filter.CreatedAfter != nil {
		builder.add("created_at >= $%d", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		builder.add("created_at <= $%d", *filter.CreatedBefore)
	}
	if filter.HasPhone != nil {
		if *filter.HasPhone {
			builder.addRaw("phone <> ''")
		} else {
			builder.addRaw("phone = ''")
		}
	}
	return builder
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
