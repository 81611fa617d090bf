package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

func TestCustomerRepository_PostgresFlow(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)

	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      "Alice",
		Email:     "alice@example.com",
		Phone:     "+12345678901",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := repo.Create(customer); err != nil {
		t.Fatalf("create customer: %v", err)
	}

	loaded, err := repo.Get(customer.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if loaded.Email != customer.Email || loaded.Phone != customer.Phone {
		t.Fatalf("loaded customer mismatch: %+v", loaded)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}

	// Уникальность email не зависит от регистра.
	duplicate := domain.Customer{
		ID:        uuid.NewString(),
		Name:      "Another Alice",
		Email:     "ALICE@example.com",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(duplicate); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	exists, err := repo.EmailExists("Alice@Example.COM")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Fatal("expected email to exist regardless of case")
	}
}

func TestCustomerRepository_PostgresListAndCount(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 5; i++ {
		phone := ""
		if i%2 == 0 {
			phone = "555-123-4567"
		}
		customer := domain.Customer{
			ID:        uuid.NewString(),
			Name:      fmt.Sprintf("Customer %d", i),
			Email:     fmt.Sprintf("customer%d@example.com", i),
			Phone:     phone,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(customer); err != nil {
			t.Fatalf("seed customer %d: %v", i, err)
		}
	}

	hasPhone := true
	filter := domain.CustomerFilter{HasPhone: &hasPhone}

	count, err := repo.Count(filter)
	if err != nil {
		t.Fatalf("count customers: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 customers with phone, got %d", count)
	}

	page := domain.Page{OrderBy: "-name", Limit: 2, Offset: 1}
	customers, err := repo.List(filter, page)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected page of 2 customers, got %d", len(customers))
	}
	if customers[0].Name != "Customer 2" || customers[1].Name != "Customer 0" {
		t.Fatalf("unexpected page order: %q, %q", customers[0].Name, customers[1].Name)
	}

	cutoff := base.Add(2 * time.Minute)
	recent, err := repo.List(domain.CustomerFilter{CreatedAfter: &cutoff}, domain.Page{OrderBy: "createdAt"})
	if err != nil {
		t.Fatalf("list recent customers: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 recent customers, got %d", len(recent))
	}
}
