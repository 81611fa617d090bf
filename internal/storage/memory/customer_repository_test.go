package memory

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

func seedCustomers(t *testing.T, repo domain.CustomerRepository) {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	customers := []domain.Customer{
		{ID: "c1", Name: "Alice", Email: "alice@example.com", Phone: "+12345678901", CreatedAt: base},
		{ID: "c2", Name: "Bob", Email: "bob@example.com", CreatedAt: base.AddDate(0, 1, 0)},
		{ID: "c3", Name: "Carol", Email: "carol@shop.io", Phone: "123-456-7890", CreatedAt: base.AddDate(0, 2, 0)},
	}
	for _, customer := range customers {
		if err := repo.Create(customer); err != nil {
			t.Fatalf("seed customer %s: %v", customer.ID, err)
		}
	}
}

func TestCustomerRepository_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := NewCustomerRepository()
	seedCustomers(t, repo)

	err := repo.Create(domain.Customer{ID: "c4", Name: "Dup", Email: "ALICE@example.com"})
	if err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	exists, err := repo.EmailExists("Alice@Example.Com")
	if err != nil || !exists {
		t.Fatalf("EmailExists = (%v, %v), want (true, nil)", exists, err)
	}
}

func TestCustomerRepository_ListFilterAndOrder(t *testing.T) {
	repo := NewCustomerRepository()
	seedCustomers(t, repo)

	hasPhone := true
	got, err := repo.List(domain.CustomerFilter{HasPhone: &hasPhone}, domain.Page{OrderBy: "-name"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Carol" || got[1].Name != "Alice" {
		t.Fatalf("unexpected result: %+v", got)
	}

	got, err = repo.List(domain.CustomerFilter{EmailContains: "EXAMPLE.COM"}, domain.Page{})
	if err != nil || len(got) != 2 {
		t.Fatalf("email filter: got %d customers, err %v", len(got), err)
	}

	count, err := repo.Count(domain.CustomerFilter{})
	if err != nil || count != 3 {
		t.Fatalf("count = (%d, %v), want (3, nil)", count, err)
	}
}

func TestCustomerRepository_Paging(t *testing.T) {
	repo := NewCustomerRepository()
	seedCustomers(t, repo)

	got, err := repo.List(domain.CustomerFilter{}, domain.Page{OrderBy: "createdAt", Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c2" || got[1].ID != "c3" {
		t.Fatalf("unexpected page: %+v", got)
	}

	got, err = repo.List(domain.CustomerFilter{}, domain.Page{Offset: 10})
	if err != nil || len(got) != 0 {
		t.Fatalf("offset past end must return empty, got %+v err %v", got, err)
	}
}
