package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

func seedOrders(t *testing.T, repo domain.OrderRepository) {
	t.Helper()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{ID: "o1", CustomerID: "c1", ProductIDs: []string{"p1"}, TotalAmount: decimal.RequireFromString("10.00"), OrderDate: base, CreatedAt: base},
		{ID: "o2", CustomerID: "c1", ProductIDs: []string{"p1", "p2"}, TotalAmount: decimal.RequireFromString("25.50"), OrderDate: base.AddDate(0, 0, 1), CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "o3", CustomerID: "c2", ProductIDs: []string{"p2"}, TotalAmount: decimal.RequireFromString("15.50"), OrderDate: base.AddDate(0, 0, 2), CreatedAt: base.AddDate(0, 0, 2)},
	}
	for _, order := range orders {
		if err := repo.Create(order); err != nil {
			t.Fatalf("seed order %s: %v", order.ID, err)
		}
	}
}

func TestOrderRepository_GetNotFound(t *testing.T) {
	repo := NewOrderRepository()
	if _, err := repo.Get("missing"); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByCustomerAndProduct(t *testing.T) {
	repo := NewOrderRepository()
	seedOrders(t, repo)

	got, err := repo.List(domain.OrderFilter{CustomerID: "c1"}, domain.Page{OrderBy: "-orderDate"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "o2" || got[1].ID != "o1" {
		t.Fatalf("unexpected result: %+v", got)
	}

	got, err = repo.List(domain.OrderFilter{ProductID: "p2"}, domain.Page{})
	if err != nil || len(got) != 2 {
		t.Fatalf("product filter: got %d orders, err %v", len(got), err)
	}
}

func TestOrderRepository_TotalRange(t *testing.T) {
	repo := NewOrderRepository()
	seedOrders(t, repo)

	min := decimal.RequireFromString("15.00")
	max := decimal.RequireFromString("26.00")
	got, err := repo.List(domain.OrderFilter{TotalMin: &min, TotalMax: &max}, domain.Page{OrderBy: "totalAmount"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "o3" || got[1].ID != "o2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
