package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

func seedProducts(t *testing.T, repo domain.ProductRepository) {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{ID: "p1", Name: "Cheap Widget", Price: decimal.RequireFromString("5.00"), Stock: 100, CreatedAt: base},
		{ID: "p2", Name: "Medium Widget", Price: decimal.RequireFromString("25.50"), Stock: 10, CreatedAt: base.AddDate(0, 1, 0)},
		{ID: "p3", Name: "Premium Gadget", Price: decimal.RequireFromString("199.99"), Stock: 0, CreatedAt: base.AddDate(0, 2, 0)},
	}
	for _, product := range products {
		if err := repo.Create(product); err != nil {
			t.Fatalf("seed product %s: %v", product.ID, err)
		}
	}
}

func TestProductRepository_GetByIDsSkipsMissing(t *testing.T) {
	repo := NewProductRepository()
	seedProducts(t, repo)

	got, err := repo.GetByIDs([]string{"p1", "missing", "p3", "p1"})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Fatalf("unexpected result: %+v", got)
	}

	if _, err := repo.Get("missing"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_PriceAndStockFilters(t *testing.T) {
	repo := NewProductRepository()
	seedProducts(t, repo)

	min := decimal.RequireFromString("10")
	max := decimal.RequireFromString("100")
	got, err := repo.List(domain.ProductFilter{PriceMin: &min, PriceMax: &max}, domain.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Medium Widget" {
		t.Fatalf("unexpected price band result: %+v", got)
	}

	stockMin := int32(1)
	count, err := repo.Count(domain.ProductFilter{StockMin: &stockMin})
	if err != nil || count != 2 {
		t.Fatalf("stock filter count = (%d, %v), want (2, nil)", count, err)
	}

	got, err = repo.List(domain.ProductFilter{NameContains: "widget"}, domain.Page{})
	if err != nil || len(got) != 2 {
		t.Fatalf("name filter: got %d products, err %v", len(got), err)
	}
}

func TestProductRepository_OrderByPrice(t *testing.T) {
	repo := NewProductRepository()
	seedProducts(t, repo)

	got, err := repo.List(domain.ProductFilter{}, domain.Page{OrderBy: "-price", Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p3" || got[1].ID != "p2" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
