package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// helper для создания валидного заказа с двумя товарами.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:          "order-1",
		CustomerID:  "customer-1",
		ProductIDs:  []string{"product-1", "product-2"},
		TotalAmount: decimal.RequireFromString("25.50"),
		OrderDate:   now,
		CreatedAt:   now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
		want error
	}{
		{
			name: "no customer",
			mut: func(o *domain.Order) {
				o.CustomerID = ""
			},
			want: domain.ErrCustomerRequired,
		},
		{
			name: "no products",
			mut: func(o *domain.Order) {
				o.ProductIDs = nil
			},
			want: domain.ErrEmptyProductList,
		},
		{
			name: "negative total",
			mut: func(o *domain.Order) {
				o.TotalAmount = decimal.RequireFromString("-1")
			},
			want: domain.ErrTotalNegative,
		},
		{
			name: "duplicate product id",
			mut: func(o *domain.Order) {
				o.ProductIDs = []string{"product-1", "product-1"}
			},
			want: domain.ErrDuplicateProductID,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)
			errs := order.ValidateInvariants()
			if len(errs) != 1 || errs[0] != tc.want {
				t.Fatalf("expected [%v], got %v", tc.want, errs)
			}
		})
	}
}
