package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order агрегирует заказ клиента и ссылки на товары.
type Order struct {
	ID         string
	CustomerID string
	// ProductIDs — набор связанных товаров (минимум один, без дублей).
	ProductIDs []string
	// TotalAmount — сумма цен товаров, зафиксированная в момент создания заказа.
	// Последующие изменения цен на сумму не влияют (snapshot-семантика).
	TotalAmount decimal.Decimal
	// OrderDate — дата заказа; по умолчанию момент создания.
	OrderDate time.Time
	CreatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.ProductIDs) == 0 {
		errs = append(errs, ErrEmptyProductList)
	}
	if o.TotalAmount.IsNegative() {
		errs = append(errs, ErrTotalNegative)
	}

	seen := make(map[string]bool, len(o.ProductIDs))
	for _, id := range o.ProductIDs {
		if seen[id] {
			errs = append(errs, ErrDuplicateProductID)
			break
		}
		seen[id] = true
	}

	return errs
}
