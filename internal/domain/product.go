package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет товар каталога.
type Product struct {
	ID   string
	Name string
	// Price — цена в виде точного десятичного числа, строго больше нуля.
	Price decimal.Decimal
	// Stock — остаток на складе, не может быть отрицательным. По умолчанию 0.
	Stock     int32
	CreatedAt time.Time
}

// ValidatePrice проверяет, что цена строго положительная.
func ValidatePrice(price decimal.Decimal) bool {
	return price.IsPositive()
}

// ValidateStock проверяет, что остаток неотрицательный.
func ValidateStock(stock int32) bool {
	return stock >= 0
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if !ValidatePrice(p.Price) {
		errs = append(errs, ErrInvalidPrice)
	}
	if !ValidateStock(p.Stock) {
		errs = append(errs, ErrInvalidStock)
	}

	return errs
}
