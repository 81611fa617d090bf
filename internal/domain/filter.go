package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Page описывает сортировку и окно выборки для списочных запросов.
// Семантика фильтрации и сортировки делегируется хранилищу.
type Page struct {
	// OrderBy — имя поля сортировки; префикс "-" означает убывание.
	// Пустое значение — естественный порядок хранилища.
	OrderBy string
	// Limit ограничивает размер выборки; значения <= 0 означают "без лимита".
	Limit int
	// Offset — смещение от начала выборки.
	Offset int
}

// CustomerFilter — предикаты для выборки клиентов. Нулевые значения игнорируются.
type CustomerFilter struct {
	// NameContains — подстрока имени без учёта регистра.
	NameContains string
	// EmailContains — подстрока email без учёта регистра.
	EmailContains string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	// HasPhone фильтрует по наличию/отсутствию телефона.
	HasPhone *bool
}

// ProductFilter — предикаты для выборки товаров.
type ProductFilter struct {
	NameContains string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	StockMin     *int32
	StockMax     *int32
}

// OrderFilter — предикаты для выборки заказов.
type OrderFilter struct {
	CustomerID string
	// ProductID отбирает заказы, содержащие данный товар.
	ProductID    string
	TotalMin     *decimal.Decimal
	TotalMax     *decimal.Decimal
	PlacedAfter  *time.Time
	PlacedBefore *time.Time
}
