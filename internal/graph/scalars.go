package graph

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal оборачивает decimal.Decimal в скаляр GraphQL `Decimal`.
// На выходе сериализуется как строка (MarshalJSON decimal.Decimal),
// на входе принимает строки и числа.
type Decimal struct {
	decimal.Decimal
}

// NewDecimal создаёт скаляр из доменного значения.
func NewDecimal(value decimal.Decimal) Decimal {
	return Decimal{Decimal: value}
}

// ImplementsGraphQLType сообщает библиотеке имя скаляра.
func (Decimal) ImplementsGraphQLType(name string) bool {
	return name == "Decimal"
}

// UnmarshalGraphQL разбирает значение скаляра из запроса или переменных.
func (d *Decimal) UnmarshalGraphQL(input interface{}) error {
	switch value := input.(type) {
	case string:
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", value, err)
		}
		d.Decimal = parsed
		return nil
	case int32:
		d.Decimal = decimal.NewFromInt32(value)
		return nil
	case float64:
		d.Decimal = decimal.NewFromFloat(value)
		return nil
	default:
		return fmt.Errorf("cannot unmarshal %T into Decimal", input)
	}
}
