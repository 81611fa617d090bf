package domain

import "errors"

// Тексты бизнес-ошибок namespaced под API: они отдаются вызывающей стороне
// как есть через GraphQL-ответ, поэтому формулировки фиксированы.
var (
	// ErrNameRequired — обязательное имя не задано.
	ErrNameRequired = errors.New("name is required")
	// ErrEmailRequired — обязательный email не задан.
	ErrEmailRequired = errors.New("email is required")
	// ErrDuplicateEmail — клиент с таким email уже существует.
	ErrDuplicateEmail = errors.New("Email already exists")
	// ErrInvalidPhone — телефон не соответствует допустимому формату.
	ErrInvalidPhone = errors.New("Invalid phone format")
	// ErrInvalidPrice — цена товара должна быть строго положительной.
	ErrInvalidPrice = errors.New("Price must be positive")
	// ErrInvalidStock — остаток товара не может быть отрицательным.
	ErrInvalidStock = errors.New("Stock cannot be negative")
	// ErrEmptyProductList — заказ должен содержать хотя бы один товар.
	ErrEmptyProductList = errors.New("At least one product is required")
	// ErrCustomerNotFound — клиент по переданному идентификатору не найден.
	ErrCustomerNotFound = errors.New("Invalid customer ID")
	// ErrInvalidProductIDs — хотя бы один идентификатор товара не существует.
	ErrInvalidProductIDs = errors.New("One or more product IDs are invalid")
	// ErrCustomerRequired — заказ без идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// ErrTotalNegative — отрицательная сумма заказа.
	ErrTotalNegative = errors.New("total_amount must be non-negative")
	// ErrDuplicateProductID — в заказе продублирован идентификатор товара.
	ErrDuplicateProductID = errors.New("order references the same product twice")
	// ErrProductNotFound возвращается репозиторием, если товар не найден.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается репозиторием, если заказ не найден.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyExists — запись с таким идентификатором уже существует.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsDuplicateEmail проверяет, является ли ошибка нарушением уникальности email.
func IsDuplicateEmail(err error) bool {
	return errors.Is(err, ErrDuplicateEmail)
}
