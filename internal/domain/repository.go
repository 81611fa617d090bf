package domain

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента. Возвращает ErrDuplicateEmail,
	// если email уже занят (уникальность без учёта регистра).
	Create(customer Customer) error
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(id string) (Customer, error)
	// EmailExists проверяет занятость email. Используется прикладной
	// валидацией; констрейнт хранилища остаётся страховкой от гонок.
	EmailExists(email string) (bool, error)
	// List возвращает клиентов по фильтру с сортировкой и пагинацией.
	List(filter CustomerFilter, page Page) ([]Customer, error)
	// Count возвращает количество клиентов, подходящих под фильтр.
	Count(filter CustomerFilter) (int, error)
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет новый товар.
	Create(product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id string) (Product, error)
	// GetByIDs возвращает существующие товары по набору идентификаторов.
	// Отсутствующие идентификаторы просто не попадают в результат.
	GetByIDs(ids []string) ([]Product, error)
	List(filter ProductFilter, page Page) ([]Product, error)
	Count(filter ProductFilter) (int, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ вместе со связями заказ-товар.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(id string) (Order, error)
	List(filter OrderFilter, page Page) ([]Order, error)
	Count(filter OrderFilter) (int, error)
}
