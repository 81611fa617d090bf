package crm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
)

// Имена мутаций для метрик.
const (
	mutationCreateCustomer      = "createCustomer"
	mutationBulkCreateCustomers = "bulkCreateCustomers"
	mutationCreateProduct       = "createProduct"
	mutationCreateOrder         = "createOrder"
)

// Типы доменных событий, публикуемых через outbox.
const (
	EventCustomerCreated = "customer.created"
	EventProductCreated  = "product.created"
	EventOrderCreated    = "order.created"

	aggregateCustomer = "customer"
	aggregateProduct  = "product"
	aggregateOrder    = "order"
)

// customerCreatedMessage подтверждает успешное создание клиента.
const customerCreatedMessage = "Customer created successfully"

// Service реализует прикладную логику CRM: валидацию и создание сущностей
// поверх доменных репозиториев, а также списочные выборки.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	// outbox опционален: без него события просто не публикуются.
	outbox  domain.OutboxRepository
	metrics *metrics.CRMMetrics
	logger  *log.Entry
	// now подменяется в тестах.
	now func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithOutbox подключает transactional outbox для доменных событий.
func WithOutbox(outbox domain.OutboxRepository) Option {
	return func(s *Service) {
		s.outbox = outbox
	}
}

// WithMetrics подключает метрики мутаций.
func WithMetrics(m *metrics.CRMMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService конструирует сервис с зависимостями.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	logger *log.Entry,
	options ...Option,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "crm-service")
	}
	s := &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// CustomerInput — аргументы создания клиента.
type CustomerInput struct {
	Name  string
	Email string
	// Phone опционален; пустая строка означает "не задан".
	Phone string
}

// ProductInput — аргументы создания товара.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
	// Stock опционален; nil означает значение по умолчанию 0.
	Stock *int32
}

// OrderInput — аргументы создания заказа.
type OrderInput struct {
	CustomerID string
	ProductIDs []string
	// OrderDate опционален; nil означает текущее время.
	OrderDate *time.Time
}

// CreateCustomer валидирует вход и сохраняет нового клиента.
// Возвращает созданного клиента и подтверждающее сообщение.
func (s *Service) CreateCustomer(in CustomerInput) (domain.Customer, string, error) {
	started := s.now()

	customer, err := s.createCustomerRecord(in, true)
	s.recordMutation(mutationCreateCustomer, started, err)
	if err != nil {
		return domain.Customer{}, "", err
	}

	return customer, customerCreatedMessage, nil
}

// BulkCreateCustomers обрабатывает записи независимо и по порядку.
// Невалидные строки пропускаются, ошибки собираются в виде
// "Row {index}: {message}" с нумерацией от единицы; отката созданных
// строк при последующих ошибках не происходит.
func (s *Service) BulkCreateCustomers(inputs []CustomerInput) ([]domain.Customer, []string, error) {
	started := s.now()

	created := make([]domain.Customer, 0, len(inputs))
	errorsList := make([]string, 0)

	for idx, in := range inputs {
		// Формат телефона в bulk-режиме сознательно не проверяется:
		// так ведёт себя действующий контракт, менять без владельцев API нельзя.
		customer, err := s.createCustomerRecord(in, false)
		if err != nil {
			errorsList = append(errorsList, fmt.Sprintf("Row %d: %s", idx+1, err.Error()))
			continue
		}
		created = append(created, customer)
	}

	s.metrics.RecordBulkRows(len(created), len(errorsList))
	s.recordMutation(mutationBulkCreateCustomers, started, nil)

	return created, errorsList, nil
}

func (s *Service) createCustomerRecord(in CustomerInput, validatePhone bool) (domain.Customer, error) {
	if in.Name == "" {
		return domain.Customer{}, domain.ErrNameRequired
	}
	if in.Email == "" {
		return domain.Customer{}, domain.ErrEmailRequired
	}

	exists, err := s.customers.EmailExists(in.Email)
	if err != nil {
		s.logger.WithError(err).WithField("email", in.Email).Error("failed to check email uniqueness")
		return domain.Customer{}, fmt.Errorf("check email uniqueness: %w", err)
	}
	if exists {
		return domain.Customer{}, domain.ErrDuplicateEmail
	}

	if validatePhone && !domain.ValidatePhone(in.Phone) {
		return domain.Customer{}, domain.ErrInvalidPhone
	}

	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: s.now(),
	}

	// Констрейнт хранилища закрывает гонку двух конкурентных созданий
	// с одинаковым email: репозиторий вернёт ErrDuplicateEmail.
	if err := s.customers.Create(customer); err != nil {
		if domain.IsDuplicateEmail(err) {
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		s.logger.WithError(err).Error("failed to create customer")
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.enqueueEvent(aggregateCustomer, customer.ID, EventCustomerCreated, customer)

	return customer, nil
}

// CreateProduct валидирует вход и сохраняет новый товар.
func (s *Service) CreateProduct(in ProductInput) (domain.Product, error) {
	started := s.now()

	product, err := s.createProduct(in)
	s.recordMutation(mutationCreateProduct, started, err)
	return product, err
}

func (s *Service) createProduct(in ProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, domain.ErrNameRequired
	}
	if !domain.ValidatePrice(in.Price) {
		return domain.Product{}, domain.ErrInvalidPrice
	}

	var stock int32
	if in.Stock != nil {
		stock = *in.Stock
	}
	if !domain.ValidateStock(stock) {
		return domain.Product{}, domain.ErrInvalidStock
	}

	product := domain.Product{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Price:     in.Price,
		Stock:     stock,
		CreatedAt: s.now(),
	}

	if err := s.products.Create(product); err != nil {
		s.logger.WithError(err).Error("failed to create product")
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.enqueueEvent(aggregateProduct, product.ID, EventProductCreated, product)

	return product, nil
}

// CreateOrder валидирует ссылки, считает сумму по текущим ценам и сохраняет заказ.
// Сумма фиксируется один раз: последующие изменения цен её не меняют.
func (s *Service) CreateOrder(in OrderInput) (domain.Order, error) {
	started := s.now()

	order, err := s.createOrder(in)
	s.recordMutation(mutationCreateOrder, started, err)
	return order, err
}

func (s *Service) createOrder(in OrderInput) (domain.Order, error) {
	if len(in.ProductIDs) == 0 {
		return domain.Order{}, domain.ErrEmptyProductList
	}

	if _, err := s.customers.Get(in.CustomerID); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, domain.ErrCustomerNotFound
		}
		s.logger.WithError(err).WithField("customer_id", in.CustomerID).Error("failed to load customer")
		return domain.Order{}, fmt.Errorf("load customer: %w", err)
	}

	// Повторённый идентификатор схлопывается в один: связь заказ-товар
	// является множеством. Несуществующий — ошибка валидации.
	uniqueIDs := uniqueStrings(in.ProductIDs)
	products, err := s.products.GetByIDs(uniqueIDs)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve order products")
		return domain.Order{}, fmt.Errorf("resolve products: %w", err)
	}
	if len(products) != len(uniqueIDs) {
		return domain.Order{}, domain.ErrInvalidProductIDs
	}

	total := decimal.Zero
	productIDs := make([]string, 0, len(products))
	for _, product := range products {
		total = total.Add(product.Price)
		productIDs = append(productIDs, product.ID)
	}

	now := s.now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = in.OrderDate.UTC()
	}

	order := domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  in.CustomerID,
		ProductIDs:  productIDs,
		TotalAmount: total,
		OrderDate:   orderDate,
		CreatedAt:   now,
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, errs[0]
	}

	if err := s.orders.Create(order); err != nil {
		s.logger.WithError(err).Error("failed to create order")
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.enqueueEvent(aggregateOrder, order.ID, EventOrderCreated, order)

	return order, nil
}

// Customer возвращает клиента по идентификатору.
func (s *Service) Customer(id string) (domain.Customer, error) {
	return s.customers.Get(id)
}

// ProductsByIDs возвращает существующие товары по набору идентификаторов.
func (s *Service) ProductsByIDs(ids []string) ([]domain.Product, error) {
	return s.products.GetByIDs(ids)
}

// ListCustomers возвращает клиентов по фильтру; семантика делегируется хранилищу.
func (s *Service) ListCustomers(filter domain.CustomerFilter, page domain.Page) ([]domain.Customer, error) {
	return s.customers.List(filter, page)
}

// CountCustomers возвращает размер выборки клиентов под фильтром.
func (s *Service) CountCustomers(filter domain.CustomerFilter) (int, error) {
	return s.customers.Count(filter)
}

// ListProducts возвращает товары по фильтру.
func (s *Service) ListProducts(filter domain.ProductFilter, page domain.Page) ([]domain.Product, error) {
	return s.products.List(filter, page)
}

// CountProducts возвращает размер выборки товаров под фильтром.
func (s *Service) CountProducts(filter domain.ProductFilter) (int, error) {
	return s.products.Count(filter)
}

// ListOrders возвращает заказы по фильтру.
func (s *Service) ListOrders(filter domain.OrderFilter, page domain.Page) ([]domain.Order, error) {
	return s.orders.List(filter, page)
}

// CountOrders возвращает размер выборки заказов под фильтром.
func (s *Service) CountOrders(filter domain.OrderFilter) (int, error) {
	return s.orders.Count(filter)
}

// enqueueEvent ставит доменное событие в outbox. Ошибка постановки не
// влияет на результат мутации: публикация асинхронная и best-effort.
func (s *Service) enqueueEvent(aggregateType, aggregateID, eventType string, payload any) {
	if s.outbox == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("failed to marshal event payload")
		return
	}

	if _, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       body,
	}); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event":        eventType,
			"aggregate_id": aggregateID,
		}).Warn("failed to enqueue outbox event")
		return
	}

	s.metrics.RecordOutboxEnqueued()
}

func (s *Service) recordMutation(mutation string, started time.Time, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case isValidationError(err):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeError
	}
	s.metrics.RecordMutation(mutation, outcome, s.now().Sub(started))
}

// isValidationError отличает бизнес-отказ от инфраструктурной ошибки.
func isValidationError(err error) bool {
	for _, candidate := range []error{
		domain.ErrNameRequired,
		domain.ErrEmailRequired,
		domain.ErrDuplicateEmail,
		domain.ErrInvalidPhone,
		domain.ErrInvalidPrice,
		domain.ErrInvalidStock,
		domain.ErrEmptyProductList,
		domain.ErrCustomerNotFound,
		domain.ErrInvalidProductIDs,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		result = append(result, value)
	}
	return result
}
