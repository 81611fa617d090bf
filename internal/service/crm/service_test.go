package crm_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/service/crm"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

type fixture struct {
	service   *crm.Service
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	outbox    domain.OutboxRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	outbox := memory.NewOutboxRepository()

	service := crm.NewService(customers, products, orders, loggerForTests(), crm.WithOutbox(outbox))
	return &fixture{
		service:   service,
		customers: customers,
		products:  products,
		orders:    orders,
		outbox:    outbox,
	}
}

func (f *fixture) mustCreateProduct(t *testing.T, name, price string) domain.Product {
	t.Helper()
	product, err := f.service.CreateProduct(crm.ProductInput{
		Name:  name,
		Price: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) mustCreateCustomer(t *testing.T, name, email string) domain.Customer {
	t.Helper()
	customer, _, err := f.service.CreateCustomer(crm.CustomerInput{Name: name, Email: email})
	require.NoError(t, err)
	return customer
}

func TestCreateCustomer_Success(t *testing.T) {
	f := newFixture(t)

	customer, message, err := f.service.CreateCustomer(crm.CustomerInput{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: "+12345678901",
	})
	require.NoError(t, err)
	require.Equal(t, "Customer created successfully", message)
	require.Equal(t, "Alice", customer.Name)
	require.Equal(t, "alice@example.com", customer.Email)
	require.Equal(t, "+12345678901", customer.Phone)
	require.NotEmpty(t, customer.ID)

	stored, err := f.customers.Get(customer.ID)
	require.NoError(t, err)
	require.Equal(t, customer.Email, stored.Email)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCustomer(t, "Alice", "alice@example.com")

	_, _, err := f.service.CreateCustomer(crm.CustomerInput{Name: "Another", Email: "alice@example.com"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	require.EqualError(t, err, "Email already exists")

	count, err := f.customers.Count(domain.CustomerFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, count, "second row must not be persisted")
}

func TestCreateCustomer_InvalidPhone(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.CreateCustomer(crm.CustomerInput{
		Name:  "Bob",
		Email: "bob@example.com",
		Phone: "not-a-phone",
	})
	require.ErrorIs(t, err, domain.ErrInvalidPhone)

	count, err := f.customers.Count(domain.CustomerFilter{})
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestBulkCreateCustomers_PartialFailure(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCustomer(t, "Existing", "dup@example.com")

	created, errs, err := f.service.BulkCreateCustomers([]crm.CustomerInput{
		{Name: "One", Email: "one@example.com"},
		{Name: "Two", Email: "dup@example.com"},
		{Name: "Three", Email: "three@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Equal(t, []string{"Row 2: Email already exists"}, errs)
	require.Equal(t, "One", created[0].Name)
	require.Equal(t, "Three", created[1].Name)

	// Строки разбиваются на успех/ошибку без остатка.
	require.Equal(t, 3, len(created)+len(errs))
}

func TestBulkCreateCustomers_SkipsPhoneValidation(t *testing.T) {
	f := newFixture(t)

	// Текущий контракт bulk-создания не проверяет формат телефона.
	created, errs, err := f.service.BulkCreateCustomers([]crm.CustomerInput{
		{Name: "One", Email: "one@example.com", Phone: "definitely-not-a-phone"},
	})
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, created, 1)
	require.Equal(t, "definitely-not-a-phone", created[0].Phone)
}

func TestBulkCreateCustomers_DuplicateWithinBatch(t *testing.T) {
	f := newFixture(t)

	// Каждая строка проверяется против уже сохранённого состояния,
	// поэтому второй дубль внутри батча отсекается констрейнтом.
	created, errs, err := f.service.BulkCreateCustomers([]crm.CustomerInput{
		{Name: "One", Email: "same@example.com"},
		{Name: "Two", Email: "same@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, []string{"Row 2: Email already exists"}, errs)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateProduct(crm.ProductInput{Name: "Zero", Price: decimal.Zero})
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = f.service.CreateProduct(crm.ProductInput{Name: "Negative", Price: decimal.RequireFromString("-5")})
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	badStock := int32(-1)
	_, err = f.service.CreateProduct(crm.ProductInput{
		Name:  "BadStock",
		Price: decimal.RequireFromString("10"),
		Stock: &badStock,
	})
	require.ErrorIs(t, err, domain.ErrInvalidStock)

	product, err := f.service.CreateProduct(crm.ProductInput{
		Name:  "Laptop",
		Price: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	require.Equal(t, int32(0), product.Stock, "omitted stock defaults to zero")
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newFixture(t)
	customer := f.mustCreateCustomer(t, "Alice", "alice@example.com")
	product := f.mustCreateProduct(t, "Widget", "10.00")

	_, err := f.service.CreateOrder(crm.OrderInput{CustomerID: customer.ID, ProductIDs: nil})
	require.ErrorIs(t, err, domain.ErrEmptyProductList)

	_, err = f.service.CreateOrder(crm.OrderInput{CustomerID: "missing", ProductIDs: []string{product.ID}})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
	require.EqualError(t, err, "Invalid customer ID")

	_, err = f.service.CreateOrder(crm.OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []string{product.ID, "missing-product"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidProductIDs)
	require.EqualError(t, err, "One or more product IDs are invalid")
}

func TestCreateOrder_TotalSnapshot(t *testing.T) {
	f := newFixture(t)
	customer := f.mustCreateCustomer(t, "Alice", "alice@example.com")
	p1 := f.mustCreateProduct(t, "P1", "10.00")
	p2 := f.mustCreateProduct(t, "P2", "15.50")

	order, err := f.service.CreateOrder(crm.OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []string{p1.ID, p2.ID},
	})
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.50")),
		"total = %s", order.TotalAmount)
	require.ElementsMatch(t, []string{p1.ID, p2.ID}, order.ProductIDs)
	require.False(t, order.OrderDate.IsZero())

	stored, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	require.True(t, stored.TotalAmount.Equal(order.TotalAmount))
}

func TestCreateOrder_DuplicateIDsCollapse(t *testing.T) {
	f := newFixture(t)
	customer := f.mustCreateCustomer(t, "Alice", "alice@example.com")
	product := f.mustCreateProduct(t, "Widget", "10.00")

	// Повторённый идентификатор товара схлопывается в одну связь
	// и учитывается в сумме один раз.
	order, err := f.service.CreateOrder(crm.OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []string{product.ID, product.ID},
	})
	require.NoError(t, err)
	require.Equal(t, []string{product.ID}, order.ProductIDs)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("10.00")))
}

func TestCreateOrder_ExplicitOrderDate(t *testing.T) {
	f := newFixture(t)
	customer := f.mustCreateCustomer(t, "Alice", "alice@example.com")
	product := f.mustCreateProduct(t, "Widget", "10.00")

	orderDate := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	order, err := f.service.CreateOrder(crm.OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []string{product.ID},
		OrderDate:  &orderDate,
	})
	require.NoError(t, err)
	require.True(t, order.OrderDate.Equal(orderDate))
}

func TestQueries_AreIdempotent(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCustomer(t, "Alice", "alice@example.com")
	f.mustCreateCustomer(t, "Bob", "bob@example.com")

	first, err := f.service.ListCustomers(domain.CustomerFilter{}, domain.Page{})
	require.NoError(t, err)
	second, err := f.service.ListCustomers(domain.CustomerFilter{}, domain.Page{})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMutations_EnqueueOutboxEvents(t *testing.T) {
	f := newFixture(t)
	customer := f.mustCreateCustomer(t, "Alice", "alice@example.com")
	product := f.mustCreateProduct(t, "Widget", "10.00")
	_, err := f.service.CreateOrder(crm.OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []string{product.ID},
	})
	require.NoError(t, err)

	pending, err := f.outbox.PullPending(10)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	types := make([]string, 0, len(pending))
	for _, msg := range pending {
		types = append(types, msg.EventType)
		require.True(t, json.Valid(msg.Payload))
	}
	require.ElementsMatch(t,
		[]string{crm.EventCustomerCreated, crm.EventProductCreated, crm.EventOrderCreated},
		types)
}
