package graph

import (
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/service/crm"
)

// CustomerResolver отдаёт поля клиента.
type CustomerResolver struct {
	customer domain.Customer
}

func (r *CustomerResolver) ID() graphql.ID {
	return graphql.ID(r.customer.ID)
}

func (r *CustomerResolver) Name() string {
	return r.customer.Name
}

func (r *CustomerResolver) Email() string {
	return r.customer.Email
}

func (r *CustomerResolver) Phone() *string {
	if r.customer.Phone == "" {
		return nil
	}
	phone := r.customer.Phone
	return &phone
}

func (r *CustomerResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.customer.CreatedAt}
}

// ProductResolver отдаёт поля товара.
type ProductResolver struct {
	product domain.Product
}

func (r *ProductResolver) ID() graphql.ID {
	return graphql.ID(r.product.ID)
}

func (r *ProductResolver) Name() string {
	return r.product.Name
}

func (r *ProductResolver) Price() Decimal {
	return NewDecimal(r.product.Price)
}

func (r *ProductResolver) Stock() int32 {
	return r.product.Stock
}

func (r *ProductResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.product.CreatedAt}
}

// OrderResolver отдаёт поля заказа; связанные сущности
// загружаются через сервис только при запросе.
type OrderResolver struct {
	svc   *crm.Service
	order domain.Order
}

func (r *OrderResolver) ID() graphql.ID {
	return graphql.ID(r.order.ID)
}

func (r *OrderResolver) Customer() (*CustomerResolver, error) {
	customer, err := r.svc.Customer(r.order.CustomerID)
	if err != nil {
		return nil, err
	}
	return &CustomerResolver{customer: customer}, nil
}

func (r *OrderResolver) Products() ([]*ProductResolver, error) {
	products, err := r.svc.ProductsByIDs(r.order.ProductIDs)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*ProductResolver, 0, len(products))
	for _, product := range products {
		resolvers = append(resolvers, &ProductResolver{product: product})
	}
	return resolvers, nil
}

func (r *OrderResolver) TotalAmount() Decimal {
	return NewDecimal(r.order.TotalAmount)
}

func (r *OrderResolver) OrderDate() graphql.Time {
	return graphql.Time{Time: r.order.OrderDate}
}

// CreateCustomerPayloadResolver — результат createCustomer.
type CreateCustomerPayloadResolver struct {
	customer domain.Customer
	message  string
}

func (r *CreateCustomerPayloadResolver) Customer() *CustomerResolver {
	return &CustomerResolver{customer: r.customer}
}

func (r *CreateCustomerPayloadResolver) Message() string {
	return r.message
}

// BulkCreateCustomersPayloadResolver — результат bulkCreateCustomers:
// созданные клиенты и построчные ошибки.
type BulkCreateCustomersPayloadResolver struct {
	customers []domain.Customer
	errors    []string
}

func (r *BulkCreateCustomersPayloadResolver) Customers() []*CustomerResolver {
	resolvers := make([]*CustomerResolver, 0, len(r.customers))
	for _, customer := range r.customers {
		resolvers = append(resolvers, &CustomerResolver{customer: customer})
	}
	return resolvers
}

func (r *BulkCreateCustomersPayloadResolver) Errors() []string {
	return r.errors
}

// CreateProductPayloadResolver — результат createProduct.
type CreateProductPayloadResolver struct {
	product domain.Product
}

func (r *CreateProductPayloadResolver) Product() *ProductResolver {
	return &ProductResolver{product: r.product}
}

// CreateOrderPayloadResolver — результат createOrder.
type CreateOrderPayloadResolver struct {
	svc   *crm.Service
	order domain.Order
}

func (r *CreateOrderPayloadResolver) Order() *OrderResolver {
	return &OrderResolver{svc: r.svc, order: r.order}
}

// CustomerEdgeResolver и коллеги — relay-обёртки над сущностями.
type CustomerEdgeResolver struct {
	node   *CustomerResolver
	cursor string
}

func (r *CustomerEdgeResolver) Node() *CustomerResolver { return r.node }
func (r *CustomerEdgeResolver) Cursor() string          { return r.cursor }

type CustomerConnectionResolver struct {
	edges    []*CustomerEdgeResolver
	pageInfo *PageInfoResolver
	total    int32
}

func (r *CustomerConnectionResolver) Edges() []*CustomerEdgeResolver { return r.edges }
func (r *CustomerConnectionResolver) PageInfo() *PageInfoResolver    { return r.pageInfo }
func (r *CustomerConnectionResolver) TotalCount() int32              { return r.total }

type ProductEdgeResolver struct {
	node   *ProductResolver
	cursor string
}

func (r *ProductEdgeResolver) Node() *ProductResolver { return r.node }
func (r *ProductEdgeResolver) Cursor() string         { return r.cursor }

type ProductConnectionResolver struct {
	edges    []*ProductEdgeResolver
	pageInfo *PageInfoResolver
	total    int32
}

func (r *ProductConnectionResolver) Edges() []*ProductEdgeResolver { return r.edges }
func (r *ProductConnectionResolver) PageInfo() *PageInfoResolver   { return r.pageInfo }
func (r *ProductConnectionResolver) TotalCount() int32             { return r.total }

type OrderEdgeResolver struct {
	node   *OrderResolver
	cursor string
}

func (r *OrderEdgeResolver) Node() *OrderResolver { return r.node }
func (r *OrderEdgeResolver) Cursor() string       { return r.cursor }

type OrderConnectionResolver struct {
	edges    []*OrderEdgeResolver
	pageInfo *PageInfoResolver
	total    int32
}

func (r *OrderConnectionResolver) Edges() []*OrderEdgeResolver { return r.edges }
func (r *OrderConnectionResolver) PageInfo() *PageInfoResolver { return r.pageInfo }
func (r *OrderConnectionResolver) TotalCount() int32           { return r.total }

// Входные фильтры. Нулевые поля игнорируются хранилищем.

type CustomerFilterInput struct {
	NameContains  *string
	EmailContains *string
	CreatedAfter  *graphql.Time
	CreatedBefore *graphql.Time
	HasPhone      *bool
}

func (in *CustomerFilterInput) toDomain() domain.CustomerFilter {
	if in == nil {
		return domain.CustomerFilter{}
	}
	filter := domain.CustomerFilter{
		NameContains:  deref(in.NameContains),
		EmailContains: deref(in.EmailContains),
		HasPhone:      in.HasPhone,
	}
	if in.CreatedAfter != nil {
		filter.CreatedAfter = &in.CreatedAfter.Time
	}
	if in.CreatedBefore != nil {
		filter.CreatedBefore = &in.CreatedBefore.Time
	}
	return filter
}

type ProductFilterInput struct {
	NameContains *string
	PriceMin     *Decimal
	PriceMax     *Decimal
	StockMin     *int32
	StockMax     *int32
}

func (in *ProductFilterInput) toDomain() domain.ProductFilter {
	if in == nil {
		return domain.ProductFilter{}
	}
	filter := domain.ProductFilter{
		NameContains: deref(in.NameContains),
		StockMin:     in.StockMin,
		StockMax:     in.StockMax,
	}
	if in.PriceMin != nil {
		filter.PriceMin = &in.PriceMin.Decimal
	}
	if in.PriceMax != nil {
		filter.PriceMax = &in.PriceMax.Decimal
	}
	return filter
}

type OrderFilterInput struct {
	CustomerID   *graphql.ID
	ProductID    *graphql.ID
	TotalMin     *Decimal
	TotalMax     *Decimal
	PlacedAfter  *graphql.Time
	PlacedBefore *graphql.Time
}

func (in *OrderFilterInput) toDomain() domain.OrderFilter {
	if in == nil {
		return domain.OrderFilter{}
	}
	filter := domain.OrderFilter{}
	if in.CustomerID != nil {
		filter.CustomerID = string(*in.CustomerID)
	}
	if in.ProductID != nil {
		filter.ProductID = string(*in.ProductID)
	}
	if in.TotalMin != nil {
		filter.TotalMin = &in.TotalMin.Decimal
	}
	if in.TotalMax != nil {
		filter.TotalMax = &in.TotalMax.Decimal
	}
	if in.PlacedAfter != nil {
		filter.PlacedAfter = &in.PlacedAfter.Time
	}
	if in.PlacedBefore != nil {
		filter.PlacedBefore = &in.PlacedBefore.Time
	}
	return filter
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
