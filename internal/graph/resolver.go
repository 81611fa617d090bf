package graph

import (
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/service/crm"
)

// Resolver — корневой резолвер GraphQL-схемы. Вся прикладная логика
// живёт в сервисе; здесь только трансляция аргументов и результатов.
type Resolver struct {
	svc *crm.Service
}

// NewResolver создаёт корневой резолвер с зависимостями.
func NewResolver(svc *crm.Service) *Resolver {
	return &Resolver{svc: svc}
}

// Customers возвращает всех клиентов в естественном порядке хранилища.
func (r *Resolver) Customers() ([]*CustomerResolver, error) {
	customers, err := r.svc.ListCustomers(domain.CustomerFilter{}, domain.Page{})
	if err != nil {
		return nil, err
	}
	resolvers := make([]*CustomerResolver, 0, len(customers))
	for _, customer := range customers {
		resolvers = append(resolvers, &CustomerResolver{customer: customer})
	}
	return resolvers, nil
}

// Products возвращает все товары.
func (r *Resolver) Products() ([]*ProductResolver, error) {
	products, err := r.svc.ListProducts(domain.ProductFilter{}, domain.Page{})
	if err != nil {
		return nil, err
	}
	resolvers := make([]*ProductResolver, 0, len(products))
	for _, product := range products {
		resolvers = append(resolvers, &ProductResolver{product: product})
	}
	return resolvers, nil
}

// Orders возвращает все заказы.
func (r *Resolver) Orders() ([]*OrderResolver, error) {
	orders, err := r.svc.ListOrders(domain.OrderFilter{}, domain.Page{})
	if err != nil {
		return nil, err
	}
	resolvers := make([]*OrderResolver, 0, len(orders))
	for _, order := range orders {
		resolvers = append(resolvers, &OrderResolver{svc: r.svc, order: order})
	}
	return resolvers, nil
}

// ConnectionArgs — общие аргументы фильтрованных выборок.
type customerConnectionArgs struct {
	Filter  *CustomerFilterInput
	OrderBy *string
	First   *int32
	After   *string
}

// AllCustomers возвращает фильтрованную connection клиентов.
func (r *Resolver) AllCustomers(args customerConnectionArgs) (*CustomerConnectionResolver, error) {
	filter := args.Filter.toDomain()

	total, err := r.svc.CountCustomers(filter)
	if err != nil {
		return nil, err
	}
	offset, limit, err := pageWindow(args.First, args.After)
	if err != nil {
		return nil, err
	}

	// first: 0 — пустая страница; хранилище трактует Limit <= 0 как "без лимита".
	var customers []domain.Customer
	if limit > 0 {
		customers, err = r.svc.ListCustomers(filter, domain.Page{
			OrderBy: deref(args.OrderBy),
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			return nil, err
		}
	}

	edges := make([]*CustomerEdgeResolver, 0, len(customers))
	for i, customer := range customers {
		edges = append(edges, &CustomerEdgeResolver{
			node:   &CustomerResolver{customer: customer},
			cursor: encodeCursor(offset + i),
		})
	}

	return &CustomerConnectionResolver{
		edges:    edges,
		pageInfo: newPageInfo(offset, len(customers), total),
		total:    int32(total),
	}, nil
}

type productConnectionArgs struct {
	Filter  *ProductFilterInput
	OrderBy *string
	First   *int32
	After   *string
}

// AllProducts возвращает фильтрованную connection товаров.
func (r *Resolver) AllProducts(args productConnectionArgs) (*ProductConnectionResolver, error) {
	filter := args.Filter.toDomain()

	total, err := r.svc.CountProducts(filter)
	if err != nil {
		return nil, err
	}
	offset, limit, err := pageWindow(args.First, args.After)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if limit > 0 {
		products, err = r.svc.ListProducts(filter, domain.Page{
			OrderBy: deref(args.OrderBy),
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			return nil, err
		}
	}

	edges := make([]*ProductEdgeResolver, 0, len(products))
	for i, product := range products {
		edges = append(edges, &ProductEdgeResolver{
			node:   &ProductResolver{product: product},
			cursor: encodeCursor(offset + i),
		})
	}

	return &ProductConnectionResolver{
		edges:    edges,
		pageInfo: newPageInfo(offset, len(products), total),
		total:    int32(total),
	}, nil
}

type orderConnectionArgs struct {
	Filter  *OrderFilterInput
	OrderBy *string
	First   *int32
	After   *string
}

// AllOrders возвращает фильтрованную connection заказов.
func (r *Resolver) AllOrders(args orderConnectionArgs) (*OrderConnectionResolver, error) {
	filter := args.Filter.toDomain()

	total, err := r.svc.CountOrders(filter)
	if err != nil {
		return nil, err
	}
	offset, limit, err := pageWindow(args.First, args.After)
	if err != nil {
		return nil, err
	}

	var orders []domain.Order
	if limit > 0 {
		orders, err = r.svc.ListOrders(filter, domain.Page{
			OrderBy: deref(args.OrderBy),
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			return nil, err
		}
	}

	edges := make([]*OrderEdgeResolver, 0, len(orders))
	for i, order := range orders {
		edges = append(edges, &OrderEdgeResolver{
			node:   &OrderResolver{svc: r.svc, order: order},
			cursor: encodeCursor(offset + i),
		})
	}

	return &OrderConnectionResolver{
		edges:    edges,
		pageInfo: newPageInfo(offset, len(orders), total),
		total:    int32(total),
	}, nil
}

// CreateCustomer — мутация создания клиента.
func (r *Resolver) CreateCustomer(args struct {
	Name  string
	Email string
	Phone *string
}) (*CreateCustomerPayloadResolver, error) {
	customer, message, err := r.svc.CreateCustomer(crm.CustomerInput{
		Name:  args.Name,
		Email: args.Email,
		Phone: deref(args.Phone),
	})
	if err != nil {
		return nil, err
	}
	return &CreateCustomerPayloadResolver{customer: customer, message: message}, nil
}

type customerInput struct {
	Name  string
	Email string
	Phone *string
}

// BulkCreateCustomers — мутация массового создания клиентов с
// частичным успехом: ошибки по строкам не прерывают обработку.
func (r *Resolver) BulkCreateCustomers(args struct {
	Customers []customerInput
}) (*BulkCreateCustomersPayloadResolver, error) {
	inputs := make([]crm.CustomerInput, 0, len(args.Customers))
	for _, in := range args.Customers {
		inputs = append(inputs, crm.CustomerInput{
			Name:  in.Name,
			Email: in.Email,
			Phone: deref(in.Phone),
		})
	}

	created, rowErrors, err := r.svc.BulkCreateCustomers(inputs)
	if err != nil {
		return nil, err
	}
	return &BulkCreateCustomersPayloadResolver{customers: created, errors: rowErrors}, nil
}

// CreateProduct — мутация создания товара.
func (r *Resolver) CreateProduct(args struct {
	Name  string
	Price Decimal
	Stock *int32
}) (*CreateProductPayloadResolver, error) {
	product, err := r.svc.CreateProduct(crm.ProductInput{
		Name:  args.Name,
		Price: args.Price.Decimal,
		Stock: args.Stock,
	})
	if err != nil {
		return nil, err
	}
	return &CreateProductPayloadResolver{product: product}, nil
}

// CreateOrder — мутация создания заказа.
func (r *Resolver) CreateOrder(args struct {
	CustomerID graphql.ID
	ProductIds []graphql.ID
	OrderDate  *graphql.Time
}) (*CreateOrderPayloadResolver, error) {
	productIDs := make([]string, 0, len(args.ProductIds))
	for _, id := range args.ProductIds {
		productIDs = append(productIDs, string(id))
	}

	input := crm.OrderInput{
		CustomerID: string(args.CustomerID),
		ProductIDs: productIDs,
	}
	if args.OrderDate != nil {
		input.OrderDate = &args.OrderDate.Time
	}

	order, err := r.svc.CreateOrder(input)
	if err != nil {
		return nil, err
	}
	return &CreateOrderPayloadResolver{svc: r.svc, order: order}, nil
}
