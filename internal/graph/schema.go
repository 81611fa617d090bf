// Package graph содержит GraphQL-схему CRM и резолверы поверх прикладного сервиса.
package graph

// SchemaSDL описывает контракт API: запросы, мутации и relay-connections.
const SchemaSDL = `
schema {
	query: Query
	mutation: Mutation
}

scalar Time
scalar Decimal

type Query {
	customers: [Customer!]!
	products: [Product!]!
	orders: [Order!]!
	allCustomers(filter: CustomerFilterInput, orderBy: String, first: Int, after: String): CustomerConnection!
	allProducts(filter: ProductFilterInput, orderBy: String, first: Int, after: String): ProductConnection!
	allOrders(filter: OrderFilterInput, orderBy: String, first: Int, after: String): OrderConnection!
}

type Mutation {
	createCustomer(name: String!, email: String!, phone: String): CreateCustomerPayload!
	bulkCreateCustomers(customers: [CustomerInput!]!): BulkCreateCustomersPayload!
	createProduct(name: String!, price: Decimal!, stock: Int): CreateProductPayload!
	createOrder(customerId: ID!, productIds: [ID!]!, orderDate: Time): CreateOrderPayload!
}

type Customer {
	id: ID!
	name: String!
	email: String!
	phone: String
	createdAt: Time!
}

type Product {
	id: ID!
	name: String!
	price: Decimal!
	stock: Int!
	createdAt: Time!
}

type Order {
	id: ID!
	customer: Customer!
	products: [Product!]!
	totalAmount: Decimal!
	orderDate: Time!
}

input CustomerInput {
	name: String!
	email: String!
	phone: String
}

input CustomerFilterInput {
	nameContains: String
	emailContains: String
	createdAfter: Time
	createdBefore: Time
	hasPhone: Boolean
}

input ProductFilterInput {
	nameContains: String
	priceMin: Decimal
	priceMax: Decimal
	stockMin: Int
	stockMax: Int
}

input OrderFilterInput {
	customerId: ID
	productId: ID
	totalMin: Decimal
	totalMax: Decimal
	placedAfter: Time
	placedBefore: Time
}

type CreateCustomerPayload {
	customer: Customer!
	message: String!
}

type BulkCreateCustomersPayload {
	customers: [Customer!]!
	errors: [String!]!
}

type CreateProductPayload {
	product: Product!
}

type CreateOrderPayload {
	order: Order!
}

type PageInfo {
	hasNextPage: Boolean!
	hasPreviousPage: Boolean!
	startCursor: String
	endCursor: String
}

type CustomerEdge {
	node: Customer!
	cursor: String!
}

type CustomerConnection {
	edges: [CustomerEdge!]!
	pageInfo: PageInfo!
	totalCount: Int!
}

type ProductEdge {
	node: Product!
	cursor: String!
}

type ProductConnection {
	edges: [ProductEdge!]!
	pageInfo: PageInfo!
	totalCount: Int!
}

type OrderEdge {
	node: Order!
	cursor: String!
}

type OrderConnection {
	edges: [OrderEdge!]!
	pageInfo: PageInfo!
	totalCount: Int!
}
`
