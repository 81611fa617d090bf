package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
	// порядок вставки — "естественный" порядок хранилища.
	order []string
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[string]domain.Customer),
	}
}

// Create сохраняет нового клиента, проверяя уникальность email без учёта регистра.
func (r *customerRepositoryInMemory) Create(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[customer.ID]; exists {
		return domain.ErrAlreadyExists
	}
	for _, existing := range r.items {
		if strings.EqualFold(existing.Email, customer.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	r.items[customer.ID] = customer
	r.order = append(r.order, customer.ID)
	return nil
}

// Get возвращает клиента или ErrCustomerNotFound, если его нет.
func (r *customerRepositoryInMemory) Get(id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// EmailExists проверяет занятость email (без учёта регистра).
func (r *customerRepositoryInMemory) EmailExists(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.items {
		if strings.EqualFold(existing.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// List возвращает клиентов по фильтру с сортировкой и пагинацией.
func (r *customerRepositoryInMemory) List(filter domain.CustomerFilter, page domain.Page) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.filtered(filter)
	sortCustomers(result, page.OrderBy)
	return applyWindow(result, page), nil
}

// Count возвращает количество клиентов под фильтром.
func (r *customerRepositoryInMemory) Count(filter domain.CustomerFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filtered(filter)), nil
}

func (r *customerRepositoryInMemory) filtered(filter domain.CustomerFilter) []domain.Customer {
	result := make([]domain.Customer, 0, len(r.items))
	for _, id := range r.order {
		customer := r.items[id]
		if filter.NameContains != "" && !containsFold(customer.Name, filter.NameContains) {
			continue
		}
		if filter.EmailContains != "" && !containsFold(customer.Email, filter.EmailContains) {
			continue
		}
		if filter.CreatedAfter != nil && customer.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		if filter.CreatedBefore != nil && customer.CreatedAt.After(*filter.CreatedBefore) {
			continue
		}
		if filter.HasPhone != nil && (customer.Phone != "") != *filter.HasPhone {
			continue
		}
		result = append(result, customer)
	}
	return result
}

func sortCustomers(customers []domain.Customer, orderBy string) {
	field, desc := splitOrderBy(orderBy)
	if field == "" {
		return
	}

	sort.SliceStable(customers, func(i, j int) bool {
		a, b := customers[i], customers[j]
		if desc {
			a, b = b, a
		}
		switch field {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "email":
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		case "createdAt":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return false
		}
	})
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
