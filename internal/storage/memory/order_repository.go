package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
	order []string
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrAlreadyExists
	}
	// Сохраняем копию набора товаров, чтобы избежать мутаций извне.
	ids := make([]string, len(order.ProductIDs))
	copy(ids, order.ProductIDs)
	order.ProductIDs = ids
	r.items[order.ID] = order
	r.order = append(r.order, order.ID)
	return nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// List возвращает заказы по фильтру с сортировкой и пагинацией.
func (r *orderRepositoryInMemory) List(filter domain.OrderFilter, page domain.Page) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.filtered(filter)
	sortOrders(result, page.OrderBy)
	return applyWindow(result, page), nil
}

// Count возвращает количество заказов под фильтром.
func (r *orderRepositoryInMemory) Count(filter domain.OrderFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filtered(filter)), nil
}

func (r *orderRepositoryInMemory) filtered(filter domain.OrderFilter) []domain.Order {
	result := make([]domain.Order, 0, len(r.items))
	for _, id := range r.order {
		order := r.items[id]
		if filter.CustomerID != "" && order.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProductID != "" && !containsID(order.ProductIDs, filter.ProductID) {
			continue
		}
		if filter.TotalMin != nil && order.TotalAmount.LessThan(*filter.TotalMin) {
			continue
		}
		if filter.TotalMax != nil && order.TotalAmount.GreaterThan(*filter.TotalMax) {
			continue
		}
		if filter.PlacedAfter != nil && order.OrderDate.Before(*filter.PlacedAfter) {
			continue
		}
		if filter.PlacedBefore != nil && order.OrderDate.After(*filter.PlacedBefore) {
			continue
		}
		result = append(result, order)
	}
	return result
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func sortOrders(orders []domain.Order, orderBy string) {
	field, desc := splitOrderBy(orderBy)
	if field == "" {
		return
	}

	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if desc {
			a, b = b, a
		}
		switch field {
		case "orderDate":
			return a.OrderDate.Before(b.OrderDate)
		case "totalAmount":
			return a.TotalAmount.LessThan(b.TotalAmount)
		case "createdAt":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return false
		}
	})
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
