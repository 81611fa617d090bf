package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
	order []string
}

// NewProductRepository возвращает in-memory репозиторий товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Create сохраняет новый товар, если ID ещё не занят.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrAlreadyExists
	}
	r.items[product.ID] = product
	r.order = append(r.order, product.ID)
	return nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetByIDs возвращает существующие товары; отсутствующие ID пропускаются.
func (r *productRepositoryInMemory) GetByIDs(ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// List возвращает товары по фильтру с сортировкой и пагинацией.
func (r *productRepositoryInMemory) List(filter domain.ProductFilter, page domain.Page) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.filtered(filter)
	sortProducts(result, page.OrderBy)
	return applyWindow(result, page), nil
}

// Count возвращает количество товаров под фильтром.
func (r *productRepositoryInMemory) Count(filter domain.ProductFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filtered(filter)), nil
}

func (r *productRepositoryInMemory) filtered(filter domain.ProductFilter) []domain.Product {
	result := make([]domain.Product, 0, len(r.items))
	for _, id := range r.order {
		product := r.items[id]
		if filter.NameContains != "" && !containsFold(product.Name, filter.NameContains) {
			continue
		}
		if filter.PriceMin != nil && product.Price.LessThan(*filter.PriceMin) {
			continue
		}
		if filter.PriceMax != nil && product.Price.GreaterThan(*filter.PriceMax) {
			continue
		}
		if filter.StockMin != nil && product.Stock < *filter.StockMin {
			continue
		}
		if filter.StockMax != nil && product.Stock > *filter.StockMax {
			continue
		}
		result = append(result, product)
	}
	return result
}

func sortProducts(products []domain.Product, orderBy string) {
	field, desc := splitOrderBy(orderBy)
	if field == "" {
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if desc {
			a, b = b, a
		}
		switch field {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "price":
			return a.Price.LessThan(b.Price)
		case "stock":
			return a.Stock < b.Stock
		case "createdAt":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return false
		}
	})
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
