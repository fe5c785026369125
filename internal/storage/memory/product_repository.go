package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
)

// productRepositoryInMemory работает над копией карты продуктов, принадлежащей
// одному unit of work; блокировок нет, транзакции сериализует Store.
type productRepositoryInMemory struct {
	items map[int64]domain.Product
	seq   int64
}

// Add сохраняет новый продукт и присваивает ему идентификатор.
func (r *productRepositoryInMemory) Add(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	for _, existing := range r.items {
		if existing.Name == product.Name {
			return nil, domain.ErrProductAlreadyExists
		}
	}

	r.seq++
	stored := *product
	stored.ID = r.seq
	r.items[stored.ID] = stored

	result := stored
	return &result, nil
}

// Get возвращает продукт или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	result := product
	return &result, nil
}

// GetByName возвращает продукт по названию или ErrProductNotFound.
func (r *productRepositoryInMemory) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	for _, product := range r.items {
		if product.Name == name {
			result := product
			return &result, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// List возвращает все продукты в порядке создания.
func (r *productRepositoryInMemory) List(ctx context.Context) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListInStock возвращает продукты с положительным остатком.
func (r *productRepositoryInMemory) ListInStock(ctx context.Context) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		if product.Quantity > 0 {
			result = append(result, product)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update перезаписывает продукт, проверяя версию (optimistic locking).
func (r *productRepositoryInMemory) Update(ctx context.Context, product *domain.Product) error {
	current, ok := r.items[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if current.Version != product.Version {
		return domain.ErrVersionConflict
	}

	stored := *product
	stored.Version++
	r.items[stored.ID] = stored
	product.Version = stored.Version
	return nil
}

// Delete удаляет продукт по идентификатору.
func (r *productRepositoryInMemory) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
