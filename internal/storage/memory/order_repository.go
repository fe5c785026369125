package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
)

// orderRepositoryInMemory работает над копией карты заказов одного unit of work.
type orderRepositoryInMemory struct {
	items   map[int64]domain.Order
	seq     int64
	itemSeq int64
}

// Add сохраняет новый заказ, присваивая идентификаторы заказу и позициям.
func (r *orderRepositoryInMemory) Add(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	r.seq++
	stored := cloneOrder(*order)
	stored.ID = r.seq
	for i := range stored.Items {
		r.itemSeq++
		stored.Items[i].ID = r.itemSeq
	}
	r.items[stored.ID] = stored

	result := cloneOrder(stored)
	return &result, nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(ctx context.Context, id int64) (*domain.Order, error) {
	order, ok := r.items[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	result := cloneOrder(order)
	return &result, nil
}

// List возвращает все заказы в порядке создания.
func (r *orderRepositoryInMemory) List(ctx context.Context) ([]domain.Order, error) {
	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, cloneOrder(order))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListByStatus возвращает заказы с заданным статусом.
func (r *orderRepositoryInMemory) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for _, order := range r.items {
		if order.Status == status {
			result = append(result, cloneOrder(order))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListByProduct возвращает заказы, ссылающиеся на продукт хотя бы одной позицией.
func (r *orderRepositoryInMemory) ListByProduct(ctx context.Context, productID int64) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for _, order := range r.items {
		o := order
		if o.References(productID) {
			result = append(result, cloneOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update перезаписывает заказ, проверяя версию (optimistic locking).
func (r *orderRepositoryInMemory) Update(ctx context.Context, order *domain.Order) error {
	current, ok := r.items[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if current.Version != order.Version {
		return domain.ErrVersionConflict
	}

	stored := cloneOrder(*order)
	stored.Version++
	r.items[stored.ID] = stored
	order.Version = stored.Version
	return nil
}

// Delete удаляет заказ по идентификатору.
func (r *orderRepositoryInMemory) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
