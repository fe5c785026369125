package domain

import "context"

// ProductRepository описывает требования к хранилищу продуктов.
// Бизнес-валидации здесь нет — только доступ к данным.
type ProductRepository interface {
	// Add сохраняет новый продукт и возвращает его с присвоенным идентификатором.
	Add(ctx context.Context, product *Product) (*Product, error)
	// Get возвращает продукт по идентификатору или ErrProductNotFound, если его нет.
	Get(ctx context.Context, id int64) (*Product, error)
	// GetByName возвращает продукт по названию или ErrProductNotFound.
	GetByName(ctx context.Context, name string) (*Product, error)
	// List возвращает все продукты в порядке создания.
	List(ctx context.Context) ([]Product, error)
	// ListInStock возвращает продукты с положительным остатком.
	ListInStock(ctx context.Context) ([]Product, error)
	// Update применяет обновления к продукту с учётом optimistic locking.
	Update(ctx context.Context, product *Product) error
	// Delete удаляет продукт или возвращает ErrProductNotFound.
	Delete(ctx context.Context, id int64) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Add сохраняет новый заказ вместе с позициями и возвращает его с идентификаторами.
	Add(ctx context.Context, order *Order) (*Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id int64) (*Order, error)
	// List возвращает все заказы в порядке создания.
	List(ctx context.Context) ([]Order, error)
	// ListByStatus возвращает заказы с заданным статусом.
	ListByStatus(ctx context.Context, status OrderStatus) ([]Order, error)
	// ListByProduct возвращает заказы, хотя бы одна позиция которых ссылается на продукт.
	ListByProduct(ctx context.Context, productID int64) ([]Order, error)
	// Update применяет обновления к заказу с учётом optimistic locking.
	Update(ctx context.Context, order *Order) error
	// Delete удаляет заказ или возвращает ErrOrderNotFound.
	Delete(ctx context.Context, id int64) error
}

// UnitOfWork даёт доступ к репозиториям, привязанным к одной транзакции.
// Все изменения, сделанные через эти репозитории, фиксируются или
// откатываются вместе.
type UnitOfWork interface {
	Products() ProductRepository
	Orders() OrderRepository
	Outbox() OutboxRepository
	Timeline() TimelineRepository
}

// UnitOfWorkManager открывает транзакционную границу. При nil из fn изменения
// фиксируются, при ошибке — откатываются, а ошибка возвращается без изменений.
// Вложенные вызовы Do не поддерживаются.
type UnitOfWorkManager interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
}
