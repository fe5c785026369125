package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
)

// Store держит все данные in-memory бэкенда и реализует domain.UnitOfWorkManager.
// Предназначен для локальной разработки и тестов.
type Store struct {
	// mu удерживается на всё время unit of work: транзакции сериализуются
	// структурно, без межстрочных блокировок.
	mu sync.Mutex

	products     map[int64]domain.Product
	productSeq   int64
	orders       map[int64]domain.Order
	orderSeq     int64
	orderItemSeq int64

	outbox   *outboxRepositoryInMemory
	timeline *timelineRepositoryInMemory
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		products: make(map[int64]domain.Product),
		orders:   make(map[int64]domain.Order),
		outbox:   newOutboxRepository(),
		timeline: newTimelineRepository(),
	}
}

// Do выполняет fn внутри unit of work. Репозитории работают над копией
// состояния: при nil из fn копия становится текущим состоянием, при ошибке
// отбрасывается, а ошибка возвращается без изменений.
func (s *Store) Do(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uow := newUnitOfWork(s)
	if err := fn(uow); err != nil {
		return err
	}
	uow.commit()
	return nil
}

// Outbox возвращает нетранзакционный доступ к outbox для воркера публикации.
func (s *Store) Outbox() domain.OutboxRepository {
	return s.outbox
}

// Timeline возвращает доступ к событиям жизненного цикла заказов.
func (s *Store) Timeline() domain.TimelineRepository {
	return s.timeline
}

// unitOfWork — транзакция над копиями карт Store.
type unitOfWork struct {
	store    *Store
	products *productRepositoryInMemory
	orders   *orderRepositoryInMemory
	outbox   *stagedOutbox
	timeline *stagedTimeline
}

func newUnitOfWork(s *Store) *unitOfWork {
	products := make(map[int64]domain.Product, len(s.products))
	for id, p := range s.products {
		products[id] = p
	}
	orders := make(map[int64]domain.Order, len(s.orders))
	for id, o := range s.orders {
		orders[id] = cloneOrder(o)
	}

	return &unitOfWork{
		store:    s,
		products: &productRepositoryInMemory{items: products, seq: s.productSeq},
		orders:   &orderRepositoryInMemory{items: orders, seq: s.orderSeq, itemSeq: s.orderItemSeq},
		outbox:   &stagedOutbox{base: s.outbox},
		timeline: &stagedTimeline{base: s.timeline},
	}
}

func (u *unitOfWork) Products() domain.ProductRepository { return u.products }
func (u *unitOfWork) Orders() domain.OrderRepository     { return u.orders }
func (u *unitOfWork) Outbox() domain.OutboxRepository    { return u.outbox }
func (u *unitOfWork) Timeline() domain.TimelineRepository {
	return u.timeline
}

// commit публикует копии обратно в Store и сбрасывает отложенные записи
// outbox и timeline.
func (u *unitOfWork) commit() {
	u.store.products = u.products.items
	u.store.productSeq = u.products.seq
	u.store.orders = u.orders.items
	u.store.orderSeq = u.orders.seq
	u.store.orderItemSeq = u.orders.itemSeq
	u.outbox.flush()
	u.timeline.flush()
}

func cloneOrder(o domain.Order) domain.Order {
	clone := o
	clone.Items = make([]domain.OrderItem, len(o.Items))
	copy(clone.Items, o.Items)
	return clone
}

// stagedOutbox буферизует Enqueue до фиксации unit of work; чтения и смена
// статусов делегируются базовому хранилищу.
type stagedOutbox struct {
	base    *outboxRepositoryInMemory
	pending []domain.OutboxMessage
}

func (s *stagedOutbox) Enqueue(ctx context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	msg = s.base.withID(msg)
	s.pending = append(s.pending, msg)
	return msg, nil
}

func (s *stagedOutbox) PullPending(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	return s.base.PullPending(ctx, limit)
}

func (s *stagedOutbox) Stats(ctx context.Context) (domain.OutboxStats, error) {
	return s.base.Stats(ctx)
}

func (s *stagedOutbox) MarkSent(ctx context.Context, id string) error {
	return s.base.MarkSent(ctx, id)
}

func (s *stagedOutbox) MarkFailed(ctx context.Context, id string) error {
	return s.base.MarkFailed(ctx, id)
}

func (s *stagedOutbox) flush() {
	for _, msg := range s.pending {
		s.base.store(msg)
	}
	s.pending = nil
}

// stagedTimeline буферизует Append до фиксации unit of work.
type stagedTimeline struct {
	base    *timelineRepositoryInMemory
	pending []domain.TimelineEvent
}

func (s *stagedTimeline) Append(ctx context.Context, event domain.TimelineEvent) error {
	s.pending = append(s.pending, event)
	return nil
}

func (s *stagedTimeline) List(ctx context.Context, orderID int64) ([]domain.TimelineEvent, error) {
	return s.base.List(ctx, orderID)
}

func (s *stagedTimeline) flush() {
	for _, event := range s.pending {
		s.base.store(event)
	}
	s.pending = nil
}

var (
	_ domain.UnitOfWorkManager = (*Store)(nil)
	_ domain.UnitOfWork        = (*unitOfWork)(nil)
	_ domain.OutboxRepository  = (*stagedOutbox)(nil)
	_ domain.TimelineRepository = (*stagedTimeline)(nil)
)
