package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
)

// querier объединяет *sql.DB и *sql.Tx: репозитории работают через него и
// не знают, выполняются ли они внутри транзакции.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type unitOfWork struct {
	products *productRepository
	orders   *orderRepository
	outbox   *outboxRepository
	timeline *timelineRepository
}

func (u *unitOfWork) Products() domain.ProductRepository { return u.products }
func (u *unitOfWork) Orders() domain.OrderRepository     { return u.orders }
func (u *unitOfWork) Outbox() domain.OutboxRepository    { return u.outbox }
func (u *unitOfWork) Timeline() domain.TimelineRepository {
	return u.timeline
}

// Do выполняет fn внутри одной транзакции БД: nil фиксирует все изменения,
// ошибка откатывает их и возвращается вызывающему без изменений.
func (s *Store) Do(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	uow := &unitOfWork{
		products: &productRepository{q: tx},
		orders:   &orderRepository{q: tx},
		outbox:   &outboxRepository{q: tx},
		timeline: &timelineRepository{q: tx},
	}

	if err := fn(uow); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var _ domain.UnitOfWork = (*unitOfWork)(nil)
