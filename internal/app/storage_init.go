package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
	"github.com/vladislavdragonenkov/warehouse/internal/storage/memory"
	"github.com/vladislavdragonenkov/warehouse/internal/storage/postgres"
)

// storageBackend объединяет транзакционную границу и доступ к outbox
// для выбранного драйвера хранилища.
type storageBackend struct {
	uow        domain.UnitOfWorkManager
	outboxRepo domain.OutboxRepository
	// pg заполняется только для драйвера postgres и используется
	// для health check и закрытия подключения.
	pg *postgres.Store
}

// initStorage создаёт хранилище по драйверу из конфигурации. Для postgres
// дополнительно применяются миграции.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*storageBackend, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		store := memory.NewStore()
		logger.Info("using in-memory storage")
		return &storageBackend{uow: store, outboxRepo: store.Outbox()}, nil

	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		logger.Info("using postgres storage")
		return &storageBackend{uow: store, outboxRepo: store.Outbox(), pg: store}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.StorageDriver)
	}
}

// close закрывает ресурсы хранилища.
func (b *storageBackend) close(logger *log.Entry) {
	if b == nil || b.pg == nil {
		return
	}
	if err := b.pg.Close(); err != nil {
		logger.WithError(err).Warn("failed to close postgres store")
	}
}
