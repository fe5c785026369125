package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/warehouse/internal/health"
	"github.com/vladislavdragonenkov/warehouse/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/warehouse/internal/service/warehouse"
	"github.com/vladislavdragonenkov/warehouse/internal/version"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Storage   *storageBackend
	Warehouse *warehouse.Service
	Producer  *kafka.Producer
	Health    *healthcheck.Handler
	Logger    *log.Entry
}

// NewDependencies создаёт и инициализирует все зависимости приложения
// по конфигурации: хранилище, сервис склада, Kafka producer и health handler.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	storage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Kafka опционален: без брокеров события копятся в outbox.
	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		logger.Warn("warehouse events will stay in outbox until a publisher is available")
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if storage.pg != nil {
		pg := storage.pg
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), defaultConnCheckTimeout)
			defer cancel()
			return pg.Ping(pingCtx)
		}))
	}

	return &Dependencies{
		Storage:   storage,
		Warehouse: warehouse.NewService(storage.uow, logger.WithField("component", "warehouse")),
		Producer:  producer,
		Health:    healthHandler,
		Logger:    logger,
	}, nil
}

// Close освобождает ресурсы приложения.
func (d *Dependencies) Close() {
	if d == nil {
		return
	}
	closeKafka(d.Producer, d.Logger)
	d.Storage.close(d.Logger)
}
