package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/warehouse/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/warehouse/internal/service/outbox"
)

// Run собирает приложение по конфигурации и прогоняет демонстрационные
// сценарии склада. Пока сценарии выполняются, метрики и health probes
// доступны по HTTP, а outbox worker публикует события в Kafka (если
// брокеры настроены).
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	if err := cfg.Validate(); err != nil {
		return err
	}

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, deps.Health)
	defer shutdownHTTP(metricsSrv, logger)

	var worker *outbox.Worker
	if deps.Producer != nil {
		publisher := kafka.NewOutboxPublisher(deps.Producer, cfg.EventsTopic)
		dlqPublisher := kafka.NewOutboxPublisher(deps.Producer, cfg.DLQTopic)
		worker = outbox.NewWorker(
			deps.Storage.outboxRepo,
			publisher,
			outbox.WithDLQPublisher(dlqPublisher),
			outbox.WithLogger(logger.WithField("component", "outbox-worker")),
			outbox.WithPollInterval(cfg.OutboxPollInterval),
			outbox.WithBatchSize(cfg.OutboxBatchSize),
			outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
			outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
		)
		go worker.Run(ctx)
	}

	if err := RunDemo(ctx, deps.Warehouse, logger); err != nil {
		return err
	}

	// Финальный проход по outbox, чтобы события демо не остались в backlog.
	if worker != nil {
		worker.ProcessOnce(ctx)
	}

	return ctx.Err()
}
