package warehouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
	"github.com/vladislavdragonenkov/warehouse/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/warehouse/internal/metrics"
)

// OrderLine описывает одну строку запроса на создание заказа.
type OrderLine struct {
	ProductID int64
	Quantity  int64
}

// ProductUpdate описывает частичное обновление продукта: nil-поля не меняются.
type ProductUpdate struct {
	Name  *string
	Price *decimal.Decimal
}

// Service реализует бизнес-логику склада. Каждая операция выполняется внутри
// ровно одного unit of work: при любой ошибке ни одно частичное изменение
// не фиксируется.
type Service struct {
	uow     domain.UnitOfWorkManager
	logger  *log.Entry
	metrics *metrics.WarehouseMetrics
}

// NewService создаёт рабочий экземпляр сервиса склада.
func NewService(uow domain.UnitOfWorkManager, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "warehouse")
	}
	return &Service{
		uow:     uow,
		logger:  logger,
		metrics: metrics.NewWarehouseMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(uow domain.UnitOfWorkManager, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "warehouse")
	}
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// observe возвращает функцию завершения замера длительности операции.
func (s *Service) observe(operation string) func() {
	start := time.Now()
	return func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(operation, time.Since(start))
		}
	}
}

// recordFailure обновляет счётчики отказов по виду ошибки.
func (s *Service) recordFailure(err error) {
	if s.metrics == nil {
		return
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		s.metrics.RecordInsufficientStock()
	}
	if domain.IsVersionConflict(err) {
		s.metrics.RecordVersionConflict()
	}
}

// enqueueProductEvent кладёт событие продукта в transactional outbox того же
// unit of work, что и изменение состояния.
func (s *Service) enqueueProductEvent(ctx context.Context, uow domain.UnitOfWork, eventType kafka.EventType, product *domain.Product) error {
	payload, err := json.Marshal(kafka.NewProductEvent(
		eventType, product.ID, product.Name, product.Quantity, product.Price.String(),
	))
	if err != nil {
		return fmt.Errorf("marshal product event: %w", err)
	}

	_, err = uow.Outbox().Enqueue(ctx, domain.OutboxMessage{
		AggregateType: "product",
		AggregateID:   strconv.FormatInt(product.ID, 10),
		EventType:     string(eventType),
		Payload:       payload,
	})
	return err
}

// enqueueOrderEvent кладёт событие заказа в transactional outbox и пишет
// событие в timeline заказа.
func (s *Service) enqueueOrderEvent(ctx context.Context, uow domain.UnitOfWork, eventType kafka.EventType, order *domain.Order, reason string) error {
	payload, err := json.Marshal(kafka.NewOrderEvent(
		eventType, order.ID, string(order.Status), order.TotalPrice().String(), len(order.Items),
	))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	if _, err := uow.Outbox().Enqueue(ctx, domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   strconv.FormatInt(order.ID, 10),
		EventType:     string(eventType),
		Payload:       payload,
	}); err != nil {
		return err
	}

	return uow.Timeline().Append(ctx, domain.TimelineEvent{
		OrderID:  order.ID,
		Type:     string(eventType),
		Reason:   reason,
		Occurred: time.Now().UTC(),
	})
}
