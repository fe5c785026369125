package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
	"github.com/vladislavdragonenkov/warehouse/internal/service/outbox"
	"github.com/vladislavdragonenkov/warehouse/internal/service/warehouse"
	"github.com/vladislavdragonenkov/warehouse/internal/storage/memory"
)

// WarehouseLifecycleTestSuite тестирует полный жизненный цикл склада:
// продукты, заказы, возврат резерва и публикацию событий через outbox.
type WarehouseLifecycleTestSuite struct {
	suite.Suite
	store   *memory.Store
	service *warehouse.Service
}

func (suite *WarehouseLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	logger := baseLogger.WithField("component", "integration-test")

	suite.store = memory.NewStore()
	suite.service = warehouse.NewServiceWithoutMetrics(suite.store, logger)
}

func (suite *WarehouseLifecycleTestSuite) price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *WarehouseLifecycleTestSuite) TestSuccessfulOrderLifecycle() {
	ctx := context.Background()

	// 1. Создаём продукты
	laptop, err := suite.service.CreateProduct(ctx, "Laptop", 10, suite.price("999.99"))
	suite.Require().NoError(err)
	mouse, err := suite.service.CreateProduct(ctx, "Mouse", 50, suite.price("29.99"))
	suite.Require().NoError(err)

	// 2. Создаём заказ на обе позиции
	order, err := suite.service.CreateOrder(ctx, []warehouse.OrderLine{
		{ProductID: laptop.ID, Quantity: 2},
		{ProductID: mouse.ID, Quantity: 5},
	})
	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusPending, order.Status)
	suite.True(order.TotalPrice().Equal(suite.price("2149.93")))

	// 3. Остатки зарезервированы
	laptop, err = suite.service.GetProduct(ctx, laptop.ID)
	suite.Require().NoError(err)
	suite.EqualValues(8, laptop.Quantity)

	// 4. Подтверждаем заказ
	confirmed, err := suite.service.ConfirmOrder(ctx, order.ID)
	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusConfirmed, confirmed.Status)

	// 5. Отменяем и проверяем возврат резерва
	cancelled, err := suite.service.CancelOrder(ctx, order.ID)
	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusCancelled, cancelled.Status)

	laptop, err = suite.service.GetProduct(ctx, laptop.ID)
	suite.Require().NoError(err)
	suite.EqualValues(10, laptop.Quantity)
	mouse, err = suite.service.GetProduct(ctx, mouse.ID)
	suite.Require().NoError(err)
	suite.EqualValues(50, mouse.Quantity)

	// 6. Timeline хранит всю историю заказа
	events, err := suite.store.Timeline().List(ctx, order.ID)
	suite.Require().NoError(err)
	suite.Require().Len(events, 3)
	suite.Equal("order.created", events[0].Type)
	suite.Equal("order.confirmed", events[1].Type)
	suite.Equal("order.cancelled", events[2].Type)
}

func (suite *WarehouseLifecycleTestSuite) TestFailedOrderLeavesStateUntouched() {
	ctx := context.Background()

	laptop, err := suite.service.CreateProduct(ctx, "Laptop", 5, suite.price("999.99"))
	suite.Require().NoError(err)
	mouse, err := suite.service.CreateProduct(ctx, "Mouse", 1, suite.price("29.99"))
	suite.Require().NoError(err)

	// Вторая строка превышает остаток: заказ не должен состояться целиком.
	_, err = suite.service.CreateOrder(ctx, []warehouse.OrderLine{
		{ProductID: laptop.ID, Quantity: 2},
		{ProductID: mouse.ID, Quantity: 2},
	})
	suite.Require().ErrorIs(err, domain.ErrInsufficientStock)

	laptop, err = suite.service.GetProduct(ctx, laptop.ID)
	suite.Require().NoError(err)
	suite.EqualValues(5, laptop.Quantity)

	orders, err := suite.service.ListOrders(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *WarehouseLifecycleTestSuite) TestOutboxWorkerDrainsEvents() {
	ctx := context.Background()

	laptop, err := suite.service.CreateProduct(ctx, "Laptop", 10, suite.price("999.99"))
	suite.Require().NoError(err)
	order, err := suite.service.CreateOrder(ctx, []warehouse.OrderLine{
		{ProductID: laptop.ID, Quantity: 1},
	})
	suite.Require().NoError(err)
	_, err = suite.service.ConfirmOrder(ctx, order.ID)
	suite.Require().NoError(err)

	publisher := &capturingPublisher{}
	worker := outbox.NewWorker(
		suite.store.Outbox(),
		publisher,
		outbox.WithRetryBaseDelay(0),
	)

	worker.ProcessOnce(ctx)

	// product.created + order.created + order.confirmed
	suite.Len(publisher.published(), 3)

	stats, err := suite.store.Outbox().Stats(ctx)
	suite.Require().NoError(err)
	suite.Zero(stats.PendingCount)
}

func (suite *WarehouseLifecycleTestSuite) TestDeleteProductGuardedByActiveOrders() {
	ctx := context.Background()

	laptop, err := suite.service.CreateProduct(ctx, "Laptop", 10, suite.price("999.99"))
	suite.Require().NoError(err)
	order, err := suite.service.CreateOrder(ctx, []warehouse.OrderLine{
		{ProductID: laptop.ID, Quantity: 1},
	})
	suite.Require().NoError(err)

	suite.Require().ErrorIs(suite.service.DeleteProduct(ctx, laptop.ID), domain.ErrProductInUse)

	_, err = suite.service.CancelOrder(ctx, order.ID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.DeleteProduct(ctx, laptop.ID))
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []domain.OutboxMessage
}

func (p *capturingPublisher) Publish(event domain.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) published() []domain.OutboxMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.OutboxMessage(nil), p.events...)
}

var _ domain.OutboxPublisher = (*capturingPublisher)(nil)

func TestWarehouseLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(WarehouseLifecycleTestSuite))
}
