package warehouse

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
	"github.com/vladislavdragonenkov/warehouse/internal/messaging/kafka"
)

// CreateOrder создаёт заказ и списывает остатки по всем строкам атомарно.
// Проверка достаточности остатка выполняется по всем строкам до первого
// списания: при нехватке по любой строке ни один продукт не меняется.
func (s *Service) CreateOrder(ctx context.Context, lines []OrderLine) (*domain.Order, error) {
	defer s.observe("create_order")()

	if len(lines) == 0 {
		return nil, domain.ErrOrderItemsRequired
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("product %d: quantity %d must be positive: %w",
				line.ProductID, line.Quantity, domain.ErrInvalidQuantity)
		}
	}

	var created *domain.Order
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		order := domain.NewOrder()
		products := make(map[int64]*domain.Product, len(lines))

		// Фаза 1: загрузка продуктов и сборка позиций со снимком цены.
		// Повторные строки одного продукта сливаются в одну позицию.
		for _, line := range lines {
			product, ok := products[line.ProductID]
			if !ok {
				var err error
				product, err = uow.Products().Get(ctx, line.ProductID)
				if err != nil {
					return fmt.Errorf("product %d: %w", line.ProductID, err)
				}
				products[line.ProductID] = product
			}
			if err := order.AddItem(product, line.Quantity); err != nil {
				return err
			}
		}

		// Фаза 2: проверка остатка по всем позициям до любых мутаций.
		for _, item := range order.Items {
			product := products[item.ProductID]
			if item.Quantity > product.Quantity {
				return fmt.Errorf("product %q: requested %d, available %d: %w",
					product.Name, item.Quantity, product.Quantity, domain.ErrInsufficientStock)
			}
		}

		// Фаза 3: списание остатков.
		for _, item := range order.Items {
			product := products[item.ProductID]
			if err := product.DecreaseQuantity(item.Quantity); err != nil {
				return err
			}
			if err := uow.Products().Update(ctx, product); err != nil {
				return err
			}
		}

		var err error
		created, err = uow.Orders().Add(ctx, order)
		if err != nil {
			return err
		}
		return s.enqueueOrderEvent(ctx, uow, kafka.EventTypeOrderCreated, created, "")
	})
	if err != nil {
		s.recordFailure(err)
		s.logger.WithError(err).Warn("create order failed")
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.logger.WithFields(log.Fields{
		"order_id":    created.ID,
		"items":       len(created.Items),
		"total_price": created.TotalPrice().String(),
	}).Info("order created")
	return created, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	defer s.observe("get_order")()

	var order *domain.Order
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		order, err = uow.Orders().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("order %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders возвращает заказы, при непустом статусе — только с этим статусом.
func (s *Service) ListOrders(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error) {
	defer s.observe("list_orders")()

	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("unknown order status %q", *status)
	}

	var orders []domain.Order
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		if status != nil {
			orders, err = uow.Orders().ListByStatus(ctx, *status)
		} else {
			orders, err = uow.Orders().List(ctx)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ConfirmOrder переводит pending-заказ в confirmed.
func (s *Service) ConfirmOrder(ctx context.Context, id int64) (*domain.Order, error) {
	defer s.observe("confirm_order")()

	var confirmed *domain.Order
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		order, err := uow.Orders().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("order %d: %w", id, err)
		}
		if err := order.Confirm(); err != nil {
			return err
		}
		if err := uow.Orders().Update(ctx, order); err != nil {
			return err
		}
		confirmed = order
		return s.enqueueOrderEvent(ctx, uow, kafka.EventTypeOrderConfirmed, order, "")
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderConfirmed()
	}
	s.logger.WithField("order_id", confirmed.ID).Info("order confirmed")
	return confirmed, nil
}

// CancelOrder отменяет заказ и возвращает зарезервированные остатки на склад.
// Отмена допустима из pending и confirmed; повторная отмена — ошибка.
func (s *Service) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	defer s.observe("cancel_order")()

	var cancelled *domain.Order
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		order, err := uow.Orders().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("order %d: %w", id, err)
		}
		if err := order.Cancel(); err != nil {
			return err
		}

		// Возврат остатков по каждой позиции заказа.
		for _, item := range order.Items {
			product, err := uow.Products().Get(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			if err := product.IncreaseQuantity(item.Quantity); err != nil {
				return err
			}
			if err := uow.Products().Update(ctx, product); err != nil {
				return err
			}
		}

		if err := uow.Orders().Update(ctx, order); err != nil {
			return err
		}
		cancelled = order
		return s.enqueueOrderEvent(ctx, uow, kafka.EventTypeOrderCancelled, order, "cancelled by caller")
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCancelled()
	}
	s.logger.WithField("order_id", cancelled.ID).Info("order cancelled, stock restored")
	return cancelled, nil
}
