package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
	"github.com/vladislavdragonenkov/warehouse/internal/messaging/kafka"
)

// CreateProduct создаёт продукт с проверкой уникальности названия и сохраняет его.
func (s *Service) CreateProduct(ctx context.Context, name string, quantity int64, price decimal.Decimal) (*domain.Product, error) {
	defer s.observe("create_product")()

	var created *domain.Product
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		if _, err := uow.Products().GetByName(ctx, name); err == nil {
			return fmt.Errorf("product %q: %w", name, domain.ErrProductAlreadyExists)
		} else if !errors.Is(err, domain.ErrProductNotFound) {
			return err
		}

		product, err := domain.NewProduct(name, quantity, price)
		if err != nil {
			return err
		}

		created, err = uow.Products().Add(ctx, product)
		if err != nil {
			return err
		}
		return s.enqueueProductEvent(ctx, uow, kafka.EventTypeProductCreated, created)
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordProductCreated()
	}
	s.logger.WithFields(log.Fields{
		"product_id": created.ID,
		"name":       created.Name,
	}).Info("product created")
	return created, nil
}

// GetProduct возвращает продукт по идентификатору.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	defer s.observe("get_product")()

	var product *domain.Product
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		product, err = uow.Products().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts возвращает все продукты.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	defer s.observe("list_products")()

	var products []domain.Product
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		products, err = uow.Products().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListAvailableProducts возвращает продукты с положительным остатком.
func (s *Service) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	defer s.observe("list_available_products")()

	var products []domain.Product
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		products, err = uow.Products().ListInStock(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateProduct применяет частичное обновление: непереданные поля не меняются,
// переданные проходят валидацию сущности.
func (s *Service) UpdateProduct(ctx context.Context, id int64, update ProductUpdate) (*domain.Product, error) {
	defer s.observe("update_product")()

	var updated *domain.Product
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		product, err := uow.Products().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("product %d: %w", id, err)
		}
		if err := product.Update(update.Name, update.Price); err != nil {
			return err
		}
		if err := uow.Products().Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	s.logger.WithField("product_id", updated.ID).Info("product updated")
	return updated, nil
}

// RestockProduct пополняет остаток продукта.
func (s *Service) RestockProduct(ctx context.Context, id int64, amount int64) (*domain.Product, error) {
	defer s.observe("restock_product")()

	var restocked *domain.Product
	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		product, err := uow.Products().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("product %d: %w", id, err)
		}
		if err := product.IncreaseQuantity(amount); err != nil {
			return err
		}
		if err := uow.Products().Update(ctx, product); err != nil {
			return err
		}
		restocked = product
		return nil
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"product_id": restocked.ID,
		"quantity":   restocked.Quantity,
	}).Info("product restocked")
	return restocked, nil
}

// DeleteProduct удаляет продукт, если на него не ссылается ни один активный
// (pending или confirmed) заказ. Ссылки из отменённых заказов удалению не мешают:
// их позиции хранят снимок цены и не зависят от продукта.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	defer s.observe("delete_product")()

	err := s.uow.Do(ctx, func(uow domain.UnitOfWork) error {
		product, err := uow.Products().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("product %d: %w", id, err)
		}

		orders, err := uow.Orders().ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		for _, order := range orders {
			if order.Active() {
				return fmt.Errorf("product %d is referenced by order %d: %w",
					id, order.ID, domain.ErrProductInUse)
			}
		}

		if err := uow.Products().Delete(ctx, id); err != nil {
			return err
		}
		return s.enqueueProductEvent(ctx, uow, kafka.EventTypeProductDeleted, product)
	})
	if err != nil {
		s.recordFailure(err)
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordProductDeleted()
	}
	s.logger.WithField("product_id", id).Info("product deleted")
	return nil
}
