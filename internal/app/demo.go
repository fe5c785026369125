package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/warehouse/internal/service/warehouse"
)

// RunDemo последовательно прогоняет демонстрационные сценарии склада:
// управление продуктами, жизненный цикл заказа и обработку ошибок.
func RunDemo(ctx context.Context, svc *warehouse.Service, logger *log.Entry) error {
	if err := demoProductManagement(ctx, svc, logger); err != nil {
		return fmt.Errorf("product management demo: %w", err)
	}
	if err := demoOrderManagement(ctx, svc, logger); err != nil {
		return fmt.Errorf("order management demo: %w", err)
	}
	demoErrorHandling(ctx, svc, logger)

	logger.Info("=== All demos completed successfully ===")
	return nil
}

func demoProductManagement(ctx context.Context, svc *warehouse.Service, logger *log.Entry) error {
	logger.Info("=== Product Management Demo ===")

	laptop, err := svc.CreateProduct(ctx, "Laptop", 10, decimal.RequireFromString("999.99"))
	if err != nil {
		return err
	}
	mouse, err := svc.CreateProduct(ctx, "Mouse", 50, decimal.RequireFromString("29.99"))
	if err != nil {
		return err
	}
	if _, err := svc.CreateProduct(ctx, "Keyboard", 30, decimal.RequireFromString("79.99")); err != nil {
		return err
	}

	products, err := svc.ListProducts(ctx)
	if err != nil {
		return err
	}
	logger.WithField("total", len(products)).Info("products in catalog")

	newPrice := decimal.RequireFromString("899.99")
	laptop, err = svc.UpdateProduct(ctx, laptop.ID, warehouse.ProductUpdate{Price: &newPrice})
	if err != nil {
		return err
	}
	logger.WithField("price", laptop.Price.String()).Info("laptop price updated")

	mouse, err = svc.RestockProduct(ctx, mouse.ID, 20)
	if err != nil {
		return err
	}
	logger.WithField("quantity", mouse.Quantity).Info("mouse restocked")

	return nil
}

func demoOrderManagement(ctx context.Context, svc *warehouse.Service, logger *log.Entry) error {
	logger.Info("=== Order Management Demo ===")

	products, err := svc.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) < 2 {
		return fmt.Errorf("not enough products for order demo: %d", len(products))
	}
	laptop, mouse := products[0], products[1]

	order, err := svc.CreateOrder(ctx, []warehouse.OrderLine{
		{ProductID: laptop.ID, Quantity: 2},
		{ProductID: mouse.ID, Quantity: 5},
	})
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"total_items": order.TotalItems(),
		"total_price": order.TotalPrice().String(),
	}).Info("order created")

	afterOrder, err := svc.GetProduct(ctx, laptop.ID)
	if err != nil {
		return err
	}
	logger.WithField("quantity", afterOrder.Quantity).Info("laptop stock after order")

	orders, err := svc.ListOrders(ctx, nil)
	if err != nil {
		return err
	}
	logger.WithField("total", len(orders)).Info("orders in system")

	cancelled, err := svc.CancelOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	logger.WithField("order_id", cancelled.ID).Info("order cancelled")

	afterCancel, err := svc.GetProduct(ctx, laptop.ID)
	if err != nil {
		return err
	}
	logger.WithField("quantity", afterCancel.Quantity).Info("laptop stock after cancellation")

	return nil
}

// demoErrorHandling показывает, что валидация и проверка остатков возвращают
// типизированные ошибки, не оставляя частичных изменений.
func demoErrorHandling(ctx context.Context, svc *warehouse.Service, logger *log.Entry) {
	logger.Info("=== Error Handling Demo ===")

	if _, err := svc.CreateProduct(ctx, "Invalid Product", 10, decimal.RequireFromString("-50")); err != nil {
		logger.WithError(err).Info("expected error: invalid price")
	}

	products, err := svc.ListProducts(ctx)
	if err != nil || len(products) == 0 {
		return
	}
	if _, err := svc.CreateOrder(ctx, []warehouse.OrderLine{
		{ProductID: products[0].ID, Quantity: 1000},
	}); err != nil {
		logger.WithError(err).Info("expected error: insufficient stock")
	}
}
