package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
	"github.com/vladislavdragonenkov/warehouse/internal/storage/memory"
)

func addOrder(t *testing.T, store *memory.Store, product *domain.Product, quantity int64) *domain.Order {
	t.Helper()
	ctx := context.Background()
	var saved *domain.Order
	err := store.Do(ctx, func(uow domain.UnitOfWork) error {
		order := domain.NewOrder()
		if err := order.AddItem(product, quantity); err != nil {
			return err
		}
		var err error
		saved, err = uow.Orders().Add(ctx, order)
		return err
	})
	if err != nil {
		t.Fatalf("add order: %v", err)
	}
	return saved
}

func TestOrderRepository_AddAssignsIDs(t *testing.T) {
	store := memory.NewStore()
	laptop := addProduct(t, store, "Laptop", 10, "999.99")

	saved := addOrder(t, store, laptop, 2)
	if saved.ID == 0 {
		t.Fatal("add must populate the order id")
	}
	if len(saved.Items) != 1 || saved.Items[0].ID == 0 {
		t.Fatalf("add must populate item ids, got %+v", saved.Items)
	}
}

func TestOrderRepository_GetNotFound(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.Do(ctx, func(uow domain.UnitOfWork) error {
		_, err := uow.Orders().Get(ctx, 404)
		return err
	})
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByStatus(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	laptop := addProduct(t, store, "Laptop", 10, "999.99")

	first := addOrder(t, store, laptop, 1)
	addOrder(t, store, laptop, 2)

	err := store.Do(ctx, func(uow domain.UnitOfWork) error {
		order, err := uow.Orders().Get(ctx, first.ID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		return uow.Orders().Update(ctx, order)
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	err = store.Do(ctx, func(uow domain.UnitOfWork) error {
		pending, err := uow.Orders().ListByStatus(ctx, domain.OrderStatusPending)
		if err != nil {
			return err
		}
		if len(pending) != 1 {
			t.Fatalf("expected 1 pending order, got %d", len(pending))
		}
		cancelled, err := uow.Orders().ListByStatus(ctx, domain.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if len(cancelled) != 1 || cancelled[0].ID != first.ID {
			t.Fatalf("expected order %d cancelled, got %+v", first.ID, cancelled)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
}

func TestOrderRepository_ListByProduct(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	laptop := addProduct(t, store, "Laptop", 10, "999.99")
	mouse := addProduct(t, store, "Mouse", 50, "29.99")

	addOrder(t, store, laptop, 1)

	err := store.Do(ctx, func(uow domain.UnitOfWork) error {
		byLaptop, err := uow.Orders().ListByProduct(ctx, laptop.ID)
		if err != nil {
			return err
		}
		if len(byLaptop) != 1 {
			t.Fatalf("expected 1 order for laptop, got %d", len(byLaptop))
		}
		byMouse, err := uow.Orders().ListByProduct(ctx, mouse.ID)
		if err != nil {
			return err
		}
		if len(byMouse) != 0 {
			t.Fatalf("expected no orders for mouse, got %d", len(byMouse))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
}

func TestOrderRepository_UpdateVersionConflict(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	laptop := addProduct(t, store, "Laptop", 10, "999.99")
	saved := addOrder(t, store, laptop, 1)

	err := store.Do(ctx, func(uow domain.UnitOfWork) error {
		order, err := uow.Orders().Get(ctx, saved.ID)
		if err != nil {
			return err
		}
		if err := order.Confirm(); err != nil {
			return err
		}
		return uow.Orders().Update(ctx, order)
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stale := *saved
	err = store.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Orders().Update(ctx, &stale)
	})
	if !domain.IsVersionConflict(err) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}
