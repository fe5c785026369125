package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, остаток зарезервирован, но заказ ещё не финализирован.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed — заказ подтверждён; из этого статуса возможна только отмена.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusCancelled — заказ отменён, резерв возвращён на склад. Терминальный статус.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции присваивается хранилищем.
	ID int64
	// ProductID — ссылка на продукт; позиция не владеет продуктом.
	ProductID int64
	// Quantity — количество единиц товара, всегда > 0.
	Quantity int64
	// UnitPrice — снимок цены продукта на момент создания заказа.
	// Последующие изменения цены продукта на сумму заказа не влияют.
	UnitPrice decimal.Decimal
	// CreatedAt фиксирует момент добавления позиции в заказ.
	CreatedAt time.Time
}

// Subtotal возвращает стоимость позиции: количество, умноженное на снимок цены.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Order агрегирует позиции заказа и владеет их жизненным циклом.
type Order struct {
	ID     int64
	Status OrderStatus
	// Items хранятся в порядке добавления.
	Items []OrderItem
	// Version используется для optimistic locking при сохранении.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder создаёт пустой заказ в статусе pending.
func NewOrder() *Order {
	now := time.Now().UTC()
	return &Order{
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem добавляет позицию, снимая текущую цену продукта. Повторное добавление
// того же продукта увеличивает количество существующей позиции, а не создаёт дубль.
func (o *Order) AddItem(product *Product, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("item quantity %d must be positive: %w", quantity, ErrInvalidQuantity)
	}

	for i := range o.Items {
		if o.Items[i].ProductID == product.ID {
			o.Items[i].Quantity += quantity
			return nil
		}
	}

	o.Items = append(o.Items, OrderItem{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// Confirm переводит заказ из pending в confirmed. Пустой заказ подтвердить нельзя.
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("order %d has status %q: %w", o.ID, o.Status, ErrOrderNotPending)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order %d: %w", o.ID, ErrOrderItemsRequired)
	}
	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel отменяет заказ. Допустима отмена из pending и confirmed;
// из cancelled переходов нет.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return fmt.Errorf("order %d: %w", o.ID, ErrOrderAlreadyCancelled)
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// TotalPrice вычисляет сумму заказа из позиций; отдельно сумма не хранится.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalItems возвращает суммарное количество единиц товара в заказе.
func (o *Order) TotalItems() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// References сообщает, ссылается ли хотя бы одна позиция заказа на продукт.
func (o *Order) References(productID int64) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Active сообщает, удерживает ли заказ складской резерв (pending или confirmed).
func (o *Order) Active() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}
