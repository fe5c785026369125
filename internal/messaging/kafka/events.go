package kafka

import "time"

// EventType определяет тип события склада.
type EventType string

const (
	// Product события
	EventTypeProductCreated EventType = "product.created"
	EventTypeProductDeleted EventType = "product.deleted"

	// Order события
	EventTypeOrderCreated   EventType = "order.created"
	EventTypeOrderConfirmed EventType = "order.confirmed"
	EventTypeOrderCancelled EventType = "order.cancelled"
)

// Topics для Kafka
const (
	TopicWarehouseEvents = "warehouse.events"
	TopicDeadLetterQueue = "warehouse.dlq" // Dead Letter Queue для failed messages
)

// ProductEvent представляет событие продукта.
type ProductEvent struct {
	EventType EventType `json:"event_type"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEvent представляет событие заказа.
type OrderEvent struct {
	EventType  EventType `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status"`
	TotalPrice string    `json:"total_price"`
	ItemsCount int       `json:"items_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewProductEvent создаёт событие продукта с текущим временем.
func NewProductEvent(eventType EventType, productID int64, name string, quantity int64, price string) ProductEvent {
	return ProductEvent{
		EventType: eventType,
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderEvent создаёт событие заказа с текущим временем.
func NewOrderEvent(eventType EventType, orderID int64, status, totalPrice string, itemsCount int) OrderEvent {
	return OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		Status:     status,
		TotalPrice: totalPrice,
		ItemsCount: itemsCount,
		Timestamp:  time.Now().UTC(),
	}
}
