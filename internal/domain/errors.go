package domain

import "errors"

var (
	// Ошибка пустого названия продукта.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка неположительной цены продукта или позиции заказа.
	ErrInvalidPrice = errors.New("price must be greater than zero")
	// Ошибка некорректного количества: отрицательный остаток при создании
	// или неположительная величина изменения остатка.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// Ошибка нехватки остатка на складе под запрошенное количество.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductNotFound возвращается, если продукт не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// Ошибка создания продукта с уже занятым названием.
	ErrProductAlreadyExists = errors.New("product already exists")
	// Ошибка удаления продукта, на который ссылается активный заказ.
	ErrProductInUse = errors.New("product is referenced by an active order")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// Ошибка создания или подтверждения заказа без позиций.
	ErrOrderItemsRequired = errors.New("order must contain at least one item")
	// Ошибка подтверждения заказа не из статуса pending.
	ErrOrderNotPending = errors.New("only pending orders can be confirmed")
	// Ошибка повторной отмены уже отменённого заказа.
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")
	// ErrVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrVersionConflict = errors.New("version conflict")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsNotFound проверяет, является ли ошибка отсутствием продукта или заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrOrderNotFound)
}

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsValidation проверяет, относится ли ошибка к нарушению инвариантов сущностей.
func IsValidation(err error) bool {
	return errors.Is(err, ErrProductNameRequired) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrOrderItemsRequired)
}
