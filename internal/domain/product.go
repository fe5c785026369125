package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает складскую позицию: товар с остатком и текущей ценой.
type Product struct {
	// ID присваивается хранилищем при первом сохранении; до этого равен нулю.
	ID int64
	// Name — уникальное название товара.
	Name string
	// Quantity — доступный остаток на складе, не бывает отрицательным.
	Quantity int64
	// Price — текущая цена за единицу, всегда строго положительная.
	Price decimal.Decimal
	// Version используется для optimistic locking при сохранении.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct создаёт продукт, проверяя инварианты: цена > 0, остаток >= 0,
// непустое название. Идентификатор присвоит репозиторий.
func NewProduct(name string, quantity int64, price decimal.Decimal) (*Product, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("price %s: %w", price, ErrInvalidPrice)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity %d must not be negative: %w", quantity, ErrInvalidQuantity)
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrProductNameRequired
	}

	now := time.Now().UTC()
	return &Product{
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update применяет частичное обновление: непереданные поля (nil) не меняются,
// переданные проходят ту же валидацию, что и при создании.
func (p *Product) Update(name *string, price *decimal.Decimal) error {
	if price != nil && !price.IsPositive() {
		return fmt.Errorf("price %s: %w", *price, ErrInvalidPrice)
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return ErrProductNameRequired
	}

	if name != nil {
		p.Name = *name
	}
	if price != nil {
		p.Price = *price
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IncreaseQuantity увеличивает остаток при пополнении склада.
func (p *Product) IncreaseQuantity(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("restock amount %d must be positive: %w", amount, ErrInvalidQuantity)
	}
	p.Quantity += amount
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// DecreaseQuantity уменьшает остаток при резервировании под заказ.
// Остаток не может стать отрицательным.
func (p *Product) DecreaseQuantity(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("order amount %d must be positive: %w", amount, ErrInvalidQuantity)
	}
	if amount > p.Quantity {
		return fmt.Errorf("product %q: requested %d, available %d: %w",
			p.Name, amount, p.Quantity, ErrInsufficientStock)
	}
	p.Quantity -= amount
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// InStock сообщает, есть ли товар в наличии.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
