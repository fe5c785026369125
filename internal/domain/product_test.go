package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name     string
		prodName string
		quantity int64
		price    decimal.Decimal
		wantErr  error
	}{
		{name: "valid", prodName: "Laptop", quantity: 10, price: decimal.NewFromFloat(999.99)},
		{name: "zero quantity allowed", prodName: "Mouse", quantity: 0, price: decimal.NewFromFloat(29.99)},
		{name: "negative quantity", prodName: "Laptop", quantity: -1, price: decimal.NewFromFloat(999.99), wantErr: ErrInvalidQuantity},
		{name: "zero price", prodName: "Laptop", quantity: 10, price: decimal.Zero, wantErr: ErrInvalidPrice},
		{name: "negative price", prodName: "Laptop", quantity: 10, price: decimal.NewFromInt(-50), wantErr: ErrInvalidPrice},
		{name: "empty name", prodName: "", quantity: 10, price: decimal.NewFromInt(100), wantErr: ErrProductNameRequired},
		{name: "blank name", prodName: "   ", quantity: 10, price: decimal.NewFromInt(100), wantErr: ErrProductNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := NewProduct(tt.prodName, tt.quantity, tt.price)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if product.ID != 0 {
				t.Errorf("new product must not have an id, got %d", product.ID)
			}
			if product.Quantity != tt.quantity {
				t.Errorf("expected quantity %d, got %d", tt.quantity, product.Quantity)
			}
			if !product.Price.Equal(tt.price) {
				t.Errorf("expected price %s, got %s", tt.price, product.Price)
			}
		})
	}
}

func TestProductUpdate(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	decPtr := func(d decimal.Decimal) *decimal.Decimal { return &d }

	tests := []struct {
		name      string
		newName   *string
		newPrice  *decimal.Decimal
		wantErr   error
		wantName  string
		wantPrice decimal.Decimal
	}{
		{name: "rename only", newName: strPtr("Gaming Laptop"), wantName: "Gaming Laptop", wantPrice: decimal.NewFromInt(100)},
		{name: "reprice only", newPrice: decPtr(decimal.NewFromInt(80)), wantName: "Laptop", wantPrice: decimal.NewFromInt(80)},
		{name: "both", newName: strPtr("Ultrabook"), newPrice: decPtr(decimal.NewFromInt(120)), wantName: "Ultrabook", wantPrice: decimal.NewFromInt(120)},
		{name: "nothing", wantName: "Laptop", wantPrice: decimal.NewFromInt(100)},
		{name: "blank name rejected", newName: strPtr("  "), wantErr: ErrProductNameRequired},
		{name: "zero price rejected", newPrice: decPtr(decimal.Zero), wantErr: ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := NewProduct("Laptop", 10, decimal.NewFromInt(100))
			if err != nil {
				t.Fatalf("new product: %v", err)
			}

			err = product.Update(tt.newName, tt.newPrice)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				// Неудачное обновление не должно менять поля.
				if product.Name != "Laptop" || !product.Price.Equal(decimal.NewFromInt(100)) {
					t.Fatalf("failed update must leave product untouched, got name=%q price=%s", product.Name, product.Price)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if product.Name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, product.Name)
			}
			if !product.Price.Equal(tt.wantPrice) {
				t.Errorf("expected price %s, got %s", tt.wantPrice, product.Price)
			}
		})
	}
}

func TestProductIncreaseQuantity(t *testing.T) {
	product, err := NewProduct("Mouse", 5, decimal.NewFromFloat(29.99))
	if err != nil {
		t.Fatalf("new product: %v", err)
	}

	if err := product.IncreaseQuantity(20); err != nil {
		t.Fatalf("increase failed: %v", err)
	}
	if product.Quantity != 25 {
		t.Fatalf("expected quantity 25, got %d", product.Quantity)
	}

	for _, amount := range []int64{0, -3} {
		if err := product.IncreaseQuantity(amount); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("amount %d: expected ErrInvalidQuantity, got %v", amount, err)
		}
	}
	if product.Quantity != 25 {
		t.Fatalf("failed increase must leave quantity unchanged, got %d", product.Quantity)
	}
}

func TestProductDecreaseQuantity(t *testing.T) {
	product, err := NewProduct("Keyboard", 10, decimal.NewFromFloat(79.99))
	if err != nil {
		t.Fatalf("new product: %v", err)
	}

	if err := product.DecreaseQuantity(3); err != nil {
		t.Fatalf("decrease failed: %v", err)
	}
	if product.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", product.Quantity)
	}

	if err := product.DecreaseQuantity(8); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if product.Quantity != 7 {
		t.Fatalf("failed decrease must leave quantity unchanged, got %d", product.Quantity)
	}

	if err := product.DecreaseQuantity(0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestProductInStock(t *testing.T) {
	product, err := NewProduct("Cable", 1, decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("new product: %v", err)
	}
	if !product.InStock() {
		t.Fatal("product with quantity 1 must be in stock")
	}
	if err := product.DecreaseQuantity(1); err != nil {
		t.Fatalf("decrease failed: %v", err)
	}
	if product.InStock() {
		t.Fatal("product with quantity 0 must not be in stock")
	}
}
