package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "product not found", err: ErrProductNotFound, want: true},
		{name: "order not found", err: ErrOrderNotFound, want: true},
		{name: "wrapped product not found", err: fmt.Errorf("product 7: %w", ErrProductNotFound), want: true},
		{name: "other error", err: ErrInsufficientStock, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsVersionConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "version conflict", err: ErrVersionConflict, want: true},
		{name: "wrapped version conflict", err: errors.Join(ErrVersionConflict, errors.New("additional context")), want: true},
		{name: "other error", err: ErrOrderNotFound, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVersionConflict(tt.err); got != tt.want {
				t.Errorf("IsVersionConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "invalid price", err: ErrInvalidPrice, want: true},
		{name: "invalid quantity", err: ErrInvalidQuantity, want: true},
		{name: "name required", err: ErrProductNameRequired, want: true},
		{name: "items required", err: ErrOrderItemsRequired, want: true},
		{name: "wrapped invalid price", err: fmt.Errorf("price -5: %w", ErrInvalidPrice), want: true},
		{name: "insufficient stock is not validation", err: ErrInsufficientStock, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.want {
				t.Errorf("IsValidation() = %v, want %v", got, tt.want)
			}
		})
	}
}
