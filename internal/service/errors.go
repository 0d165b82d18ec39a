package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrOrderNotFound  = errors.New("order not found")
	ErrItemNotFound   = errors.New("order item not found")
	ErrVendorNotFound = errors.New("vendor not found")

	ErrEmptyItems       = errors.New("order must contain at least one item")
	ErrQuantityInvalid  = errors.New("quantity must be > 0")
	ErrDuplicateProduct = errors.New("duplicate product in order items")
	ErrAddressRequired  = errors.New("delivery address is required")
	ErrPhoneRequired    = errors.New("contact phone is required")

	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrDuplicatePayment     = errors.New("order already has a payment")

	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrAlreadyCancelled  = errors.New("order already cancelled")
	ErrAlreadyDelivered  = errors.New("order already delivered")

	ErrPriceInvalid = errors.New("price must be > 0")
	ErrNameRequired = errors.New("product name is required")
)

// InsufficientStockError names the offending product and both quantities so
// the client sees exactly what could not be fulfilled.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

type ProductUnavailableError struct {
	ProductID   uuid.UUID
	ProductName string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %q is not available for ordering", e.ProductName)
}
