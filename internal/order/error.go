package order

import (
	"errors"
	"strings"
)

var (
	// -- Resource state --
	ErrOrderNotFound      = errors.New("order not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product is no longer available")
	ErrInsufficientStock  = errors.New("insufficient stock")

	// -- State machine --
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyCancelled  = errors.New("order is already cancelled")
	ErrOrderShipped      = errors.New("cannot cancel shipped order, please contact support")

	// -- Authorization --
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCartInvalid is matched via errors.Is against *CartInvalidError.
	ErrCartInvalid = errors.New("cart validation failed")
)

// CartInvalidError carries the per-line reasons cart validation failed.
type CartInvalidError struct {
	Reasons []string
}

func (e *CartInvalidError) Error() string {
	return "cart validation failed: " + strings.Join(e.Reasons, ", ")
}

func (e *CartInvalidError) Unwrap() error { return ErrCartInvalid }
