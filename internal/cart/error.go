package cart

import "errors"

var (
	// -- Validation & input --
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidSize     = errors.New("selected size not available for this product")

	// -- Resource state --
	ErrProductUnavailable = errors.New("product not found or inactive")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCartItemNotFound   = errors.New("cart item not found")
)
