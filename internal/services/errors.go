package services

import "errors"

// Sentinel errors surfaced to handlers, which map them onto HTTP
// statuses.
var (
	ErrCartFrozen         = errors.New("cart is already converted into an order")
	ErrCartConflict       = errors.New("cart was modified concurrently")
	ErrEmptyCart          = errors.New("cart has no items")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrUnknownProductKind = errors.New("unknown product kind")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrInvalidPhone       = errors.New("phone number has invalid format")
	ErrInvalidBuyingType  = errors.New("unknown buying type")
)
