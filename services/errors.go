package services

import "errors"

// Caller-correctable failures the controllers map onto status codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotDeliveryCrew = errors.New("user is not in the delivery crew group")
	ErrCartConflict    = errors.New("cart was consumed by a concurrent order")
)
