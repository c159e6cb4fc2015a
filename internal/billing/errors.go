package billing

import "errors"

// Validation errors. All are recoverable by the caller correcting its
// input; none of them leaves any state behind.
var (
	ErrInvalidSelection = errors.New("part not found in catalog")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidDiscount  = errors.New("discount must not be negative")
	ErrIndexOutOfRange  = errors.New("line item index out of range")
	ErrMissingCustomer  = errors.New("invoice requires a customer")
	ErrEmptyInvoice     = errors.New("invoice requires at least one line item")
)
