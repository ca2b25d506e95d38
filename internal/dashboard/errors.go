package dashboard

import "errors"

var (
	// ErrInvoiceNotFound is returned when an action targets an unknown invoice
	ErrInvoiceNotFound = errors.New("invoice not found")
)
