package dataset

import "errors"

// Load errors
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrInvalidRecord     = errors.New("invalid invoice record")
	ErrDuplicateInvoice  = errors.New("duplicate invoice id")
	ErrEmptySheet        = errors.New("dataset has no header row")
)
