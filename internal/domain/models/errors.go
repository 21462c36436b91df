package models

import "errors"

// Domain error kinds. Services wrap these with detail; handlers unwrap them to
// pick an HTTP status. None are retried automatically.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrImportFailed        = errors.New("import failed")
	ErrStoreUnavailable    = errors.New("store unavailable")
)
