package gocorona

import "errors"

// Errors
var (
	ErrBadEncoding     = errors.New("bad corona encoding")
	ErrBadCenter       = errors.New("center must be a positive integer")
	ErrBadSizeSet      = errors.New("bad allowed-sizes set")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrCatalogReadOnly = errors.New("catalog is read-only")
	ErrNotValid        = errors.New("corona is not valid")
)
