package gocorona

import (
	"github.com/pkg/errors"
)

const (

	// EdgesPerCorona is the number of cyclically ordered edges in a corona.
	EdgesPerCorona = 4

	// MaxCenter is the largest supported center value (canonical key fields are uint16).
	MaxCenter = 1<<16 - 1

	// MaxSegmentSize is the largest supported segment size.
	MaxSegmentSize = 1<<16 - 1
)

// AllowedSizes is the set of segment sizes a corona's edges may draw from.
type AllowedSizes []int

// DefaultAllowedSizes is the size set exercised by the reference enumeration.
var DefaultAllowedSizes = AllowedSizes{1, 2, 3, 4}

// Contains reports whether size is a member of this set.
func (sizes AllowedSizes) Contains(size int) bool {
	for _, si := range sizes {
		if si == size {
			return true
		}
	}
	return false
}

// CheckValid returns ErrBadSizeSet if this set is empty or holds an unusable size,
// so callers can tell a malformed request apart from "zero valid coronas exist".
func (sizes AllowedSizes) CheckValid() error {
	if len(sizes) == 0 {
		return errors.Wrap(ErrBadSizeSet, "size set is empty")
	}
	for _, si := range sizes {
		if si <= 0 || si > MaxSegmentSize {
			return errors.Wrapf(ErrBadSizeSet, "size %d out of range", si)
		}
	}
	return nil
}

// OnCoronaHit is a callback channel used to return coronas meeting a set of selection criteria.
type OnCoronaHit chan<- Corona

// CoronaAdder accepts coronas into a dedup collection.
type CoronaAdder interface {

	// Tries to add the given corona to this collection.
	// If true is returned, no rotation of c existed and c was added.
	TryAddCorona(c Corona) bool
}

// Catalog wraps a database of canonical corona encodings.
type Catalog interface {
	CoronaAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumCoronas returns the number of unique coronas in this catalog for a given center.
	// An out of bounds center returns 0.
	NumCoronas(center int) int64

	// Select fires the given callback with each stored corona that meets the selection criteria.
	Select(sel CoronaSelector, onHit OnCoronaHit)

	Close() error
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Signals all open catalogs to close, then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed.
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a corona Catalog.
type CatalogOpts struct {
	DbPathName string // omit for an in-memory db
	ReadOnly   bool   // open in read-only mode
	MaxCenter  int32  // largest center this catalog will count
}

// CoronaSelector is an operator that either selects a given corona or not.
type CoronaSelector struct {
	MinCenter int // lower select bound
	MaxCenter int // upper select bound
}

// DefaultCoronaSelector selects every stored corona.
var DefaultCoronaSelector = CoronaSelector{
	MinCenter: 1,
	MaxCenter: MaxCenter,
}

// SelectsCorona is a convenience function used to see if a corona is selected according to a CoronaSelector.
func (sel *CoronaSelector) SelectsCorona(c Corona) bool {
	return c.Center >= sel.MinCenter && c.Center <= sel.MaxCenter
}

// PrintOpts specifies what is printed when printing a corona
type PrintOpts struct {
	Label string // Prefix label
}
