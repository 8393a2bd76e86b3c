package libcorona

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/tile-structures/corona.SDK/gocorona"
)

// CoronaSet collects coronas by canonical rotation key, keeping the first
// representative of each rotation class.
type CoronaSet struct {
	byKey *redblacktree.Tree
}

func NewCoronaSet() *CoronaSet {
	return &CoronaSet{
		byKey: redblacktree.NewWith(compareCanonicalKeys),
	}
}

func compareCanonicalKeys(a, b interface{}) int {
	return a.(gocorona.CanonicalKey).Compare(b.(gocorona.CanonicalKey))
}

// TryAddCorona adds c if its rotation class is not yet present.
// If true is returned, no rotation of c existed and c was added.
func (set *CoronaSet) TryAddCorona(c gocorona.Corona) bool {
	key := c.CanonicalKey()
	if _, found := set.byKey.Get(key); found {
		return false
	}
	set.byKey.Put(key, c)
	return true
}

// Contains reports whether any rotation of c has been added.
func (set *CoronaSet) Contains(c gocorona.Corona) bool {
	_, found := set.byKey.Get(c.CanonicalKey())
	return found
}

func (set *CoronaSet) Len() int {
	return set.byKey.Size()
}

// VisitInKeyOrder calls onCorona for each member in ascending canonical key
// order, stopping early if onCorona returns false.
func (set *CoronaSet) VisitInKeyOrder(onCorona func(c gocorona.Corona) bool) {
	it := set.byKey.Iterator()
	for it.Next() {
		if !onCorona(it.Value().(gocorona.Corona)) {
			break
		}
	}
}
