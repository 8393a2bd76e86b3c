package catalog

import (
	"encoding/json"
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/tile-structures/corona.SDK/gocorona"
	"github.com/tile-structures/corona.SDK/libcorona"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState (JSON)

	center (uint16 BE), CanonicalKey  => compact encoding
	...

Corona keys always start with a non-zero center, so they sort after the state
entry and a seek to a center's 2-byte prefix lands on its first corona.

***/

var gCatalogStateKey = []byte{0x00, 0x00, 0x01}

const (
	catalogMajorVers = 2026
	catalogMinorVers = 1
)

// catalogState is the persisted header entry tracking per-center counts.
type catalogState struct {
	MajorVers  int32    `json:"major_vers"`
	MinorVers  int32    `json:"minor_vers"`
	MaxCenter  int32    `json:"max_center"`
	NumCoronas []uint64 `json:"num_coronas"` // indexed by center
}

// catalog is a db wrapper for a corona catalog
type catalog struct {
	ctx        gocorona.CatalogContext
	readOnly   bool
	stateDirty bool
	state      catalogState
	db         *badger.DB
}

func OpenCatalog(ctx gocorona.CatalogContext, opts gocorona.CatalogOpts) (gocorona.Catalog, error) {
	if opts.MaxCenter <= 0 {
		opts.MaxCenter = 16
	}
	if opts.MaxCenter > gocorona.MaxCenter {
		return nil, errors.Wrap(gocorona.ErrBadCatalogParam, "MaxCenter exceeds supported range")
	}

	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(gocorona.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, the catalog ctx is considered blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = catalogMajorVers
		cat.state.MinorVers = catalogMinorVers
		cat.state.MaxCenter = opts.MaxCenter
		cat.state.NumCoronas = make([]uint64, opts.MaxCenter+1)
	}

	if err == nil {
		if cat.state.MajorVers != catalogMajorVers || cat.state.MinorVers != catalogMinorVers {
			err = errors.New("catalog version is incompatible")
		} else if opts.MaxCenter > cat.state.MaxCenter {
			err = errors.New("catalog's MaxCenter is below the requested MaxCenter")
		}
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened corona catalog %q (MaxCenter=%d)", opts.DbPathName, cat.state.MaxCenter)
	return cat, nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumCoronas(center int) int64 {
	if center <= 0 || center >= len(cat.state.NumCoronas) {
		return 0
	}
	return int64(cat.state.NumCoronas[center])
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cat.state)
		})
	})
}

func (cat *catalog) flushState() {
	if !cat.stateDirty || cat.readOnly {
		return
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		stateBuf, err := json.Marshal(&cat.state)
		if err != nil {
			return err
		}
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err != nil {
		panic(err)
	}
	cat.stateDirty = false
}

func (cat *catalog) Close() error {
	cat.flushState()
	if cat.db != nil {
		cat.db.Close()
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
		cat.ctx = nil
	}
	return nil
}

// appendCoronaKey forms the db key for c: center (uint16 BE) then CanonicalKey,
// so all coronas of a center are contiguous and sorted by rotation class.
func appendCoronaKey(key []byte, c gocorona.Corona) []byte {
	key = append(key, byte(c.Center>>8), byte(c.Center))
	return append(key, c.CanonicalKey()...)
}

// TryAddCorona adds the given corona if no rotation of it is already present.
//
// If true is returned, c was not present and was added.
func (cat *catalog) TryAddCorona(c gocorona.Corona) bool {
	if cat.readOnly {
		return false
	}
	if c.Center <= 0 || c.Center >= len(cat.state.NumCoronas) {
		return false
	}

	var keyBuf [192]byte
	key := appendCoronaKey(keyBuf[:0], c)

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err == nil {
		return false
	}
	if err != badger.ErrKeyNotFound {
		panic(err)
	}

	err = txn.Set(key, c.AppendCompactTo(nil))
	if err == nil {
		err = txn.Commit()
	}
	if err != nil {
		panic(err)
	}

	cat.state.NumCoronas[c.Center]++
	cat.stateDirty = true
	return true
}

// Select fires onHit with each stored corona matching the given criteria,
// in ascending (center, canonical key) order.
//
// Values are decoded from their compact encodings as they are read back.
func (cat *catalog) Select(sel gocorona.CoronaSelector, onHit gocorona.OnCoronaHit) {
	lo := sel.MinCenter
	if lo < 1 {
		lo = 1
	}
	hi := sel.MaxCenter

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
	})
	defer it.Close()

	minKey := [2]byte{byte(lo >> 8), byte(lo)}

	for it.Seek(minKey[:]); it.Valid(); it.Next() {
		item := it.Item()
		key := item.Key()
		if len(key) < 2 {
			continue
		}
		center := int(key[0])<<8 | int(key[1])
		if center == 0 {
			continue // state entry
		}
		if center > hi {
			break
		}

		err := item.Value(func(val []byte) error {
			cor, err := libcorona.ParseCompact(string(val))
			if err != nil {
				return err
			}
			if sel.SelectsCorona(cor) {
				onHit <- cor
			}
			return nil
		})
		if err != nil {
			panic(err)
		}
	}
}
