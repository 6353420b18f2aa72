// Package catalog loads destination inventory and hands out immutable
// snapshots of it.
package catalog

import (
	"context"
	"errors"
	"sync/atomic"

	"tripdeck/models"
)

// ErrEmptySource is returned by a loader that was given nothing to read.
var ErrEmptySource = errors.New("catalog: no source configured")

// Loader produces a complete catalog. Failures are reported here, once, and
// never reach the pricing code.
type Loader interface {
	Load(ctx context.Context) (*models.Catalog, error)
}

// Store holds the current snapshot. A refresh swaps the pointer so readers
// keep a consistent view for as long as they hold the old one.
type Store struct {
	current atomic.Pointer[models.Catalog]
}

// NewStore starts with an empty snapshot.
func NewStore() *Store {
	st := &Store{}
	st.current.Store(models.EmptyCatalog())
	return st
}

func (st *Store) Current() *models.Catalog {
	return st.current.Load()
}

// Swap installs c as the current snapshot. A nil c installs an empty one.
func (st *Store) Swap(c *models.Catalog) {
	if c == nil {
		c = models.EmptyCatalog()
	}
	st.current.Store(c)
}

// Reload loads through l and swaps on success. On error the old snapshot stays.
func (st *Store) Reload(ctx context.Context, l Loader) (*models.Catalog, error) {
	c, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	st.Swap(c)
	return c, nil
}
