package catalog

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"tripdeck/models"
	"tripdeck/mq"
)

// RefreshChannel is the Redis channel that announces new inventory.
const RefreshChannel = "catalog-refresh"

// Refresher reloads the catalog when asked and swaps it into the store.
// With a Redis connection, requests go through pub/sub so every instance
// reloads; without one, Request reloads inline.
type Refresher struct {
	Store  *Store
	Loader Loader
	Conn   *redis.Client
	// OnSwap is called with each newly installed snapshot.
	OnSwap func(*models.Catalog)
}

// Refresh drops any cached copy, reloads and swaps.
func (r *Refresher) Refresh(ctx context.Context) error {
	if inv, ok := r.Loader.(interface{ Invalidate(context.Context) error }); ok {
		if err := inv.Invalidate(ctx); err != nil {
			log.Printf("[Refresher] invalidate cache: %v", err)
		}
	}
	c, err := r.Store.Reload(ctx, r.Loader)
	if err != nil {
		log.Printf("[Refresher] reload failed, keeping current catalog: %v", err)
		return err
	}
	log.Printf("[Refresher] catalog swapped: %d cities, %d packages", len(c.HotelData), len(c.Packages))
	if r.OnSwap != nil {
		r.OnSwap(c)
	}
	return nil
}

// Request announces a refresh asked for by source, or performs it directly
// without Redis.
func (r *Refresher) Request(ctx context.Context, source string) error {
	if r.Conn == nil {
		return r.Refresh(ctx)
	}
	return mq.Emit(ctx, r.Conn, RefreshChannel, mq.Event{Name: "refresh", Source: source})
}

// Run listens for refresh announcements until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	if r.Conn == nil {
		return
	}
	mq.Listen(ctx, r.Conn, RefreshChannel, func(ev mq.Event) {
		log.Printf("[Refresher] %s requested by %q", ev.Name, ev.Source)
		_ = r.Refresh(ctx)
	})
}
