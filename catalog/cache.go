package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tripdeck/models"
)

// CachedLoader keeps the last loaded catalog in Redis so restarts and other
// instances skip the inventory queries. Cache failures fall through to Next.
type CachedLoader struct {
	Next Loader
	Conn *redis.Client
	Key  string
	TTL  time.Duration
}

func NewCachedLoader(next Loader, conn *redis.Client, destination string, ttl time.Duration) *CachedLoader {
	return &CachedLoader{Next: next, Conn: conn, Key: "catalog:" + destination, TTL: ttl}
}

func (l *CachedLoader) Load(ctx context.Context) (*models.Catalog, error) {
	raw, err := l.Conn.Get(ctx, l.Key).Bytes()
	switch {
	case err == nil:
		var c models.Catalog
		if err := json.Unmarshal(raw, &c); err == nil {
			return normalize(&c), nil
		}
		log.Printf("[CatalogCache] corrupt entry %s, reloading", l.Key)
	case errors.Is(err, redis.Nil):
	default:
		log.Printf("[CatalogCache] get %s: %v", l.Key, err)
	}

	c, err := l.Next.Load(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(c); err == nil {
		if err := l.Conn.Set(ctx, l.Key, data, l.TTL).Err(); err != nil {
			log.Printf("[CatalogCache] set %s: %v", l.Key, err)
		}
	}
	return c, nil
}

// Invalidate drops the cached entry so the next Load hits the source.
func (l *CachedLoader) Invalidate(ctx context.Context) error {
	return l.Conn.Del(ctx, l.Key).Err()
}
