package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/minyoungbaek/eventory/internal/application/event"
)

// Categories and cities are seed data and never disappear, so only
// positive answers are cached. A miss or a Redis failure falls through
// to the wrapped repository.
const refdataTTL = 24 * time.Hour

type RefDataCache struct {
	cache *Cache
	next  event.RefData
}

func NewRefDataCache(cache *Cache, next event.RefData) *RefDataCache {
	return &RefDataCache{cache: cache, next: next}
}

func (r *RefDataCache) CategoryExists(ctx context.Context, id int64) (bool, error) {
	key := fmt.Sprintf("refdata:category:%d", id)
	if hit, err := r.cache.Client.Get(ctx, key).Result(); err == nil && hit == "1" {
		return true, nil
	}

	ok, err := r.next.CategoryExists(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		_ = r.cache.Client.Set(ctx, key, "1", refdataTTL).Err()
	}
	return ok, nil
}

func (r *RefDataCache) CitiesExist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	var misses []int64
	for _, id := range ids {
		key := fmt.Sprintf("refdata:city:%d", id)
		if hit, err := r.cache.Client.Get(ctx, key).Result(); err == nil && hit == "1" {
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return true, nil
	}

	ok, err := r.next.CitiesExist(ctx, misses)
	if err != nil {
		return false, err
	}
	if ok {
		for _, id := range misses {
			key := fmt.Sprintf("refdata:city:%d", id)
			_ = r.cache.Client.Set(ctx, key, "1", refdataTTL).Err()
		}
	}
	return ok, nil
}
