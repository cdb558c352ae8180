package engine

import (
	"context"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"potlogic/models"
)

// EquityCache is an optional shared equity cache (e.g. Redis-backed) that
// the engine consults after its in-process cache. Implementations must be
// safe for concurrent use; a failed lookup simply recomputes.
type EquityCache interface {
	Get(ctx context.Context, key string) (EquityEstimate, bool)
	Set(ctx context.Context, key string, est EquityEstimate)
}

// CacheKey builds the canonical encoding of an equity query: sorted hole
// tokens, sorted board tokens, opponent count, seed, and sample count.
// Identical situations map to the same key regardless of card order;
// queries run at different sample counts never share an entry.
func CacheKey(hole, board []models.Card, opponents int, seed *int64, samples int) string {
	h := models.CardStrings(hole)
	sort.Strings(h)
	b := models.CardStrings(board)
	sort.Strings(b)

	s := "-"
	if seed != nil {
		s = strconv.FormatInt(*seed, 10)
	}

	return strings.Join(h, "") + "|" + strings.Join(b, "") + "|" + strconv.Itoa(opponents) + "|" + s + "|" + strconv.Itoa(samples)
}

func newLocalCache(size int) *lru.Cache[string, EquityEstimate] {
	if size <= 0 {
		return nil
	}
	cache, err := lru.New[string, EquityEstimate](size)
	if err != nil {
		return nil
	}
	return cache
}

func (e *Engine) cachedEquity(ctx context.Context, key string) (EquityEstimate, bool) {
	if e.local != nil {
		if est, ok := e.local.Get(key); ok {
			return est, true
		}
	}
	if e.shared != nil {
		if est, ok := e.shared.Get(ctx, key); ok {
			if e.local != nil {
				e.local.Add(key, est)
			}
			return est, true
		}
	}
	return EquityEstimate{}, false
}

func (e *Engine) storeEquity(ctx context.Context, key string, est EquityEstimate) {
	if e.local != nil {
		e.local.Add(key, est)
	}
	if e.shared != nil {
		e.shared.Set(ctx, key, est)
	}
}
