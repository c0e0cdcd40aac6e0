package screen

import (
	"fmt"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

const resolverCacheSize = 32

// Selector procedurally determines a capture region. Bounds returns
// (region, true) when it produced one; the resolver falls back to its
// default region otherwise. Name is the memoization key: a selector's
// result is assumed stable for a session, so re-resolution is only forced
// by using a new name or calling Invalidate.
type Selector struct {
	Name   string
	Bounds func() (Region, bool)
}

// Resolver memoizes region selection behind a bounded LRU cache. Safe for
// concurrent use from multiple sync loops.
type Resolver struct {
	cache    gcache.Cache
	group    singleflight.Group
	fallback Region
}

// NewResolver builds a resolver that substitutes fallback whenever a
// selector yields nothing.
func NewResolver(fallback Region) *Resolver {
	return &Resolver{
		cache:    gcache.New(resolverCacheSize).LRU().Build(),
		fallback: fallback,
	}
}

// Resolve returns the region for the selector, computing and caching it on
// first use. Concurrent first resolutions of the same selector are
// deduplicated.
func (r *Resolver) Resolve(sel Selector) (Region, error) {
	if v, err := r.cache.Get(sel.Name); err == nil {
		return v.(Region), nil
	}

	v, err, _ := r.group.Do(sel.Name, func() (interface{}, error) {
		region := r.fallback
		if sel.Bounds != nil {
			if b, ok := sel.Bounds(); ok {
				region = b
			}
		}
		if !region.Valid() {
			return Region{}, fmt.Errorf("resolve region %q: %w", sel.Name, ErrInvalidRegion)
		}
		if err := r.cache.Set(sel.Name, region); err != nil {
			return Region{}, fmt.Errorf("cache region %q: %w", sel.Name, err)
		}
		return region, nil
	})
	if err != nil {
		return Region{}, err
	}
	return v.(Region), nil
}

// Invalidate drops a cached resolution so the next Resolve recomputes it.
func (r *Resolver) Invalidate(name string) {
	r.cache.Remove(name)
}
