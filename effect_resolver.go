// effect_resolver.go - Nearest palette color resolution with bounded LRU cache

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import "container/list"

// cacheEntry is one resolved color held in the LRU list.
type cacheEntry struct {
	key   uint32
	color Color
}

// NearestColorResolver snaps arbitrary colors onto a fixed palette. Results
// are memoized in an LRU cache keyed by the packed 24-bit RGB value, bounded
// at capacity entries. The resolver is owned by a single capture session and
// is only ever touched from the pipeline's sequential phases, so it carries
// no locking. The cache persists for the whole session and is dropped with
// the session; no per-frame clearing.
type NearestColorResolver struct {
	palette  Palette
	capacity int
	entries  map[uint32]*list.Element
	order    *list.List // front = most recently used
}

// NewNearestColorResolver creates a resolver for the given palette. A
// capacity <= 0 selects the default bound.
func NewNearestColorResolver(palette Palette, capacity int) *NearestColorResolver {
	if capacity <= 0 {
		capacity = COLOR_CACHE_CAPACITY
	}
	return &NearestColorResolver{
		palette:  palette,
		capacity: capacity,
		entries:  make(map[uint32]*list.Element, capacity),
		order:    list.New(),
	}
}

// Resolve returns the palette entry with minimum squared RGB distance to c.
// Ties resolve to the earliest palette entry. Always succeeds: the palette
// invariant guarantees at least one entry.
func (r *NearestColorResolver) Resolve(c Color) Color {
	key := packRGB(c.R, c.G, c.B)
	if elem, ok := r.entries[key]; ok {
		r.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry).color
	}

	nearest := r.nearest(c)

	if r.order.Len() >= r.capacity {
		oldest := r.order.Back()
		if oldest != nil {
			r.order.Remove(oldest)
			delete(r.entries, oldest.Value.(*cacheEntry).key)
		}
	}
	r.entries[key] = r.order.PushFront(&cacheEntry{key: key, color: nearest})
	return nearest
}

// nearest performs the uncached linear scan over the palette.
func (r *NearestColorResolver) nearest(c Color) Color {
	best := r.palette.Colors[0]
	bestDist := c.DistanceSq(best)
	for _, candidate := range r.palette.Colors[1:] {
		if d := c.DistanceSq(candidate); d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}

// CacheLen returns the current number of cached resolutions.
func (r *NearestColorResolver) CacheLen() int {
	return r.order.Len()
}

// Clear drops all cached resolutions. Called at session teardown only.
func (r *NearestColorResolver) Clear() {
	r.entries = make(map[uint32]*list.Element, r.capacity)
	r.order.Init()
}
