package cache

import "sync/atomic"

// Statistics tracks cache effectiveness. All counters are updated
// atomically and may be read while the cache is in use.
type Statistics struct {
	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	evictions atomic.Int64
	size      atomic.Int64
	peakSize  atomic.Int64
}

// Hit records a cache hit.
func (s *Statistics) Hit() { s.hits.Add(1) }

// Miss records a cache miss.
func (s *Statistics) Miss() { s.misses.Add(1) }

// Set records a store operation.
func (s *Statistics) Set() { s.sets.Add(1) }

// Eviction records a capacity eviction.
func (s *Statistics) Eviction() { s.evictions.Add(1) }

// UpdateSize records the current entry count.
func (s *Statistics) UpdateSize(size int64) {
	s.size.Store(size)
	for {
		peak := s.peakSize.Load()
		if size <= peak || s.peakSize.CompareAndSwap(peak, size) {
			return
		}
	}
}

// Hits returns the total number of hits.
func (s *Statistics) Hits() int64 { return s.hits.Load() }

// Misses returns the total number of misses.
func (s *Statistics) Misses() int64 { return s.misses.Load() }

// Sets returns the total number of store operations.
func (s *Statistics) Sets() int64 { return s.sets.Load() }

// Evictions returns the total number of evictions.
func (s *Statistics) Evictions() int64 { return s.evictions.Load() }

// CurrentSize returns the current entry count.
func (s *Statistics) CurrentSize() int64 { return s.size.Load() }

// PeakSize returns the largest entry count observed.
func (s *Statistics) PeakSize() int64 { return s.peakSize.Load() }

// HitRatio returns hits / (hits + misses), or 0 when nothing was looked
// up yet.
func (s *Statistics) HitRatio() float64 {
	hits, misses := s.Hits(), s.Misses()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}
