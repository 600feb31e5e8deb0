package cache

import (
	"container/list"
	"errors"
	"sync"
)

type lruEntry[V any] struct {
	key   string
	value V
}

// lruCache evicts the least recently used entry once maxSize is
// exceeded.
type lruCache[V any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List
	stats   *Statistics
	metrics *cacheMetrics
	evictFn EvictCallback[V]
}

// NewLRU creates a cache holding at most maxSize entries.
func NewLRU[V any](maxSize int, opts ...Option[V]) (Cache[V], error) {
	if maxSize <= 0 {
		return nil, errors.New("cache: LRU size must be positive")
	}
	o := applyOptions(opts...)

	var metrics *cacheMetrics
	if o.metricsReg != nil {
		var err error
		metrics, err = newCacheMetrics(o.metricsReg, o.metricsName)
		if err != nil {
			return nil, err
		}
	}

	return &lruCache[V]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		stats:   &Statistics{},
		metrics: metrics,
		evictFn: o.evictFn,
	}, nil
}

func (c *lruCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	element, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		c.stats.Miss()
		c.metrics.recordMiss()
		var zero V
		return zero, false
	}
	c.order.MoveToFront(element)
	value := element.Value.(*lruEntry[V]).value
	c.mu.Unlock()

	c.stats.Hit()
	c.metrics.recordHit()
	return value, true
}

func (c *lruCache[V]) Set(key string, value V) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	var evicted *lruEntry[V]

	c.mu.Lock()
	element, exists := c.items[key]
	if exists {
		element.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(element)
	} else {
		c.items[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
		if len(c.items) > c.maxSize {
			evicted = c.removeOldest()
		}
	}
	size := len(c.items)
	c.mu.Unlock()

	c.stats.Set()
	c.stats.UpdateSize(int64(size))
	c.metrics.recordSet()
	c.metrics.updateSize(size)

	if evicted != nil {
		c.stats.Eviction()
		c.metrics.recordEviction()
		if c.evictFn != nil {
			// Callback runs outside the lock so it may re-enter the cache.
			c.evictFn(evicted.key, evicted.value)
		}
	}
	return !exists, nil
}

func (c *lruCache[V]) Delete(key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	c.mu.Lock()
	element, exists := c.items[key]
	if exists {
		delete(c.items, key)
		c.order.Remove(element)
	}
	size := len(c.items)
	c.mu.Unlock()

	if exists {
		c.stats.UpdateSize(int64(size))
		c.metrics.updateSize(size)
	}
	return exists, nil
}

func (c *lruCache[V]) Clear() {
	c.mu.Lock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	c.stats.UpdateSize(0)
	c.metrics.updateSize(0)
}

func (c *lruCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *lruCache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for element := c.order.Front(); element != nil; element = element.Next() {
		keys = append(keys, element.Value.(*lruEntry[V]).key)
	}
	return keys
}

func (c *lruCache[V]) Stats() *Statistics {
	return c.stats
}

// removeOldest drops the LRU entry. Caller must hold the lock.
func (c *lruCache[V]) removeOldest() *lruEntry[V] {
	element := c.order.Back()
	if element == nil {
		return nil
	}
	entry := element.Value.(*lruEntry[V])
	delete(c.items, entry.key)
	c.order.Remove(element)
	return entry
}
