package loader

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/jsonld/pkg/cache"
)

// defaultCacheSize bounds the document cache when no size is configured.
const defaultCacheSize = 64

// Caching memoizes successful loads by URL. Failed loads are not cached;
// whether to retry them is the wrapped loader's concern.
type Caching struct {
	next  Loader
	cache cache.Cache[*Document]
}

// CachingOption configures the caching loader.
type CachingOption func(*cachingConfig)

type cachingConfig struct {
	size        int
	metricsReg  prometheus.Registerer
	metricsName string
}

// WithCacheSize bounds the number of cached documents.
func WithCacheSize(size int) CachingOption {
	return func(c *cachingConfig) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithCacheMetrics exposes cache statistics as Prometheus metrics.
func WithCacheMetrics(reg prometheus.Registerer, name string) CachingOption {
	return func(c *cachingConfig) {
		c.metricsReg = reg
		c.metricsName = name
	}
}

// NewCaching wraps next with an LRU document cache.
func NewCaching(next Loader, opts ...CachingOption) (*Caching, error) {
	cfg := &cachingConfig{size: defaultCacheSize, metricsName: "documents"}
	for _, opt := range opts {
		opt(cfg)
	}

	var cacheOpts []cache.Option[*Document]
	if cfg.metricsReg != nil {
		cacheOpts = append(cacheOpts, cache.WithMetrics[*Document](cfg.metricsReg, cfg.metricsName))
	}

	c, err := cache.NewLRU[*Document](cfg.size, cacheOpts...)
	if err != nil {
		return nil, err
	}
	return &Caching{next: next, cache: c}, nil
}

// Load implements Loader.
func (l *Caching) Load(ctx context.Context, url string) (*Document, error) {
	if doc, ok := l.cache.Get(url); ok {
		return doc, nil
	}
	doc, err := l.next.Load(ctx, url)
	if err != nil {
		return nil, err
	}
	if _, err := l.cache.Set(url, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Stats returns the underlying cache statistics.
func (l *Caching) Stats() *cache.Statistics {
	return l.cache.Stats()
}
