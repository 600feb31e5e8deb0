package cache

import "github.com/prometheus/client_golang/prometheus"

// Option configures a cache at construction time.
type Option[V any] func(*options[V])

type options[V any] struct {
	metricsReg  prometheus.Registerer
	metricsName string
	evictFn     EvictCallback[V]
}

// WithMetrics exposes the cache's statistics as Prometheus metrics
// registered against reg, labelled with name. A nil registry or empty
// name disables the option.
func WithMetrics[V any](reg prometheus.Registerer, name string) Option[V] {
	return func(o *options[V]) {
		if reg != nil && name != "" {
			o.metricsReg = reg
			o.metricsName = name
		}
	}
}

// WithEvictionCallback registers a callback invoked for every entry an
// LRU cache evicts under capacity pressure.
func WithEvictionCallback[V any](fn EvictCallback[V]) Option[V] {
	return func(o *options[V]) {
		o.evictFn = fn
	}
}

func applyOptions[V any](opts ...Option[V]) *options[V] {
	o := &options[V]{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
