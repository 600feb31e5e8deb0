package loader

import (
	"context"

	"github.com/c360/jsonld/pkg/retry"
)

// Retrying wraps a loader with exponential backoff. Grammar failures in
// fetched content should be marked non-retryable by the wrapped loader;
// transport failures are retried up to the configured schedule.
type Retrying struct {
	next Loader
	cfg  retry.Config
}

// NewRetrying wraps next with the default backoff schedule.
func NewRetrying(next Loader) *Retrying {
	return &Retrying{next: next, cfg: retry.DefaultConfig()}
}

// NewRetryingWithConfig wraps next with a custom schedule.
func NewRetryingWithConfig(next Loader, cfg retry.Config) *Retrying {
	return &Retrying{next: next, cfg: cfg}
}

// Load implements Loader.
func (l *Retrying) Load(ctx context.Context, url string) (*Document, error) {
	return retry.DoWithResult(ctx, l.cfg, func() (*Document, error) {
		return l.next.Load(ctx, url)
	})
}
