package ports

import (
	"context"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
)

// TrailRepository is the document store for shared trails. Records are
// immutable once created.
type TrailRepository interface {
	Create(ctx context.Context, record domain.SharedTrailRecord) (string, error)
	// List returns the newest records first, capped at limit.
	List(ctx context.Context, limit int) ([]domain.SharedTrailRecord, error)
	// Watch delivers a signal whenever the store changes. The channel is
	// closed when ctx is cancelled; signals may be dropped if the consumer
	// is slow (they are level, not edge, triggers).
	Watch(ctx context.Context) <-chan struct{}
}

// Cache is a bounded key-value cache with byte values. Entry lifetime and
// capacity are implementation configuration, not per-call parameters.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}
