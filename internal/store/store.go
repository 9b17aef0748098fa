// Package store implements the in-memory indexed stores that own entity
// identity, uniqueness indexes and derived-state consistency for the
// catalog. Each store instance is self-contained: it carries its own id
// allocator and a mutex that makes every compound check-then-act sequence
// (uniqueness check then insert, stock check then decrement) atomic with
// respect to concurrent callers.
package store

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
)

// Deps bundles collaborators shared by all stores. Zero values are usable:
// a nil logger is replaced with a no-op one, nil metrics and dispatcher are
// skipped, and an empty actor defaults to "system".
type Deps struct {
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
	Actor      string
}

func (d Deps) normalize() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Actor == "" {
		d.Actor = "system"
	}
	return d
}

// idAllocator hands out strictly increasing entity ids starting at 1.
type idAllocator struct {
	last atomic.Int64
}

func (a *idAllocator) next() int64 {
	return a.last.Add(1)
}
