package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/beyondbinary/buddeee/storage"
	"github.com/panjf2000/ants/v2"
)

// Reindexer rebuilds the embedding index from the authoritative store
// whenever the catalog mutates. Rebuilds run out-of-band on a worker pool so
// catalog writes never wait on embedding calls; a failed rebuild leaves the
// previous snapshot serving queries.
type Reindexer struct {
	index   *Index
	events  storage.EventRepository
	pool    *ants.Pool
	pending atomic.Bool
	logger  *slog.Logger
}

// ReindexerOption configures a Reindexer.
type ReindexerOption func(*Reindexer) error

// WithReindexerLogger sets a custom logger.
// Default is slog.Default().
func WithReindexerLogger(logger *slog.Logger) ReindexerOption {
	return func(r *Reindexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for background rebuilds.
// Default is 1: rebuilds are serialized so a slow embed run cannot pile up
// overlapping full-catalog embedding jobs.
func WithPoolSize(size int) ReindexerOption {
	return func(r *Reindexer) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size, ants.WithNonblocking(true))
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// NewReindexer creates a reindexer for the given index and catalog store.
func NewReindexer(index *Index, events storage.EventRepository, opts ...ReindexerOption) (*Reindexer, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if events == nil {
		return nil, ErrEventRepositoryRequired
	}

	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	r := &Reindexer{
		index:  index,
		events: events,
		pool:   pool,
		logger: slog.Default().With("component", "reindexer"),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// OnCatalogMutated schedules a full rebuild after a catalog write commits.
// Fire-and-forget: the call returns immediately even while a rebuild is in
// flight, and rebuild errors are logged, never surfaced to the mutating
// request. Mutations arriving during a rebuild coalesce into one trailing
// rebuild so the index converges on the latest catalog.
func (r *Reindexer) OnCatalogMutated() {
	if r.submitRebuild() {
		return
	}
	r.pending.Store(true)
	// The worker may have drained between the refused submit and the flag
	// store, so try once more; a second refusal means the worker is still
	// running and will pick the flag up itself.
	r.submitRebuild()
}

func (r *Reindexer) submitRebuild() bool {
	err := r.pool.Submit(r.runRebuild)
	if err == nil {
		return true
	}
	if !errors.Is(err, ants.ErrPoolOverload) {
		r.logger.Error("failed to schedule reindex", "err", err)
	}
	return false
}

func (r *Reindexer) runRebuild() {
	for {
		if err := r.RebuildNow(context.Background()); err != nil {
			r.logger.Error("background reindex failed, keeping previous snapshot", "err", err)
		}
		if !r.pending.CompareAndSwap(true, false) {
			return
		}
	}
}

// RebuildNow reloads the entire catalog and rebuilds the index synchronously.
// Used at startup and by the background trigger.
func (r *Reindexer) RebuildNow(ctx context.Context) error {
	events, err := r.events.ListAllEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog for reindex: %w", err)
	}
	return r.index.Rebuild(ctx, events)
}

// Release releases the worker pool.
// The reindexer should not be used after calling Release.
func (r *Reindexer) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
