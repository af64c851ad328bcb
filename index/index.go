// Copyright 2025 Beyond Binary
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync/atomic"

	"github.com/beyondbinary/buddeee/ai"
	"github.com/beyondbinary/buddeee/core"
)

// Index is the in-memory embedding index over the events catalog.
// Queries are safe to run concurrently with a rebuild; the snapshot pointer
// is swapped atomically so readers never observe a partially built index.
type Index struct {
	embedder ai.Embedder
	snapshot atomic.Pointer[snapshot]
	logger   *slog.Logger
}

// snapshot is one immutable generation of the index. Documents keep the
// catalog's listing order; the query stage relies on that order for
// deterministic tie-breaking.
type snapshot struct {
	docs []Document
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// New creates an embedding index. The index starts unbuilt: queries return
// no results until the first Rebuild installs a snapshot.
func New(embedder ai.Embedder, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	ix := &Index{
		embedder: embedder,
		logger:   slog.Default().With("component", "embedding-index"),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// Rebuild embeds every entry and atomically replaces the current snapshot.
// An empty catalog installs a valid empty snapshot. On error the previous
// snapshot stays in place untouched.
func (ix *Index) Rebuild(ctx context.Context, events []*core.Event) error {
	if len(events) == 0 {
		ix.snapshot.Store(&snapshot{})
		ix.logger.Info("embedding index rebuilt", "documents", 0)
		return nil
	}

	texts := make([]string, len(events))
	for i, event := range events {
		texts[i] = eventToText(event)
	}

	vectors, err := ix.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed catalog: %w", err)
	}
	if len(vectors) != len(events) {
		return fmt.Errorf("%w: got %d vectors for %d entries", ErrEmbeddingMismatch, len(vectors), len(events))
	}

	docs := make([]Document, len(events))
	for i, event := range events {
		docs[i] = Document{
			Vector: normalizeVector(vectors[i]),
			Event:  event,
		}
	}

	ix.snapshot.Store(&snapshot{docs: docs})
	ix.logger.Info("embedding index rebuilt", "documents", len(docs))
	return nil
}

// Query embeds the text and returns up to k events ranked by descending
// cosine similarity. Ties keep catalog listing order. An unbuilt index
// returns no results and no error; embedding failures are returned to the
// caller. The returned events are copies: callers may mutate them without
// affecting the shared snapshot.
func (ix *Index) Query(ctx context.Context, text string, k int) ([]*core.Event, error) {
	snap := ix.snapshot.Load()
	if snap == nil {
		ix.logger.Warn("embedding index queried before first build")
		return []*core.Event{}, nil
	}
	if len(snap.docs) == 0 || k <= 0 {
		return []*core.Event{}, nil
	}

	vector, err := ix.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	vector = normalizeVector(vector)

	type match struct {
		event *core.Event
		score float32
	}

	matches := make([]match, len(snap.docs))
	for i, doc := range snap.docs {
		matches[i] = match{
			event: doc.Event,
			score: dotProduct(vector, doc.Vector),
		}
	}

	// Stable sort keeps insertion order on equal scores.
	slices.SortStableFunc(matches, func(a, b match) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return 0
	})

	if len(matches) > k {
		matches = matches[:k]
	}

	events := make([]*core.Event, len(matches))
	for i, m := range matches {
		event := *m.event
		events[i] = &event
	}
	return events, nil
}

// Ready reports whether the index has been built at least once.
func (ix *Index) Ready() bool {
	return ix.snapshot.Load() != nil
}

// Size returns the number of indexed documents in the current snapshot.
func (ix *Index) Size() int {
	snap := ix.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.docs)
}

// normalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func normalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		return make([]float32, len(v))
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// dotProduct calculates the dot product of two vectors.
// Cosine similarity for normalized vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
