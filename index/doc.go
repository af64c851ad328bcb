// Package index maintains the in-memory embedding index over the events
// catalog.
//
// The index holds (vector, event-snapshot) pairs derived from the catalog and
// answers nearest-neighbor queries for the chat pipeline's retrieval stage.
// Rebuilds replace the whole collection atomically: concurrent readers see
// either the old snapshot or the new one in full, never a mix. The catalog
// table remains the source of truth; between a catalog mutation and the next
// rebuild the index may serve stale snapshots, which the pipeline's
// verification stage compensates for.
package index
