// Package interproc implements the call-graph-level fixpoint harness of
// spec.md §4.5, grounded on sparta's InterproceduralAnalyzer (no single
// header of that name ships in the reference pack's original_source,
// so this package follows spec.md's description directly, in the style
// established by internal/fixpoint).
package interproc

import (
	"github.com/sasha-s/go-deadlock"
)

// Registry is the concurrent summary map workers publish into. It is
// backed by deadlock.RWMutex rather than sync.RWMutex (promoted from an
// indirect teacher dependency to direct use, per SPEC_FULL.md's domain
// stack) so that a worker wedged on Update is diagnosable instead of
// silently hanging. Harness.Run itself calls Analyze, and so Update,
// from a single goroutine; the lock matters to callers that publish
// summaries from several goroutines.
type Registry[K comparable, V any] struct {
	mu       deadlock.RWMutex
	summaries map[K]V
	dirty    bool
}

// NewRegistry returns an empty registry.
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{summaries: make(map[K]V)}
}

// Get returns the current summary for key, and whether one has been
// published yet.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.summaries[key]
	return v, ok
}

// Update publishes fn(current, hadCurrent) as key's new summary. If the
// new value differs (per equals) from the previous one, the registry's
// dirty bit is set, signaling the harness to run another round.
func (r *Registry[K, V]) Update(key K, equals func(a, b V) bool, fn func(current V, hadCurrent bool) V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, had := r.summaries[key]
	next := fn(current, had)
	if !had || !equals(current, next) {
		r.dirty = true
	}
	r.summaries[key] = next
}

// HasUpdate reports whether any Update call since the last
// MaterializeUpdate changed a summary.
func (r *Registry[K, V]) HasUpdate() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dirty
}

// MaterializeUpdate clears the dirty bit, acknowledging the current
// round's updates.
func (r *Registry[K, V]) MaterializeUpdate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirty = false
}

// Snapshot returns a copy of the current key->summary map, for building
// a call graph from the registry's present state.
func (r *Registry[K, V]) Snapshot() map[K]V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[K]V, len(r.summaries))
	for k, v := range r.summaries {
		out[k] = v
	}
	return out
}
