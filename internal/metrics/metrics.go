// Package metrics is the Metrics collaborator named throughout spec.md
// §4 and §5: a set of named counters each pass increments as it runs,
// read back once the pass finishes for reporting. It has no teacher
// counterpart (kanso-lang-kanso has no pass-metrics notion at all), so
// it is grounded directly on the spec's own "Metrics interface" wording
// plus segmentio/ksuid (already in the teacher's go.mod, used there for
// opaque handler-session IDs) repurposed here to tag each run.
package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/segmentio/ksuid"
)

// RunID is an opaque identifier for one pass invocation, so that
// counters from two runs of the same pass (e.g. re-running the inliner
// after a prior optimization pass) are never confused when logged
// side by side.
type RunID string

// NewRunID mints a fresh run identifier.
func NewRunID() RunID { return RunID(ksuid.New().String()) }

// Aggregator is a concurrency-safe bag of named counters, keyed by
// category (e.g. "inlined", "not_inlinable.cross_store",
// "cse_eliminated"). Passes increment counters from worker goroutines;
// Snapshot reads them back once the run is done.
type Aggregator struct {
	run      RunID
	mu       sync.Mutex
	counters map[string]*int64
}

// NewAggregator starts a fresh counter set tagged with a new RunID.
func NewAggregator() *Aggregator {
	return &Aggregator{run: NewRunID(), counters: make(map[string]*int64)}
}

// RunID returns the aggregator's run identifier.
func (a *Aggregator) RunID() RunID { return a.run }

func (a *Aggregator) counter(category string) *int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.counters[category]
	if !ok {
		var zero int64
		c = &zero
		a.counters[category] = c
	}
	return c
}

// Inc increments category by one. Safe to call concurrently.
func (a *Aggregator) Inc(category string) { a.Add(category, 1) }

// Add increments category by delta. Safe to call concurrently.
func (a *Aggregator) Add(category string, delta int64) {
	atomic.AddInt64(a.counter(category), delta)
}

// Get returns category's current value (zero if never incremented).
func (a *Aggregator) Get(category string) int64 {
	return atomic.LoadInt64(a.counter(category))
}

// Snapshot returns a plain, point-in-time copy of every counter seen
// so far, suitable for logging or JSON serialization.
func (a *Aggregator) Snapshot() map[string]int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]int64, len(a.counters))
	for k, v := range a.counters {
		out[k] = atomic.LoadInt64(v)
	}
	return out
}
