// Package workerpool implements the per-method worker pool of spec.md
// §5's scheduling model tier 1: "per-method work is distributed across
// a parallel worker pool (typically half of hardware concurrency,
// minimum one)". It is grounded on
// opt/cse/CommonSubexpressionElimination.cpp's use of
// `walk::parallel::code` to fan a method-level analysis out across a
// fixed-size goroutine pool; libredex's WorkQueue is a thread pool
// draining a shared queue, which this package models directly since
// Go has no equivalent standard abstraction.
package workerpool

import (
	"runtime"
	"sync"

	"github.com/petermattis/goid"

	"github.com/facebook/redex-core/internal/passlog"
)

// Size returns the worker count spec.md §5 prescribes: half of
// GOMAXPROCS, minimum one.
func Size() int {
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		n = 1
	}
	return n
}

// Run distributes fn over items across Size() goroutines and blocks
// until every item has been processed. Per spec.md §5, each item's fn
// call must not mutate state shared with any other item's call — the
// IR guarantees distinct methods' Code do not share mutable state, so
// callers pass one *ir.Method (or similar) per item.
//
// Each dispatch logs, at Debug level, the id of the goroutine that
// picked the item up (via petermattis/goid), the diagnostic spec.md §5
// calls out workers using to investigate pool imbalance.
func Run[T any](items []T, fn func(T)) {
	if len(items) == 0 {
		return
	}
	n := Size()
	if n > len(items) {
		n = len(items)
	}
	log := passlog.Get("workerpool")

	work := make(chan T)
	var wg sync.WaitGroup
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func() {
			defer wg.Done()
			for item := range work {
				log.Debugf("goroutine %d processing work item", goid.Get())
				fn(item)
			}
		}()
	}
	for _, item := range items {
		work <- item
	}
	close(work)
	wg.Wait()
}
