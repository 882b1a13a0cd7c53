package cse

import (
	"github.com/facebook/redex-core/internal/ir"
	"github.com/facebook/redex-core/internal/metrics"
	"github.com/facebook/redex-core/internal/passlog"
	"github.com/facebook/redex-core/internal/workerpool"
)

// RunScope runs the CSE pass over every concrete method in scope,
// implementing spec.md §5's tier-1 scheduling model: "per-method work
// is distributed across a parallel worker pool ... each method
// analysis runs in isolation on its own method body". ss is read-only
// during the pass (built once via NewSharedState before RunScope is
// called) and agg is a concurrency-safe counter bag, so no additional
// synchronization is required across workers.
func RunScope(scope *ir.Scope, ss *SharedState, agg *metrics.Aggregator) {
	log := passlog.Get("cse")

	var methods []*ir.Method
	for _, class := range scope.Classes() {
		for _, m := range class.Methods {
			if m.IsConcrete() {
				methods = append(methods, m)
			}
		}
	}

	workerpool.Run(methods, func(m *ir.Method) {
		result := AnalyzeMethod(m, ss)
		n := Apply(m, result.Forwards)
		if n > 0 {
			log.Debugf("%s: rewrote %d redundant recomputation(s)", m.Ref, n)
		}
		agg.Add("instructions_eliminated", int64(n))
	})
}
