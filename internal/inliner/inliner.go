package inliner

import (
	"sort"

	"github.com/facebook/redex-core/internal/ir"
	"github.com/facebook/redex-core/internal/metrics"
)

// Driver runs the bottom-up inlining pass of spec.md §4.6 over one
// scope.
type Driver struct {
	Scope     *ir.Scope
	Resolver  ir.Resolver
	Config    Config
	Mode      Mode
	Metrics   *metrics.Aggregator
	ForceKeep map[ir.MethodRef]bool // force-marked callees; shouldInline accepts them without the cost model, legality still applies
	RootKept  func(ir.MethodRef) bool

	legality *Legality
	cm       *CandidateMap
	visited  map[ir.MethodRef]bool
	callerOf map[ir.MethodRef]bool // on the current DFS call stack
}

// Run builds the candidate map from candidates and inlines bottom-up,
// then applies the make-static post-pass. Returns the callee methods
// whose access was promoted to static, in canonical order; every
// invoke-direct to them in scope has already been rewritten to
// invoke-static by PromoteToStatic.
func Run(scope *ir.Scope, candidates map[ir.MethodRef]*ir.Method, resolver ir.Resolver, cfg Config, mode Mode, rootKept func(ir.MethodRef) bool, agg *metrics.Aggregator) []*ir.Method {
	if agg == nil {
		agg = metrics.NewAggregator()
	}
	if rootKept == nil {
		rootKept = func(ir.MethodRef) bool { return false }
	}
	d := &Driver{
		Scope:    scope,
		Resolver: resolver,
		Config:   cfg,
		Mode:     mode,
		Metrics:  agg,
		RootKept: rootKept,
		legality: NewLegality(scope, resolver, cfg, mode),
		cm:       BuildCandidateMap(scope, candidates, resolver, mode),
		visited:  make(map[ir.MethodRef]bool),
		callerOf: make(map[ir.MethodRef]bool),
	}

	for _, caller := range topLevelCallers(scope, d.cm) {
		d.inlineInto(caller)
	}

	return PromoteToStatic(scope, d.legality.ToPromote)
}

// topLevelCallers returns every concrete method that is not itself a
// callee of anyone, in the deterministic caller-ordered comparator of
// spec.md §5 (compare by class, name, proto).
func topLevelCallers(scope *ir.Scope, cm *CandidateMap) []*ir.Method {
	var out []*ir.Method
	for _, class := range scope.Classes() {
		for _, m := range class.Methods {
			if m.IsConcrete() && !cm.IsCallee(m.Ref) {
				out = append(out, m)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return compareMethodRef(out[i].Ref, out[j].Ref) })
	return out
}

// compareMethodRef is the canonical ordering spec.md §5 requires:
// class, then name, then proto (return type, then params).
func compareMethodRef(a, b ir.MethodRef) bool {
	if a.Class != b.Class {
		return a.Class < b.Class
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.Proto.Return != b.Proto.Return {
		return a.Proto.Return < b.Proto.Return
	}
	na, nb := len(a.Proto.Params), len(b.Proto.Params)
	for i := 0; i < na && i < nb; i++ {
		if a.Proto.Params[i] != b.Proto.Params[i] {
			return a.Proto.Params[i] < b.Proto.Params[i]
		}
	}
	return na < nb
}

// inlineInto recurses into caller's callee graph in DFS order,
// breaking recursion with a call-stack set, and inlines every
// legal/worthwhile callsite bottom-up: a callee is fully resolved
// (its own callees already inlined) before it is spliced into caller.
func (d *Driver) inlineInto(caller *ir.Method) {
	if d.callerOf[caller.Ref] || d.visited[caller.Ref] {
		return // break recursion; never retry a caller already visited
	}
	d.callerOf[caller.Ref] = true
	defer func() { delete(d.callerOf, caller.Ref) }()

	callees := append([]*ir.Method(nil), d.cm.Callees[caller.Ref]...)
	sort.Slice(callees, func(i, j int) bool { return compareMethodRef(callees[i].Ref, callees[j].Ref) })

	for _, callee := range callees {
		d.inlineInto(callee)

		callsite, ok := d.cm.Callsites[callEdge{caller.Ref, callee.Ref}]
		if !ok {
			continue
		}
		numCallers := len(d.cm.Callers[callee.Ref])
		if !d.shouldInline(caller, callee, numCallers) {
			continue
		}
		reason := d.legality.Check(caller, callee, callsite)
		if reason != Ok {
			d.Metrics.Inc(reason.String())
			continue
		}
		Splice(caller, callee, callsite)
		d.Metrics.Inc("calls_inlined")
	}
	d.visited[caller.Ref] = true
}

// shouldInline implements spec.md §4.6's should_inline predicate.
func (d *Driver) shouldInline(caller, callee *ir.Method, numCallers int) bool {
	if d.ForceKeep[callee.Ref] {
		return true
	}
	inlinedCost := InlinedCost(callee.Code())
	invokeCost := InvokeCost(callee)

	if d.RootKept(callee.Ref) {
		if !d.Config.InlineSmallNonDeletables {
			return false
		}
		return inlinedCost <= invokeCost
	}
	if numCallers <= 1 {
		return true
	}
	if !d.Config.MultipleCallers {
		return false
	}
	methodCost := MethodCost(callee)
	return inlinedCost*numCallers > invokeCost*numCallers+methodCost
}

// PromoteToStatic implements spec.md §4.6's post-pass: every callee
// CreateVMethod recorded is promoted atomically, in the canonical
// comparator's order (not by signature, since promotion mutates it),
// and every invoke-direct to it scope-wide is rewritten to
// invoke-static.
func PromoteToStatic(scope *ir.Scope, toPromote map[ir.MethodRef]*ir.Method) []*ir.Method {
	var ordered []*ir.Method
	for _, m := range toPromote {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool { return compareMethodRef(ordered[i].Ref, ordered[j].Ref) })

	promoted := make(map[ir.MethodRef]bool, len(ordered))
	for _, m := range ordered {
		m.Access = m.Access.WithStatic()
		promoted[m.Ref] = true
	}

	for _, class := range scope.Classes() {
		for _, m := range class.Methods {
			if !m.IsConcrete() {
				continue
			}
			for _, insn := range m.Code().Instructions() {
				if insn.Op == ir.OpInvokeDirect && promoted[insn.Operand.Method] {
					insn.Op = ir.OpInvokeStatic
				}
			}
		}
	}
	return ordered
}

// PromoteVisibility makes every field, method, and type callee
// referenced accessible from caller's class, per spec.md §4.6's
// "the implementation promotes to public" (a coarser but always-safe
// stand-in for a precise reachability-based visibility analysis).
func PromoteVisibility(scope *ir.Scope, callee *ir.Method) {
	for _, insn := range callee.Code().Instructions() {
		switch {
		case insn.HasField():
			if f, ok := resolveFieldDef(scope, insn.Operand.Field); ok {
				f.Access = f.Access.WithPublic()
			}
		case insn.HasMethod():
			// Resolution may legitimately fail for external/platform
			// targets; those need no visibility change from this scope.
			for _, class := range scope.Classes() {
				for _, m := range class.Methods {
					if m.Ref == insn.Operand.Method {
						m.Access = m.Access.WithPublic()
					}
				}
			}
		case insn.HasType():
			if c, ok := scope.Lookup(insn.Operand.Type); ok {
				c.Access = c.Access.WithPublic()
			}
		}
	}
	if class, ok := scope.Lookup(callee.Class); ok {
		class.Access = class.Access.WithPublic()
	}
}

func resolveFieldDef(scope *ir.Scope, ref ir.FieldRef) (*ir.Field, bool) {
	class, ok := scope.Lookup(ref.Class)
	if !ok {
		return nil, false
	}
	for _, f := range class.Fields {
		if f.Ref.Equals(ref) {
			return f, true
		}
	}
	return nil, false
}
