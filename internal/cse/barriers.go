package cse

import "github.com/facebook/redex-core/internal/ir"

// SharedState is the cross-method setup spec.md §4.7 assigns to the
// CSE engine: a denylist of known-safe framework calls, the types
// whose static calls are side-effect free, and a once-computed
// per-method barrier summary.
type SharedState struct {
	resolver    ir.Resolver
	safeMethods map[ir.MethodRef]bool
	safeTypes   map[ir.Type]bool
	barriers    map[ir.MethodRef]bool
}

// NewSharedState builds the per-scope setup. safeMethods/safeTypes
// seed the "known pure" denylist (spec.md §4.7's safe_methods/
// safe_types); callers append to the defaults this repository ships
// with DefaultSafeTypes.
func NewSharedState(scope *ir.Scope, resolver ir.Resolver, safeMethods []ir.MethodRef, safeTypes []ir.Type) *SharedState {
	ss := &SharedState{
		resolver:    resolver,
		safeMethods: make(map[ir.MethodRef]bool, len(safeMethods)),
		safeTypes:   make(map[ir.Type]bool, len(safeTypes)),
	}
	for _, m := range safeMethods {
		ss.safeMethods[m] = true
	}
	for _, t := range safeTypes {
		ss.safeTypes[t] = true
	}
	ss.computeMethodBarriers(scope)
	return ss
}

// DefaultSafeTypes is the hard-coded denylist of framework types whose
// static calls are known not to touch field/array state (spec.md
// §4.7's example, java.lang.Math).
var DefaultSafeTypes = []ir.Type{"Ljava/lang/Math;"}

// computeMethodBarriers scans every concrete method's instructions
// once for *structural* barrier candidates (the opcode families
// listed in spec.md §4.7), recording whether invoking that method is
// itself a possible barrier. This is intentionally not a transitive,
// interprocedural fixpoint over the call graph: the spec describes a
// single scan ("computed once by scanning every instruction in every
// scope method"), so an invoke of another scope method is itself
// treated as a barrier unless its target class/ref is in the safe
// lists — see DESIGN.md for this Open-Question resolution.
func (ss *SharedState) computeMethodBarriers(scope *ir.Scope) {
	ss.barriers = make(map[ir.MethodRef]bool)
	for _, class := range scope.Classes() {
		for _, m := range class.Methods {
			if !m.IsConcrete() {
				continue
			}
			barrier := false
			for _, insn := range m.Code().Instructions() {
				if ss.isStructuralBarrier(insn) {
					barrier = true
					break
				}
			}
			ss.barriers[m.Ref] = barrier
		}
	}
}

// isStructuralBarrier classifies insn without consulting another
// method's summary (used only to build the summary table itself).
func (ss *SharedState) isStructuralBarrier(insn *ir.Instruction) bool {
	switch {
	case insn.Op.IsInvoke():
		return !ss.isKnownSafeRef(insn.Operand.Method)
	case insn.Op.IsIput(), insn.Op.IsSput():
		return ss.isVolatileOrUnresolvedField(insn)
	default:
		return insn.Op.IsBarrierCandidate()
	}
}

func (ss *SharedState) isKnownSafeRef(ref ir.MethodRef) bool {
	return ss.safeTypes[ref.Class] || ss.safeMethods[ref]
}

func (ss *SharedState) isVolatileOrUnresolvedField(insn *ir.Instruction) bool {
	f := insn.Operand.Field
	kind := ir.FieldInstance
	if insn.Op.IsSput() {
		kind = ir.FieldStatic
	}
	def, ok := ss.resolver.ResolveField(f.Class, f.Name, f.FType, kind)
	if !ok {
		return true
	}
	return def.IsVolatile()
}

// IsBarrier reports whether insn, encountered while analyzing a
// method, invalidates barrier-sensitive bindings. Invokes consult the
// precomputed per-method summary (spec.md §4.7's "an invoke whose
// summary is entirely barrier-irrelevant ... is not itself a
// barrier").
func (ss *SharedState) IsBarrier(insn *ir.Instruction) bool {
	if !insn.Op.IsInvoke() {
		if insn.Op.IsIput() || insn.Op.IsSput() {
			return ss.isVolatileOrUnresolvedField(insn)
		}
		return insn.Op.IsBarrierCandidate()
	}
	ref := insn.Operand.Method
	if ss.isKnownSafeRef(ref) {
		return false
	}
	if target, ok := ss.resolver.ResolveMethod(ref, ir.SearchAny); ok && !target.IsExternal() {
		if barrier, known := ss.barriers[target.Ref]; known {
			return barrier
		}
	}
	return true
}
