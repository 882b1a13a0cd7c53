package inliner

import "github.com/facebook/redex-core/internal/ir"

// CandidateMap is the bidirectional caller<->callee edge set spec.md
// §4.6 builds in a single pass: Callers[callee] lists every method
// that invokes it, Callees[caller] lists every candidate it invokes,
// and Callsites names the specific invoke instruction for an edge.
type CandidateMap struct {
	Callers   map[ir.MethodRef][]*ir.Method
	Callees   map[ir.MethodRef][]*ir.Method
	Callsites map[callEdge]*ir.Instruction
}

type callEdge struct {
	caller, callee ir.MethodRef
}

// BuildCandidateMap runs spec.md §4.6's "single pass over every
// instruction of every method": for each invoke, resolver maps the
// reference to a concrete definition; if that definition is in
// candidates, a bidirectional edge is recorded. In Intra mode, any
// callee with a caller in a different container is dropped entirely.
func BuildCandidateMap(scope *ir.Scope, candidates map[ir.MethodRef]*ir.Method, resolver ir.Resolver, mode Mode) *CandidateMap {
	cm := &CandidateMap{
		Callers:   make(map[ir.MethodRef][]*ir.Method),
		Callees:   make(map[ir.MethodRef][]*ir.Method),
		Callsites: make(map[callEdge]*ir.Instruction),
	}
	crossContainer := make(map[ir.MethodRef]bool)

	for _, class := range scope.Classes() {
		for _, caller := range class.Methods {
			if !caller.IsConcrete() {
				continue
			}
			for _, insn := range caller.Code().Instructions() {
				if !insn.Op.IsInvoke() {
					continue
				}
				callee, ok := resolver.ResolveMethod(insn.Operand.Method, ir.SearchAny)
				if !ok {
					continue
				}
				if _, want := candidates[callee.Ref]; !want {
					continue
				}
				if callee.Class != caller.Class && class.Container != "" {
					if calleeClass, ok := scope.Lookup(callee.Class); ok && calleeClass.Container != class.Container {
						crossContainer[callee.Ref] = true
					}
				}
				cm.addEdge(caller, callee, insn)
			}
		}
	}

	if mode == Intra {
		for ref := range crossContainer {
			cm.drop(ref)
		}
	}
	return cm
}

func (cm *CandidateMap) addEdge(caller, callee *ir.Method, insn *ir.Instruction) {
	cm.Callees[caller.Ref] = appendUnique(cm.Callees[caller.Ref], callee)
	cm.Callers[callee.Ref] = appendUnique(cm.Callers[callee.Ref], caller)
	cm.Callsites[callEdge{caller.Ref, callee.Ref}] = insn
}

func (cm *CandidateMap) drop(callee ir.MethodRef) {
	for _, caller := range cm.Callers[callee] {
		cm.Callees[caller.Ref] = removeMethod(cm.Callees[caller.Ref], callee)
		delete(cm.Callsites, callEdge{caller.Ref, callee})
	}
	delete(cm.Callers, callee)
}

func appendUnique(list []*ir.Method, m *ir.Method) []*ir.Method {
	for _, x := range list {
		if x == m {
			return list
		}
	}
	return append(list, m)
}

func removeMethod(list []*ir.Method, ref ir.MethodRef) []*ir.Method {
	out := list[:0]
	for _, m := range list {
		if m.Ref != ref {
			out = append(out, m)
		}
	}
	return out
}

// IsCallee reports whether ref is invoked by anyone in the map.
func (cm *CandidateMap) IsCallee(ref ir.MethodRef) bool {
	return len(cm.Callers[ref]) > 0
}
