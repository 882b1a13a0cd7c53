package cse

import "github.com/facebook/redex-core/internal/ir"

// defBinding maps a ValueID to the instruction that first produced it,
// within one of the two def envs of spec.md §4.7. A missing key reads
// as "no known definer" (the flat domain's Top), exactly like
// internal/domains.Environment's "missing key is top" convention —
// this package reimplements that convention directly with a plain map
// instead of domains.Environment because the barrier-clear step (spec.md
// §4.7, "reset every barrier-sensitive binding in the ref env to top")
// needs to enumerate live bindings by predicate, which Environment's
// Patricia-backed abstraction does not expose; see DESIGN.md.
type defBinding map[ValueID]*ir.Instruction

// regBinding maps a register to its currently-known ValueID (spec.md
// §4.7's ref env). A missing key reads as unbound/Top.
type regBinding map[ir.Reg]ValueID

func cloneDef(m defBinding) defBinding {
	out := make(defBinding, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneReg(m regBinding) regBinding {
	out := make(regBinding, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// defLeq reports a <= b under the "missing key is top" convention:
// every key b binds concretely must be bound in a to the same value.
func defLeq(a, b defBinding) bool {
	for k, v := range b {
		if av, ok := a[k]; !ok || av != v {
			return false
		}
	}
	return true
}

func defEquals(a, b defBinding) bool { return len(a) == len(b) && defLeq(a, b) }

// defJoin keeps only the keys bound to the same instruction on both
// sides — a key bound on only one side is implicitly Top on the
// other, and x ⊔ Top = Top, so dropping it (reverting to "unbound" =
// Top) is the correct join result.
func defJoin(a, b defBinding) defBinding {
	out := make(defBinding)
	for k, v := range a {
		if bv, ok := b[k]; ok && bv == v {
			out[k] = v
		}
	}
	return out
}

// defMeet is union-like: every key bound on either side survives,
// keeping whichever side's definer when both sides disagree (meet has
// no representable common refinement for two distinct definers; this
// branch is unreachable from the CSE pass, which never calls Meet).
func defMeet(a, b defBinding) defBinding {
	out := cloneDef(a)
	for k, v := range b {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func regLeq(a, b regBinding) bool {
	for k, v := range b {
		if av, ok := a[k]; !ok || av != v {
			return false
		}
	}
	return true
}

func regEquals(a, b regBinding) bool { return len(a) == len(b) && regLeq(a, b) }

func regJoin(a, b regBinding) regBinding {
	out := make(regBinding)
	for k, v := range a {
		if bv, ok := b[k]; ok && bv == v {
			out[k] = v
		}
	}
	return out
}

func regMeet(a, b regBinding) regBinding {
	out := cloneReg(a)
	for k, v := range b {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// State is the reduced product of spec.md §4.7's three components:
// the barrier-sensitive def env, the barrier-insensitive def env, and
// the ref env. It satisfies lattice.Domain[*State] so it plugs
// directly into internal/fixpoint.Iterator.
type State struct {
	bottom bool
	bsDef  defBinding
	biDef  defBinding
	ref    regBinding
}

// NewBottomState is the seed value internal/fixpoint.Iterator.NewBottom
// requires.
func NewBottomState() *State { return &State{bottom: true} }

// NewTopState is the entry state of a method with no preconditions:
// every env empty (every key reads as its component's Top).
func NewTopState() *State {
	return &State{bsDef: defBinding{}, biDef: defBinding{}, ref: regBinding{}}
}

func (s *State) IsBottom() bool { return s.bottom }
func (s *State) IsTop() bool {
	return !s.bottom && len(s.bsDef) == 0 && len(s.biDef) == 0 && len(s.ref) == 0
}

func (s *State) Leq(other *State) bool {
	switch {
	case s.bottom:
		return true
	case other.bottom:
		return false
	default:
		return defLeq(s.bsDef, other.bsDef) && defLeq(s.biDef, other.biDef) && regLeq(s.ref, other.ref)
	}
}

func (s *State) Equals(other *State) bool {
	if s.bottom != other.bottom {
		return false
	}
	if s.bottom {
		return true
	}
	return defEquals(s.bsDef, other.bsDef) && defEquals(s.biDef, other.biDef) && regEquals(s.ref, other.ref)
}

func (s *State) SetToBottom() { *s = State{bottom: true} }
func (s *State) SetToTop()    { *s = *NewTopState() }

func (s *State) JoinWith(other *State) {
	switch {
	case s.bottom:
		*s = *other.Copy()
	case other.bottom:
		return
	default:
		s.bsDef = defJoin(s.bsDef, other.bsDef)
		s.biDef = defJoin(s.biDef, other.biDef)
		s.ref = regJoin(s.ref, other.ref)
	}
}

// WidenWith is plain join: every component here is a map that can only
// shrink across iterations (join keeps the intersection of agreeing
// bindings), so the chain is already finite-height without a separate
// accelerated widening operator.
func (s *State) WidenWith(other *State) { s.JoinWith(other) }

func (s *State) MeetWith(other *State) {
	switch {
	case other.bottom:
		s.SetToBottom()
	case s.bottom:
		return
	default:
		s.bsDef = defMeet(s.bsDef, other.bsDef)
		s.biDef = defMeet(s.biDef, other.biDef)
		s.ref = regMeet(s.ref, other.ref)
	}
}

func (s *State) NarrowWith(other *State) { s.MeetWith(other) }

func (s *State) Copy() *State {
	if s.bottom {
		return NewBottomState()
	}
	return &State{bsDef: cloneDef(s.bsDef), biDef: cloneDef(s.biDef), ref: cloneReg(s.ref)}
}

// RefGet returns the ValueID bound to r, or (0, false) if unbound.
func (s *State) RefGet(r ir.Reg) (ValueID, bool) { id, ok := s.ref[r]; return id, ok }

// RefSet mutates the receiver in place, binding r to id.
func (s *State) RefSet(r ir.Reg, id ValueID) { s.ref[r] = id }

// DefGet returns the recorded first definer for id in either the
// barrier-sensitive or barrier-insensitive env.
func (s *State) DefGet(sensitive bool, id ValueID) (*ir.Instruction, bool) {
	if sensitive {
		insn, ok := s.bsDef[id]
		return insn, ok
	}
	insn, ok := s.biDef[id]
	return insn, ok
}

// DefSetIfAbsent records insn as id's first definer, only if none is
// known yet (spec.md §4.7: "if no defining instruction exists yet for
// this id, record the current instruction as the first definer").
func (s *State) DefSetIfAbsent(sensitive bool, id ValueID, insn *ir.Instruction) {
	m := s.biDef
	if sensitive {
		m = s.bsDef
	}
	if _, ok := m[id]; !ok {
		m[id] = insn
	}
}

// ClearBarrierSensitive implements spec.md §4.7's barrier handling:
// drop the entire barrier-sensitive def env, and reset every ref-env
// binding whose value is barrier-sensitive back to unbound (Top).
func (s *State) ClearBarrierSensitive(isSensitive func(ValueID) bool) {
	s.bsDef = defBinding{}
	for r, id := range s.ref {
		if isSensitive(id) {
			delete(s.ref, r)
		}
	}
}
