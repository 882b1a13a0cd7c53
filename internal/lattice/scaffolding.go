package lattice

import "github.com/facebook/redex-core/internal/rterrors"

// Scaffolding lifts an AbstractValue payload V into a full Domain by
// attaching the tri-state Kind tag and centralizing extremal-case
// dispatch. This is the composition-based replacement for the C++
// core's `AbstractValue` + `AbstractDomainScaffolding` inheritance pair
// (see DESIGN.md, "Inheritance ... -> composition"): a struct holding a
// kind tag plus an optional payload, with Normalize() re-deriving the
// kind from the payload's declared kind and discarding the payload at
// extremal ends.
//
// V is conventionally a pointer type (see value.go); Scaffolding is
// itself always used through *Scaffolding[V] so that its mutating
// methods satisfy Domain[*Scaffolding[V]].
type Scaffolding[V AbstractValue[V]] struct {
	kind    Kind
	payload V
	hasPay  bool
}

// NewValue wraps a concrete, non-extremal payload.
func NewValue[V AbstractValue[V]](v V) *Scaffolding[V] {
	s := &Scaffolding[V]{kind: KindValue, payload: v, hasPay: true}
	s.Normalize()
	return s
}

// Bottom returns the bottom element of the scaffolded domain.
func Bottom[V AbstractValue[V]]() *Scaffolding[V] {
	return &Scaffolding[V]{kind: KindBottom}
}

// Top returns the top element of the scaffolded domain.
func Top[V AbstractValue[V]]() *Scaffolding[V] {
	return &Scaffolding[V]{kind: KindTop}
}

func (s *Scaffolding[V]) IsBottom() bool { return s.kind == KindBottom }
func (s *Scaffolding[V]) IsTop() bool    { return s.kind == KindTop }

// Copy returns an independent value equal to the receiver. Payloads are
// expected to be copy-on-write or value-shaped (as every domain in
// internal/domains is), so a shallow struct copy followed by a payload
// Copy() is sufficient.
func (s *Scaffolding[V]) Copy() *Scaffolding[V] {
	clone := *s
	if clone.hasPay {
		clone.payload = clone.payload.Copy()
	}
	return &clone
}

// Value returns the wrapped payload. It is a programmer error to call
// this when the domain is Bottom or Top: there is nothing to retrieve.
func (s *Scaffolding[V]) Value() V {
	if s.kind != KindValue {
		rterrors.Abort("Scaffolding.Value: %v", &rterrors.InvalidAbstractValue{
			ExpectedKind: KindValue,
			ActualKind:   s.kind,
			Operation:    "Value",
		})
	}
	return s.payload
}

// Normalize re-derives the kind tag from the payload's declared Kind()
// after an in-place mutation, discarding the payload whenever the
// result is extremal.
func (s *Scaffolding[V]) Normalize() {
	if !s.hasPay {
		return
	}
	switch s.payload.Kind() {
	case KindBottom:
		s.kind = KindBottom
		s.clearPayload()
	case KindTop:
		s.kind = KindTop
		s.clearPayload()
	default:
		s.kind = KindValue
	}
}

func (s *Scaffolding[V]) clearPayload() {
	var zero V
	s.payload = zero
	s.hasPay = false
}

func (s *Scaffolding[V]) Leq(other *Scaffolding[V]) bool {
	switch {
	case s.IsBottom():
		return true
	case other.IsTop():
		return true
	case s.IsTop():
		return other.IsTop()
	case other.IsBottom():
		return false
	default:
		return s.payload.Leq(other.payload)
	}
}

func (s *Scaffolding[V]) Equals(other *Scaffolding[V]) bool {
	if s.kind != other.kind {
		return false
	}
	if s.kind != KindValue {
		return true
	}
	return s.payload.Equals(other.payload)
}

func (s *Scaffolding[V]) SetToBottom() {
	s.kind = KindBottom
	s.clearPayload()
}

func (s *Scaffolding[V]) SetToTop() {
	s.kind = KindTop
	s.clearPayload()
}

func (s *Scaffolding[V]) JoinWith(other *Scaffolding[V]) {
	s.joinCombine(other, V.JoinWith)
}

func (s *Scaffolding[V]) WidenWith(other *Scaffolding[V]) {
	s.joinCombine(other, V.WidenWith)
}

func (s *Scaffolding[V]) MeetWith(other *Scaffolding[V]) {
	s.meetCombine(other, V.MeetWith)
}

func (s *Scaffolding[V]) NarrowWith(other *Scaffolding[V]) {
	s.meetCombine(other, V.NarrowWith)
}

// joinCombine implements the extremal-case dispatch shared by join and
// widen: bottom is the identity, top absorbs.
func (s *Scaffolding[V]) joinCombine(other *Scaffolding[V], op func(V, V)) {
	switch {
	case s.IsTop():
		return
	case other.IsTop():
		s.SetToTop()
	case other.IsBottom():
		return
	case s.IsBottom():
		*s = *other.Copy()
	default:
		op(s.payload, other.payload)
		s.Normalize()
	}
}

// meetCombine implements the extremal-case dispatch shared by meet and
// narrow: top is the identity, bottom absorbs.
func (s *Scaffolding[V]) meetCombine(other *Scaffolding[V], op func(V, V)) {
	switch {
	case s.IsBottom():
		return
	case other.IsBottom():
		s.SetToBottom()
	case other.IsTop():
		return
	case s.IsTop():
		*s = *other.Copy()
	default:
		op(s.payload, other.payload)
		s.Normalize()
	}
}
