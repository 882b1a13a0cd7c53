package domains

import "github.com/facebook/redex-core/internal/patricia"

// Partition is the label→domain map of spec.md §3.3: the opposite
// convention from Environment — a missing label reads as ⊥, and the
// partition is only ⊤ when explicitly set there (SetToTop), at which
// point labels may no longer be rebound (mirroring sparta's
// PatriciaTreeMapAbstractPartition, where the ⊤ partition represents
// "every label maps to ⊤" and is not representable as a finite map).
// Join/widen are union-like (a label on either side survives, combined
// with the other side's implicit ⊥, i.e. unchanged when present on only
// one side); meet/narrow are intersection-like.
//
// Instantiated as *Partition[K, D].
type Partition[K comparable, D Domain2Elem[D]] struct {
	top      bool
	bindings patricia.Map[K, D]
	bottomOf func() D
}

// NewPartition returns the ⊥-everywhere partition (no bindings, every
// label reads as bottomOf()).
func NewPartition[K comparable, D Domain2Elem[D]](codec patricia.Codec[K], bottomOf func() D) *Partition[K, D] {
	traits := domainTraits[D]{def: bottomOf, isDefault: func(d D) bool { return d.IsBottom() }}
	return &Partition[K, D]{bindings: patricia.NewMap[K, D](codec, traits), bottomOf: bottomOf}
}

func (p *Partition[K, D]) IsBottom() bool { return !p.top && p.bindings.IsEmpty() }
func (p *Partition[K, D]) IsTop() bool    { return p.top }

// Get returns the domain value bound to k, or bottomOf() if unbound (or
// ⊤'s implicit top-of-D if the whole partition is ⊤ — callers needing
// that value must track it separately, since D's top element is not
// otherwise threaded through here).
func (p *Partition[K, D]) Get(k K) D {
	if p.top {
		var d D
		return d
	}
	return p.bindings.Get(k)
}

// Set returns a new partition binding k to v. Rebinding a label on a ⊤
// partition is refused: ⊤ has no finite representation to carve an
// exception into, so Set on a ⊤ partition returns it unchanged.
func (p *Partition[K, D]) Set(k K, v D) *Partition[K, D] {
	if p.top {
		return p
	}
	return &Partition[K, D]{bindings: p.bindings.Set(k, v), bottomOf: p.bottomOf}
}

func (p *Partition[K, D]) Leq(other *Partition[K, D]) bool {
	switch {
	case other.top:
		return true
	case p.top:
		return false
	default:
		traits := domainTraits[D]{def: p.bottomOf, isDefault: func(d D) bool { return d.IsBottom() }}
		return p.bindings.Leq(other.bindings, traits)
	}
}

func (p *Partition[K, D]) Equals(other *Partition[K, D]) bool {
	if p.top != other.top {
		return false
	}
	return p.top || p.bindings.Equals(other.bindings)
}

func (p *Partition[K, D]) SetToBottom() {
	*p = Partition[K, D]{bindings: patricia.NewMap[K, D](p.bindings.Codec(), p.bindings.Traits()), bottomOf: p.bottomOf}
}

func (p *Partition[K, D]) SetToTop() {
	*p = Partition[K, D]{top: true, bindings: patricia.NewMap[K, D](p.bindings.Codec(), p.bindings.Traits()), bottomOf: p.bottomOf}
}

func (p *Partition[K, D]) JoinWith(other *Partition[K, D]) { p.combine(other, false) }
func (p *Partition[K, D]) WidenWith(other *Partition[K, D]) { p.combine(other, false) }
func (p *Partition[K, D]) MeetWith(other *Partition[K, D]) { p.combine(other, true) }
func (p *Partition[K, D]) NarrowWith(other *Partition[K, D]) { p.combine(other, true) }

func (p *Partition[K, D]) combine(other *Partition[K, D], meet bool) {
	switch {
	case p.top && meet:
		*p = *other.Copy()
		return
	case other.top && meet:
		return
	case p.top || other.top:
		p.SetToTop()
		return
	}
	op := func(a, b D) D {
		r := a.Copy()
		if meet {
			r.MeetWith(b)
		} else {
			r.JoinWith(b)
		}
		return r
	}
	if meet {
		p.bindings = p.bindings.IntersectionWith(other.bindings, op)
	} else {
		p.bindings = p.bindings.UnionWith(other.bindings, op)
	}
}

func (p *Partition[K, D]) Copy() *Partition[K, D] {
	clone := *p
	return &clone
}
