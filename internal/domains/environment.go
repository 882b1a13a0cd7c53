package domains

import "github.com/facebook/redex-core/internal/patricia"

// domainTraits adapts any Domain2Elem[D] to patricia.ValueTraits[D] (and
// OrderedValueTraits[D]), so Environment/Partition can reuse
// patricia.Map wholesale instead of re-deriving map algebra.
type domainTraits[D Domain2Elem[D]] struct {
	def       func() D
	isDefault func(D) bool
}

func (t domainTraits[D]) Default() D          { return t.def() }
func (t domainTraits[D]) IsDefault(v D) bool  { return t.isDefault(v) }
func (t domainTraits[D]) Equals(a, b D) bool  { return a.Equals(b) }
func (t domainTraits[D]) Leq(a, b D) bool     { return a.Leq(b) }

// Environment is the variable→domain map of spec.md §3.3: a missing
// variable reads as ⊤, and the whole environment collapses to ⊥ the
// moment any binding is ⊥ (enforced by Set and by combine after every
// join/widen/meet/narrow, mirroring sparta's
// PatriciaTreeMapAbstractEnvironment).
// Join/widen are intersection-like over the map (only keys bound in
// both survive, since a key missing from one side is already ⊤ and
// joining with ⊤ is a no-op that would otherwise need to synthesize a
// binding); meet/narrow are union-like.
//
// Instantiated as *Environment[K, D].
type Environment[K comparable, D Domain2Elem[D]] struct {
	bottom bool
	bindings patricia.Map[K, D]
	topOf  func() D
}

// NewEnvironment returns the ⊤ environment (no bindings, every variable
// reads as topOf()).
func NewEnvironment[K comparable, D Domain2Elem[D]](codec patricia.Codec[K], topOf func() D) *Environment[K, D] {
	traits := domainTraits[D]{def: topOf, isDefault: func(d D) bool { return d.IsTop() }}
	return &Environment[K, D]{bindings: patricia.NewMap[K, D](codec, traits), topOf: topOf}
}

func (e *Environment[K, D]) IsBottom() bool { return e.bottom }
func (e *Environment[K, D]) IsTop() bool    { return !e.bottom && e.bindings.IsEmpty() }

// Get returns the domain value bound to k, or topOf() if unbound.
func (e *Environment[K, D]) Get(k K) D {
	if e.bottom {
		var d D
		return d
	}
	return e.bindings.Get(k)
}

// Set returns a new environment binding k to v; binding any variable to
// ⊥ collapses the whole environment to ⊥, per the map's convention.
func (e *Environment[K, D]) Set(k K, v D) *Environment[K, D] {
	if e.bottom {
		return e
	}
	if v.IsBottom() {
		return e.bottomEnv()
	}
	return &Environment[K, D]{bindings: e.bindings.Set(k, v), topOf: e.topOf}
}

func (e *Environment[K, D]) bottomEnv() *Environment[K, D] {
	return &Environment[K, D]{bottom: true, bindings: patricia.NewMap[K, D](e.bindings.Codec(), e.bindings.Traits()), topOf: e.topOf}
}

func (e *Environment[K, D]) Leq(other *Environment[K, D]) bool {
	switch {
	case e.bottom:
		return true
	case other.bottom:
		return false
	default:
		traits := domainTraits[D]{def: e.topOf, isDefault: func(d D) bool { return d.IsTop() }}
		return e.bindings.Leq(other.bindings, traits)
	}
}

func (e *Environment[K, D]) Equals(other *Environment[K, D]) bool {
	if e.bottom != other.bottom {
		return false
	}
	return e.bottom || e.bindings.Equals(other.bindings)
}

func (e *Environment[K, D]) SetToBottom() { *e = *e.bottomEnv() }
func (e *Environment[K, D]) SetToTop() {
	*e = Environment[K, D]{bindings: patricia.NewMap[K, D](e.bindings.Codec(), e.bindings.Traits()), topOf: e.topOf}
}

// JoinWith/WidenWith keep only keys bound (to a non-top value) in both
// environments, joining their values — a key present on only one side
// is already implicitly ⊤ there, and x ⊔ ⊤ = ⊤, so dropping it from the
// result map (where it again reads as ⊤) is equivalent and keeps the
// map sparse.
func (e *Environment[K, D]) JoinWith(other *Environment[K, D]) { e.combine(other, false, false) }
func (e *Environment[K, D]) WidenWith(other *Environment[K, D]) { e.combine(other, false, true) }

// MeetWith/NarrowWith are union-like: every key bound on either side
// ends up bound to the combination of its value on that side with the
// (implicitly ⊤) value on the other, i.e. unchanged when only on one
// side.
func (e *Environment[K, D]) MeetWith(other *Environment[K, D]) { e.combine(other, true, false) }
func (e *Environment[K, D]) NarrowWith(other *Environment[K, D]) { e.combine(other, true, true) }

func (e *Environment[K, D]) combine(other *Environment[K, D], meet, wide bool) {
	switch {
	case e.bottom && !meet:
		*e = *other.Copy()
		return
	case other.bottom && !meet:
		return
	case (e.bottom || other.bottom) && meet:
		e.SetToBottom()
		return
	}
	op := func(a, b D) D {
		r := a.Copy()
		switch {
		case meet && wide:
			r.NarrowWith(b)
		case meet:
			r.MeetWith(b)
		case wide:
			r.WidenWith(b)
		default:
			r.JoinWith(b)
		}
		return r
	}
	if meet {
		e.bindings = e.bindings.UnionWith(other.bindings, op)
	} else {
		e.bindings = e.bindings.IntersectionWith(other.bindings, op)
	}
	hasBottom := false
	e.bindings.ForEach(func(_ K, v D) {
		if v.IsBottom() {
			hasBottom = true
		}
	})
	if hasBottom {
		e.SetToBottom()
	}
}

func (e *Environment[K, D]) Copy() *Environment[K, D] {
	clone := *e
	return &clone
}
