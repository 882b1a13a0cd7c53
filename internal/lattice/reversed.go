package lattice

// Reversed wraps a domain D whose order, join, meet, widen, and narrow
// are those of D with the order flipped and bottom/top swapped. Per
// spec.md §4.1 this combinator is only valid for finite domains where
// widen == join (otherwise the "widening" produced here would not be
// extensive with respect to the reversed order) — callers are
// responsible for only reversing domains with that property; it is not
// checked here.
//
// As with every other Domain instantiation in this repository, D is
// conventionally a pointer type and Reversed is used through
// *Reversed[D].
type Reversed[D Domain[D]] struct {
	inner D
}

// Reverse wraps d, taking ownership of the given value (it is not
// copied).
func Reverse[D Domain[D]](d D) *Reversed[D] {
	return &Reversed[D]{inner: d}
}

// Inner returns the wrapped, unreversed domain value.
func (r *Reversed[D]) Inner() D { return r.inner }

func (r *Reversed[D]) IsBottom() bool { return r.inner.IsTop() }
func (r *Reversed[D]) IsTop() bool    { return r.inner.IsBottom() }

func (r *Reversed[D]) Leq(other *Reversed[D]) bool    { return other.inner.Leq(r.inner) }
func (r *Reversed[D]) Equals(other *Reversed[D]) bool { return r.inner.Equals(other.inner) }

func (r *Reversed[D]) SetToBottom() { r.inner.SetToTop() }
func (r *Reversed[D]) SetToTop()    { r.inner.SetToBottom() }

// JoinWith in the reversed order is meet in the original order, and
// vice versa for meet/widen/narrow.
func (r *Reversed[D]) JoinWith(other *Reversed[D])   { r.inner.MeetWith(other.inner) }
func (r *Reversed[D]) MeetWith(other *Reversed[D])   { r.inner.JoinWith(other.inner) }
func (r *Reversed[D]) WidenWith(other *Reversed[D])  { r.inner.NarrowWith(other.inner) }
func (r *Reversed[D]) NarrowWith(other *Reversed[D]) { r.inner.WidenWith(other.inner) }

func (r *Reversed[D]) Copy() *Reversed[D] { return &Reversed[D]{inner: r.inner.Copy()} }
