// Package lattice defines the abstract-domain trait shared by every
// abstract value in this repository: two extremal elements (bottom and
// top), the lattice operators leq/equals/join/meet/widen/narrow, and
// mutable in-place variants of the latter four for performance.
//
// The invariant every implementation must uphold:
//
//	a.Leq(b) && b.Leq(a)  <=>  a.Equals(b)
//
// widen must be extensive enough that iterating it over a chain of
// joined values terminates; narrow must be reductive with respect to
// meet.
//
// Convention: every type parameter constrained by Domain (or by
// AbstractValue in value.go) is instantiated with a pointer type, e.g.
// Domain[*Interval] rather than Domain[Interval]. This is because the
// mutating operators (JoinWith, WidenWith, ...) are declared with
// pointer receivers on the concrete types, and Go only attaches
// pointer-receiver methods to a type's method set when the type itself
// is a pointer type — a generic type parameter D cannot satisfy an
// interface that requires pointer-receiver methods unless D is
// instantiated as a pointer.
package lattice

// Domain is the trait every abstract domain implements. It is the Go
// analogue of the CRTP-based `AbstractDomain<D>` base class in the
// original C++ core (see DESIGN.md): a plain interface instead of a
// statically polymorphic template parameter.
type Domain[D any] interface {
	IsBottom() bool
	IsTop() bool

	Leq(other D) bool
	Equals(other D) bool

	SetToBottom()
	SetToTop()

	JoinWith(other D)
	WidenWith(other D)
	MeetWith(other D)
	NarrowWith(other D)

	// Copy returns an independent value equal to the receiver, so that
	// the mutable *With operators can be used to implement the pure
	// functional Join/Meet/Widen/Narrow helpers below.
	Copy() D
}

// Join returns a new value equal to a.JoinWith(b) without mutating a or b.
func Join[D Domain[D]](a, b D) D {
	r := a.Copy()
	r.JoinWith(b)
	return r
}

// Meet returns a new value equal to a.MeetWith(b) without mutating a or b.
func Meet[D Domain[D]](a, b D) D {
	r := a.Copy()
	r.MeetWith(b)
	return r
}

// Widen returns a new value equal to a.WidenWith(b) without mutating a or b.
func Widen[D Domain[D]](a, b D) D {
	r := a.Copy()
	r.WidenWith(b)
	return r
}

// Narrow returns a new value equal to a.NarrowWith(b) without mutating a or b.
func Narrow[D Domain[D]](a, b D) D {
	r := a.Copy()
	r.NarrowWith(b)
	return r
}
