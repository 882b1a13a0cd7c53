package domains

// Product2 is a reduced product of two domains, grounded on
// sparta/include/ReducedProductAbstractDomain.h. Go generics have no
// variadic type parameters, so rather than spec.md's n-ary tuple this
// repository offers fixed arities (Product2, Product3); a caller needing
// more components nests products (Product2[A, *Product2[B, C]]), which
// is exactly how the original's variadic template is itself implemented
// under the hood (as a recursive pairwise fold) — see DESIGN.md.
//
// ⊥ iff either component is ⊥ (smash-bottom normalization, applied by
// normalize after every mutating operation). Reduce, if non-nil, is
// called after meet/narrow to let domain-specific cross-component
// knowledge tighten the pair further; it must leave the pair normalized
// (not ⊥ in one component only).
//
// Instantiated as *Product2[A, B].
type Product2[A Domain2Elem[A], B Domain2Elem[B]] struct {
	First  A
	Second B
	Reduce func(a A, b B)
}

// Domain2Elem is the minimal interface Product2's components must
// satisfy; it is internal/lattice.Domain spelled out locally to avoid a
// direct dependency cycle concern and to keep this file self-contained
// for readers.
type Domain2Elem[D any] interface {
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
	Copy() D
}

func NewProduct2[A Domain2Elem[A], B Domain2Elem[B]](a A, b B, reduce func(A, B)) *Product2[A, B] {
	p := &Product2[A, B]{First: a, Second: b, Reduce: reduce}
	p.normalize()
	return p
}

func (p *Product2[A, B]) normalize() {
	if p.First.IsBottom() || p.Second.IsBottom() {
		p.First.SetToBottom()
		p.Second.SetToBottom()
	}
}

func (p *Product2[A, B]) reduce() {
	if p.Reduce != nil && !p.First.IsBottom() {
		p.Reduce(p.First, p.Second)
		p.normalize()
	}
}

func (p *Product2[A, B]) IsBottom() bool { return p.First.IsBottom() }
func (p *Product2[A, B]) IsTop() bool    { return p.First.IsTop() && p.Second.IsTop() }

func (p *Product2[A, B]) Leq(other *Product2[A, B]) bool {
	return p.First.Leq(other.First) && p.Second.Leq(other.Second)
}

func (p *Product2[A, B]) Equals(other *Product2[A, B]) bool {
	return p.First.Equals(other.First) && p.Second.Equals(other.Second)
}

func (p *Product2[A, B]) SetToBottom() { p.First.SetToBottom(); p.Second.SetToBottom() }
func (p *Product2[A, B]) SetToTop()    { p.First.SetToTop(); p.Second.SetToTop() }

func (p *Product2[A, B]) JoinWith(other *Product2[A, B]) {
	p.First.JoinWith(other.First)
	p.Second.JoinWith(other.Second)
	p.normalize()
}

func (p *Product2[A, B]) WidenWith(other *Product2[A, B]) {
	p.First.WidenWith(other.First)
	p.Second.WidenWith(other.Second)
	p.normalize()
}

func (p *Product2[A, B]) MeetWith(other *Product2[A, B]) {
	p.First.MeetWith(other.First)
	p.Second.MeetWith(other.Second)
	p.normalize()
	p.reduce()
}

func (p *Product2[A, B]) NarrowWith(other *Product2[A, B]) {
	p.First.NarrowWith(other.First)
	p.Second.NarrowWith(other.Second)
	p.normalize()
	p.reduce()
}

func (p *Product2[A, B]) Copy() *Product2[A, B] {
	return &Product2[A, B]{First: p.First.Copy(), Second: p.Second.Copy(), Reduce: p.Reduce}
}

// Product3 nests a Product2 to provide three components without
// duplicating the pairwise logic above.
type Product3[A Domain2Elem[A], B Domain2Elem[B], C Domain2Elem[C]] struct {
	inner *Product2[A, *Product2[B, C]]
}

func NewProduct3[A Domain2Elem[A], B Domain2Elem[B], C Domain2Elem[C]](a A, b B, c C) *Product3[A, B, C] {
	return &Product3[A, B, C]{inner: NewProduct2(a, NewProduct2(b, c, nil), nil)}
}

func (p *Product3[A, B, C]) First() A  { return p.inner.First }
func (p *Product3[A, B, C]) Second() B { return p.inner.Second.First }
func (p *Product3[A, B, C]) Third() C  { return p.inner.Second.Second }

func (p *Product3[A, B, C]) IsBottom() bool { return p.inner.IsBottom() }
func (p *Product3[A, B, C]) IsTop() bool    { return p.inner.IsTop() }
func (p *Product3[A, B, C]) Leq(other *Product3[A, B, C]) bool    { return p.inner.Leq(other.inner) }
func (p *Product3[A, B, C]) Equals(other *Product3[A, B, C]) bool { return p.inner.Equals(other.inner) }
func (p *Product3[A, B, C]) SetToBottom()                         { p.inner.SetToBottom() }
func (p *Product3[A, B, C]) SetToTop()                            { p.inner.SetToTop() }
func (p *Product3[A, B, C]) JoinWith(other *Product3[A, B, C])    { p.inner.JoinWith(other.inner) }
func (p *Product3[A, B, C]) WidenWith(other *Product3[A, B, C])   { p.inner.WidenWith(other.inner) }
func (p *Product3[A, B, C]) MeetWith(other *Product3[A, B, C])    { p.inner.MeetWith(other.inner) }
func (p *Product3[A, B, C]) NarrowWith(other *Product3[A, B, C])  { p.inner.NarrowWith(other.inner) }
func (p *Product3[A, B, C]) Copy() *Product3[A, B, C]             { return &Product3[A, B, C]{inner: p.inner.Copy()} }
