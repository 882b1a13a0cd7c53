package domains

// Either2 is the disjoint union of two domains A and B, grounded on
// spec.md §3.3: it holds exactly one variant at a time; joining across
// different variants collapses to ⊤, meeting across different variants
// collapses to ⊥, and each variant's own ⊥/⊤ are identified with the
// union's ⊥/⊤ (so Either2 has no separate "both variants agree this is
// bottom" state — the first variant to go bottom makes the whole value
// bottom, matching DisjointUnionAbstractDomain's behavior of normalizing
// an extremal variant to the shared extremal tag rather than keeping it
// tagged).
//
// As with Product2, Go's lack of sum types means this is spelled out as
// a two-variant struct instead of spec.md's n-ary union; nested Either2
// values (Either2[A, *Either2[B, C]]) extend it to more variants the
// same way Product3 nests Product2.
//
// Instantiated as *Either2[A, B].
type Either2[A Domain2Elem[A], B Domain2Elem[B]] struct {
	tag   eitherTag
	first A
	second B
}

type eitherTag int

const (
	eitherBottom eitherTag = iota
	eitherTop
	eitherFirst
	eitherSecond
)

func NewFirst[A Domain2Elem[A], B Domain2Elem[B]](a A) *Either2[A, B] {
	e := &Either2[A, B]{tag: eitherFirst, first: a}
	e.normalize()
	return e
}

func NewSecond[A Domain2Elem[A], B Domain2Elem[B]](b B) *Either2[A, B] {
	e := &Either2[A, B]{tag: eitherSecond, second: b}
	e.normalize()
	return e
}

func EitherBottom[A Domain2Elem[A], B Domain2Elem[B]]() *Either2[A, B] {
	return &Either2[A, B]{tag: eitherBottom}
}

func EitherTop[A Domain2Elem[A], B Domain2Elem[B]]() *Either2[A, B] {
	return &Either2[A, B]{tag: eitherTop}
}

// normalize collapses a tagged variant whose own value is extremal into
// the union-level bottom/top tag.
func (e *Either2[A, B]) normalize() {
	switch e.tag {
	case eitherFirst:
		switch {
		case e.first.IsBottom():
			*e = Either2[A, B]{tag: eitherBottom}
		case e.first.IsTop():
			*e = Either2[A, B]{tag: eitherTop}
		}
	case eitherSecond:
		switch {
		case e.second.IsBottom():
			*e = Either2[A, B]{tag: eitherBottom}
		case e.second.IsTop():
			*e = Either2[A, B]{tag: eitherTop}
		}
	}
}

func (e *Either2[A, B]) IsBottom() bool { return e.tag == eitherBottom }
func (e *Either2[A, B]) IsTop() bool    { return e.tag == eitherTop }

// First/Second return the wrapped variant value and whether that
// variant is the one currently held (false for bottom, top, or the
// other variant).
func (e *Either2[A, B]) First() (A, bool)  { return e.first, e.tag == eitherFirst }
func (e *Either2[A, B]) Second() (B, bool) { return e.second, e.tag == eitherSecond }

func (e *Either2[A, B]) Leq(other *Either2[A, B]) bool {
	switch {
	case e.tag == eitherBottom:
		return true
	case other.tag == eitherTop:
		return true
	case e.tag == eitherTop:
		return other.tag == eitherTop
	case other.tag == eitherBottom:
		return false
	case e.tag != other.tag:
		return false
	case e.tag == eitherFirst:
		return e.first.Leq(other.first)
	default:
		return e.second.Leq(other.second)
	}
}

func (e *Either2[A, B]) Equals(other *Either2[A, B]) bool {
	if e.tag != other.tag {
		return false
	}
	switch e.tag {
	case eitherFirst:
		return e.first.Equals(other.first)
	case eitherSecond:
		return e.second.Equals(other.second)
	default:
		return true
	}
}

func (e *Either2[A, B]) SetToBottom() { *e = Either2[A, B]{tag: eitherBottom} }
func (e *Either2[A, B]) SetToTop()    { *e = Either2[A, B]{tag: eitherTop} }

func (e *Either2[A, B]) JoinWith(other *Either2[A, B]) { e.combine(other, false) }
func (e *Either2[A, B]) WidenWith(other *Either2[A, B]) { e.combine(other, false) }
func (e *Either2[A, B]) MeetWith(other *Either2[A, B]) { e.combine(other, true) }
func (e *Either2[A, B]) NarrowWith(other *Either2[A, B]) { e.combine(other, true) }

func (e *Either2[A, B]) combine(other *Either2[A, B], meet bool) {
	absorbing, identity := eitherTop, eitherBottom
	if meet {
		absorbing, identity = eitherBottom, eitherTop
	}
	switch {
	case e.tag == absorbing:
		return
	case other.tag == absorbing:
		*e = Either2[A, B]{tag: absorbing}
	case other.tag == identity:
		return
	case e.tag == identity:
		*e = *other.Copy()
	case e.tag != other.tag:
		*e = Either2[A, B]{tag: absorbing}
	case e.tag == eitherFirst:
		if meet {
			e.first.MeetWith(other.first)
		} else {
			e.first.JoinWith(other.first)
		}
		e.normalize()
	default:
		if meet {
			e.second.MeetWith(other.second)
		} else {
			e.second.JoinWith(other.second)
		}
		e.normalize()
	}
}

func (e *Either2[A, B]) Copy() *Either2[A, B] {
	clone := &Either2[A, B]{tag: e.tag}
	switch e.tag {
	case eitherFirst:
		clone.first = e.first.Copy()
	case eitherSecond:
		clone.second = e.second.Copy()
	}
	return clone
}
