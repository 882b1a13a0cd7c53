package domains

import "github.com/facebook/redex-core/internal/patricia"

// SetDomain is the single (non-paired) hashed/Patricia-tree powerset
// named in spec.md §3.3 as "Hashed / Patricia powerset": add, remove,
// contains, size, union, intersection, difference, lifted to a lattice
// with join=union, meet=intersection, bottom=∅. Grounded on sparta's
// HashedSetAbstractDomain / PatriciaTreeSetAbstractDomain, both of which
// wrap a single persistent set rather than Powerset's over/under pair.
//
// As with Powerset, Top (the universal set) is tracked with a flag since
// the element universe is not enumerable in general.
//
// Instantiated as *SetDomain[K].
type SetDomain[K any] struct {
	codec patricia.Codec[K]
	top   bool
	set   patricia.Set[K]
}

func NewSetDomain[K any](codec patricia.Codec[K], elements ...K) *SetDomain[K] {
	s := patricia.NewSet[K](codec)
	for _, e := range elements {
		s = s.Add(e)
	}
	return &SetDomain[K]{codec: codec, set: s}
}

func SetDomainBottom[K any](codec patricia.Codec[K]) *SetDomain[K] {
	return &SetDomain[K]{codec: codec, set: patricia.NewSet[K](codec)}
}

func SetDomainTop[K any](codec patricia.Codec[K]) *SetDomain[K] {
	return &SetDomain[K]{codec: codec, top: true, set: patricia.NewSet[K](codec)}
}

func (s *SetDomain[K]) IsBottom() bool { return !s.top && s.set.IsEmpty() }
func (s *SetDomain[K]) IsTop() bool    { return s.top }

func (s *SetDomain[K]) Elements() patricia.Set[K] { return s.set }
func (s *SetDomain[K]) Size() int                 { return s.set.Size() }
func (s *SetDomain[K]) Contains(k K) bool          { return s.top || s.set.Contains(k) }

// Add returns a new domain with k added, or s unchanged if already top.
func (s *SetDomain[K]) Add(k K) *SetDomain[K] {
	if s.top {
		return s
	}
	return &SetDomain[K]{codec: s.codec, set: s.set.Add(k)}
}

// Remove returns a new domain with k removed. Removing from top is
// refused (there is no finite "universe minus one element" to
// represent) and returns s unchanged — callers operating near top should
// not rely on Remove to narrow it.
func (s *SetDomain[K]) Remove(k K) *SetDomain[K] {
	if s.top {
		return s
	}
	return &SetDomain[K]{codec: s.codec, set: s.set.Remove(k)}
}

func (s *SetDomain[K]) Leq(other *SetDomain[K]) bool {
	if other.top {
		return true
	}
	if s.top {
		return false
	}
	return s.set.IsSubsetOf(other.set)
}

func (s *SetDomain[K]) Equals(other *SetDomain[K]) bool {
	if s.top != other.top {
		return false
	}
	return s.top || s.set.Equals(other.set)
}

func (s *SetDomain[K]) SetToBottom() { s.top = false; s.set = patricia.NewSet[K](s.codec) }
func (s *SetDomain[K]) SetToTop()    { s.top = true; s.set = patricia.NewSet[K](s.codec) }

func (s *SetDomain[K]) JoinWith(other *SetDomain[K]) {
	switch {
	case s.top:
		return
	case other.top:
		s.SetToTop()
	default:
		s.set = s.set.Union(other.set)
	}
}

func (s *SetDomain[K]) WidenWith(other *SetDomain[K]) { s.JoinWith(other) }

func (s *SetDomain[K]) MeetWith(other *SetDomain[K]) {
	switch {
	case other.top:
		return
	case s.top:
		s.top = false
		s.set = other.set
	default:
		s.set = s.set.Intersection(other.set)
	}
}

func (s *SetDomain[K]) NarrowWith(other *SetDomain[K]) { s.MeetWith(other) }

func (s *SetDomain[K]) Copy() *SetDomain[K] {
	clone := *s
	return &clone
}
