package patricia

// Set is a persistent, structurally-shared set of K, implemented as a
// Tree keyed on the encoded elements with a unit payload. Grounded on
// sparta/include/PatriciaTreeSet.h, which is itself a thin adaptor over
// PatriciaTreeMap<Element, Unit>.
type Set[K any] struct {
	tree  Tree[struct{}]
	codec Codec[K]
}

// NewSet returns the empty set for the given codec.
func NewSet[K any](codec Codec[K]) Set[K] {
	return Set[K]{codec: codec}
}

func (s Set[K]) IsEmpty() bool { return s.tree.IsEmpty() }
func (s Set[K]) Size() int     { return s.tree.Size() }

func (s Set[K]) Contains(key K) bool {
	return s.tree.Contains(s.codec.Encode(key))
}

// Add returns a new set with key inserted.
func (s Set[K]) Add(key K) Set[K] {
	keepFirst := func(old, _ struct{}) struct{} { return old }
	return Set[K]{tree: s.tree.Insert(s.codec.Encode(key), struct{}{}, keepFirst), codec: s.codec}
}

// Remove returns a new set with key absent.
func (s Set[K]) Remove(key K) Set[K] {
	return Set[K]{tree: s.tree.Remove(s.codec.Encode(key)), codec: s.codec}
}

func unitCombine(struct{}, struct{}) struct{} { return struct{}{} }

// Union returns the union of s and other.
func (s Set[K]) Union(other Set[K]) Set[K] {
	return Set[K]{tree: s.tree.Union(other.tree, unitCombine), codec: s.codec}
}

// Intersection returns the elements present in both s and other.
func (s Set[K]) Intersection(other Set[K]) Set[K] {
	return Set[K]{tree: s.tree.Intersection(other.tree, unitCombine), codec: s.codec}
}

// Difference returns the elements of s not present in other.
func (s Set[K]) Difference(other Set[K]) Set[K] {
	alwaysDrop := func(struct{}) bool { return true }
	diffed := s.tree.Difference(other.tree, unitCombine, alwaysDrop)
	return Set[K]{tree: diffed, codec: s.codec}
}

// Filter returns a new set retaining only the elements for which pred
// holds.
func (s Set[K]) Filter(pred func(key K) bool) Set[K] {
	codec := s.codec
	filtered := s.tree.Filter(func(bits uint64, _ struct{}) bool { return pred(codec.Decode(bits)) })
	return Set[K]{tree: filtered, codec: s.codec}
}

// ForEach calls f once for each element, in an unspecified order.
func (s Set[K]) ForEach(f func(key K)) {
	codec := s.codec
	s.tree.ForEach(func(bits uint64, _ struct{}) { f(codec.Decode(bits)) })
}

// Elements returns the set's members as a slice, in an unspecified
// order.
func (s Set[K]) Elements() []K {
	out := make([]K, 0, s.Size())
	s.ForEach(func(key K) { out = append(out, key) })
	return out
}

// Equals reports whether s and other contain exactly the same elements.
func (s Set[K]) Equals(other Set[K]) bool {
	return s.tree.Equals(other.tree, func(struct{}, struct{}) bool { return true })
}

// IsSubsetOf reports whether every element of s is also in other.
func (s Set[K]) IsSubsetOf(other Set[K]) bool {
	return s.Difference(other).IsEmpty()
}
