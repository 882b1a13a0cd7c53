package patricia

// ValueTraits supplies the per-value operations a Map needs but cannot
// derive from V's Go type alone: what a missing key reads as, whether a
// bound value is indistinguishable from that default (in which case the
// binding is dropped rather than stored explicitly), and how two values
// compare. Grounded on sparta's PatriciaTreeMap, which is parameterized
// the same way over a `Value` trait class exposing `default_value()`,
// `is_default_value()`, and `equals()`.
type ValueTraits[V any] interface {
	Default() V
	IsDefault(v V) bool
	Equals(a, b V) bool
}

// OrderedValueTraits additionally supplies a partial order on values,
// needed for Map.Leq (environments and partitions compare pointwise
// under their value domain's order).
type OrderedValueTraits[V any] interface {
	ValueTraits[V]
	Leq(a, b V) bool
}

// Map is a persistent, structurally-shared map keyed by K (via Codec)
// to values V (via ValueTraits), implemented as a Tree of encoded keys.
// A key absent from the underlying Tree reads as traits.Default(); Set
// never stores a binding equal to the default, both to keep the tree
// small and so that Equals/Leq need not special-case explicit
// default-valued bindings.
type Map[K any, V any] struct {
	tree   Tree[V]
	codec  Codec[K]
	traits ValueTraits[V]
}

// NewMap returns the empty map for the given codec and value traits.
func NewMap[K any, V any](codec Codec[K], traits ValueTraits[V]) Map[K, V] {
	return Map[K, V]{codec: codec, traits: traits}
}

// Codec returns the key codec the map was constructed with, so callers
// building a fresh empty map (e.g. a domain resetting to an extremal
// state) can reuse it without threading it through separately.
func (m Map[K, V]) Codec() Codec[K] { return m.codec }

// Traits returns the value traits the map was constructed with.
func (m Map[K, V]) Traits() ValueTraits[V] { return m.traits }

func (m Map[K, V]) IsEmpty() bool { return m.tree.IsEmpty() }
func (m Map[K, V]) Size() int     { return m.tree.Size() }

// Get returns the value bound to key, or traits.Default() if unbound.
func (m Map[K, V]) Get(key K) V {
	if v, ok := m.tree.Get(m.codec.Encode(key)); ok {
		return v
	}
	return m.traits.Default()
}

// Contains reports whether key is explicitly bound to a non-default
// value.
func (m Map[K, V]) Contains(key K) bool {
	return m.tree.Contains(m.codec.Encode(key))
}

// Set returns a new map with key bound to value, overwriting any
// existing binding. Binding to the default value instead removes key,
// per the package's sparse-storage convention.
func (m Map[K, V]) Set(key K, value V) Map[K, V] {
	bits := m.codec.Encode(key)
	if m.traits.IsDefault(value) {
		return Map[K, V]{tree: m.tree.Remove(bits), codec: m.codec, traits: m.traits}
	}
	overwrite := func(_, new V) V { return new }
	return Map[K, V]{tree: m.tree.Insert(bits, value, overwrite), codec: m.codec, traits: m.traits}
}

// Update returns a new map with key bound to f(currentValue), where
// currentValue is Get(key).
func (m Map[K, V]) Update(key K, f func(V) V) Map[K, V] {
	return m.Set(key, f(m.Get(key)))
}

// Remove returns a new map with key unbound (equivalent to Set with the
// default value).
func (m Map[K, V]) Remove(key K) Map[K, V] {
	return Map[K, V]{tree: m.tree.Remove(m.codec.Encode(key)), codec: m.codec, traits: m.traits}
}

// UnionWith returns a new map merging m and other, calling combine for
// keys bound (explicitly, to a non-default value) in both; a result
// equal to the default value erases the binding.
func (m Map[K, V]) UnionWith(other Map[K, V], combine func(a, b V) V) Map[K, V] {
	traits := m.traits
	wrapped := func(a, b V) V {
		r := combine(a, b)
		return r
	}
	merged := m.tree.Union(other.tree, wrapped)
	merged = merged.Filter(func(_ uint64, v V) bool { return !traits.IsDefault(v) })
	return Map[K, V]{tree: merged, codec: m.codec, traits: m.traits}
}

// IntersectionWith returns a new map with only the keys bound in both m
// and other, combined via combine.
func (m Map[K, V]) IntersectionWith(other Map[K, V], combine func(a, b V) V) Map[K, V] {
	traits := m.traits
	merged := m.tree.Intersection(other.tree, combine)
	merged = merged.Filter(func(_ uint64, v V) bool { return !traits.IsDefault(v) })
	return Map[K, V]{tree: merged, codec: m.codec, traits: m.traits}
}

// Filter returns a new map retaining only the bindings for which pred
// holds.
func (m Map[K, V]) Filter(pred func(key K, value V) bool) Map[K, V] {
	codec := m.codec
	filtered := m.tree.Filter(func(bits uint64, v V) bool { return pred(codec.Decode(bits), v) })
	return Map[K, V]{tree: filtered, codec: m.codec, traits: m.traits}
}

// Map returns a new map with every bound value replaced by f(value).
func (m Map[K, V]) Map(f func(V) V) Map[K, V] {
	traits := m.traits
	mapped := m.tree.Map(f, traits.IsDefault)
	return Map[K, V]{tree: mapped, codec: m.codec, traits: m.traits}
}

// ForEach calls f once for each explicitly bound (key, value) pair.
func (m Map[K, V]) ForEach(f func(key K, value V)) {
	codec := m.codec
	m.tree.ForEach(func(bits uint64, v V) { f(codec.Decode(bits), v) })
}

// Equals reports whether m and other bind every key to the same value
// (missing keys on both sides compare equal trivially, since neither
// side stores an explicit default binding).
func (m Map[K, V]) Equals(other Map[K, V]) bool {
	return m.tree.Equals(other.tree, m.traits.Equals)
}

// Leq reports whether m is pointwise leq other under an ordered value
// trait (environments/partitions use this for their own Leq).
func (m Map[K, V]) Leq(other Map[K, V], ordered OrderedValueTraits[V]) bool {
	return m.tree.Leq(other.tree, ordered.Leq, ordered.IsDefault, ordered.Default())
}
