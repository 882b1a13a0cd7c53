package patricia

// Tree is a persistent, structurally-shared binary trie keyed on raw
// uint64 values, implementing the merge algorithms of
// sparta/include/PatriciaTreeCore.h. Map and Set build their typed APIs
// on top of Tree; Tree itself never doctors values around the map's
// "missing key reads as the default value" convention, since Set's
// payload (struct{}) has no notion of a default value to economize on.
type Tree[V any] struct {
	root *node[V]
}

// Get looks up key, reporting whether it is bound.
func (t Tree[V]) Get(key uint64) (V, bool) {
	return lookup(t.root, key)
}

// Contains reports whether key is bound in the tree.
func (t Tree[V]) Contains(key uint64) bool {
	_, ok := lookup(t.root, key)
	return ok
}

// IsEmpty reports whether the tree has no bindings.
func (t Tree[V]) IsEmpty() bool { return t.root == nil }

// Size returns the number of bindings, walking the whole tree; callers
// on a hot path should cache this rather than call it repeatedly, as
// sparta's PatriciaTreeMap::size() documents the same O(n) caveat.
func (t Tree[V]) Size() int { return size(t.root) }

// Insert returns a new tree binding key to value. If key is already
// bound, combine(existingValue, value) determines the stored result;
// pass a combine that ignores its first argument to get "last write
// wins" overwrite semantics.
func (t Tree[V]) Insert(key uint64, value V, combine func(old, new V) V) Tree[V] {
	return Tree[V]{root: insert(t.root, key, value, combine)}
}

// Remove returns a new tree with key unbound.
func (t Tree[V]) Remove(key uint64) Tree[V] {
	return Tree[V]{root: remove(t.root, key)}
}

// Union returns a new tree with the bindings of t and other merged,
// invoking combine for keys bound in both.
func (t Tree[V]) Union(other Tree[V], combine func(a, b V) V) Tree[V] {
	return Tree[V]{root: union(combine, t.root, other.root)}
}

// Intersection returns a new tree with only the keys bound in both t and
// other, invoking combine to produce the kept value.
func (t Tree[V]) Intersection(other Tree[V], combine func(a, b V) V) Tree[V] {
	return Tree[V]{root: intersection(combine, t.root, other.root)}
}

// Difference returns a new tree with the keys of t that are either
// absent from other, or present but whose combine(tv, otherV) result
// does not satisfy isDefault.
func (t Tree[V]) Difference(other Tree[V], combine func(a, b V) V, isDefault func(V) bool) Tree[V] {
	return Tree[V]{root: difference(combine, isDefault, t.root, other.root)}
}

// Filter returns a new tree retaining only bindings for which pred
// holds.
func (t Tree[V]) Filter(pred func(key uint64, value V) bool) Tree[V] {
	return Tree[V]{root: filter(t.root, pred)}
}

// Map returns a new tree with every value replaced by f(value); bindings
// for which isDefault(f(value)) holds are erased.
func (t Tree[V]) Map(f func(V) V, isDefault func(V) bool) Tree[V] {
	return Tree[V]{root: mapValues(t.root, f, isDefault)}
}

// ForEach calls f once per binding, in an unspecified order.
func (t Tree[V]) ForEach(f func(key uint64, value V)) {
	forEach(t.root, f)
}

// Equals reports whether t and other have exactly the same bindings,
// using valueEquals to compare values.
func (t Tree[V]) Equals(other Tree[V], valueEquals func(a, b V) bool) bool {
	if t.root == other.root {
		return true
	}
	if size(t.root) != size(other.root) {
		return false
	}
	eq := true
	forEach(t.root, func(key uint64, v V) {
		if !eq {
			return
		}
		ov, ok := lookup(other.root, key)
		if !ok || !valueEquals(v, ov) {
			eq = false
		}
	})
	return eq
}

// Leq reports whether every binding of t is leq, under leqVal, the
// corresponding binding of other, a key bound on only one side reading
// as defaultValue on the other (a binding of t whose value isDefault is
// skipped).
func (t Tree[V]) Leq(other Tree[V], leqVal func(a, b V) bool, isDefault func(V) bool, defaultValue V) bool {
	if t.root == other.root {
		return true
	}
	return leqMaps(leqVal, isDefault, defaultValue, t.root, other.root)
}
