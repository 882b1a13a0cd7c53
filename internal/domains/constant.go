// Package domains provides the concrete abstract-domain constructors
// built on top of internal/lattice: constant propagation, intervals, a
// finite (Hasse-diagram) lattice, over/under powersets, reduced
// products, disjoint unions, and the patricia.Map-backed
// environment/partition domains.
package domains

import "github.com/facebook/redex-core/internal/lattice"

// Constant is the domain over T that is either bottom, top, or exactly
// one value of T — grounded on sparta's ConstantAbstractDomain, whose
// join/meet degrade to top/bottom the moment two distinct constants
// meet.
//
// Instantiated as *Constant[T]; T must be comparable so join/meet can
// tell two constants apart.
type Constant[T comparable] struct {
	kind lattice.Kind
	v    T
}

// NewConstant wraps a concrete value.
func NewConstant[T comparable](v T) *Constant[T] {
	return &Constant[T]{kind: lattice.KindValue, v: v}
}

func ConstantBottom[T comparable]() *Constant[T] { return &Constant[T]{kind: lattice.KindBottom} }
func ConstantTop[T comparable]() *Constant[T]    { return &Constant[T]{kind: lattice.KindTop} }

func (c *Constant[T]) IsBottom() bool { return c.kind == lattice.KindBottom }
func (c *Constant[T]) IsTop() bool    { return c.kind == lattice.KindTop }

// Get returns the wrapped constant and whether one is present (false
// for bottom and top alike).
func (c *Constant[T]) Get() (T, bool) {
	if c.kind != lattice.KindValue {
		var zero T
		return zero, false
	}
	return c.v, true
}

func (c *Constant[T]) Leq(other *Constant[T]) bool {
	switch {
	case c.IsBottom():
		return true
	case other.IsTop():
		return true
	case c.IsTop():
		return other.IsTop()
	case other.IsBottom():
		return false
	default:
		return c.v == other.v
	}
}

func (c *Constant[T]) Equals(other *Constant[T]) bool {
	if c.kind != other.kind {
		return false
	}
	return c.kind != lattice.KindValue || c.v == other.v
}

func (c *Constant[T]) SetToBottom() { c.kind = lattice.KindBottom; var z T; c.v = z }
func (c *Constant[T]) SetToTop()    { c.kind = lattice.KindTop; var z T; c.v = z }

func (c *Constant[T]) JoinWith(other *Constant[T])  { c.combine(other, false) }
func (c *Constant[T]) WidenWith(other *Constant[T]) { c.combine(other, false) }
func (c *Constant[T]) MeetWith(other *Constant[T])  { c.combine(other, true) }
func (c *Constant[T]) NarrowWith(other *Constant[T]) { c.combine(other, true) }

// combine implements join/widen (meet=false) and meet/narrow (meet=true)
// uniformly: equal constants are the identity either way, and a
// mismatch between two distinct constants escalates to top (join) or
// bottom (meet).
func (c *Constant[T]) combine(other *Constant[T], meet bool) {
	absorbing, identity := lattice.KindTop, lattice.KindBottom
	if meet {
		absorbing, identity = lattice.KindBottom, lattice.KindTop
	}
	switch {
	case c.kind == absorbing:
		return
	case other.kind == absorbing:
		c.kind, c.v = absorbing, zeroOf[T]()
	case other.kind == identity:
		return
	case c.kind == identity:
		*c = *other.Copy()
	case c.v == other.v:
		return
	default:
		c.kind, c.v = absorbing, zeroOf[T]()
	}
}

func zeroOf[T any]() T { var z T; return z }

func (c *Constant[T]) Copy() *Constant[T] { clone := *c; return &clone }
