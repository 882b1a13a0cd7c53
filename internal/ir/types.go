// Package ir implements the IR collaborator contract of spec.md §3.4
// and §6: a minimal, in-memory stand-in for the DEX reader/writer,
// class loader, and register allocator (all explicitly out of scope).
// It exists to give internal/inliner and internal/cse something real
// to operate on, and to drive their tests end-to-end.
package ir

// Type is a DEX-style type descriptor, e.g. "Lcom/foo/Bar;", "I",
// "[Ljava/lang/String;". It is kept as an opaque descriptor string
// rather than parsed into array/primitive/class variants; the
// optimizer passes this spec covers never need to do more than
// compare, hash, and print types.
type Type string

// Proto is a method signature: a return type and an ordered parameter
// list. Two Protos are equal iff their fields are equal.
type Proto struct {
	Return Type
	Params []Type
}

// Equals reports whether p and other describe the same signature.
func (p Proto) Equals(other Proto) bool {
	if p.Return != other.Return || len(p.Params) != len(other.Params) {
		return false
	}
	for i, t := range p.Params {
		if other.Params[i] != t {
			return false
		}
	}
	return true
}

// ArgWords is the number of register-width argument slots, wide types
// (J, D) count for two. Used by the inliner's cost model (§4.6) when
// computing COST_METHOD_ARG surcharges.
func (p Proto) ArgWords() int {
	n := 0
	for _, t := range p.Params {
		n++
		if t.IsWide() {
			n++
		}
	}
	return n
}

// String renders p in DEX shorthand, e.g. "(ILjava/lang/String;)V".
func (p Proto) String() string {
	s := "("
	for _, t := range p.Params {
		s += string(t)
	}
	s += ")" + string(p.Return)
	return s
}

// IsWide reports whether t occupies a register pair (long or double).
func (t Type) IsWide() bool {
	return t == "J" || t == "D"
}
