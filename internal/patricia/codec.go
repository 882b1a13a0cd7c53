package patricia

import "unsafe"

// Codec converts between a domain key type K and the uint64 the tree
// actually branches on. Grounded on sparta/include/PatriciaTreeKeyTrait.h,
// which parameterizes PatriciaTreeMap/Set over an "integer-like" key by
// requiring an `encode`/`decode` pair rather than hard-coding uint64
// keys throughout.
type Codec[K any] interface {
	Encode(key K) uint64
	Decode(bits uint64) K
}

// Uint64Codec is the identity codec, for trees keyed directly on uint64.
type Uint64Codec struct{}

func (Uint64Codec) Encode(key uint64) uint64 { return key }
func (Uint64Codec) Decode(bits uint64) uint64 { return bits }

// Int32Codec keys a tree on int32, widening through uint32 so that
// branchingBit's unsigned arithmetic gives the same prefix ordering for
// negative and non-negative keys alike (sign bit simply becomes the
// highest branching bit).
type Int32Codec struct{}

func (Int32Codec) Encode(key int32) uint64 { return uint64(uint32(key)) }
func (Int32Codec) Decode(bits uint64) int32 { return int32(uint32(bits)) }

// IntCodec keys a tree on int, assuming a 64-bit int (true on every
// platform this repository targets).
type IntCodec struct{}

func (IntCodec) Encode(key int) uint64 { return uint64(key) }
func (IntCodec) Decode(bits uint64) int { return int(bits) }

// PointerCodec keys a tree on a pointer's identity, mirroring the
// original's frequent use of PatriciaTreeSet<const IRInstruction*> and
// similar to represent sets/maps of AST/CFG node pointers.
//
// The tree stores the pointer's bit pattern, not a reference to the
// object; it is the caller's responsibility to keep every encoded
// pointer alive elsewhere for as long as it appears in the tree (the
// same non-owning-pointer-set contract the C++ original has). Go's
// garbage collector does not relocate heap objects during a program's
// execution, so converting back via Decode is safe as long as that
// contract holds.
type PointerCodec[T any] struct{}

func (PointerCodec[T]) Encode(key *T) uint64 { return uint64(uintptr(unsafe.Pointer(key))) }
func (PointerCodec[T]) Decode(bits uint64) *T { return (*T)(unsafe.Pointer(uintptr(bits))) }
