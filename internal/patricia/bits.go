package patricia

// These helpers implement the bit-twiddling core of the Patricia tree
// algorithm, transcribed from
// _examples/original_source/sparta/include/PatriciaTreeUtil.h.

// isZeroBit reports whether bit m of k is clear.
func isZeroBit(k, m uint64) bool { return k&m == 0 }

// lowestBit returns the lowest set bit of x as a power-of-two mask, or 0
// if x is 0.
func lowestBit(x uint64) uint64 { return x & (^x + 1) }

// branchingBit returns the lowest bit at which prefix0 and prefix1
// differ, used as the discriminating mask for a new branch node.
func branchingBit(prefix0, prefix1 uint64) uint64 {
	return lowestBit(prefix0 ^ prefix1)
}

// maskKey returns the bits of k below the branching bit m (exclusive),
// i.e. the prefix shared by every key in the subtree guarded by m.
func maskKey(k, m uint64) uint64 { return k & (m - 1) }

// matchPrefix reports whether k belongs to the subtree with the given
// prefix/branching-bit pair.
func matchPrefix(k, p, m uint64) bool { return maskKey(k, m) == p }
