package patricia

import "testing"

func TestLowestBit(t *testing.T) {
	cases := map[uint64]uint64{
		0b0:     0b0,
		0b1:     0b1,
		0b10:    0b10,
		0b110:   0b10,
		0b1000:  0b1000,
		0b10100: 0b100,
	}
	for in, want := range cases {
		if got := lowestBit(in); got != want {
			t.Errorf("lowestBit(%b) = %b, want %b", in, got, want)
		}
	}
}

func TestBranchingBitFindsLowestDifferingBit(t *testing.T) {
	got := branchingBit(0b0110, 0b0010)
	if got != 0b0100 {
		t.Errorf("branchingBit = %b, want %b", got, 0b0100)
	}
}

func TestMaskKeyAndMatchPrefix(t *testing.T) {
	bit := uint64(0b1000)
	prefix := maskKey(0b10110, bit)
	if !matchPrefix(0b01110, prefix, bit) {
		t.Error("expected key sharing the same bits below the branching bit to match the prefix")
	}
	if matchPrefix(0b10010, prefix, bit) {
		t.Error("expected a key differing below the branching bit not to match")
	}
}

func TestIsZeroBit(t *testing.T) {
	if !isZeroBit(0b0100, 0b1000) {
		t.Error("expected bit 0b1000 of 0b0100 to read as zero")
	}
	if isZeroBit(0b1100, 0b1000) {
		t.Error("expected bit 0b1000 of 0b1100 to read as one")
	}
}

func TestInsertLookupRemoveRoundTrip(t *testing.T) {
	var n *node[string]
	overwrite := func(_, new string) string { return new }

	keys := []uint64{5, 1, 1 << 40, 3, 1 << 40, 7}
	for _, k := range keys {
		n = insert(n, k, "v", overwrite)
	}
	for _, k := range []uint64{5, 1, 1 << 40, 3, 7} {
		if _, ok := lookup(n, k); !ok {
			t.Errorf("expected key %d to be present", k)
		}
	}
	if _, ok := lookup(n, 42); ok {
		t.Error("expected key 42 to be absent")
	}

	before := n
	after := remove(n, 999)
	if after != before {
		t.Error("remove of an absent key must return the identical node (reference equality)")
	}

	after = remove(n, 5)
	if _, ok := lookup(after, 5); ok {
		t.Error("expected key 5 to be gone after remove")
	}
	if _, ok := lookup(after, 1); !ok {
		t.Error("expected key 1 to survive removal of an unrelated key")
	}
}

func TestUnionOfIdenticalNodeIsReferenceEqual(t *testing.T) {
	var n *node[int]
	overwrite := func(_, new int) int { return new }
	n = insert(n, 1, 10, overwrite)
	n = insert(n, 2, 20, overwrite)

	sum := func(a, b int) int { return a + b }
	u := union(sum, n, n)
	if u != n {
		t.Error("union of a node with itself should short-circuit to the same node")
	}
}

func TestIntersectionOfDisjointTreesIsEmpty(t *testing.T) {
	var a, b *node[int]
	overwrite := func(_, new int) int { return new }
	a = insert(a, 1, 1, overwrite)
	b = insert(b, 2, 2, overwrite)

	sum := func(x, y int) int { return x + y }
	if got := intersection(sum, a, b); got != nil {
		t.Error("expected intersection of disjoint trees to be empty")
	}
}
