package domains

import "github.com/facebook/redex-core/internal/rterrors"

// FiniteLattice precomputes the reflexive-transitive closure of a
// user-supplied covering relation (a Hasse diagram) over a fixed,
// enumerated element set, then answers leq/join/meet as bitwise
// operations on the precomputed rows — grounded on sparta's
// FiniteAbstractDomain, which documents exactly this O(|elements|/word)
// scheme in place of re-walking the diagram on every query.
//
// Construct one FiniteLattice per distinct element universe (it holds no
// per-value state) and use it to build FiniteElement values.
type FiniteLattice struct {
	size    int
	leqRow  []uint64 // leqRow[i] has bit j set iff element i <= element j
	geqRow  []uint64 // transpose of leqRow, i.e. element j <= element i
	bottoms []int    // indices with no element below them other than themselves
	tops    []int    // indices with no element above them other than themselves
}

// NewFiniteLattice builds the lattice from n elements (named 0..n-1 by
// the caller) and a list of direct covering edges (lo, hi) meaning
// lo <= hi in the Hasse diagram (transitive edges must not be listed;
// they are derived).
func NewFiniteLattice(n int, covers [][2]int) *FiniteLattice {
	words := (n + 63) / 64
	leq := make([][]uint64, n)
	for i := range leq {
		leq[i] = make([]uint64, words)
		setBit(leq[i], i)
	}
	for _, c := range covers {
		setBit(leq[c[0]], c[1])
	}
	// Floyd-Warshall-style closure: repeatedly OR in transitive edges
	// until a fixed point, which terminates since the relation only grows
	// and is bounded by n^2 pairs.
	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if !getBit(leq[i], j) {
					continue
				}
				for k := 0; k < words; k++ {
					before := leq[i][k]
					leq[i][k] |= leq[j][k]
					if leq[i][k] != before {
						changed = true
					}
				}
			}
		}
	}
	flat := make([]uint64, n*words)
	geq := make([]uint64, n*words)
	for i := 0; i < n; i++ {
		copy(flat[i*words:(i+1)*words], leq[i])
		for j := 0; j < n; j++ {
			if getBit(leq[i], j) {
				setBit(geq[j*words:(j+1)*words], i)
			}
		}
	}
	fl := &FiniteLattice{size: n, leqRow: flat, geqRow: geq}
	for i := 0; i < n; i++ {
		isBottom, isTop := true, true
		for j := 0; j < n; j++ {
			if j != i && getBit(geq[i*words:(i+1)*words], j) {
				isBottom = false
			}
			if j != i && getBit(flat[i*words:(i+1)*words], j) {
				isTop = false
			}
		}
		if isBottom {
			fl.bottoms = append(fl.bottoms, i)
		}
		if isTop {
			fl.tops = append(fl.tops, i)
		}
	}
	return fl
}

func (fl *FiniteLattice) words() int { return (fl.size + 63) / 64 }

func (fl *FiniteLattice) row(table []uint64, i int) []uint64 {
	w := fl.words()
	return table[i*w : (i+1)*w]
}

func setBit(row []uint64, i int) { row[i/64] |= 1 << uint(i%64) }
func getBit(row []uint64, i int) bool { return row[i/64]&(1<<uint(i%64)) != 0 }

// FiniteElement is an element of a FiniteLattice. Top/bottom are
// ordinary elements here (every FiniteLattice must have been built with
// at least one minimal and one maximal element for Join/Meet to be
// total); a zero-value FiniteElement is invalid until assigned via
// Element.
//
// Instantiated as *FiniteElement.
type FiniteElement struct {
	lat *FiniteLattice
	idx int
}

// Element returns the lattice element named idx.
func (fl *FiniteLattice) Element(idx int) *FiniteElement {
	if idx < 0 || idx >= fl.size {
		rterrors.Abort("FiniteLattice.Element: index %d out of range [0,%d)", idx, fl.size)
	}
	return &FiniteElement{lat: fl, idx: idx}
}

func (e *FiniteElement) Index() int { return e.idx }

// IsBottom/IsTop report whether e is one of the lattice's minimal or
// maximal elements; a lattice may have several of each before a
// canonical single bottom/top is chosen by the caller's construction.
func (e *FiniteElement) IsBottom() bool { return contains(e.lat.bottoms, e.idx) }
func (e *FiniteElement) IsTop() bool    { return contains(e.lat.tops, e.idx) }

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func (e *FiniteElement) Leq(other *FiniteElement) bool {
	return getBit(e.lat.row(e.lat.leqRow, e.idx), other.idx)
}

func (e *FiniteElement) Equals(other *FiniteElement) bool { return e.idx == other.idx }

func (e *FiniteElement) SetToBottom() {
	if len(e.lat.bottoms) != 1 {
		rterrors.Abort("FiniteLattice: SetToBottom requires exactly one minimal element, got %d", len(e.lat.bottoms))
	}
	e.idx = e.lat.bottoms[0]
}

func (e *FiniteElement) SetToTop() {
	if len(e.lat.tops) != 1 {
		rterrors.Abort("FiniteLattice: SetToTop requires exactly one maximal element, got %d", len(e.lat.tops))
	}
	e.idx = e.lat.tops[0]
}

// JoinWith moves e to the least element above both e and other that is
// consistent with the precomputed order. When the common upper bounds
// have no least element (a general finite order need not have one unless
// the caller built one in), the result is the upper bound that
// leastUpperBound's index-order scan settles on, which need not be
// minimal.
func (e *FiniteElement) JoinWith(other *FiniteElement) { e.idx = leastUpperBound(e.lat, e.idx, other.idx) }
func (e *FiniteElement) WidenWith(other *FiniteElement) { e.JoinWith(other) }

func (e *FiniteElement) MeetWith(other *FiniteElement) { e.idx = greatestLowerBound(e.lat, e.idx, other.idx) }
func (e *FiniteElement) NarrowWith(other *FiniteElement) { e.MeetWith(other) }

func leastUpperBound(lat *FiniteLattice, a, b int) int {
	best := -1
	for i := 0; i < lat.size; i++ {
		if getBit(lat.row(lat.leqRow, a), i) && getBit(lat.row(lat.leqRow, b), i) {
			if best == -1 || getBit(lat.row(lat.leqRow, i), best) {
				best = i
			}
		}
	}
	if best == -1 {
		rterrors.Abort("FiniteLattice: no upper bound for elements %d and %d", a, b)
	}
	return best
}

func greatestLowerBound(lat *FiniteLattice, a, b int) int {
	best := -1
	for i := 0; i < lat.size; i++ {
		if getBit(lat.row(lat.geqRow, a), i) && getBit(lat.row(lat.geqRow, b), i) {
			if best == -1 || getBit(lat.row(lat.geqRow, best), i) {
				best = i
			}
		}
	}
	if best == -1 {
		rterrors.Abort("FiniteLattice: no lower bound for elements %d and %d", a, b)
	}
	return best
}

func (e *FiniteElement) Copy() *FiniteElement { return &FiniteElement{lat: e.lat, idx: e.idx} }
