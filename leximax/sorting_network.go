package leximax

// SortingNetwork builds a Batcher odd-even merge network over a
// sequence of literals, emitting equivalence clauses into a
// ClauseStore so that, in every model of those clauses, the resulting
// vector of fresh variables is the non-increasing sort of the inputs
// (spec.md §4.3).
type SortingNetwork struct {
	store *ClauseStore
	alloc *IDAllocator
}

// NewSortingNetwork returns a network that emits into store, allocating
// fresh variables from alloc.
func NewSortingNetwork(store *ClauseStore, alloc *IDAllocator) *SortingNetwork {
	return &SortingNetwork{store: store, alloc: alloc}
}

// Sort builds the sorted vector S for an objective's term vector,
// returning one fresh variable per term in non-increasing sorted order.
func (sn *SortingNetwork) Sort(terms []Lit) []Var {
	switch len(terms) {
	case 0:
		return nil
	case 1:
		v := sn.alloc.Fresh()
		sn.bindEquivalence(v, terms[0])
		return []Var{v}
	}

	sorted := sn.oddEvenMergeSort(terms)
	return toVars(sorted)
}

// MergeInto merges a new batch of terms into an already-sorted vector,
// returning the resulting sorted vector over old and fresh combined.
// Optional core-guided refinement path (spec.md §4.3, §9); not on the
// default iteration loop.
func (sn *SortingNetwork) MergeInto(old []Var, fresh []Lit) []Var {
	if len(old) == 0 {
		return sn.Sort(fresh)
	}
	if len(fresh) == 0 {
		return old
	}

	oldLits := make([]Lit, len(old))
	for i, v := range old {
		oldLits[i] = Pos(v)
	}

	freshSorted := sn.oddEvenMergeSort(fresh)
	merged := sn.merge(oldLits, freshSorted)
	return toVars(merged)
}

func toVars(lits []Lit) []Var {
	vars := make([]Var, len(lits))
	for i, l := range lits {
		vars[i] = l.Var()
	}
	return vars
}

// bindEquivalence emits clauses for v ↔ lit: a singleton "sorted
// vector" is just a fresh variable equivalent to its sole term.
func (sn *SortingNetwork) bindEquivalence(v Var, lit Lit) {
	vp := Pos(v)
	sn.store.AddHard(Clause{vp.Negate(), lit})
	sn.store.AddHard(Clause{vp, lit.Negate()})
}

// oddEvenMergeSort recursively sorts lits (non-increasing) via Batcher's
// network, splitting in half and merging.
func (sn *SortingNetwork) oddEvenMergeSort(lits []Lit) []Lit {
	n := len(lits)
	if n <= 1 {
		return lits
	}
	mid := n / 2
	left := sn.oddEvenMergeSort(lits[:mid])
	right := sn.oddEvenMergeSort(lits[mid:])
	return sn.merge(left, right)
}

// merge combines two already-sorted (non-increasing) sequences into one.
func (sn *SortingNetwork) merge(a, b []Lit) []Lit {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	if len(a) == 1 && len(b) == 1 {
		maxL, minL := sn.comparator(a[0], b[0])
		return []Lit{maxL, minL}
	}

	aEven, aOdd := splitParity(a)
	bEven, bOdd := splitParity(b)

	mergedEven := sn.merge(aEven, bEven)
	mergedOdd := sn.merge(aOdd, bOdd)

	result := interleave(mergedEven, mergedOdd)

	for i := 1; i+1 < len(result); i += 2 {
		maxL, minL := sn.comparator(result[i], result[i+1])
		result[i], result[i+1] = maxL, minL
	}

	return result
}

// splitParity divides a sequence into its even- and odd-indexed (0-based) elements.
func splitParity(seq []Lit) (even, odd []Lit) {
	for i, l := range seq {
		if i%2 == 0 {
			even = append(even, l)
		} else {
			odd = append(odd, l)
		}
	}
	return even, odd
}

// interleave recombines two sequences alternately, even-first; any
// elements of even beyond the length of odd are appended at the end.
func interleave(even, odd []Lit) []Lit {
	result := make([]Lit, 0, len(even)+len(odd))
	for i, e := range even {
		result = append(result, e)
		if i < len(odd) {
			result = append(result, odd[i])
		}
	}
	return result
}

// comparator allocates fresh max/min variables for wires a and b and
// emits the six Tseitin clauses binding max_ab ↔ a∨b and min_ab ↔ a∧b.
func (sn *SortingNetwork) comparator(a, b Lit) (maxLit, minLit Lit) {
	maxV := sn.alloc.Fresh()
	minV := sn.alloc.Fresh()
	maxP, minP := Pos(maxV), Pos(minV)

	// max ↔ a ∨ b
	sn.store.AddHard(Clause{a.Negate(), maxP})
	sn.store.AddHard(Clause{b.Negate(), maxP})
	sn.store.AddHard(Clause{maxP.Negate(), a, b})

	// min ↔ a ∧ b
	sn.store.AddHard(Clause{minP.Negate(), a})
	sn.store.AddHard(Clause{minP.Negate(), b})
	sn.store.AddHard(Clause{a.Negate(), b.Negate(), minP})

	return maxP, minP
}
