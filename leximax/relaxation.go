package leximax

// RelaxationEncoder builds, for a single leximax iteration, the
// relaxation indicators, relaxed sorted vectors, the at-most-i
// cardinality bound over relaxation indicators, the componentwise-OR
// vector V_i, and its weight-1 soft clauses (spec.md §4.4).
type RelaxationEncoder struct {
	store *ClauseStore
	alloc *IDAllocator
	sn    *SortingNetwork
}

// NewRelaxationEncoder returns an encoder sharing store/alloc with the
// rest of the pipeline.
func NewRelaxationEncoder(store *ClauseStore, alloc *IDAllocator, sn *SortingNetwork) *RelaxationEncoder {
	return &RelaxationEncoder{store: store, alloc: alloc, sn: sn}
}

// IterationEncoding holds everything produced by one call to Encode:
// the relaxation indicators y_{i,k}, the relaxed vectors R_i,k, and
// the componentwise-OR vector V_i.
type IterationEncoding struct {
	Y []Var   // one relaxation indicator per objective
	R [][]Var // one relaxed sorted vector per objective
	V []Var   // componentwise-OR vector
}

// Encode builds iteration i's relaxation layer given the already-built
// sorted vectors (one per objective) and the iteration index. i is also
// the cardinality bound: at most i of the y_{i,k} may be true.
func (re *RelaxationEncoder) Encode(iteration int, sorted [][]Var) IterationEncoding {
	n := len(sorted)
	y := re.alloc.FreshN(n)

	r := make([][]Var, n)
	maxLen := 0
	for k, sk := range sorted {
		r[k] = re.alloc.FreshN(len(sk))
		if len(sk) > maxLen {
			maxLen = len(sk)
		}
		re.bindRelaxedVector(r[k], sk, y[k])
	}

	re.atMostK(y, iteration)

	v := re.alloc.FreshN(maxLen)
	for j := 0; j < maxLen; j++ {
		var disjuncts []Var
		for k := range sorted {
			if j < len(r[k]) {
				disjuncts = append(disjuncts, r[k][j])
			}
		}
		re.bindOr(v[j], disjuncts)
		re.store.AddSoft(Clause{Neg(v[j])}, 1)
	}

	return IterationEncoding{Y: y, R: r, V: v}
}

// EncodeSimplifiedLast builds the final iteration's vector directly
// from the sorted vectors, skipping relaxation indicators and the
// at-most-k cardinality bound entirely (spec.md §4.4 "Simplify-last
// optimization"). V[j] is the componentwise AND of the S_k[j] over the
// length of the shortest S_k, so V[j] is true iff every objective has
// at least j+1 true terms and Σ_j V[j] is the smallest objective cost:
// the last leximax coordinate, which the full encoding reaches by
// relaxing every objective but one.
func (re *RelaxationEncoder) EncodeSimplifiedLast(sorted [][]Var) IterationEncoding {
	minLen := 0
	for k, sk := range sorted {
		if k == 0 || len(sk) < minLen {
			minLen = len(sk)
		}
	}

	v := re.alloc.FreshN(minLen)
	for j := 0; j < minLen; j++ {
		all := Clause{Pos(v[j])}
		for _, sk := range sorted {
			re.store.AddHard(Clause{Neg(v[j]), Pos(sk[j])})
			all = append(all, Neg(sk[j]))
		}
		re.store.AddHard(all)
		re.store.AddSoft(Clause{Neg(v[j])}, 1)
	}

	return IterationEncoding{Y: nil, R: sorted, V: v}
}

// bindRelaxedVector emits R[j] = S[j] ∧ ¬y for every position, so
// setting y forces the whole relaxed vector false.
func (re *RelaxationEncoder) bindRelaxedVector(r []Var, s []Var, y Var) {
	notY := Neg(y)
	for j, rv := range r {
		rp := Pos(rv)
		sp := Pos(s[j])
		// r ↔ s ∧ ¬y
		re.store.AddHard(Clause{rp.Negate(), sp})
		re.store.AddHard(Clause{rp.Negate(), notY})
		re.store.AddHard(Clause{sp.Negate(), Pos(y), rp})
	}
}

// atMostK encodes "at most k of ys are true" via the naive expansion:
// for every (k+1)-subset, at least one member must be false
// (spec.md §4.4 step 3 — acceptable because the number of objectives
// is small; an implementer MAY substitute a smarter encoding).
func (re *RelaxationEncoder) atMostK(ys []Var, k int) {
	if k+1 > len(ys) {
		return // no subset of that size exists; constraint is vacuous
	}
	combos := combinations(len(ys), k+1)
	for _, combo := range combos {
		clause := make(Clause, len(combo))
		for i, idx := range combo {
			clause[i] = Neg(ys[idx])
		}
		re.store.AddHard(clause)
	}
}

// bindOr emits v ↔ OR(disjuncts). An empty disjunct set forces v false.
func (re *RelaxationEncoder) bindOr(v Var, disjuncts []Var) {
	vp := Pos(v)
	if len(disjuncts) == 0 {
		re.store.AddHard(Clause{vp.Negate()})
		return
	}
	big := make(Clause, 0, len(disjuncts)+1)
	big = append(big, vp.Negate())
	for _, d := range disjuncts {
		re.store.AddHard(Clause{Neg(d), vp})
		big = append(big, Pos(d))
	}
	re.store.AddHard(big)
}

// FreezeMaximum asserts that V has at most mu true positions, as unit
// blockers on positions mu..len(V)-1 (spec.md §4.4 step 4): once an
// iteration's maximum is known, no later iteration may regress past it.
func (re *RelaxationEncoder) FreezeMaximum(v []Var, mu int) {
	for j := mu; j < len(v); j++ {
		re.store.AddHard(Clause{Neg(v[j])})
	}
}

// combinations returns the index-subsets of size r drawn from [0, n).
func combinations(n, r int) [][]int {
	if r <= 0 || r > n {
		return nil
	}
	var out [][]int
	combo := make([]int, r)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == r {
			item := make([]int, r)
			copy(item, combo)
			out = append(out, item)
			return
		}
		for i := start; i < n; i++ {
			combo[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
