package leximax

// bindClauseEquivalence emits v ↔ (c[0] ∨ c[1] ∨ … ∨ c[n-1]), the
// standard Tseitin encoding.
func bindClauseEquivalence(store *ClauseStore, v Var, c Clause) {
	vp := Pos(v)
	if len(c) == 0 {
		store.AddHard(Clause{vp.Negate()})
		return
	}
	big := make(Clause, 0, len(c)+1)
	big = append(big, vp.Negate())
	for _, lit := range c {
		store.AddHard(Clause{lit.Negate(), vp})
		big = append(big, lit)
	}
	store.AddHard(big)
}

// normalizeTerm returns the single literal representing an objective
// term's truth value. A term of size one with positive polarity is
// used directly; anything else (a multi-literal clause, or a lone
// negative literal) is first replaced by a fresh variable logically
// equivalent to the clause (spec.md §3).
func normalizeTerm(term Clause, store *ClauseStore, alloc *IDAllocator) Lit {
	if len(term) == 1 && !term[0].Negated() {
		return term[0]
	}
	v := alloc.Fresh()
	bindClauseEquivalence(store, v, term)
	return Pos(v)
}
