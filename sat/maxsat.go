package sat

import "math"

// MAXSATSolverImpl implements weighted MAX-SAT on top of a plain SAT
// solver by relaxing every clause with a fresh indicator literal and
// binary-searching the minimum total weight of indicators that must be
// set true, each candidate bound enforced by a genuine at-most-k
// cardinality constraint rather than inferred from whichever model the
// solver's decision heuristic happens to return.
type MAXSATSolverImpl struct {
	baseSolver Solver
}

// NewMAXSATSolver creates new MAX-SAT solver
func NewMAXSATSolver() *MAXSATSolverImpl {
	return &MAXSATSolverImpl{baseSolver: NewCDCLSolver()}
}

// SolveMAXSAT finds assignment satisfying maximum total clause weight,
// defaulting to unit weights when none are supplied.
func (m *MAXSATSolverImpl) SolveMAXSAT(cnf *CNF, weights []float64) *MAXSATResult {
	if len(weights) != len(cnf.Clauses) {
		weights = make([]float64, len(cnf.Clauses))
		for i := range weights {
			weights[i] = 1.0
		}
	}
	return m.SolveWeightedMAXSAT(cnf, weights)
}

// nextFreeVar returns a variable id guaranteed not to collide with any
// variable already present in cnf.
func nextFreeVar(cnf *CNF) int {
	max := 0
	for _, v := range cnf.Variables {
		if v > max {
			max = v
		}
	}
	return max + 1
}

// cloneClauses returns a fresh CNF with the same clauses as src,
// re-registered through AddClause so the clone's own id/variable
// bookkeeping is self-consistent.
func cloneClauses(src *CNF) *CNF {
	dst := NewCNF()
	for _, c := range src.Clauses {
		dst.AddClause(NewClause(append([]Literal(nil), c.Literals...)...))
	}
	return dst
}

// atMostK returns Sinz's sequential-counter CNF encoding of "at most k
// of lits are true". Weighted cardinality is obtained by the caller
// duplicating a literal as many times as its weight before calling
// atMostK; the encoding treats repeated occurrences of the same
// variable as independent counter slots, which is exactly the
// currency-change trick for turning integer weights into unit counts.
// nextVar supplies fresh auxiliary variable ids and is advanced past
// every one it allocates.
func atMostK(lits []Literal, k int, nextVar *int) []*Clause {
	n := len(lits)
	if k < 0 {
		k = 0
	}
	if k >= n {
		return nil // unconstrained
	}
	if k == 0 {
		clauses := make([]*Clause, 0, n)
		for _, l := range lits {
			clauses = append(clauses, NewClause(l.Negate()))
		}
		return clauses
	}

	// s[i][j] is the register variable s_{i+1,j+1} in Sinz's notation:
	// "at least j+1 of lits[0..i] are true".
	s := make([][]int, n-1)
	for i := range s {
		s[i] = make([]int, k)
		for j := range s[i] {
			s[i][j] = *nextVar
			*nextVar++
		}
	}
	lit := func(v int, negated bool) Literal { return Literal{Var: v, Negated: negated} }

	var clauses []*Clause

	// i = 1
	clauses = append(clauses, NewClause(lits[0].Negate(), lit(s[0][0], false)))
	for j := 1; j < k; j++ {
		clauses = append(clauses, NewClause(lit(s[0][j], true)))
	}

	// i = 2..n-1
	for i := 1; i < n-1; i++ {
		clauses = append(clauses, NewClause(lits[i].Negate(), lit(s[i][0], false)))
		clauses = append(clauses, NewClause(lit(s[i-1][0], true), lit(s[i][0], false)))
		for j := 1; j < k; j++ {
			clauses = append(clauses, NewClause(lits[i].Negate(), lit(s[i-1][j-1], true), lit(s[i][j], false)))
			clauses = append(clauses, NewClause(lit(s[i-1][j], true), lit(s[i][j], false)))
		}
		clauses = append(clauses, NewClause(lits[i].Negate(), lit(s[i-1][k-1], true)))
	}

	// i = n
	clauses = append(clauses, NewClause(lits[n-1].Negate(), lit(s[n-2][k-1], true)))

	return clauses
}

// SolveWeightedMAXSAT solves weighted MAX-SAT exactly: every clause is
// relaxed with a fresh indicator literal, and the minimum total weight
// of indicators that must be set true is found by binary search, each
// candidate bound k enforced by a real at-most-k constraint over the
// indicators (duplicated per their integer weight) rather than by
// partitioning clauses into "hard" and "soft" by comparing individual
// weights against a threshold.
func (m *MAXSATSolverImpl) SolveWeightedMAXSAT(cnf *CNF, weights []float64) *MAXSATResult {
	n := len(cnf.Clauses)
	if n == 0 {
		return &MAXSATResult{Assignment: Assignment{}, Statistics: m.baseSolver.GetStatistics()}
	}

	relaxLit := make([]Literal, n)
	relaxWeight := make([]int, n)
	nextVar := nextFreeVar(cnf)
	totalWeight := 0

	base := NewCNF()
	for i, clause := range cnf.Clauses {
		w := int(math.Round(weights[i]))
		if w < 0 {
			w = 0
		}
		r := Literal{Var: nextVar}
		nextVar++
		relaxedLiterals := append(append([]Literal(nil), clause.Literals...), r)
		base.AddClause(NewClause(relaxedLiterals...))
		relaxLit[i] = r
		relaxWeight[i] = w
		totalWeight += w
	}

	expanded := make([]Literal, 0, totalWeight)
	for i, r := range relaxLit {
		for c := 0; c < relaxWeight[i]; c++ {
			expanded = append(expanded, r)
		}
	}

	solveAtCost := func(k int) *SolverResult {
		testCNF := cloneClauses(base)
		boundVar := nextVar
		for _, c := range atMostK(expanded, k, &boundVar) {
			testCNF.AddClause(c)
		}
		return m.baseSolver.Solve(testCNF)
	}

	low, high := 0, totalWeight
	// high == len(expanded) makes atMostK a no-op, so this call is
	// always satisfiable (every relaxed clause can be discharged via
	// its own indicator) and anchors the search.
	bestResult := solveAtCost(high)

	for low < high {
		mid := (low + high) / 2
		result := solveAtCost(mid)
		if result.Satisfiable {
			bestResult = result
			high = mid
		} else {
			low = mid + 1
		}
	}

	if bestResult == nil || !bestResult.Satisfiable {
		var err error
		if bestResult != nil {
			err = bestResult.Error
		}
		return &MAXSATResult{Error: err, Statistics: m.baseSolver.GetStatistics()}
	}

	actualWeight := 0.0
	var unsatisfied []int
	for i, clause := range cnf.Clauses {
		if bestResult.Assignment.Satisfies(clause) {
			actualWeight += weights[i]
		} else {
			unsatisfied = append(unsatisfied, clause.ID)
		}
	}

	return &MAXSATResult{
		Assignment:         bestResult.Assignment,
		SatisfiedCount:     len(cnf.Clauses) - len(unsatisfied),
		TotalWeight:        actualWeight,
		UnsatisfiedClauses: unsatisfied,
		Statistics:         m.baseSolver.GetStatistics(),
	}
}
