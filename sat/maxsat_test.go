package sat

import "testing"

func TestSolveWeightedMAXSATPrefersHeavierClause(t *testing.T) {
	solver := NewMAXSATSolver()
	cnf := NewCNF()
	// Two conflicting unit clauses; the heavier one should end up satisfied.
	cnf.AddClause(NewClause(Literal{Var: 1, Negated: false}))
	cnf.AddClause(NewClause(Literal{Var: 1, Negated: true}))

	result := solver.SolveWeightedMAXSAT(cnf, []float64{5.0, 1.0})
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if v, ok := result.Assignment[1]; !ok || !v {
		t.Errorf("expected variable 1 true to satisfy the heavier clause, got %+v", result.Assignment)
	}
}

func TestSolveMAXSATDefaultsToUnitWeights(t *testing.T) {
	solver := NewMAXSATSolver()
	cnf := NewCNF()
	cnf.AddClause(NewClause(Literal{Var: 1}, Literal{Var: 2}))

	result := solver.SolveMAXSAT(cnf, nil)
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if len(result.UnsatisfiedClauses) != 0 {
		t.Errorf("expected the single satisfiable clause to be satisfied, got unsatisfied %v", result.UnsatisfiedClauses)
	}
}
