package sat

import "testing"

func TestCDCLSolverSatisfiable(t *testing.T) {
	solver := NewCDCLSolver()
	cnf := NewCNF()
	cnf.AddClause(NewClause(Literal{Var: 1, Negated: false}, Literal{Var: 2, Negated: false}))
	cnf.AddClause(NewClause(Literal{Var: 1, Negated: true}, Literal{Var: 2, Negated: true}))

	result := solver.Solve(cnf)
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if !result.Satisfiable {
		t.Fatalf("expected satisfiable")
	}
	for _, c := range cnf.Clauses {
		if !result.Assignment.Satisfies(c) {
			t.Errorf("model fails to satisfy clause %v", c)
		}
	}
}

func TestCDCLSolverUnsatisfiable(t *testing.T) {
	solver := NewCDCLSolver()
	cnf := NewCNF()
	cnf.AddClause(NewClause(Literal{Var: 1, Negated: false}))
	cnf.AddClause(NewClause(Literal{Var: 1, Negated: true}))

	result := solver.Solve(cnf)
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if result.Satisfiable {
		t.Fatalf("expected unsatisfiable")
	}
}

func TestCDCLSolverPigeonhole(t *testing.T) {
	// 3 pigeons, 2 holes: p{i}h{j}, variable = (i-1)*2+j
	v := func(pigeon, hole int) int { return (pigeon-1)*2 + hole }

	solver := NewCDCLSolver()
	cnf := NewCNF()
	for p := 1; p <= 3; p++ {
		cnf.AddClause(NewClause(
			Literal{Var: v(p, 1)},
			Literal{Var: v(p, 2)},
		))
	}
	for h := 1; h <= 2; h++ {
		for p1 := 1; p1 <= 3; p1++ {
			for p2 := p1 + 1; p2 <= 3; p2++ {
				cnf.AddClause(NewClause(
					Literal{Var: v(p1, h), Negated: true},
					Literal{Var: v(p2, h), Negated: true},
				))
			}
		}
	}

	result := solver.Solve(cnf)
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if result.Satisfiable {
		t.Fatalf("pigeonhole with 3 pigeons, 2 holes must be unsatisfiable")
	}
}

func TestCDCLSolverReset(t *testing.T) {
	solver := NewCDCLSolver()
	cnf := NewCNF()
	cnf.AddClause(NewClause(Literal{Var: 1}))
	solver.Solve(cnf)
	solver.Reset()

	stats := solver.GetStatistics()
	if stats.Decisions != 0 || stats.Conflicts != 0 {
		t.Errorf("expected fresh statistics after Reset, got %+v", stats)
	}
}
