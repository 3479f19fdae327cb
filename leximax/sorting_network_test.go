package leximax

import (
	"strconv"
	"testing"

	"github.com/xDarkicex/leximax/sat"
)

// solveFixed runs the embedded CDCL solver over store's hard clauses
// plus one unit clause per fixed input literal, returning the model.
func solveFixed(t *testing.T, store *ClauseStore, fixed []Lit) sat.Assignment {
	t.Helper()
	cnf := sat.NewCNF()
	for _, c := range store.Hard() {
		cnf.AddClause(sat.NewClause(toSATLiterals(c)...))
	}
	for _, lit := range fixed {
		cnf.AddClause(sat.NewClause(sat.Literal{Var: int(lit.Var()), Negated: lit.Negated()}))
	}
	result := sat.NewCDCLSolver().Solve(cnf)
	if result.Error != nil {
		t.Fatalf("solver error: %v", result.Error)
	}
	if !result.Satisfiable {
		t.Fatalf("expected the fixed sorting-network instance to be satisfiable")
	}
	return result.Assignment
}

func TestSortingNetworkSortsExhaustively(t *testing.T) {
	for m := 0; m <= 4; m++ {
		m := m
		t.Run(strconv.Itoa(m), func(t *testing.T) {
			alloc := NewIDAllocator(Var(m))
			store := NewClauseStore(alloc)
			sn := NewSortingNetwork(store, alloc)

			terms := make([]Lit, m)
			for i := 0; i < m; i++ {
				terms[i] = Pos(Var(i + 1))
			}
			sorted := sn.Sort(terms)
			if len(sorted) != m {
				t.Fatalf("expected sorted vector of length %d, got %d", m, len(sorted))
			}

			for mask := 0; mask < (1 << m); mask++ {
				fixed := make([]Lit, m)
				bits := make([]bool, m)
				for i := 0; i < m; i++ {
					v := mask&(1<<i) != 0
					bits[i] = v
					if v {
						fixed[i] = Pos(Var(i + 1))
					} else {
						fixed[i] = Neg(Var(i + 1))
					}
				}

				model := solveFixed(t, store, fixed)

				expected := countTrue(bits)
				for j, sv := range sorted {
					want := j < expected
					got := model[int(sv)]
					if got != want {
						t.Errorf("mask=%b: S[%d] = %v, want %v", mask, j, got, want)
					}
				}
			}
		})
	}
}

func countTrue(bits []bool) int {
	n := 0
	for _, b := range bits {
		if b {
			n++
		}
	}
	return n
}
