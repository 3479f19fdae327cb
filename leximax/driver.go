package leximax

import "context"

// Formalism selects the wire format the external solver reads.
type Formalism int

const (
	FormalismWCNF Formalism = iota
	FormalismOPB
	FormalismLP
)

func (f Formalism) String() string {
	switch f {
	case FormalismWCNF:
		return "wcnf"
	case FormalismOPB:
		return "opb"
	case FormalismLP:
		return "lp"
	default:
		return "unknown"
	}
}

// LpSolver names the LP-family backend an "lp" formalism run targets.
// Meaningless for wcnf/opb.
type LpSolver int

const (
	LpSolverNone LpSolver = iota
	LpSolverCPLEX
	LpSolverGurobi
	LpSolverGLPK
	LpSolverLPSolve
	LpSolverSCIP
	LpSolverCBC
)

func (s LpSolver) String() string {
	switch s {
	case LpSolverCPLEX:
		return "cplex"
	case LpSolverGurobi:
		return "gurobi"
	case LpSolverGLPK:
		return "glpk"
	case LpSolverLPSolve:
		return "lp_solve"
	case LpSolverSCIP:
		return "scip"
	case LpSolverCBC:
		return "cbc"
	default:
		return "none"
	}
}

// SolveStatus is the outcome of one ExternalSolver.Solve call.
type SolveStatus int

const (
	StatusSAT SolveStatus = iota
	StatusUnsat
	StatusTimeout
	StatusSolverError
)

// Assignment maps variable ids to truth values. Unassigned variables
// read as false (spec.md §3's "entry v is +v if true, -v otherwise"
// vector is the signed-literal projection of this map).
type Assignment map[Var]bool

// Value reports the truth value of a literal under this assignment.
func (a Assignment) Value(l Lit) bool {
	v, ok := a[l.Var()]
	if !ok {
		return false
	}
	if l.Negated() {
		return !v
	}
	return v
}

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ExternalSolveRequest is the contract handed to the external solver
// driver for one iteration: the full clause store snapshot plus a
// minimization objective (spec.md §4.6).
type ExternalSolveRequest struct {
	Hard                 []Clause
	Soft                 []WeightedClause
	Minimize             []Lit // objective literals, coefficient +1 each
	Formalism            Formalism
	LpSolver             LpSolver
	Cmd                  string
	MultiplicationString string
	LeaveTmpFiles        bool
	TopVar               Var
}

// ExternalSolveOutcome is what one ExternalSolver.Solve call returns.
type ExternalSolveOutcome struct {
	Status     SolveStatus
	Assignment Assignment
}

// ExternalSolver is the boundary LeximaxLoop drives once per iteration.
// leximax/extsolver.Driver implements this interface; the leximax
// package never imports it directly, avoiding an import cycle (the
// driver needs leximax's clause types to write its wire formats).
type ExternalSolver interface {
	Solve(ctx context.Context, req ExternalSolveRequest) (*ExternalSolveOutcome, error)
}
