package leximax

import (
	"context"

	"github.com/xDarkicex/leximax/sat"
)

// EmbeddedSolver implements ExternalSolver using the in-process sat
// package instead of spawning a process. It encodes the same way
// leximax/extsolver's WCNF writer would: hard clauses get a weight
// above the sum of every soft clause's weight, and each minimization
// literal becomes a weight-1 soft clause falsified when that literal
// is true. Useful for tests and for callers with no external MaxSAT
// binary installed.
type EmbeddedSolver struct{}

// Solve implements ExternalSolver. ctx is not observed: the embedded
// solver has no subprocess to cancel and returns once it has an
// answer, mirroring how a library call (rather than a spawned
// process) naturally behaves.
func (EmbeddedSolver) Solve(ctx context.Context, req ExternalSolveRequest) (*ExternalSolveOutcome, error) {
	cnf := sat.NewCNF()
	weights := make([]float64, 0, len(req.Hard)+len(req.Minimize))
	hardWeight := float64(len(req.Minimize) + 1)

	for _, c := range req.Hard {
		cnf.AddClause(sat.NewClause(toSATLiterals(c)...))
		weights = append(weights, hardWeight)
	}
	for _, lit := range req.Minimize {
		cnf.AddClause(sat.NewClause(sat.Literal{Var: int(lit.Var()), Negated: !lit.Negated()}))
		weights = append(weights, 1.0)
	}

	if len(cnf.Clauses) == 0 {
		return &ExternalSolveOutcome{Status: StatusSAT, Assignment: Assignment{}}, nil
	}

	solver := sat.NewMAXSATSolver()
	result := solver.SolveWeightedMAXSAT(cnf, weights)
	if result.Error != nil {
		return nil, result.Error
	}

	assignment := fromSATAssignment(result.Assignment)
	for _, c := range req.Hard {
		if !clauseSatisfied(c, assignment) {
			return &ExternalSolveOutcome{Status: StatusUnsat}, nil
		}
	}
	return &ExternalSolveOutcome{Status: StatusSAT, Assignment: assignment}, nil
}

func fromSATAssignment(a sat.Assignment) Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[Var(k)] = v
	}
	return out
}

func clauseSatisfied(c Clause, a Assignment) bool {
	for _, lit := range c {
		if a.Value(lit) {
			return true
		}
	}
	return false
}
