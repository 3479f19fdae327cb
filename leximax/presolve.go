package leximax

import (
	"github.com/xDarkicex/leximax/core"
	"github.com/xDarkicex/leximax/sat"
)

// PresolveMode selects the strength of the upper-bound presolve stage
// (spec.md §4.5).
type PresolveMode int

const (
	PresolveDisabled PresolveMode = iota
	PresolveSAT
	PresolveMSS
	PresolveMaxSAT
)

// PresolveResult carries the feasible assignment (if any) found before
// iteration 0 and the resulting bound on V_0 (-1 when the mode derives
// none).
type PresolveResult struct {
	Feasible   bool
	Assignment sat.Assignment
	Bound      int // upper bound on Σ_j V_0[j]
}

// UpperBoundPresolver runs a single SAT query, an MSS extension, or a
// full MaxSAT call over the objectives' soft clauses before iteration
// 0. Only the MaxSAT mode derives a starting bound for iteration 0; the
// SAT and MSS modes report feasibility and a model with Bound -1, which
// leaves iteration 0 unbounded. The embedded sat package plays the
// role of the "out of scope" incremental SAT solver that spec.md §1
// treats as a collaborator.
type UpperBoundPresolver struct {
	mode PresolveMode
}

// NewUpperBoundPresolver returns a presolver running in the given mode.
func NewUpperBoundPresolver(mode PresolveMode) *UpperBoundPresolver {
	return &UpperBoundPresolver{mode: mode}
}

// Run executes the configured presolve mode over the hard clauses and
// the flattened list of all objectives' soft clauses.
func (p *UpperBoundPresolver) Run(hard []Clause, objectives []Objective) (*PresolveResult, error) {
	switch p.mode {
	case PresolveDisabled:
		return &PresolveResult{Feasible: true, Bound: -1}, nil
	case PresolveSAT:
		return p.runSAT(hard)
	case PresolveMSS:
		return p.runMSS(hard, objectives)
	case PresolveMaxSAT:
		return p.runMaxSAT(hard, objectives)
	default:
		return nil, core.New(core.KindInvalidConfig, "UpperBoundPresolver.Run", "unknown presolve mode")
	}
}

func toCNF(hard []Clause) *sat.CNF {
	cnf := sat.NewCNF()
	for _, c := range hard {
		cnf.AddClause(sat.NewClause(toSATLiterals(c)...))
	}
	return cnf
}

func toSATLiterals(c Clause) []sat.Literal {
	lits := make([]sat.Literal, len(c))
	for i, l := range c {
		lits[i] = sat.Literal{Var: int(l.Var()), Negated: l.Negated()}
	}
	return lits
}

// runSAT issues one SAT query on the hard clauses and returns its model
// (mode 1); no bound is derived from that model.
func (p *UpperBoundPresolver) runSAT(hard []Clause) (*PresolveResult, error) {
	solver := sat.NewCDCLSolver()
	result := solver.Solve(toCNF(hard))
	if result.Error != nil {
		return nil, core.Wrap(core.KindSolverError, "UpperBoundPresolver.runSAT", "embedded SAT call failed", result.Error)
	}
	if !result.Satisfiable {
		return &PresolveResult{Feasible: false}, nil
	}
	return &PresolveResult{Feasible: true, Assignment: result.Assignment, Bound: -1}, nil
}

// runMSS starts from mode 1's model and greedily flips falsified soft
// terms to true while hard constraints remain satisfiable, using the
// embedded solver incrementally (mode 2).
func (p *UpperBoundPresolver) runMSS(hard []Clause, objectives []Objective) (*PresolveResult, error) {
	base, err := p.runSAT(hard)
	if err != nil || !base.Feasible {
		return base, err
	}

	solver := sat.NewCDCLSolver()
	cnf := toCNF(hard)
	assignment := base.Assignment.Clone()

	for _, obj := range objectives {
		for _, term := range obj.Terms {
			v := int(term.Var())
			want := !term.Negated()
			if assignment.IsAssigned(v) && assignment[v] == want {
				continue
			}

			before := len(cnf.Clauses)
			cnf.AddClause(sat.NewClause(sat.Literal{Var: v, Negated: !want}))
			result := solver.Solve(cnf)
			if result.Satisfiable {
				assignment = result.Assignment
				continue
			}
			cnf.Clauses = cnf.Clauses[:before] // flip rejected, drop the unit clause
		}
	}

	return &PresolveResult{Feasible: true, Assignment: assignment, Bound: -1}, nil
}

// runMaxSAT solves a weighted MaxSAT over the hard clauses (given a
// weight heavy enough that violating one always costs more than
// violating every soft term at once) plus one weight-1 soft clause ¬t
// for every objective term t (mode 3) — cheap but coarse. A soft clause
// is violated exactly when its term is true, so the violated count is
// the model's total objective cost, which is at least its largest
// single objective cost.
func (p *UpperBoundPresolver) runMaxSAT(hard []Clause, objectives []Objective) (*PresolveResult, error) {
	cnf := sat.NewCNF()
	termCount := 0
	for _, obj := range objectives {
		termCount += len(obj.Terms)
	}
	hardWeight := float64(termCount + 1)

	weights := make([]float64, 0, len(hard)+termCount)
	for _, c := range hard {
		cnf.AddClause(sat.NewClause(toSATLiterals(c)...))
		weights = append(weights, hardWeight)
	}
	for _, obj := range objectives {
		for _, term := range obj.Terms {
			cnf.AddClause(sat.NewClause(sat.Literal{Var: int(term.Var()), Negated: !term.Negated()}))
			weights = append(weights, 1.0)
		}
	}

	solver := sat.NewMAXSATSolver()
	result := solver.SolveWeightedMAXSAT(cnf, weights)
	if result.Error != nil {
		return nil, core.Wrap(core.KindSolverError, "UpperBoundPresolver.runMaxSAT", "embedded MaxSAT call failed", result.Error)
	}

	// Hard clauses were added first, so their ids run 1..len(hard);
	// the heavy weight should make them win out whenever the hard set
	// itself is feasible, but if it isn't, surface that as infeasible
	// rather than reporting a misleading bound on the soft terms.
	softUnsatisfied := 0
	for _, id := range result.UnsatisfiedClauses {
		if id <= len(hard) {
			return &PresolveResult{Feasible: false}, nil
		}
		softUnsatisfied++
	}

	return &PresolveResult{
		Feasible:   true,
		Assignment: result.Assignment,
		Bound:      softUnsatisfied,
	}, nil
}
