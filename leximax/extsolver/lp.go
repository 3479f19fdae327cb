package extsolver

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xDarkicex/leximax/leximax"
)

// writeLP emits a CPLEX-style LP file: a Minimize objective, a
// Subject To block of "at least one" constraints translated from the
// hard clauses, and a Binary declaration for every variable.
func writeLP(buf *bytes.Buffer, req leximax.ExternalSolveRequest) {
	mul := req.MultiplicationString
	if mul == "" {
		mul = "*"
	}

	buf.WriteString("Minimize\n obj:")
	for _, lit := range req.Minimize {
		fmt.Fprintf(buf, " +1%sx%d", mul, int(lit.Var()))
	}
	buf.WriteString("\n")

	buf.WriteString("Subject To\n")
	for i, c := range req.Hard {
		rhs := 1
		fmt.Fprintf(buf, " c%d:", i)
		for _, lit := range c {
			if lit.Negated() {
				fmt.Fprintf(buf, " -1%sx%d", mul, int(lit.Var()))
				rhs--
			} else {
				fmt.Fprintf(buf, " +1%sx%d", mul, int(lit.Var()))
			}
		}
		fmt.Fprintf(buf, " >= %d\n", rhs)
	}

	buf.WriteString("Binary\n")
	for v := leximax.Var(1); v <= req.TopVar; v++ {
		fmt.Fprintf(buf, " x%d\n", int(v))
	}
	buf.WriteString("End\n")
}

var lpValueLine = regexp.MustCompile(`x(\d+)\D+(-?\d+(?:\.\d+)?)`)

// lpInfeasibleMarkers names each LP-family solver's own wording for
// "no feasible solution", since each table format reports it
// differently (spec.md §4.6).
var lpInfeasibleMarkers = map[family][]string{
	familyCPLEX:   {"infeasible", "Infeasible"},
	familyGurobi:  {"Infeasible model", "INFEASIBLE"},
	familyGLPK:    {"INFEASIBLE", "PROBLEM HAS NO"},
	familyLPSolve: {"infeasible", "INFEASIBLE"},
	familySCIP:    {"infeasible", "problem is solved [infeasible]"},
	familyCBC:     {"Infeasible", "infeasible"},
}

// parseLPFamily extracts "x<id> <value>" pairs common to every
// CPLEX/Gurobi/GLPK/lp_solve/SCIP/CBC solution dump. Variable names
// x<id> are recovered by integer parse; 0 means false, 1 means true;
// any other value is a solver-error since LP variables are declared
// Binary at file-write time and fractional results indicate relaxation.
func parseLPFamily(fam family, text string, topVar leximax.Var) (leximax.Assignment, leximax.SolveStatus, error) {
	for _, marker := range lpInfeasibleMarkers[fam] {
		if strings.Contains(text, marker) {
			return nil, leximax.StatusUnsat, nil
		}
	}

	matches := lpValueLine.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, leximax.StatusSolverError, fmt.Errorf("no x<id> value pairs found in %v solver output", fam)
	}

	assignment := make(leximax.Assignment, int(topVar))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		val, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		switch val {
		case 0:
			assignment[leximax.Var(id)] = false
		case 1:
			assignment[leximax.Var(id)] = true
		default:
			return nil, leximax.StatusSolverError, fmt.Errorf("fractional value %v for x%d: LP relaxation, not an integer solution", val, id)
		}
	}
	return assignment, leximax.StatusSAT, nil
}
