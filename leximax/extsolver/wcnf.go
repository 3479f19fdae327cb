package extsolver

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xDarkicex/leximax/leximax"
)

// hardWeight is the WCNF convention for "this clause must hold": a
// weight strictly greater than the sum of every soft clause's weight.
func hardWeight(softCount int) int { return softCount + 1 }

// writeWCNF emits DIMACS weighted CNF: hard clauses at the top weight,
// one weight-1 soft unit clause per minimization literal.
func writeWCNF(buf *bytes.Buffer, req leximax.ExternalSolveRequest) {
	top := hardWeight(len(req.Minimize))
	nbVar := int(req.TopVar)
	nbClauses := len(req.Hard) + len(req.Minimize)

	fmt.Fprintf(buf, "c leximax iteration WCNF\n")
	fmt.Fprintf(buf, "p wcnf %d %d %d\n", nbVar, nbClauses, top)

	for _, c := range req.Hard {
		fmt.Fprintf(buf, "%d ", top)
		writeClauseLits(buf, c)
	}
	for _, lit := range req.Minimize {
		fmt.Fprintf(buf, "1 %d 0\n", int(-lit))
	}
}

func writeClauseLits(buf *bytes.Buffer, c leximax.Clause) {
	for _, lit := range c {
		fmt.Fprintf(buf, "%d ", int(lit))
	}
	buf.WriteString("0\n")
}

// parseOutput dispatches to the family-specific output parser.
func parseOutput(fam family, raw []byte, topVar leximax.Var) (leximax.Assignment, leximax.SolveStatus, error) {
	text := string(raw)
	switch fam {
	case familySAT:
		return parseSATFamily(text, topVar)
	case familyOPB:
		return parseOPBFamily(text, topVar)
	default:
		return parseLPFamily(fam, text, topVar)
	}
}

// parseSATFamily reads DIMACS "s ..." status lines and "v ..." value
// lines, as emitted by SAT and MaxSAT solvers (spec.md §4.6).
func parseSATFamily(text string, topVar leximax.Var) (leximax.Assignment, leximax.SolveStatus, error) {
	if strings.Contains(text, "UNSATISFIABLE") {
		return nil, leximax.StatusUnsat, nil
	}

	assignment := make(leximax.Assignment, int(topVar))
	found := false
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "v ") && line != "v" {
			continue
		}
		found = true
		fields := strings.Fields(line)[1:]
		for _, tok := range fields {
			n, err := strconv.Atoi(tok)
			if err != nil || n == 0 {
				continue
			}
			if n < 0 {
				assignment[leximax.Var(-n)] = false
			} else {
				assignment[leximax.Var(n)] = true
			}
		}
	}
	if !found {
		return nil, leximax.StatusSolverError, fmt.Errorf("no v-line found in solver output")
	}
	return assignment, leximax.StatusSAT, nil
}
