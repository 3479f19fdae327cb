package extsolver

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xDarkicex/leximax/leximax"
)

// writeOPB emits a pseudo-Boolean OPB file: one "min:" objective line
// over the minimization literals, and one ">= k ;" constraint per hard
// clause, translated via the standard clause-to-PB rule (each negative
// literal flips its coefficient sign and decrements the right-hand
// side by one).
func writeOPB(buf *bytes.Buffer, req leximax.ExternalSolveRequest) {
	mul := req.MultiplicationString
	if mul == "" {
		mul = "*"
	}

	fmt.Fprintf(buf, "* #variable= %d #constraint= %d\n", int(req.TopVar), len(req.Hard))

	buf.WriteString("min:")
	for _, lit := range req.Minimize {
		fmt.Fprintf(buf, " +1%sx%d", mul, int(lit.Var()))
	}
	buf.WriteString(" ;\n")

	for _, c := range req.Hard {
		rhs := 1
		for _, lit := range c {
			if lit.Negated() {
				fmt.Fprintf(buf, "-1%sx%d ", mul, int(lit.Var()))
				rhs--
			} else {
				fmt.Fprintf(buf, "+1%sx%d ", mul, int(lit.Var()))
			}
		}
		fmt.Fprintf(buf, ">= %d ;\n", rhs)
	}
}

// parseOPBFamily reads PBO solver output: "s ..." status and "v x<id>"
// / "v -x<id>" value lines.
func parseOPBFamily(text string, topVar leximax.Var) (leximax.Assignment, leximax.SolveStatus, error) {
	if strings.Contains(text, "UNSATISFIABLE") {
		return nil, leximax.StatusUnsat, nil
	}

	assignment := make(leximax.Assignment, int(topVar))
	found := false
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "v ") {
			continue
		}
		found = true
		for _, tok := range strings.Fields(line)[1:] {
			neg := strings.HasPrefix(tok, "-")
			tok = strings.TrimPrefix(tok, "-")
			tok = strings.TrimPrefix(tok, "x")
			id, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			assignment[leximax.Var(id)] = !neg
		}
	}
	if !found {
		return nil, leximax.StatusSolverError, fmt.Errorf("no v-line found in OPB solver output")
	}
	return assignment, leximax.StatusSAT, nil
}
