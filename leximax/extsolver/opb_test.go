package extsolver

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/leximax/leximax"
)

func TestWriteOPBObjectiveAndConstraint(t *testing.T) {
	req := leximax.ExternalSolveRequest{
		Hard:                 []leximax.Clause{{leximax.Pos(1), leximax.Neg(2)}},
		Minimize:             []leximax.Lit{leximax.Pos(1)},
		MultiplicationString: "*",
		TopVar:               2,
	}
	var buf bytes.Buffer
	writeOPB(&buf, req)

	out := buf.String()
	require.Contains(t, out, "#variable= 2 #constraint= 1\n")
	require.Contains(t, out, "min: +1*x1 ;\n")
	// Neg(2) flips sign and decrements rhs: 1 + (-1) = 0.
	require.Contains(t, out, "+1*x1 -1*x2 >= 0 ;\n")
}

func TestWriteOPBDefaultsMultiplicationString(t *testing.T) {
	req := leximax.ExternalSolveRequest{Minimize: []leximax.Lit{leximax.Pos(1)}, TopVar: 1}
	var buf bytes.Buffer
	writeOPB(&buf, req)
	require.Contains(t, buf.String(), "+1*x1")
}

func TestParseOPBFamilyReadsSignedTokens(t *testing.T) {
	assignment, status, err := parseOPBFamily("s OPTIMUM FOUND\nv x1 -x2 x3\n", 3)
	require.NoError(t, err)
	require.Equal(t, leximax.StatusSAT, status)
	require.True(t, assignment[1])
	require.False(t, assignment[2])
	require.True(t, assignment[3])
}

func TestParseOPBFamilyDetectsUnsat(t *testing.T) {
	_, status, err := parseOPBFamily("s UNSATISFIABLE\n", 1)
	require.NoError(t, err)
	require.Equal(t, leximax.StatusUnsat, status)
}

func TestParseOPBFamilyErrorsWithoutVLine(t *testing.T) {
	_, status, err := parseOPBFamily("s OPTIMUM FOUND\n", 1)
	require.Error(t, err)
	require.Equal(t, leximax.StatusSolverError, status)
}
