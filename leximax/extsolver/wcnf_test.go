package extsolver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/leximax/leximax"
)

func TestWriteWCNFShape(t *testing.T) {
	req := leximax.ExternalSolveRequest{
		Hard:     []leximax.Clause{{leximax.Pos(1), leximax.Pos(2)}},
		Minimize: []leximax.Lit{leximax.Pos(2)},
		TopVar:   2,
	}
	var buf bytes.Buffer
	writeWCNF(&buf, req)

	out := buf.String()
	require.Contains(t, out, "p wcnf 2 2 2\n") // top = len(Minimize)+1 = 2
	require.Contains(t, out, "2 1 2 0\n")       // hard clause at top weight
	require.Contains(t, out, "1 -2 0\n")        // soft unit clause falsifying the minimized literal
}

func TestParseSATFamilyReadsModel(t *testing.T) {
	out := "c comment\ns SATISFIABLE\nv 1 -2 0\n"
	assignment, status, err := parseSATFamily(out, 2)
	require.NoError(t, err)
	require.Equal(t, leximax.StatusSAT, status)
	require.True(t, assignment[1])
	require.False(t, assignment[2])
}

func TestParseSATFamilyDetectsUnsat(t *testing.T) {
	_, status, err := parseSATFamily("s UNSATISFIABLE\n", 2)
	require.NoError(t, err)
	require.Equal(t, leximax.StatusUnsat, status)
}

func TestParseSATFamilyErrorsWithoutVLine(t *testing.T) {
	_, status, err := parseSATFamily("s SATISFIABLE\n", 2)
	require.Error(t, err)
	require.Equal(t, leximax.StatusSolverError, status)
}

func TestWriteWCNFStartsWithCommentLine(t *testing.T) {
	req := leximax.ExternalSolveRequest{
		Hard:     []leximax.Clause{{leximax.Pos(1)}},
		Minimize: []leximax.Lit{leximax.Pos(1)},
		TopVar:   1,
	}
	var buf bytes.Buffer
	writeWCNF(&buf, req)
	require.True(t, strings.HasPrefix(buf.String(), "c "))
}
