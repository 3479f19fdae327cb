package extsolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/leximax/leximax"
)

// writeFakeSolver drops a tiny shell script under dir that ignores its
// input file and prints fixed DIMACS-style output, standing in for a
// real external MaxSAT binary during the process lifecycle test.
func writeFakeSolver(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "fake-solver.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestDriverSolveHappyPath(t *testing.T) {
	dir := t.TempDir()
	script := writeFakeSolver(t, dir, `printf 's SATISFIABLE\nv 1 -2 0\n'`)

	d := &Driver{TempDir: dir}
	req := leximax.ExternalSolveRequest{
		Hard:      []leximax.Clause{{leximax.Pos(1), leximax.Pos(2)}},
		Minimize:  []leximax.Lit{leximax.Pos(2)},
		Formalism: leximax.FormalismWCNF,
		Cmd:       "/bin/sh " + script,
		TopVar:    2,
	}

	outcome, err := d.Solve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, leximax.StatusSAT, outcome.Status)
	require.True(t, outcome.Assignment[1])
	require.False(t, outcome.Assignment[2])
}

func TestDriverSolveUnsat(t *testing.T) {
	dir := t.TempDir()
	script := writeFakeSolver(t, dir, `printf 's UNSATISFIABLE\n'`)

	d := &Driver{TempDir: dir}
	req := leximax.ExternalSolveRequest{
		Hard:      []leximax.Clause{{leximax.Pos(1)}, {leximax.Neg(1)}},
		Formalism: leximax.FormalismWCNF,
		Cmd:       "/bin/sh " + script,
		TopVar:    1,
	}

	outcome, err := d.Solve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, leximax.StatusUnsat, outcome.Status)
}

func TestDriverSolveRejectsMissingCommand(t *testing.T) {
	d := &Driver{}
	_, err := d.Solve(context.Background(), leximax.ExternalSolveRequest{})
	require.Error(t, err)
}

func TestDriverSolveSurvivesMissingBinary(t *testing.T) {
	d := &Driver{TempDir: t.TempDir()}
	req := leximax.ExternalSolveRequest{
		Cmd:       "/no/such/solver-binary-xyz",
		Formalism: leximax.FormalismWCNF,
		TopVar:    1,
	}
	_, err := d.Solve(context.Background(), req)
	require.Error(t, err)
}

func TestDriverSolveKillsOnContextCancellation(t *testing.T) {
	dir := t.TempDir()
	script := writeFakeSolver(t, dir, `sleep 5; printf 's SATISFIABLE\nv 1 0\n'`)

	d := &Driver{TempDir: dir, Grace: 10 * time.Millisecond}
	req := leximax.ExternalSolveRequest{
		Hard:      []leximax.Clause{{leximax.Pos(1)}},
		Formalism: leximax.FormalismWCNF,
		Cmd:       "/bin/sh " + script,
		TopVar:    1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := d.Solve(ctx, req)
	require.Error(t, err)
}

func TestDriverSolveLeaveTmpFilesRetainsScratch(t *testing.T) {
	dir := t.TempDir()
	script := writeFakeSolver(t, dir, `printf 's SATISFIABLE\nv 1 0\n'`)

	d := &Driver{TempDir: dir}
	req := leximax.ExternalSolveRequest{
		Hard:          []leximax.Clause{{leximax.Pos(1)}},
		Formalism:     leximax.FormalismWCNF,
		Cmd:           "/bin/sh " + script,
		TopVar:        1,
		LeaveTmpFiles: true,
	}

	_, err := d.Solve(context.Background(), req)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	foundWCNF, foundOut := false, false
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".wcnf" {
			foundWCNF = true
		}
		if filepath.Ext(e.Name()) == ".out" {
			foundOut = true
		}
	}
	require.True(t, foundWCNF, "expected the .wcnf scratch file to survive")
	require.True(t, foundOut, "expected the .out scratch file to survive")
}
