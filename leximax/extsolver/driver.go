// Package extsolver implements the ExternalSolverDriver of spec.md
// §4.6: it serializes a ClauseStore snapshot and a minimization
// objective to WCNF, OPB, or LP, spawns the configured external solver
// as a child process under a deadline, and parses its family-specific
// output back into an assignment.
package extsolver

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/xDarkicex/leximax/core"
	"github.com/xDarkicex/leximax/leximax"
)

// Driver spawns the external solver configured on a leximax.Encoder
// and parses its result. It implements leximax.ExternalSolver.
type Driver struct {
	// TempDir is where input/output scratch files are created. Empty
	// defaults to os.TempDir().
	TempDir string
	// Grace is how long to wait between SIGTERM and SIGKILL once the
	// deadline elapses.
	Grace time.Duration
	// Logger receives lifecycle events; nil defaults to slog.Default().
	Logger *slog.Logger

	seq atomic.Uint64
}

func (d *Driver) tempDir() string {
	if d.TempDir != "" {
		return d.TempDir
	}
	return os.TempDir()
}

func (d *Driver) grace() time.Duration {
	if d.Grace > 0 {
		return d.Grace
	}
	return 200 * time.Millisecond
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Solve implements leximax.ExternalSolver.
func (d *Driver) Solve(ctx context.Context, req leximax.ExternalSolveRequest) (*leximax.ExternalSolveOutcome, error) {
	if req.Cmd == "" {
		return nil, core.New(core.KindInvalidConfig, "Driver.Solve", "no external solver command configured")
	}

	stamp := fmt.Sprintf("leximax-%d-%d", os.Getpid(), d.seq.Add(1))
	inPath := filepath.Join(d.tempDir(), stamp+inputExtension(req.Formalism))
	outPath := filepath.Join(d.tempDir(), stamp+".out")

	if !req.LeaveTmpFiles {
		defer os.Remove(inPath)
		defer os.Remove(outPath)
	}

	if err := writeProblem(inPath, req); err != nil {
		return nil, core.Wrap(core.KindInvalidInput, "Driver.Solve", "failed writing solver input", err)
	}

	argv := strings.Fields(req.Cmd)
	if len(argv) == 0 {
		return nil, core.New(core.KindInvalidConfig, "Driver.Solve", "empty external solver command")
	}
	argv = append(argv, inPath)

	outFile, err := os.Create(outPath)
	if err != nil {
		return nil, core.Wrap(core.KindSolverSpawnFailed, "Driver.Solve", "could not create output file", err)
	}
	defer outFile.Close()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = outFile
	cmd.Stderr = outFile

	if err := cmd.Start(); err != nil {
		return nil, core.Wrap(core.KindSolverSpawnFailed, "Driver.Solve", "failed to spawn external solver", err)
	}
	d.logger().Debug("spawned external solver", "pid", cmd.Process.Pid, "argv", argv)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var waitErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		d.killGracefully(cmd, done)
		waitErr = ctx.Err()
	}

	raw, readErr := os.ReadFile(outPath)
	if readErr != nil {
		return nil, core.Wrap(core.KindSolverError, "Driver.Solve", "missing solver output file", readErr)
	}

	family := familyOf(req.Formalism, req.LpSolver)
	assignment, status, parseErr := parseOutput(family, raw, req.TopVar)

	if status == leximax.StatusSAT && parseErr == nil {
		return &leximax.ExternalSolveOutcome{Status: leximax.StatusSAT, Assignment: assignment}, nil
	}
	if status == leximax.StatusUnsat {
		return &leximax.ExternalSolveOutcome{Status: leximax.StatusUnsat}, nil
	}
	if ctx.Err() != nil {
		return &leximax.ExternalSolveOutcome{Status: leximax.StatusTimeout, Assignment: assignment}, waitErr
	}
	if waitErr != nil || parseErr != nil {
		return &leximax.ExternalSolveOutcome{Status: leximax.StatusSolverError}, core.Wrap(core.KindSolverError, "Driver.Solve", "no parseable model in solver output", firstNonNil(waitErr, parseErr))
	}
	return &leximax.ExternalSolveOutcome{Status: leximax.StatusSolverError}, core.New(core.KindSolverError, "Driver.Solve", "solver exited without a usable model")
}

func (d *Driver) killGracefully(cmd *exec.Cmd, done <-chan error) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)
	select {
	case <-done:
		return
	case <-time.After(d.grace()):
		_ = cmd.Process.Kill()
		<-done
	}
}

func firstNonNil(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func inputExtension(f leximax.Formalism) string {
	switch f {
	case leximax.FormalismOPB:
		return ".opb"
	case leximax.FormalismLP:
		return ".lp"
	default:
		return ".wcnf"
	}
}

func writeProblem(path string, req leximax.ExternalSolveRequest) error {
	var buf bytes.Buffer
	switch req.Formalism {
	case leximax.FormalismOPB:
		writeOPB(&buf, req)
	case leximax.FormalismLP:
		writeLP(&buf, req)
	default:
		writeWCNF(&buf, req)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// family identifies which output-parsing convention applies.
type family int

const (
	familySAT family = iota
	familyOPB
	familyCPLEX
	familyGurobi
	familyGLPK
	familyLPSolve
	familySCIP
	familyCBC
)

func familyOf(f leximax.Formalism, lp leximax.LpSolver) family {
	switch f {
	case leximax.FormalismOPB:
		return familyOPB
	case leximax.FormalismLP:
		switch lp {
		case leximax.LpSolverCPLEX:
			return familyCPLEX
		case leximax.LpSolverGurobi:
			return familyGurobi
		case leximax.LpSolverGLPK:
			return familyGLPK
		case leximax.LpSolverLPSolve:
			return familyLPSolve
		case leximax.LpSolverSCIP:
			return familySCIP
		case leximax.LpSolverCBC:
			return familyCBC
		default:
			return familyGLPK
		}
	default:
		return familySAT
	}
}
