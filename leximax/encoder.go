package leximax

import (
	"context"
	"log/slog"
	"time"

	"github.com/xDarkicex/leximax/core"
)

// Option configures an Encoder at construction time. Functional options
// seed defaults; the imperative Set* methods below mutate the same
// fields afterward, mirroring spec.md §6's set_* family exactly.
type Option func(*Encoder)

// WithLogger installs a logger. A nil logger is replaced by slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Encoder) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithVerbosity seeds the verbosity level (0=silent,1=info,2=debug).
func WithVerbosity(v int) Option {
	return func(e *Encoder) { e.verbosity = v }
}

// WithFormalism seeds the wire format used for external solver calls.
func WithFormalism(f Formalism) Option {
	return func(e *Encoder) { e.formalism = f }
}

// WithTimeout seeds the per-call external-solver deadline (see SetTimeout).
func WithTimeout(d time.Duration) Option {
	return func(e *Encoder) { e.timeout = d }
}

// WithUbPresolve seeds the upper-bound presolve mode.
func WithUbPresolve(mode PresolveMode) Option {
	return func(e *Encoder) { e.presolveMode = mode }
}

// WithExternalSolver injects the process driver. Required before Solve;
// the leximax package cannot construct leximax/extsolver.Driver itself
// without an import cycle (the driver needs leximax's clause types).
func WithExternalSolver(s ExternalSolver) Option {
	return func(e *Encoder) { e.driver = s }
}

// Encoder is the programmatic surface of spec.md §6: a caller installs
// a problem, configures the external solver, and calls Solve.
type Encoder struct {
	logger    *slog.Logger
	verbosity int

	formalism            Formalism
	lpSolver             LpSolver
	extSolverCmd         string
	presolveMode         PresolveMode
	timeout              time.Duration
	simplifyLast         bool
	multiplicationString string
	leaveTmpFiles        bool

	driver ExternalSolver

	loop *Loop
}

// NewEncoder builds an Encoder with the given options applied over
// spec-mandated defaults (wcnf formalism, presolve disabled, no
// timeout, "*" multiplication string).
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		logger:               slog.Default(),
		formalism:            FormalismWCNF,
		presolveMode:         PresolveDisabled,
		multiplicationString: "*",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.loop = newLoop(e)
	return e
}

// RawObjective is one leximax coordinate as supplied by the caller:
// an ordered list of terms, each itself a clause (most commonly a
// single literal). See normalizeTerm for the Tseitin replacement rule.
type RawObjective struct {
	Terms []Clause
}

// SetProblem installs hard constraints and N objectives, resetting any
// prior state (spec.md §6).
func (e *Encoder) SetProblem(hard []Clause, objectives []RawObjective) error {
	for _, c := range hard {
		if err := validateClause(c); err != nil {
			return core.Wrap(core.KindInvalidInput, "Encoder.SetProblem", "malformed hard clause", err)
		}
	}
	for _, obj := range objectives {
		for _, term := range obj.Terms {
			if err := validateClause(term); err != nil {
				return core.Wrap(core.KindInvalidInput, "Encoder.SetProblem", "malformed objective term", err)
			}
		}
	}

	maxVar := Var(0)
	bump := func(c Clause) {
		for _, l := range c {
			if v := l.Var(); v > maxVar {
				maxVar = v
			}
		}
	}
	for _, c := range hard {
		bump(c)
	}
	for _, obj := range objectives {
		for _, term := range obj.Terms {
			bump(term)
		}
	}

	alloc := NewIDAllocator(maxVar)
	store := NewClauseStore(alloc)
	for _, c := range hard {
		store.AddHard(c)
	}

	norm := make([]Objective, len(objectives))
	for i, obj := range objectives {
		terms := make([]Lit, len(obj.Terms))
		for j, term := range obj.Terms {
			terms[j] = normalizeTerm(term, store, alloc)
		}
		norm[i] = Objective{Terms: terms}
	}

	e.loop = newLoop(e)
	e.loop.alloc = alloc
	e.loop.store = store
	e.loop.sn = NewSortingNetwork(store, alloc)
	e.loop.re = NewRelaxationEncoder(store, alloc, e.loop.sn)
	e.loop.presolver = NewUpperBoundPresolver(e.presolveMode)
	e.loop.objectives = norm
	e.loop.state = StateFresh
	return nil
}

func validateClause(c Clause) error {
	if len(c) == 0 {
		return core.New(core.KindInvalidInput, "validateClause", "clause has zero literals")
	}
	for _, l := range c {
		if l == 0 {
			return core.New(core.KindInvalidInput, "validateClause", "literal is zero")
		}
		if l.Var() < 1 {
			return core.New(core.KindInvalidInput, "validateClause", "negative variable index")
		}
	}
	return nil
}

// SetFormalism rejects anything outside {wcnf, opb, lp}.
func (e *Encoder) SetFormalism(f Formalism) error {
	switch f {
	case FormalismWCNF, FormalismOPB, FormalismLP:
		e.formalism = f
		return nil
	default:
		return core.New(core.KindInvalidConfig, "Encoder.SetFormalism", "formalism outside {wcnf,opb,lp}")
	}
}

// SetLpSolver rejects anything outside the named LP backend family.
func (e *Encoder) SetLpSolver(s LpSolver) error {
	switch s {
	case LpSolverCPLEX, LpSolverGurobi, LpSolverGLPK, LpSolverLPSolve, LpSolverSCIP, LpSolverCBC:
		e.lpSolver = s
		return nil
	default:
		return core.New(core.KindInvalidConfig, "Encoder.SetLpSolver", "lp solver outside enumerated domain")
	}
}

// SetExtSolverCmd installs the shell command string used to spawn the
// external solver; split on whitespace at spawn time by the driver.
func (e *Encoder) SetExtSolverCmd(cmd string) error {
	if cmd == "" {
		return core.New(core.KindInvalidConfig, "Encoder.SetExtSolverCmd", "empty command")
	}
	e.extSolverCmd = cmd
	return nil
}

// SetUbPresolve rejects anything outside {0,1,2,3}.
func (e *Encoder) SetUbPresolve(mode PresolveMode) error {
	switch mode {
	case PresolveDisabled, PresolveSAT, PresolveMSS, PresolveMaxSAT:
		e.presolveMode = mode
		if e.loop != nil {
			e.loop.presolver = NewUpperBoundPresolver(mode)
		}
		return nil
	default:
		return core.New(core.KindInvalidConfig, "Encoder.SetUbPresolve", "presolve mode outside {0,1,2,3}")
	}
}

// SetTimeout installs the deadline applied to each external solver call
// (zero means none). The wait between SIGTERM and SIGKILL once a
// deadline elapses is extsolver.Driver's own Grace field; this value
// does not change it.
func (e *Encoder) SetTimeout(d time.Duration) {
	e.timeout = d
}

// SetSimplifyLast enables the §4.4 last-iteration short-circuit.
func (e *Encoder) SetSimplifyLast(v bool) {
	e.simplifyLast = v
}

// SetVerbosity rejects anything outside {0,1,2}.
func (e *Encoder) SetVerbosity(v int) error {
	if v < 0 || v > 2 {
		return core.New(core.KindInvalidConfig, "Encoder.SetVerbosity", "verbosity outside {0,1,2}")
	}
	e.verbosity = v
	return nil
}

// SetMultiplicationString sets the OPB/LP coefficient-variable separator.
func (e *Encoder) SetMultiplicationString(s string) {
	if s == "" {
		s = "*"
	}
	e.multiplicationString = s
}

// SetLeaveTmpFiles toggles debug retention of scratch files.
func (e *Encoder) SetLeaveTmpFiles(v bool) {
	e.leaveTmpFiles = v
}

// SetExternalSolver injects (or replaces) the process driver.
func (e *Encoder) SetExternalSolver(s ExternalSolver) {
	e.driver = s
}

// Solve runs the leximax loop over the installed problem, returning nil
// once every objective's maximum is frozen and an error otherwise.
func (e *Encoder) Solve(ctx context.Context) error { return e.loop.Solve(ctx) }

// GetSat reports whether the last Solve call found a satisfying model.
func (e *Encoder) GetSat() bool { return e.loop.sat }

// GetSolution returns the best assignment found, if any.
func (e *Encoder) GetSolution() Assignment { return e.loop.solution }

// GetObjectiveVector returns the leximax vector of the best assignment
// found: the maximum frozen at each completed iteration, largest first
// (spec.md §6). Entry i is the i-th largest objective cost, not the
// cost of objective i.
func (e *Encoder) GetObjectiveVector() []int { return e.loop.objectiveVector }

// Terminate aborts an in-flight Solve and collects the partial result
// (spec.md §5).
func (e *Encoder) Terminate() { e.loop.terminate() }

// Clear tears down every transient vector, returning the encoder to
// its pre-SetProblem state (spec.md §3 "Lifecycle").
func (e *Encoder) Clear() {
	e.loop = newLoop(e)
}
