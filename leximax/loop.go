package leximax

import (
	"context"
	"log/slog"

	"github.com/xDarkicex/leximax/core"
)

// State is a position in the LeximaxLoop state machine (spec.md §4.7).
// Transitions are strictly forward; StateAborted is reachable from any
// state on deadline or Terminate().
type State int

const (
	StateFresh State = iota
	StateEncoding
	StatePresolving
	StateIterating
	StateDoneSAT
	StateDoneUnsat
	StateDoneAborted
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateEncoding:
		return "encoding"
	case StatePresolving:
		return "presolving"
	case StateIterating:
		return "iterating"
	case StateDoneSAT:
		return "done(sat)"
	case StateDoneUnsat:
		return "done(unsat)"
	case StateDoneAborted:
		return "done(aborted)"
	default:
		return "unknown"
	}
}

// Loop is the LeximaxLoop of spec.md §4.7: it owns the clause store,
// the sorting network, the relaxation encoder, the presolver, and the
// signalHandler for the duration of one Solve call.
type Loop struct {
	enc *Encoder

	alloc     *IDAllocator
	store     *ClauseStore
	sn        *SortingNetwork
	re        *RelaxationEncoder
	presolver *UpperBoundPresolver

	objectives []Objective
	sorted     [][]Var

	state     State
	iteration int
	mu        []int // frozen maxima per completed iteration

	sat             bool
	solution        Assignment
	objectiveVector []int

	signals signalHandler
}

func newLoop(enc *Encoder) *Loop {
	return &Loop{enc: enc, state: StateFresh}
}

func (l *Loop) terminate() {
	l.signals.requestAbort()
}

func (l *Loop) logger() *slog.Logger {
	if l.enc != nil && l.enc.logger != nil {
		return l.enc.logger
	}
	return slog.Default()
}

func (l *Loop) logf(level slog.Level, minVerbosity int, msg string, args ...any) {
	if l.enc == nil || l.enc.verbosity < minVerbosity {
		return
	}
	l.logger().Log(context.Background(), level, msg, args...)
}

// Solve runs the full leximax iteration algorithm of spec.md §4.7,
// returning 0-equivalent (nil) on SAT and a non-nil error otherwise,
// exactly as spec.md §6's solve() contract describes.
func (l *Loop) Solve(ctx context.Context) error {
	if l.store == nil {
		return core.New(core.KindInvalidConfig, "Loop.Solve", "no problem installed, call SetProblem first")
	}
	if l.enc.driver == nil {
		return core.New(core.KindInvalidConfig, "Loop.Solve", "no external solver configured, call SetExternalSolver")
	}

	l.signals.reset()
	ctx, cancel := l.signals.arm(ctx)
	defer cancel()

	l.state = StateEncoding
	l.sorted = make([][]Var, len(l.objectives))
	for k, obj := range l.objectives {
		l.sorted[k] = l.sn.Sort(obj.Terms)
	}
	l.logf(slog.LevelInfo, 1, "sorted vectors built", "objectives", len(l.objectives))

	presolveBound := -1
	if l.presolver != nil {
		l.state = StatePresolving
		result, err := l.presolver.Run(l.store.Hard(), l.objectives)
		if err != nil {
			return err
		}
		if !result.Feasible {
			l.state = StateDoneUnsat
			return core.Sentinel(core.KindUnsat)
		}
		if result.Bound >= 0 {
			presolveBound = result.Bound
		}
		l.logf(slog.LevelInfo, 1, "presolve complete", "bound", result.Bound)
	}

	n := len(l.objectives)
	l.objectiveVector = make([]int, 0, n)
	l.mu = make([]int, 0, n)

	// With no objectives, one pass with an empty minimization still
	// decides plain satisfiability of the hard clauses.
	iterations := n
	if iterations == 0 {
		iterations = 1
	}
	for i := 0; i < iterations; i++ {
		if l.signals.aborted() {
			l.state = StateDoneAborted
			return core.Sentinel(core.KindAborted)
		}

		l.state = StateIterating
		l.iteration = i

		var enc IterationEncoding
		if l.enc.simplifyLast && i == n-1 {
			enc = l.re.EncodeSimplifiedLast(l.sorted)
		} else {
			enc = l.re.Encode(i, l.sorted)
		}

		if i == 0 && presolveBound >= 0 {
			l.re.FreezeMaximum(enc.V, presolveBound)
		}

		minimize := make([]Lit, len(enc.V))
		for j, v := range enc.V {
			minimize[j] = Pos(v)
		}

		req := ExternalSolveRequest{
			Hard:                 l.store.Hard(),
			Soft:                 l.store.Soft(),
			Minimize:             minimize,
			Formalism:            l.enc.formalism,
			LpSolver:             l.enc.lpSolver,
			Cmd:                  l.enc.extSolverCmd,
			MultiplicationString: l.enc.multiplicationString,
			LeaveTmpFiles:        l.enc.leaveTmpFiles,
			TopVar:               l.alloc.Top(),
		}

		callCtx, callCancel := ctx, context.CancelFunc(func() {})
		if l.enc.timeout > 0 {
			callCtx, callCancel = context.WithTimeout(ctx, l.enc.timeout)
		}
		outcome, err := l.enc.driver.Solve(callCtx, req)
		timedOut := callCtx.Err() != nil
		callCancel()
		if err != nil {
			if timedOut {
				l.state = StateDoneAborted
				return core.Wrap(core.KindTimeout, "Loop.Solve", "external solver deadline exceeded", err)
			}
			return core.Wrap(core.KindSolverError, "Loop.Solve", "external solver call failed", err)
		}

		switch outcome.Status {
		case StatusSAT:
			mu := 0
			for _, v := range enc.V {
				if outcome.Assignment.Value(Pos(v)) {
					mu++
				}
			}
			l.re.FreezeMaximum(enc.V, mu)
			l.solution = outcome.Assignment
			l.sat = true
			if i < n {
				l.mu = append(l.mu, mu)
				l.objectiveVector = append(l.objectiveVector, mu)
			}
			l.logf(slog.LevelInfo, 1, "iteration complete", "i", i, "mu", mu)

		case StatusUnsat:
			if i == 0 {
				l.state = StateDoneUnsat
				l.sat = false
				return core.Sentinel(core.KindUnsat)
			}
			l.state = StateDoneAborted
			return core.New(core.KindInternalInvariant, "Loop.Solve", "unsat at iteration > 0: previous model must remain feasible")

		case StatusTimeout:
			l.state = StateDoneAborted
			return core.Sentinel(core.KindTimeout)

		case StatusSolverError:
			return core.New(core.KindSolverError, "Loop.Solve", "external solver reported an error")

		default:
			return core.New(core.KindInternalInvariant, "Loop.Solve", "unrecognized solve status")
		}
	}

	l.state = StateDoneSAT
	return nil
}
