// Package core holds the error taxonomy shared by every package in the
// module: the sat engine, the leximax encoder, and the external solver
// driver all report failures through the same Error type so a caller can
// switch on Kind regardless of which layer produced the failure.
package core

import "fmt"

// Kind classifies an Error. The set is closed and mirrors the error
// taxonomy an encoder of this shape needs: config-time rejections,
// malformed input, subprocess lifecycle failures, and the handful of
// terminal states the solving loop can end in.
type Kind int

const (
	// KindInvalidConfig: a setter received a value outside its enumerated
	// domain. Reported synchronously; state is left unchanged.
	KindInvalidConfig Kind = iota
	// KindInvalidInput: malformed clauses (zero literals, literal 0,
	// negative variable index). Fatal for the call; state resets.
	KindInvalidInput
	// KindSolverSpawnFailed: the external solver process could not be
	// launched. Partial encoding is retained.
	KindSolverSpawnFailed
	// KindSolverError: the external solver exited abnormally or produced
	// unparseable output.
	KindSolverError
	// KindUnsat: the external solver proved UNSAT. Only expected at
	// iteration 0; elsewhere it is an internal invariant failure.
	KindUnsat
	// KindTimeout: the configured deadline elapsed.
	KindTimeout
	// KindAborted: terminate() was invoked externally.
	KindAborted
	// KindInternalInvariant: an assertion about the encoding failed.
	KindInternalInvariant
)

// String names a Kind for logging and error messages.
func (k Kind) String() string {
	switch k {
	case KindInvalidConfig:
		return "invalid-config"
	case KindInvalidInput:
		return "invalid-input"
	case KindSolverSpawnFailed:
		return "solver-spawn-failed"
	case KindSolverError:
		return "solver-error"
	case KindUnsat:
		return "unsat"
	case KindTimeout:
		return "timeout"
	case KindAborted:
		return "aborted"
	case KindInternalInvariant:
		return "internal-invariant"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every public operation in this
// module. Op names the failing operation (e.g. "Encoder.SetFormalism" or
// "Driver.Solve") so a log line is self-describing without a stack trace.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, core.Sentinel(kind)) style checks by comparing
// Kind only, ignoring Op/Message/Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates an Error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap creates an Error of the given kind around a lower-level cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: cause}
}

// Sentinel returns a comparable value usable with errors.Is to test only
// the Kind of an error.
func Sentinel(kind Kind) error { return &Error{Kind: kind} }
