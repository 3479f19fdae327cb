package leximax

import (
	"context"
	"sync"
)

// signalHandler is the SignalHandler of spec.md §2/§5: a single
// terminate() entry point that cancels the context handed to the
// currently-running ExternalSolver call. The external solver's own
// SIGTERM-then-SIGKILL grace period lives in leximax/extsolver.Driver,
// which watches this same context for cancellation (spec.md §5's
// "Cancellation" paragraph).
type signalHandler struct {
	mu     sync.Mutex
	abort  bool
	cancel context.CancelFunc
}

func (s *signalHandler) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abort = false
	s.cancel = nil
}

// arm derives a cancelable context for one Solve call and records its
// cancel function so a concurrent terminate() can reach it.
func (s *signalHandler) arm(ctx context.Context) (context.Context, context.CancelFunc) {
	child, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	return child, cancel
}

// requestAbort marks the loop for abort and cancels any in-flight
// external solver call. Safe to call from another goroutine (e.g. an
// OS signal handler forwarding SIGINT/SIGTERM to the encoder).
func (s *signalHandler) requestAbort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abort = true
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *signalHandler) aborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abort
}
