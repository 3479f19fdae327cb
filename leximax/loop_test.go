package leximax

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/xDarkicex/leximax/core"
)

type LoopSuite struct {
	suite.Suite
}

func TestLoopSuite(t *testing.T) {
	suite.Run(t, new(LoopSuite))
}

func (s *LoopSuite) newEncoder() *Encoder {
	return NewEncoder(WithExternalSolver(EmbeddedSolver{}))
}

// Scenario: zero objectives is plain SAT — Solve must succeed and
// report an empty objective vector.
func (s *LoopSuite) TestZeroObjectivesIsPlainSAT() {
	e := s.newEncoder()
	s.Require().NoError(e.SetProblem([]Clause{{Pos(1), Pos(2)}}, nil))

	err := e.Solve(context.Background())
	s.Require().NoError(err)
	s.True(e.GetSat())
	s.Empty(e.GetObjectiveVector())
}

// Scenario: one objective reduces to a single-coordinate MaxSAT call.
func (s *LoopSuite) TestSingleObjectiveMinimizesCost() {
	e := s.newEncoder()
	hard := []Clause{{Pos(1), Pos(2)}, {Pos(3)}}
	objectives := []RawObjective{{Terms: []Clause{{Pos(1)}, {Pos(2)}}}}
	s.Require().NoError(e.SetProblem(hard, objectives))

	s.Require().NoError(e.Solve(context.Background()))
	s.True(e.GetSat())
	s.Require().Len(e.GetObjectiveVector(), 1)
	// x1 ∨ x2 is forced, so at least one of the two objective terms is
	// true; the minimum cost is exactly 1, not 2.
	s.Equal(1, e.GetObjectiveVector()[0])
}

// Scenario: two objectives run to completion, one iteration and one
// frozen maximum per objective.
func (s *LoopSuite) TestTwoObjectivesCompleteOneIterationEach() {
	e := s.newEncoder()
	hard := []Clause{{Pos(1)}}
	objectives := []RawObjective{
		{Terms: []Clause{{Pos(1)}}},
		{Terms: []Clause{{Pos(2)}, {Pos(3)}}},
	}
	s.Require().NoError(e.SetProblem(hard, objectives))

	s.Require().NoError(e.Solve(context.Background()))
	s.True(e.GetSat())
	vec := e.GetObjectiveVector()
	s.Require().Len(vec, 2)
	s.GreaterOrEqual(vec[0], 0)
	s.LessOrEqual(vec[0], 1)
	s.GreaterOrEqual(vec[1], 0)
	s.LessOrEqual(vec[1], 2)
}

// Scenario: an objective with zero terms contributes an empty sorted
// vector and must not break the iteration.
func (s *LoopSuite) TestZeroTermObjectiveIsHarmless() {
	e := s.newEncoder()
	objectives := []RawObjective{{Terms: nil}, {Terms: []Clause{{Pos(1)}}}}
	s.Require().NoError(e.SetProblem([]Clause{{Pos(1), Neg(1)}}, objectives))

	s.Require().NoError(e.Solve(context.Background()))
	s.True(e.GetSat())
	s.Require().Len(e.GetObjectiveVector(), 2)
}

// Scenario: a hard-clause set that is already unsatisfiable must be
// reported as unsat at iteration 0, not as an internal invariant failure.
func (s *LoopSuite) TestUnsatHardClausesAtIterationZero() {
	e := s.newEncoder()
	hard := []Clause{{Pos(1)}, {Neg(1)}}
	objectives := []RawObjective{{Terms: []Clause{{Pos(1)}}}}
	s.Require().NoError(e.SetProblem(hard, objectives))

	err := e.Solve(context.Background())
	s.Require().Error(err)
	s.True(errors.Is(err, core.Sentinel(core.KindUnsat)))
	s.False(e.GetSat())
}

// terminatingSolver answers the first Solve call normally (so the loop
// advances past iteration 0), then calls Terminate on the owning
// Encoder, simulating an external signal arriving mid-run.
type terminatingSolver struct {
	enc   *Encoder
	calls int
}

func (t *terminatingSolver) Solve(ctx context.Context, req ExternalSolveRequest) (*ExternalSolveOutcome, error) {
	t.calls++
	outcome, err := EmbeddedSolver{}.Solve(ctx, req)
	if t.calls == 1 {
		t.enc.Terminate()
	}
	return outcome, err
}

// Scenario: Terminate() invoked between iterations must abort the run
// before the remaining objectives are solved.
func (s *LoopSuite) TestTerminateAbortsBetweenIterations() {
	e := NewEncoder()
	solver := &terminatingSolver{enc: e}
	e.SetExternalSolver(solver)

	objectives := []RawObjective{
		{Terms: []Clause{{Pos(1)}}},
		{Terms: []Clause{{Pos(2)}}},
	}
	s.Require().NoError(e.SetProblem(nil, objectives))

	err := e.Solve(context.Background())
	s.Require().Error(err)
	s.True(errors.Is(err, core.Sentinel(core.KindAborted)))
	s.Equal(1, solver.calls)
}

// Solve must refuse to run without an installed problem or a configured
// external solver.
func (s *LoopSuite) TestSolveRequiresProblemAndSolver() {
	e := NewEncoder()
	err := e.Solve(context.Background())
	s.Require().Error(err)

	e2 := s.newEncoder()
	s.Require().NoError(e2.SetProblem(nil, nil))
	s.Require().NoError(e2.Solve(context.Background()))
}

// SimplifyLast must still reach a satisfying assignment, with the same
// number of reported objective costs as the full relaxation encoding.
func (s *LoopSuite) TestSimplifyLastStillSolves() {
	hard := []Clause{{Pos(1)}}
	objectives := []RawObjective{
		{Terms: []Clause{{Pos(1)}}},
		{Terms: []Clause{{Pos(2)}, {Pos(3)}}},
	}

	full := s.newEncoder()
	s.Require().NoError(full.SetProblem(hard, objectives))
	s.Require().NoError(full.Solve(context.Background()))

	simplified := s.newEncoder()
	simplified.SetSimplifyLast(true)
	s.Require().NoError(simplified.SetProblem(hard, objectives))
	s.Require().NoError(simplified.Solve(context.Background()))

	s.True(simplified.GetSat())
	s.Len(simplified.GetObjectiveVector(), len(full.GetObjectiveVector()))
}
