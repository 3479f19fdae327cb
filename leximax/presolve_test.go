package leximax

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PresolveSuite struct {
	suite.Suite
}

func TestPresolveSuite(t *testing.T) {
	suite.Run(t, new(PresolveSuite))
}

func (s *PresolveSuite) TestDisabledAlwaysFeasible() {
	p := NewUpperBoundPresolver(PresolveDisabled)
	result, err := p.Run(nil, nil)
	s.Require().NoError(err)
	s.True(result.Feasible)
	s.Equal(-1, result.Bound)
}

func (s *PresolveSuite) TestSATFindsModel() {
	p := NewUpperBoundPresolver(PresolveSAT)
	hard := []Clause{{Pos(1), Pos(2)}, {Neg(1), Neg(2)}}
	result, err := p.Run(hard, nil)
	s.Require().NoError(err)
	s.True(result.Feasible)
	s.True(clauseSatisfied(hard[0], fromSATAssignment(result.Assignment)))
}

func (s *PresolveSuite) TestSATDetectsInfeasibility() {
	p := NewUpperBoundPresolver(PresolveSAT)
	hard := []Clause{{Pos(1)}, {Neg(1)}}
	result, err := p.Run(hard, nil)
	s.Require().NoError(err)
	s.False(result.Feasible)
}

func (s *PresolveSuite) TestMSSGreedilySatisfiesObjectiveTerms() {
	// Nothing hard forces x1/x2 either way, so the MSS extension should
	// be able to flip both objective terms true without breaking the
	// (trivially satisfiable) hard clause set.
	hard := []Clause{{Pos(1), Pos(2)}}
	objectives := []Objective{{Terms: []Lit{Pos(1)}}, {Terms: []Lit{Pos(2)}}}

	p := NewUpperBoundPresolver(PresolveMSS)
	result, err := p.Run(hard, objectives)
	s.Require().NoError(err)
	s.Require().True(result.Feasible)
	s.True(result.Assignment[1])
	s.True(result.Assignment[2])
}

func (s *PresolveSuite) TestMSSLeavesConflictingTermUnflipped() {
	// x1 and x2 are mutually exclusive; only one objective term can end
	// up true, and the hard clause set must still be satisfied.
	hard := []Clause{{Neg(1), Neg(2)}}
	objectives := []Objective{{Terms: []Lit{Pos(1)}}, {Terms: []Lit{Pos(2)}}}

	p := NewUpperBoundPresolver(PresolveMSS)
	result, err := p.Run(hard, objectives)
	s.Require().NoError(err)
	s.Require().True(result.Feasible)
	s.False(result.Assignment[1] && result.Assignment[2])
}

func (s *PresolveSuite) TestMaxSATBoundsUnsatisfiedTerms() {
	// x1 can't be both true and false: exactly one of the two
	// objective terms below is true, so one soft clause is violated.
	hard := []Clause(nil)
	objectives := []Objective{{Terms: []Lit{Pos(1)}}, {Terms: []Lit{Neg(1)}}}

	p := NewUpperBoundPresolver(PresolveMaxSAT)
	result, err := p.Run(hard, objectives)
	s.Require().NoError(err)
	s.True(result.Feasible)
	s.Equal(1, result.Bound)
}

func (s *PresolveSuite) TestMaxSATWithHardClausesRespectsThemOverSoftTerms() {
	// A non-empty hard clause set exercises the weights slice that must
	// stay in lockstep with the hard clauses folded into the CNF before
	// the objective terms are appended.
	hard := []Clause{{Pos(1), Pos(2)}}
	objectives := []Objective{{Terms: []Lit{Pos(1)}}, {Terms: []Lit{Pos(2)}}}

	p := NewUpperBoundPresolver(PresolveMaxSAT)
	result, err := p.Run(hard, objectives)
	s.Require().NoError(err)
	s.Require().True(result.Feasible)
	s.True(clauseSatisfied(hard[0], fromSATAssignment(result.Assignment)))
	// x1=false and x2=false can't both hold while the hard clause does,
	// so at least one of the two objective terms ends up true.
	s.Equal(1, result.Bound)
}

func (s *PresolveSuite) TestMaxSATWithUnsatisfiableHardIsInfeasible() {
	hard := []Clause{{Pos(1)}, {Neg(1)}}
	objectives := []Objective{{Terms: []Lit{Pos(1)}}}

	p := NewUpperBoundPresolver(PresolveMaxSAT)
	result, err := p.Run(hard, objectives)
	s.Require().NoError(err)
	s.False(result.Feasible)
}
