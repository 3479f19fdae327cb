package leximax

// ClauseStore owns every hard and soft clause produced during a solve.
// It is append-only: clauses are never removed except by Clear, which
// tears down the whole store at teardown (spec.md §4.2).
type ClauseStore struct {
	hard  []Clause
	soft  []WeightedClause
	alloc *IDAllocator
}

// NewClauseStore creates an empty store backed by alloc for id tracking.
func NewClauseStore(alloc *IDAllocator) *ClauseStore {
	return &ClauseStore{alloc: alloc}
}

// AddHard appends a hard clause, observing any variable ids it introduces.
func (s *ClauseStore) AddHard(c Clause) {
	s.touch(c)
	s.hard = append(s.hard, c)
}

// AddSoft appends a weighted soft clause.
func (s *ClauseStore) AddSoft(c Clause, weight int) {
	s.touch(c)
	s.soft = append(s.soft, WeightedClause{Clause: c, Weight: weight})
}

func (s *ClauseStore) touch(c Clause) {
	for _, lit := range c {
		s.alloc.Observe(lit.Var())
	}
}

// Hard returns the hard clauses in insertion order.
func (s *ClauseStore) Hard() []Clause { return s.hard }

// Soft returns the soft clauses in insertion order.
func (s *ClauseStore) Soft() []WeightedClause { return s.soft }

// Len returns the total number of clauses currently stored.
func (s *ClauseStore) Len() int { return len(s.hard) + len(s.soft) }

// Clear discards every clause. Only used at teardown (clear()/Encoder.Clear).
func (s *ClauseStore) Clear() {
	s.hard = nil
	s.soft = nil
}
