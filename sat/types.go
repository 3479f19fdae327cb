package sat

import (
	"fmt"
	"strings"
)

// Literal represents a boolean variable or its negation. Var is a
// strictly positive integer identifier; Negated selects the polarity.
type Literal struct {
	Var     int
	Negated bool
}

// String returns string representation of literal
func (l Literal) String() string {
	if l.Negated {
		return fmt.Sprintf("-%d", l.Var)
	}
	return fmt.Sprintf("%d", l.Var)
}

// Negate returns the negation of this literal
func (l Literal) Negate() Literal {
	return Literal{Var: l.Var, Negated: !l.Negated}
}

// Equals checks if two literals are identical
func (l Literal) Equals(other Literal) bool {
	return l.Var == other.Var && l.Negated == other.Negated
}

// Clause represents a disjunction of literals (OR).
// Empty clause represents false (unsatisfiable).
// Unit clause has exactly one literal.
type Clause struct {
	Literals []Literal
	ID       int     // Unique identifier for tracking
	Learned  bool    // True if this is a learned clause
	Activity float64 // For clause deletion heuristics
	LBD      int     // Literal Block Distance (number of decision levels)
	Glue     bool    // True if LBD <= 2 (very important clauses)
	Tier     int     // Clause tier classification (0=core, 1=mid, 2=local)
}

// NewClause creates a new clause with given literals and initializes LBD fields
func NewClause(literals ...Literal) *Clause {
	return &Clause{
		Literals: literals,
		Tier:     2, // Default to local tier, updated once LBD is known
	}
}

// SetLBD sets the LBD and updates derived fields (Glue, Tier)
func (c *Clause) SetLBD(lbd int) {
	c.LBD = lbd
	c.Glue = lbd <= 2

	switch {
	case lbd <= 2:
		c.Tier = 0 // Core clauses - never delete
	case lbd <= 6:
		c.Tier = 1 // Mid-tier clauses - delete carefully
	default:
		c.Tier = 2 // Local clauses - delete aggressively
	}
}

// String returns string representation of clause with LBD info for learned clauses
func (c *Clause) String() string {
	if len(c.Literals) == 0 {
		return "⊥"
	}

	parts := make([]string, len(c.Literals))
	for i, lit := range c.Literals {
		parts[i] = lit.String()
	}

	result := "(" + strings.Join(parts, " ∨ ") + ")"
	if c.Learned && c.LBD > 0 {
		result += fmt.Sprintf(" [LBD:%d,T:%d]", c.LBD, c.Tier)
	}
	return result
}

// IsUnit returns true if clause has exactly one literal
func (c *Clause) IsUnit() bool { return len(c.Literals) == 1 }

// IsEmpty returns true if clause has no literals (contradiction)
func (c *Clause) IsEmpty() bool { return len(c.Literals) == 0 }

// Contains checks if clause contains the given literal
func (c *Clause) Contains(lit Literal) bool {
	for _, l := range c.Literals {
		if l.Equals(lit) {
			return true
		}
	}
	return false
}

// CNF represents a formula in Conjunctive Normal Form: a conjunction
// (AND) of clauses over a set of positive-integer variables.
type CNF struct {
	Clauses   []*Clause
	Variables []int
	nextID    int
	seenVar   map[int]bool
}

// NewCNF creates a new CNF formula
func NewCNF() *CNF {
	return &CNF{
		Clauses: make([]*Clause, 0),
		nextID:  1,
		seenVar: make(map[int]bool),
	}
}

// AddClause adds a clause to the CNF formula, tracking any new variables.
func (cnf *CNF) AddClause(clause *Clause) {
	clause.ID = cnf.nextID
	cnf.nextID++
	cnf.Clauses = append(cnf.Clauses, clause)

	for _, lit := range clause.Literals {
		if !cnf.seenVar[lit.Var] {
			cnf.seenVar[lit.Var] = true
			cnf.Variables = append(cnf.Variables, lit.Var)
		}
	}
}

// String returns string representation of CNF
func (cnf *CNF) String() string {
	if len(cnf.Clauses) == 0 {
		return "⊤"
	}
	parts := make([]string, len(cnf.Clauses))
	for i, clause := range cnf.Clauses {
		parts[i] = clause.String()
	}
	return strings.Join(parts, " ∧ ")
}

// Assignment represents a partial or complete truth assignment, keyed
// by variable id.
type Assignment map[int]bool

// Clone creates a deep copy of the assignment
func (a Assignment) Clone() Assignment {
	clone := make(Assignment, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

// IsAssigned checks if variable has been assigned
func (a Assignment) IsAssigned(variable int) bool {
	_, exists := a[variable]
	return exists
}

// Satisfies checks if assignment satisfies the given clause. A clause
// that still has an unassigned literal counts as not-yet-falsified, so
// on a partial assignment true means "not falsified", not "satisfied".
func (a Assignment) Satisfies(clause *Clause) bool {
	if clause == nil || len(clause.Literals) == 0 {
		return false
	}
	for _, lit := range clause.Literals {
		if value, assigned := a[lit.Var]; assigned {
			if value != lit.Negated {
				return true
			}
		} else {
			return true
		}
	}
	return false
}

// SolverResult represents the result of SAT solving
type SolverResult struct {
	Satisfiable bool
	Assignment  Assignment
	Statistics  SolverStatistics
	Error       error
}

// SolverStatistics tracks solver performance metrics.
type SolverStatistics struct {
	Decisions      int64
	Propagations   int64
	Conflicts      int64
	Restarts       int64
	LearnedClauses int64
	DeletedClauses int64
	TimeElapsed    int64 // nanoseconds

	GlueClauses int64
	AvgLBD      float64
}

// String returns formatted statistics.
func (s SolverStatistics) String() string {
	return fmt.Sprintf(
		"Decisions: %d, Propagations: %d, Conflicts: %d, Restarts: %d, Learned: %d, Glue: %d, AvgLBD: %.2f",
		s.Decisions, s.Propagations, s.Conflicts, s.Restarts, s.LearnedClauses, s.GlueClauses, s.AvgLBD,
	)
}

// ClauseDatabase manages learned clauses in a tiered structure so
// deletion can protect high-quality (low-LBD) clauses.
type ClauseDatabase struct {
	coreClauses   []*Clause // LBD <= 2, never delete
	midClauses    []*Clause // LBD 3-6, careful deletion
	localClauses  []*Clause // LBD > 6, aggressive deletion
	recentClauses []*Clause // newly learned, protected for a period

	recentProtectionAge int64
	maxSize             int
	totalClauses        int
	bornAt              map[int]int64
}

// NewClauseDatabase creates an empty tiered database
func NewClauseDatabase(maxSize int, recentProtectionAge int64) *ClauseDatabase {
	return &ClauseDatabase{
		coreClauses:         make([]*Clause, 0, 64),
		midClauses:          make([]*Clause, 0, 128),
		localClauses:        make([]*Clause, 0, 256),
		recentClauses:       make([]*Clause, 0, 256),
		recentProtectionAge: recentProtectionAge,
		maxSize:             maxSize,
		bornAt:              make(map[int]int64),
	}
}

// AddClause inserts a learned clause into the recent tier with protection
func (db *ClauseDatabase) AddClause(clause *Clause, conflicts int64) {
	db.recentClauses = append(db.recentClauses, clause)
	db.bornAt[clause.ID] = conflicts
	db.totalClauses++
}

// PromoteFromRecent moves aged recent clauses into their permanent tier.
func (db *ClauseDatabase) PromoteFromRecent(conflicts int64) {
	if db.recentProtectionAge <= 0 || len(db.recentClauses) == 0 {
		return
	}
	dst := db.recentClauses[:0]
	for _, c := range db.recentClauses {
		born, ok := db.bornAt[c.ID]
		if ok && conflicts-born >= db.recentProtectionAge {
			db.placeToTier(c)
			delete(db.bornAt, c.ID)
		} else {
			dst = append(dst, c)
		}
	}
	db.recentClauses = dst
}

// Size returns the total number of clauses across all tiers
func (db *ClauseDatabase) Size() int { return db.totalClauses }

// GetTierSlices returns the slices for each tier (read-only view)
func (db *ClauseDatabase) GetTierSlices() (core, mid, local, recent []*Clause) {
	return db.coreClauses, db.midClauses, db.localClauses, db.recentClauses
}

// RemoveClause removes a clause from whichever tier it belongs to
func (db *ClauseDatabase) RemoveClause(clause *Clause) bool {
	if _, ok := db.bornAt[clause.ID]; ok {
		if removeFromSlice(&db.recentClauses, clause) {
			delete(db.bornAt, clause.ID)
			db.totalClauses--
			return true
		}
		return false
	}
	var removed bool
	switch clause.Tier {
	case 0:
		removed = removeFromSlice(&db.coreClauses, clause)
	case 1:
		removed = removeFromSlice(&db.midClauses, clause)
	default:
		removed = removeFromSlice(&db.localClauses, clause)
	}
	if removed {
		db.totalClauses--
	}
	return removed
}

func (db *ClauseDatabase) placeToTier(c *Clause) {
	switch c.Tier {
	case 0:
		db.coreClauses = append(db.coreClauses, c)
	case 1:
		db.midClauses = append(db.midClauses, c)
	default:
		db.localClauses = append(db.localClauses, c)
	}
}

func removeFromSlice(sl *[]*Clause, target *Clause) bool {
	a := *sl
	for i, c := range a {
		if c != nil && c.ID == target.ID {
			a[i] = a[len(a)-1]
			*sl = a[:len(a)-1]
			return true
		}
	}
	return false
}

func (db *ClauseDatabase) Clear() {
	db.coreClauses = db.coreClauses[:0]
	db.midClauses = db.midClauses[:0]
	db.localClauses = db.localClauses[:0]
	db.recentClauses = db.recentClauses[:0]
	for k := range db.bornAt {
		delete(db.bornAt, k)
	}
	db.totalClauses = 0
}

func (db *ClauseDatabase) String() string {
	return fmt.Sprintf("ClauseDB[core:%d mid:%d local:%d recent:%d total:%d/%d]",
		len(db.coreClauses), len(db.midClauses), len(db.localClauses),
		len(db.recentClauses), db.totalClauses, db.maxSize)
}
