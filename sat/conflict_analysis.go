package sat

import "sort"

// FirstUIPAnalyzer implements First Unique Implication Point conflict
// analysis with LBD (Literal Block Distance) computation, the standard
// learning scheme in modern CDCL solvers.
type FirstUIPAnalyzer struct {
	seen       map[int]bool
	levelsSeen map[int]bool

	resolutions     int64
	unitClauses     int64
	glueClauseCount int64
}

func NewFirstUIPAnalyzer() *FirstUIPAnalyzer {
	return &FirstUIPAnalyzer{
		seen:       make(map[int]bool),
		levelsSeen: make(map[int]bool),
	}
}

func (f *FirstUIPAnalyzer) Name() string { return "FirstUIP" }

// Analyze performs First-UIP conflict analysis and returns the learned
// clause along with the level to backtrack to.
func (f *FirstUIPAnalyzer) Analyze(conflictClause *Clause, trail DecisionTrail) (*Clause, int) {
	if conflictClause == nil {
		return nil, 0
	}

	currentLevel := trail.GetCurrentLevel()
	if currentLevel == 0 {
		return nil, 0
	}

	f.reset()

	learntClause := make([]Literal, 0, len(conflictClause.Literals))
	for _, lit := range conflictClause.Literals {
		learntClause = append(learntClause, lit)
		f.seen[lit.Var] = true
		if level := trail.GetLevel(lit.Var); level >= 0 {
			f.levelsSeen[level] = true
		}
	}

	currentLevelVars := f.countCurrentLevelVars(learntClause, trail, currentLevel)

	for currentLevelVars > 1 {
		resolveVar, found := f.findMostRecentVariable(learntClause, trail, currentLevel)
		if !found {
			break
		}

		reason := trail.GetReason(resolveVar)
		if reason == nil {
			// Decision variable at current level: First-UIP reached.
			break
		}

		f.resolutions++
		learntClause = f.resolve(learntClause, reason, resolveVar, trail)

		currentLevelVars = f.countCurrentLevelVars(learntClause, trail, currentLevel)

		if f.resolutions > 100000 {
			break
		}
	}

	finalClause := f.buildLearnedClauseWithLBD(learntClause, trail)
	backtrackLevel := f.computeBacktrackLevel(finalClause.Literals, trail, currentLevel)

	if len(finalClause.Literals) == 1 {
		f.unitClauses++
	}
	if finalClause.Glue {
		f.glueClauseCount++
	}

	return finalClause, backtrackLevel
}

// resolve performs resolution between the learnt clause and a reason
// clause over the given variable.
func (f *FirstUIPAnalyzer) resolve(learntClause []Literal, reasonClause *Clause, resolveVar int, trail DecisionTrail) []Literal {
	newClause := make([]Literal, 0, len(learntClause)+len(reasonClause.Literals))

	for _, lit := range learntClause {
		if lit.Var != resolveVar {
			newClause = append(newClause, lit)
		}
	}

	for _, lit := range reasonClause.Literals {
		if lit.Var != resolveVar && !f.containsVariable(newClause, lit.Var) {
			newClause = append(newClause, lit)
			f.seen[lit.Var] = true
			if level := trail.GetLevel(lit.Var); level >= 0 {
				f.levelsSeen[level] = true
			}
		}
	}

	return newClause
}

// findMostRecentVariable finds the most recently assigned variable at
// the current level that still appears in the clause.
func (f *FirstUIPAnalyzer) findMostRecentVariable(clause []Literal, trail DecisionTrail, level int) (int, bool) {
	levelTrail := f.getTrailEntriesAtLevel(trail, level)
	maxPosition := -1
	var mostRecent int
	found := false

	for _, lit := range clause {
		if trail.GetLevel(lit.Var) != level {
			continue
		}
		pos := f.findPositionInTrail(lit.Var, levelTrail)
		if pos > maxPosition {
			maxPosition = pos
			mostRecent = lit.Var
			found = true
		}
	}

	return mostRecent, found
}

func (f *FirstUIPAnalyzer) findPositionInTrail(variable int, levelTrail []TrailEntry) int {
	for i := len(levelTrail) - 1; i >= 0; i-- {
		if levelTrail[i].Variable == variable {
			return i
		}
	}
	return -1
}

func (f *FirstUIPAnalyzer) getTrailEntriesAtLevel(trail DecisionTrail, level int) []TrailEntry {
	if impl, ok := trail.(*DecisionTrailImpl); ok {
		return impl.GetTrailAtLevel(level)
	}

	assignment := trail.GetAssignment()
	var entries []TrailEntry
	for variable := range assignment {
		if trail.GetLevel(variable) == level {
			entries = append(entries, TrailEntry{
				Variable: variable,
				Value:    assignment[variable],
				Level:    level,
				Reason:   trail.GetReason(variable),
			})
		}
	}
	return entries
}

func (f *FirstUIPAnalyzer) countCurrentLevelVars(clause []Literal, trail DecisionTrail, level int) int {
	count := 0
	for _, lit := range clause {
		if trail.GetLevel(lit.Var) == level {
			count++
		}
	}
	return count
}

// buildLearnedClauseWithLBD deduplicates literals and computes LBD.
func (f *FirstUIPAnalyzer) buildLearnedClauseWithLBD(literals []Literal, trail DecisionTrail) *Clause {
	seen := make(map[Literal]bool, len(literals))
	unique := make([]Literal, 0, len(literals))
	levelSet := make(map[int]bool)

	for _, lit := range literals {
		if seen[lit] {
			continue
		}
		seen[lit] = true
		unique = append(unique, lit)
		if level := trail.GetLevel(lit.Var); level >= 0 {
			levelSet[level] = true
		}
	}

	sort.Slice(unique, func(i, j int) bool {
		return trail.GetLevel(unique[i].Var) > trail.GetLevel(unique[j].Var)
	})

	clause := NewClause(unique...)
	clause.Learned = true
	clause.Activity = 1.0
	clause.SetLBD(len(levelSet))

	return clause
}

// computeBacktrackLevel returns the second-highest decision level among
// the learned clause's literals (0 for unit clauses).
func (f *FirstUIPAnalyzer) computeBacktrackLevel(literals []Literal, trail DecisionTrail, currentLevel int) int {
	if len(literals) <= 1 {
		return 0
	}

	seen := make(map[int]bool)
	var levels []int
	for _, lit := range literals {
		level := trail.GetLevel(lit.Var)
		if level >= 0 && level < currentLevel && !seen[level] {
			seen[level] = true
			levels = append(levels, level)
		}
	}

	if len(levels) == 0 {
		return 0
	}

	sort.Ints(levels)
	return levels[len(levels)-1]
}

func (f *FirstUIPAnalyzer) reset() {
	f.seen = make(map[int]bool)
	f.levelsSeen = make(map[int]bool)
}

func (f *FirstUIPAnalyzer) containsVariable(literals []Literal, variable int) bool {
	for _, lit := range literals {
		if lit.Var == variable {
			return true
		}
	}
	return false
}

func (f *FirstUIPAnalyzer) Reset() {
	f.reset()
	f.resolutions = 0
	f.unitClauses = 0
	f.glueClauseCount = 0
}
