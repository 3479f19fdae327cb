package sat

import (
	"math"
	"sort"
)

// VSIDSHeuristic implements VSIDS with an integrated Learning Rate
// Based (LRB) score, polarity caching and activity anti-aging.
type VSIDSHeuristic struct {
	activity  map[int]float64
	increment float64
	decay     float64

	lrbScores map[int]float64
	lrbDecay  float64

	polarityScores map[int]float64
	phaseCache     map[int]bool

	participated  map[int]int64
	conflictCount int64

	vsidsWeight float64
	lrbWeight   float64
}

// NewVSIDSHeuristic returns a VSIDS heuristic with LRB and anti-aging enabled.
func NewVSIDSHeuristic() *VSIDSHeuristic {
	return &VSIDSHeuristic{
		activity:  make(map[int]float64),
		increment: 1.0,
		decay:     0.95,

		lrbScores:      make(map[int]float64),
		lrbDecay:       0.8,
		polarityScores: make(map[int]float64),
		phaseCache:     make(map[int]bool),
		participated:   make(map[int]int64),

		vsidsWeight: 0.7,
		lrbWeight:   0.3,
	}
}

func (v *VSIDSHeuristic) Name() string { return "VSIDS-LRB" }

// ChooseVariable picks the unassigned variable with the highest
// combined VSIDS+LRB score.
func (v *VSIDSHeuristic) ChooseVariable(unassigned []int, assignment Assignment) int {
	if len(unassigned) == 0 {
		return 0
	}

	for _, variable := range unassigned {
		if _, exists := v.activity[variable]; !exists {
			v.activity[variable] = 0.0
			v.lrbScores[variable] = 0.0
			v.polarityScores[variable] = 0.0
		}
	}

	bestVar := unassigned[0]
	bestScore := -1.0
	for _, variable := range unassigned {
		score := v.computeModernScore(variable)
		if score > bestScore {
			bestScore = score
			bestVar = variable
		}
	}
	return bestVar
}

func (v *VSIDSHeuristic) computeModernScore(variable int) float64 {
	vsidsScore := v.activity[variable]
	lrbScore := v.lrbScores[variable]

	agingFactor := 1.0
	if participated, exists := v.participated[variable]; exists {
		age := v.conflictCount - participated
		if age > 100 {
			agingFactor = math.Exp(-float64(age-100) / 1000.0)
		}
	}
	return (v.vsidsWeight*vsidsScore + v.lrbWeight*lrbScore) * agingFactor
}

// Update bumps activity/LRB/polarity for every variable in the
// conflict clause and applies VSIDS decay.
func (v *VSIDSHeuristic) Update(conflictClause *Clause) {
	v.conflictCount++

	for _, lit := range conflictClause.Literals {
		v.activity[lit.Var] += v.increment
		v.lrbScores[lit.Var] = v.lrbDecay*v.lrbScores[lit.Var] + (1.0 - v.lrbDecay)

		if lit.Negated {
			v.polarityScores[lit.Var] -= 0.1
		} else {
			v.polarityScores[lit.Var] += 0.1
		}
		v.phaseCache[lit.Var] = lit.Negated
		v.participated[lit.Var] = v.conflictCount
	}

	v.decayVariableActivities()

	if v.increment > 1e100 {
		v.rescaleActivities()
	}
}

// decayVariableActivities applies (possibly adaptive) VSIDS decay.
func (v *VSIDSHeuristic) decayVariableActivities() {
	if v.conflictCount%1000 == 0 && v.conflictCount > 0 {
		v.adaptDecayRate()
	}
	v.increment /= v.decay
}

func (v *VSIDSHeuristic) adaptDecayRate() {
	avg := v.computeAverageActivity()
	switch {
	case avg < 0.1:
		v.decay *= 0.95
		if v.decay < 0.8 {
			v.decay = 0.8
		}
	case avg > 10.0:
		v.decay *= 1.05
		if v.decay > 0.99 {
			v.decay = 0.99
		}
	}
}

func (v *VSIDSHeuristic) computeAverageActivity() float64 {
	if len(v.activity) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, a := range v.activity {
		sum += a
	}
	return sum / float64(len(v.activity))
}

// GetPreferredPolarity returns the cached or scored preferred phase for
// a variable, used to seed decisions.
func (v *VSIDSHeuristic) GetPreferredPolarity(variable int) bool {
	if polarity, exists := v.phaseCache[variable]; exists {
		return polarity
	}
	if score, exists := v.polarityScores[variable]; exists {
		return score > 0.0
	}
	return true
}

func (v *VSIDSHeuristic) rescaleActivities() {
	for variable := range v.activity {
		v.activity[variable] *= 1e-100
	}
	for variable := range v.lrbScores {
		v.lrbScores[variable] *= 1e-100
	}
	v.increment *= 1e-100
}

func (v *VSIDSHeuristic) Reset() {
	v.activity = make(map[int]float64)
	v.lrbScores = make(map[int]float64)
	v.polarityScores = make(map[int]float64)
	v.phaseCache = make(map[int]bool)
	v.participated = make(map[int]int64)
	v.increment = 1.0
	v.decay = 0.95
	v.conflictCount = 0
}

// LubyRestartStrategy is a hybrid Luby sequence with a Glucose-style
// adaptive fallback based on the moving average of conflicts per restart.
type LubyRestartStrategy struct {
	sequence []int
	index    int
	baseUnit int

	glucoseWindow []int64
	windowSize    int
	windowIndex   int
	fastMA        float64
	slowMA        float64
	threshold     float64

	restartCount  int64
	lastConflicts int64
}

func NewLubyRestartStrategy() *LubyRestartStrategy {
	return &LubyRestartStrategy{
		sequence: []int{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8},
		baseUnit: 100,

		glucoseWindow: make([]int64, 50),
		windowSize:    50,
		threshold:     1.4,
	}
}

func (l *LubyRestartStrategy) Name() string { return "Luby-Adaptive" }

func (l *LubyRestartStrategy) ShouldRestart(stats SolverStatistics) bool {
	currentConflicts := stats.Conflicts
	recentConflicts := currentConflicts - l.lastConflicts

	if recentConflicts > 0 {
		l.glucoseWindow[l.windowIndex] = recentConflicts
		l.windowIndex = (l.windowIndex + 1) % l.windowSize

		alpha := 0.1
		l.fastMA = alpha*float64(recentConflicts) + (1.0-alpha)*l.fastMA
		l.slowMA = 0.01*float64(recentConflicts) + 0.99*l.slowMA
	}

	l.lastConflicts = currentConflicts

	if l.restartCount > 10 && l.fastMA > l.threshold*l.slowMA {
		return true
	}

	if l.index < len(l.sequence) {
		threshold := int64(l.sequence[l.index] * l.baseUnit)
		return currentConflicts >= threshold
	}

	return false
}

func (l *LubyRestartStrategy) OnRestart() {
	l.restartCount++
	l.index++
	if l.index >= len(l.sequence) {
		l.extendSequence()
	}

	if l.restartCount%10 == 0 {
		avgConflicts := l.computeAverageConflicts()
		if avgConflicts > 1000 {
			l.threshold *= 1.1
		} else {
			l.threshold *= 0.95
		}
	}
}

func (l *LubyRestartStrategy) computeAverageConflicts() float64 {
	sum := int64(0)
	count := 0
	for _, conflicts := range l.glucoseWindow {
		if conflicts > 0 {
			sum += conflicts
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return float64(sum) / float64(count)
}

func (l *LubyRestartStrategy) Reset() {
	l.index = 0
	l.restartCount = 0
	l.lastConflicts = 0
	l.fastMA = 0.0
	l.slowMA = 0.0
	for i := range l.glucoseWindow {
		l.glucoseWindow[i] = 0
	}
	l.windowIndex = 0
}

func (l *LubyRestartStrategy) extendSequence() {
	current := len(l.sequence)
	for i := 0; i < current; i++ {
		l.sequence = append(l.sequence, l.sequence[i])
	}
	l.sequence = append(l.sequence, int(math.Pow(2, float64(len(l.sequence)))))
}

// ActivityBasedDeletion is an LBD- and tier-aware clause deletion policy:
// core (glue) clauses are never removed, mid-tier clauses are removed
// carefully by activity, and local clauses are pruned aggressively.
type ActivityBasedDeletion struct {
	activityThreshold float64
	lbdThreshold      int
	sizeThreshold     int
	deletionCount     int64
	keepRatio         float64

	coreProtection bool
	midThreshold   float64
	localThreshold float64
}

func NewActivityBasedDeletion() *ActivityBasedDeletion {
	return &ActivityBasedDeletion{
		activityThreshold: 0.1,
		lbdThreshold:      4,
		sizeThreshold:     30,
		keepRatio:         0.5,
		coreProtection:    true,
		midThreshold:      0.15,
		localThreshold:    0.10,
	}
}

func (a *ActivityBasedDeletion) Name() string { return "Activity-LBD" }

func (a *ActivityBasedDeletion) ShouldDelete(clause *Clause, stats SolverStatistics) bool {
	return a.ShouldDeleteFromTier(clause, clause.Tier, stats)
}

// ShouldDeleteFromTier applies tier-specific deletion strategies.
func (a *ActivityBasedDeletion) ShouldDeleteFromTier(clause *Clause, tier int, stats SolverStatistics) bool {
	if !clause.Learned || len(clause.Literals) <= 1 {
		return false
	}
	if a.coreProtection && (clause.Glue || clause.LBD <= 2 || tier == 0) {
		return false
	}

	switch tier {
	case 1:
		return clause.Activity < a.midThreshold
	case 2:
		if clause.Activity < a.localThreshold || len(clause.Literals) > a.sizeThreshold {
			return true
		}
		return clause.Activity < a.activityThreshold
	default:
		return clause.Activity < a.activityThreshold
	}
}

// GetDeletionCandidates selects clauses to remove, preferring local
// (aggressive) over mid (careful) tiers, and never touching core.
func (a *ActivityBasedDeletion) GetDeletionCandidates(db *ClauseDatabase, stats SolverStatistics) []*Clause {
	need := db.Size() - db.maxSize
	if need <= 0 {
		return nil
	}

	var out []*Clause
	pick := func(tierClauses []*Clause, tier int) {
		for _, cl := range tierClauses {
			if need == 0 {
				return
			}
			if a.ShouldDeleteFromTier(cl, tier, stats) {
				out = append(out, cl)
				need--
			}
		}
	}

	_, mid, local, _ := db.GetTierSlices()
	pick(local, 2)
	if need > 0 {
		pick(mid, 1)
	}
	return out
}

func (a *ActivityBasedDeletion) Update(clauses []*Clause) {
	if len(clauses) == 0 {
		return
	}

	var lbdSum int
	var clauseCount int
	lbdCounts := make(map[int]int)
	activities := make([]float64, 0, len(clauses))

	for _, clause := range clauses {
		if clause.Learned {
			lbdCounts[clause.LBD]++
			lbdSum += clause.LBD
			clauseCount++
			activities = append(activities, clause.Activity)
		}
	}

	if len(activities) > 0 {
		sort.Float64s(activities)
		median := activities[len(activities)/2]
		a.activityThreshold = median * 0.3

		avgLBD := float64(lbdSum) / float64(clauseCount)
		if avgLBD < 4.0 {
			a.lbdThreshold = 3
		} else {
			a.lbdThreshold = 4
		}
	}

	a.deletionCount++
	if a.deletionCount%100 == 0 {
		glueSum := lbdCounts[1] + lbdCounts[2]
		glueRatio := float64(glueSum) / float64(max(1, clauseCount))
		if glueRatio > 0.3 {
			if a.keepRatio < 0.4 {
				a.keepRatio = 0.4
			} else {
				a.keepRatio *= 1.01
			}
		} else {
			if a.keepRatio < 0.3 {
				a.keepRatio = 0.3
			} else {
				a.keepRatio *= 0.99
			}
		}
	}
}

func (a *ActivityBasedDeletion) Reset() {
	a.activityThreshold = 0.1
	a.deletionCount = 0
	a.keepRatio = 0.5
	a.lbdThreshold = 4
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
