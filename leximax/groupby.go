package leximax

import "sort"

// GroupByWeight recovers a leximax objective vector from a flat list of
// weighted soft clauses, given the caller-registered weight denomination
// for each objective. The denominations are NOT derived from the clause
// set: they are declared ahead of time by whatever assembled the combined
// WCNF, one per objective, exactly as the external solver family's
// compatibility layer registers a weight per function before splitting.
//
// Each clause's weight is peeled against the denominations in ASCENDING
// order, currency-change style: at the smallest remaining denomination
// w, floor(remaining/w) copies of the clause's literal are assigned to
// that denomination's objective and the remainder carries to the next,
// larger denomination. A clause whose weight equals one denomination
// lands whole in that objective only when no smaller denomination is
// registered; otherwise a smaller one peels first and leaves less than
// the clause's own denomination.
// Any remainder left after the largest denomination has been tried is
// dropped, matching the original: it peels weights in the natural
// (ascending) iteration order of a std::set, not the separately built
// and descending-sorted copy that only exists to map a weight value
// back to its bucket index.
//
// Objectives are returned ordered by descending denomination, matching
// the convention that objective 0 dominates objective 1 in a leximax
// run — that ordering comes from the index-lookup table, not from the
// peel order. weights need not be supplied in sorted order.
//
// Grounded on old_packup/ExternalWrapper.cc's split(): it iterates the
// std::set `weights` (ascending by construction) directly, peeling
// smallest-denomination-first into clause_split[get_weight_index(w)],
// where get_weight_index looks the weight up in the descending
// `sorted_weights` copy built once in init(). An earlier reading of
// split() in isolation assumed it walked sorted_weights itself
// (descending); re-deriving from register_weight's std::set storage
// shows the iteration is ascending and sorted_weights exists solely
// for the index mapping, not to drive the peel.
func GroupByWeight(clauses []WeightedClause, weights []int) []Objective {
	if len(weights) == 0 {
		return nil
	}
	ascending := append([]int(nil), weights...)
	sort.Ints(ascending)

	descending := append([]int(nil), weights...)
	sort.Sort(sort.Reverse(sort.IntSlice(descending)))
	indexOf := make(map[int]int, len(descending))
	for i, w := range descending {
		indexOf[w] = i
	}

	terms := make([][]Lit, len(descending))
	for _, wc := range clauses {
		if len(wc.Clause) != 1 {
			continue // only single-literal soft clauses carry a term
		}
		lit := wc.Clause[0]
		remaining := wc.Weight
		for _, w := range ascending {
			if w <= 0 {
				continue
			}
			count := remaining / w
			remaining -= count * w
			if count == 0 {
				continue
			}
			idx := indexOf[w]
			for k := 0; k < count; k++ {
				terms[idx] = append(terms[idx], lit)
			}
		}
	}

	objectives := make([]Objective, len(descending))
	for i := range descending {
		objectives[i] = Objective{Terms: terms[i]}
	}
	return objectives
}
