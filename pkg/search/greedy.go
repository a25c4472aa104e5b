/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: greedy.go
Description: Single-pass greedy description search. Each round picks the constraint
that leaves the fewest non-target phonemes, ties going to the earliest constraint in the
pool. Never backtracks, so its description can be longer than the minimal one.
*/

package search

import (
	"github.com/kleascm/featuremin/pkg/features"
)

// Greedy builds one description of target from pool. It returns
// ErrNoGreedySolution when every constraint has been used and non-target
// phonemes remain.
func Greedy(t *features.Table, pool features.Description, target features.Set) (features.Description, error) {
	current := t.Universe()
	result := features.Description{}

	// Already exact: only the universe as target gets here
	if current.Equal(target) {
		return result, nil
	}

	used := make([]bool, len(pool))
	for round := 0; round < len(pool); round++ {
		best := -1
		var bestSet features.Set
		bestExtra := 0

		for i, sf := range pool {
			if used[i] {
				continue
			}
			narrowed := current.And(t.Signed(sf))
			extra := narrowed.AndNot(target).Count()
			// Strict comparison keeps the first constraint on ties
			if best < 0 || extra < bestExtra {
				best, bestSet, bestExtra = i, narrowed, extra
			}
		}

		used[best] = true
		result = append(result, pool[best])
		current = bestSet

		if bestExtra == 0 {
			if !current.Equal(target) {
				// Target phonemes were lost; no later constraint can restore them
				return nil, ErrNoGreedySolution
			}
			return result, nil
		}
	}

	return nil, ErrNoGreedySolution
}
