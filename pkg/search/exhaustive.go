/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: exhaustive.go
Description: Branch-and-bound enumeration of the descriptions of a target set. Subsets
of the candidate pool are explored in increasing index order, so every subset is seen
once and its constraints come out in pool order. The length bound tightens as shorter
solutions are found, and every description of the final minimal length is kept.
*/

package search

import (
	"sort"

	"github.com/kleascm/featuremin/pkg/features"
)

// Solutions groups the descriptions found by length
type Solutions map[int][]features.Description

// MinLength returns the shortest solution length, or false when there are none
func (s Solutions) MinLength() (int, bool) {
	min, found := 0, false
	for l := range s {
		if !found || l < min {
			min, found = l, true
		}
	}
	return min, found
}

// Minimal returns the descriptions of minimal length in discovery order
func (s Solutions) Minimal() []features.Description {
	l, ok := s.MinLength()
	if !ok {
		return nil
	}
	return s[l]
}

// Lengths returns the solution lengths in ascending order
func (s Solutions) Lengths() []int {
	lengths := make([]int, 0, len(s))
	for l := range s {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

// All returns every description by ascending length, discovery order within a length
func (s Solutions) All() []features.Description {
	var out []features.Description
	for _, l := range s.Lengths() {
		out = append(out, s[l]...)
	}
	return out
}

// Count returns the number of descriptions stored
func (s Solutions) Count() int {
	n := 0
	for _, ds := range s {
		n += len(ds)
	}
	return n
}

// searchContext is the mutable state of one exhaustive search.
// It belongs to a single call of Exhaustive.
type searchContext struct {
	table     *features.Table
	pool      features.Description
	sets      []features.Set // Phonemes selected by each pool constraint
	target    features.Set
	bestLen   int
	solutions Solutions
	nodes     int
}

// Exhaustive finds every description of target drawn from pool, keeping all
// descriptions of each length found up to the tightening bound. The minimal
// descriptions are Solutions.Minimal().
//
// The bound starts at len(pool), which is always reachable when pool is the
// candidate pool of a natural class. Call IsNaturalClass first: for any other
// target nothing will be found.
func Exhaustive(t *features.Table, pool features.Description, target features.Set) Solutions {
	solutions, _ := exhaustive(t, pool, target)
	return solutions
}

// exhaustive also returns the number of search nodes visited
func exhaustive(t *features.Table, pool features.Description, target features.Set) (Solutions, int) {
	ctx := &searchContext{
		table:     t,
		pool:      pool,
		sets:      make([]features.Set, len(pool)),
		target:    target,
		bestLen:   len(pool),
		solutions: make(Solutions),
	}
	for i, sf := range pool {
		ctx.sets[i] = t.Signed(sf)
	}

	ctx.visit(make([]int, 0, len(pool)), t.Universe(), 0)
	return ctx.solutions, ctx.nodes
}

// visit handles one node: chosen holds pool indices in increasing order and
// current is their denotation
func (c *searchContext) visit(chosen []int, current features.Set, start int) {
	c.nodes++

	// Bound the search
	if len(chosen) > c.bestLen {
		return
	}

	if current.Equal(c.target) {
		c.store(chosen)
		if len(chosen) < c.bestLen {
			c.bestLen = len(chosen)
		}
	}

	for i := start; i < len(c.pool); i++ {
		c.visit(append(chosen, i), current.And(c.sets[i]), i+1)
	}
}

// store records the description made of the chosen pool constraints
func (c *searchContext) store(chosen []int) {
	d := make(features.Description, len(chosen))
	for i, pi := range chosen {
		d[i] = c.pool[pi]
	}
	c.solutions[len(d)] = append(c.solutions[len(d)], d)
}
