/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: checker.go
Description: The acceptance test shared by every search: does a description denote
exactly the target set? Also builds the candidate pool, the only features that can
appear in any valid description of a target.
*/

package search

import (
	"github.com/kleascm/featuremin/pkg/features"
)

// Denotation intersects the sets of every constraint in d, starting from the universe
func Denotation(t *features.Table, d features.Description) features.Set {
	current := t.Universe()
	for _, sf := range d {
		current.IntersectWith(t.Signed(sf))
	}
	return current
}

// Denotes reports whether d picks out exactly target (set equality, not subset)
func Denotes(t *features.Table, d features.Description, target features.Set) bool {
	current := t.Universe()
	for _, sf := range d {
		current.IntersectWith(t.Signed(sf))
		// Intersection only shrinks, so a lost target phoneme can never come back
		if !target.IsSubset(current) {
			return false
		}
	}
	return current.Equal(target)
}

// CandidatePool returns, in header order, one constraint per feature whose +
// (preferred) or - set contains the whole target
func CandidatePool(t *features.Table, target features.Set) features.Description {
	pool := features.Description{}
	for _, f := range t.Features() {
		if target.IsSubset(f.Plus) {
			pool = append(pool, features.SignedFeature{Feature: f.Name, Sign: features.Plus})
		} else if target.IsSubset(f.Minus) {
			pool = append(pool, features.SignedFeature{Feature: f.Name, Sign: features.Minus})
		}
	}
	return pool
}

// IsNaturalClass reports whether the target is denoted by its full candidate pool,
// which holds exactly when some description denotes it
func IsNaturalClass(t *features.Table, target features.Set) bool {
	return Denotes(t, CandidatePool(t, target), target)
}
