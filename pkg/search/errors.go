/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Sentinel errors of the search package.
*/

package search

import "errors"

var (
	// ErrNoGreedySolution indicates the greedy search used up the pool without excluding every non-target phoneme.
	ErrNoGreedySolution = errors.New("search: no greedy solution")
	// ErrEmptyTarget indicates a query with no phonemes.
	ErrEmptyTarget = errors.New("search: target set is empty")
	// ErrInvariantViolation indicates a natural class for which the exhaustive search found nothing.
	ErrInvariantViolation = errors.New("search: natural class produced no solution")
)
