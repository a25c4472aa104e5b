/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: describe.go
Description: The per-target pipeline: build the candidate pool, test whether the target
is a natural class, then run the exhaustive and greedy searches. A target that is not a
natural class is a normal negative result, not an error.
*/

package search

import (
	"fmt"
	"time"

	"github.com/kleascm/featuremin/pkg/features"
)

// Options selects which searches Describe runs. The zero value runs both.
type Options struct {
	SkipExhaustive bool
	SkipGreedy     bool
}

// Result is everything known about one target set
type Result struct {
	Target       []string               `json:"target" yaml:"target"`
	Pool         features.Description   `json:"pool" yaml:"pool"`
	NaturalClass bool                   `json:"natural_class" yaml:"natural_class"`
	Solutions    Solutions              `json:"solutions,omitempty" yaml:"solutions,omitempty"`
	Minimal      []features.Description `json:"minimal,omitempty" yaml:"minimal,omitempty"`
	Greedy       features.Description   `json:"greedy,omitempty" yaml:"greedy,omitempty"`
	GreedyFailed bool                   `json:"greedy_failed,omitempty" yaml:"greedy_failed,omitempty"`
	Nodes        int                    `json:"nodes" yaml:"nodes"`
	Duration     time.Duration          `json:"duration" yaml:"duration"`

	GreedyErr error `json:"-" yaml:"-"`
}

// MinLength returns the minimal description length, or -1 when none was found
func (r *Result) MinLength() int {
	if l, ok := r.Solutions.MinLength(); ok {
		return l
	}
	return -1
}

// DescribePhonemes is Describe for a target given by phoneme names
func DescribePhonemes(t *features.Table, phonemes []string, opts Options) (*Result, error) {
	target, err := t.SetOf(phonemes...)
	if err != nil {
		return nil, err
	}
	return Describe(t, target, opts)
}

// Describe runs the searches selected by opts for one target
func Describe(t *features.Table, target features.Set, opts Options) (*Result, error) {
	if target.Empty() {
		return nil, ErrEmptyTarget
	}

	start := time.Now()
	pool := CandidatePool(t, target)
	result := &Result{
		Target:       t.Names(target),
		Pool:         pool,
		NaturalClass: Denotes(t, pool, target),
	}

	if !result.NaturalClass {
		result.Duration = time.Since(start)
		return result, nil
	}

	if !opts.SkipExhaustive {
		result.Solutions, result.Nodes = exhaustive(t, pool, target)
		if len(result.Solutions) == 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, result.Target)
		}
		result.Minimal = result.Solutions.Minimal()
	}

	if !opts.SkipGreedy {
		result.Greedy, result.GreedyErr = Greedy(t, pool, target)
		result.GreedyFailed = result.GreedyErr != nil
	}

	result.Duration = time.Since(start)
	return result, nil
}
