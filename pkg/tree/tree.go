/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tree.go
Description: Builds feature-assignment trees out of per-phoneme minimal descriptions.
Each minimal description is projected onto the whole inventory (a partial tree);
combinations of distinct partial trees are scored by how many phonemes end up with
exactly one of their own minimal descriptions. All maximal combinations are kept.

The number of combinations is 2^n for n distinct partial trees. Options.MaxPartialTrees
turns that limit into an explicit error.
*/

package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/featuremin/pkg/features"
)

// Tree maps a phoneme to its signed features under one combination
type Tree map[string]features.Description

// Key is a canonical string for structural comparison
func (t Tree) Key(order []string) string {
	var b strings.Builder
	for _, p := range order {
		d, ok := t[p]
		if !ok {
			continue
		}
		b.WriteString(p)
		b.WriteByte('=')
		b.WriteString(d.Key())
		b.WriteByte(';')
	}
	return b.String()
}

// Options bounds the tree search
type Options struct {
	MaxPartialTrees int // 0 means unlimited
}

// Result holds every best tree found
type Result struct {
	BestCount    int    `json:"best_count" yaml:"best_count"`
	Trees        []Tree `json:"trees" yaml:"trees"`
	PartialTrees int    `json:"partial_trees" yaml:"partial_trees"`
	Combinations int    `json:"combinations" yaml:"combinations"`
}

// builder holds the state of one Build call
type builder struct {
	table    *features.Table
	phonemes []string         // Phonemes with minimal descriptions, row order
	rows     []int            // Table row of each entry in phonemes
	minimal  [][]features.Set // Minimal descriptions as signed-feature id sets, per entry in phonemes
	partials [][]features.Set // Distinct partial trees, one id set per table row
	index    map[string]int   // Feature name to header position
	width    int              // Number of signed-feature ids
	seen     map[string]bool  // Keys of the best trees kept
	result   *Result
}

// Build searches for the combinations of partial trees that give the largest number
// of phonemes one of their minimal descriptions. minimal maps each phoneme to its
// minimal descriptions; phonemes with none are ignored. An input without any
// description yields an empty result.
func Build(t *features.Table, minimal map[string][]features.Description, opts Options) (*Result, error) {
	names := t.FeatureNames()
	b := &builder{
		table:  t,
		index:  make(map[string]int, len(names)),
		width:  2 * len(names),
		seen:   make(map[string]bool),
		result: &Result{Trees: []Tree{}},
	}
	for i, name := range names {
		b.index[name] = i
	}

	for p := range minimal {
		if _, ok := t.Index(p); !ok {
			return nil, fmt.Errorf("%w: %s", features.ErrUnknownPhoneme, p)
		}
	}

	// Phonemes in table order keep the search deterministic
	partialKeys := make(map[string]bool)
	for row, p := range t.Phonemes() {
		descs := minimal[p]
		if len(descs) == 0 {
			continue
		}

		sets := make([]features.Set, 0, len(descs))
		for _, d := range descs {
			ids, err := b.idSet(d)
			if err != nil {
				return nil, err
			}
			sets = append(sets, ids)

			partial, err := b.project(d)
			if err != nil {
				return nil, err
			}
			key := partialKey(partial)
			if !partialKeys[key] {
				partialKeys[key] = true
				b.partials = append(b.partials, partial)
			}
		}

		b.phonemes = append(b.phonemes, p)
		b.rows = append(b.rows, row)
		b.minimal = append(b.minimal, sets)
	}

	b.result.PartialTrees = len(b.partials)
	if len(b.partials) == 0 {
		return b.result, nil
	}
	if opts.MaxPartialTrees > 0 && len(b.partials) > opts.MaxPartialTrees {
		return nil, fmt.Errorf("%w: %d distinct partial trees, limit %d", ErrTooManyPartialTrees, len(b.partials), opts.MaxPartialTrees)
	}

	empty := make([]features.Set, t.NumPhonemes())
	for i := range empty {
		empty[i] = features.NewSet(b.width)
	}
	b.combine(0, empty, false)

	return b.result, nil
}

// signedID numbers a constraint: two ids per feature, + first
func (b *builder) signedID(sf features.SignedFeature) (int, error) {
	i, ok := b.index[sf.Feature]
	if !ok {
		return 0, fmt.Errorf("%w: %s", features.ErrUnknownFeature, sf.Feature)
	}
	if sf.Sign == features.Plus {
		return 2 * i, nil
	}
	return 2*i + 1, nil
}

// fromID inverts signedID
func (b *builder) fromID(id int) features.SignedFeature {
	sign := features.Plus
	if id%2 == 1 {
		sign = features.Minus
	}
	return features.SignedFeature{Feature: b.table.Features()[id/2].Name, Sign: sign}
}

// idSet converts a description to its set of signed-feature ids
func (b *builder) idSet(d features.Description) (features.Set, error) {
	s := features.NewSet(b.width)
	for _, sf := range d {
		id, err := b.signedID(sf)
		if err != nil {
			return features.Set{}, err
		}
		s.Add(id)
	}
	return s, nil
}

// project lists, for every phoneme, the constraints over d's features that the
// phoneme actually carries
func (b *builder) project(d features.Description) ([]features.Set, error) {
	partial := make([]features.Set, b.table.NumPhonemes())
	for i := range partial {
		partial[i] = features.NewSet(b.width)
	}

	for _, name := range d.Names() {
		f, ok := b.table.Feature(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", features.ErrUnknownFeature, name)
		}
		plusID, _ := b.signedID(features.SignedFeature{Feature: name, Sign: features.Plus})
		for _, row := range f.Plus.Indices() {
			partial[row].Add(plusID)
		}
		for _, row := range f.Minus.Indices() {
			partial[row].Add(plusID + 1)
		}
	}
	return partial, nil
}

// combine extends the current union with every partial tree from idx on.
// Index order visits each combination once.
func (b *builder) combine(idx int, current []features.Set, nonEmpty bool) {
	if nonEmpty {
		b.result.Combinations++
		b.score(current)
	}

	for i := idx; i < len(b.partials); i++ {
		next := make([]features.Set, len(current))
		for row := range current {
			next[row] = current[row].Or(b.partials[i][row])
		}
		b.combine(i+1, next, true)
	}
}

// score counts the phonemes whose combined constraints equal one of their
// minimal descriptions, and keeps the combination if it ties or beats the best
func (b *builder) score(current []features.Set) {
	count := 0
	matched := make([]bool, len(b.phonemes))
	for i, row := range b.rows {
		for _, want := range b.minimal[i] {
			if current[row].Equal(want) {
				matched[i] = true
				count++
				break
			}
		}
	}

	if count < b.result.BestCount {
		return
	}

	best := make(Tree, len(b.phonemes))
	for i, p := range b.phonemes {
		d := features.Description{}
		if matched[i] {
			for _, id := range current[b.rows[i]].Indices() {
				d = append(d, b.fromID(id))
			}
		}
		best[p] = d
	}

	if count > b.result.BestCount {
		b.result.BestCount = count
		b.result.Trees = []Tree{}
		b.seen = make(map[string]bool)
	}

	key := best.Key(b.phonemes)
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.result.Trees = append(b.result.Trees, best)
}

// partialKey is a canonical string of a partial tree
func partialKey(partial []features.Set) string {
	var sb strings.Builder
	for row, s := range partial {
		sb.WriteString(strconv.Itoa(row))
		sb.WriteByte(':')
		for _, id := range s.Indices() {
			sb.WriteString(strconv.Itoa(id))
			sb.WriteByte(',')
		}
		sb.WriteByte(';')
	}
	return sb.String()
}
