/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: The feature table. Maps every feature name to the phonemes marked + and
the phonemes marked - for it, over a fixed phoneme universe. A table is immutable once
built and is shared read-only by every search running against it.
*/

package features

import (
	"fmt"
)

// Feature is one binary distinction. Plus and Minus are disjoint; a phoneme in
// neither is unmarked for the feature.
type Feature struct {
	Name  string
	Plus  Set
	Minus Set
}

// Table is the phoneme/feature matrix of one inventory
type Table struct {
	phonemes []string       // Phonemes in row order
	index    map[string]int // Phoneme to row index
	features []Feature      // Features in header order
	byName   map[string]int // Feature name to header index
}

// NewTable creates an empty table over the given phonemes and feature names.
// Use Mark to fill it in.
func NewTable(phonemes []string, featureNames []string) (*Table, error) {
	t := &Table{
		phonemes: make([]string, 0, len(phonemes)),
		index:    make(map[string]int, len(phonemes)),
		features: make([]Feature, 0, len(featureNames)),
		byName:   make(map[string]int, len(featureNames)),
	}

	for _, p := range phonemes {
		if _, exists := t.index[p]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePhoneme, p)
		}
		t.index[p] = len(t.phonemes)
		t.phonemes = append(t.phonemes, p)
	}

	for _, name := range featureNames {
		if _, exists := t.byName[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFeature, name)
		}
		t.byName[name] = len(t.features)
		t.features = append(t.features, Feature{
			Name:  name,
			Plus:  NewSet(len(phonemes)),
			Minus: NewSet(len(phonemes)),
		})
	}

	return t, nil
}

// Mark records the sign of phoneme for feature. A later mark replaces an earlier one.
func (t *Table) Mark(phoneme, feature string, sign Sign) error {
	pi, ok := t.index[phoneme]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPhoneme, phoneme)
	}
	fi, ok := t.byName[feature]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	}

	f := t.features[fi]
	switch sign {
	case Plus:
		f.Minus.Remove(pi)
		f.Plus.Add(pi)
	case Minus:
		f.Plus.Remove(pi)
		f.Minus.Add(pi)
	default:
		return fmt.Errorf("%w: sign %q", ErrInvalidConstraint, string(sign))
	}
	return nil
}

// Phonemes returns the phoneme universe in row order
func (t *Table) Phonemes() []string {
	out := make([]string, len(t.phonemes))
	copy(out, t.phonemes)
	return out
}

// NumPhonemes returns the size of the universe
func (t *Table) NumPhonemes() int {
	return len(t.phonemes)
}

// FeatureNames returns the feature names in header order
func (t *Table) FeatureNames() []string {
	out := make([]string, len(t.features))
	for i, f := range t.features {
		out[i] = f.Name
	}
	return out
}

// Features returns the features in header order. The sets are shared with the table
// and must not be modified.
func (t *Table) Features() []Feature {
	return t.features
}

// Feature looks a feature up by name
func (t *Table) Feature(name string) (Feature, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Feature{}, false
	}
	return t.features[i], true
}

// Universe returns a fresh set holding every phoneme
func (t *Table) Universe() Set {
	return FullSet(len(t.phonemes))
}

// Index returns the row index of a phoneme
func (t *Table) Index(phoneme string) (int, bool) {
	i, ok := t.index[phoneme]
	return i, ok
}

// SetOf builds the set of the given phonemes
func (t *Table) SetOf(phonemes ...string) (Set, error) {
	s := NewSet(len(t.phonemes))
	for _, p := range phonemes {
		i, ok := t.index[p]
		if !ok {
			return Set{}, fmt.Errorf("%w: %s", ErrUnknownPhoneme, p)
		}
		s.Add(i)
	}
	return s, nil
}

// Names returns the phonemes of s in row order
func (t *Table) Names(s Set) []string {
	idx := s.Indices()
	out := make([]string, len(idx))
	for i, pi := range idx {
		out[i] = t.phonemes[pi]
	}
	return out
}

// Signed returns the phonemes selected by a constraint. The set is shared with
// the table and must not be modified. Unknown features select nothing.
func (t *Table) Signed(sf SignedFeature) Set {
	i, ok := t.byName[sf.Feature]
	if !ok {
		return NewSet(len(t.phonemes))
	}
	if sf.Sign == Plus {
		return t.features[i].Plus
	}
	return t.features[i].Minus
}

// Restrict builds a table whose universe is exactly the given inventory.
// Plus and minus sets are narrowed to the inventory. Inventory phonemes the table
// does not know are kept as fully unmarked phonemes and returned as missing.
func (t *Table) Restrict(inventory []string) (*Table, []string, error) {
	seen := make(map[string]bool, len(inventory))
	phonemes := make([]string, 0, len(inventory))
	var missing []string
	for _, p := range inventory {
		if seen[p] {
			continue
		}
		seen[p] = true
		phonemes = append(phonemes, p)
		if _, ok := t.index[p]; !ok {
			missing = append(missing, p)
		}
	}

	r, err := NewTable(phonemes, t.FeatureNames())
	if err != nil {
		return nil, nil, err
	}

	for ri, p := range r.phonemes {
		pi, ok := t.index[p]
		if !ok {
			continue
		}
		for fi, f := range t.features {
			if f.Plus.Has(pi) {
				r.features[fi].Plus.Add(ri)
			} else if f.Minus.Has(pi) {
				r.features[fi].Minus.Add(ri)
			}
		}
	}

	return r, missing, nil
}
