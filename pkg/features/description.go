/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: description.go
Description: Signed features and descriptions. A description is an ordered list of
(feature, sign) constraints whose denotation is the intersection of the constituent
phoneme sets. Canonical string forms are produced only at the system boundary.
*/

package features

import (
	"fmt"
	"sort"
	"strings"
)

// Sign marks whether a constraint selects the + or the - phonemes of a feature
type Sign byte

const (
	Plus  Sign = '+'
	Minus Sign = '-'
)

// String returns "+" or "-"
func (s Sign) String() string {
	return string(s)
}

// Valid reports whether s is Plus or Minus
func (s Sign) Valid() bool {
	return s == Plus || s == Minus
}

// SignedFeature is a single constraint such as +voiced.
// It encodes as its string form in JSON and YAML.
type SignedFeature struct {
	Feature string
	Sign    Sign
}

// String renders the constraint as sign followed by feature name
func (sf SignedFeature) String() string {
	return sf.Sign.String() + sf.Feature
}

// MarshalText encodes the constraint in its string form
func (sf SignedFeature) MarshalText() ([]byte, error) {
	return []byte(sf.String()), nil
}

// UnmarshalText decodes "+feature" or "-feature"
func (sf *SignedFeature) UnmarshalText(text []byte) error {
	parsed, err := ParseSignedFeature(string(text))
	if err != nil {
		return err
	}
	*sf = parsed
	return nil
}

// ParseSignedFeature parses "+voiced" or "-nasal"
func ParseSignedFeature(s string) (SignedFeature, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return SignedFeature{}, fmt.Errorf("%w: %q", ErrInvalidConstraint, s)
	}
	sign := Sign(s[0])
	if !sign.Valid() {
		return SignedFeature{}, fmt.Errorf("%w: %q", ErrInvalidConstraint, s)
	}
	return SignedFeature{Feature: s[1:], Sign: sign}, nil
}

// Description is an ordered list of constraints with no repeated feature name.
// The empty description denotes the whole universe.
type Description []SignedFeature

// Len returns the number of constraints
func (d Description) Len() int {
	return len(d)
}

// String renders the canonical "[+a,-b]" form, preserving order
func (d Description) String() string {
	parts := make([]string, len(d))
	for i, sf := range d {
		parts[i] = sf.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Key returns an order independent key: two descriptions with the same
// constraints in any order share a key.
func (d Description) Key() string {
	parts := make([]string, len(d))
	for i, sf := range d {
		parts[i] = sf.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Names returns the feature names in order
func (d Description) Names() []string {
	names := make([]string, len(d))
	for i, sf := range d {
		names[i] = sf.Feature
	}
	return names
}

// Has reports whether the description constrains feature name
func (d Description) Has(name string) bool {
	for _, sf := range d {
		if sf.Feature == name {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share storage with d
func (d Description) Clone() Description {
	out := make(Description, len(d))
	copy(out, d)
	return out
}

// ParseDescription reads the "[+a,-b]" form back into a description.
// Brackets are optional and "[]" is the empty description.
func ParseDescription(s string) (Description, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return Description{}, nil
	}

	fields := strings.Split(s, ",")
	d := make(Description, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		sf, err := ParseSignedFeature(field)
		if err != nil {
			return nil, err
		}
		if seen[sf.Feature] {
			return nil, fmt.Errorf("%w: %s", ErrRepeatedFeature, sf.Feature)
		}
		seen[sf.Feature] = true
		d = append(d, sf)
	}
	return d, nil
}
