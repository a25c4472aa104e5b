/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: set.go
Description: Fixed-width bitset over the phoneme indices of a feature table. Every
set operation used by the searches (intersection, difference, subset and equality
tests) runs word by word over the bitmap.
*/

package features

import "math/bits"

// Set is a set of phonemes, stored as a bitmap indexed by the phoneme's row in its Table.
// Sets from different tables must not be mixed.
type Set struct {
	words []uint64
	size  int
}

// NewSet creates an empty set able to hold size phonemes
func NewSet(size int) Set {
	return Set{
		words: make([]uint64, (size+63)/64),
		size:  size,
	}
}

// FullSet creates a set containing every index below size
func FullSet(size int) Set {
	s := NewSet(size)
	for i := 0; i < size; i++ {
		s.Add(i)
	}
	return s
}

// Size returns the width of the set (the number of phonemes in its table)
func (s Set) Size() int {
	return s.size
}

// Add inserts index i
func (s Set) Add(i int) {
	s.words[i/64] |= 1 << uint(i%64)
}

// Remove deletes index i
func (s Set) Remove(i int) {
	s.words[i/64] &^= 1 << uint(i%64)
}

// Has reports whether index i is in the set
func (s Set) Has(i int) bool {
	if i < 0 || i >= s.size {
		return false
	}
	return s.words[i/64]&(1<<uint(i%64)) != 0
}

// Clone returns an independent copy
func (s Set) Clone() Set {
	c := Set{words: make([]uint64, len(s.words)), size: s.size}
	copy(c.words, s.words)
	return c
}

// And returns the intersection of s and o
func (s Set) And(o Set) Set {
	r := Set{words: make([]uint64, len(s.words)), size: s.size}
	for i := range s.words {
		r.words[i] = s.words[i] & o.words[i]
	}
	return r
}

// AndNot returns the elements of s that are not in o
func (s Set) AndNot(o Set) Set {
	r := Set{words: make([]uint64, len(s.words)), size: s.size}
	for i := range s.words {
		r.words[i] = s.words[i] &^ o.words[i]
	}
	return r
}

// Or returns the union of s and o
func (s Set) Or(o Set) Set {
	r := Set{words: make([]uint64, len(s.words)), size: s.size}
	for i := range s.words {
		r.words[i] = s.words[i] | o.words[i]
	}
	return r
}

// IntersectWith narrows s in place to its intersection with o
func (s Set) IntersectWith(o Set) {
	for i := range s.words {
		s.words[i] &= o.words[i]
	}
}

// UnionWith grows s in place with the elements of o
func (s Set) UnionWith(o Set) {
	for i := range s.words {
		s.words[i] |= o.words[i]
	}
}

// Equal reports set equality
func (s Set) Equal(o Set) bool {
	if s.size != o.size {
		return false
	}
	for i := range s.words {
		if s.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// IsSubset reports whether every element of s is also in o
func (s Set) IsSubset(o Set) bool {
	for i := range s.words {
		if s.words[i]&^o.words[i] != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of elements
func (s Set) Count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether the set has no elements
func (s Set) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Indices returns the members in ascending order
func (s Set) Indices() []int {
	out := make([]int, 0, s.Count())
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*64+b)
			w &^= 1 << uint(b)
		}
	}
	return out
}
