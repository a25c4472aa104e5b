/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: set_test.go
Description: Tests for the phoneme bitset, including sets wider than one machine word.
*/

package features_test

import (
	"testing"

	"github.com/kleascm/featuremin/pkg/features"
	"github.com/stretchr/testify/assert"
)

func setOf(size int, idx ...int) features.Set {
	s := features.NewSet(size)
	for _, i := range idx {
		s.Add(i)
	}
	return s
}

// TestSetBasics tests add, remove, membership and counting
func TestSetBasics(t *testing.T) {
	s := features.NewSet(10)
	assert.True(t, s.Empty())
	assert.Equal(t, 10, s.Size())

	s.Add(3)
	s.Add(7)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(4))
	assert.False(t, s.Has(-1))
	assert.False(t, s.Has(10))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []int{3, 7}, s.Indices())

	s.Remove(3)
	assert.False(t, s.Has(3))
	assert.Equal(t, 1, s.Count())
}

// TestSetOperations tests the pure set algebra
func TestSetOperations(t *testing.T) {
	a := setOf(8, 0, 1, 2)
	b := setOf(8, 1, 2, 3)

	assert.Equal(t, []int{1, 2}, a.And(b).Indices())
	assert.Equal(t, []int{0}, a.AndNot(b).Indices())
	assert.Equal(t, []int{0, 1, 2, 3}, a.Or(b).Indices())

	// Operands are untouched
	assert.Equal(t, []int{0, 1, 2}, a.Indices())
	assert.Equal(t, []int{1, 2, 3}, b.Indices())

	assert.True(t, setOf(8, 1, 2).IsSubset(a))
	assert.False(t, b.IsSubset(a))
	assert.True(t, features.NewSet(8).IsSubset(a))
}

// TestSetInPlace tests IntersectWith and UnionWith
func TestSetInPlace(t *testing.T) {
	a := setOf(8, 0, 1, 2)
	a.IntersectWith(setOf(8, 2, 5))
	assert.Equal(t, []int{2}, a.Indices())

	a.UnionWith(setOf(8, 6))
	assert.Equal(t, []int{2, 6}, a.Indices())
}

// TestSetCloneIsIndependent tests that clones do not share storage
func TestSetCloneIsIndependent(t *testing.T) {
	a := setOf(8, 1)
	c := a.Clone()
	c.Add(4)

	assert.False(t, a.Has(4))
	assert.True(t, c.Has(4))
	assert.False(t, a.Equal(c))
}

// TestSetWide tests sets spanning several words
func TestSetWide(t *testing.T) {
	full := features.FullSet(130)
	assert.Equal(t, 130, full.Count())
	assert.True(t, full.Has(129))
	assert.False(t, full.Has(130))

	s := setOf(130, 0, 64, 65, 129)
	assert.Equal(t, []int{0, 64, 65, 129}, s.Indices())
	assert.True(t, s.IsSubset(full))
	assert.True(t, full.And(s).Equal(s))
	assert.Equal(t, 126, full.AndNot(s).Count())
}

// TestSetEqualRequiresSameSize tests that sets of different tables never compare equal
func TestSetEqualRequiresSameSize(t *testing.T) {
	assert.False(t, features.NewSet(3).Equal(features.NewSet(4)))
	assert.True(t, features.NewSet(3).Equal(features.NewSet(3)))
}
