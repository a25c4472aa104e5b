/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table_test.go
Description: Tests for the feature table and its file parser: marks, unmarked tokens,
format errors, duplicate rows and restriction to an inventory.
*/

package features_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/featuremin/pkg/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pbmTable = `voiced nasal
p - -
b + -
m + +
`

func mustRead(t *testing.T, text string) *features.Table {
	t.Helper()
	table, err := features.ReadTable(strings.NewReader(text))
	require.NoError(t, err)
	return table
}

// TestReadTable tests a small well-formed table
func TestReadTable(t *testing.T) {
	table := mustRead(t, pbmTable)

	assert.Equal(t, []string{"p", "b", "m"}, table.Phonemes())
	assert.Equal(t, []string{"voiced", "nasal"}, table.FeatureNames())
	assert.Equal(t, 3, table.NumPhonemes())

	voiced, ok := table.Feature("voiced")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "m"}, table.Names(voiced.Plus))
	assert.Equal(t, []string{"p"}, table.Names(voiced.Minus))

	nasal, ok := table.Feature("nasal")
	require.True(t, ok)
	assert.Equal(t, []string{"m"}, table.Names(nasal.Plus))
	assert.Equal(t, []string{"p", "b"}, table.Names(nasal.Minus))

	_, ok = table.Feature("round")
	assert.False(t, ok)
}

// TestReadTableUnmarkedAndBlankLines tests that other tokens leave phonemes unmarked
func TestReadTableUnmarkedAndBlankLines(t *testing.T) {
	table := mustRead(t, "\n  voiced   round\n\np - 0\n\nb + -\nm + n/a\n")

	round, ok := table.Feature("round")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, table.Names(round.Minus))
	assert.True(t, round.Plus.Empty())

	// Plus and minus stay disjoint
	for _, f := range table.Features() {
		assert.True(t, f.Plus.And(f.Minus).Empty(), f.Name)
	}
}

// TestReadTableFieldMismatch tests that a short row is a fatal format error
func TestReadTableFieldMismatch(t *testing.T) {
	_, err := features.ReadTable(strings.NewReader("voiced nasal\np - -\nb +\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, features.ErrFieldMismatch))

	var formatErr *features.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, 3, formatErr.Line)
	assert.Equal(t, 2, formatErr.Got)
	assert.Equal(t, 3, formatErr.Want)
}

// TestReadTableErrors tests the remaining structural errors
func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", features.ErrEmptyTable},
		{"blank only", "\n\n  \n", features.ErrEmptyTable},
		{"duplicate feature", "voiced voiced\np - -\n", features.ErrDuplicateFeature},
		{"duplicate phoneme", "voiced\np -\np +\n", features.ErrDuplicatePhoneme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := features.ReadTable(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// TestLoadTable tests reading from a file
func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.txt")
	require.NoError(t, os.WriteFile(path, []byte(pbmTable), 0644))

	table, err := features.LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumPhonemes())

	_, err = features.LoadTable(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

// TestMark tests sign replacement and unknown names
func TestMark(t *testing.T) {
	table, err := features.NewTable([]string{"a", "i"}, []string{"high"})
	require.NoError(t, err)

	require.NoError(t, table.Mark("i", "high", features.Plus))
	require.NoError(t, table.Mark("i", "high", features.Minus))
	high, _ := table.Feature("high")
	assert.False(t, high.Plus.Has(1))
	assert.True(t, high.Minus.Has(1))

	assert.ErrorIs(t, table.Mark("u", "high", features.Plus), features.ErrUnknownPhoneme)
	assert.ErrorIs(t, table.Mark("a", "low", features.Plus), features.ErrUnknownFeature)
	assert.ErrorIs(t, table.Mark("a", "high", features.Sign('?')), features.ErrInvalidConstraint)
}

// TestSetOfAndSigned tests phoneme sets and constraint lookups
func TestSetOfAndSigned(t *testing.T) {
	table := mustRead(t, pbmTable)

	s, err := table.SetOf("m", "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "m"}, table.Names(s))

	_, err = table.SetOf("x")
	assert.ErrorIs(t, err, features.ErrUnknownPhoneme)

	plusVoiced := table.Signed(features.SignedFeature{Feature: "voiced", Sign: features.Plus})
	assert.Equal(t, []string{"b", "m"}, table.Names(plusVoiced))
	assert.True(t, table.Signed(features.SignedFeature{Feature: "round", Sign: features.Plus}).Empty())

	assert.Equal(t, 3, table.Universe().Count())
}

// TestRestrict tests narrowing a table to an inventory
func TestRestrict(t *testing.T) {
	table := mustRead(t, pbmTable)

	restricted, missing, err := table.Restrict([]string{"m", "p", "x", "m"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, missing)
	assert.Equal(t, []string{"m", "p", "x"}, restricted.Phonemes())
	assert.Equal(t, table.FeatureNames(), restricted.FeatureNames())

	voiced, _ := restricted.Feature("voiced")
	assert.Equal(t, []string{"m"}, restricted.Names(voiced.Plus))
	assert.Equal(t, []string{"p"}, restricted.Names(voiced.Minus))

	// x is unmarked for everything
	idx, ok := restricted.Index("x")
	require.True(t, ok)
	for _, f := range restricted.Features() {
		assert.False(t, f.Plus.Has(idx))
		assert.False(t, f.Minus.Has(idx))
	}

	// The source table is unchanged
	assert.Equal(t, 3, table.NumPhonemes())
}
