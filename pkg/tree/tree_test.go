/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tree_test.go
Description: Tests for the best tree search over per-phoneme minimal descriptions.
*/

package tree_test

import (
	"strings"
	"testing"

	"github.com/kleascm/featuremin/pkg/features"
	"github.com/kleascm/featuremin/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTable(t *testing.T, text string) *features.Table {
	t.Helper()
	table, err := features.ReadTable(strings.NewReader(text))
	require.NoError(t, err)
	return table
}

func desc(t *testing.T, s string) features.Description {
	t.Helper()
	d, err := features.ParseDescription(s)
	require.NoError(t, err)
	return d
}

func treeStrings(tr tree.Tree, order []string) []string {
	out := make([]string, 0, len(order))
	for _, p := range order {
		out = append(out, p+"="+tr[p].String())
	}
	return out
}

// TestBuildPBM tests an inventory where no combination serves two phonemes
func TestBuildPBM(t *testing.T) {
	table := loadTable(t, "voiced nasal\np - -\nb + -\nm + +\n")
	minimal := map[string][]features.Description{
		"p": {desc(t, "[-voiced]")},
		"b": {desc(t, "[+voiced,-nasal]")},
		"m": {desc(t, "[+nasal]")},
	}

	r, err := tree.Build(table, minimal, tree.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, r.BestCount)
	assert.Equal(t, 3, r.PartialTrees)
	assert.Equal(t, 7, r.Combinations)

	order := []string{"p", "b", "m"}
	require.Len(t, r.Trees, 3)
	assert.Equal(t, []string{"p=[-voiced]", "b=[]", "m=[]"}, treeStrings(r.Trees[0], order))
	assert.Equal(t, []string{"p=[]", "b=[+voiced,-nasal]", "m=[]"}, treeStrings(r.Trees[1], order))
	assert.Equal(t, []string{"p=[]", "b=[]", "m=[+nasal]"}, treeStrings(r.Trees[2], order))
}

// TestBuildUnmarked tests that unmarked cells let one combination serve two phonemes
func TestBuildUnmarked(t *testing.T) {
	table := loadTable(t, "f g\nx + 0\ny - +\nz 0 -\n")
	minimal := map[string][]features.Description{
		"x": {desc(t, "[+f]")},
		"y": {desc(t, "[-f]"), desc(t, "[+g]")},
		"z": {desc(t, "[-g]")},
	}

	r, err := tree.Build(table, minimal, tree.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, r.BestCount)
	assert.Equal(t, 2, r.PartialTrees)
	assert.Equal(t, 3, r.Combinations)

	order := []string{"x", "y", "z"}
	require.Len(t, r.Trees, 3)
	assert.Equal(t, []string{"x=[+f]", "y=[-f]", "z=[]"}, treeStrings(r.Trees[0], order))
	assert.Equal(t, []string{"x=[+f]", "y=[]", "z=[-g]"}, treeStrings(r.Trees[1], order))
	assert.Equal(t, []string{"x=[]", "y=[+g]", "z=[-g]"}, treeStrings(r.Trees[2], order))
}

// TestBuildEmpty tests input without descriptions
func TestBuildEmpty(t *testing.T) {
	table := loadTable(t, "voiced\np -\nb +\n")

	r, err := tree.Build(table, map[string][]features.Description{"p": nil}, tree.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, r.BestCount)
	assert.Empty(t, r.Trees)
	assert.Equal(t, 0, r.Combinations)
}

// TestBuildErrors tests the partial tree limit and bad input
func TestBuildErrors(t *testing.T) {
	table := loadTable(t, "f g\nx + 0\ny - +\nz 0 -\n")
	minimal := map[string][]features.Description{
		"x": {desc(t, "[+f]")},
		"z": {desc(t, "[-g]")},
	}

	_, err := tree.Build(table, minimal, tree.Options{MaxPartialTrees: 1})
	assert.ErrorIs(t, err, tree.ErrTooManyPartialTrees)

	_, err = tree.Build(table, map[string][]features.Description{"q": {desc(t, "[+f]")}}, tree.Options{})
	assert.ErrorIs(t, err, features.ErrUnknownPhoneme)

	_, err = tree.Build(table, map[string][]features.Description{"x": {desc(t, "[+round]")}}, tree.Options{})
	assert.ErrorIs(t, err, features.ErrUnknownFeature)
}

// TestTreeKey tests that the key ignores constraint order and skips absent phonemes
func TestTreeKey(t *testing.T) {
	a := tree.Tree{"x": desc(t, "[+f,-g]")}
	b := tree.Tree{"x": desc(t, "[-g,+f]")}

	assert.Equal(t, a.Key([]string{"x", "y"}), b.Key([]string{"x", "y"}))
	assert.NotEqual(t, a.Key([]string{"x"}), tree.Tree{"x": desc(t, "[+f]")}.Key([]string{"x"}))
}
