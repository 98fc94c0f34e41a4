package phylo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pdTree is ((A:1,B:2):3,(C:4,D:5):6);
func pdTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := ParseNewick("((A:1,B:2):3,(C:4,D:5):6);")
	require.NoError(t, err)
	return tree
}

func TestFaithPD(t *testing.T) {
	tree := pdTree(t)
	tests := []struct {
		name    string
		present []string
		want    float64
	}{
		{"single leaf", []string{"A"}, 4},        // 1 + 3
		{"sibling pair", []string{"A", "B"}, 6},  // 1 + 2 + 3
		{"across root", []string{"A", "C"}, 14},  // 1 + 3 + 4 + 6
		{"all leaves", []string{"A", "B", "C", "D"}, 21},
		{"none", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd, err := tree.FaithPD(tt.present)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, pd, 1e-12)
		})
	}
}

func TestFaithPD_UnknownTaxon(t *testing.T) {
	tree := pdTree(t)
	_, err := tree.FaithPD([]string{"A", "ASV_missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTaxon)
	assert.Contains(t, err.Error(), "ASV_missing")
}

func TestFaithPD_BranchCountedOnce(t *testing.T) {
	// GIVEN two leaves under the same internal branch, that branch must
	// contribute once, not once per leaf.
	tree, err := ParseNewick("((A:1,B:1):10,C:1);")
	require.NoError(t, err)

	pd, err := tree.FaithPD([]string{"A", "B"})
	require.NoError(t, err)
	assert.InDelta(t, 12, pd, 1e-12, "1 + 1 + 10")
}

func TestFaithPD_SuperSetTreeIsFine(t *testing.T) {
	// Trees routinely carry more leaves than the table has taxa.
	tree := pdTree(t)
	pd, err := tree.FaithPD([]string{"D"})
	require.NoError(t, err)
	assert.InDelta(t, 11, pd, 1e-12, "5 + 6")
}
