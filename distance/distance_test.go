package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrayCurtis(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want float64
	}{
		{"identical", []int{3, 2, 1}, []int{3, 2, 1}, 0},
		{"disjoint", []int{5, 0}, []int{0, 5}, 1},
		{"partial overlap", []int{6, 2}, []int{2, 6}, 0.5},
		{"both empty", []int{0, 0}, []int{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BrayCurtis(tt.a, tt.b), 1e-12)
		})
	}
}

func TestJaccard(t *testing.T) {
	// Shared {1}, union {0,1,2}: dissimilarity 1 - 1/3.
	assert.InDelta(t, 2.0/3.0, Jaccard([]int{4, 1, 0}, []int{0, 9, 2}), 1e-12)
	assert.Equal(t, 0.0, Jaccard([]int{1, 2}, []int{9, 1}), "same support")
	assert.Equal(t, 1.0, Jaccard([]int{1, 0}, []int{0, 1}), "disjoint support")
	assert.Equal(t, 0.0, Jaccard([]int{0}, []int{0}), "both empty")
}

func TestEuclideanManhattan(t *testing.T) {
	a, b := []int{0, 3}, []int{4, 0}
	assert.InDelta(t, 5, Euclidean(a, b), 1e-12)
	assert.InDelta(t, 7, Manhattan(a, b), 1e-12)
	assert.Equal(t, 0.0, Euclidean(a, a))
	assert.Equal(t, 0.0, Manhattan(b, b))
}

func TestSymmetry(t *testing.T) {
	a, b := []int{7, 0, 2, 5}, []int{1, 3, 3, 0}
	for name, f := range registry {
		assert.Equal(t, f(a, b), f(b, a), name)
	}
}

func TestLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { BrayCurtis([]int{1}, []int{1, 2}) })
}

func TestNew(t *testing.T) {
	f, err := New("")
	require.NoError(t, err)
	assert.InDelta(t, BrayCurtis([]int{6, 2}, []int{2, 6}), f([]int{6, 2}, []int{2, 6}), 1e-12,
		"empty name defaults to Bray-Curtis")

	for _, name := range Names() {
		_, err := New(name)
		assert.NoError(t, err, name)
	}

	_, err = New("chebyshev")
	assert.Error(t, err)
}

func TestEuclideanMatchesMath(t *testing.T) {
	a, b := []int{2, 4, 6}, []int{1, 1, 1}
	want := math.Sqrt(1 + 9 + 25)
	assert.InDelta(t, want, Euclidean(a, b), 1e-12)
}
