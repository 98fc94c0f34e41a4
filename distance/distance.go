// Package distance provides the count-based dissimilarity measures the
// representative selector chooses between. Each measure is a plain function
// over two equal-length count vectors so callers can supply their own.
package distance

import (
	"fmt"
	"math"
	"sort"
)

// Func measures the dissimilarity between two count vectors of equal length.
// 0 means identical; larger means more dissimilar. Implementations panic on
// length mismatch: inside the pipeline both vectors come from the same taxon
// axis, so a mismatch is a programming error.
type Func func(a, b []int) float64

func checkLen(a, b []int) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("distance: vector length mismatch: %d vs %d", len(a), len(b)))
	}
}

// BrayCurtis is the Bray-Curtis dissimilarity sum|a-b| / sum(a+b), the
// standard count-based measure for community data and the pipeline default.
// Two all-zero vectors are defined as identical (0).
func BrayCurtis(a, b []int) float64 {
	checkLen(a, b)
	var num, den int
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		num += d
		den += a[i] + b[i]
	}
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Jaccard is the presence/absence Jaccard dissimilarity: one minus the
// shared fraction of the taxa present in either vector.
// Two all-zero vectors are defined as identical (0).
func Jaccard(a, b []int) float64 {
	checkLen(a, b)
	var shared, union int
	for i := range a {
		switch {
		case a[i] > 0 && b[i] > 0:
			shared++
			union++
		case a[i] > 0 || b[i] > 0:
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return 1 - float64(shared)/float64(union)
}

// Euclidean is the Euclidean distance between the two count vectors.
func Euclidean(a, b []int) float64 {
	checkLen(a, b)
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Manhattan is the L1 distance between the two count vectors.
func Manhattan(a, b []int) float64 {
	checkLen(a, b)
	var sum int
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float64(sum)
}

var registry = map[string]Func{
	"bray-curtis": BrayCurtis,
	"jaccard":     Jaccard,
	"euclidean":   Euclidean,
	"manhattan":   Manhattan,
}

// New returns the named dissimilarity. The empty name selects Bray-Curtis.
func New(name string) (Func, error) {
	if name == "" {
		return BrayCurtis, nil
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown dissimilarity %q; valid: %v", name, Names())
	}
	return f, nil
}

// Names lists the registered dissimilarity names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
