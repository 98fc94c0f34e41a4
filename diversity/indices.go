package diversity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/MSMortensen/GutMicro-16S-pipeline/phylo"
)

// Observed returns the number of taxa with non-zero counts.
func Observed(counts []int) float64 {
	s := 0
	for _, c := range counts {
		if c > 0 {
			s++
		}
	}
	return float64(s)
}

// Chao1 returns the bias-corrected Chao1 richness estimate.
//
// Formula: S + F1*(F1-1) / (2*(F2+1)), where S is observed richness, F1 the
// number of singletons and F2 the number of doubletons. The corrected form is
// defined even when F2 is zero; with no singletons it reduces to S.
func Chao1(counts []int) float64 {
	var s, f1, f2 int
	for _, c := range counts {
		switch {
		case c == 1:
			f1++
			s++
		case c == 2:
			f2++
			s++
		case c > 2:
			s++
		}
	}
	return float64(s) + float64(f1*(f1-1))/float64(2*(f2+1))
}

// Shannon returns the Shannon entropy -sum(p*ln p) over non-zero proportions.
// An empty community has entropy zero.
func Shannon(counts []int) float64 {
	p := proportions(counts)
	if p == nil {
		return 0
	}
	return stat.Entropy(p)
}

// Simpson returns the Gini-Simpson index 1 - sum(p^2). It ranges over [0,1)
// and is zero for empty and single-taxon communities.
func Simpson(counts []int) float64 {
	d, ok := sumSquaredProportions(counts)
	if !ok {
		return 0
	}
	return 1 - d
}

// InvSimpson returns the inverse Simpson index 1 / sum(p^2), the effective
// number of equally-abundant taxa. An empty community yields zero.
func InvSimpson(counts []int) float64 {
	d, ok := sumSquaredProportions(counts)
	if !ok {
		return 0
	}
	return 1 / d
}

// Pielou returns Pielou's evenness, Shannon / ln(observed richness). A
// community with at most one observed taxon is perfectly even and yields 1.
func Pielou(counts []int) float64 {
	s := Observed(counts)
	if s <= 1 {
		return 1
	}
	return Shannon(counts) / math.Log(s)
}

// FaithPD returns Faith's phylogenetic diversity: the total branch length of
// the subtree spanning the root and every taxon with a non-zero count. taxa
// names the columns of counts; tree must be non-nil.
func FaithPD(counts []int, taxa []string, tree *phylo.Tree) (float64, error) {
	if len(counts) != len(taxa) {
		panic(fmt.Sprintf("diversity: %d counts for %d taxa", len(counts), len(taxa)))
	}
	if tree == nil {
		return 0, fmt.Errorf("faith-pd requires a phylogenetic tree")
	}
	present := make([]string, 0, len(taxa))
	for i, c := range counts {
		if c > 0 {
			present = append(present, taxa[i])
		}
	}
	return tree.FaithPD(present)
}

// proportions normalizes counts to relative abundances, or nil for an empty
// community.
func proportions(counts []int) []float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return nil
	}
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / float64(total)
	}
	return p
}

func sumSquaredProportions(counts []int) (float64, bool) {
	p := proportions(counts)
	if p == nil {
		return 0, false
	}
	var d float64
	for _, v := range p {
		d += v * v
	}
	return d, true
}
