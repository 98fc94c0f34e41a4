package rarefy

import (
	"fmt"
	"math/rand"
)

// pool is the expanded multiset of one count vector: one entry per individual
// item, labeled with its taxon index. Built once per sample and reused across
// draws; a partial shuffle from any starting arrangement is still a uniform
// draw without replacement.
type pool struct {
	items []int
	taxa  int
}

func newPool(counts []int) (*pool, error) {
	total := 0
	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("negative count %d for taxon %d", c, i)
		}
		total += c
	}
	items := make([]int, 0, total)
	for taxon, c := range counts {
		for k := 0; k < c; k++ {
			items = append(items, taxon)
		}
	}
	return &pool{items: items, taxa: len(counts)}, nil
}

func (p *pool) total() int { return len(p.items) }

// draw selects depth items without replacement via a partial Fisher-Yates
// shuffle and tabulates them into a fresh count vector. Consumes exactly
// depth values from rng.
func (p *pool) draw(rng *rand.Rand, depth int) []int {
	items := p.items
	for i := 0; i < depth; i++ {
		j := i + rng.Intn(len(items)-i)
		items[i], items[j] = items[j], items[i]
	}
	out := make([]int, p.taxa)
	for _, taxon := range items[:depth] {
		out[taxon]++
	}
	return out
}

func checkDepth(depth, total int) error {
	if depth < 1 {
		return fmt.Errorf("%w: depth %d is not positive", ErrInvalidDepth, depth)
	}
	if depth > total {
		return fmt.Errorf("%w: depth %d exceeds vector total %d", ErrInvalidDepth, depth, total)
	}
	return nil
}

// Rarefy draws one sub-sample of exactly depth items without replacement from
// the composition implied by counts, equivalent to multivariate hypergeometric
// sampling. The result has the same length as counts, sums to depth, and
// never exceeds counts in any position. Requires 1 <= depth <= sum(counts);
// violations report ErrInvalidDepth.
func Rarefy(rng *rand.Rand, counts []int, depth int) ([]int, error) {
	p, err := newPool(counts)
	if err != nil {
		return nil, err
	}
	if err := checkDepth(depth, p.total()); err != nil {
		return nil, err
	}
	return p.draw(rng, depth), nil
}

// RepeatRarefy produces the ordered candidate set for one sample: reps
// independent draws at the given depth from a single RNG seeded once with
// seed. Candidates share the stream, so the set is reproducible as a whole
// but individual candidates are not replayable in isolation.
func RepeatRarefy(counts []int, depth, reps int, seed int64) ([][]int, error) {
	if reps < 1 {
		return nil, fmt.Errorf("%w: repetition count %d is not positive", ErrEmptyCandidateSet, reps)
	}
	p, err := newPool(counts)
	if err != nil {
		return nil, err
	}
	if err := checkDepth(depth, p.total()); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	candidates := make([][]int, reps)
	for r := range candidates {
		candidates[r] = p.draw(rng, depth)
	}
	return candidates, nil
}
