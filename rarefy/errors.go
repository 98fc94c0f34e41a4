package rarefy

import "errors"

// Sentinel errors for contract violations. Callers classify with errors.Is;
// wrapped messages carry the offending values.
var (
	// ErrInvalidDepth reports a non-positive depth, a depth exceeding the
	// total of the vector it is applied to, or a depth sequence that is not
	// strictly increasing. Reaching the per-vector case through the engine
	// indicates broken exclusion bookkeeping in the caller.
	ErrInvalidDepth = errors.New("invalid rarefaction depth")

	// ErrEmptyCandidateSet reports a reduction over zero candidates, either
	// because the repetition count was not positive or because candidate
	// generation produced nothing.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrMissingTree reports a phylogenetic metric requested without a tree.
	// Raised before any computation starts, never mid-sweep.
	ErrMissingTree = errors.New("phylogenetic metric requires a tree")
)
