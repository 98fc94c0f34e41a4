// Package rarefy implements seeded repeated rarefaction of count tables and
// the two reductions built on it: representative selection for beta diversity
// and multi-metric aggregation for alpha diversity.
//
// # Reading Guide
//
// Start with these three files to understand the core:
//   - rarefy.go: the single-vector draw (multivariate hypergeometric sampling)
//   - engine.go: per-sample repetition, deterministic seeding, the worker pool
//   - sweep.go: the depth sweep and the long-format diversity records
//
// # Determinism
//
// Every randomized draw is owned by a per-sample RNG seeded with
// SeedForSample(base, index). The derivation is part of the public contract:
// given the same table, configuration, and base seed, two runs produce
// bit-for-bit identical candidates, representatives, and records, regardless
// of worker count or completion order.
//
// # Collaborators
//
// The package orchestrates; the statistics live elsewhere:
//   - table/: the sample-by-taxon count container (samples are always rows)
//   - diversity/: alpha-diversity metrics (richness, entropy, Faith PD)
//   - distance/: pairwise dissimilarity functions for the selector
//   - phylo/: rooted trees backing phylogenetic metrics
package rarefy
