package rarefy

// SeedForSample derives the seed for one sample's candidate stream.
//
// Derivation formula: base + int64(index), where index is the sample's row
// position in the table handed to the engine. The formula is a reproducibility
// contract, not an implementation detail: any sample's draws can be replayed
// in isolation, and excluding or failing one sample never shifts the stream
// of another.
func SeedForSample(base int64, index int) int64 {
	return base + int64(index)
}
