package rarefy

// Exclusion records one sample dropped from one depth's computation because
// its total count fell strictly below the requested depth.
type Exclusion struct {
	Sample string
	Depth  int
	Total  int
}

// SampleFailure records a data problem that aborted one sample's contribution
// at one depth without aborting the whole operation.
type SampleFailure struct {
	Sample string
	Depth  int
	Err    error
}

// Report carries the structured diagnostics of one engine operation. Every
// sample missing from an output appears here, either as an exclusion or as a
// failure; the output is never silently smaller than the input. Records are
// ordered by depth, then by canonical sample order.
type Report struct {
	Exclusions []Exclusion
	Failures   []SampleFailure
}

// ExcludedAt returns the identifiers excluded at one depth, in table order.
func (r *Report) ExcludedAt(depth int) []string {
	var ids []string
	for _, e := range r.Exclusions {
		if e.Depth == depth {
			ids = append(ids, e.Sample)
		}
	}
	return ids
}

// Clean reports whether the operation completed with no exclusions and no
// per-sample failures.
func (r *Report) Clean() bool {
	return len(r.Exclusions) == 0 && len(r.Failures) == 0
}
