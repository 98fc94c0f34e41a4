package phylo

import "fmt"

// FaithPD returns Faith's phylogenetic diversity for the given set of
// observed taxa: the sum of branch lengths of the subtree connecting those
// leaves to the root, each branch counted once. An empty set yields 0.
//
// Rootedness is not re-checked here; the engine validates it once before any
// computation. A taxon without a leaf in the tree yields ErrUnknownTaxon:
// the leaf-superset precondition was violated for this sample.
func (t *Tree) FaithPD(present []string) (float64, error) {
	if len(present) == 0 {
		return 0, nil
	}
	want := make(map[string]struct{}, len(present))
	for _, taxon := range present {
		if !t.Contains(taxon) {
			return 0, fmt.Errorf("%w: %q", ErrUnknownTaxon, taxon)
		}
		want[taxon] = struct{}{}
	}

	var pd float64
	var walk func(n *Node, atRoot bool) bool
	walk = func(n *Node, atRoot bool) bool {
		spans := false
		if len(n.Children) == 0 {
			_, spans = want[n.Name]
		}
		for _, c := range n.Children {
			if walk(c, false) {
				spans = true
			}
		}
		if spans && !atRoot {
			pd += n.Length
		}
		return spans
	}
	walk(t.root, true)
	return pd, nil
}
