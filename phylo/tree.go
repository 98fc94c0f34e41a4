// Package phylo carries the rooted phylogenetic tree consumed by the
// phylogenetic-diversity metrics. Trees arrive via ParseNewick; rooting is a
// precondition of this pipeline, not something it performs. An unrooted tree
// must be rooted by upstream tooling (e.g. QIIME's arbitrary-leaf rooting)
// before it is handed to the alpha-diversity path.
package phylo

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnrootedTree reports a tree whose root is a multifurcation of more
	// than two children, the conventional Newick encoding of an unrooted tree.
	ErrUnrootedTree = errors.New("phylo: tree is not rooted")

	// ErrUnknownTaxon reports a taxon that has no leaf in the tree.
	ErrUnknownTaxon = errors.New("phylo: taxon not found in tree")
)

// Node is one vertex of a phylogenetic tree. Leaves are nodes without
// children and must carry a name; internal names are optional.
type Node struct {
	Name     string
	Length   float64 // branch length to the parent; ignored at the root
	Children []*Node
}

// Tree is a validated phylogenetic tree with uniquely labeled leaves.
type Tree struct {
	root   *Node
	leaves map[string]struct{}
}

// NewTree validates root and wraps it. Leaf labels must be unique and
// non-empty, and every branch length must be finite and non-negative.
func NewTree(root *Node) (*Tree, error) {
	if root == nil {
		return nil, fmt.Errorf("phylo: nil root")
	}
	t := &Tree{root: root, leaves: make(map[string]struct{})}
	if err := t.validate(root); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) validate(n *Node) error {
	if n.Length < 0 || math.IsNaN(n.Length) || math.IsInf(n.Length, 0) {
		return fmt.Errorf("phylo: invalid branch length %v on %q", n.Length, n.Name)
	}
	if len(n.Children) == 0 {
		if n.Name == "" {
			return fmt.Errorf("phylo: unlabeled leaf")
		}
		if _, dup := t.leaves[n.Name]; dup {
			return fmt.Errorf("phylo: duplicate leaf label %q", n.Name)
		}
		t.leaves[n.Name] = struct{}{}
		return nil
	}
	for _, c := range n.Children {
		if err := t.validate(c); err != nil {
			return err
		}
	}
	return nil
}

// Rooted reports whether the tree is rooted: at most two children at the
// root. A trifurcating root is the conventional Newick form of an unrooted
// tree and must be resolved upstream.
func (t *Tree) Rooted() bool { return len(t.root.Children) <= 2 }

// NumLeaves returns the number of leaves.
func (t *Tree) NumLeaves() int { return len(t.leaves) }

// Contains reports whether a leaf with the given label exists.
func (t *Tree) Contains(taxon string) bool {
	_, ok := t.leaves[taxon]
	return ok
}

// Leaves returns the sorted leaf labels.
func (t *Tree) Leaves() []string {
	out := make([]string, 0, len(t.leaves))
	for name := range t.leaves {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
