package phylo

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNewick parses a single Newick tree, e.g. "((A:0.1,B:0.2):0.3,C:0.4);".
// Supported: unquoted labels, optional branch lengths, optional internal
// labels, arbitrary whitespace between tokens. Quoted labels and bracket
// comments are not supported; trees exported by DADA2/QIIME do not use them.
func ParseNewick(s string) (*Tree, error) {
	p := &newickParser{s: s}
	p.skipSpace()
	root, err := p.subtree()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.consume(';') {
		return nil, p.errf("expected ';'")
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, p.errf("trailing data after ';'")
	}
	return NewTree(root)
}

type newickParser struct {
	s   string
	pos int
}

func (p *newickParser) errf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("phylo: parsing newick at offset %d: %s", p.pos, msg)
}

func (p *newickParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *newickParser) consume(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *newickParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *newickParser) subtree() (*Node, error) {
	p.skipSpace()
	if p.peek() == '(' {
		return p.internal()
	}
	return p.leaf()
}

func (p *newickParser) internal() (*Node, error) {
	p.pos++ // '('
	n := &Node{}
	for {
		child, err := p.subtree()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		break
	}
	if !p.consume(')') {
		return nil, p.errf("expected ',' or ')'")
	}
	n.Name = p.label() // optional internal label
	if err := p.length(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *newickParser) leaf() (*Node, error) {
	name := p.label()
	if name == "" {
		return nil, p.errf("expected a leaf label, found %q", string(p.peek()))
	}
	n := &Node{Name: name}
	if err := p.length(n); err != nil {
		return nil, err
	}
	return n, nil
}

// label scans an unquoted label; stops at structural characters.
func (p *newickParser) label() string {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune("(),:;[]'\" \t\n\r", rune(p.s[p.pos])) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *newickParser) length(n *Node) error {
	p.skipSpace()
	if !p.consume(':') {
		return nil
	}
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) && strings.ContainsRune("0123456789+-.eE", rune(p.s[p.pos])) {
		p.pos++
	}
	text := p.s[start:p.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return p.errf("invalid branch length %q", text)
	}
	n.Length = v
	return nil
}
