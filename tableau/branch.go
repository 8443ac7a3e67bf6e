package tableau

import (
	"github.com/teranos/wkrq/formula"
)

type node struct {
	id       int
	sf       SignedFormula
	expanded bool
}

// Closure records the pair of nodes that closed a branch: two distinct
// definite signs on the same formula.
type Closure struct {
	FormulaKey string
	Left       SignedFormula
	Right      SignedFormula
	LeftNode   int
	RightNode  int
}

// branch is one path through the tableau. All lookup state is indexed
// so that adding a node and checking closure are constant time.
type branch struct {
	id    int
	nodes []*node

	// present dedupes signed formulas by key.
	present map[string]bool
	// definite maps a formula key to the definite signs recorded for
	// it and the node that introduced each.
	definite map[string]map[Sign]int

	constants []formula.Term
	constSet  map[string]bool

	// perConstDone tracks which constants a recurring quantifier node
	// has already been instantiated with, keyed by node id.
	perConstDone map[int]map[string]bool
	evidenceDone map[string]bool

	closed  bool
	closure *Closure
}

func newBranch(id int) *branch {
	return &branch{
		id:           id,
		present:      make(map[string]bool),
		definite:     make(map[string]map[Sign]int),
		constSet:     make(map[string]bool),
		perConstDone: make(map[int]map[string]bool),
		evidenceDone: make(map[string]bool),
	}
}

// clone copies the branch for a beta split. Node structs are copied so
// that expansion flags diverge per branch; formulas are shared.
func (b *branch) clone(id int) *branch {
	nb := newBranch(id)
	nb.nodes = make([]*node, len(b.nodes))
	for i, n := range b.nodes {
		cp := *n
		nb.nodes[i] = &cp
	}
	for k, v := range b.present {
		nb.present[k] = v
	}
	for k, signs := range b.definite {
		m := make(map[Sign]int, len(signs))
		for s, id := range signs {
			m[s] = id
		}
		nb.definite[k] = m
	}
	nb.constants = append(nb.constants, b.constants...)
	for k, v := range b.constSet {
		nb.constSet[k] = v
	}
	for nid, done := range b.perConstDone {
		m := make(map[string]bool, len(done))
		for c, v := range done {
			m[c] = v
		}
		nb.perConstDone[nid] = m
	}
	for k, v := range b.evidenceDone {
		nb.evidenceDone[k] = v
	}
	nb.closed = b.closed
	nb.closure = b.closure
	return nb
}

// add appends a signed formula to the branch, indexes it and checks
// closure. It reports whether a new node was created.
func (b *branch) add(id int, sf SignedFormula) bool {
	key := sf.Key()
	if b.present[key] {
		return false
	}
	b.present[key] = true

	n := &node{id: id, sf: sf}
	b.nodes = append(b.nodes, n)
	b.registerConstants(sf.Formula)

	if !sf.Sign.Definite() {
		return true
	}

	fkey := sf.Formula.Key()
	signs := b.definite[fkey]
	if signs == nil {
		signs = make(map[Sign]int)
		b.definite[fkey] = signs
	}
	for prev, prevID := range signs {
		if prev != sf.Sign && !b.closed {
			b.closed = true
			b.closure = &Closure{
				FormulaKey: fkey,
				Left:       SignedFormula{Sign: prev, Formula: sf.Formula},
				Right:      sf,
				LeftNode:   prevID,
				RightNode:  n.id,
			}
		}
	}
	signs[sf.Sign] = n.id
	return true
}

func (b *branch) registerConstants(f formula.Formula) {
	for _, c := range formula.Constants(f) {
		if !b.constSet[c.Name] {
			b.constSet[c.Name] = true
			b.constants = append(b.constants, c)
		}
	}
}

// hasDefinite reports whether the branch records the given definite
// sign for the formula key.
func (b *branch) hasDefinite(s Sign, fkey string) bool {
	signs, ok := b.definite[fkey]
	if !ok {
		return false
	}
	_, ok = signs[s]
	return ok
}

func (b *branch) markConstDone(nodeID int, constName string) {
	done := b.perConstDone[nodeID]
	if done == nil {
		done = make(map[string]bool)
		b.perConstDone[nodeID] = done
	}
	done[constName] = true
}

func (b *branch) constDone(nodeID int, constName string) bool {
	return b.perConstDone[nodeID][constName]
}
