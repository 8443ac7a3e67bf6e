// Package formula defines the immutable formula model shared by the wKrQ
// and ACrQ tableau engines: propositional atoms, compound connectives,
// predicates, bilateral predicate pairs, and restricted quantifiers.
//
// Formulas are structurally shared by reference across tableau branches and
// never mutated after construction. Substitution returns a fresh tree and
// leaves untouched subtrees shared.
package formula

import (
	"strings"

	"github.com/teranos/wkrq/sym"
)

// Op is a propositional connective.
type Op uint8

const (
	OpNot Op = iota
	OpAnd
	OpOr
	OpImplies
)

func (o Op) String() string {
	switch o {
	case OpNot:
		return "~"
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpImplies:
		return "->"
	default:
		return "?"
	}
}

// QuantKind is the kind of a restricted quantifier.
type QuantKind uint8

const (
	Universal QuantKind = iota
	Existential
)

func (k QuantKind) String() string {
	if k == Universal {
		return sym.Forall
	}
	return sym.Exists
}

// Formula is the closed set of formula variants. The rule engine type
// switches over the concrete types; adding a variant means every switch
// must be revisited.
type Formula interface {
	// Key returns the canonical structural key used by branch hash
	// indexes. Structurally equal formulas share a key.
	Key() string
	String() string

	isFormula()
}

// Atom is a propositional atom.
type Atom struct {
	Name string
}

// Compound applies a connective to operand subformulas: one operand for
// negation, two for the binary connectives.
type Compound struct {
	Op       Op
	Operands []Formula
}

// Predicate is an n-ary first-order predicate over terms.
type Predicate struct {
	Name  string
	Terms []Term
}

// Bilateral is one half of a bilateral predicate pair: R when Negative is
// false, its dual R* (independent negative evidence) when true.
type Bilateral struct {
	Name     string
	Terms    []Term
	Negative bool
}

// Quantifier is a restricted quantifier [Qx R(x)]S(x): Restriction narrows
// the domain, Matrix is asserted over it. A well-formed quantifier's
// restriction and matrix both mention the bound variable.
type Quantifier struct {
	Kind        QuantKind
	Bound       Term
	Restriction Formula
	Matrix      Formula
}

func (*Atom) isFormula()       {}
func (*Compound) isFormula()   {}
func (*Predicate) isFormula()  {}
func (*Bilateral) isFormula()  {}
func (*Quantifier) isFormula() {}

// NewAtom builds a propositional atom.
func NewAtom(name string) *Atom { return &Atom{Name: name} }

// Not negates a formula.
func Not(f Formula) *Compound { return &Compound{Op: OpNot, Operands: []Formula{f}} }

// And conjoins two formulas.
func And(l, r Formula) *Compound { return &Compound{Op: OpAnd, Operands: []Formula{l, r}} }

// Or disjoins two formulas.
func Or(l, r Formula) *Compound { return &Compound{Op: OpOr, Operands: []Formula{l, r}} }

// Implies builds a material implication.
func Implies(l, r Formula) *Compound {
	return &Compound{Op: OpImplies, Operands: []Formula{l, r}}
}

// NewPredicate builds a predicate formula.
func NewPredicate(name string, terms ...Term) *Predicate {
	return &Predicate{Name: name, Terms: terms}
}

// NewBilateral builds one half of a bilateral pair; negative selects R*.
func NewBilateral(name string, negative bool, terms ...Term) *Bilateral {
	return &Bilateral{Name: name, Terms: terms, Negative: negative}
}

// Dual returns the other half of the bilateral pair over the same terms.
func (b *Bilateral) Dual() *Bilateral {
	return &Bilateral{Name: b.Name, Terms: b.Terms, Negative: !b.Negative}
}

// ForAll builds a restricted universal [∀v restriction]matrix.
func ForAll(v Term, restriction, matrix Formula) *Quantifier {
	return &Quantifier{Kind: Universal, Bound: v, Restriction: restriction, Matrix: matrix}
}

// Exists builds a restricted existential [∃v restriction]matrix.
func Exists(v Term, restriction, matrix Formula) *Quantifier {
	return &Quantifier{Kind: Existential, Bound: v, Restriction: restriction, Matrix: matrix}
}

func (a *Atom) String() string { return a.Name }

func (c *Compound) String() string {
	if c.Op == OpNot {
		sub := c.Operands[0]
		if atomicLike(sub) {
			return "~" + sub.String()
		}
		return "~(" + sub.String() + ")"
	}
	return "(" + c.Operands[0].String() + " " + c.Op.String() + " " + c.Operands[1].String() + ")"
}

func (p *Predicate) String() string {
	return p.Name + "(" + joinTerms(p.Terms) + ")"
}

func (b *Bilateral) String() string {
	name := b.Name
	if b.Negative {
		name += sym.Star
	}
	return name + "(" + joinTerms(b.Terms) + ")"
}

func (q *Quantifier) String() string {
	return "[" + q.Kind.String() + q.Bound.Name + " " + q.Restriction.String() + "]" + q.Matrix.String()
}

// Key implementations: the rendered form is canonical, so it doubles as
// the structural key.
func (a *Atom) Key() string       { return a.String() }
func (c *Compound) Key() string   { return c.String() }
func (p *Predicate) Key() string  { return p.String() }
func (b *Bilateral) Key() string  { return b.String() }
func (q *Quantifier) Key() string { return q.String() }

func joinTerms(terms []Term) string {
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func atomicLike(f Formula) bool {
	switch f.(type) {
	case *Atom, *Predicate, *Bilateral:
		return true
	default:
		return false
	}
}

// IsAtomic reports whether f is an atom, predicate, or bilateral predicate.
func IsAtomic(f Formula) bool { return atomicLike(f) }

// IsGround reports whether f contains no variables outside quantifier
// binders (a formula with free or bound variables is not ground).
func IsGround(f Formula) bool {
	switch v := f.(type) {
	case *Atom:
		return true
	case *Compound:
		for _, sub := range v.Operands {
			if !IsGround(sub) {
				return false
			}
		}
		return true
	case *Predicate:
		return groundTerms(v.Terms)
	case *Bilateral:
		return groundTerms(v.Terms)
	case *Quantifier:
		return false
	default:
		return false
	}
}

func groundTerms(terms []Term) bool {
	for _, t := range terms {
		if t.IsVariable() {
			return false
		}
	}
	return true
}

// Substitute replaces free occurrences of variable v with term repl,
// returning a new formula. Subtrees without the variable are shared.
func Substitute(f Formula, v Term, repl Term) Formula {
	switch n := f.(type) {
	case *Atom:
		return n
	case *Compound:
		ops := make([]Formula, len(n.Operands))
		changed := false
		for i, sub := range n.Operands {
			ops[i] = Substitute(sub, v, repl)
			if ops[i] != sub {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return &Compound{Op: n.Op, Operands: ops}
	case *Predicate:
		terms, changed := substTerms(n.Terms, v, repl)
		if !changed {
			return n
		}
		return &Predicate{Name: n.Name, Terms: terms}
	case *Bilateral:
		terms, changed := substTerms(n.Terms, v, repl)
		if !changed {
			return n
		}
		return &Bilateral{Name: n.Name, Terms: terms, Negative: n.Negative}
	case *Quantifier:
		if n.Bound.Name == v.Name {
			// Shadowed; occurrences below are bound by this quantifier.
			return n
		}
		restr := Substitute(n.Restriction, v, repl)
		matrix := Substitute(n.Matrix, v, repl)
		if restr == n.Restriction && matrix == n.Matrix {
			return n
		}
		return &Quantifier{Kind: n.Kind, Bound: n.Bound, Restriction: restr, Matrix: matrix}
	default:
		return f
	}
}

func substTerms(terms []Term, v Term, repl Term) ([]Term, bool) {
	changed := false
	out := make([]Term, len(terms))
	for i, t := range terms {
		if t.IsVariable() && t.Name == v.Name {
			out[i] = repl
			changed = true
		} else {
			out[i] = t
		}
	}
	if !changed {
		return terms, false
	}
	return out, true
}

// Constants collects the distinct constant terms of f in first-occurrence
// order.
func Constants(f Formula) []Term {
	var out []Term
	seen := map[string]bool{}
	walkTerms(f, func(t Term) {
		if t.IsConstant() && !seen[t.Name] {
			seen[t.Name] = true
			out = append(out, t)
		}
	})
	return out
}

// FreeVariables collects the distinct free variables of f in
// first-occurrence order.
func FreeVariables(f Formula) []Term {
	var out []Term
	seen := map[string]bool{}
	var walk func(f Formula, bound map[string]bool)
	walk = func(f Formula, bound map[string]bool) {
		switch n := f.(type) {
		case *Compound:
			for _, sub := range n.Operands {
				walk(sub, bound)
			}
		case *Predicate:
			for _, t := range n.Terms {
				if t.IsVariable() && !bound[t.Name] && !seen[t.Name] {
					seen[t.Name] = true
					out = append(out, t)
				}
			}
		case *Bilateral:
			for _, t := range n.Terms {
				if t.IsVariable() && !bound[t.Name] && !seen[t.Name] {
					seen[t.Name] = true
					out = append(out, t)
				}
			}
		case *Quantifier:
			inner := map[string]bool{n.Bound.Name: true}
			for k := range bound {
				inner[k] = true
			}
			walk(n.Restriction, inner)
			walk(n.Matrix, inner)
		}
	}
	walk(f, map[string]bool{})
	return out
}

func walkTerms(f Formula, fn func(Term)) {
	switch n := f.(type) {
	case *Compound:
		for _, sub := range n.Operands {
			walkTerms(sub, fn)
		}
	case *Predicate:
		for _, t := range n.Terms {
			fn(t)
		}
	case *Bilateral:
		for _, t := range n.Terms {
			fn(t)
		}
	case *Quantifier:
		walkTerms(n.Restriction, fn)
		walkTerms(n.Matrix, fn)
	}
}

// Complexity counts formula nodes. The controller uses it for its
// least-complex-first selection heuristic.
func Complexity(f Formula) int {
	switch n := f.(type) {
	case *Compound:
		total := 1
		for _, sub := range n.Operands {
			total += Complexity(sub)
		}
		return total
	case *Quantifier:
		return 1 + Complexity(n.Restriction) + Complexity(n.Matrix)
	default:
		return 1
	}
}
