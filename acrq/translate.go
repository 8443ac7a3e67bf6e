// Package acrq implements the paraconsistent bilateral extension of
// the weak Kleene tableau calculus. Formulas are first rewritten into
// bilateral normal form, where negation is absorbed into starred
// predicates: ~R(a) becomes R*(a), an independent assertion of
// negative evidence. A branch carrying both t:R(a) and t:R*(a) is a
// glut and stays open; f on both sides is a gap.
package acrq

import (
	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/formula"
)

// Translate rewrites a formula into bilateral normal form. Negations
// are pushed inward with the De Morgan dualities until they reach a
// predicate, where they turn into the starred counterpart. The result
// is negation-free, so the tableau rules never see a negation in
// bilateral reasoning.
//
// Propositional atoms are lowered to zero-argument predicates so that
// they star the same way: ~p becomes p*().
func Translate(f formula.Formula) (formula.Formula, error) {
	switch n := f.(type) {
	case *formula.Atom:
		return formula.NewPredicate(n.Name), nil

	case *formula.Predicate:
		return n, nil

	case *formula.Bilateral:
		if !n.Negative {
			return formula.NewPredicate(n.Name, n.Terms...), nil
		}
		return n, nil

	case *formula.Compound:
		if n.Op == formula.OpNot {
			return translateNegated(n.Operands[0])
		}
		l, err := Translate(n.Operands[0])
		if err != nil {
			return nil, err
		}
		r, err := Translate(n.Operands[1])
		if err != nil {
			return nil, err
		}
		return &formula.Compound{Op: n.Op, Operands: []formula.Formula{l, r}}, nil

	case *formula.Quantifier:
		restr, err := Translate(n.Restriction)
		if err != nil {
			return nil, err
		}
		matrix, err := Translate(n.Matrix)
		if err != nil {
			return nil, err
		}
		return &formula.Quantifier{
			Kind:        n.Kind,
			Bound:       n.Bound,
			Restriction: restr,
			Matrix:      matrix,
		}, nil
	}
	return nil, errors.AssertionFailedf("unhandled formula variant %T", f)
}

func translateNegated(f formula.Formula) (formula.Formula, error) {
	switch n := f.(type) {
	case *formula.Atom:
		return formula.NewBilateral(n.Name, true), nil

	case *formula.Predicate:
		return formula.NewBilateral(n.Name, true, n.Terms...), nil

	case *formula.Bilateral:
		// ~R* collapses back to positive R.
		if n.Negative {
			return formula.NewPredicate(n.Name, n.Terms...), nil
		}
		return formula.NewBilateral(n.Name, true, n.Terms...), nil

	case *formula.Compound:
		switch n.Op {
		case formula.OpNot:
			return Translate(n.Operands[0])
		case formula.OpAnd:
			l, err := translateNegated(n.Operands[0])
			if err != nil {
				return nil, err
			}
			r, err := translateNegated(n.Operands[1])
			if err != nil {
				return nil, err
			}
			return formula.Or(l, r), nil
		case formula.OpOr:
			l, err := translateNegated(n.Operands[0])
			if err != nil {
				return nil, err
			}
			r, err := translateNegated(n.Operands[1])
			if err != nil {
				return nil, err
			}
			return formula.And(l, r), nil
		case formula.OpImplies:
			l, err := Translate(n.Operands[0])
			if err != nil {
				return nil, err
			}
			r, err := translateNegated(n.Operands[1])
			if err != nil {
				return nil, err
			}
			return formula.And(l, r), nil
		}

	case *formula.Quantifier:
		// ~[∀X P]Q = [∃X P]~Q and dually; the restriction stays
		// positive.
		restr, err := Translate(n.Restriction)
		if err != nil {
			return nil, err
		}
		matrix, err := translateNegated(n.Matrix)
		if err != nil {
			return nil, err
		}
		kind := formula.Universal
		if n.Kind == formula.Universal {
			kind = formula.Existential
		}
		return &formula.Quantifier{
			Kind:        kind,
			Bound:       n.Bound,
			Restriction: restr,
			Matrix:      matrix,
		}, nil
	}
	return nil, errors.AssertionFailedf("unhandled formula variant %T", f)
}
