// Package semantics implements the weak Kleene three-valued truth tables
// and valuation-based formula evaluation. The defining property is
// contagion: any operand valued undefined forces the whole compound to
// undefined, uniformly across ¬, ∧, ∨ and →.
package semantics

import (
	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/formula"
)

// Value is a weak Kleene truth value.
type Value uint8

const (
	True Value = iota
	False
	Undefined
)

func (v Value) String() string {
	switch v {
	case True:
		return "t"
	case False:
		return "f"
	case Undefined:
		return "e"
	default:
		return "?"
	}
}

// Negate is weak Kleene negation: t↔f, e fixed.
func Negate(v Value) Value {
	switch v {
	case True:
		return False
	case False:
		return True
	default:
		return Undefined
	}
}

// Conjunction is weak Kleene ∧: classical unless either operand is
// undefined.
func Conjunction(a, b Value) Value {
	if a == Undefined || b == Undefined {
		return Undefined
	}
	if a == True && b == True {
		return True
	}
	return False
}

// Disjunction is weak Kleene ∨. Note t∨e = e, not t.
func Disjunction(a, b Value) Value {
	if a == Undefined || b == Undefined {
		return Undefined
	}
	if a == True || b == True {
		return True
	}
	return False
}

// Implication is weak Kleene →, i.e. ¬a ∨ b with contagion.
func Implication(a, b Value) Value {
	if a == Undefined || b == Undefined {
		return Undefined
	}
	if a == False || b == True {
		return True
	}
	return False
}

// Valuation assigns truth values to ground atomic formulas, keyed by the
// formula's structural Key.
type Valuation map[string]Value

// Evaluate computes the weak Kleene value of a ground formula under the
// valuation. Atoms missing from the valuation evaluate to Undefined.
// Quantified formulas are out of range for plain valuation evaluation.
func Evaluate(f formula.Formula, v Valuation) (Value, error) {
	switch n := f.(type) {
	case *formula.Atom, *formula.Predicate, *formula.Bilateral:
		val, ok := v[f.Key()]
		if !ok {
			return Undefined, nil
		}
		return val, nil
	case *formula.Compound:
		if n.Op == formula.OpNot {
			sub, err := Evaluate(n.Operands[0], v)
			if err != nil {
				return Undefined, err
			}
			return Negate(sub), nil
		}
		l, err := Evaluate(n.Operands[0], v)
		if err != nil {
			return Undefined, err
		}
		r, err := Evaluate(n.Operands[1], v)
		if err != nil {
			return Undefined, err
		}
		switch n.Op {
		case formula.OpAnd:
			return Conjunction(l, r), nil
		case formula.OpOr:
			return Disjunction(l, r), nil
		case formula.OpImplies:
			return Implication(l, r), nil
		default:
			return Undefined, errors.AssertionFailedf("unknown connective %d", n.Op)
		}
	case *formula.Quantifier:
		return Undefined, errors.Newf("cannot evaluate quantified formula %s under a plain valuation", n)
	default:
		return Undefined, errors.AssertionFailedf("unknown formula variant %T", f)
	}
}

// BilateralValue pairs independent positive and negative evidence for a
// predicate instance.
type BilateralValue struct {
	Positive Value
	Negative Value
}

// IsGlut reports both positive and negative support.
func (b BilateralValue) IsGlut() bool { return b.Positive == True && b.Negative == True }

// IsGap reports support for neither side.
func (b BilateralValue) IsGap() bool { return b.Positive == False && b.Negative == False }

func (b BilateralValue) String() string {
	return "<" + b.Positive.String() + "," + b.Negative.String() + ">"
}
