package tableau

import (
	"github.com/teranos/wkrq/formula"
)

// RuleKind classifies an expansion. Alpha rules extend the current
// branch; beta rules split it.
type RuleKind uint8

const (
	Alpha RuleKind = iota
	Beta
)

func (k RuleKind) String() string {
	if k == Alpha {
		return "alpha"
	}
	return "beta"
}

// Expansion is the result of applying a rule to a signed formula.
// Each entry of Branches becomes one successor branch; a single entry
// extends the branch in place.
type Expansion struct {
	Rule     string
	Kind     RuleKind
	Branches [][]SignedFormula
}

func alpha(rule string, sfs ...SignedFormula) *Expansion {
	return &Expansion{Rule: rule, Kind: Alpha, Branches: [][]SignedFormula{sfs}}
}

func beta(rule string, branches ...[]SignedFormula) *Expansion {
	return &Expansion{Rule: rule, Kind: Beta, Branches: branches}
}

func sfs(sign Sign, fs ...formula.Formula) []SignedFormula {
	out := make([]SignedFormula, len(fs))
	for i, f := range fs {
		out[i] = SignedFormula{Sign: sign, Formula: f}
	}
	return out
}

// expandSigned applies the connective and meta-sign rules. It returns
// nil when no rule applies: definite signs on atomic formulas are
// terminal, and quantified formulas under t, f, e and n are handled by
// the instantiation machinery in the engine.
//
// Weak Kleene contagion shows up in the extra undefined branch on
// t-disjunction, t-implication and f-conjunction: a compound can fail
// to be false without either operand taking a classical value.
func expandSigned(sf SignedFormula) *Expansion {
	if sf.Sign == SignM {
		// m covers t and f for every formula shape.
		return beta("m-split",
			sfs(SignT, sf.Formula),
			sfs(SignF, sf.Formula),
		)
	}
	if sf.Sign == SignN {
		return expandN(sf.Formula)
	}

	c, ok := sf.Formula.(*formula.Compound)
	if !ok {
		return nil
	}

	switch c.Op {
	case formula.OpNot:
		sub := c.Operands[0]
		switch sf.Sign {
		case SignT:
			return alpha("t-not", SignedFormula{SignF, sub})
		case SignF:
			return alpha("f-not", SignedFormula{SignT, sub})
		case SignE:
			return alpha("e-not", SignedFormula{SignE, sub})
		}

	case formula.OpAnd:
		l, r := c.Operands[0], c.Operands[1]
		switch sf.Sign {
		case SignT:
			return alpha("t-and", SignedFormula{SignT, l}, SignedFormula{SignT, r})
		case SignF:
			return beta("f-and",
				sfs(SignF, l),
				sfs(SignF, r),
				sfs(SignE, l, r),
			)
		case SignE:
			return beta("e-and", sfs(SignE, l), sfs(SignE, r))
		}

	case formula.OpOr:
		l, r := c.Operands[0], c.Operands[1]
		switch sf.Sign {
		case SignT:
			return beta("t-or",
				sfs(SignT, l),
				sfs(SignT, r),
				sfs(SignE, l, r),
			)
		case SignF:
			return alpha("f-or", SignedFormula{SignF, l}, SignedFormula{SignF, r})
		case SignE:
			return beta("e-or", sfs(SignE, l), sfs(SignE, r))
		}

	case formula.OpImplies:
		l, r := c.Operands[0], c.Operands[1]
		switch sf.Sign {
		case SignT:
			return beta("t-implies",
				sfs(SignF, l),
				sfs(SignT, r),
				sfs(SignE, l, r),
			)
		case SignF:
			return alpha("f-implies", SignedFormula{SignT, l}, SignedFormula{SignF, r})
		case SignE:
			return beta("e-implies", sfs(SignE, l), sfs(SignE, r))
		}
	}
	return nil
}

// expandN applies the n rules. n asserts "not true", i.e. f or e.
// On atomic formulas it branches over the two values; on compounds it
// decomposes directly, which keeps classically valid formulas provable
// while leaving the undefined row reachable through the e rules.
func expandN(f formula.Formula) *Expansion {
	c, ok := f.(*formula.Compound)
	if !ok {
		if formula.IsAtomic(f) {
			return beta("n-split", sfs(SignF, f), sfs(SignE, f))
		}
		// Quantifiers are instantiated by the engine.
		return nil
	}

	switch c.Op {
	case formula.OpNot:
		return alpha("n-not", SignedFormula{SignT, c.Operands[0]})
	case formula.OpAnd:
		return beta("n-and",
			sfs(SignN, c.Operands[0]),
			sfs(SignN, c.Operands[1]),
		)
	case formula.OpOr:
		return alpha("n-or",
			SignedFormula{SignN, c.Operands[0]},
			SignedFormula{SignN, c.Operands[1]},
		)
	case formula.OpImplies:
		return alpha("n-implies",
			SignedFormula{SignT, c.Operands[0]},
			SignedFormula{SignN, c.Operands[1]},
		)
	}
	return nil
}
