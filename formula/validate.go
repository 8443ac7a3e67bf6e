package formula

import "github.com/teranos/wkrq/errors"

// Validate rejects structurally inconsistent formulas before they reach
// tableau construction. Violations wrap errors.ErrInvalidFormula.
func Validate(f Formula) error {
	switch n := f.(type) {
	case *Atom:
		if n.Name == "" {
			return errors.Wrap(errors.ErrInvalidFormula, "atom with empty name")
		}
		return nil
	case *Compound:
		switch n.Op {
		case OpNot:
			if len(n.Operands) != 1 {
				return errors.Wrapf(errors.ErrInvalidFormula, "negation with %d operands", len(n.Operands))
			}
		case OpAnd, OpOr, OpImplies:
			if len(n.Operands) != 2 {
				return errors.Wrapf(errors.ErrInvalidFormula, "%s with %d operands", n.Op, len(n.Operands))
			}
		default:
			return errors.Wrapf(errors.ErrInvalidFormula, "unknown connective %d", n.Op)
		}
		for _, sub := range n.Operands {
			if err := Validate(sub); err != nil {
				return err
			}
		}
		return nil
	case *Predicate:
		if n.Name == "" {
			return errors.Wrap(errors.ErrInvalidFormula, "predicate with empty name")
		}
		return nil
	case *Bilateral:
		if n.Name == "" {
			return errors.Wrap(errors.ErrInvalidFormula, "bilateral predicate with empty name")
		}
		return nil
	case *Quantifier:
		return validateQuantifier(n)
	default:
		return errors.Wrapf(errors.ErrInvalidFormula, "unknown formula variant %T", f)
	}
}

func validateQuantifier(q *Quantifier) error {
	if !q.Bound.IsVariable() {
		return errors.Wrapf(errors.ErrInvalidFormula,
			"quantifier binds non-variable term %q", q.Bound.Name)
	}
	if !mentionsFree(q.Restriction, q.Bound) {
		return errors.Wrapf(errors.ErrInvalidFormula,
			"quantifier restriction %s never mentions bound variable %s",
			q.Restriction, q.Bound.Name)
	}
	if !mentionsFree(q.Matrix, q.Bound) {
		return errors.Wrapf(errors.ErrInvalidFormula,
			"quantifier matrix %s never mentions bound variable %s",
			q.Matrix, q.Bound.Name)
	}
	if rebinds(q.Restriction, q.Bound) || rebinds(q.Matrix, q.Bound) {
		return errors.Wrapf(errors.ErrInvalidFormula,
			"nested quantifier rebinds variable %s", q.Bound.Name)
	}
	if err := Validate(q.Restriction); err != nil {
		return err
	}
	return Validate(q.Matrix)
}

func mentionsFree(f Formula, v Term) bool {
	for _, fv := range FreeVariables(f) {
		if fv.Name == v.Name {
			return true
		}
	}
	return false
}

func rebinds(f Formula, v Term) bool {
	switch n := f.(type) {
	case *Compound:
		for _, sub := range n.Operands {
			if rebinds(sub, v) {
				return true
			}
		}
		return false
	case *Quantifier:
		if n.Bound.Name == v.Name {
			return true
		}
		return rebinds(n.Restriction, v) || rebinds(n.Matrix, v)
	default:
		return false
	}
}
