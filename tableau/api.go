package tableau

import (
	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/formula"
)

// Solve checks whether the formula can take the signed value: it
// builds a tableau from sign:f and reports open (satisfiable), closed
// (unsatisfiable) or undetermined. The v sign is notation only and is
// rejected.
func Solve(f formula.Formula, sign Sign, opts ...Option) (*Result, error) {
	if sign == SignV {
		return nil, errors.Wrap(errors.ErrInvalidFormula, "sign v cannot occur on a branch")
	}
	if err := formula.Validate(f); err != nil {
		return nil, err
	}
	e := newEngine(opts...)
	return e.run([]SignedFormula{{Sign: sign, Formula: f}})
}

// SolveAll checks the joint satisfiability of a set of signed
// formulas.
func SolveAll(initial []SignedFormula, opts ...Option) (*Result, error) {
	if len(initial) == 0 {
		return nil, errors.New("no signed formulas given")
	}
	for _, sf := range initial {
		if sf.Sign == SignV {
			return nil, errors.Wrap(errors.ErrInvalidFormula, "sign v cannot occur on a branch")
		}
		if err := formula.Validate(sf.Formula); err != nil {
			return nil, err
		}
	}
	e := newEngine(opts...)
	return e.run(initial)
}

// InferenceResult is the verdict on an entailment question. When the
// inference is invalid, Countermodel witnesses the failure: it makes
// every premise true and the conclusion not true.
type InferenceResult struct {
	Valid        bool
	Undetermined bool
	Countermodel *Model
	Stats        Stats
}

// Entails checks premises ⊢ conclusion by refutation: the premises are
// asserted true and the conclusion nontrue, and the inference holds
// exactly when that tableau closes.
func Entails(premises []formula.Formula, conclusion formula.Formula, opts ...Option) (*InferenceResult, error) {
	initial := make([]SignedFormula, 0, len(premises)+1)
	for _, p := range premises {
		initial = append(initial, SignedFormula{Sign: SignT, Formula: p})
	}
	initial = append(initial, SignedFormula{Sign: SignN, Formula: conclusion})

	res, err := SolveAll(initial, opts...)
	if err != nil {
		return nil, err
	}

	ir := &InferenceResult{Stats: res.Stats}
	switch res.Status {
	case StatusClosed:
		ir.Valid = true
	case StatusOpen:
		if len(res.Models) > 0 {
			ir.Countermodel = &res.Models[0]
		}
	case StatusUndetermined:
		ir.Undetermined = true
	}
	return ir, nil
}

// Valid checks whether the formula holds under every assignment.
func Valid(f formula.Formula, opts ...Option) (*InferenceResult, error) {
	return Entails(nil, f, opts...)
}
