package acrq

import (
	"sort"
	"strings"

	"github.com/teranos/wkrq/formula"
	"github.com/teranos/wkrq/semantics"
	"github.com/teranos/wkrq/tableau"
)

// Solve checks satisfiability of a signed formula under bilateral
// semantics. Options pass through to the tableau engine; attach an
// evidence provider with tableau.WithEvidence to ground predicates
// externally.
func Solve(f formula.Formula, sign tableau.Sign, opts ...tableau.Option) (*tableau.Result, error) {
	bnf, err := Translate(f)
	if err != nil {
		return nil, err
	}
	return tableau.Solve(bnf, sign, opts...)
}

// SolveAll checks joint satisfiability of signed formulas under
// bilateral semantics.
func SolveAll(initial []tableau.SignedFormula, opts ...tableau.Option) (*tableau.Result, error) {
	translated := make([]tableau.SignedFormula, len(initial))
	for i, sf := range initial {
		bnf, err := Translate(sf.Formula)
		if err != nil {
			return nil, err
		}
		translated[i] = tableau.SignedFormula{Sign: sf.Sign, Formula: bnf}
	}
	return tableau.SolveAll(translated, opts...)
}

// Entails checks premises ⊢ conclusion under bilateral semantics.
func Entails(premises []formula.Formula, conclusion formula.Formula, opts ...tableau.Option) (*tableau.InferenceResult, error) {
	tp := make([]formula.Formula, len(premises))
	for i, p := range premises {
		bnf, err := Translate(p)
		if err != nil {
			return nil, err
		}
		tp[i] = bnf
	}
	tc, err := Translate(conclusion)
	if err != nil {
		return nil, err
	}
	return tableau.Entails(tp, tc, opts...)
}

// Valid checks validity under bilateral semantics.
func Valid(f formula.Formula, opts ...tableau.Option) (*tableau.InferenceResult, error) {
	return Entails(nil, f, opts...)
}

// BilateralModel pairs the positive and starred entries of a tableau
// model into bilateral values keyed by the positive instance. Sides a
// saturated branch never mentioned stay undefined.
func BilateralModel(m tableau.Model) map[string]semantics.BilateralValue {
	out := make(map[string]semantics.BilateralValue)
	get := func(key string) semantics.BilateralValue {
		if bv, ok := out[key]; ok {
			return bv
		}
		return semantics.BilateralValue{
			Positive: semantics.Undefined,
			Negative: semantics.Undefined,
		}
	}
	for key, val := range m.Assignments {
		if i := strings.Index(key, "*("); i >= 0 {
			pos := key[:i] + key[i+1:]
			bv := get(pos)
			bv.Negative = val
			out[pos] = bv
		} else {
			bv := get(key)
			bv.Positive = val
			out[key] = bv
		}
	}
	return out
}

// Gluts lists the instances a model asserts both positively and
// negatively.
func Gluts(m tableau.Model) []string {
	return filterBilateral(m, func(bv semantics.BilateralValue) bool { return bv.IsGlut() })
}

// Gaps lists the instances a model explicitly rejects on both sides.
func Gaps(m tableau.Model) []string {
	return filterBilateral(m, func(bv semantics.BilateralValue) bool { return bv.IsGap() })
}

func filterBilateral(m tableau.Model, keep func(semantics.BilateralValue) bool) []string {
	var out []string
	for key, bv := range BilateralModel(m) {
		if keep(bv) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
