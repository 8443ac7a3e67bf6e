package semantics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wkrq/formula"
)

func TestNegation(t *testing.T) {
	assert.Equal(t, False, Negate(True))
	assert.Equal(t, True, Negate(False))
	assert.Equal(t, Undefined, Negate(Undefined))
}

func TestContagion(t *testing.T) {
	// Any undefined operand forces the compound to undefined, for every
	// connective. In particular t∨e = e, not t.
	values := []Value{True, False, Undefined}
	for _, v := range values {
		assert.Equal(t, Undefined, Conjunction(v, Undefined))
		assert.Equal(t, Undefined, Conjunction(Undefined, v))
		assert.Equal(t, Undefined, Disjunction(v, Undefined))
		assert.Equal(t, Undefined, Disjunction(Undefined, v))
		assert.Equal(t, Undefined, Implication(v, Undefined))
		assert.Equal(t, Undefined, Implication(Undefined, v))
	}
}

func TestClassicalFragment(t *testing.T) {
	tests := []struct {
		name string
		got  Value
		want Value
	}{
		{"t&t", Conjunction(True, True), True},
		{"t&f", Conjunction(True, False), False},
		{"f&f", Conjunction(False, False), False},
		{"t|f", Disjunction(True, False), True},
		{"f|f", Disjunction(False, False), False},
		{"t->f", Implication(True, False), False},
		{"f->f", Implication(False, False), True},
		{"t->t", Implication(True, True), True},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestEvaluate(t *testing.T) {
	p := formula.NewAtom("p")
	q := formula.NewAtom("q")

	val := Valuation{"p": True, "q": Undefined}

	got, err := Evaluate(formula.Or(p, q), val)
	require.NoError(t, err)
	assert.Equal(t, Undefined, got, "t|e must be e under weak Kleene")

	got, err = Evaluate(formula.Not(p), val)
	require.NoError(t, err)
	assert.Equal(t, False, got)

	// Excluded middle fails at p=e.
	got, err = Evaluate(formula.Or(q, formula.Not(q)), val)
	require.NoError(t, err)
	assert.Equal(t, Undefined, got)
}

func TestEvaluateMissingAtomIsUndefined(t *testing.T) {
	got, err := Evaluate(formula.NewAtom("r"), Valuation{})
	require.NoError(t, err)
	assert.Equal(t, Undefined, got)
}

func TestEvaluateRejectsQuantifiers(t *testing.T) {
	x := formula.Var("X")
	q := formula.ForAll(x, formula.NewPredicate("P", x), formula.NewPredicate("Q", x))
	_, err := Evaluate(q, Valuation{})
	require.Error(t, err)
}

func TestBilateralValue(t *testing.T) {
	assert.True(t, BilateralValue{Positive: True, Negative: True}.IsGlut())
	assert.True(t, BilateralValue{Positive: False, Negative: False}.IsGap())
	assert.False(t, BilateralValue{Positive: True, Negative: False}.IsGlut())
	assert.Equal(t, "<t,f>", BilateralValue{Positive: True, Negative: False}.String())
}
