package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/formula"
)

func parse(t *testing.T, input string) formula.Formula {
	t.Helper()
	f, err := Parse(input)
	require.NoError(t, err, "input %q", input)
	return f
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"p", "p"},
		{"~p", "~p"},
		{"~~p", "~(~p)"},
		{"p & q", "(p & q)"},
		{"p | q", "(p | q)"},
		{"p -> q", "(p -> q)"},
		{"p & q | r", "((p & q) | r)"},
		{"p -> q -> r", "(p -> (q -> r))"},
		{"~(p & q)", "~(p & q)"},
		{"Human(socrates)", "Human(socrates)"},
		{"Loves(romeo, juliet)", "Loves(romeo, juliet)"},
		{"[forall X Human(X)]Mortal(X)", "[∀X Human(X)]Mortal(X)"},
		{"[exists X Bird(X)]Flies(X)", "[∃X Bird(X)]Flies(X)"},
		{"[forall X Human(X)]~Mortal(X)", "[∀X Human(X)]~Mortal(X)"},
		{"[∀X Human(X)]Mortal(X)", "[∀X Human(X)]Mortal(X)"},
		{"¬p ∧ q", "(~p & q)"},
		{"p ∨ q → r", "((p | q) -> r)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.input).String())
		})
	}
}

func TestParseTermCase(t *testing.T) {
	f := parse(t, "Loves(X, juliet)")
	pred, ok := f.(*formula.Predicate)
	require.True(t, ok)
	assert.True(t, pred.Terms[0].IsVariable())
	assert.True(t, pred.Terms[1].IsConstant())
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"p &",
		"(p",
		"p q",
		"[forall x Human(x)]Mortal(x)", // lowercase bound variable
		"[forall X Human(X)]",
		"X",
		"Human(",
		"p - q",
		"[forall X Human(X)]Mortal(Y)", // matrix must mention X
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
		})
	}
}

func TestStarSyntaxByMode(t *testing.T) {
	_, err := Parse("Human*(a)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrParse))

	f, err := ParseWithMode("Human*(a)", ModeBilateral)
	require.NoError(t, err)
	b, ok := f.(*formula.Bilateral)
	require.True(t, ok)
	assert.True(t, b.Negative)
	assert.Equal(t, "Human*(a)", f.String())
}

func TestBilateralModeForbidsPredicateNegation(t *testing.T) {
	_, err := ParseWithMode("~Human(a)", ModeBilateral)
	require.Error(t, err)

	// Negation over compounds is still fine.
	_, err = ParseWithMode("~(Human(a) & Flying(a))", ModeBilateral)
	require.NoError(t, err)
}

func TestTransparentModeAcceptsPredicateNegation(t *testing.T) {
	f, err := ParseWithMode("Human(a) & ~Human(a)", ModeTransparent)
	require.NoError(t, err)
	assert.Equal(t, "(Human(a) & ~Human(a))", f.String())
}

func TestMixedModeAcceptsBoth(t *testing.T) {
	_, err := ParseWithMode("~Human(a) & Human*(a)", ModeMixed)
	require.NoError(t, err)
}

func TestParseInference(t *testing.T) {
	inf, err := ParseInference("[forall X Human(X)]Mortal(X), Human(socrates) |- Mortal(socrates)", ModeWKrQ)
	require.NoError(t, err)
	require.Len(t, inf.Premises, 2)
	assert.Equal(t, "Mortal(socrates)", inf.Conclusion.String())
}

func TestParseInferenceNoPremises(t *testing.T) {
	inf, err := ParseInference("|- p | ~p", ModeWKrQ)
	require.NoError(t, err)
	assert.Empty(t, inf.Premises)
	assert.Equal(t, "(p | ~p)", inf.Conclusion.String())
}

func TestParseInferenceUnicodeTurnstile(t *testing.T) {
	inf, err := ParseInference("p ⊢ p", ModeWKrQ)
	require.NoError(t, err)
	require.Len(t, inf.Premises, 1)
}

func TestParseModeNames(t *testing.T) {
	for _, name := range []string{"wkrq", "transparent", "bilateral", "mixed"} {
		m, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}
	_, err := ParseMode("classical")
	require.Error(t, err)
}
