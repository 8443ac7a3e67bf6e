package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wkrq/errors"
)

func TestTermClassification(t *testing.T) {
	assert.True(t, TermFromName("X").IsVariable())
	assert.True(t, TermFromName("Xyz").IsVariable())
	assert.True(t, TermFromName("socrates").IsConstant())
	assert.True(t, TermFromName("c_1").IsConstant())
}

func TestStringRendering(t *testing.T) {
	p := NewAtom("p")
	q := NewAtom("q")

	tests := []struct {
		name     string
		f        Formula
		expected string
	}{
		{"atom", p, "p"},
		{"negation", Not(p), "~p"},
		{"nested negation parenthesized", Not(And(p, q)), "~(p & q)"},
		{"conjunction", And(p, q), "(p & q)"},
		{"implication", Implies(p, q), "(p -> q)"},
		{"predicate", NewPredicate("Human", Const("socrates")), "Human(socrates)"},
		{"binary predicate", NewPredicate("Loves", Const("a"), Const("b")), "Loves(a, b)"},
		{"bilateral dual", NewBilateral("Flying", true, Const("tweety")), "Flying*(tweety)"},
		{
			"restricted universal",
			ForAll(Var("X"), NewPredicate("Human", Var("X")), NewPredicate("Mortal", Var("X"))),
			"[∀X Human(X)]Mortal(X)",
		},
		{
			"restricted existential",
			Exists(Var("X"), NewPredicate("A", Var("X")), NewPredicate("B", Var("X"))),
			"[∃X A(X)]B(X)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.f.String())
			assert.Equal(t, tt.expected, tt.f.Key())
		})
	}
}

func TestKeyEqualityIsStructural(t *testing.T) {
	a := And(NewAtom("p"), NewAtom("q"))
	b := And(NewAtom("p"), NewAtom("q"))
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Or(NewAtom("p"), NewAtom("q")).Key())
}

func TestSubstitute(t *testing.T) {
	x := Var("X")
	sub := Substitute(NewPredicate("Human", x), x, Const("socrates"))
	assert.Equal(t, "Human(socrates)", sub.String())
}

func TestSubstituteSharesUntouchedSubtrees(t *testing.T) {
	x := Var("X")
	left := NewPredicate("P", Const("a"))
	f := And(left, NewPredicate("Q", x))
	out := Substitute(f, x, Const("b")).(*Compound)
	// The untouched left operand is shared, not copied.
	assert.Same(t, Formula(left), out.Operands[0])
	assert.Equal(t, "(P(a) & Q(b))", out.String())
}

func TestSubstituteRespectsShadowing(t *testing.T) {
	x := Var("X")
	inner := ForAll(x, NewPredicate("P", x), NewPredicate("Q", x))
	out := Substitute(inner, x, Const("c"))
	assert.Same(t, Formula(inner), out)
}

func TestBilateralDual(t *testing.T) {
	r := NewBilateral("Human", false, Const("a"))
	dual := r.Dual()
	assert.True(t, dual.Negative)
	assert.Equal(t, "Human*(a)", dual.String())
	assert.Equal(t, r.Key(), dual.Dual().Key())
}

func TestIsGround(t *testing.T) {
	assert.True(t, IsGround(NewPredicate("P", Const("a"))))
	assert.False(t, IsGround(NewPredicate("P", Var("X"))))
	assert.True(t, IsGround(NewAtom("p")))
	q := ForAll(Var("X"), NewPredicate("P", Var("X")), NewPredicate("Q", Var("X")))
	assert.False(t, IsGround(q))
}

func TestConstantsAndFreeVariables(t *testing.T) {
	x := Var("X")
	f := And(
		NewPredicate("P", Const("a"), x),
		ForAll(x, NewPredicate("Q", x), NewPredicate("R", x, Const("b"))),
	)
	consts := Constants(f)
	require.Len(t, consts, 2)
	assert.Equal(t, "a", consts[0].Name)
	assert.Equal(t, "b", consts[1].Name)

	free := FreeVariables(f)
	require.Len(t, free, 1)
	assert.Equal(t, "X", free[0].Name)
}

func TestComplexity(t *testing.T) {
	p := NewAtom("p")
	assert.Equal(t, 1, Complexity(p))
	assert.Equal(t, 2, Complexity(Not(p)))
	assert.Equal(t, 3, Complexity(And(p, p)))
	q := ForAll(Var("X"), NewPredicate("P", Var("X")), NewPredicate("Q", Var("X")))
	assert.Equal(t, 3, Complexity(q))
}

func TestValidate(t *testing.T) {
	x := Var("X")

	tests := []struct {
		name    string
		f       Formula
		wantErr bool
	}{
		{"atom ok", NewAtom("p"), false},
		{"quantifier ok", ForAll(x, NewPredicate("P", x), NewPredicate("Q", x)), false},
		{"matrix ignores bound var", ForAll(x, NewPredicate("P", x), NewPredicate("Q", Const("a"))), true},
		{"restriction ignores bound var", ForAll(x, NewPredicate("P", Const("a")), NewPredicate("Q", x)), true},
		{"binds constant", ForAll(Const("a"), NewPredicate("P", Const("a")), NewPredicate("Q", Const("a"))), true},
		{
			"rebinding nested quantifier",
			ForAll(x, NewPredicate("P", x),
				And(NewPredicate("Q", x), ForAll(x, NewPredicate("R", x), NewPredicate("S", x)))),
			true,
		},
		{"empty predicate name", NewPredicate(""), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.f)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrInvalidFormula))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
