package acrq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wkrq/formula"
	"github.com/teranos/wkrq/semantics"
	"github.com/teranos/wkrq/tableau"
)

func translate(t *testing.T, f formula.Formula) formula.Formula {
	t.Helper()
	out, err := Translate(f)
	require.NoError(t, err)
	return out
}

func TestTranslate(t *testing.T) {
	a := formula.Const("a")
	x := formula.Var("X")
	human := formula.NewPredicate("Human", a)
	p := formula.NewAtom("p")
	q := formula.NewAtom("q")

	tests := []struct {
		name string
		in   formula.Formula
		want string
	}{
		{"negated predicate stars", formula.Not(human), "Human*(a)"},
		{"double negation", formula.Not(formula.Not(human)), "Human(a)"},
		{"atom lowers to nullary predicate", p, "p()"},
		{"negated atom stars", formula.Not(p), "p*()"},
		{"de morgan and", formula.Not(formula.And(p, q)), "(p*() | q*())"},
		{"de morgan or", formula.Not(formula.Or(p, q)), "(p*() & q*())"},
		{"negated implication", formula.Not(formula.Implies(p, q)), "(p() & q*())"},
		{
			"negated universal flips to existential",
			formula.Not(formula.ForAll(x,
				formula.NewPredicate("Bird", x),
				formula.NewPredicate("Flies", x))),
			"[∃X Bird(X)]Flies*(X)",
		},
		{
			"negated existential flips to universal",
			formula.Not(formula.Exists(x,
				formula.NewPredicate("Bird", x),
				formula.NewPredicate("Flies", x))),
			"[∀X Bird(X)]Flies*(X)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(t, tt.in).String())
		})
	}
}

func TestGlutIsSatisfiable(t *testing.T) {
	a := formula.Const("a")
	human := formula.NewPredicate("Human", a)
	contra := formula.And(human, formula.Not(human))

	res, err := Solve(contra, tableau.SignT)
	require.NoError(t, err)
	require.Equal(t, tableau.StatusOpen, res.Status)

	bm := BilateralModel(res.Models[0])
	bv := bm["Human(a)"]
	assert.True(t, bv.IsGlut())
	assert.Equal(t, []string{"Human(a)"}, Gluts(res.Models[0]))
}

func TestNoExplosionFromContradiction(t *testing.T) {
	a := formula.Const("a")
	b := formula.Const("b")
	human := formula.NewPredicate("Human", a)

	res, err := Entails(
		[]formula.Formula{human, formula.Not(human)},
		formula.NewPredicate("Flying", b),
	)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.NotNil(t, res.Countermodel)
}

func TestSamePolaritySignClashStillCloses(t *testing.T) {
	a := formula.Const("a")
	human := formula.NewPredicate("Human", a)

	res, err := SolveAll([]tableau.SignedFormula{
		{Sign: tableau.SignT, Formula: human},
		{Sign: tableau.SignF, Formula: human},
	})
	require.NoError(t, err)
	assert.Equal(t, tableau.StatusClosed, res.Status)
}

func TestGapIsSatisfiable(t *testing.T) {
	a := formula.Const("a")
	human := formula.NewPredicate("Human", a)

	res, err := SolveAll([]tableau.SignedFormula{
		{Sign: tableau.SignF, Formula: human},
		{Sign: tableau.SignF, Formula: formula.Not(human)},
	})
	require.NoError(t, err)
	require.Equal(t, tableau.StatusOpen, res.Status)
	assert.Equal(t, []string{"Human(a)"}, Gaps(res.Models[0]))
}

func TestIdentityStillValid(t *testing.T) {
	a := formula.Const("a")
	human := formula.NewPredicate("Human", a)

	res, err := Entails([]formula.Formula{human}, human)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestQuantifiedBilateralInference(t *testing.T) {
	x := formula.Var("X")
	tweety := formula.Const("tweety")

	// Every bird flies, tweety is a bird, but negative evidence about
	// tweety flying yields a glut rather than closure.
	all := formula.ForAll(x,
		formula.NewPredicate("Bird", x),
		formula.NewPredicate("Flies", x))
	bird := formula.NewPredicate("Bird", tweety)
	notFlies := formula.Not(formula.NewPredicate("Flies", tweety))

	res, err := SolveAll([]tableau.SignedFormula{
		{Sign: tableau.SignT, Formula: all},
		{Sign: tableau.SignT, Formula: bird},
		{Sign: tableau.SignT, Formula: notFlies},
	})
	require.NoError(t, err)
	require.Equal(t, tableau.StatusOpen, res.Status)

	bm := BilateralModel(res.Models[0])
	assert.Equal(t, semantics.True, bm["Flies(tweety)"].Negative)
}
