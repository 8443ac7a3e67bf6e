package tableau

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wkrq/formula"
	"github.com/teranos/wkrq/semantics"
)

func atom(name string) formula.Formula { return formula.NewAtom(name) }

func solve(t *testing.T, f formula.Formula, s Sign, opts ...Option) *Result {
	t.Helper()
	res, err := Solve(f, s, opts...)
	require.NoError(t, err)
	return res
}

func TestExcludedMiddle(t *testing.T) {
	p := atom("p")
	lem := formula.Or(p, formula.Not(p))

	t.Run("valid", func(t *testing.T) {
		res, err := Valid(lem)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("cannot be false", func(t *testing.T) {
		assert.Equal(t, StatusClosed, solve(t, lem, SignF).Status)
	})

	t.Run("can be undefined", func(t *testing.T) {
		res := solve(t, lem, SignE)
		require.Equal(t, StatusOpen, res.Status)
		require.Len(t, res.Models, 1)
		assert.Equal(t, semantics.Undefined, res.Models[0].Assignments["p"])
	})
}

func TestContradictionUnsatisfiable(t *testing.T) {
	p := atom("p")
	contra := formula.And(p, formula.Not(p))

	assert.Equal(t, StatusClosed, solve(t, contra, SignT).Status)
	// Contagion keeps the undefined row open: p=e makes p & ~p undefined.
	assert.Equal(t, StatusOpen, solve(t, contra, SignE).Status)
}

func TestContagion(t *testing.T) {
	p, q := atom("p"), atom("q")
	conj := formula.And(p, q)

	// With p true and q undefined, p & q can only be undefined.
	res, err := SolveAll([]SignedFormula{
		{SignT, p}, {SignE, q}, {SignT, conj},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, res.Status)

	res, err = SolveAll([]SignedFormula{
		{SignT, p}, {SignE, q}, {SignE, conj},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, res.Status)
}

func TestAllModels(t *testing.T) {
	p := atom("p")
	res := solve(t, formula.Or(p, formula.Not(p)), SignT, WithAllModels())
	require.Equal(t, StatusOpen, res.Status)

	values := make(map[semantics.Value]bool)
	for _, m := range res.Models {
		values[m.Assignments["p"]] = true
	}
	assert.True(t, values[semantics.True])
	assert.True(t, values[semantics.False])
}

func TestMetaSignM(t *testing.T) {
	p := atom("p")
	res := solve(t, p, SignM, WithAllModels())
	require.Equal(t, StatusOpen, res.Status)
	require.Len(t, res.Models, 2)
	for _, m := range res.Models {
		assert.NotEqual(t, semantics.Undefined, m.Assignments["p"])
	}
}

func TestSignVRejected(t *testing.T) {
	_, err := Solve(atom("p"), SignV)
	require.Error(t, err)
}

func TestQuantifierInference(t *testing.T) {
	x := formula.Var("X")
	socrates := formula.Const("socrates")

	t.Run("universal instantiation", func(t *testing.T) {
		all := formula.ForAll(x,
			formula.NewPredicate("Human", x),
			formula.NewPredicate("Mortal", x))
		human := formula.NewPredicate("Human", socrates)
		mortal := formula.NewPredicate("Mortal", socrates)

		res, err := Entails([]formula.Formula{all, human}, mortal)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("existential does not yield universal", func(t *testing.T) {
		y := formula.Var("Y")
		premise := formula.Exists(x,
			formula.NewPredicate("A", x),
			formula.NewPredicate("B", x))
		conclusion := formula.ForAll(y,
			formula.NewPredicate("A", y),
			formula.NewPredicate("B", y))

		res, err := Entails([]formula.Formula{premise}, conclusion)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.False(t, res.Undetermined)
		require.NotNil(t, res.Countermodel)
	})
}

func TestExistentialWitnessReuse(t *testing.T) {
	x := formula.Var("X")
	a := formula.Const("a")

	// P(a) is already true, so the existential should not need a
	// second constant.
	ex := formula.Exists(x,
		formula.NewPredicate("P", x),
		formula.NewPredicate("Q", x))
	res, err := SolveAll([]SignedFormula{
		{SignT, formula.NewPredicate("P", a)},
		{SignT, ex},
	})
	require.NoError(t, err)
	require.Equal(t, StatusOpen, res.Status)
	assert.Equal(t, 0, res.Stats.Constants)
	assert.Equal(t, semantics.True, res.Models[0].Assignments["Q(a)"])
}

func TestClosureIsDefiniteSignPair(t *testing.T) {
	p := atom("p")

	res, err := SolveAll([]SignedFormula{{SignT, p}, {SignE, p}})
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, res.Status)

	// Meta-signs never close against definite signs directly.
	res, err = SolveAll([]SignedFormula{{SignT, p}, {SignM, p}})
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, res.Status)
}

func TestBilateralPairDoesNotClose(t *testing.T) {
	a := formula.Const("a")
	pos := formula.NewPredicate("R", a)
	neg := formula.NewBilateral("R", true, a)

	glut, err := SolveAll([]SignedFormula{{SignT, pos}, {SignT, neg}})
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, glut.Status)

	gap, err := SolveAll([]SignedFormula{{SignF, pos}, {SignF, neg}})
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, gap.Status)

	clash, err := SolveAll([]SignedFormula{{SignT, pos}, {SignF, pos}})
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, clash.Status)
}

func TestSaturatedBranchIsIdempotent(t *testing.T) {
	p, q := atom("p"), atom("q")
	e := newEngine()
	b := newBranch(0)
	e.addAll(b, []SignedFormula{{SignT, p}, {SignF, q}})

	require.Nil(t, e.selectWork(b))
	before := len(b.nodes)
	e.addAll(b, []SignedFormula{{SignT, p}, {SignF, q}})
	assert.Equal(t, before, len(b.nodes))
}

func TestResourceLimitsGiveUndetermined(t *testing.T) {
	// Nested quantifiers over a shared predicate keep minting work;
	// the budget has to stop the search, not an error.
	x := formula.Var("X")
	y := formula.Var("Y")
	inner := formula.ForAll(y,
		formula.NewPredicate("R", y),
		formula.NewPredicate("S", x, y))
	outer := formula.Exists(x, formula.NewPredicate("R", x), inner)

	res, err := Solve(outer, SignT, WithLimits(Limits{MaxNodes: 2}))
	require.NoError(t, err)
	assert.Equal(t, StatusUndetermined, res.Status)
	assert.Equal(t, "nodes", res.LimitHit)
}

func TestTracerSeesClosedBranchActivity(t *testing.T) {
	p := atom("p")
	tr := &CollectingTracer{}
	res := solve(t, formula.And(p, formula.Not(p)), SignT, WithTracer(tr))
	require.Equal(t, StatusClosed, res.Status)

	var expansions, closures int
	for _, ev := range tr.Events() {
		switch ev.Kind {
		case EventExpansion:
			expansions++
		case EventClosure:
			closures++
			require.NotNil(t, ev.Closure)
			assert.Equal(t, "p", ev.Closure.FormulaKey)
		}
	}
	assert.NotZero(t, expansions)
	assert.Equal(t, 1, closures)
}

type tableEvidence map[string]Evidence

func (m tableEvidence) Evaluate(_ context.Context, predicate string, terms []string) (Evidence, error) {
	key := predicate
	if len(terms) > 0 {
		key = predicate + "(" + terms[0] + ")"
	}
	return m[key], nil
}

func TestEvidenceAssertsBothPolarities(t *testing.T) {
	a := formula.Const("a")
	pos := formula.NewPredicate("Flying", a)

	provider := tableEvidence{
		"Flying(a)": {Positive: EvidenceSupported, Negative: EvidenceRefuted},
	}
	res, err := SolveAll(
		[]SignedFormula{{SignT, pos}},
		WithEvidence(provider),
	)
	require.NoError(t, err)
	require.Equal(t, StatusOpen, res.Status)
	m := res.Models[0].Assignments
	assert.Equal(t, semantics.True, m["Flying(a)"])
	assert.Equal(t, semantics.False, m["Flying*(a)"])
}

func TestEvidenceRefutationClosesBranch(t *testing.T) {
	a := formula.Const("a")
	pos := formula.NewPredicate("Flying", a)

	provider := tableEvidence{
		"Flying(a)": {Positive: EvidenceRefuted, Negative: EvidenceSupported},
	}
	res, err := SolveAll(
		[]SignedFormula{{SignT, pos}},
		WithEvidence(provider),
	)
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, res.Status)
}

type failingEvidence struct{}

func (failingEvidence) Evaluate(context.Context, string, []string) (Evidence, error) {
	return Evidence{}, assert.AnError
}

func TestEvidenceFailureBecomesGap(t *testing.T) {
	a := formula.Const("a")
	pos := formula.NewPredicate("Flying", a)
	tr := &CollectingTracer{}

	res, err := SolveAll(
		[]SignedFormula{{SignF, pos}},
		WithEvidence(failingEvidence{}),
		WithTracer(tr),
	)
	require.NoError(t, err)
	require.Equal(t, StatusOpen, res.Status)
	m := res.Models[0].Assignments
	assert.Equal(t, semantics.False, m["Flying(a)"])
	assert.Equal(t, semantics.False, m["Flying*(a)"])

	var sawFailure bool
	for _, ev := range tr.Events() {
		if ev.Kind == EventEvidence && ev.Err != nil {
			sawFailure = true
		}
	}
	assert.True(t, sawFailure)
}

func TestModelsContainOnlyGroundAtoms(t *testing.T) {
	x := formula.Var("X")
	all := formula.ForAll(x,
		formula.NewPredicate("P", x),
		formula.NewPredicate("Q", x))

	res := solve(t, all, SignT)
	require.Equal(t, StatusOpen, res.Status)
	for key := range res.Models[0].Assignments {
		assert.NotContains(t, key, "∀")
		assert.NotContains(t, key, "X")
	}
}
