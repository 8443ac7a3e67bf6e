package tableau

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/wkrq/formula"
	"github.com/teranos/wkrq/semantics"
)

// Status is the outcome of a tableau construction.
type Status uint8

const (
	// StatusOpen means a saturated open branch exists: the initial
	// signed formulas are jointly satisfiable.
	StatusOpen Status = iota
	// StatusClosed means every branch closed: unsatisfiable.
	StatusClosed
	// StatusUndetermined means a resource limit was hit first.
	StatusUndetermined
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	}
	return "undetermined"
}

// Limits bounds tableau construction. A zero field means unlimited.
// Hitting any limit yields StatusUndetermined rather than an error.
type Limits struct {
	MaxNodes     int
	MaxDepth     int
	MaxBranches  int
	MaxConstants int
}

// DefaultLimits are generous enough for every formula in the test
// corpus while still terminating quickly on runaway inputs.
func DefaultLimits() Limits {
	return Limits{
		MaxNodes:     10000,
		MaxDepth:     1000,
		MaxBranches:  2000,
		MaxConstants: 64,
	}
}

// Stats counts work done during construction.
type Stats struct {
	Nodes          int
	Branches       int
	ClosedBranches int
	Rules          int
	Constants      int
}

// Model maps ground atomic formula keys to truth values, read off a
// saturated open branch. Atoms absent from the map are undefined.
type Model struct {
	Assignments map[string]semantics.Value
}

func (m Model) fingerprint() string {
	keys := make([]string, 0, len(m.Assignments))
	for k := range m.Assignments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(m.Assignments[k].String())
		sb.WriteByte(';')
	}
	return sb.String()
}

func (m Model) String() string {
	keys := make([]string, 0, len(m.Assignments))
	for k := range m.Assignments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m.Assignments[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Result is the outcome of a satisfiability check. LimitHit names the
// exhausted resource when Status is StatusUndetermined.
type Result struct {
	Status   Status
	Models   []Model
	Stats    Stats
	LimitHit string
}

// Option configures a tableau run.
type Option func(*engine)

// WithLimits overrides the default resource limits.
func WithLimits(l Limits) Option {
	return func(e *engine) { e.limits = l }
}

// WithTracer attaches an observer to the construction.
func WithTracer(t Tracer) Option {
	return func(e *engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithEvidence attaches an evidence provider, queried for ground
// predicate instances during bilateral reasoning.
func WithEvidence(p EvidenceProvider) Option {
	return func(e *engine) { e.evidence = p }
}

// WithContext sets the context passed to evidence providers.
func WithContext(ctx context.Context) Option {
	return func(e *engine) {
		if ctx != nil {
			e.ctx = ctx
		}
	}
}

// WithAllModels saturates every open branch instead of stopping at the
// first, collecting one model per distinct assignment.
func WithAllModels() Option {
	return func(e *engine) { e.allModels = true }
}

type engine struct {
	limits    Limits
	tracer    Tracer
	evidence  EvidenceProvider
	ctx       context.Context
	allModels bool

	nextNode   int
	nextBranch int
	nextConst  int
	stats      Stats
}

func newEngine(opts ...Option) *engine {
	e := &engine{
		limits: DefaultLimits(),
		tracer: nopTracer{},
		ctx:    context.Background(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// mint returns a fresh constant. The counter is owned by the engine,
// so names never collide across branches.
func (e *engine) mint() formula.Term {
	e.nextConst++
	e.stats.Constants++
	return formula.Const(fmt.Sprintf("c_%d", e.nextConst))
}

func (e *engine) run(initial []SignedFormula) (*Result, error) {
	root := newBranch(0)
	e.stats.Branches = 1
	e.addAll(root, initial)

	open := []*branch{root}
	var models []Model
	seen := make(map[string]bool)

	for len(open) > 0 {
		if limit := e.exceeded(open[len(open)-1]); limit != "" {
			return &Result{Status: StatusUndetermined, Models: models, Stats: e.stats, LimitHit: limit}, nil
		}
		b := open[len(open)-1]
		open = open[:len(open)-1]

		if b.closed {
			e.stats.ClosedBranches++
			continue
		}

		wi := e.selectWork(b)
		if wi == nil {
			m := extractModel(b)
			if !e.allModels {
				return &Result{Status: StatusOpen, Models: []Model{m}, Stats: e.stats}, nil
			}
			if fp := m.fingerprint(); !seen[fp] {
				seen[fp] = true
				models = append(models, m)
			}
			continue
		}

		open = append(open, e.apply(b, wi)...)
	}

	if len(models) > 0 {
		return &Result{Status: StatusOpen, Models: models, Stats: e.stats}, nil
	}
	return &Result{Status: StatusClosed, Stats: e.stats}, nil
}

// exceeded names the first exhausted limit, or returns "".
func (e *engine) exceeded(top *branch) string {
	l := e.limits
	if l.MaxNodes > 0 && e.stats.Nodes > l.MaxNodes {
		return "nodes"
	}
	if l.MaxBranches > 0 && e.stats.Branches > l.MaxBranches {
		return "branches"
	}
	if l.MaxConstants > 0 && e.stats.Constants > l.MaxConstants {
		return "constants"
	}
	if l.MaxDepth > 0 && len(top.nodes) > l.MaxDepth {
		return "depth"
	}
	return ""
}

const (
	workProp = iota
	workExistsT
	workForallOnce
	workForallEach
	workExistsEach
	workEvidence
)

type evidenceInstance struct {
	name  string
	terms []formula.Term
	key   string
}

type workItem struct {
	kind     int
	node     *node
	exp      *Expansion
	constant string
	instance evidenceInstance
}

// selectWork picks the next rule to fire on the branch. Alpha rules go
// before beta rules, smaller formulas before larger ones; quantifier
// instantiation and evidence queries run once the propositional work
// is exhausted. A nil return means the branch is saturated.
func (e *engine) selectWork(b *branch) *workItem {
	var bestAlpha, bestBeta *workItem
	var alphaC, betaC int
	var existsT, forallOnce *node

	for _, n := range b.nodes {
		if n.expanded {
			continue
		}
		if q, ok := n.sf.Formula.(*formula.Quantifier); ok && n.sf.Sign != SignM {
			switch {
			case n.sf.Sign == SignT && q.Kind == formula.Existential:
				if existsT == nil {
					existsT = n
				}
			case (n.sf.Sign == SignF || n.sf.Sign == SignN) && q.Kind == formula.Universal:
				if forallOnce == nil {
					forallOnce = n
				}
			}
			continue
		}
		exp := expandSigned(n.sf)
		if exp == nil {
			continue
		}
		c := formula.Complexity(n.sf.Formula)
		if exp.Kind == Alpha {
			if bestAlpha == nil || c < alphaC {
				bestAlpha = &workItem{kind: workProp, node: n, exp: exp}
				alphaC = c
			}
		} else {
			if bestBeta == nil || c < betaC {
				bestBeta = &workItem{kind: workProp, node: n, exp: exp}
				betaC = c
			}
		}
	}

	if bestAlpha != nil {
		return bestAlpha
	}
	if existsT != nil {
		return &workItem{kind: workExistsT, node: existsT}
	}
	if bestBeta != nil {
		return bestBeta
	}
	if forallOnce != nil {
		return &workItem{kind: workForallOnce, node: forallOnce}
	}

	for _, n := range b.nodes {
		q, ok := n.sf.Formula.(*formula.Quantifier)
		if !ok || n.sf.Sign == SignM || n.sf.Sign == SignE {
			continue
		}
		switch {
		case n.sf.Sign == SignT && q.Kind == formula.Universal:
			if c, ok := nextConstantFor(b, n); ok {
				return &workItem{kind: workForallEach, node: n, constant: c}
			}
		case (n.sf.Sign == SignF || n.sf.Sign == SignN) && q.Kind == formula.Existential:
			if c, ok := nextConstantFor(b, n); ok {
				return &workItem{kind: workExistsEach, node: n, constant: c}
			}
		}
	}

	if e.evidence != nil {
		for _, n := range b.nodes {
			inst, ok := evidenceTarget(n.sf.Formula)
			if !ok || b.evidenceDone[inst.key] {
				continue
			}
			return &workItem{kind: workEvidence, node: n, instance: inst}
		}
	}
	return nil
}

// nextConstantFor returns the next branch constant the recurring
// quantifier node has not been instantiated with. An empty name with
// ok true means the branch has no constants yet and one must be
// minted.
func nextConstantFor(b *branch, n *node) (string, bool) {
	if len(b.constants) == 0 {
		return "", true
	}
	for _, c := range b.constants {
		if !b.constDone(n.id, c.Name) {
			return c.Name, true
		}
	}
	return "", false
}

func evidenceTarget(f formula.Formula) (evidenceInstance, bool) {
	if !formula.IsGround(f) {
		return evidenceInstance{}, false
	}
	switch p := f.(type) {
	case *formula.Predicate:
		return evidenceInstance{name: p.Name, terms: p.Terms, key: instanceKey(p.Name, p.Terms)}, true
	case *formula.Bilateral:
		return evidenceInstance{name: p.Name, terms: p.Terms, key: instanceKey(p.Name, p.Terms)}, true
	}
	return evidenceInstance{}, false
}

func instanceKey(name string, terms []formula.Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.Name
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

func instantiate(q *formula.Quantifier, c formula.Term) (restriction, matrix formula.Formula) {
	return formula.Substitute(q.Restriction, q.Bound, c),
		formula.Substitute(q.Matrix, q.Bound, c)
}

// apply fires the selected rule and returns the branches that replace
// b on the open list. Alpha expansions extend b in place.
func (e *engine) apply(b *branch, wi *workItem) []*branch {
	var exp *Expansion
	var evErr error

	switch wi.kind {
	case workProp:
		exp = wi.exp
		wi.node.expanded = true
	case workExistsT:
		exp = e.expandExistsT(b, wi.node)
		wi.node.expanded = true
	case workForallOnce:
		exp = e.expandForallOnce(wi.node)
		wi.node.expanded = true
	case workForallEach:
		exp = e.expandForallEach(b, wi.node, wi.constant)
	case workExistsEach:
		exp = e.expandExistsEach(b, wi.node, wi.constant)
	case workEvidence:
		exp, evErr = e.expandEvidence(b, wi)
	}

	e.stats.Rules++
	kind := EventExpansion
	if wi.kind == workEvidence {
		kind = EventEvidence
	}
	e.tracer.Event(Event{
		Kind:   kind,
		Rule:   exp.Rule,
		Branch: b.id,
		Source: wi.node.sf,
		Added:  exp.Branches,
		Err:    evErr,
	})

	if len(exp.Branches) == 1 {
		e.addAll(b, exp.Branches[0])
		return []*branch{b}
	}

	out := make([]*branch, 0, len(exp.Branches))
	for _, set := range exp.Branches {
		e.nextBranch++
		e.stats.Branches++
		child := b.clone(e.nextBranch)
		e.addAll(child, set)
		out = append(out, child)
	}
	return out
}

func (e *engine) addAll(b *branch, set []SignedFormula) {
	wasClosed := b.closed
	for _, sf := range set {
		if b.closed {
			break
		}
		e.nextNode++
		if b.add(e.nextNode, sf) {
			e.stats.Nodes++
		}
	}
	if b.closed && !wasClosed {
		e.tracer.Event(Event{
			Kind:    EventClosure,
			Branch:  b.id,
			Closure: b.closure,
		})
	}
}

// expandExistsT instantiates a true existential once per branch. The
// witness unifies with an existing constant already known to satisfy
// the restriction; otherwise a fresh constant is minted.
func (e *engine) expandExistsT(b *branch, n *node) *Expansion {
	q := n.sf.Formula.(*formula.Quantifier)
	var witness formula.Term
	found := false
	for _, c := range b.constants {
		p := formula.Substitute(q.Restriction, q.Bound, c)
		if b.hasDefinite(SignT, p.Key()) {
			witness = c
			found = true
			break
		}
	}
	if !found {
		witness = e.mint()
	}
	p, m := instantiate(q, witness)
	return alpha("t-exists", SignedFormula{SignT, p}, SignedFormula{SignT, m})
}

// expandForallOnce handles f and n signed universals. The primary
// branch exhibits a counterexample at a fresh constant; the second
// branch keeps a distinct arbitrary constant, which blocks deriving a
// universal from a lone existential witness.
func (e *engine) expandForallOnce(n *node) *Expansion {
	q := n.sf.Formula.(*formula.Quantifier)
	s := n.sf.Sign
	rule := "f-forall"
	if s == SignN {
		rule = "n-forall"
	}
	c := e.mint()
	a := e.mint()
	pc, qc := instantiate(q, c)
	pa, qa := instantiate(q, a)
	return beta(rule,
		[]SignedFormula{{SignT, pc}, {s, qc}},
		[]SignedFormula{{SignM, pa}, {s, qa}},
	)
}

// expandForallEach instantiates a true universal with one branch
// constant, minting when the branch has none.
func (e *engine) expandForallEach(b *branch, n *node, constName string) *Expansion {
	q := n.sf.Formula.(*formula.Quantifier)
	var c formula.Term
	if constName == "" {
		c = e.mint()
	} else {
		c = formula.Const(constName)
	}
	b.markConstDone(n.id, c.Name)
	p, m := instantiate(q, c)
	return beta("t-forall",
		[]SignedFormula{{SignN, p}},
		[]SignedFormula{{SignT, m}},
	)
}

// expandExistsEach handles f and n signed existentials, one branch
// constant at a time. On a constantless branch it mints a primary and
// an arbitrary constant and adds the arbitrary branch alongside.
func (e *engine) expandExistsEach(b *branch, n *node, constName string) *Expansion {
	q := n.sf.Formula.(*formula.Quantifier)
	s := n.sf.Sign
	rule := "f-exists"
	if s == SignN {
		rule = "n-exists"
	}
	if constName != "" {
		c := formula.Const(constName)
		b.markConstDone(n.id, c.Name)
		p, m := instantiate(q, c)
		return beta(rule,
			[]SignedFormula{{s, p}},
			[]SignedFormula{{s, m}},
		)
	}
	c := e.mint()
	a := e.mint()
	b.markConstDone(n.id, c.Name)
	b.markConstDone(n.id, a.Name)
	pc, qc := instantiate(q, c)
	pa, qa := instantiate(q, a)
	return beta(rule,
		[]SignedFormula{{s, pc}},
		[]SignedFormula{{s, qc}},
		[]SignedFormula{{SignM, pa}, {s, qa}},
	)
}

// expandEvidence queries the provider for one ground predicate
// instance and asserts both bilateral verdicts on the branch. Provider
// failure degrades to an unknown/unknown gap.
func (e *engine) expandEvidence(b *branch, wi *workItem) (*Expansion, error) {
	inst := wi.instance
	b.evidenceDone[inst.key] = true

	names := make([]string, len(inst.terms))
	for i, t := range inst.terms {
		names[i] = t.Name
	}
	ev, err := e.evidence.Evaluate(e.ctx, inst.name, names)
	if err != nil {
		ev = Evidence{}
	}

	pos := formula.NewPredicate(inst.name, inst.terms...)
	neg := formula.NewBilateral(inst.name, true, inst.terms...)
	exp := alpha("evidence",
		SignedFormula{evidenceSign(ev.Positive), pos},
		SignedFormula{evidenceSign(ev.Negative), neg},
	)
	return exp, err
}

func extractModel(b *branch) Model {
	m := Model{Assignments: make(map[string]semantics.Value)}
	for _, n := range b.nodes {
		if !n.sf.Sign.Definite() {
			continue
		}
		if !formula.IsAtomic(n.sf.Formula) || !formula.IsGround(n.sf.Formula) {
			continue
		}
		m.Assignments[n.sf.Formula.Key()] = signValue(n.sf.Sign)
	}
	return m
}

func signValue(s Sign) semantics.Value {
	switch s {
	case SignT:
		return semantics.True
	case SignF:
		return semantics.False
	}
	return semantics.Undefined
}
