// Package parser reads formulas and inferences from text. The surface
// syntax uses ~ & | -> with the usual precedence, restricted
// quantifiers written [forall X Human(X)]Mortal(X), and |- between
// premises and conclusion. Identifiers starting with an uppercase
// letter are variables; lowercase identifiers are constants or
// propositional atoms.
package parser

import (
	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/formula"
)

// Mode selects which predicate syntax is accepted.
type Mode uint8

const (
	// ModeWKrQ accepts plain predicates only; star syntax is an
	// error.
	ModeWKrQ Mode = iota
	// ModeTransparent is the bilateral mode where negation carries
	// the work: ~Human(a) is accepted and later rewritten to
	// Human*(a), while writing the star directly is an error.
	ModeTransparent
	// ModeBilateral exposes the star syntax and forbids negating
	// predicates directly.
	ModeBilateral
	// ModeMixed accepts both spellings.
	ModeMixed
)

func (m Mode) String() string {
	switch m {
	case ModeWKrQ:
		return "wkrq"
	case ModeTransparent:
		return "transparent"
	case ModeBilateral:
		return "bilateral"
	case ModeMixed:
		return "mixed"
	}
	return "?"
}

// ParseMode reads a mode name.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "wkrq":
		return ModeWKrQ, nil
	case "transparent":
		return ModeTransparent, nil
	case "bilateral":
		return ModeBilateral, nil
	case "mixed":
		return ModeMixed, nil
	}
	return ModeWKrQ, errors.Newf("unknown syntax mode %q", name)
}

// Inference is a parsed entailment question.
type Inference struct {
	Premises   []formula.Formula
	Conclusion formula.Formula
}

type parser struct {
	toks []token
	pos  int
	mode Mode
}

// Parse reads a single formula in wKrQ syntax.
func Parse(input string) (formula.Formula, error) {
	return ParseWithMode(input, ModeWKrQ)
}

// ParseWithMode reads a single formula under the given syntax mode.
func ParseWithMode(input string, mode Mode) (formula.Formula, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, mode: mode}
	f, err := p.formula()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	if err := formula.Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseInference reads "premise, premise |- conclusion". The premise
// list may be empty, which asks for validity of the conclusion.
func ParseInference(input string, mode Mode) (*Inference, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, mode: mode}

	inf := &Inference{}
	if p.peek().kind != tokTurnstile {
		for {
			f, err := p.formula()
			if err != nil {
				return nil, err
			}
			inf.Premises = append(inf.Premises, f)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if err := p.expect(tokTurnstile); err != nil {
		return nil, err
	}
	conclusion, err := p.formula()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	inf.Conclusion = conclusion

	for _, f := range inf.Premises {
		if err := formula.Validate(f); err != nil {
			return nil, err
		}
	}
	if err := formula.Validate(inf.Conclusion); err != nil {
		return nil, err
	}
	return inf, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) error {
	t := p.peek()
	if t.kind != kind {
		return errors.Wrapf(errors.ErrParse,
			"expected %s but found %s at position %d", kind, t.kind, t.pos)
	}
	p.next()
	return nil
}

// formula := implication
func (p *parser) formula() (formula.Formula, error) {
	return p.implication()
}

// implication is right associative: a -> b -> c is a -> (b -> c).
func (p *parser) implication() (formula.Formula, error) {
	left, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokImplies {
		return left, nil
	}
	p.next()
	right, err := p.implication()
	if err != nil {
		return nil, err
	}
	return formula.Implies(left, right), nil
}

func (p *parser) disjunction() (formula.Formula, error) {
	left, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		left = formula.Or(left, right)
	}
	return left, nil
}

func (p *parser) conjunction() (formula.Formula, error) {
	left, err := p.negation()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.negation()
		if err != nil {
			return nil, err
		}
		left = formula.And(left, right)
	}
	return left, nil
}

func (p *parser) negation() (formula.Formula, error) {
	if p.peek().kind != tokNot {
		return p.primary()
	}
	pos := p.next().pos
	sub, err := p.negation()
	if err != nil {
		return nil, err
	}
	if p.mode == ModeBilateral && formula.IsAtomic(sub) {
		return nil, errors.Wrapf(errors.ErrParse,
			"negated predicate at position %d: bilateral mode requires the starred form", pos)
	}
	return formula.Not(sub), nil
}

func (p *parser) primary() (formula.Formula, error) {
	switch t := p.peek(); t.kind {
	case tokLParen:
		p.next()
		f, err := p.formula()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return f, nil
	case tokLBracket:
		return p.quantifier()
	case tokIdent:
		return p.atomOrPredicate()
	default:
		return nil, errors.Wrapf(errors.ErrParse,
			"unexpected %s at position %d", t.kind, t.pos)
	}
}

// quantifier := "[" ("forall"|"exists") VAR restriction "]" matrix
// The matrix binds as tightly as a negation, so a compound matrix
// needs parentheses.
func (p *parser) quantifier() (formula.Formula, error) {
	if err := p.expect(tokLBracket); err != nil {
		return nil, err
	}

	var kind formula.QuantKind
	switch t := p.next(); t.kind {
	case tokForall:
		kind = formula.Universal
	case tokExists:
		kind = formula.Existential
	default:
		return nil, errors.Wrapf(errors.ErrParse,
			"expected forall or exists but found %s at position %d", t.kind, t.pos)
	}

	v := p.next()
	if v.kind != tokIdent {
		return nil, errors.Wrapf(errors.ErrParse,
			"expected a variable but found %s at position %d", v.kind, v.pos)
	}
	bound := formula.TermFromName(v.text)
	if !bound.IsVariable() {
		return nil, errors.Wrapf(errors.ErrParse,
			"quantified variable %q must start with an uppercase letter (position %d)", v.text, v.pos)
	}

	restriction, err := p.formula()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	matrix, err := p.negation()
	if err != nil {
		return nil, err
	}

	return &formula.Quantifier{
		Kind:        kind,
		Bound:       bound,
		Restriction: restriction,
		Matrix:      matrix,
	}, nil
}

func (p *parser) atomOrPredicate() (formula.Formula, error) {
	name := p.next()

	starred := false
	if p.peek().kind == tokStar {
		if p.mode != ModeBilateral && p.mode != ModeMixed {
			return nil, errors.Wrapf(errors.ErrParse,
				"star syntax at position %d is only available in bilateral and mixed modes", p.peek().pos)
		}
		p.next()
		starred = true
	}

	if p.peek().kind != tokLParen {
		if formula.TermFromName(name.text).IsVariable() {
			return nil, errors.Wrapf(errors.ErrParse,
				"bare variable %q at position %d is not a formula", name.text, name.pos)
		}
		if starred {
			return formula.NewBilateral(name.text, true), nil
		}
		return formula.NewAtom(name.text), nil
	}

	p.next()
	var terms []formula.Term
	for {
		t := p.next()
		if t.kind != tokIdent {
			return nil, errors.Wrapf(errors.ErrParse,
				"expected a term but found %s at position %d", t.kind, t.pos)
		}
		terms = append(terms, formula.TermFromName(t.text))
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	if err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	if starred {
		return formula.NewBilateral(name.text, true, terms...), nil
	}
	return formula.NewPredicate(name.text, terms...), nil
}
