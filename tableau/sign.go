// Package tableau implements a signed tableau prover for weak Kleene
// logic with restricted quantification. Formulas are decorated with one
// of six signs. The definite signs t, f and e assert a truth value; the
// meta-signs m and n branch over the values they cover ("meaningful"
// and "nontrue"); v is notation for an arbitrary value and never
// appears on a branch.
package tableau

import (
	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/formula"
)

// Sign decorates a formula on a tableau branch.
type Sign uint8

const (
	SignT Sign = iota
	SignF
	SignE
	SignM
	SignN
	SignV
)

func (s Sign) String() string {
	switch s {
	case SignT:
		return "t"
	case SignF:
		return "f"
	case SignE:
		return "e"
	case SignM:
		return "m"
	case SignN:
		return "n"
	case SignV:
		return "v"
	}
	return "?"
}

// Definite reports whether the sign asserts a single truth value.
// Only definite signs participate in branch closure.
func (s Sign) Definite() bool {
	return s == SignT || s == SignF || s == SignE
}

// ParseSign reads a sign from its one-letter name.
func ParseSign(name string) (Sign, error) {
	switch name {
	case "t":
		return SignT, nil
	case "f":
		return SignF, nil
	case "e":
		return SignE, nil
	case "m":
		return SignM, nil
	case "n":
		return SignN, nil
	case "v":
		return SignV, nil
	}
	return SignT, errors.Newf("unknown sign %q", name)
}

// SignedFormula is a formula decorated with a sign.
type SignedFormula struct {
	Sign    Sign
	Formula formula.Formula
}

// Key identifies the signed formula on a branch. Two signed formulas
// with the same key are the same node content.
func (sf SignedFormula) Key() string {
	return sf.Sign.String() + ":" + sf.Formula.Key()
}

func (sf SignedFormula) String() string {
	return sf.Sign.String() + ":" + sf.Formula.String()
}
