package formula

import "unicode"

// TermKind discriminates constants from variables.
type TermKind uint8

const (
	// TermConstant is a ground individual (lower-case identifier).
	TermConstant TermKind = iota
	// TermVariable is a quantifiable variable (upper-case identifier).
	TermVariable
)

// Term is a constant or variable occurring in predicates and quantifiers.
// Terms are small immutable values and are copied freely.
type Term struct {
	Name string
	Kind TermKind
}

// Const builds a constant term.
func Const(name string) Term {
	return Term{Name: name, Kind: TermConstant}
}

// Var builds a variable term.
func Var(name string) Term {
	return Term{Name: name, Kind: TermVariable}
}

// TermFromName classifies an identifier by its leading rune: upper-case
// identifiers are variables, everything else is a constant.
func TermFromName(name string) Term {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return Var(name)
		}
		break
	}
	return Const(name)
}

// IsVariable reports whether the term is a variable.
func (t Term) IsVariable() bool { return t.Kind == TermVariable }

// IsConstant reports whether the term is a ground constant.
func (t Term) IsConstant() bool { return t.Kind == TermConstant }

func (t Term) String() string { return t.Name }
