package parser

import (
	"unicode"

	"github.com/teranos/wkrq/errors"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNot
	tokAnd
	tokOr
	tokImplies
	tokTurnstile
	tokStar
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokForall
	tokExists
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokNot:
		return "~"
	case tokAnd:
		return "&"
	case tokOr:
		return "|"
	case tokImplies:
		return "->"
	case tokTurnstile:
		return "|-"
	case tokStar:
		return "*"
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	case tokLBracket:
		return "["
	case tokRBracket:
		return "]"
	case tokComma:
		return ","
	case tokForall:
		return "forall"
	case tokExists:
		return "exists"
	}
	return "?"
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// tokenize splits the input into tokens. ASCII and unicode operator
// spellings are accepted interchangeably: ~/¬, &/∧, |/∨, ->/→,
// |-/⊢ and forall/∀, exists/∃.
func tokenize(input string) ([]token, error) {
	runes := []rune(input)
	var toks []token
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '~' || r == '¬':
			toks = append(toks, token{tokNot, "~", i})
			i++
		case r == '&' || r == '∧':
			toks = append(toks, token{tokAnd, "&", i})
			i++
		case r == '∨':
			toks = append(toks, token{tokOr, "|", i})
			i++
		case r == '|':
			if i+1 < len(runes) && runes[i+1] == '-' {
				toks = append(toks, token{tokTurnstile, "|-", i})
				i += 2
			} else {
				toks = append(toks, token{tokOr, "|", i})
				i++
			}
		case r == '⊢':
			toks = append(toks, token{tokTurnstile, "|-", i})
			i++
		case r == '→':
			toks = append(toks, token{tokImplies, "->", i})
			i++
		case r == '-':
			if i+1 < len(runes) && runes[i+1] == '>' {
				toks = append(toks, token{tokImplies, "->", i})
				i += 2
			} else {
				return nil, errors.Wrapf(errors.ErrParse, "stray '-' at position %d", i)
			}
		case r == '*':
			toks = append(toks, token{tokStar, "*", i})
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case r == '[':
			toks = append(toks, token{tokLBracket, "[", i})
			i++
		case r == ']':
			toks = append(toks, token{tokRBracket, "]", i})
			i++
		case r == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case r == '∀':
			toks = append(toks, token{tokForall, "forall", i})
			i++
		case r == '∃':
			toks = append(toks, token{tokExists, "exists", i})
			i++
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			word := string(runes[start:i])
			switch word {
			case "forall":
				toks = append(toks, token{tokForall, word, start})
			case "exists":
				toks = append(toks, token{tokExists, word, start})
			default:
				toks = append(toks, token{tokIdent, word, start})
			}
		default:
			return nil, errors.Wrapf(errors.ErrParse, "unexpected character %q at position %d", string(r), i)
		}
	}
	toks = append(toks, token{tokEOF, "", len(runes)})
	return toks, nil
}
