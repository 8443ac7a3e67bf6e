// Package sym defines canonical glyphs for wkrq notation and CLI
// markers. These symbols are stable across the parser, the renderer
// and documentation: the parser accepts them as input spellings and
// the CLI uses them in output.
package sym

// Logical notation, accepted by the parser alongside the ASCII
// spellings and used when rendering formulas.
const (
	Forall    = "∀" // restricted universal quantifier
	Exists    = "∃" // restricted existential quantifier
	Not       = "¬" // negation (ASCII: ~)
	And       = "∧" // conjunction (ASCII: &)
	Or        = "∨" // disjunction (ASCII: |)
	Implies   = "→" // implication (ASCII: ->)
	Turnstile = "⊢" // entailment (ASCII: |-)
	Star      = "*" // bilateral negative predicate marker
)

// CLI markers.
const (
	OK      = "✓" // action succeeded
	Closed  = "✗" // branch closed
	Step    = "→" // rule firing in a trace
	Queried = "?" // evidence provider call
)
