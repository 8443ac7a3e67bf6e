package tableau

// EventKind distinguishes the records a Tracer receives.
type EventKind uint8

const (
	// EventExpansion is a rule firing on a branch.
	EventExpansion EventKind = iota
	// EventClosure is a branch closing on a pair of definite signs.
	EventClosure
	// EventEvidence is an evidence provider call, successful or not.
	EventEvidence
)

func (k EventKind) String() string {
	switch k {
	case EventExpansion:
		return "expand"
	case EventClosure:
		return "close"
	case EventEvidence:
		return "evidence"
	}
	return "?"
}

// Event is one step of tableau construction. Tracers observe every
// rule firing, including those on branches that later close.
type Event struct {
	Kind   EventKind
	Rule   string
	Branch int
	// Source is the signed formula the rule fired on. Unset for
	// closure events.
	Source SignedFormula
	// Added holds the signed formulas introduced, one slice per
	// resulting branch.
	Added   [][]SignedFormula
	Closure *Closure
	// Err records an evidence provider failure. The branch receives
	// an unknown/unknown gap in that case.
	Err error
}

// Tracer observes tableau construction. Implementations must not
// mutate anything they are handed; the engine ignores tracer state
// entirely.
type Tracer interface {
	Event(Event)
}

type nopTracer struct{}

func (nopTracer) Event(Event) {}

// CollectingTracer records every event for later inspection. It backs
// the CLI trace output and is handy in tests.
type CollectingTracer struct {
	events []Event
}

func (t *CollectingTracer) Event(ev Event) {
	t.events = append(t.events, ev)
}

// Events returns the recorded events in firing order.
func (t *CollectingTracer) Events() []Event {
	return t.events
}
