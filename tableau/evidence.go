package tableau

import "context"

// EvidenceStatus is one verdict from an evidence provider.
type EvidenceStatus uint8

const (
	EvidenceUnknown EvidenceStatus = iota
	EvidenceSupported
	EvidenceRefuted
)

func (s EvidenceStatus) String() string {
	switch s {
	case EvidenceSupported:
		return "supported"
	case EvidenceRefuted:
		return "refuted"
	}
	return "unknown"
}

// Evidence is a provider's verdict on a ground predicate instance.
// Positive covers R(…) and Negative covers R*(…); the two are
// independent, so gluts and gaps are both expressible.
type Evidence struct {
	Positive EvidenceStatus
	Negative EvidenceStatus
}

// EvidenceProvider supplies external verdicts for ground predicate
// instances during bilateral reasoning. The engine queries each
// instance at most once per branch.
type EvidenceProvider interface {
	Evaluate(ctx context.Context, predicate string, terms []string) (Evidence, error)
}

// evidenceSign maps a verdict to the sign asserted on the branch.
// Unknown becomes f, so a doubly unknown instance lands as an explicit
// gap; the distinction from refuted survives only in the trace.
func evidenceSign(s EvidenceStatus) Sign {
	if s == EvidenceSupported {
		return SignT
	}
	return SignF
}
