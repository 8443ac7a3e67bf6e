// Package evidence provides bilateral evidence providers: sources of
// external verdicts about ground predicate instances. A provider
// answers independently for the positive and negative side, so it can
// report gluts and gaps as well as classical verdicts.
package evidence

import (
	"context"
	"strings"
	"sync"

	"github.com/teranos/wkrq/tableau"
)

// StubProvider serves verdicts from a fixed table. Instances that were
// never set come back unknown on both sides.
type StubProvider struct {
	mu       sync.RWMutex
	verdicts map[string]tableau.Evidence
}

func NewStubProvider() *StubProvider {
	return &StubProvider{verdicts: make(map[string]tableau.Evidence)}
}

// Set records the verdict for one ground instance.
func (s *StubProvider) Set(predicate string, terms []string, ev tableau.Evidence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verdicts[instanceKey(predicate, terms)] = ev
}

func (s *StubProvider) Evaluate(_ context.Context, predicate string, terms []string) (tableau.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verdicts[instanceKey(predicate, terms)], nil
}

func instanceKey(predicate string, terms []string) string {
	return predicate + "(" + strings.Join(terms, ",") + ")"
}
