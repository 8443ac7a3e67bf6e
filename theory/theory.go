// Package theory manages a persistent collection of asserted
// statements and answers questions against it with the bilateral
// tableau engine. Because reasoning is paraconsistent, a theory with
// conflicting statements stays usable: conflicts surface as gluts in
// the information state instead of poisoning every query.
package theory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/teranos/wkrq/acrq"
	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/formula"
	"github.com/teranos/wkrq/logger"
	"github.com/teranos/wkrq/parser"
	"github.com/teranos/wkrq/tableau"
)

// Statement is one asserted formula with its provenance.
type Statement struct {
	ID      string    `json:"id"`
	Input   string    `json:"input"`
	Formula string    `json:"formula"`
	AddedAt time.Time `json:"added_at"`
}

type document struct {
	Mode       string      `json:"mode"`
	NextID     int         `json:"next_id"`
	Statements []Statement `json:"statements"`
}

// Manager owns one theory file. It is not safe for concurrent use;
// callers serialize access the way the CLI does, one command per
// process.
type Manager struct {
	path string
	mode parser.Mode
	doc  document

	// parsed caches formulas by statement ID.
	parsed map[string]formula.Formula
}

// NewManager loads the theory at path, creating an empty one when the
// file does not exist.
func NewManager(path string, mode parser.Mode) (*Manager, error) {
	m := &Manager{
		path:   path,
		mode:   mode,
		doc:    document{Mode: mode.String(), NextID: 1},
		parsed: make(map[string]formula.Formula),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading theory %s", path)
	}
	if err := json.Unmarshal(data, &m.doc); err != nil {
		return nil, errors.Wrapf(err, "theory %s is corrupt", path)
	}
	if m.doc.Mode != "" {
		if m.mode, err = parser.ParseMode(m.doc.Mode); err != nil {
			return nil, err
		}
	}
	if m.doc.NextID < 1 {
		m.doc.NextID = 1
	}

	for _, st := range m.doc.Statements {
		f, err := parser.ParseWithMode(st.Formula, m.mode)
		if err != nil {
			return nil, errors.Wrapf(err, "statement %s in %s no longer parses", st.ID, path)
		}
		m.parsed[st.ID] = f
	}
	return m, nil
}

// Save writes the theory back to its file.
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding theory")
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing theory %s", m.path)
	}
	return nil
}

// Mode returns the syntax mode the theory was created with.
func (m *Manager) Mode() parser.Mode { return m.mode }

// Assert parses and records a statement, returning it with its
// assigned ID.
func (m *Manager) Assert(input string) (*Statement, error) {
	f, err := parser.ParseWithMode(input, m.mode)
	if err != nil {
		return nil, err
	}
	canonical := f.String()
	for _, st := range m.doc.Statements {
		if st.Formula == canonical {
			return nil, errors.Newf("statement %s already asserts %s", st.ID, canonical)
		}
	}

	st := Statement{
		ID:      fmt.Sprintf("s%d", m.doc.NextID),
		Input:   input,
		Formula: canonical,
		AddedAt: time.Now().UTC(),
	}
	m.doc.NextID++
	m.doc.Statements = append(m.doc.Statements, st)
	m.parsed[st.ID] = f
	logger.Logger.Debugw("asserted statement", "id", st.ID, "formula", canonical)
	return &st, nil
}

// Retract removes a statement by ID.
func (m *Manager) Retract(id string) error {
	for i, st := range m.doc.Statements {
		if st.ID == id {
			m.doc.Statements = append(m.doc.Statements[:i], m.doc.Statements[i+1:]...)
			delete(m.parsed, id)
			return nil
		}
	}
	return errors.Wrapf(errors.ErrNotFound, "statement %s", id)
}

// Statements lists the asserted statements in insertion order.
func (m *Manager) Statements() []Statement {
	out := make([]Statement, len(m.doc.Statements))
	copy(out, m.doc.Statements)
	return out
}

// Clear drops every statement but keeps the ID counter monotone, so
// retracted IDs are never reused across a clear.
func (m *Manager) Clear() {
	m.doc.Statements = nil
	m.parsed = make(map[string]formula.Formula)
}

func (m *Manager) formulas() []formula.Formula {
	out := make([]formula.Formula, 0, len(m.doc.Statements))
	for _, st := range m.doc.Statements {
		out = append(out, m.parsed[st.ID])
	}
	return out
}

// CheckResult is the information state of the theory: whether it is
// jointly satisfiable, and which instances carry conflicting or
// explicitly absent evidence.
type CheckResult struct {
	Satisfiable  bool
	Undetermined bool
	Model        *tableau.Model
	Gluts        []string
	Gaps         []string
}

// Check tests joint satisfiability of the theory under bilateral
// semantics and reports its gluts and gaps.
func (m *Manager) Check(opts ...tableau.Option) (*CheckResult, error) {
	fs := m.formulas()
	if len(fs) == 0 {
		return &CheckResult{Satisfiable: true}, nil
	}

	signed := make([]tableau.SignedFormula, len(fs))
	for i, f := range fs {
		signed[i] = tableau.SignedFormula{Sign: tableau.SignT, Formula: f}
	}
	res, err := acrq.SolveAll(signed, opts...)
	if err != nil {
		return nil, err
	}

	cr := &CheckResult{}
	switch res.Status {
	case tableau.StatusOpen:
		cr.Satisfiable = true
		if len(res.Models) > 0 {
			cr.Model = &res.Models[0]
			cr.Gluts = acrq.Gluts(res.Models[0])
			cr.Gaps = acrq.Gaps(res.Models[0])
		}
	case tableau.StatusUndetermined:
		cr.Undetermined = true
	}
	return cr, nil
}

// Infer asks whether the theory entails the given formula.
func (m *Manager) Infer(input string, opts ...tableau.Option) (*tableau.InferenceResult, error) {
	conclusion, err := parser.ParseWithMode(input, m.mode)
	if err != nil {
		return nil, err
	}
	return acrq.Entails(m.formulas(), conclusion, opts...)
}
