package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wkrq/semantics"
	"github.com/teranos/wkrq/tableau"
)

func TestModelJSON(t *testing.T) {
	m := tableau.Model{Assignments: map[string]semantics.Value{
		"p":        semantics.True,
		"Human(a)": semantics.Undefined,
	}}
	out := modelJSON(m)
	assert.Equal(t, "t", out["p"])
	assert.Equal(t, "e", out["Human(a)"])
}

func TestStatusLabel(t *testing.T) {
	assert.True(t, strings.Contains(statusLabel(tableau.StatusOpen), "satisfiable"))
	assert.True(t, strings.Contains(statusLabel(tableau.StatusClosed), "unsatisfiable"))
	assert.True(t, strings.Contains(statusLabel(tableau.StatusUndetermined), "undetermined"))
}

func TestVerdictLabel(t *testing.T) {
	require.Contains(t, verdictLabel(&tableau.InferenceResult{Valid: true}), "valid")
	require.Contains(t, verdictLabel(&tableau.InferenceResult{}), "invalid")
	require.Contains(t, verdictLabel(&tableau.InferenceResult{Undetermined: true}), "undetermined")
}
