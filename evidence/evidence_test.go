package evidence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/tableau"
)

func TestStubProviderDefaultsToUnknown(t *testing.T) {
	s := NewStubProvider()
	ev, err := s.Evaluate(context.Background(), "Flying", []string{"tweety"})
	require.NoError(t, err)
	assert.Equal(t, tableau.EvidenceUnknown, ev.Positive)
	assert.Equal(t, tableau.EvidenceUnknown, ev.Negative)
}

func TestStubProviderServesTable(t *testing.T) {
	s := NewStubProvider()
	s.Set("Flying", []string{"tweety"}, tableau.Evidence{
		Positive: tableau.EvidenceSupported,
		Negative: tableau.EvidenceRefuted,
	})

	ev, err := s.Evaluate(context.Background(), "Flying", []string{"tweety"})
	require.NoError(t, err)
	assert.Equal(t, tableau.EvidenceSupported, ev.Positive)
	assert.Equal(t, tableau.EvidenceRefuted, ev.Negative)

	// Different arguments are a different instance.
	ev, err = s.Evaluate(context.Background(), "Flying", []string{"opus"})
	require.NoError(t, err)
	assert.Equal(t, tableau.EvidenceUnknown, ev.Positive)
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	require.Error(t, err)
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want tableau.Evidence
	}{
		{
			"plain json",
			`{"positive":"supported","negative":"refuted"}`,
			tableau.Evidence{Positive: tableau.EvidenceSupported, Negative: tableau.EvidenceRefuted},
		},
		{
			"fenced json",
			"```json\n{\"positive\":\"unknown\",\"negative\":\"unknown\"}\n```",
			tableau.Evidence{},
		},
		{
			"case insensitive",
			`{"positive":"Supported","negative":"UNKNOWN"}`,
			tableau.Evidence{Positive: tableau.EvidenceSupported},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := parseVerdict(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestParseVerdictFailures(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"positive":"maybe","negative":"unknown"}`} {
		_, err := parseVerdict(raw)
		require.Error(t, err, "raw %q", raw)
		assert.True(t, errors.Is(err, errors.ErrProviderFailure))
	}
}
