package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, 10000, cfg.Solver.MaxNodes)
	assert.Equal(t, 64, cfg.Solver.MaxConstants)
	assert.Equal(t, "transparent", cfg.Theory.Mode)
	assert.Equal(t, "none", cfg.Evidence.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Evidence.OpenAI.Model)
}

func TestSolverLimits(t *testing.T) {
	cfg := SolverConfig{MaxNodes: 42, MaxDepth: 7, MaxBranches: 3, MaxConstants: 5}
	limits := cfg.Limits()
	assert.Equal(t, 42, limits.MaxNodes)
	assert.Equal(t, 7, limits.MaxDepth)
	assert.Equal(t, 3, limits.MaxBranches)
	assert.Equal(t, 5, limits.MaxConstants)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wkrq.toml")
	content := `
[solver]
max_nodes = 500

[theory]
mode = "bilateral"

[evidence]
provider = "openai"

[evidence.openai]
model = "gpt-4o"
requests_per_second = 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Solver.MaxNodes)
	// Unset keys keep their defaults.
	assert.Equal(t, 1000, cfg.Solver.MaxDepth)
	assert.Equal(t, "bilateral", cfg.Theory.Mode)
	assert.Equal(t, "openai", cfg.Evidence.Provider)
	assert.Equal(t, "gpt-4o", cfg.Evidence.OpenAI.Model)
	assert.InDelta(t, 2.5, cfg.Evidence.OpenAI.RequestsPerSecond, 1e-9)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
