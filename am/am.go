// Package am holds the wkrq configuration, loaded from TOML files and
// WKRQ_ environment variables via Viper.
package am

import "github.com/teranos/wkrq/tableau"

// Config represents the core wkrq configuration
type Config struct {
	Solver   SolverConfig   `mapstructure:"solver"`
	Theory   TheoryConfig   `mapstructure:"theory"`
	Evidence EvidenceConfig `mapstructure:"evidence"`
}

// SolverConfig bounds tableau construction. Zero values mean
// unlimited; hitting any bound yields an undetermined verdict.
type SolverConfig struct {
	MaxNodes     int `mapstructure:"max_nodes"`
	MaxDepth     int `mapstructure:"max_depth"`
	MaxBranches  int `mapstructure:"max_branches"`
	MaxConstants int `mapstructure:"max_constants"`
}

// Limits converts the configured bounds for the engine.
func (c SolverConfig) Limits() tableau.Limits {
	return tableau.Limits{
		MaxNodes:     c.MaxNodes,
		MaxDepth:     c.MaxDepth,
		MaxBranches:  c.MaxBranches,
		MaxConstants: c.MaxConstants,
	}
}

// TheoryConfig configures the persistent theory store
type TheoryConfig struct {
	Path string `mapstructure:"path"` // theory file (default: ~/.wkrq/theory.json)
	Mode string `mapstructure:"mode"` // syntax mode: wkrq, transparent, bilateral, mixed
}

// EvidenceConfig selects the bilateral evidence provider
type EvidenceConfig struct {
	Provider string               `mapstructure:"provider"` // none, openai
	OpenAI   OpenAIEvidenceConfig `mapstructure:"openai"`
}

// OpenAIEvidenceConfig configures the LLM-backed provider
type OpenAIEvidenceConfig struct {
	APIKey            string  `mapstructure:"api_key"`
	Model             string  `mapstructure:"model"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}
