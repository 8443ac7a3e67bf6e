package am

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Solver defaults mirror tableau.DefaultLimits
	v.SetDefault("solver.max_nodes", 10000)
	v.SetDefault("solver.max_depth", 1000)
	v.SetDefault("solver.max_branches", 2000)
	v.SetDefault("solver.max_constants", 64)

	// Theory defaults
	v.SetDefault("theory.path", defaultTheoryPath())
	v.SetDefault("theory.mode", "transparent")

	// Evidence defaults
	v.SetDefault("evidence.provider", "none")
	v.SetDefault("evidence.openai.model", "gpt-4o-mini")
	v.SetDefault("evidence.openai.requests_per_second", 1.0)
}

func defaultTheoryPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "theory.json"
	}
	return filepath.Join(homeDir, ".wkrq", "theory.json")
}
