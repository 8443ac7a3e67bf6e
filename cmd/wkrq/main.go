package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/wkrq/cmd/wkrq/commands"
	"github.com/teranos/wkrq/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wkrq",
	Short: "wkrq - Weak Kleene tableau prover with restricted quantification",
	Long: `wkrq - Tableau reasoning in weak Kleene logic.

wkrq decides satisfiability, validity and entailment in a three-valued
logic where undefinedness is contagious, using a six-sign tableau
calculus with restricted quantifiers. The bilateral modes add
paraconsistent reasoning: contradictory evidence becomes a glut
instead of collapsing the theory.

Available commands:
  solve   - Check satisfiability of a signed formula
  valid   - Check validity of a formula
  entails - Check an inference (premises |- conclusion)
  theory  - Manage a persistent theory and reason over it
  version - Show version information

Examples:
  wkrq solve "p | ~p" --sign e         # Can excluded middle be undefined?
  wkrq valid "p | ~p"                  # Is it valid?
  wkrq entails "[forall X Human(X)]Mortal(X), Human(socrates) |- Mortal(socrates)"
  wkrq theory add "Human(socrates)"    # Assert into the theory
  wkrq theory check                    # Satisfiability, gluts and gaps`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(false, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.SolveCmd)
	rootCmd.AddCommand(commands.ValidCmd)
	rootCmd.AddCommand(commands.EntailsCmd)
	rootCmd.AddCommand(commands.TheoryCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
