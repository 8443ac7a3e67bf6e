package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/wkrq/am"
	"github.com/teranos/wkrq/parser"
	"github.com/teranos/wkrq/tableau"
)

var (
	solveSign   string
	solveMode   string
	solveModels bool
	solveTrace  bool
	solveJSON   bool
)

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve [FORMULA]",
	Short: "Check satisfiability of a signed formula",
	Long: `Check whether a formula can take a truth value.

The sign picks the value: t (true), f (false), e (undefined), or the
meta-signs m (true or false) and n (not true).

Examples:
  wkrq solve "p & q"                   # Can it be true?
  wkrq solve "p | ~p" --sign e         # Can excluded middle be undefined?
  wkrq solve "p | ~p" --sign f         # Can it be false? (no)
  wkrq solve "Human(a) & ~Human(a)" --mode transparent   # glut, satisfiable`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	SolveCmd.Flags().StringVarP(&solveSign, "sign", "s", "t", "Sign to check (t/f/e/m/n)")
	SolveCmd.Flags().StringVarP(&solveMode, "mode", "m", "wkrq", "Syntax mode (wkrq/transparent/bilateral/mixed)")
	SolveCmd.Flags().BoolVar(&solveModels, "models", false, "Enumerate all models")
	SolveCmd.Flags().BoolVar(&solveTrace, "trace", false, "Print the rule firings")
	SolveCmd.Flags().BoolVarP(&solveJSON, "json", "j", false, "Output as JSON")
}

type solveOutput struct {
	Formula  string              `json:"formula"`
	Sign     string              `json:"sign"`
	Status   string              `json:"status"`
	LimitHit string              `json:"limit_hit,omitempty"`
	Models   []map[string]string `json:"models,omitempty"`
	Stats    tableau.Stats       `json:"stats"`
}

func runSolve(cmd *cobra.Command, args []string) error {
	mode, err := parser.ParseMode(solveMode)
	if err != nil {
		return err
	}
	sign, err := tableau.ParseSign(solveSign)
	if err != nil {
		return err
	}
	f, err := parser.ParseWithMode(args[0], mode)
	if err != nil {
		return err
	}

	cfg, err := am.Load()
	if err != nil {
		return err
	}
	opts, err := baseOptions(cfg, mode)
	if err != nil {
		return err
	}
	if solveModels {
		opts = append(opts, tableau.WithAllModels())
	}
	var tracer *tableau.CollectingTracer
	if solveTrace {
		tracer = &tableau.CollectingTracer{}
		opts = append(opts, tableau.WithTracer(tracer))
	}

	res, err := solveFormula(f, sign, mode, opts...)
	if err != nil {
		return err
	}

	if solveJSON {
		out := solveOutput{
			Formula:  f.String(),
			Sign:     sign.String(),
			Status:   res.Status.String(),
			LimitHit: res.LimitHit,
			Models:   modelsJSON(res.Models),
			Stats:    res.Stats,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	pterm.Printf("%s:%s is %s\n", pterm.Yellow(sign.String()), pterm.White(f.String()), statusLabel(res.Status))
	if res.LimitHit != "" {
		pterm.Printf("  %s\n", pterm.Yellow(fmt.Sprintf("search stopped: %s limit reached", res.LimitHit)))
	}
	if len(res.Models) > 0 {
		printModels(res.Models)
	}
	if tracer != nil {
		printTrace(tracer.Events())
	}
	return nil
}
