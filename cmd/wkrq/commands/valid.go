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
	validMode  string
	validTrace bool
	validJSON  bool
)

// ValidCmd represents the valid command
var ValidCmd = &cobra.Command{
	Use:   "valid [FORMULA]",
	Short: "Check validity of a formula",
	Long: `Check whether a formula holds under every assignment.

Validity is truth preservation: the tableau for the nontrue formula
must close. An invalid formula comes with a countermodel.

Examples:
  wkrq valid "p | ~p"        # valid
  wkrq valid "p -> q"        # invalid, countermodel shown`,
	Args: cobra.ExactArgs(1),
	RunE: runValid,
}

func init() {
	ValidCmd.Flags().StringVarP(&validMode, "mode", "m", "wkrq", "Syntax mode (wkrq/transparent/bilateral/mixed)")
	ValidCmd.Flags().BoolVar(&validTrace, "trace", false, "Print the rule firings")
	ValidCmd.Flags().BoolVarP(&validJSON, "json", "j", false, "Output as JSON")
}

type verdictOutput struct {
	Formula      string            `json:"formula,omitempty"`
	Premises     []string          `json:"premises,omitempty"`
	Conclusion   string            `json:"conclusion,omitempty"`
	Valid        bool              `json:"valid"`
	Undetermined bool              `json:"undetermined"`
	Countermodel map[string]string `json:"countermodel,omitempty"`
	Stats        tableau.Stats     `json:"stats"`
}

func runValid(cmd *cobra.Command, args []string) error {
	mode, err := parser.ParseMode(validMode)
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
	var tracer *tableau.CollectingTracer
	if validTrace {
		tracer = &tableau.CollectingTracer{}
		opts = append(opts, tableau.WithTracer(tracer))
	}

	res, err := checkEntailment(nil, f, mode, opts...)
	if err != nil {
		return err
	}

	if validJSON {
		out := verdictOutput{
			Formula:      f.String(),
			Valid:        res.Valid,
			Undetermined: res.Undetermined,
			Stats:        res.Stats,
		}
		if res.Countermodel != nil {
			out.Countermodel = modelJSON(*res.Countermodel)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	pterm.Printf("%s is %s\n", pterm.White(f.String()), verdictLabel(res))
	if res.Countermodel != nil {
		pterm.Printf("%s\n", pterm.LightCyan("Countermodel:"))
		printModel(*res.Countermodel, "  ")
	}
	if tracer != nil {
		printTrace(tracer.Events())
	}
	return nil
}
