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
	entailsMode  string
	entailsTrace bool
	entailsJSON  bool
)

// EntailsCmd represents the entails command
var EntailsCmd = &cobra.Command{
	Use:   "entails [INFERENCE]",
	Short: "Check an inference (premises |- conclusion)",
	Long: `Check whether premises entail a conclusion.

The inference is written with |- (or ⊢) between comma-separated
premises and the conclusion. An empty premise list asks for validity.

Examples:
  wkrq entails "[forall X Human(X)]Mortal(X), Human(socrates) |- Mortal(socrates)"
  wkrq entails "p |- p | q"
  wkrq entails "Human(a), ~Human(a) |- Flying(b)" --mode transparent   # no explosion`,
	Args: cobra.ExactArgs(1),
	RunE: runEntails,
}

func init() {
	EntailsCmd.Flags().StringVarP(&entailsMode, "mode", "m", "wkrq", "Syntax mode (wkrq/transparent/bilateral/mixed)")
	EntailsCmd.Flags().BoolVar(&entailsTrace, "trace", false, "Print the rule firings")
	EntailsCmd.Flags().BoolVarP(&entailsJSON, "json", "j", false, "Output as JSON")
}

func runEntails(cmd *cobra.Command, args []string) error {
	mode, err := parser.ParseMode(entailsMode)
	if err != nil {
		return err
	}
	inf, err := parser.ParseInference(args[0], mode)
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
	if entailsTrace {
		tracer = &tableau.CollectingTracer{}
		opts = append(opts, tableau.WithTracer(tracer))
	}

	res, err := checkEntailment(inf.Premises, inf.Conclusion, mode, opts...)
	if err != nil {
		return err
	}

	if entailsJSON {
		out := verdictOutput{
			Conclusion:   inf.Conclusion.String(),
			Valid:        res.Valid,
			Undetermined: res.Undetermined,
			Stats:        res.Stats,
		}
		for _, p := range inf.Premises {
			out.Premises = append(out.Premises, p.String())
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

	pterm.Printf("%s\n", verdictLabel(res))
	if res.Countermodel != nil {
		pterm.Printf("%s\n", pterm.LightCyan("Countermodel:"))
		printModel(*res.Countermodel, "  ")
	}
	if tracer != nil {
		printTrace(tracer.Events())
	}
	return nil
}
