package commands

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"github.com/teranos/wkrq/sym"
	"github.com/teranos/wkrq/tableau"
)

func statusLabel(s tableau.Status) string {
	switch s {
	case tableau.StatusOpen:
		return pterm.Green("satisfiable")
	case tableau.StatusClosed:
		return pterm.Red("unsatisfiable")
	}
	return pterm.Yellow("undetermined")
}

func verdictLabel(res *tableau.InferenceResult) string {
	switch {
	case res.Undetermined:
		return pterm.Yellow("undetermined")
	case res.Valid:
		return pterm.Green("valid")
	}
	return pterm.Red("invalid")
}

func printModel(m tableau.Model, indent string) {
	keys := make([]string, 0, len(m.Assignments))
	for k := range m.Assignments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pterm.Printf("%s%s %s %s\n", indent, pterm.White(k), pterm.Gray("="), pterm.LightCyan(m.Assignments[k].String()))
	}
	if len(keys) == 0 {
		pterm.Printf("%s%s\n", indent, pterm.Gray("(everything undefined)"))
	}
}

func printModels(models []tableau.Model) {
	for i, m := range models {
		pterm.Printf("%s\n", pterm.LightCyan(fmt.Sprintf("Model %d:", i+1)))
		printModel(m, "  ")
	}
}

func printTrace(events []tableau.Event) {
	pterm.Printf("%s\n", pterm.LightCyan("Trace:"))
	for _, ev := range events {
		switch ev.Kind {
		case tableau.EventClosure:
			pterm.Printf("  %s branch %d closes on %s\n",
				pterm.Red(sym.Closed), ev.Branch, pterm.White(ev.Closure.FormulaKey))
		case tableau.EventEvidence:
			line := fmt.Sprintf("  %s branch %d evidence %s", pterm.Blue(sym.Queried), ev.Branch, ev.Source.Formula.String())
			if ev.Err != nil {
				line += " " + pterm.Yellow(fmt.Sprintf("(provider failed: %v)", ev.Err))
			}
			pterm.Println(line)
		default:
			pterm.Printf("  %s branch %d %s on %s\n",
				pterm.Gray(sym.Step), ev.Branch, pterm.Yellow(ev.Rule), pterm.White(ev.Source.String()))
		}
	}
}

// modelJSON flattens a model for JSON output.
func modelJSON(m tableau.Model) map[string]string {
	out := make(map[string]string, len(m.Assignments))
	for k, v := range m.Assignments {
		out[k] = v.String()
	}
	return out
}

func modelsJSON(models []tableau.Model) []map[string]string {
	out := make([]map[string]string, len(models))
	for i, m := range models {
		out[i] = modelJSON(m)
	}
	return out
}
