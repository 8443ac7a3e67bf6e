package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/wkrq/am"
	"github.com/teranos/wkrq/parser"
	"github.com/teranos/wkrq/sym"
	"github.com/teranos/wkrq/theory"
)

var (
	theoryFile string
	theoryMode string
	theoryJSON bool
)

// TheoryCmd represents the theory command
var TheoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Manage a persistent theory and reason over it",
	Long: `Assert statements into a theory file and reason over them with
bilateral semantics. Conflicting assertions are kept as gluts, so the
theory never explodes.

Examples:
  wkrq theory add "Human(socrates)"
  wkrq theory add "[forall X Human(X)]Mortal(X)"
  wkrq theory list
  wkrq theory check                    # satisfiability, gluts, gaps
  wkrq theory infer "Mortal(socrates)"
  wkrq theory remove s1
  wkrq theory clear`,
}

func init() {
	TheoryCmd.PersistentFlags().StringVar(&theoryFile, "file", "", "Theory file (default from config)")
	TheoryCmd.PersistentFlags().StringVar(&theoryMode, "mode", "", "Syntax mode for new theories (default from config)")
	TheoryCmd.PersistentFlags().BoolVarP(&theoryJSON, "json", "j", false, "Output as JSON")

	TheoryCmd.AddCommand(theoryAddCmd)
	TheoryCmd.AddCommand(theoryListCmd)
	TheoryCmd.AddCommand(theoryRemoveCmd)
	TheoryCmd.AddCommand(theoryClearCmd)
	TheoryCmd.AddCommand(theoryCheckCmd)
	TheoryCmd.AddCommand(theoryInferCmd)
}

func openTheory() (*theory.Manager, *am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, nil, err
	}
	path := theoryFile
	if path == "" {
		path = cfg.Theory.Path
	}
	modeName := theoryMode
	if modeName == "" {
		modeName = cfg.Theory.Mode
	}
	mode, err := parser.ParseMode(modeName)
	if err != nil {
		return nil, nil, err
	}
	m, err := theory.NewManager(path, mode)
	if err != nil {
		return nil, nil, err
	}
	return m, cfg, nil
}

var theoryAddCmd = &cobra.Command{
	Use:   "add [STATEMENT]",
	Short: "Assert a statement into the theory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := openTheory()
		if err != nil {
			return err
		}
		st, err := m.Assert(args[0])
		if err != nil {
			return err
		}
		if err := m.Save(); err != nil {
			return err
		}
		pterm.Printf("%s %s %s\n", pterm.LightGreen(sym.OK), pterm.Yellow(st.ID), pterm.White(st.Formula))
		return nil
	},
}

var theoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List asserted statements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := openTheory()
		if err != nil {
			return err
		}
		stmts := m.Statements()
		if theoryJSON {
			data, err := json.MarshalIndent(stmts, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		if len(stmts) == 0 {
			pterm.Println(pterm.Gray("(empty theory)"))
			return nil
		}
		for _, st := range stmts {
			pterm.Printf("%s %s\n", pterm.Yellow(st.ID), pterm.White(st.Formula))
		}
		return nil
	},
}

var theoryRemoveCmd = &cobra.Command{
	Use:   "remove [ID]",
	Short: "Retract a statement by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := openTheory()
		if err != nil {
			return err
		}
		if err := m.Retract(args[0]); err != nil {
			return err
		}
		if err := m.Save(); err != nil {
			return err
		}
		pterm.Printf("%s retracted %s\n", pterm.LightGreen(sym.OK), pterm.Yellow(args[0]))
		return nil
	},
}

var theoryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every statement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := openTheory()
		if err != nil {
			return err
		}
		m.Clear()
		if err := m.Save(); err != nil {
			return err
		}
		pterm.Printf("%s theory cleared\n", pterm.LightGreen(sym.OK))
		return nil
	},
}

type checkOutput struct {
	Satisfiable  bool              `json:"satisfiable"`
	Undetermined bool              `json:"undetermined"`
	Gluts        []string          `json:"gluts,omitempty"`
	Gaps         []string          `json:"gaps,omitempty"`
	Model        map[string]string `json:"model,omitempty"`
}

var theoryCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check satisfiability and report gluts and gaps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cfg, err := openTheory()
		if err != nil {
			return err
		}
		opts, err := baseOptions(cfg, m.Mode())
		if err != nil {
			return err
		}
		cr, err := m.Check(opts...)
		if err != nil {
			return err
		}

		if theoryJSON {
			out := checkOutput{
				Satisfiable:  cr.Satisfiable,
				Undetermined: cr.Undetermined,
				Gluts:        cr.Gluts,
				Gaps:         cr.Gaps,
			}
			if cr.Model != nil {
				out.Model = modelJSON(*cr.Model)
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		switch {
		case cr.Undetermined:
			pterm.Println(pterm.Yellow("undetermined (resource limits reached)"))
		case cr.Satisfiable:
			pterm.Println(pterm.Green("satisfiable"))
		default:
			pterm.Println(pterm.Red("unsatisfiable"))
		}
		for _, g := range cr.Gluts {
			pterm.Printf("  %s %s\n", pterm.LightMagenta("glut:"), pterm.White(g))
		}
		for _, g := range cr.Gaps {
			pterm.Printf("  %s %s\n", pterm.Blue("gap:"), pterm.White(g))
		}
		return nil
	},
}

var theoryInferCmd = &cobra.Command{
	Use:   "infer [FORMULA]",
	Short: "Ask whether the theory entails a formula",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cfg, err := openTheory()
		if err != nil {
			return err
		}
		opts, err := baseOptions(cfg, m.Mode())
		if err != nil {
			return err
		}
		res, err := m.Infer(args[0], opts...)
		if err != nil {
			return err
		}

		if theoryJSON {
			out := verdictOutput{
				Conclusion:   args[0],
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

		pterm.Printf("%s\n", verdictLabel(res))
		if res.Countermodel != nil {
			pterm.Printf("%s\n", pterm.LightCyan("Countermodel:"))
			printModel(*res.Countermodel, "  ")
		}
		return nil
	},
}
