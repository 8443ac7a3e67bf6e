package commands

import (
	"github.com/teranos/wkrq/acrq"
	"github.com/teranos/wkrq/am"
	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/evidence"
	"github.com/teranos/wkrq/formula"
	"github.com/teranos/wkrq/parser"
	"github.com/teranos/wkrq/tableau"
)

// baseOptions builds engine options from the loaded configuration.
// Bilateral modes additionally wire the configured evidence provider.
func baseOptions(cfg *am.Config, mode parser.Mode) ([]tableau.Option, error) {
	opts := []tableau.Option{tableau.WithLimits(cfg.Solver.Limits())}
	if mode == parser.ModeWKrQ {
		return opts, nil
	}

	switch cfg.Evidence.Provider {
	case "", "none":
		return opts, nil
	case "openai":
		p, err := evidence.NewOpenAIProvider(evidence.OpenAIConfig{
			APIKey:            cfg.Evidence.OpenAI.APIKey,
			Model:             cfg.Evidence.OpenAI.Model,
			RequestsPerSecond: cfg.Evidence.OpenAI.RequestsPerSecond,
		})
		if err != nil {
			return nil, err
		}
		return append(opts, tableau.WithEvidence(p)), nil
	}
	return nil, errors.Newf("unknown evidence provider %q", cfg.Evidence.Provider)
}

// solveFormula dispatches to the calculus the syntax mode implies.
func solveFormula(f formula.Formula, sign tableau.Sign, mode parser.Mode, opts ...tableau.Option) (*tableau.Result, error) {
	if mode == parser.ModeWKrQ {
		return tableau.Solve(f, sign, opts...)
	}
	return acrq.Solve(f, sign, opts...)
}

func checkEntailment(premises []formula.Formula, conclusion formula.Formula, mode parser.Mode, opts ...tableau.Option) (*tableau.InferenceResult, error) {
	if mode == parser.ModeWKrQ {
		return tableau.Entails(premises, conclusion, opts...)
	}
	return acrq.Entails(premises, conclusion, opts...)
}
