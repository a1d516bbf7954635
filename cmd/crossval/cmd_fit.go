package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crossval/model"
	"crossval/tables"
)

var fitFlags struct {
	dataset string
	outcome string
	family  string
	lambda  float64
}

var fitCmd = &cobra.Command{
	Use:   "fit <feature>...",
	Short: "Fit a single model and print its coefficients",
	Long: "Fit fits one model on the full dataset: a logistic classifier, or an\n" +
		"ordinary/ridge/lasso least-squares fit against a numeric outcome.\n" +
		"Features may include interactions written as A:B.",
	Args: cobra.MinimumNArgs(1),
	RunE: runFit,
}

func init() {
	f := fitCmd.Flags()
	f.StringVar(&fitFlags.dataset, "dataset", "", "Dataset CSV path (required)")
	f.StringVar(&fitFlags.outcome, "outcome", "", "Outcome column (required)")
	f.StringVar(&fitFlags.family, "family", "logit", "Model family (logit, ols, ridge, lasso)")
	f.Float64Var(&fitFlags.lambda, "lambda", 0.1, "Penalty for ridge/lasso")
	fitCmd.MarkFlagRequired("dataset")
	fitCmd.MarkFlagRequired("outcome")
}

func runFit(cmd *cobra.Command, args []string) error {
	t, err := tables.ReadCSV(fitFlags.dataset)
	if err != nil {
		return err
	}
	spec := model.NewSpec("fit", fitFlags.outcome, args...)

	switch fitFlags.family {
	case "logit":
		m, err := model.FitLogit(t, spec)
		if err != nil {
			return err
		}
		d, err := model.BuildDesign(t, spec)
		if err != nil {
			return err
		}
		fmt.Printf("logit %s ~ %v\n%s\n", spec.Outcome, spec.Features(), d.CoefString(m.Coef))
		return nil
	case "ols", "ridge", "lasso":
		var m *model.Linear
		switch fitFlags.family {
		case "ols":
			m, err = model.FitOLS(t, spec)
		case "ridge":
			m, err = model.FitRidge(t, spec, fitFlags.lambda)
		case "lasso":
			m, err = model.FitLasso(t, spec, fitFlags.lambda)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s %s ~ %v", m.Method, spec.Outcome, spec.Features())
		if m.Method != "ols" {
			fmt.Printf(" (lambda=%g)", m.Lambda)
		}
		fmt.Printf("\n(Intercept)=%.6f", m.Coef[0])
		for i, name := range m.Names {
			fmt.Printf(" %s=%.6f", name, m.Coef[i+1])
		}
		fmt.Printf("\nR2=%.4f sigma=%.4f\n", m.R2, m.Sigma)
		return nil
	default:
		return fmt.Errorf("unknown family %q (want logit, ols, ridge or lasso)", fitFlags.family)
	}
}
