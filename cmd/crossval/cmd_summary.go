package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crossval/tables"
)

var summaryFlags struct {
	corr []string
}

var summaryCmd = &cobra.Command{
	Use:   "summary <dataset.csv>",
	Short: "Print per-column summary statistics for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringSliceVar(&summaryFlags.corr, "corr", nil,
		"Pair of numeric columns to correlate, e.g. --corr Age,MaxHR (repeatable)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	t, err := tables.ReadCSV(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d rows, %d columns\n", args[0], t.Len(), len(t.Names()))
	for _, s := range t.Summarize() {
		fmt.Println(s.String())
	}
	if len(summaryFlags.corr) == 2 {
		r, err := t.Corr(summaryFlags.corr[0], summaryFlags.corr[1])
		if err != nil {
			return err
		}
		fmt.Printf("corr(%s, %s) = %.4f\n", summaryFlags.corr[0], summaryFlags.corr[1], r)
	}
	return nil
}
