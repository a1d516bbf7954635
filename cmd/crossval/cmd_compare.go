package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"crossval/resultdb"
	"crossval/study"
	"crossval/validate"
)

var compareFlags struct {
	config   string
	db       string
	parallel int
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the full comparison pipeline from a study file",
	Long: "Compare runs the resampled model comparison declared in the study file:\n" +
		"seeded train/test split, repeated v-fold comparison of every candidate,\n" +
		"selection of the best mean accuracy, and held-out confusion metrics.",
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareFlags.config, "config", "study.yaml", "Study file path")
	f.StringVar(&compareFlags.db, "db", "", "SQLite path to persist the run (empty = no persistence)")
	f.IntVar(&compareFlags.parallel, "parallel", 1, "Number of parallel fold workers (1 = serial)")
	compareCmd.MarkFlagRequired("config")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	cfg, err := study.Load(compareFlags.config)
	if err != nil {
		return err
	}
	res, err := study.Run(cfg, validate.Parallel(compareFlags.parallel))
	if err != nil {
		return err
	}
	fmt.Print(res.Report())

	if compareFlags.db != "" {
		store, err := resultdb.Open(compareFlags.db)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.SaveRun(res)
		if err != nil {
			return err
		}
		slog.Info("run persisted", "db", compareFlags.db, "run_id", id)
	}
	return nil
}
