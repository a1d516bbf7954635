package study

import (
	"log/slog"
	"math/rand"

	"crossval/model"
	"crossval/tables"
	"crossval/validate"
)

/*
Result is one completed study run: the loaded dataset, the seeded
partition, the full comparison history, the selected specification
and its held-out confusion outcome. Everything is derived and
recomputable from the config alone.
*/
type Result struct {
	Config    *Config
	Table     *tables.Table
	Partition validate.Partition
	Positive  string
	Compared  *validate.Comparison
	Selected  model.Spec
	Confusion *validate.Confusion
}

// Run executes the study once. The single configured seed drives
// both the train/test split and the fold assignments; any stage
// error aborts the run with no partial result.
func Run(cfg *Config, opts ...validate.Option) (*Result, error) {
	log := slog.Default().With(slog.String("component", "study"))

	t, err := tables.ReadCSV(cfg.Dataset)
	if err != nil {
		return nil, err
	}
	log.Info("dataset loaded", "path", cfg.Dataset, "rows", t.Len(), "columns", len(t.Names()))

	rng := rand.New(rand.NewSource(cfg.Seed))
	part, err := validate.Split(t.Len(), cfg.Split, rng)
	if err != nil {
		return nil, err
	}
	train := part.Train(t)
	test := part.Test(t)
	log.Info("partitioned", "train", train.Len(), "test", test.Len(), "seed", cfg.Seed)

	positive := cfg.Positive
	if positive == "" {
		labels, err := model.OutcomeLabels(t, cfg.Outcome)
		if err != nil {
			return nil, err
		}
		positive = labels[0]
	}

	cmp, err := validate.Compare(train, cfg.ModelSpecs(), cfg.ResamplingPlan(), cfg.Seed, opts...)
	if err != nil {
		return nil, err
	}
	for _, s := range cmp.Specs {
		log.Info("candidate scored", "spec", s.Spec.Name, "folds", len(s.Folds), "mean_accuracy", s.Mean)
	}

	selected, err := validate.SelectBest(cmp)
	if err != nil {
		return nil, err
	}
	log.Info("selected", "spec", selected.Name)

	conf, err := validate.EvaluateHoldout(selected, train, test, positive)
	if err != nil {
		return nil, err
	}
	log.Info("holdout evaluated",
		"accuracy", conf.Accuracy(),
		"sensitivity", conf.Sensitivity(),
		"specificity", conf.Specificity(),
		"positive", positive)

	return &Result{
		Config:    cfg,
		Table:     t,
		Partition: part,
		Positive:  positive,
		Compared:  cmp,
		Selected:  selected,
		Confusion: conf,
	}, nil
}
