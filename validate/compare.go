package validate

import (
	"math/rand"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"crossval/fu"
	"crossval/model"
	"crossval/tables"
)

/*
FoldResult is one (spec, repeat, fold) evaluation: the accuracy of
the spec's model, fit on the other folds of the repeat, over the
held-out fold.
*/
type FoldResult struct {
	Spec   string
	Repeat int
	Fold   int
	Metric float64
}

/*
SpecResult is the ordered fold history of one candidate plus its
mean metric over all Folds*Repeats results.
*/
type SpecResult struct {
	Spec  model.Spec
	Folds []FoldResult
	Mean  float64
}

/*
Comparison is the result of Compare: one SpecResult per candidate,
in candidate order.
*/
type Comparison struct {
	Plan  Plan
	Seed  int64
	Specs []SpecResult
}

type options struct {
	workers int
}

// Option adjusts Compare execution without affecting its output.
type Option func(*options)

// Parallel fits folds on up to n goroutines. Fold jobs are
// independent and results are keyed by (repeat, fold), so the output
// is identical to a serial run.
func Parallel(n int) Option {
	return func(o *options) {
		if n > 1 {
			o.workers = n
		}
	}
}

// Compare runs the repeated-resampling comparison of specs over the
// training set. For each repeat the rows are dealt into plan.Folds
// folds by a shuffle drawn from seed; every spec is fit on each
// fold's complement and scored by accuracy on the held-out fold.
// Any degenerate fold fit aborts the whole comparison: skipping
// folds would bias the mean metric.
func Compare(train *tables.Table, specs []model.Spec, plan Plan, seed int64, opts ...Option) (*Comparison, error) {
	if len(specs) == 0 {
		return nil, xerrors.Errorf("compare: %w", model.ErrNoCandidates)
	}
	n := train.Len()
	if err := plan.validate(n); err != nil {
		return nil, err
	}
	for _, s := range specs {
		if err := s.Validate(train); err != nil {
			return nil, err
		}
		if s.Outcome != specs[0].Outcome {
			return nil, xerrors.Errorf("spec %s: outcome %q differs from %q: %w",
				s.Name, s.Outcome, specs[0].Outcome, model.ErrInvalidSpec)
		}
	}
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	// All randomness is spent before any fitting, so fan-out cannot
	// perturb the assignments.
	rng := rand.New(rand.NewSource(seed))
	assignments := plan.assign(n, rng)

	type job struct{ repeat, fold int }
	jobs := make([]job, 0, plan.Repeats*plan.Folds)
	for r := 0; r < plan.Repeats; r++ {
		for f := 0; f < plan.Folds; f++ {
			jobs = append(jobs, job{r, f})
		}
	}

	// metrics[spec][job index]
	metrics := make([][]float64, len(specs))
	for i := range metrics {
		metrics[i] = make([]float64, len(jobs))
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for ji, jb := range jobs {
		ji, jb := ji, jb
		g.Go(func() error {
			fold := assignments[jb.repeat][jb.fold]
			fit := train.Take(complement(n, fold))
			held := train.Take(fold)
			actual, err := model.OutcomeCodes(held, specs[0].Outcome)
			if err != nil {
				return err
			}
			for si, spec := range specs {
				m, err := model.FitLogit(fit, spec)
				if err != nil {
					return xerrors.Errorf("repeat %d fold %d: %w", jb.repeat, jb.fold, err)
				}
				pred, err := m.Predict(held)
				if err != nil {
					return xerrors.Errorf("repeat %d fold %d: %w", jb.repeat, jb.fold, err)
				}
				metrics[si][ji] = accuracy(pred, actual)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp := &Comparison{Plan: plan, Seed: seed, Specs: make([]SpecResult, len(specs))}
	for si, spec := range specs {
		sr := SpecResult{Spec: spec, Folds: make([]FoldResult, len(jobs))}
		for ji, jb := range jobs {
			sr.Folds[ji] = FoldResult{Spec: spec.Name, Repeat: jb.repeat, Fold: jb.fold, Metric: metrics[si][ji]}
		}
		sr.Mean = fu.Mean(metrics[si])
		cmp.Specs[si] = sr
	}
	return cmp, nil
}

// accuracy is the fraction of matching labels.
func accuracy(pred, actual []int) float64 {
	correct := 0
	for i, p := range pred {
		if p == actual[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(pred))
}
