package validate

import (
	"golang.org/x/xerrors"

	"crossval/fu"
	"crossval/model"
)

// SelectBest returns the candidate with the maximum mean metric.
// Ties are broken deterministically: fewer explanatory terms wins,
// then the earlier candidate in the comparison order.
func SelectBest(cmp *Comparison) (model.Spec, error) {
	if cmp == nil || len(cmp.Specs) == 0 {
		return model.Spec{}, xerrors.Errorf("select: %w", model.ErrNoCandidates)
	}
	means := make([]float64, len(cmp.Specs))
	for i, s := range cmp.Specs {
		means[i] = s.Mean
	}
	best := fu.Indmax(means)
	for i, s := range cmp.Specs {
		if means[i] == means[best] && s.Spec.Width() < cmp.Specs[best].Spec.Width() {
			best = i
		}
	}
	return cmp.Specs[best].Spec, nil
}
