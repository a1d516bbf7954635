/*
Package validate implements the resampled classifier comparator:
seeded train/test partitioning, repeated v-fold resampling plans,
per-fold accuracy comparison of candidate specifications, best-model
selection and held-out confusion evaluation.

Randomness is never ambient: every step that shuffles takes an
explicit *rand.Rand, so a fixed seed reproduces the identical
partition, fold assignments and selected model.
*/
package validate

import (
	"math/rand"

	"golang.org/x/xerrors"

	"crossval/tables"
)

/*
Partition is a deterministic split of a dataset's row indices into
disjoint Train and Test covering all rows.
*/
type Partition struct {
	TrainIdx []int
	TestIdx  []int
}

// Split assigns the first floor(frac*n) rows of a seeded shuffle to
// Train and the rest to Test.
func Split(n int, frac float64, rng *rand.Rand) (Partition, error) {
	if frac <= 0 || frac >= 1 {
		return Partition{}, xerrors.Errorf("split fraction %v outside (0,1)", frac)
	}
	perm := rng.Perm(n)
	k := int(frac * float64(n))
	return Partition{
		TrainIdx: append([]int(nil), perm[:k]...),
		TestIdx:  append([]int(nil), perm[k:]...),
	}, nil
}

// Train materializes the training rows of t.
func (p Partition) Train(t *tables.Table) *tables.Table { return t.Take(p.TrainIdx) }

// Test materializes the test rows of t.
func (p Partition) Test(t *tables.Table) *tables.Table { return t.Take(p.TestIdx) }
