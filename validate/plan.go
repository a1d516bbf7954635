package validate

import (
	"math/rand"

	"golang.org/x/xerrors"
)

/*
Plan is a resampling plan: the training set is dealt into Folds
disjoint near-equal folds, independently Repeats times. Within one
repeat the folds cover the training rows exactly once; fold
assignments across repeats are independent draws from the same rng.
*/
type Plan struct {
	Folds   int
	Repeats int
}

func (p Plan) validate(n int) error {
	if p.Folds < 2 {
		return xerrors.Errorf("plan: folds = %d, want >= 2", p.Folds)
	}
	if p.Repeats < 1 {
		return xerrors.Errorf("plan: repeats = %d, want >= 1", p.Repeats)
	}
	if p.Folds > n {
		return xerrors.Errorf("plan: %d folds over %d rows", p.Folds, n)
	}
	return nil
}

// assign deals row indices 0..n-1 into folds for every repeat. The
// first n%folds folds of a repeat hold one extra row.
func (p Plan) assign(n int, rng *rand.Rand) [][][]int {
	out := make([][][]int, p.Repeats)
	for r := 0; r < p.Repeats; r++ {
		perm := rng.Perm(n)
		folds := make([][]int, p.Folds)
		base, rem := n/p.Folds, n%p.Folds
		at := 0
		for f := 0; f < p.Folds; f++ {
			size := base
			if f < rem {
				size++
			}
			folds[f] = append([]int(nil), perm[at:at+size]...)
			at += size
		}
		out[r] = folds
	}
	return out
}

// complement returns the rows not in fold, in ascending order, for
// the fold's in-repeat training subset.
func complement(n int, fold []int) []int {
	in := make([]bool, n)
	for _, i := range fold {
		in[i] = true
	}
	out := make([]int, 0, n-len(fold))
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}
