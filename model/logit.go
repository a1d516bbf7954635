package model

import (
	"math"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"

	"crossval/tables"
)

const (
	irlsMaxIter = 25
	irlsTol     = 1e-8
)

/*
Logit is a fitted logistic generalized linear model. The coefficient
vector is laid out as the Design: intercept first, then one value per
encoded term column.
*/
type Logit struct {
	Spec Spec
	Coef []float64
}

// FitLogit fits spec on t by iteratively reweighted least squares.
// A singular weighted system on these rows (collinear or constant
// design columns) yields ErrInsufficientData.
func FitLogit(t *tables.Table, spec Spec) (*Logit, error) {
	d, err := BuildDesign(t, spec)
	if err != nil {
		return nil, err
	}
	n, p := d.X.Dims()

	beta := mat.NewVecDense(p, nil)
	eta := mat.NewVecDense(n, nil)
	wz := mat.NewVecDense(n, nil)
	wx := mat.NewDense(n, p, nil)
	var a mat.Dense
	var b mat.VecDense

	for iter := 0; iter < irlsMaxIter; iter++ {
		eta.MulVec(d.X, beta)
		// Weighted working response: w = p(1-p), z = eta + (y-p)/w.
		for i := 0; i < n; i++ {
			pi := sigmoid(eta.AtVec(i))
			w := math.Max(pi*(1-pi), 1e-10)
			z := eta.AtVec(i) + (d.Y[i]-pi)/w
			wz.SetVec(i, w*z)
			for j := 0; j < p; j++ {
				wx.Set(i, j, w*d.X.At(i, j))
			}
		}
		a.Mul(d.X.T(), wx)
		b.MulVec(d.X.T(), wz)

		next := mat.NewVecDense(p, nil)
		if err := next.SolveVec(&a, &b); err != nil {
			return nil, xerrors.Errorf("spec %s: singular system in IRLS: %w", spec.Name, ErrInsufficientData)
		}
		delta := 0.0
		for j := 0; j < p; j++ {
			delta = math.Max(delta, math.Abs(next.AtVec(j)-beta.AtVec(j)))
		}
		beta = next
		if delta < irlsTol {
			break
		}
	}

	coef := make([]float64, p)
	for j := 0; j < p; j++ {
		coef[j] = beta.AtVec(j)
	}
	return &Logit{Spec: spec, Coef: coef}, nil
}

// Prob returns the fitted probability of the class coded 1 for every
// row of t.
func (m *Logit) Prob(t *tables.Table) ([]float64, error) {
	x, err := predictMatrix(t, m.Spec)
	if err != nil {
		return nil, err
	}
	n, _ := x.Dims()
	probs := make([]float64, n)
	beta := mat.NewVecDense(len(m.Coef), m.Coef)
	eta := mat.NewVecDense(n, nil)
	eta.MulVec(x, beta)
	for i := 0; i < n; i++ {
		probs[i] = sigmoid(eta.AtVec(i))
	}
	return probs, nil
}

// Predict returns the predicted class code (0 or 1) per row, using
// the conventional 0.5 probability threshold.
func (m *Logit) Predict(t *tables.Table) ([]int, error) {
	probs, err := m.Prob(t)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			labels[i] = 1
		}
	}
	return labels, nil
}

// predictMatrix assembles the design matrix without the fit-time
// constant-column check; prediction rows may legitimately hold a
// single level.
func predictMatrix(t *tables.Table, spec Spec) (*mat.Dense, error) {
	if err := spec.Validate(t); err != nil {
		return nil, err
	}
	n := t.Len()
	cols := [][]float64{}
	for _, term := range spec.Terms {
		enc, _ := encodeTerm(t, term)
		cols = append(cols, enc...)
	}
	x := mat.NewDense(n, len(cols)+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, c := range cols {
		x.SetCol(j+1, c)
	}
	return x, nil
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
