package model

import (
	"math"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"crossval/tables"
)

/*
Linear is a fitted linear model over a numeric outcome: ordinary
least squares or a penalized variant. Coef is laid out like the
Design: intercept first.
*/
type Linear struct {
	Spec   Spec
	Method string // "ols", "ridge" or "lasso"
	Lambda float64
	Coef   []float64
	Names  []string
	R2     float64
	Sigma  float64 // residual standard error
}

// linearDesign builds the design for a continuous outcome. The term
// encoding is shared with the classifier; only the outcome rules
// differ (any numeric column).
func linearDesign(t *tables.Table, spec Spec) (*Design, error) {
	c := t.Col(spec.Outcome)
	if c == nil {
		return nil, xerrors.Errorf("unknown outcome column %q: %w", spec.Outcome, ErrInvalidSpec)
	}
	if c.Kind != tables.Numeric {
		return nil, xerrors.Errorf("outcome %q must be numeric for a linear fit: %w", spec.Outcome, ErrInvalidSpec)
	}
	for _, term := range spec.Terms {
		for _, name := range term.Columns {
			if t.Col(name) == nil {
				return nil, xerrors.Errorf("spec %s: unknown column %q: %w", spec.Name, name, ErrInvalidSpec)
			}
		}
	}
	n := t.Len()
	cols := [][]float64{}
	names := []string{}
	for _, term := range spec.Terms {
		enc, encNames := encodeTerm(t, term)
		cols = append(cols, enc...)
		names = append(names, encNames...)
	}
	for i, col := range cols {
		if constant(col) {
			return nil, xerrors.Errorf("spec %s: column %s is constant on %d rows: %w",
				spec.Name, names[i], n, ErrInsufficientData)
		}
	}
	x := mat.NewDense(n, len(cols)+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, col := range cols {
		x.SetCol(j+1, col)
	}
	return &Design{X: x, Y: append([]float64(nil), c.Floats...), Names: names}, nil
}

// FitOLS fits spec by ordinary least squares (QR).
func FitOLS(t *tables.Table, spec Spec) (*Linear, error) {
	d, err := linearDesign(t, spec)
	if err != nil {
		return nil, err
	}
	n, p := d.X.Dims()
	beta := mat.NewVecDense(p, nil)
	if err := beta.SolveVec(d.X, mat.NewVecDense(n, d.Y)); err != nil {
		return nil, xerrors.Errorf("spec %s: rank-deficient design: %w", spec.Name, ErrInsufficientData)
	}
	coef := vecSlice(beta)
	m := &Linear{Spec: spec, Method: "ols", Coef: coef, Names: d.Names}
	m.score(d)
	return m, nil
}

// FitRidge fits spec with an L2 penalty lambda on every coefficient
// except the intercept, on the raw predictor scale.
func FitRidge(t *tables.Table, spec Spec, lambda float64) (*Linear, error) {
	d, err := linearDesign(t, spec)
	if err != nil {
		return nil, err
	}
	n, p := d.X.Dims()
	var a mat.Dense
	a.Mul(d.X.T(), d.X)
	for j := 1; j < p; j++ {
		a.Set(j, j, a.At(j, j)+lambda)
	}
	var b mat.VecDense
	b.MulVec(d.X.T(), mat.NewVecDense(n, d.Y))
	beta := mat.NewVecDense(p, nil)
	if err := beta.SolveVec(&a, &b); err != nil {
		return nil, xerrors.Errorf("spec %s: singular ridge system: %w", spec.Name, ErrInsufficientData)
	}
	m := &Linear{Spec: spec, Method: "ridge", Lambda: lambda, Coef: vecSlice(beta), Names: d.Names}
	m.score(d)
	return m, nil
}

const (
	lassoMaxIter = 1000
	lassoTol     = 1e-7
)

// FitLasso fits spec with an L1 penalty by cyclic coordinate descent
// on standardized predictors; lambda is on the standardized scale.
// Coefficients are reported back on the raw scale.
func FitLasso(t *tables.Table, spec Spec, lambda float64) (*Linear, error) {
	d, err := linearDesign(t, spec)
	if err != nil {
		return nil, err
	}
	n, p := d.X.Dims()
	k := p - 1 // predictors excluding intercept

	// Standardize predictors, center the outcome.
	mean := make([]float64, k)
	scale := make([]float64, k)
	xs := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		col := mat.Col(nil, j+1, d.X)
		mean[j] = stat.Mean(col, nil)
		scale[j] = math.Sqrt(stat.Variance(col, nil) * float64(n-1) / float64(n))
		for i := 0; i < n; i++ {
			xs.Set(i, j, (col[i]-mean[j])/scale[j])
		}
	}
	ymean := stat.Mean(d.Y, nil)
	resid := make([]float64, n)
	for i := range resid {
		resid[i] = d.Y[i] - ymean
	}

	beta := make([]float64, k)
	for iter := 0; iter < lassoMaxIter; iter++ {
		maxDelta := 0.0
		for j := 0; j < k; j++ {
			xj := mat.Col(nil, j, xs)
			// rho includes the current contribution of beta[j].
			rho := floats.Dot(xj, resid)/float64(n) + beta[j]
			next := softThreshold(rho, lambda)
			if delta := next - beta[j]; delta != 0 {
				floats.AddScaled(resid, -delta, xj)
				maxDelta = math.Max(maxDelta, math.Abs(delta))
			}
			beta[j] = next
		}
		if maxDelta < lassoTol {
			break
		}
	}

	coef := make([]float64, p)
	coef[0] = ymean
	for j := 0; j < k; j++ {
		coef[j+1] = beta[j] / scale[j]
		coef[0] -= coef[j+1] * mean[j]
	}
	m := &Linear{Spec: spec, Method: "lasso", Lambda: lambda, Coef: coef, Names: d.Names}
	m.score(d)
	return m, nil
}

func softThreshold(x, lambda float64) float64 {
	switch {
	case x > lambda:
		return x - lambda
	case x < -lambda:
		return x + lambda
	default:
		return 0
	}
}

// score fills R2 and Sigma from the fit residuals.
func (m *Linear) score(d *Design) {
	n, p := d.X.Dims()
	fitted := mat.NewVecDense(n, nil)
	fitted.MulVec(d.X, mat.NewVecDense(p, m.Coef))
	ymean := stat.Mean(d.Y, nil)
	var rss, tss float64
	for i := 0; i < n; i++ {
		r := d.Y[i] - fitted.AtVec(i)
		rss += r * r
		dy := d.Y[i] - ymean
		tss += dy * dy
	}
	m.R2 = 1 - rss/tss
	if n > p {
		m.Sigma = math.Sqrt(rss / float64(n-p))
	}
}

func vecSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
