package model

import (
	"math"
	"math/rand"
	"testing"

	"golang.org/x/xerrors"
	"gotest.tools/assert"

	"crossval/tables"
)

func regressionTable(t *testing.T, n int, seed int64) *tables.Table {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = rng.NormFloat64()
		x2[i] = rng.NormFloat64()
		// y depends on x1 only; x2 is pure noise
		y[i] = 1 + 2*x1[i] + 0.05*rng.NormFloat64()
	}
	tab, err := tables.New([]tables.Column{
		{Name: "X1", Kind: tables.Numeric, Floats: x1},
		{Name: "X2", Kind: tables.Numeric, Floats: x2},
		{Name: "Y", Kind: tables.Numeric, Floats: y},
	})
	assert.NilError(t, err)
	return tab
}

func Test_FitOLS_ExactLine(t *testing.T) {
	tab, err := tables.New([]tables.Column{
		{Name: "X", Kind: tables.Numeric, Floats: []float64{0, 1, 2, 3}},
		{Name: "Y", Kind: tables.Numeric, Floats: []float64{1, 3, 5, 7}},
	})
	assert.NilError(t, err)
	m, err := FitOLS(tab, NewSpec("line", "Y", "X"))
	assert.NilError(t, err)
	assert.Assert(t, math.Abs(m.Coef[0]-1) < 1e-9, "intercept %v", m.Coef[0])
	assert.Assert(t, math.Abs(m.Coef[1]-2) < 1e-9, "slope %v", m.Coef[1])
	assert.Assert(t, math.Abs(m.R2-1) < 1e-9)
}

func Test_FitOLS_NonNumericOutcome(t *testing.T) {
	tab, err := tables.New([]tables.Column{
		{Name: "X", Kind: tables.Numeric, Floats: []float64{1, 2}},
		{Name: "F", Kind: tables.Factor, Codes: []int{0, 1}, Levels: []string{"a", "b"}},
	})
	assert.NilError(t, err)
	_, err = FitOLS(tab, NewSpec("bad", "F", "X"))
	assert.Assert(t, xerrors.Is(err, ErrInvalidSpec), "got %v", err)
}

func Test_FitRidge_Shrinks(t *testing.T) {
	tab := regressionTable(t, 200, 11)
	spec := NewSpec("r", "Y", "X1", "X2")
	ols, err := FitOLS(tab, spec)
	assert.NilError(t, err)
	ridge, err := FitRidge(tab, spec, 50)
	assert.NilError(t, err)
	assert.Assert(t, math.Abs(ridge.Coef[1]) < math.Abs(ols.Coef[1]),
		"ridge %v vs ols %v", ridge.Coef[1], ols.Coef[1])
	assert.Assert(t, ridge.Coef[1] > 0)
}

func Test_FitLasso_ZeroesNoisePredictor(t *testing.T) {
	tab := regressionTable(t, 200, 12)
	spec := NewSpec("l", "Y", "X1", "X2")
	m, err := FitLasso(tab, spec, 0.2)
	assert.NilError(t, err)
	assert.Assert(t, m.Coef[2] == 0, "noise coefficient %v", m.Coef[2])
	assert.Assert(t, m.Coef[1] > 1, "signal coefficient %v", m.Coef[1])
}

func Test_FitLasso_ZeroPenaltyMatchesOLS(t *testing.T) {
	tab := regressionTable(t, 200, 13)
	spec := NewSpec("l0", "Y", "X1", "X2")
	ols, err := FitOLS(tab, spec)
	assert.NilError(t, err)
	lasso, err := FitLasso(tab, spec, 0)
	assert.NilError(t, err)
	for j := range ols.Coef {
		assert.Assert(t, math.Abs(ols.Coef[j]-lasso.Coef[j]) < 1e-4,
			"coef %d: ols %v lasso %v", j, ols.Coef[j], lasso.Coef[j])
	}
}
