package model

import (
	"fmt"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"

	"crossval/tables"
)

// encodeColumn expands one table column into its design columns:
// a numeric column is itself, a k-level factor becomes k-1 dummy
// columns against the level coded 0.
func encodeColumn(c *tables.Column) ([][]float64, []string) {
	if c.Kind == tables.Numeric {
		return [][]float64{c.Floats}, []string{c.Name}
	}
	n := len(c.Codes)
	cols := make([][]float64, 0, len(c.Levels)-1)
	names := make([]string, 0, len(c.Levels)-1)
	for lvl := 1; lvl < len(c.Levels); lvl++ {
		d := make([]float64, n)
		for i, code := range c.Codes {
			if code == lvl {
				d[i] = 1
			}
		}
		cols = append(cols, d)
		names = append(names, c.Name+"="+c.Levels[lvl])
	}
	return cols, names
}

// encodeTerm expands a term; an interaction is the elementwise
// product over every combination of its columns' encodings.
func encodeTerm(t *tables.Table, term Term) ([][]float64, []string) {
	cols := [][]float64{nil}
	names := []string{""}
	for _, name := range term.Columns {
		enc, encNames := encodeColumn(t.Col(name))
		next := make([][]float64, 0, len(cols)*len(enc))
		nextNames := make([]string, 0, len(cols)*len(enc))
		for i, base := range cols {
			for j, e := range enc {
				var prod []float64
				if base == nil {
					prod = append([]float64(nil), e...)
				} else {
					prod = make([]float64, len(e))
					for k := range e {
						prod[k] = base[k] * e[k]
					}
				}
				label := encNames[j]
				if names[i] != "" {
					label = names[i] + ":" + encNames[j]
				}
				next = append(next, prod)
				nextNames = append(nextNames, label)
			}
		}
		cols, names = next, nextNames
	}
	return cols, names
}

/*
Design is a fitted-model design matrix: intercept in column 0, then
the encoded terms. Names label the non-intercept columns for
reporting.
*/
type Design struct {
	X     *mat.Dense
	Y     []float64
	Names []string
}

// BuildDesign validates the spec on t and assembles the design
// matrix and outcome vector. A constant explanatory column on these
// rows makes the fit undefined and yields ErrInsufficientData.
func BuildDesign(t *tables.Table, spec Spec) (*Design, error) {
	if err := spec.Validate(t); err != nil {
		return nil, err
	}
	y, err := outcomeVector(t, spec.Outcome)
	if err != nil {
		return nil, err
	}

	n := t.Len()
	if n == 0 {
		return nil, xerrors.Errorf("spec %s: empty table: %w", spec.Name, ErrInsufficientData)
	}
	cols := [][]float64{}
	names := []string{}
	for _, term := range spec.Terms {
		enc, encNames := encodeTerm(t, term)
		cols = append(cols, enc...)
		names = append(names, encNames...)
	}
	for i, c := range cols {
		if constant(c) {
			return nil, xerrors.Errorf("spec %s: column %s is constant on %d rows: %w",
				spec.Name, names[i], n, ErrInsufficientData)
		}
	}

	x := mat.NewDense(n, len(cols)+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, c := range cols {
		x.SetCol(j+1, c)
	}
	return &Design{X: x, Y: y, Names: names}, nil
}

func constant(c []float64) bool {
	for _, v := range c[1:] {
		if v != c[0] {
			return false
		}
	}
	return true
}

// CoefString formats a coefficient vector against the design names.
func (d *Design) CoefString(coef []float64) string {
	s := fmt.Sprintf("(Intercept)=%.6f", coef[0])
	for i, name := range d.Names {
		s += fmt.Sprintf(" %s=%.6f", name, coef[i+1])
	}
	return s
}
