package tables

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/stat"
)

/*
Summary holds per-column descriptive statistics. For numeric columns
the five-number summary plus mean and standard deviation is filled;
for factors the per-level counts.
*/
type Summary struct {
	Name string
	Kind Kind

	Mean, StdDev             float64
	Min, Q1, Median, Q3, Max float64

	LevelCounts map[string]int
}

// Summarize computes a Summary for every column, in column order.
func (t *Table) Summarize() []Summary {
	out := make([]Summary, 0, len(t.cols))
	for i := range t.cols {
		c := &t.cols[i]
		s := Summary{Name: c.Name, Kind: c.Kind}
		switch c.Kind {
		case Numeric:
			sorted := append([]float64(nil), c.Floats...)
			sort.Float64s(sorted)
			s.Mean = stat.Mean(sorted, nil)
			s.StdDev = stat.StdDev(sorted, nil)
			s.Min = sorted[0]
			s.Max = sorted[len(sorted)-1]
			s.Q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
			s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
			s.Q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
		case Factor:
			s.LevelCounts = make(map[string]int, len(c.Levels))
			for _, code := range c.Codes {
				s.LevelCounts[c.Levels[code]]++
			}
		}
		out = append(out, s)
	}
	return out
}

// Corr returns the Pearson correlation of two numeric columns.
func (t *Table) Corr(a, b string) (float64, error) {
	ca, cb := t.Col(a), t.Col(b)
	if ca == nil || cb == nil {
		return 0, xerrors.Errorf("unknown column in corr(%s, %s)", a, b)
	}
	if ca.Kind != Numeric || cb.Kind != Numeric {
		return 0, xerrors.Errorf("corr(%s, %s): both columns must be numeric", a, b)
	}
	return stat.Correlation(ca.Floats, cb.Floats, nil), nil
}

// String formats one summary as a single report line.
func (s Summary) String() string {
	if s.Kind == Numeric {
		return fmt.Sprintf("%-16s mean=%.3f sd=%.3f min=%.3f q1=%.3f med=%.3f q3=%.3f max=%.3f",
			s.Name, s.Mean, s.StdDev, s.Min, s.Q1, s.Median, s.Q3, s.Max)
	}
	levels := make([]string, 0, len(s.LevelCounts))
	for l := range s.LevelCounts {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("%s=%d", l, s.LevelCounts[l])
	}
	return fmt.Sprintf("%-16s %s", s.Name, strings.Join(parts, " "))
}
