package validate

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"

	"crossval/model"
	"crossval/tables"
)

/*
Confusion tabulates predicted-vs-actual label counts for a binary
classifier on a held-out set. Counts[p][a] is the number of rows
predicted as class code p whose actual class code is a. Labels names
the class codes. Positive is the class code treated as "positive"
for sensitivity/specificity; it is a labeling convention, not a
property of the data, so callers must choose it.
*/
type Confusion struct {
	Labels   [2]string
	Counts   [2][2]int
	Positive int
}

// EvaluateHoldout refits spec once on the full training set, predicts
// the test set, and tabulates the confusion counts. positive names
// the outcome level to treat as the positive class.
func EvaluateHoldout(spec model.Spec, train, test *tables.Table, positive string) (*Confusion, error) {
	labels, err := model.OutcomeLabels(train, spec.Outcome)
	if err != nil {
		return nil, err
	}
	pos := -1
	for i, l := range labels {
		if l == positive {
			pos = i
		}
	}
	if pos < 0 {
		return nil, xerrors.Errorf("positive class %q is not a level of %q (levels %v): %w",
			positive, spec.Outcome, labels, model.ErrInvalidSpec)
	}

	m, err := model.FitLogit(train, spec)
	if err != nil {
		return nil, err
	}
	pred, err := m.Predict(test)
	if err != nil {
		return nil, err
	}
	actual, err := model.OutcomeCodes(test, spec.Outcome)
	if err != nil {
		return nil, err
	}

	c := &Confusion{Labels: labels, Positive: pos}
	for i, p := range pred {
		c.Counts[p][actual[i]]++
	}
	return c, nil
}

// Total returns the number of tabulated rows.
func (c *Confusion) Total() int {
	return c.Counts[0][0] + c.Counts[0][1] + c.Counts[1][0] + c.Counts[1][1]
}

// Accuracy is the fraction of rows on the diagonal.
func (c *Confusion) Accuracy() float64 {
	return float64(c.Counts[0][0]+c.Counts[1][1]) / float64(c.Total())
}

// Sensitivity is the fraction of actual positives predicted positive.
func (c *Confusion) Sensitivity() float64 {
	p := c.Positive
	return float64(c.Counts[p][p]) / float64(c.Counts[0][p]+c.Counts[1][p])
}

// Specificity is the fraction of actual negatives predicted negative.
func (c *Confusion) Specificity() float64 {
	q := 1 - c.Positive
	return float64(c.Counts[q][q]) / float64(c.Counts[0][q]+c.Counts[1][q])
}

// String renders the 2x2 table with the positive class marked.
func (c *Confusion) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%12s  actual=%s  actual=%s\n", "", c.Labels[0], c.Labels[1])
	for p := 0; p < 2; p++ {
		mark := ""
		if p == c.Positive {
			mark = " (+)"
		}
		fmt.Fprintf(&b, "pred=%s%s %6d %10d\n", c.Labels[p], mark, c.Counts[p][0], c.Counts[p][1])
	}
	return b.String()
}
