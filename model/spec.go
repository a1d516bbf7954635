/*
Package model implements model specifications over a tables.Table and
the fits the pipeline needs: a logistic GLM for classification plus
ordinary, ridge and lasso least squares for single-model analysis.
All linear algebra delegates to gonum.
*/
package model

import (
	"strings"

	"golang.org/x/xerrors"

	"crossval/tables"
)

/*
Term is one design term: a single column, or a product of columns
(an interaction) when Columns has more than one entry.
*/
type Term struct {
	Columns []string
}

func (t Term) String() string { return strings.Join(t.Columns, ":") }

/*
Spec identifies the outcome column and the explanatory terms of one
candidate model. Specs are fixed by the analyst before a run and never
mutated.
*/
type Spec struct {
	Name    string
	Outcome string
	Terms   []Term
}

// NewSpec builds a spec from feature strings, where "A:B" denotes an
// interaction of A and B.
func NewSpec(name, outcome string, features ...string) Spec {
	terms := make([]Term, len(features))
	for i, f := range features {
		terms[i] = Term{Columns: strings.Split(f, ":")}
	}
	return Spec{Name: name, Outcome: outcome, Terms: terms}
}

// Width returns the number of explanatory terms; it is the tie-break
// key for model selection (fewer terms wins).
func (s Spec) Width() int { return len(s.Terms) }

// Features returns the term strings in order.
func (s Spec) Features() []string {
	out := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		out[i] = t.String()
	}
	return out
}

// Validate checks the spec against a table: every referenced column
// must exist and the outcome must be binary.
func (s Spec) Validate(t *tables.Table) error {
	if _, err := outcomeLabels(t, s.Outcome); err != nil {
		return err
	}
	for _, term := range s.Terms {
		if len(term.Columns) == 0 {
			return xerrors.Errorf("spec %s: empty term: %w", s.Name, ErrInvalidSpec)
		}
		for _, name := range term.Columns {
			if t.Col(name) == nil {
				return xerrors.Errorf("spec %s: unknown column %q: %w", s.Name, name, ErrInvalidSpec)
			}
			if name == s.Outcome {
				return xerrors.Errorf("spec %s: outcome %q used as a feature: %w", s.Name, name, ErrInvalidSpec)
			}
		}
	}
	return nil
}

// outcomeLabels resolves the two class labels of the outcome column,
// ordered by their codes: index 0 is the label coded 0. A numeric
// outcome must take values only in {0, 1}; a factor outcome must have
// exactly two levels.
func outcomeLabels(t *tables.Table, outcome string) ([2]string, error) {
	c := t.Col(outcome)
	if c == nil {
		return [2]string{}, xerrors.Errorf("unknown outcome column %q: %w", outcome, ErrInvalidSpec)
	}
	switch c.Kind {
	case tables.Factor:
		if len(c.Levels) != 2 {
			return [2]string{}, xerrors.Errorf("outcome %q has %d levels, want 2: %w", outcome, len(c.Levels), ErrInvalidSpec)
		}
		return [2]string{c.Levels[0], c.Levels[1]}, nil
	default:
		for _, v := range c.Floats {
			if v != 0 && v != 1 {
				return [2]string{}, xerrors.Errorf("numeric outcome %q has value %v outside {0,1}: %w", outcome, v, ErrInvalidSpec)
			}
		}
		return [2]string{"0", "1"}, nil
	}
}

// OutcomeLabels is the exported form used by the validation layer to
// name confusion-matrix classes.
func OutcomeLabels(t *tables.Table, outcome string) ([2]string, error) {
	return outcomeLabels(t, outcome)
}

// OutcomeCodes extracts the outcome as 0/1 class codes, for
// comparing against Predict output.
func OutcomeCodes(t *tables.Table, outcome string) ([]int, error) {
	y, err := outcomeVector(t, outcome)
	if err != nil {
		return nil, err
	}
	codes := make([]int, len(y))
	for i, v := range y {
		codes[i] = int(v)
	}
	return codes, nil
}

// outcomeVector extracts the outcome as 0/1 values.
func outcomeVector(t *tables.Table, outcome string) ([]float64, error) {
	if _, err := outcomeLabels(t, outcome); err != nil {
		return nil, err
	}
	c := t.Col(outcome)
	if c.Kind == tables.Numeric {
		return append([]float64(nil), c.Floats...), nil
	}
	y := make([]float64, len(c.Codes))
	for i, code := range c.Codes {
		y[i] = float64(code)
	}
	return y, nil
}
