/*
Package tables implements the column-oriented dataset layer: typed
columns loaded once from delimited text and immutable thereafter.
Row subsets for partitions and folds are produced by Take, which
copies values instead of aliasing the source.
*/
package tables

import (
	"golang.org/x/xerrors"
)

/*
Kind discriminates column representations. Numeric columns hold
float64 values; Factor columns hold integer level codes plus the
level list. Codes are assigned by sorted label order, so the
label-to-code mapping is fixed for a given value set regardless of
row order.
*/
type Kind int

const (
	Numeric Kind = iota
	Factor
)

/*
Column is one named column of a Table. Exactly one of Floats/Codes
is populated depending on Kind.
*/
type Column struct {
	Name   string
	Kind   Kind
	Floats []float64 // Kind == Numeric
	Codes  []int     // Kind == Factor
	Levels []string  // Kind == Factor; Codes index into Levels
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Codes)
}

// Level returns the label for a level code.
func (c *Column) Level(code int) string { return c.Levels[code] }

// LevelCode returns the code for a label, or -1 when the label is
// not a level of this column.
func (c *Column) LevelCode(label string) int {
	for i, l := range c.Levels {
		if l == label {
			return i
		}
	}
	return -1
}

/*
Table is an ordered collection of equal-length columns with unique
names. The zero value is not usable; construct with New or ReadCSV.
*/
type Table struct {
	cols   []Column
	byName map[string]int
	length int
}

// New builds a table from columns. All columns must have the same
// length and distinct names.
func New(cols []Column) (*Table, error) {
	t := &Table{cols: cols, byName: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := t.byName[c.Name]; dup {
			return nil, xerrors.Errorf("duplicate column %q", c.Name)
		}
		t.byName[c.Name] = i
		if i == 0 {
			t.length = c.Len()
		} else if c.Len() != t.length {
			return nil, xerrors.Errorf("column %q has %d values, want %d", c.Name, c.Len(), t.length)
		}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.length }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Col returns the named column, or nil when absent.
func (t *Table) Col(name string) *Column {
	i, ok := t.byName[name]
	if !ok {
		return nil
	}
	return &t.cols[i]
}

// Take returns a new table containing the given rows in the given
// order. Level lists are shared; value slices are copied.
func (t *Table) Take(rows []int) *Table {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		nc := Column{Name: c.Name, Kind: c.Kind, Levels: c.Levels}
		switch c.Kind {
		case Numeric:
			nc.Floats = make([]float64, len(rows))
			for j, r := range rows {
				nc.Floats[j] = c.Floats[r]
			}
		case Factor:
			nc.Codes = make([]int, len(rows))
			for j, r := range rows {
				nc.Codes[j] = c.Codes[r]
			}
		}
		cols[i] = nc
	}
	nt, _ := New(cols) // invariants hold by construction
	return nt
}
