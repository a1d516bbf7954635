package tables

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"golang.org/x/xerrors"
)

// ReadCSV loads a delimited text file with a header row into a
// Table. Files ending in .xz are decompressed on the fly. A column
// is numeric when every cell parses as a float; otherwise it is a
// factor with codes assigned by sorted label order. Empty cells are
// rejected.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, xerrors.Errorf("open xz stream %s: %w", path, err)
		}
		r = xr
	}
	t, err := ReadCSVFrom(r)
	if err != nil {
		return nil, xerrors.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// ReadCSVFrom reads CSV data with a header row from r.
func ReadCSVFrom(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, xerrors.Errorf("read header: %w", err)
	}

	raw := make([][]string, len(header))
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("row %d: %w", row, err)
		}
		for i, v := range rec {
			if v == "" {
				return nil, xerrors.Errorf("row %d: empty value in column %q", row, header[i])
			}
			raw[i] = append(raw[i], v)
		}
		row++
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = inferColumn(name, raw[i])
	}
	return New(cols)
}

// inferColumn decides numeric vs factor from the full value set.
func inferColumn(name string, values []string) Column {
	floats := make([]float64, len(values))
	numeric := true
	for i, v := range values {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			numeric = false
			break
		}
		floats[i] = x
	}
	if numeric {
		return Column{Name: name, Kind: Numeric, Floats: floats}
	}

	seen := make(map[string]bool, 8)
	for _, v := range values {
		seen[v] = true
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)
	code := make(map[string]int, len(levels))
	for i, l := range levels {
		code[l] = i
	}
	codes := make([]int, len(values))
	for i, v := range values {
		codes[i] = code[v]
	}
	return Column{Name: name, Kind: Factor, Codes: codes, Levels: levels}
}
