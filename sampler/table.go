package sampler

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadOptions controls how a reference table is parsed.
// A zero Sep means comma.
type ReadOptions struct {
	Sep    rune
	Header bool // first row holds column names
}

// DefaultReadOptions reads comma-separated data with a header row.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Sep: ',', Header: true}
}

// WriteOptions controls how a sample table is serialized.
// A zero Sep means comma.
type WriteOptions struct {
	Sep    rune
	Header bool // emit the trait names as the first row
}

// DefaultWriteOptions writes comma-separated data with a header row, the
// format the simulation loads agents from.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Sep: ',', Header: true}
}

func sepOrComma(r rune) rune {
	if r == 0 {
		return ','
	}
	return r
}

// ReadTable loads a delimited reference table and reduces it to the three
// trait columns. With a header the trait columns are looked up by name in any
// order and other columns are dropped. Without a header the first three
// columns are taken in canonical trait order.
func ReadTable(path string, opts ReadOptions) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrResourceNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "opening reference table %s", path)
	}
	defer func() { _ = file.Close() }()
	if info, err := file.Stat(); err == nil && !info.Mode().IsRegular() {
		return nil, errors.Wrapf(ErrResourceNotFound, "%s is not a regular file", path)
	}

	t, err := DecodeTable(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return t, nil
}

// DecodeTable parses a delimited table from r. See ReadTable.
func DecodeTable(r io.Reader, opts ReadOptions) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = sepOrComma(opts.Sep)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	columns := [NumTraits]int{0, 1, 2}
	line := 0
	if opts.Header {
		header, err := reader.Read()
		if err == io.EOF {
			return nil, errors.Wrap(ErrMalformedInput, "empty table, expected a header row")
		}
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "reading header: %v", err)
		}
		line++
		columns, err = locateTraitColumns(header)
		if err != nil {
			return nil, err
		}
	}

	width := 0
	for _, c := range columns {
		width = max(width, c+1)
	}

	t := NewTable(0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "%v", err)
		}
		line++
		if len(row) < width {
			return nil, errors.Wrapf(ErrMalformedInput, "line %d has %d fields, need at least %d", line, len(row), width)
		}
		var v Vector
		for i, c := range columns {
			val, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, errors.Wrapf(ErrMalformedInput, "line %d: %s value %q is not a finite number", line, Traits[i], row[c])
			}
			v[i] = val
		}
		t.Append(v)
	}
	return t, nil
}

// locateTraitColumns maps each trait to its position in the header.
func locateTraitColumns(header []string) ([NumTraits]int, error) {
	var columns [NumTraits]int
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for i, tr := range Traits {
		c, ok := index[string(tr)]
		if !ok {
			missing = append(missing, string(tr))
			continue
		}
		columns[i] = c
	}
	if len(missing) > 0 {
		return columns, errors.Wrapf(ErrMalformedInput, "missing required columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

// WriteTable serializes t to w without an index column. Values use the
// shortest representation that parses back to the same float64.
func WriteTable(w io.Writer, t *Table, opts WriteOptions) error {
	writer := csv.NewWriter(w)
	writer.Comma = sepOrComma(opts.Sep)

	if opts.Header {
		if err := writer.Write(TraitNames()); err != nil {
			return errors.Wrap(err, "writing header")
		}
	}
	row := make([]string, NumTraits)
	for i, v := range t.Rows {
		for j := range v {
			row[j] = strconv.FormatFloat(v[j], 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "writing row %d", i+1)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flushing table")
}
