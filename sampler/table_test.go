package sampler

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDecodeTable_HeaderColumnsAnyOrder_ExtraColumnsDropped(t *testing.T) {
	// GIVEN a table with a row-id column and shuffled trait columns
	input := "id,openness,neuroticism,age,extraversion\n" +
		"1,0.9,0.1,33,0.5\n" +
		"2,0.8,0.2,41,0.4\n"

	// WHEN decoded
	table, err := DecodeTable(strings.NewReader(input), DefaultReadOptions())

	// THEN rows are in canonical trait order
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, Vector{0.1, 0.5, 0.9}, table.Rows[0])
	assert.Equal(t, Vector{0.2, 0.4, 0.8}, table.Rows[1])
}

func TestDecodeTable_CustomSeparatorAndSpaces(t *testing.T) {
	input := "neuroticism; extraversion; openness\n0.1; 0.2; 0.3\n"
	table, err := DecodeTable(strings.NewReader(input), ReadOptions{Sep: ';', Header: true})
	require.NoError(t, err)
	assert.Equal(t, []Vector{{0.1, 0.2, 0.3}}, table.Rows)
}

func TestDecodeTable_NoHeader_PositionalColumns(t *testing.T) {
	input := "0.1\t0.2\t0.3\t99\n0.4\t0.5\t0.6\t98\n"
	table, err := DecodeTable(strings.NewReader(input), ReadOptions{Sep: '\t'})
	require.NoError(t, err)
	assert.Equal(t, []Vector{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}, table.Rows)
}

func TestDecodeTable_OutOfDomainValuesAccepted(t *testing.T) {
	input := "neuroticism,extraversion,openness\n-3,1.5,42\n"
	table, err := DecodeTable(strings.NewReader(input), DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, Vector{-3, 1.5, 42}, table.Rows[0])
}

func TestDecodeTable_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  ReadOptions
		msg   string
	}{
		{"missing column", "neuroticism,openness\n0.1,0.2\n", DefaultReadOptions(), "extraversion"},
		{"case sensitive names", "Neuroticism,Extraversion,Openness\n0.1,0.2,0.3\n", DefaultReadOptions(), "neuroticism"},
		{"empty", "", DefaultReadOptions(), "header"},
		{"non numeric", "neuroticism,extraversion,openness\n0.1,high,0.3\n", DefaultReadOptions(), "extraversion"},
		{"nan", "neuroticism,extraversion,openness\nNaN,0.2,0.3\n", DefaultReadOptions(), "neuroticism"},
		{"short row", "neuroticism,extraversion,openness\n0.1,0.2\n", DefaultReadOptions(), "line 2"},
		{"too few positional columns", "0.1,0.2\n", ReadOptions{}, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTable(strings.NewReader(tt.input), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput), "got %v", err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestReadTable_MissingFile_ReturnsErrResourceNotFound(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"), DefaultReadOptions())
	assert.True(t, errors.Is(err, ErrResourceNotFound))
}

func TestReadTable_Directory_ReturnsErrResourceNotFound(t *testing.T) {
	_, err := ReadTable(t.TempDir(), DefaultReadOptions())
	assert.True(t, errors.Is(err, ErrResourceNotFound), "got %v", err)
	assert.False(t, errors.Is(err, ErrMalformedInput), "got %v", err)
}

func TestWriteTable_HeaderAndNoIndexColumn(t *testing.T) {
	table := &Table{Rows: []Vector{{0, 0.25, 1}, {0.5, 0.125, 0.75}}}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table, DefaultWriteOptions()))

	assert.Equal(t, "neuroticism,extraversion,openness\n0,0.25,1\n0.5,0.125,0.75\n", buf.String())
}

func TestWriteTable_NoHeaderCustomSeparator(t *testing.T) {
	table := &Table{Rows: []Vector{{0.1, 0.2, 0.3}}}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table, WriteOptions{Sep: '|'}))

	assert.Equal(t, "0.1|0.2|0.3\n", buf.String())
}

func TestWriteTable_InvalidSeparator_ReturnsError(t *testing.T) {
	table := &Table{Rows: []Vector{{0.1, 0.2, 0.3}}}
	var buf bytes.Buffer
	assert.Error(t, WriteTable(&buf, table, WriteOptions{Sep: '\n', Header: true}))
}

func TestTable_LabelsArePositionalFromOne(t *testing.T) {
	table := NewTable(2)
	assert.Equal(t, 1, table.Append(Vector{0.1, 0.2, 0.3}))
	assert.Equal(t, 2, table.Append(Vector{0.4, 0.5, 0.6}))

	v, ok := table.Row(1)
	assert.True(t, ok)
	assert.Equal(t, Vector{0.1, 0.2, 0.3}, v)
	_, ok = table.Row(0)
	assert.False(t, ok)
	_, ok = table.Row(3)
	assert.False(t, ok)

	assert.Equal(t, []float64{0.2, 0.5}, table.Column(Extraversion))
	assert.Nil(t, table.Column("agreeableness"))
	assert.Equal(t, [][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}, table.Matrix())
}
