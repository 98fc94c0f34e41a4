package table

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_SamplesAsRows(t *testing.T) {
	in := "sample_id,ASV1,ASV2,ASV3\n" +
		"S1,10,0,3\n" +
		"S2,5,5,0\n"

	tbl, err := ReadCSV(strings.NewReader(in), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, tbl.Samples())
	assert.Equal(t, []string{"ASV1", "ASV2", "ASV3"}, tbl.Taxa())
	assert.Equal(t, []int{10, 0, 3}, tbl.Row(0))
	assert.Equal(t, []int{5, 5, 0}, tbl.Row(1))
}

func TestReadCSV_TaxaAsRows(t *testing.T) {
	// GIVEN the DADA2-style orientation (one row per taxon)
	in := "taxon,S1,S2\n" +
		"ASV1,10,5\n" +
		"ASV2,0,5\n" +
		"ASV3,3,0\n"

	tbl, err := ReadCSV(strings.NewReader(in), ReadOptions{Orientation: TaxaAsRows})
	require.NoError(t, err)

	// THEN the in-memory table is normalized to samples-as-rows
	assert.Equal(t, []string{"S1", "S2"}, tbl.Samples())
	assert.Equal(t, []string{"ASV1", "ASV2", "ASV3"}, tbl.Taxa())
	assert.Equal(t, []int{10, 0, 3}, tbl.Row(0))
	assert.Equal(t, []int{5, 5, 0}, tbl.Row(1))
}

func TestReadCSV_Tab(t *testing.T) {
	in := "id\tASV1\tASV2\nS1\t1\t2\n"
	tbl, err := ReadCSV(strings.NewReader(in), ReadOptions{Comma: '\t'})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, tbl.Row(0))
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"header only", "id,ASV1\n"},
		{"no data column", "id\nS1\n"},
		{"non-integer cell", "id,ASV1\nS1,abc\n"},
		{"float cell", "id,ASV1\nS1,1.5\n"},
		{"ragged record", "id,ASV1,ASV2\nS1,1\n"},
		{"negative count", "id,ASV1\nS1,-4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), ReadOptions{})
			assert.Error(t, err)
		})
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl := validTable(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	back, err := ReadCSV(&buf, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, tbl.Samples(), back.Samples())
	assert.Equal(t, tbl.Taxa(), back.Taxa())
	assert.Equal(t, tbl.Counts(), back.Counts())
}

func TestWriteNpy(t *testing.T) {
	tbl, err := New([]string{"S1", "S2"}, []string{"A", "B", "C"},
		[][]int{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteNpy(&buf, tbl))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("\x93NUMPY")), "npy magic")
	require.Greater(t, len(out), 6*8, "header plus 6 int64 values")

	// The payload is the row-major matrix in little-endian int64, and nothing
	// follows it.
	var got [6]int64
	require.NoError(t, binary.Read(bytes.NewReader(out[len(out)-6*8:]), binary.LittleEndian, &got))
	assert.Equal(t, [6]int64{1, 2, 3, 4, 5, 6}, got)
}
