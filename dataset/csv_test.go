package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Dataset
	}{
		{
			name:  "header and month extraction",
			input: "id,value\n3/2017, 12.5\n11/2018,7\n",
			want:  Dataset{{3, 12.5}, {11, 7}},
		},
		{
			name:  "empty lines skipped",
			input: "1/1,2\n\n\n2/1,4\n",
			want:  Dataset{{1, 2}, {2, 4}},
		},
		{
			name:  "plain numbers without slash",
			input: "1,3\n2,5\n3,7\n",
			want:  Dataset{{1, 3}, {2, 5}, {3, 7}},
		},
		{
			name:  "test file has no target",
			input: "id\n4/2019\n5/2019\n",
			want:  Dataset{{4}, {5}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCSVParseError(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
		value  string
	}{
		{"bad target", "id,value\n1/2017,3\n2/2017,abc\n", 3, 2, "abc"},
		{"bad month", "x/2017,3\n", 1, 1, "x/2017"},
		{"missing value", "1/2017,\n", 1, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.input))
			require.Error(t, err)

			var parseErr *errors.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, tt.column, parseErr.Column)
			assert.Equal(t, tt.value, parseErr.Value)

			var numErr *strconv.NumError
			assert.True(t, errors.As(err, &numErr))
		})
	}
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,value\n1/2020,3\n"), 0o600))

	ds, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, Dataset{{1, 3}}, ds)

	_, err = LoadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestWritePredictions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePredictions(&buf, []float64{1, 2.5, -0.125, 1e-7}))
	assert.Equal(t, "value\n1\n2.5\n-0.125\n1e-07\n", buf.String())

	buf.Reset()
	require.NoError(t, WritePredictions(&buf, nil))
	assert.Equal(t, "value\n", buf.String())
}

func TestWritePredictionsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	preds := []float64{0.1, 1.0 / 3.0, 42}
	require.NoError(t, WritePredictionsFile(path, preds))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, len(preds)+1)
	assert.Equal(t, "value", lines[0])
	for i, p := range preds {
		got, err := strconv.ParseFloat(lines[i+1], 64)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}
