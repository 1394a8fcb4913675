package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// headerField marks a header row when it appears as the first field.
const headerField = "id"

// LoadCSV reads comma-separated rows from r.
//
// Empty lines and rows whose first field is "id" are skipped. The first field
// is date-like: only the part before the first "/" is parsed, so "3/2017"
// becomes 3. Every other field is parsed as a float after trimming spaces.
// Any field that fails to parse aborts the load with a ParseError.
func LoadCSV(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var ds Dataset
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}
		if len(record) == 0 || record[0] == headerField {
			continue
		}

		row := make([]float64, len(record))
		for i, field := range record {
			raw := field
			if i == 0 {
				raw, _, _ = strings.Cut(field, "/")
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				line, _ := reader.FieldPos(i)
				return nil, errors.NewParseError(line, i+1, field, err)
			}
			row[i] = v
		}
		ds = append(ds, row)
	}
	return ds, nil
}

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	ds, err := LoadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return ds, nil
}

// WritePredictions writes a "value" header followed by one prediction per
// line, using the shortest representation that round-trips.
func WritePredictions(w io.Writer, preds []float64) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("value\n"); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, p := range preds {
		if _, err := bw.WriteString(strconv.FormatFloat(p, 'g', -1, 64) + "\n"); err != nil {
			return errors.Wrap(err, "write prediction")
		}
	}
	return errors.Wrap(bw.Flush(), "flush predictions")
}

// WritePredictionsFile creates or truncates path and writes preds to it.
func WritePredictionsFile(path string, preds []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return WritePredictions(f, preds)
}
