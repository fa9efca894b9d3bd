// Package report exports analysis results as CSV and as an HTML chart page.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/algo-tremor/measure/tremor"
)

// TimeLayout is the CSV timestamp format: RFC 3339 with milliseconds.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

var header = []string{"timestamp", "frequency", "amplitude"}

var ErrHeader = errors.New("report: unexpected csv header")

// Row is one exported significant peak.
type Row struct {
	Timestamp time.Time
	Frequency float64
	Amplitude float64
}

// Rows returns one row per significant peak of res, all stamped with at.
func Rows(res tremor.Result, at time.Time) []Row {
	out := make([]Row, len(res.Peaks))
	for i, p := range res.Peaks {
		out[i] = Row{Timestamp: at, Frequency: p.Frequency, Amplitude: p.Power}
	}
	return out
}

// WriteCSV writes the significant peaks of res. Frequencies keep two
// decimals and amplitudes four; the timestamp is written in UTC.
func WriteCSV(w io.Writer, res tremor.Result, at time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	ts := at.UTC().Format(TimeLayout)
	for _, r := range Rows(res, at) {
		rec := []string{
			ts,
			strconv.FormatFloat(r.Frequency, 'f', 2, 64),
			strconv.FormatFloat(r.Amplitude, 'f', 4, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if strings.Join(head, ",") != strings.Join(header, ",") {
		return nil, fmt.Errorf("%w: %q", ErrHeader, strings.Join(head, ","))
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, rec[0])
		if err != nil {
			return nil, fmt.Errorf("report: line %d: %w", line, err)
		}
		f, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("report: line %d: %w", line, err)
		}
		a, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("report: line %d: %w", line, err)
		}
		rows = append(rows, Row{Timestamp: ts, Frequency: f, Amplitude: a})
	}
}

// FileName returns the export file name for a capture finished at at.
// Colons are replaced so the name is valid on every filesystem.
func FileName(at time.Time) string {
	return "tremor_" + strings.ReplaceAll(at.UTC().Format(TimeLayout), ":", "-") + ".csv"
}
