package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn   string   // Column name for dates (optional)
	ValueColumns []string // Columns to load; empty means every numeric column
	DateFormat   string   // Date format (default: "2006-01-02")
	HasHeader    bool     // Whether CSV has a header row (default: true)
	Delimiter    rune     // Field delimiter (default: ',')
	SkipRows     int      // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads a multivariate time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a multivariate time series from an io.Reader.
// Rows with missing or unparsable values in any selected column are skipped.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	var names []string
	var valueIdx []int
	dateIdx := -1

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i := range header {
			header[i] = strings.TrimSpace(strings.Trim(header[i], "\""))
		}

		if opts.DateColumn != "" {
			for i, h := range header {
				if h == opts.DateColumn {
					dateIdx = i
					break
				}
			}
		} else {
			for i, h := range header {
				if h == "ds" || h == "date" || h == "Date" {
					dateIdx = i
					break
				}
			}
		}

		if len(opts.ValueColumns) > 0 {
			for _, want := range opts.ValueColumns {
				found := -1
				for i, h := range header {
					if h == want {
						found = i
						break
					}
				}
				if found == -1 {
					return nil, fmt.Errorf("timeseries: column %q not found in CSV header", want)
				}
				valueIdx = append(valueIdx, found)
				names = append(names, want)
			}
		} else {
			// Every column except the date column.
			for i, h := range header {
				if i == dateIdx {
					continue
				}
				valueIdx = append(valueIdx, i)
				names = append(names, h)
			}
		}
	}

	var rows [][]float64
	var timestamps []time.Time

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if valueIdx == nil {
			// Headerless file: every column is a value column.
			for i := range record {
				valueIdx = append(valueIdx, i)
				names = append(names, fmt.Sprintf("y%d", i+1))
			}
		}

		row := make([]float64, len(valueIdx))
		ok := true
		for j, idx := range valueIdx {
			if idx >= len(record) {
				ok = false
				break
			}
			valStr := strings.TrimSpace(strings.Trim(record[idx], "\""))
			if valStr == "" || valStr == "NA" || valStr == "NaN" || valStr == "null" {
				ok = false
				break
			}
			v, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				ok = false
				break
			}
			row[j] = v
		}
		if !ok {
			continue
		}
		rows = append(rows, row)

		if dateIdx >= 0 && dateIdx < len(record) {
			dateStr := strings.TrimSpace(strings.Trim(record[dateIdx], "\""))
			if ts, err := time.Parse(opts.DateFormat, dateStr); err == nil {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(rows) == 0 {
		return nil, errors.New("timeseries: no valid data found in CSV")
	}

	s, err := New(rows)
	if err != nil {
		return nil, err
	}
	s.Names = names
	if len(timestamps) == len(rows) {
		s.Timestamps = timestamps
	}
	return s, nil
}

// SaveCSV saves a multivariate time series to a CSV file.
func SaveCSV(series *Series, filename string, includeIndex bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	// Header
	if includeIndex {
		if len(series.Timestamps) == series.Len() {
			writer.WriteString("ds")
		} else {
			writer.WriteString("index")
		}
	}
	for j := 0; j < series.NumVars(); j++ {
		if j > 0 || includeIndex {
			writer.WriteString(",")
		}
		writer.WriteString(series.Name(j))
	}
	writer.WriteString("\n")

	for i := 0; i < series.Len(); i++ {
		if includeIndex {
			if len(series.Timestamps) == series.Len() {
				writer.WriteString(series.Timestamps[i].Format("2006-01-02"))
			} else {
				writer.WriteString(strconv.Itoa(i + 1))
			}
		}
		for j := 0; j < series.NumVars(); j++ {
			if j > 0 || includeIndex {
				writer.WriteString(",")
			}
			writer.WriteString(strconv.FormatFloat(series.At(i, j), 'f', -1, 64))
		}
		writer.WriteString("\n")
	}

	return nil
}
