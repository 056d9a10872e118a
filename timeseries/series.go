package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Series represents a multivariate time series: nobs observations of neqs
// variables, stored row-per-observation. A Series is treated as immutable
// once constructed; all operations return new Series values.
type Series struct {
	Y          *mat.Dense  // nobs x neqs
	Timestamps []time.Time // optional, presentation only
	Names      []string    // optional variable names, length neqs
}

// New creates a series from row-per-observation data. All rows must have the
// same number of columns.
func New(values [][]float64) (*Series, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, errors.New("timeseries: empty data")
	}
	neqs := len(values[0])
	data := make([]float64, 0, len(values)*neqs)
	for i, row := range values {
		if len(row) != neqs {
			return nil, fmt.Errorf("timeseries: row %d has %d columns, want %d", i, len(row), neqs)
		}
		data = append(data, row...)
	}
	return &Series{Y: mat.NewDense(len(values), neqs, data)}, nil
}

// NewFromMatrix creates a series from an nobs x neqs matrix. The matrix is
// copied. names may be nil, in which case default names y1, y2, ... apply.
func NewFromMatrix(y *mat.Dense, names []string) (*Series, error) {
	if y == nil {
		return nil, errors.New("timeseries: nil matrix")
	}
	_, neqs := y.Dims()
	if names != nil && len(names) != neqs {
		return nil, fmt.Errorf("timeseries: got %d names for %d variables", len(names), neqs)
	}
	return &Series{Y: mat.DenseCopyOf(y), Names: names}, nil
}

// NewWithTimestamps creates a series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values [][]float64) (*Series, error) {
	s, err := New(values)
	if err != nil {
		return nil, err
	}
	if len(timestamps) != s.Len() {
		return nil, errors.New("timeseries: timestamps and values must have the same length")
	}
	s.Timestamps = timestamps
	return s, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	r, _ := s.Y.Dims()
	return r
}

// NumVars returns the number of variables.
func (s *Series) NumVars() int {
	_, c := s.Y.Dims()
	return c
}

// At returns the value of variable j at observation i.
func (s *Series) At(i, j int) float64 {
	return s.Y.At(i, j)
}

// Name returns the name of variable j, defaulting to "y<j+1>".
func (s *Series) Name(j int) string {
	if j < len(s.Names) && s.Names[j] != "" {
		return s.Names[j]
	}
	return fmt.Sprintf("y%d", j+1)
}

// Index returns the column index of the named variable.
func (s *Series) Index(name string) (int, error) {
	for j := 0; j < s.NumVars(); j++ {
		if s.Name(j) == name {
			return j, nil
		}
	}
	return -1, fmt.Errorf("timeseries: unknown variable %q", name)
}

// Col returns a copy of column j.
func (s *Series) Col(j int) []float64 {
	return mat.Col(nil, j, s.Y)
}

// Mean calculates the arithmetic mean of variable j.
func (s *Series) Mean(j int) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Y.At(i, j)
	}
	return sum / float64(n)
}

// Std calculates the sample standard deviation of variable j.
func (s *Series) Std(j int) float64 {
	n := s.Len()
	if n < 2 {
		return 0
	}
	mean := s.Mean(j)
	sumSq := 0.0
	for i := 0; i < n; i++ {
		d := s.Y.At(i, j) - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// Diff calculates the first difference of every variable. The result has one
// observation fewer than the receiver. Diff panics if the series has fewer
// than two observations.
func (s *Series) Diff() *Series {
	n, k := s.Y.Dims()
	if n < 2 {
		panic("timeseries: Diff needs at least two observations")
	}
	out := mat.NewDense(n-1, k, nil)
	for i := 1; i < n; i++ {
		for j := 0; j < k; j++ {
			out.Set(i-1, j, s.Y.At(i, j)-s.Y.At(i-1, j))
		}
	}
	var ts []time.Time
	if len(s.Timestamps) == n {
		ts = append(ts, s.Timestamps[1:]...)
	}
	return &Series{Y: out, Timestamps: ts, Names: s.Names}
}

// Lag returns the series shifted back by k periods: observation t of the
// result is observation t of the receiver, truncated to the first nobs-k
// rows so that it aligns with Slice(k, nobs).
func (s *Series) Lag(k int) *Series {
	n, _ := s.Y.Dims()
	if k <= 0 || k >= n {
		return s.Copy()
	}
	return s.Slice(0, n-k)
}

// Slice returns observations [start, end). It panics when the range is
// empty or out of bounds.
func (s *Series) Slice(start, end int) *Series {
	n, k := s.Y.Dims()
	if start < 0 || end > n || start >= end {
		panic("timeseries: Slice range out of bounds")
	}
	out := mat.DenseCopyOf(s.Y.Slice(start, end, 0, k))
	var ts []time.Time
	if len(s.Timestamps) == n {
		ts = append(ts, s.Timestamps[start:end]...)
	}
	return &Series{Y: out, Timestamps: ts, Names: s.Names}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	ts := make([]time.Time, len(s.Timestamps))
	copy(ts, s.Timestamps)
	names := make([]string, len(s.Names))
	copy(names, s.Names)
	return &Series{Y: mat.DenseCopyOf(s.Y), Timestamps: ts, Names: names}
}

// Log applies the natural logarithm to every value. Non-positive values map
// to NaN.
func (s *Series) Log() *Series {
	n, k := s.Y.Dims()
	out := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			if v := s.Y.At(i, j); v > 0 {
				out.Set(i, j, math.Log(v))
			} else {
				out.Set(i, j, math.NaN())
			}
		}
	}
	ts := make([]time.Time, len(s.Timestamps))
	copy(ts, s.Timestamps)
	return &Series{Y: out, Timestamps: ts, Names: s.Names}
}
