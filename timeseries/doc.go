// Package timeseries provides multivariate time series data structures and utilities.
//
// The central type is Series, an immutable nobs x neqs block of observations
// with optional timestamps and variable names. Operations return new Series
// values and never mutate the receiver.
//
// # Construction
//
// Build a series from slices or a gonum matrix:
//
//	s, err := timeseries.New([][]float64{
//	    {1.0, 2.0},
//	    {1.1, 2.1},
//	    {1.3, 2.2},
//	})
//
//	s, err := timeseries.NewFromMatrix(y, []string{"gdp", "cons"})
//
// # Transformations
//
// First differences and slicing preserve variable names:
//
//	dy := s.Diff()          // nobs-1 observations
//	head := s.Slice(0, 100) // observations [0, 100)
//	logs := s.Log()
//
// # CSV I/O
//
// Load every numeric column, or a named subset:
//
//	s, err := timeseries.LoadCSV("macro.csv", nil)
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumns = []string{"gdp", "cons", "inv"}
//	opts.DateColumn = "quarter"
//	s, err = timeseries.LoadCSV("macro.csv", opts)
package timeseries
