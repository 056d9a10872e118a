package timeseries

import (
	"math"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	s, err := New([][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Len() != 3 || s.NumVars() != 2 {
		t.Errorf("got %dx%d, want 3x2", s.Len(), s.NumVars())
	}
	if s.At(1, 1) != 4 {
		t.Errorf("At(1,1) = %f, want 4", s.At(1, 1))
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := New([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestNames(t *testing.T) {
	s, _ := New([][]float64{{1, 2}, {3, 4}})
	if s.Name(0) != "y1" || s.Name(1) != "y2" {
		t.Errorf("default names wrong: %q, %q", s.Name(0), s.Name(1))
	}
	s.Names = []string{"gdp", "cons"}
	if s.Name(1) != "cons" {
		t.Errorf("Name(1) = %q, want cons", s.Name(1))
	}
	j, err := s.Index("gdp")
	if err != nil || j != 0 {
		t.Errorf("Index(gdp) = %d, %v", j, err)
	}
	if _, err := s.Index("nope"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestDiff(t *testing.T) {
	s, _ := New([][]float64{{1, 10}, {3, 7}, {6, 7}})
	d := s.Diff()
	if d.Len() != 2 {
		t.Fatalf("Diff length = %d, want 2", d.Len())
	}
	want := [][]float64{{2, -3}, {3, 0}}
	for i := range want {
		for j := range want[i] {
			if d.At(i, j) != want[i][j] {
				t.Errorf("Diff[%d][%d] = %f, want %f", i, j, d.At(i, j), want[i][j])
			}
		}
	}
}

func TestDiffPanicsOnShortSeries(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for one-observation series")
		}
	}()
	s, _ := New([][]float64{{1, 2}})
	s.Diff()
}

func TestSlice(t *testing.T) {
	s, _ := New([][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}})
	sub := s.Slice(1, 3)
	if sub.Len() != 2 || sub.At(0, 0) != 3 {
		t.Errorf("Slice wrong: len=%d, first=%f", sub.Len(), sub.At(0, 0))
	}
	// The slice is a copy; the original must not change.
	sub.Y.Set(0, 0, 99)
	if s.At(1, 0) != 3 {
		t.Error("Slice aliases the original data")
	}
}

func TestLagAlignsWithSlice(t *testing.T) {
	s, _ := New([][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}})
	lagged := s.Lag(1)
	head := s.Slice(1, 4)
	if lagged.Len() != head.Len() {
		t.Fatalf("Lag and Slice lengths differ: %d vs %d", lagged.Len(), head.Len())
	}
	if lagged.At(0, 0) != 1 || head.At(0, 0) != 2 {
		t.Errorf("lag alignment wrong: %f, %f", lagged.At(0, 0), head.At(0, 0))
	}
}

func TestMeanStd(t *testing.T) {
	s, _ := New([][]float64{{1, 0}, {2, 0}, {3, 0}})
	if m := s.Mean(0); math.Abs(m-2) > 1e-12 {
		t.Errorf("Mean = %f, want 2", m)
	}
	if sd := s.Std(0); math.Abs(sd-1) > 1e-12 {
		t.Errorf("Std = %f, want 1", sd)
	}
}

func TestLog(t *testing.T) {
	s, _ := New([][]float64{{math.E, 1}, {1, -1}})
	l := s.Log()
	if math.Abs(l.At(0, 0)-1) > 1e-12 {
		t.Errorf("Log(e) = %f, want 1", l.At(0, 0))
	}
	if !math.IsNaN(l.At(1, 1)) {
		t.Error("Log of negative value should be NaN")
	}
}

func TestTimestampsCarry(t *testing.T) {
	ts := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	s, err := NewWithTimestamps(ts, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("NewWithTimestamps failed: %v", err)
	}
	d := s.Diff()
	if len(d.Timestamps) != 2 || !d.Timestamps[0].Equal(ts[1]) {
		t.Error("Diff did not carry timestamps correctly")
	}
}
