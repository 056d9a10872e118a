package timeseries

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCSVFromReader(t *testing.T) {
	csvData := `date,gdp,cons,junk
2020-01-01,100.0,80.0,x
2020-04-01,101.5,80.5,x
2020-07-01,99.0,79.0,x
`
	opts := DefaultCSVOptions()
	opts.DateColumn = "date"
	opts.ValueColumns = []string{"gdp", "cons"}
	s, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}
	if s.Len() != 3 || s.NumVars() != 2 {
		t.Fatalf("got %dx%d, want 3x2", s.Len(), s.NumVars())
	}
	if s.Name(0) != "gdp" || s.Name(1) != "cons" {
		t.Errorf("names wrong: %q, %q", s.Name(0), s.Name(1))
	}
	if s.At(1, 0) != 101.5 {
		t.Errorf("At(1,0) = %f, want 101.5", s.At(1, 0))
	}
	if len(s.Timestamps) != 3 {
		t.Errorf("timestamps not parsed: %d", len(s.Timestamps))
	}
}

func TestLoadCSVSkipsBadRows(t *testing.T) {
	csvData := `a,b
1.0,2.0
NA,3.0
4.0,5.0
`
	s, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("got %d rows, want 2 (NA row skipped)", s.Len())
	}
}

func TestLoadCSVHeaderless(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.HasHeader = false
	s, err := LoadCSVFromReader(strings.NewReader("1,2\n3,4\n"), opts)
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}
	if s.Len() != 2 || s.Name(0) != "y1" {
		t.Errorf("headerless load wrong: len=%d name=%q", s.Len(), s.Name(0))
	}
}

func TestLoadCSVUnknownColumn(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.ValueColumns = []string{"missing"}
	if _, err := LoadCSVFromReader(strings.NewReader("a,b\n1,2\n"), opts); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := New([][]float64{{1.5, 2.5}, {3.5, 4.5}})
	s.Names = []string{"a", "b"}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := SaveCSV(s, path, false); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}
	defer os.Remove(path)

	got, err := LoadCSV(path, nil)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if got.Len() != 2 || got.NumVars() != 2 {
		t.Fatalf("round trip wrong shape: %dx%d", got.Len(), got.NumVars())
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got.At(i, j) != s.At(i, j) {
				t.Errorf("round trip [%d][%d] = %f, want %f", i, j, got.At(i, j), s.At(i, j))
			}
		}
	}
	if got.Name(1) != "b" {
		t.Errorf("round trip name = %q, want b", got.Name(1))
	}
}
