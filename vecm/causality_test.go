package vecm

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/sartorproj/govecm/timeseries"
)

func TestGrangerCausality(t *testing.T) {
	res := fitRank(t, simCointegrated(300, 31), 1, 2, "co")
	g, err := res.TestGrangerCausality([]int{0}, []int{1})
	if err != nil {
		t.Fatalf("TestGrangerCausality failed: %v", err)
	}
	if g.DF != res.KAr {
		t.Errorf("df = %d, want KAr = %d for a 1-on-1 test", g.DF, res.KAr)
	}
	if g.Statistic < 0 {
		t.Errorf("negative Wald statistic %f", g.Statistic)
	}
	if g.PValue < 0 || g.PValue > 1 {
		t.Errorf("p-value %f outside [0,1]", g.PValue)
	}
}

func TestGrangerCausalityDetectsDriver(t *testing.T) {
	// y2 follows lagged differences of y1 strongly; y1 evolves on its own.
	// Testing whether y1 Granger-causes y2 should reject clearly.
	rng := rand.New(rand.NewSource(32))
	n := 400
	data := make([][]float64, n)
	y1, y2 := 0.0, 0.0
	prevD1 := 0.0
	for i := 0; i < n; i++ {
		d1 := rng.NormFloat64()
		y1 += d1
		y2 += 0.9*prevD1 + 0.3*rng.NormFloat64() + 0.1*(y1-y2)
		prevD1 = d1
		data[i] = []float64{y1, y2}
	}
	series, _ := timeseries.New(data)
	res := fitRank(t, series, 1, 1, "n")

	g, err := res.TestGrangerCausality([]int{1}, []int{0})
	if err != nil {
		t.Fatalf("TestGrangerCausality failed: %v", err)
	}
	if g.PValue > 0.01 {
		t.Errorf("strong driver not detected: p = %f", g.PValue)
	}
}

func TestInstCausalitySymmetry(t *testing.T) {
	res := fitRank(t, simCointegrated(300, 33), 1, 1, "co")
	ab, err := res.TestInstCausality([]int{0}, []int{1})
	if err != nil {
		t.Fatalf("TestInstCausality failed: %v", err)
	}
	ba, err := res.TestInstCausality([]int{1}, []int{0})
	if err != nil {
		t.Fatalf("TestInstCausality failed: %v", err)
	}
	if math.Abs(ab.Statistic-ba.Statistic) > 1e-10 {
		t.Errorf("statistic not symmetric: %f vs %f", ab.Statistic, ba.Statistic)
	}
	if ab.DF != ba.DF {
		t.Errorf("df not symmetric: %d vs %d", ab.DF, ba.DF)
	}
}

func TestInstCausalityDetectsCorrelation(t *testing.T) {
	// Innovations with strong contemporaneous correlation.
	rng := rand.New(rand.NewSource(34))
	n := 400
	data := make([][]float64, n)
	trend := 0.0
	for i := 0; i < n; i++ {
		common := rng.NormFloat64()
		trend += rng.NormFloat64()
		data[i] = []float64{
			trend + common + 0.3*rng.NormFloat64(),
			trend + common + 0.3*rng.NormFloat64(),
		}
	}
	series, _ := timeseries.New(data)
	res := fitRank(t, series, 1, 1, "n")
	g, err := res.TestInstCausality([]int{0}, []int{1})
	if err != nil {
		t.Fatalf("TestInstCausality failed: %v", err)
	}
	if g.PValue > 0.01 {
		t.Errorf("contemporaneous correlation not detected: p = %f", g.PValue)
	}
}

func TestCausalityArgumentValidation(t *testing.T) {
	res := fitRank(t, simCointegrated(200, 35), 1, 1, "n")
	var argErr *InvalidArgumentError

	if _, err := res.TestGrangerCausality(nil, []int{1}); !errors.As(err, &argErr) {
		t.Error("expected InvalidArgumentError for empty caused set")
	}
	if _, err := res.TestGrangerCausality([]int{0}, []int{0}); !errors.As(err, &argErr) {
		t.Error("expected InvalidArgumentError for overlapping sets")
	}
	if _, err := res.TestGrangerCausality([]int{0}, []int{5}); !errors.As(err, &argErr) {
		t.Error("expected InvalidArgumentError for out-of-range index")
	}
	if _, err := res.TestInstCausality([]int{-1}, []int{1}); !errors.As(err, &argErr) {
		t.Error("expected InvalidArgumentError for negative index")
	}
}

func TestVechHelpers(t *testing.T) {
	// vech index layout for k=3: (0,0) (1,0) (2,0) (1,1) (2,1) (2,2).
	want := map[[2]int]int{
		{0, 0}: 0, {1, 0}: 1, {2, 0}: 2,
		{1, 1}: 3, {2, 1}: 4, {2, 2}: 5,
	}
	for ij, idx := range want {
		if got := vechIndex(ij[0], ij[1], 3); got != idx {
			t.Errorf("vechIndex(%d,%d) = %d, want %d", ij[0], ij[1], got, idx)
		}
	}
}

func TestDuplicationPinv(t *testing.T) {
	// Dplus vec(S) must equal vech(S) for a symmetric S.
	k := 3
	dp := duplicationPinv(k)
	s := [][]float64{
		{2, 0.5, -1},
		{0.5, 3, 0.25},
		{-1, 0.25, 1.5},
	}
	vec := make([]float64, k*k)
	for j := 0; j < k; j++ {
		for i := 0; i < k; i++ {
			vec[j*k+i] = s[i][j]
		}
	}
	for row := 0; row < k*(k+1)/2; row++ {
		got := 0.0
		for col := 0; col < k*k; col++ {
			got += dp.At(row, col) * vec[col]
		}
		// Recover (i, j) from the vech position.
		found := false
		for j := 0; j < k && !found; j++ {
			for i := j; i < k && !found; i++ {
				if vechIndex(i, j, k) == row {
					if math.Abs(got-s[i][j]) > 1e-12 {
						t.Errorf("Dplus vec at %d = %f, want %f", row, got, s[i][j])
					}
					found = true
				}
			}
		}
	}
}
