package vecm

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func runRRR(t *testing.T, seed int64, det DetSpec, diffLags int) *ReducedRankStatistics {
	t.Helper()
	em, err := buildEndogMatrices(simCointegrated(300, seed), det, diffLags, nil, nil)
	if err != nil {
		t.Fatalf("buildEndogMatrices failed: %v", err)
	}
	rrr, err := reducedRank(em)
	if err != nil {
		t.Fatalf("reducedRank failed: %v", err)
	}
	return rrr
}

func TestEigenvaluesInRangeAndSorted(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		rrr := runRRR(t, seed, DetSpec{ConstOutside: true}, 2)
		prev := 1.0
		for i, lam := range rrr.Eigenvalues {
			if lam < 0 || lam >= 1 {
				t.Errorf("seed %d: eigenvalue %d = %f outside [0,1)", seed, i, lam)
			}
			if lam > prev {
				t.Errorf("seed %d: eigenvalues not sorted descending at %d", seed, i)
			}
			prev = lam
		}
	}
}

func TestEigenDeterminism(t *testing.T) {
	a := runRRR(t, 42, DetSpec{}, 1)
	b := runRRR(t, 42, DetSpec{}, 1)
	for i := range a.Eigenvalues {
		if a.Eigenvalues[i] != b.Eigenvalues[i] {
			t.Errorf("eigenvalue %d differs between identical runs", i)
		}
	}
	ra, ca := a.Eigenvectors.Dims()
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			if a.Eigenvectors.At(i, j) != b.Eigenvectors.At(i, j) {
				t.Fatalf("eigenvector entry (%d,%d) differs between identical runs", i, j)
			}
		}
	}
}

func TestEigenvectorNormalization(t *testing.T) {
	rrr := runRRR(t, 7, DetSpec{ConstInside: true}, 1)
	k1 := rrr.S11.SymmetricDim()
	for i := 0; i < k1; i++ {
		v := rrr.Eigenvectors.ColView(i)
		var sv mat.VecDense
		sv.MulVec(rrr.S11, v)
		norm := mat.Dot(v, &sv)
		if math.Abs(norm-1) > 1e-8 {
			t.Errorf("v_%d' S11 v_%d = %f, want 1", i, i, norm)
		}
	}
}

func TestSMatrixShapes(t *testing.T) {
	// With a constant and trend inside the relation, the levels block gains
	// two rows.
	rrr := runRRR(t, 8, DetSpec{ConstInside: true, TrendInside: true}, 1)
	if d := rrr.S00.SymmetricDim(); d != 2 {
		t.Errorf("S00 dim %d, want 2", d)
	}
	if d := rrr.S11.SymmetricDim(); d != 4 {
		t.Errorf("S11 dim %d, want 4", d)
	}
	r, c := rrr.S01.Dims()
	if r != 2 || c != 4 {
		t.Errorf("S01 dims %dx%d, want 2x4", r, c)
	}
}

func TestRankDeficientRegressorsRejected(t *testing.T) {
	// 2 variables, 20 observations, 12 lagged differences: the short-run
	// design has 24 regressors against 7 effective observations.
	series := simCointegrated(20, 9)
	_, err := buildEndogMatrices(series, DetSpec{}, 12, nil, nil)
	if err == nil {
		t.Fatal("expected InsufficientDataError for oversized lag order")
	}
	var insuff *InsufficientDataError
	if !errors.As(err, &insuff) {
		t.Errorf("got %T, want InsufficientDataError", err)
	}
}
