package vecm

import (
	"errors"
	"math"
	"testing"
)

func TestTraceIsSumOfMaxEig(t *testing.T) {
	jres, err := CointJohansen(simCointegrated(300, 21), 0, 1)
	if err != nil {
		t.Fatalf("CointJohansen failed: %v", err)
	}
	for r := 0; r < jres.Neqs; r++ {
		sum := 0.0
		for i := r; i < jres.Neqs; i++ {
			sum += jres.MaxEigStat[i]
		}
		if math.Abs(jres.TraceStat[r]-sum) > 1e-8 {
			t.Errorf("trace(%d) = %f, sum of maxeig = %f", r, jres.TraceStat[r], sum)
		}
	}
}

func TestJohansenStatisticsNonnegative(t *testing.T) {
	jres, err := CointJohansen(simIndependentWalks(250, 3, 22), -1, 1)
	if err != nil {
		t.Fatalf("CointJohansen failed: %v", err)
	}
	for r := 0; r < jres.Neqs; r++ {
		if jres.TraceStat[r] < 0 || jres.MaxEigStat[r] < 0 {
			t.Errorf("negative statistic at rank %d", r)
		}
	}
	// Trace statistics shrink as the null rank grows.
	for r := 1; r < jres.Neqs; r++ {
		if jres.TraceStat[r] > jres.TraceStat[r-1] {
			t.Errorf("trace stats not decreasing at rank %d", r)
		}
	}
}

func TestJohansenDetOrderValidation(t *testing.T) {
	var argErr *InvalidArgumentError
	if _, err := CointJohansen(simCointegrated(100, 23), 2, 1); !errors.As(err, &argErr) {
		t.Error("expected InvalidArgumentError for detOrder 2")
	}
}

func TestCritJohansenTables(t *testing.T) {
	// Spot checks against Osterwald-Lenum (1992).
	got, err := critJohansen(1, 0, true)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	want := [3]float64{2.7055, 3.8415, 6.6349}
	if got != want {
		t.Errorf("trace crit for 1 common trend, constant: %v, want %v", got, want)
	}

	got, err = critJohansen(2, 0, true)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	want = [3]float64{13.4294, 15.4943, 19.9349}
	if got != want {
		t.Errorf("trace crit for 2 common trends, constant: %v, want %v", got, want)
	}

	got, err = critJohansen(2, -1, false)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	want = [3]float64{9.4748, 11.2246, 15.0923}
	if got != want {
		t.Errorf("maxeig crit for 2 common trends, no det: %v, want %v", got, want)
	}

	if _, err := critJohansen(13, 0, true); err == nil {
		t.Error("expected error for more than 12 common trends")
	}
	if _, err := critJohansen(0, 0, true); err == nil {
		t.Error("expected error for zero common trends")
	}
}

func TestSelectCointRankRecoversRankOne(t *testing.T) {
	// Over repeated draws from a process with a single common trend, the 5%
	// trace test should pick rank 1 most of the time. The simulation has no
	// drift, so the no-deterministic-term tables apply; the constant case
	// over-rejects the true-rank null when the true drift is zero.
	hits := 0
	total := 20
	for seed := int64(0); seed < int64(total); seed++ {
		res, err := SelectCointRank(simCointegrated(400, 100+seed), -1, 1, "trace", 0.05)
		if err != nil {
			t.Fatalf("SelectCointRank failed: %v", err)
		}
		if res.Rank == 1 {
			hits++
		}
		if res.Rank == 0 {
			t.Errorf("seed %d: failed to reject no cointegration", 100+seed)
		}
	}
	if hits < total*3/4 {
		t.Errorf("rank 1 selected only %d/%d times", hits, total)
	}
}

func TestSelectCointRankIndependentWalks(t *testing.T) {
	// Independent random walks should mostly yield rank 0.
	hits := 0
	total := 20
	for seed := int64(0); seed < int64(total); seed++ {
		res, err := SelectCointRank(simIndependentWalks(400, 2, 200+seed), -1, 1, "trace", 0.05)
		if err != nil {
			t.Fatalf("SelectCointRank failed: %v", err)
		}
		if res.Rank == 0 {
			hits++
		}
	}
	if hits < total*3/4 {
		t.Errorf("rank 0 selected only %d/%d times", hits, total)
	}
}

func TestSelectCointRankValidation(t *testing.T) {
	s := simCointegrated(100, 24)
	if _, err := SelectCointRank(s, 0, 1, "trace", 0.07); err == nil {
		t.Error("expected error for unsupported significance level")
	}
	if _, err := SelectCointRank(s, 0, 1, "wilks", 0.05); err == nil {
		t.Error("expected error for unknown method")
	}
	if _, err := SelectCointRank(s, 0, 1, "maxeig", 0.01); err != nil {
		t.Errorf("maxeig at 1%% should work: %v", err)
	}
}

func TestSelectOrder(t *testing.T) {
	res, err := SelectOrder(simCointegrated(300, 25), 5, Config{Deterministic: "co"})
	if err != nil {
		t.Fatalf("SelectOrder failed: %v", err)
	}
	if len(res.AICs) != 6 {
		t.Fatalf("got %d AIC values, want 6", len(res.AICs))
	}
	for _, sel := range []int{res.AIC, res.BIC, res.HQIC, res.FPE} {
		if sel < 0 || sel > 5 {
			t.Errorf("selected order %d outside candidate range", sel)
		}
	}
	// BIC penalizes harder than AIC, so it never picks a longer lag.
	if res.BIC > res.AIC {
		t.Errorf("BIC order %d exceeds AIC order %d", res.BIC, res.AIC)
	}
	// The simulated process has no short-run dynamics, so small orders
	// should win.
	if res.BIC > 2 {
		t.Errorf("BIC picked order %d for a dynamics-free process", res.BIC)
	}
}

func TestSelectOrderErrors(t *testing.T) {
	if _, err := SelectOrder(nil, 3, Config{}); err == nil {
		t.Error("expected error for nil series")
	}
	if _, err := SelectOrder(simCointegrated(100, 26), -1, Config{}); err == nil {
		t.Error("expected error for negative maxLags")
	}
	short := simCointegrated(5, 27)
	var insuff *InsufficientDataError
	if _, err := SelectOrder(short, 10, Config{}); !errors.As(err, &insuff) {
		t.Error("expected InsufficientDataError for short sample")
	}
}
