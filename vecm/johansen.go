package vecm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/govecm/timeseries"
)

// JohansenResult holds the full output of the Johansen cointegration test:
// the eigenproblem solution together with trace and maximum-eigenvalue
// statistics and their critical values for every candidate rank.
type JohansenResult struct {
	Eigenvalues  []float64
	Eigenvectors *mat.Dense

	// TraceStat[r] and MaxEigStat[r] test the null of rank r, r = 0..neqs-1,
	// against the tabulated (90%, 95%, 99%) critical values.
	TraceStat  []float64
	TraceCrit  [][3]float64
	MaxEigStat []float64
	MaxEigCrit [][3]float64

	DetOrder int
	DiffLags int
	Neqs     int
	Nobs     int
}

// CointJohansen runs the Johansen cointegration test on a series. detOrder
// selects the deterministic case of the classical tables: -1 for no
// deterministic terms, 0 for a constant, 1 for a constant and linear trend,
// both entering outside the cointegration relation. diffLags is the number
// of lagged differences in the auxiliary VECM.
func CointJohansen(series *timeseries.Series, detOrder, diffLags int) (*JohansenResult, error) {
	var det DetSpec
	switch detOrder {
	case -1:
	case 0:
		det.ConstOutside = true
	case 1:
		det.ConstOutside = true
		det.TrendOutside = true
	default:
		return nil, &InvalidArgumentError{Msg: "detOrder must be -1, 0 or 1"}
	}

	em, err := buildEndogMatrices(series, det, diffLags, nil, nil)
	if err != nil {
		return nil, err
	}
	rrr, err := reducedRank(em)
	if err != nil {
		return nil, err
	}

	neqs := em.neqs
	T := float64(rrr.nobs)
	out := &JohansenResult{
		Eigenvalues:  rrr.Eigenvalues,
		Eigenvectors: rrr.Eigenvectors,
		TraceStat:    make([]float64, neqs),
		TraceCrit:    make([][3]float64, neqs),
		MaxEigStat:   make([]float64, neqs),
		MaxEigCrit:   make([][3]float64, neqs),
		DetOrder:     detOrder,
		DiffLags:     diffLags,
		Neqs:         neqs,
		Nobs:         rrr.nobs,
	}
	for r := 0; r < neqs; r++ {
		sum := 0.0
		for i := r; i < neqs; i++ {
			sum += math.Log(1 - rrr.Eigenvalues[i])
		}
		out.TraceStat[r] = -T * sum
		out.MaxEigStat[r] = -T * math.Log(1-rrr.Eigenvalues[r])

		tc, err := critJohansen(neqs-r, detOrder, true)
		if err != nil {
			return nil, err
		}
		mc, err := critJohansen(neqs-r, detOrder, false)
		if err != nil {
			return nil, err
		}
		out.TraceCrit[r] = tc
		out.MaxEigCrit[r] = mc
	}
	return out, nil
}

// CointRankResult holds the outcome of the sequential rank selection.
type CointRankResult struct {
	Rank   int
	Neqs   int
	Method string  // "trace" or "maxeig"
	Signif float64 // 0.10, 0.05 or 0.01

	// TestStats[r] and CritValues[r] for the ranks that were actually
	// tested, r = 0..len-1; the scan stops at the first non-rejection.
	TestStats  []float64
	CritValues []float64
}

// SelectCointRank selects the cointegration rank with the sequential
// Johansen procedure: starting from rank zero, the null "rank = r" is tested
// and r is returned at the first non-rejection; neqs if every null is
// rejected. method is "trace" or "maxeig"; signif must be 0.10, 0.05 or
// 0.01.
func SelectCointRank(series *timeseries.Series, detOrder, diffLags int, method string, signif float64) (*CointRankResult, error) {
	var col int
	switch signif {
	case 0.10:
		col = 0
	case 0.05:
		col = 1
	case 0.01:
		col = 2
	default:
		return nil, &InvalidArgumentError{Msg: "signif must be 0.10, 0.05 or 0.01"}
	}
	if method != "trace" && method != "maxeig" {
		return nil, &InvalidArgumentError{Msg: "method must be \"trace\" or \"maxeig\""}
	}

	jres, err := CointJohansen(series, detOrder, diffLags)
	if err != nil {
		return nil, err
	}
	out := &CointRankResult{
		Rank:   jres.Neqs,
		Neqs:   jres.Neqs,
		Method: method,
		Signif: signif,
	}
	for r := 0; r < jres.Neqs; r++ {
		stat := jres.TraceStat[r]
		crit := jres.TraceCrit[r][col]
		if method == "maxeig" {
			stat = jres.MaxEigStat[r]
			crit = jres.MaxEigCrit[r][col]
		}
		out.TestStats = append(out.TestStats, stat)
		out.CritValues = append(out.CritValues, crit)
		if stat < crit {
			out.Rank = r
			break
		}
	}
	return out, nil
}
