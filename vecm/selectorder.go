package vecm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/govecm/timeseries"
)

// LagOrderResult holds information criteria for candidate numbers of lagged
// differences 0..maxLags and the minimizing order per criterion.
type LagOrderResult struct {
	AIC  int
	BIC  int
	HQIC int
	FPE  int

	AICs  []float64
	BICs  []float64
	HQICs []float64
	FPEs  []float64
}

// SelectOrder computes information criteria for every candidate lag order up
// to maxLags and reports the minimizer of each criterion. Candidates are
// compared on the common sample obtained by trimming the series start, so a
// shorter lag order is not rewarded for using more observations. The
// deterministic and exogenous settings of cfg are applied to every
// candidate; cfg.DiffLags and cfg.Rank are ignored (estimation is at full
// rank, where the criteria reduce to those of the corresponding level VAR).
func SelectOrder(series *timeseries.Series, maxLags int, cfg Config) (*LagOrderResult, error) {
	if maxLags < 0 {
		return nil, &InvalidArgumentError{Msg: "maxLags must be nonnegative"}
	}
	if series == nil {
		return nil, &InvalidArgumentError{Msg: "nil series"}
	}
	nobsTot := series.Len()
	neqs := series.NumVars()
	if nobsTot <= maxLags+1 {
		return nil, &InsufficientDataError{Nobs: nobsTot, Needed: maxLags + 1,
			Msg: "sample shorter than the largest candidate presample"}
	}

	out := &LagOrderResult{
		AICs:  make([]float64, maxLags+1),
		BICs:  make([]float64, maxLags+1),
		HQICs: make([]float64, maxLags+1),
		FPEs:  make([]float64, maxLags+1),
	}
	for p := 0; p <= maxLags; p++ {
		start := maxLags - p
		sub := series.Slice(start, nobsTot)

		c := cfg
		c.DiffLags = p
		c.Rank = neqs
		c.Exog = sliceRows(cfg.Exog, start)
		c.ExogCoint = sliceRows(cfg.ExogCoint, start)
		model, err := New(c)
		if err != nil {
			return nil, err
		}
		res, err := model.Fit(sub)
		if err != nil {
			return nil, err
		}

		var chol mat.Cholesky
		if !chol.Factorize(res.SigmaU) {
			return nil, &NumericalInstabilityError{Msg: "innovation covariance is not positive definite"}
		}
		ld := chol.LogDet()
		T := float64(res.Nobs)

		// Free parameters: the unrestricted Pi_aug block plus the short-run
		// regressors, per equation.
		perEq := neqs + res.em.ndetCoint + res.em.nregress
		total := float64(neqs * perEq)

		out.AICs[p] = ld + 2/T*total
		out.BICs[p] = ld + math.Log(T)/T*total
		out.HQICs[p] = ld + 2*math.Log(math.Log(T))/T*total
		if T > float64(perEq) {
			out.FPEs[p] = math.Pow((T+float64(perEq))/(T-float64(perEq)), float64(neqs)) * math.Exp(ld)
		} else {
			out.FPEs[p] = math.Inf(1)
		}
	}

	out.AIC = argmin(out.AICs)
	out.BIC = argmin(out.BICs)
	out.HQIC = argmin(out.HQICs)
	out.FPE = argmin(out.FPEs)
	return out, nil
}

func sliceRows(m *mat.Dense, start int) *mat.Dense {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	return mat.DenseCopyOf(m.Slice(start, r, 0, c))
}

func argmin(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x < xs[best] {
			best = i
		}
	}
	return best
}
