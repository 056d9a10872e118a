package vecm

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/govecm/timeseries"
)

// endogMatrices bundles the regression matrices of the two-step reduced-rank
// procedure. All matrices are oriented variables-by-time and share the same
// effective sample length T = nobsTot - diffLags - 1:
//
//	deltaY  first differences of the levels           (neqs x T)
//	y1T     the levels themselves                     (neqs x T)
//	yLag1   one-period-lagged levels, with the
//	        inside-relation deterministic terms
//	        appended as extra rows                    (neqs+ndetCoint x T)
//	deltaX  lagged differences stacked over the
//	        outside-relation regressors; nil when
//	        the model has neither                     (nregress x T)
//
// The bundle is built once per fit and never mutated.
type endogMatrices struct {
	y1T    *mat.Dense
	deltaY *mat.Dense
	yLag1  *mat.Dense
	deltaX *mat.Dense

	neqs      int
	nobsTot   int
	diffLags  int
	T         int
	ndetCoint int // rows appended to yLag1 (incl. exogCoint columns)
	nregress  int // rows of deltaX
}

// buildEndogMatrices prepares the design matrices for a series under a given
// deterministic specification. exog and exogCoint are optional user
// regressors with one row per raw observation.
func buildEndogMatrices(series *timeseries.Series, det DetSpec, diffLags int, exog, exogCoint *mat.Dense) (*endogMatrices, error) {
	if series == nil {
		return nil, &InvalidArgumentError{Msg: "nil series"}
	}
	neqs := series.NumVars()
	nobsTot := series.Len()
	if neqs < 2 {
		return nil, &InsufficientDataError{Nobs: nobsTot,
			Msg: "a VECM requires at least two variables"}
	}
	if diffLags < 0 {
		return nil, &ConfigurationError{Msg: "diffLags must be nonnegative"}
	}
	if nobsTot <= diffLags+1 {
		return nil, &InsufficientDataError{Nobs: nobsTot, Needed: diffLags + 1,
			Msg: "sample shorter than the presample"}
	}
	if exog != nil {
		if r, _ := exog.Dims(); r != nobsTot {
			return nil, &ConfigurationError{Msg: "exog must have one row per observation"}
		}
	}
	if exogCoint != nil {
		if r, _ := exogCoint.Dims(); r != nobsTot {
			return nil, &ConfigurationError{Msg: "exogCoint must have one row per observation"}
		}
	}

	p := diffLags + 1 // k_ar
	T := nobsTot - p

	// Levels, variables by time.
	yAll := mat.NewDense(neqs, nobsTot, nil)
	for j := 0; j < neqs; j++ {
		for t := 0; t < nobsTot; t++ {
			yAll.Set(j, t, series.At(t, j))
		}
	}

	// First differences over the full sample.
	dAll := mat.NewDense(neqs, nobsTot-1, nil)
	for j := 0; j < neqs; j++ {
		for t := 1; t < nobsTot; t++ {
			dAll.Set(j, t-1, yAll.At(j, t)-yAll.At(j, t-1))
		}
	}

	em := &endogMatrices{
		y1T:      mat.DenseCopyOf(yAll.Slice(0, neqs, p, nobsTot)),
		deltaY:   mat.DenseCopyOf(dAll.Slice(0, neqs, p-1, nobsTot-1)),
		neqs:     neqs,
		nobsTot:  nobsTot,
		diffLags: diffLags,
		T:        T,
	}

	// Lagged levels plus inside-relation deterministic rows, in the fixed
	// order constant, trend, user regressors.
	lagRows := [][]float64{}
	for j := 0; j < neqs; j++ {
		lagRows = append(lagRows, mat.Row(nil, j, yAll.Slice(0, neqs, p-1, nobsTot-1)))
	}
	if det.ConstInside {
		lagRows = append(lagRows, ones(T))
		em.ndetCoint++
	}
	if det.TrendInside {
		lagRows = append(lagRows, linearTrend(T, p, true))
		em.ndetCoint++
	}
	if exogCoint != nil {
		_, m := exogCoint.Dims()
		// Inside-relation regressors act with a one-period lag, like the
		// levels they accompany.
		for j := 0; j < m; j++ {
			col := mat.Col(nil, j, exogCoint)
			lagRows = append(lagRows, col[p-1:nobsTot-1])
		}
		em.ndetCoint += m
	}
	em.yLag1 = rowStack(lagRows, T)

	// Outside-relation regressors: lagged differences first, then constant,
	// seasonal dummies, trend, user regressors. Coefficient slicing in the
	// assembler depends on this order.
	dxRows := [][]float64{}
	for lag := 1; lag <= diffLags; lag++ {
		lagged := dAll.Slice(0, neqs, p-1-lag, nobsTot-1-lag)
		for j := 0; j < neqs; j++ {
			dxRows = append(dxRows, mat.Row(nil, j, lagged))
		}
	}
	if det.ConstOutside {
		dxRows = append(dxRows, ones(T))
	}
	if det.Seasons > 0 {
		dummies := seasonalDummies(det.Seasons, T, det.FirstSeason+diffLags+1, det.SeasonsCentered)
		for j := 0; j < det.Seasons-1; j++ {
			dxRows = append(dxRows, mat.Col(nil, j, dummies))
		}
	}
	if det.TrendOutside {
		dxRows = append(dxRows, linearTrend(T, p, false))
	}
	if exog != nil {
		_, m := exog.Dims()
		for j := 0; j < m; j++ {
			col := mat.Col(nil, j, exog)
			dxRows = append(dxRows, col[p:nobsTot])
		}
	}
	em.nregress = len(dxRows)
	if em.nregress > 0 {
		em.deltaX = rowStack(dxRows, T)
	}

	// The residualization in the eigenproblem setup regresses on deltaX;
	// with as many regressors as observations it is rank deficient.
	if em.nregress >= T {
		return nil, &InsufficientDataError{Nobs: T, Needed: em.nregress,
			Msg: "more short-run regressors than effective observations"}
	}
	return em, nil
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func rowStack(rows [][]float64, ncols int) *mat.Dense {
	out := mat.NewDense(len(rows), ncols, nil)
	for i, r := range rows {
		out.SetRow(i, r)
	}
	return out
}
