package vecm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/govecm/timeseries"
)

// Results is a fitted VECM. It owns the estimated parameters and the
// matrices estimation was based on, and is immutable after assembly; all
// derived quantities (standard errors, tests, forecasts) are functions of
// this value.
type Results struct {
	Series *timeseries.Series
	Det    DetSpec

	Rank     int
	DiffLags int
	KAr      int // DiffLags + 1
	Neqs     int
	Nobs     int // effective sample size T
	NobsTot  int

	Alpha        *mat.Dense    // loadings, neqs x r (nil when r == 0)
	Beta         *mat.Dense    // cointegrating vectors, neqs x r (nil when r == 0)
	DetCoefCoint *mat.Dense    // inside-relation deterministic rows of beta, ndetCoint x r
	Gamma        *mat.Dense    // short-run dynamics, neqs x neqs*DiffLags (nil when DiffLags == 0)
	DetCoef      *mat.Dense    // outside-relation deterministic coefficients, neqs x ndet
	SigmaU       *mat.SymDense // ML innovation covariance (no df adjustment)

	Eigenvalues []float64 // squared canonical correlations, descending
	LogLik      float64

	cfg      Config
	em       *endogMatrices
	rrr      *ReducedRankStatistics
	betaFull *mat.Dense // (neqs+ndetCoint) x r, beta stacked over DetCoefCoint
	piAug    *mat.Dense // alpha * betaFull', neqs x (neqs+ndetCoint)
	gammaAug *mat.Dense // Gamma stacked with DetCoef, neqs x nregress
	resid    *mat.Dense // neqs x T

	assembled bool
	invOmega  *mat.Dense // memoized moment-matrix inverse for covParams
}

// assemble slices the eigenvectors at the chosen rank into the model
// parameters and derives the innovation covariance and log-likelihood.
func assemble(series *timeseries.Series, det DetSpec, cfg Config, em *endogMatrices, rrr *ReducedRankStatistics, r int) (*Results, error) {
	if r < 0 || r > em.neqs {
		return nil, &InvalidRankError{Rank: r, Neqs: em.neqs}
	}
	neqs := em.neqs
	k1 := neqs + em.ndetCoint
	T := float64(em.T)

	res := &Results{
		Series:      series,
		Det:         det,
		Rank:        r,
		DiffLags:    em.diffLags,
		KAr:         em.diffLags + 1,
		Neqs:        neqs,
		Nobs:        em.T,
		NobsTot:     em.nobsTot,
		Eigenvalues: rrr.Eigenvalues,
		cfg:         cfg,
		em:          em,
		rrr:         rrr,
	}

	// Pi restricted to rank r, with beta in the Phillips normalization
	// (leading r x r block equal to the identity).
	piAug := mat.NewDense(neqs, k1, nil)
	if r > 0 {
		betaFull := mat.DenseCopyOf(rrr.Eigenvectors.Slice(0, k1, 0, r))
		pivot := mat.DenseCopyOf(betaFull.Slice(0, r, 0, r))
		if c := mat.Cond(pivot, 2); math.IsInf(c, 1) || c > 1/betaPivotTol {
			return nil, &NumericalInstabilityError{
				Msg: "leading block of the cointegrating vectors is near singular", Value: c}
		}
		var pivotInv mat.Dense
		if err := pivotInv.Inverse(pivot); err != nil {
			return nil, &NumericalInstabilityError{
				Msg: "leading block of the cointegrating vectors is singular"}
		}
		var normalized mat.Dense
		normalized.Mul(betaFull, &pivotInv)
		betaFull = &normalized

		// alpha = S01 beta (beta' S11 beta)^{-1}
		var sb, bsb mat.Dense
		sb.Mul(rrr.S11, betaFull)
		bsb.Mul(betaFull.T(), &sb)
		var bsbInv mat.Dense
		if err := bsbInv.Inverse(&bsb); err != nil {
			return nil, &NumericalInstabilityError{Msg: "beta' S11 beta is singular"}
		}
		var s01b, alpha mat.Dense
		s01b.Mul(rrr.S01, betaFull)
		alpha.Mul(&s01b, &bsbInv)

		piAug.Product(&alpha, betaFull.T())

		res.betaFull = betaFull
		res.Alpha = &alpha
		res.Beta = mat.DenseCopyOf(betaFull.Slice(0, neqs, 0, r))
		if em.ndetCoint > 0 {
			res.DetCoefCoint = mat.DenseCopyOf(betaFull.Slice(neqs, k1, 0, r))
		}
	}
	res.piAug = piAug

	// Short-run coefficients from the residual regression
	// dY - Pi_aug Y_{-1,aug} on deltaX.
	var ecResid mat.Dense
	ecResid.Mul(piAug, em.yLag1)
	ecResid.Sub(em.deltaY, &ecResid)

	u := mat.DenseCopyOf(&ecResid)
	if em.deltaX != nil {
		var xx mat.Dense
		xx.Mul(em.deltaX, em.deltaX.T())
		var xxInv mat.Dense
		if err := xxInv.Inverse(&xx); err != nil {
			return nil, &InsufficientDataError{Msg: "short-run regressor matrix is rank deficient"}
		}
		var yx, gammaAug mat.Dense
		yx.Mul(&ecResid, em.deltaX.T())
		gammaAug.Mul(&yx, &xxInv)
		res.gammaAug = &gammaAug

		var fit mat.Dense
		fit.Mul(&gammaAug, em.deltaX)
		u.Sub(&ecResid, &fit)

		ngamma := neqs * em.diffLags
		if ngamma > 0 {
			res.Gamma = mat.DenseCopyOf(gammaAug.Slice(0, neqs, 0, ngamma))
		}
		if em.nregress > ngamma {
			res.DetCoef = mat.DenseCopyOf(gammaAug.Slice(0, neqs, ngamma, em.nregress))
		}
	}
	res.resid = u

	sigma := mat.NewSymDense(neqs, nil)
	var uu mat.Dense
	uu.Mul(u, u.T())
	for i := 0; i < neqs; i++ {
		for j := i; j < neqs; j++ {
			sigma.SetSym(i, j, (uu.At(i, j)+uu.At(j, i))/(2*T))
		}
	}
	res.SigmaU = sigma

	// Concentrated Gaussian log-likelihood,
	// -KT/2 ln(2pi) - KT/2 - T/2 ln|S00| - T/2 sum_{i<=r} ln(1-lambda_i).
	var chol mat.Cholesky
	if !chol.Factorize(rrr.S00) {
		return nil, &NumericalInstabilityError{Msg: "S00 is not positive definite"}
	}
	llf := -float64(neqs) * T / 2 * (math.Log(2*math.Pi) + 1)
	llf -= T / 2 * chol.LogDet()
	for i := 0; i < r; i++ {
		llf -= T / 2 * math.Log(1-rrr.Eigenvalues[i])
	}
	res.LogLik = llf

	res.assembled = true
	return res, nil
}

// checkFitted guards inference methods against use of a zero Results value.
func (res *Results) checkFitted(op string) error {
	if res == nil || !res.assembled {
		return &NotFittedError{Op: op}
	}
	return nil
}

// Pi returns alpha * beta', the long-run impact matrix restricted to the
// endogenous variables (neqs x neqs). It is the zero matrix when the rank
// is zero.
func (res *Results) Pi() (*mat.Dense, error) {
	if err := res.checkFitted("Pi"); err != nil {
		return nil, err
	}
	out := mat.NewDense(res.Neqs, res.Neqs, nil)
	if res.Rank > 0 {
		out.Product(res.Alpha, res.Beta.T())
	}
	return out, nil
}

// Resid returns the estimation residuals, one row per effective observation.
func (res *Results) Resid() (*mat.Dense, error) {
	if err := res.checkFitted("Resid"); err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(res.resid.T()), nil
}

// FittedValues returns the fitted first differences, one row per effective
// observation.
func (res *Results) FittedValues() (*mat.Dense, error) {
	if err := res.checkFitted("FittedValues"); err != nil {
		return nil, err
	}
	var fit mat.Dense
	fit.Sub(res.em.deltaY, res.resid)
	return mat.DenseCopyOf(fit.T()), nil
}

// detCoefOffset returns the column of DetCoef where a term starts, following
// the fixed order constant, seasonal, trend, exog.
func (res *Results) detCoefOffset(term string) int {
	off := 0
	if term == "const" {
		return off
	}
	if res.Det.ConstOutside {
		off++
	}
	if term == "seasonal" {
		return off
	}
	if res.Det.Seasons > 0 {
		off += res.Det.Seasons - 1
	}
	if term == "trend" {
		return off
	}
	if res.Det.TrendOutside {
		off++
	}
	return off // "exog"
}

// Const returns the intercept outside the cointegration relation, or nil
// when the model has none.
func (res *Results) Const() []float64 {
	if !res.Det.ConstOutside || res.DetCoef == nil {
		return nil
	}
	return mat.Col(nil, res.detCoefOffset("const"), res.DetCoef)
}

// Seasonal returns the seasonal dummy coefficients (neqs x seasons-1), or
// nil when the model has none.
func (res *Results) Seasonal() *mat.Dense {
	if res.Det.Seasons == 0 || res.DetCoef == nil {
		return nil
	}
	off := res.detCoefOffset("seasonal")
	return mat.DenseCopyOf(res.DetCoef.Slice(0, res.Neqs, off, off+res.Det.Seasons-1))
}

// LinTrend returns the trend coefficient outside the cointegration relation,
// or nil when the model has none.
func (res *Results) LinTrend() []float64 {
	if !res.Det.TrendOutside || res.DetCoef == nil {
		return nil
	}
	return mat.Col(nil, res.detCoefOffset("trend"), res.DetCoef)
}

// ExogCoefs returns the coefficients of the outside-relation user
// regressors, or nil when the model has none.
func (res *Results) ExogCoefs() *mat.Dense {
	if res.cfg.Exog == nil || res.DetCoef == nil {
		return nil
	}
	_, m := res.cfg.Exog.Dims()
	off := res.detCoefOffset("exog")
	return mat.DenseCopyOf(res.DetCoef.Slice(0, res.Neqs, off, off+m))
}

// ConstCoint returns the per-relation intercept inside the cointegration
// relation (length r), or nil when the model has none.
func (res *Results) ConstCoint() []float64 {
	if !res.Det.ConstInside || res.DetCoefCoint == nil {
		return nil
	}
	return mat.Row(nil, 0, res.DetCoefCoint)
}

// LinTrendCoint returns the per-relation trend coefficient inside the
// cointegration relation, or nil when the model has none.
func (res *Results) LinTrendCoint() []float64 {
	if !res.Det.TrendInside || res.DetCoefCoint == nil {
		return nil
	}
	row := 0
	if res.Det.ConstInside {
		row = 1
	}
	return mat.Row(nil, row, res.DetCoefCoint)
}

// ExogCointCoefs returns the coefficients of the inside-relation user
// regressors (m x r), or nil when the model has none.
func (res *Results) ExogCointCoefs() *mat.Dense {
	if res.cfg.ExogCoint == nil || res.DetCoefCoint == nil {
		return nil
	}
	_, m := res.cfg.ExogCoint.Dims()
	start := res.Det.numDetCoint()
	return mat.DenseCopyOf(res.DetCoefCoint.Slice(start, start+m, 0, res.Rank))
}
