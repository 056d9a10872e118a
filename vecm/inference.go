package vecm

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// momentInverse returns the inverse of the moment matrix of the transformed
// regressors (betaFull' Y_{-1}, deltaX). Its diagonal carries the
// per-regressor part of the asymptotic coefficient covariance
// kron(inv(Omega), Sigma_u); see Luetkepohl (2005), eq. 7.2.21. The result
// is memoized. A nil result with nil error means the model has no estimated
// short-run coefficients at all.
func (res *Results) momentInverse() (*mat.Dense, error) {
	if res.invOmega != nil {
		return res.invOmega, nil
	}
	rows := res.Rank + res.em.nregress
	if rows == 0 {
		return nil, nil
	}
	z := mat.NewDense(rows, res.Nobs, nil)
	if res.Rank > 0 {
		var bz mat.Dense
		bz.Mul(res.betaFull.T(), res.em.yLag1)
		for i := 0; i < res.Rank; i++ {
			z.SetRow(i, mat.Row(nil, i, &bz))
		}
	}
	if res.em.deltaX != nil {
		for i := 0; i < res.em.nregress; i++ {
			z.SetRow(res.Rank+i, mat.Row(nil, i, res.em.deltaX))
		}
	}
	var omega mat.Dense
	omega.Mul(z, z.T())
	var inv mat.Dense
	if err := inv.Inverse(&omega); err != nil {
		return nil, &NumericalInstabilityError{Msg: "coefficient moment matrix is singular"}
	}
	res.invOmega = &inv
	return res.invOmega, nil
}

// Params returns the short-run coefficient matrix [alpha, Gamma, detCoef]
// (neqs x (r + nregress)), or nil when the model estimates none. Because
// beta is normalized to the identity in its leading block, the alpha columns
// line up with the first r entries of the asymptotic covariance.
func (res *Results) Params() (*mat.Dense, error) {
	if err := res.checkFitted("Params"); err != nil {
		return nil, err
	}
	cols := res.Rank + res.em.nregress
	if cols == 0 {
		return nil, nil
	}
	out := mat.NewDense(res.Neqs, cols, nil)
	for i := 0; i < res.Rank; i++ {
		for s := 0; s < res.Neqs; s++ {
			out.Set(s, i, res.Alpha.At(s, i))
		}
	}
	if res.gammaAug != nil {
		for i := 0; i < res.em.nregress; i++ {
			for s := 0; s < res.Neqs; s++ {
				out.Set(s, res.Rank+i, res.gammaAug.At(s, i))
			}
		}
	}
	return out, nil
}

// StdErrParams returns the asymptotic standard errors of Params, entry by
// entry: sqrt of the matching diagonal element of
// kron(inv(Omega), Sigma_u).
func (res *Results) StdErrParams() (*mat.Dense, error) {
	if err := res.checkFitted("StdErrParams"); err != nil {
		return nil, err
	}
	minv, err := res.momentInverse()
	if err != nil || minv == nil {
		return nil, err
	}
	cols := res.Rank + res.em.nregress
	out := mat.NewDense(res.Neqs, cols, nil)
	for i := 0; i < cols; i++ {
		for s := 0; s < res.Neqs; s++ {
			out.Set(s, i, math.Sqrt(minv.At(i, i)*res.SigmaU.At(s, s)))
		}
	}
	return out, nil
}

// TValuesParams returns the t-ratios of Params.
func (res *Results) TValuesParams() (*mat.Dense, error) {
	se, err := res.StdErrParams()
	if err != nil || se == nil {
		return nil, err
	}
	params, err := res.Params()
	if err != nil {
		return nil, err
	}
	n, c := se.Dims()
	out := mat.NewDense(n, c, nil)
	for s := 0; s < n; s++ {
		for i := 0; i < c; i++ {
			out.Set(s, i, params.At(s, i)/se.At(s, i))
		}
	}
	return out, nil
}

// PValuesParams returns two-sided p-values of Params against a standard
// normal reference.
func (res *Results) PValuesParams() (*mat.Dense, error) {
	tv, err := res.TValuesParams()
	if err != nil || tv == nil {
		return nil, err
	}
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	n, c := tv.Dims()
	out := mat.NewDense(n, c, nil)
	for s := 0; s < n; s++ {
		for i := 0; i < c; i++ {
			out.Set(s, i, 2*norm.Survival(math.Abs(tv.At(s, i))))
		}
	}
	return out, nil
}

// StdErrBeta returns asymptotic standard errors of the full cointegrating
// matrix (beta stacked over DetCoefCoint). The first r rows are fixed to
// the identity by the normalization and carry zero standard error; the
// remaining rows follow the asymptotic formula
// kron(inv(alpha' inv(Sigma_u) alpha), inv(R1_2 R1_2')) where R1_2 holds the
// residualized levels below the pivot block. Returns nil when r == 0.
func (res *Results) StdErrBeta() (*mat.Dense, error) {
	if err := res.checkFitted("StdErrBeta"); err != nil {
		return nil, err
	}
	r := res.Rank
	if r == 0 {
		return nil, nil
	}
	k1 := res.Neqs + res.em.ndetCoint
	out := mat.NewDense(k1, r, nil)
	if k1 == r {
		return out, nil
	}

	var sigInv mat.Dense
	if err := sigInv.Inverse(res.SigmaU); err != nil {
		return nil, &NumericalInstabilityError{Msg: "innovation covariance is singular"}
	}
	var tmp, asa mat.Dense
	tmp.Mul(&sigInv, res.Alpha)
	asa.Mul(res.Alpha.T(), &tmp)
	var asaInv mat.Dense
	if err := asaInv.Inverse(&asa); err != nil {
		return nil, &NumericalInstabilityError{Msg: "alpha' inv(Sigma_u) alpha is singular"}
	}

	r12 := res.rrr.r1.Slice(r, k1, 0, res.Nobs)
	var rr mat.Dense
	rr.Mul(r12, r12.T())
	var rrInv mat.Dense
	if err := rrInv.Inverse(&rr); err != nil {
		return nil, &NumericalInstabilityError{Msg: "levels moment matrix below the pivot block is singular"}
	}

	for j := 0; j < k1-r; j++ {
		for i := 0; i < r; i++ {
			out.Set(r+j, i, math.Sqrt(asaInv.At(i, i)*rrInv.At(j, j)))
		}
	}
	return out, nil
}

// TValuesBeta returns t-ratios of the full cointegrating matrix; entries in
// the normalized identity block are reported as zero.
func (res *Results) TValuesBeta() (*mat.Dense, error) {
	se, err := res.StdErrBeta()
	if err != nil || se == nil {
		return nil, err
	}
	r := res.Rank
	k1, _ := se.Dims()
	out := mat.NewDense(k1, r, nil)
	for j := r; j < k1; j++ {
		for i := 0; i < r; i++ {
			out.Set(j, i, res.betaFull.At(j, i)/se.At(j, i))
		}
	}
	return out, nil
}
