package vecm

import (
	"gonum.org/v1/gonum/mat"
)

// VARRep returns the coefficient matrices A_1, ..., A_{KAr} of the level-VAR
// representation implied by the fitted VECM:
//
//	A_1      = I + Pi + Gamma_1
//	A_i      = Gamma_i - Gamma_{i-1}    for 1 < i < KAr
//	A_{KAr}  = -Gamma_{KAr-1}
//
// with Gamma terms absent when DiffLags == 0.
func (res *Results) VARRep() ([]*mat.Dense, error) {
	if err := res.checkFitted("VARRep"); err != nil {
		return nil, err
	}
	k := res.Neqs
	p := res.KAr

	a := make([]*mat.Dense, p)
	a1, err := res.Pi()
	if err != nil {
		return nil, err
	}
	for i := 0; i < k; i++ {
		a1.Set(i, i, a1.At(i, i)+1)
	}
	if res.DiffLags > 0 {
		a1.Add(a1, res.gammaBlock(0))
		for i := 1; i < res.DiffLags; i++ {
			ai := mat.NewDense(k, k, nil)
			ai.Sub(res.gammaBlock(i), res.gammaBlock(i-1))
			a[i] = ai
		}
		last := mat.NewDense(k, k, nil)
		last.Scale(-1, res.gammaBlock(res.DiffLags-1))
		a[p-1] = last
	}
	a[0] = a1
	return a, nil
}

// gammaBlock returns Gamma_{i+1}, the i-th neqs x neqs block of Gamma.
func (res *Results) gammaBlock(i int) *mat.Dense {
	k := res.Neqs
	return mat.DenseCopyOf(res.Gamma.Slice(0, k, i*k, (i+1)*k))
}

// covVARRep returns the asymptotic covariance of vec([A_1 ... A_{KAr}]),
// obtained by pushing the coefficient covariance kron(inv(Omega), Sigma_u)
// through the linear map from (alpha, Gamma) to the A matrices, with beta
// treated as fixed (it converges at a faster rate). Entry indices follow
// vec ordering: coefficient (equation e, column m) sits at m*neqs + e.
func (res *Results) covVARRep() (*mat.Dense, error) {
	minv, err := res.momentInverse()
	if err != nil {
		return nil, err
	}
	if minv == nil {
		return nil, &InvalidArgumentError{Msg: "model has no estimated coefficients"}
	}
	k := res.Neqs
	p := res.KAr
	r := res.Rank
	src := r + res.em.nregress

	// w maps source coefficient columns (alpha columns, then the Gamma and
	// deterministic columns of deltaX) onto the K*p columns of [A_1...A_p].
	// Pi's column c is sum_i beta[c,i] * alpha_i and enters A_1 only; each
	// Gamma_j enters A_j with +1 and A_{j+1} with -1. Deterministic source
	// columns map nowhere.
	w := mat.NewDense(k*p, src, nil)
	for c := 0; c < k; c++ {
		for i := 0; i < r; i++ {
			w.Set(c, i, res.Beta.At(c, i))
		}
	}
	for j := 1; j <= res.DiffLags; j++ {
		for c := 0; c < k; c++ {
			srcCol := r + (j-1)*k + c
			w.Set((j-1)*k+c, srcCol, w.At((j-1)*k+c, srcCol)+1)
			w.Set(j*k+c, srcCol, -1)
		}
	}

	var tmp, g mat.Dense
	tmp.Mul(w, minv)
	g.Mul(&tmp, w.T())

	var cov mat.Dense
	cov.Kronecker(&g, res.SigmaU)
	return &cov, nil
}
