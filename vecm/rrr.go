package vecm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Numerical tolerances of the eigenproblem setup. Violations surface as
// NumericalInstabilityError instead of silently wrong coefficients.
const (
	// minEigenvalueS is the smallest admissible eigenvalue of the residual
	// cross-product matrices S00 and S11.
	minEigenvalueS = 1e-12
	// eigClampTol bounds how far a squared canonical correlation may fall
	// outside [0, 1] before it is treated as an error rather than rounding
	// noise.
	eigClampTol = 1e-8
	// betaPivotTol is the reciprocal condition bound on the leading r x r
	// block of the eigenvector matrix before normalizing it to the identity.
	betaPivotTol = 1e-10
)

// ReducedRankStatistics holds the sufficient statistics of the reduced-rank
// regression: the residual cross-product matrices after partialling the
// short-run regressors out of the differences and the lagged levels, and the
// ordered solution of the generalized eigenproblem
//
//	det(lambda*S11 - S10*inv(S00)*S01) = 0.
//
// Eigenvalues are the squared canonical correlations, real, in [0, 1) and
// sorted descending. Eigenvector i (column i of Eigenvectors) is normalized
// so that v_i' S11 v_i = 1.
type ReducedRankStatistics struct {
	S00 *mat.SymDense // neqs x neqs
	S11 *mat.SymDense // (neqs+ndetCoint) square
	S01 *mat.Dense    // neqs x (neqs+ndetCoint)
	S10 *mat.Dense    // transpose of S01

	Eigenvalues  []float64
	Eigenvectors *mat.Dense

	r0, r1 *mat.Dense // residuals behind S00/S11, kept for inference
	nobs   int
}

// reducedRank runs the Johansen eigenproblem on prepared matrices. The
// symmetric route through S11^{-1/2} guarantees real eigenvalues.
func reducedRank(em *endogMatrices) (*ReducedRankStatistics, error) {
	r0, err := residualize(em.deltaY, em.deltaX)
	if err != nil {
		return nil, err
	}
	r1, err := residualize(em.yLag1, em.deltaX)
	if err != nil {
		return nil, err
	}
	T := float64(em.T)

	s00 := crossProduct(r0, r0, T)
	s11 := crossProduct(r1, r1, T)
	var s01 mat.Dense
	s01.Mul(r0, r1.T())
	s01.Scale(1/T, &s01)

	s00inv, _, err := symPowers(s00, "S00")
	if err != nil {
		return nil, err
	}
	_, s11isqrt, err := symPowers(s11, "S11")
	if err != nil {
		return nil, err
	}

	// M = S11^{-1/2} S10 inv(S00) S01 S11^{-1/2}, symmetric PSD.
	var tmp mat.Dense
	tmp.Mul(s00inv, &s01) // inv(S00) S01, neqs x K1
	var inner mat.Dense
	inner.Mul(s01.T(), &tmp) // S10 inv(S00) S01, K1 x K1
	var half, m mat.Dense
	half.Mul(s11isqrt, &inner)
	m.Mul(&half, s11isqrt)

	k1, _ := m.Dims()
	msym := mat.NewSymDense(k1, nil)
	for i := 0; i < k1; i++ {
		for j := i; j < k1; j++ {
			msym.SetSym(i, j, (m.At(i, j)+m.At(j, i))/2)
		}
	}
	var es mat.EigenSym
	if !es.Factorize(msym, true) {
		return nil, &NumericalInstabilityError{Msg: "eigendecomposition of the canonical correlation matrix failed"}
	}
	asc := es.Values(nil)
	var vasc mat.Dense
	es.VectorsTo(&vasc)

	// Reverse to descending order and clamp rounding noise into [0, 1).
	vals := make([]float64, k1)
	vdesc := mat.NewDense(k1, k1, nil)
	for i := 0; i < k1; i++ {
		lam := asc[k1-1-i]
		switch {
		case lam < -eigClampTol:
			return nil, &NumericalInstabilityError{Msg: "negative squared canonical correlation", Value: lam}
		case lam < 0:
			lam = 0
		case lam >= 1:
			if lam > 1+eigClampTol {
				return nil, &NumericalInstabilityError{Msg: "squared canonical correlation above one", Value: lam}
			}
			return nil, &NumericalInstabilityError{Msg: "unit canonical correlation, levels matrix is collinear", Value: lam}
		}
		vals[i] = lam
		for row := 0; row < k1; row++ {
			vdesc.Set(row, i, vasc.At(row, k1-1-i))
		}
	}

	// Map back through S11^{-1/2}; v' S11 v = 1 holds by construction.
	var vecs mat.Dense
	vecs.Mul(s11isqrt, vdesc)

	return &ReducedRankStatistics{
		S00:          s00,
		S11:          s11,
		S01:          mat.DenseCopyOf(&s01),
		S10:          mat.DenseCopyOf(s01.T()),
		Eigenvalues:  vals,
		Eigenvectors: &vecs,
		r0:           r0,
		r1:           r1,
		nobs:         em.T,
	}, nil
}

// residualize returns the residual of an OLS regression of each row of y on
// the rows of x. A nil x means no regressors.
func residualize(y, x *mat.Dense) (*mat.Dense, error) {
	if x == nil {
		return mat.DenseCopyOf(y), nil
	}
	var xx mat.Dense
	xx.Mul(x, x.T())
	var xxinv mat.Dense
	if err := xxinv.Inverse(&xx); err != nil {
		return nil, &InsufficientDataError{Msg: "short-run regressor matrix is rank deficient"}
	}
	var yx, coef, fit mat.Dense
	yx.Mul(y, x.T())
	coef.Mul(&yx, &xxinv)
	fit.Mul(&coef, x)
	var resid mat.Dense
	resid.Sub(y, &fit)
	return &resid, nil
}

// crossProduct forms a b' / T as a symmetric matrix; a and b must be equal
// for the result to actually be symmetric.
func crossProduct(a, b *mat.Dense, T float64) *mat.SymDense {
	var prod mat.Dense
	prod.Mul(a, b.T())
	n, _ := prod.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, (prod.At(i, j)+prod.At(j, i))/(2*T))
		}
	}
	return out
}

// symPowers returns inv(s) and s^{-1/2} from the eigendecomposition of a
// symmetric positive definite matrix, rejecting eigenvalues below
// minEigenvalueS.
func symPowers(s *mat.SymDense, name string) (*mat.Dense, *mat.Dense, error) {
	var es mat.EigenSym
	if !es.Factorize(s, true) {
		return nil, nil, &NumericalInstabilityError{Msg: "eigendecomposition of " + name + " failed"}
	}
	vals := es.Values(nil)
	for _, v := range vals {
		if v < minEigenvalueS {
			return nil, nil, &NumericalInstabilityError{Msg: name + " is not positive definite", Value: v}
		}
	}
	var v mat.Dense
	es.VectorsTo(&v)
	n := len(vals)

	scaleCols := func(pow float64) *mat.Dense {
		scaled := mat.NewDense(n, n, nil)
		for j := 0; j < n; j++ {
			f := math.Pow(vals[j], pow)
			for i := 0; i < n; i++ {
				scaled.Set(i, j, v.At(i, j)*f)
			}
		}
		var out mat.Dense
		out.Mul(scaled, v.T())
		return &out
	}
	return scaleCols(-1), scaleCols(-0.5), nil
}
