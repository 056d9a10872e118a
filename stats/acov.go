package stats

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Autocovariances computes the autocovariance matrices C_0, ..., C_maxLag of
// a multivariate sample u (nobs x neqs). The sample is demeaned column-wise
// and C_l = sum_t x_t x_{t-l}' / nobs, so C_l[i][j] estimates
// Cov(u_t[i], u_{t-l}[j]).
func Autocovariances(u *mat.Dense, maxLag int) ([]*mat.Dense, error) {
	if u == nil {
		return nil, errors.New("stats: nil sample")
	}
	n, k := u.Dims()
	if maxLag < 0 || maxLag >= n {
		return nil, errors.New("stats: maxLag must be in [0, nobs)")
	}

	// Demean column-wise.
	x := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		mean := 0.0
		for i := 0; i < n; i++ {
			mean += u.At(i, j)
		}
		mean /= float64(n)
		for i := 0; i < n; i++ {
			x.Set(i, j, u.At(i, j)-mean)
		}
	}

	out := make([]*mat.Dense, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		c := mat.NewDense(k, k, nil)
		if lag == 0 {
			c.Mul(x.T(), x)
		} else {
			head := x.Slice(lag, n, 0, k)
			tail := x.Slice(0, n-lag, 0, k)
			c.Mul(head.T(), tail)
		}
		c.Scale(1/float64(n), c)
		out[lag] = c
	}
	return out, nil
}

// MARep computes the moving-average coefficient matrices Phi_0, ..., Phi_maxn
// of a VAR with coefficient matrices coefs = [A_1, ..., A_p] (each neqs x
// neqs). Phi_0 is the identity and Phi_i = sum_{j=1}^{min(i,p)} Phi_{i-j} A_j.
func MARep(coefs []*mat.Dense, maxn int) []*mat.Dense {
	p := len(coefs)
	var k int
	if p > 0 {
		k, _ = coefs[0].Dims()
	}
	phis := make([]*mat.Dense, maxn+1)
	phis[0] = identity(k)
	for i := 1; i <= maxn; i++ {
		phi := mat.NewDense(k, k, nil)
		for j := 1; j <= i && j <= p; j++ {
			var tmp mat.Dense
			tmp.Mul(phis[i-j], coefs[j-1])
			phi.Add(phi, &tmp)
		}
		phis[i] = phi
	}
	return phis
}

// OrthMARep computes orthogonalized MA coefficient matrices Phi_i * P where
// P is the lower Cholesky factor of sigmaU. It fails when sigmaU is not
// positive definite.
func OrthMARep(coefs []*mat.Dense, sigmaU *mat.SymDense, maxn int) ([]*mat.Dense, error) {
	var chol mat.Cholesky
	if !chol.Factorize(sigmaU) {
		return nil, errors.New("stats: innovation covariance is not positive definite")
	}
	k := sigmaU.SymmetricDim()
	l := mat.NewTriDense(k, mat.Lower, nil)
	chol.LTo(l)

	phis := MARep(coefs, maxn)
	out := make([]*mat.Dense, len(phis))
	for i, phi := range phis {
		o := mat.NewDense(k, k, nil)
		o.Mul(phi, l)
		out[i] = o
	}
	return out, nil
}

func identity(k int) *mat.Dense {
	m := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		m.Set(i, i, 1)
	}
	return m
}
