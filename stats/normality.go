package stats

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalityResult represents the result of the multivariate Jarque-Bera
// omnibus normality test.
type NormalityResult struct {
	Statistic float64 // skewness + kurtosis component
	SkewStat  float64
	KurtStat  float64
	PValue    float64
	DF        int
}

// JarqueBera performs the multivariate Jarque-Bera normality test on a
// residual matrix u (nobs x neqs). The residuals are demeaned and whitened
// with the inverse Cholesky factor of their covariance; the test combines
// the third and fourth standardized moments into a chi-square statistic with
// 2*neqs degrees of freedom. The null hypothesis is that the residuals are
// Gaussian.
func JarqueBera(u *mat.Dense) (*NormalityResult, error) {
	n, k := u.Dims()
	if n < 2 {
		return nil, errors.New("stats: need at least two observations")
	}

	// Demean and compute the ML covariance.
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
	var cov mat.Dense
	cov.Mul(x.T(), x)
	cov.Scale(1/float64(n), &cov)
	sym := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			sym.SetSym(i, j, (cov.At(i, j)+cov.At(j, i))/2)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return nil, errors.New("stats: residual covariance is not positive definite")
	}
	l := mat.NewTriDense(k, mat.Lower, nil)
	chol.LTo(l)
	var linv mat.Dense
	if err := linv.Inverse(l); err != nil {
		return nil, errors.New("stats: residual covariance is not positive definite")
	}

	// Whitened residuals, variables by observations.
	var w mat.Dense
	w.Mul(&linv, x.T())

	skew := 0.0
	kurt := 0.0
	for j := 0; j < k; j++ {
		b1, b2 := 0.0, 0.0
		for i := 0; i < n; i++ {
			v := w.At(j, i)
			v2 := v * v
			b1 += v2 * v
			b2 += v2 * v2
		}
		b1 /= float64(n)
		b2 = b2/float64(n) - 3
		skew += b1 * b1
		kurt += b2 * b2
	}
	skewStat := float64(n) / 6 * skew
	kurtStat := float64(n) / 24 * kurt
	statistic := skewStat + kurtStat
	df := 2 * k

	dist := distuv.ChiSquared{K: float64(df)}
	return &NormalityResult{
		Statistic: statistic,
		SkewStat:  skewStat,
		KurtStat:  kurtStat,
		PValue:    dist.Survival(statistic),
		DF:        df,
	}, nil
}
