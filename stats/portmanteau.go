package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PortmanteauResult represents the result of a multivariate Portmanteau test
// for residual autocorrelation.
type PortmanteauResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DF        int
	Adjusted  bool
}

// Portmanteau performs the multivariate Portmanteau (Ljung-Box style) test
// on a residual matrix u (nobs x neqs). The null hypothesis is that there is
// no residual autocorrelation up to lag nlags. df is the chi-square degrees
// of freedom, which depends on the number of parameters of the fitted model
// and must be supplied by the caller. When adjusted is true the small-sample
// correction divides each lag term by nobs-lag instead of using the raw
// statistic.
func Portmanteau(u *mat.Dense, nlags, df int, adjusted bool) (*PortmanteauResult, error) {
	if nlags < 1 {
		return nil, errors.New("stats: nlags must be positive")
	}
	if df < 1 {
		return nil, fmt.Errorf("stats: nonpositive degrees of freedom %d; increase nlags", df)
	}
	n, _ := u.Dims()
	if nlags >= n {
		return nil, fmt.Errorf("stats: nlags %d must be smaller than the sample size %d", nlags, n)
	}

	acov, err := Autocovariances(u, nlags)
	if err != nil {
		return nil, err
	}
	var c0inv mat.Dense
	if err := c0inv.Inverse(acov[0]); err != nil {
		return nil, errors.New("stats: residual covariance is singular")
	}

	statistic := 0.0
	for lag := 1; lag <= nlags; lag++ {
		ct := acov[lag]
		var tmp, prod mat.Dense
		tmp.Mul(ct.T(), &c0inv)
		prod.Mul(&tmp, ct)
		tmp.Mul(&prod, &c0inv)
		toAdd := mat.Trace(&tmp)
		if adjusted {
			toAdd /= float64(n - lag)
		}
		statistic += toAdd
	}
	if adjusted {
		statistic *= float64(n) * float64(n)
	} else {
		statistic *= float64(n)
	}

	dist := distuv.ChiSquared{K: float64(df)}
	return &PortmanteauResult{
		Statistic: statistic,
		PValue:    dist.Survival(statistic),
		Lags:      nlags,
		DF:        df,
		Adjusted:  adjusted,
	}, nil
}

// DurbinWatson calculates the Durbin-Watson statistic for first-order
// autocorrelation, per equation. A value near 2 indicates no first-order
// autocorrelation.
func DurbinWatson(u *mat.Dense) []float64 {
	n, k := u.Dims()
	out := make([]float64, k)
	for j := 0; j < k; j++ {
		num, den := 0.0, 0.0
		for i := 0; i < n; i++ {
			v := u.At(i, j)
			den += v * v
			if i > 0 {
				d := v - u.At(i-1, j)
				num += d * d
			}
		}
		if den > 0 {
			out[j] = num / den
		}
	}
	return out
}
