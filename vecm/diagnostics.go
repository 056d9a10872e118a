package vecm

import (
	"github.com/sartorproj/govecm/stats"
)

// TestNormality runs the multivariate Jarque-Bera test on the estimation
// residuals. The null hypothesis is Gaussian innovations.
func (res *Results) TestNormality() (*stats.NormalityResult, error) {
	u, err := res.Resid()
	if err != nil {
		return nil, err
	}
	return stats.JarqueBera(u)
}

// TestWhiteness runs the multivariate Portmanteau test for residual
// autocorrelation up to lag nlags. The degrees of freedom account for the
// lag and cointegration parameters of the fitted model:
// neqs^2*(nlags-KAr+1) - neqs*rank. nlags must exceed the lag order for the
// test to have positive degrees of freedom.
func (res *Results) TestWhiteness(nlags int, adjusted bool) (*stats.PortmanteauResult, error) {
	u, err := res.Resid()
	if err != nil {
		return nil, err
	}
	df := res.Neqs*res.Neqs*(nlags-res.KAr+1) - res.Neqs*res.Rank
	return stats.Portmanteau(u, nlags, df, adjusted)
}
