// Package govecm provides vector error correction models (VECM) with
// Johansen cointegration rank testing.
//
// GoVECM is a Go package for modeling multivariate time series whose levels
// are non-stationary but which share stable long-run linear combinations
// (cointegrating relations). Estimation follows the maximum-likelihood
// reduced-rank regression of Johansen, as described in Lütkepohl (2005),
// chapters 6-7.
//
// # Features
//
//   - Maximum-likelihood VECM estimation with flexible deterministic terms
//     (constant/trend inside or outside the cointegration relation, seasonal
//     dummies, user exogenous regressors)
//   - Johansen trace and maximum-eigenvalue cointegration rank tests with
//     Osterwald-Lenum critical values
//   - Lag-order selection via AIC, BIC, HQIC, and FPE
//   - Granger and instantaneous causality tests
//   - Residual diagnostics: multivariate Jarque-Bera normality test and
//     Portmanteau whiteness test
//   - Forecasting through the implied level-VAR representation, with
//     Gaussian confidence intervals
//
// # Quick Start
//
// Select the cointegration rank, then fit:
//
//	series, _ := timeseries.New(values)
//	rank, _ := vecm.SelectCointRank(series, 0, 1, "trace", 0.05)
//
//	cfg := vecm.DefaultConfig()
//	cfg.Rank = rank.Rank
//	cfg.Deterministic = "co"
//	model, _ := vecm.New(cfg)
//	res, _ := model.Fit(series)
//	fc, _ := res.Predict(10, &vecm.PredictOptions{Alpha: 0.05})
//
// # Packages
//
// The library is organized into the following packages:
//
//   - vecm: VECM estimation, rank tests, causality tests, forecasting
//   - stats: multivariate residual diagnostics and VAR utilities
//   - timeseries: multivariate time series data structures and utilities
//
// # References
//
//   - Lütkepohl, H. (2005). New Introduction to Multiple Time Series Analysis
//   - Johansen, S. (1995). Likelihood-Based Inference in Cointegrated Vector
//     Autoregressive Models
package govecm
