// Package stats provides multivariate residual diagnostics and VAR utilities.
//
// The functions in this package operate on plain residual and coefficient
// matrices and carry no model state; the vecm package builds its hypothesis
// tests on top of them.
//
// # VAR Utilities
//
// Autocovariances and the moving-average representation of a VAR:
//
//	acov, _ := stats.Autocovariances(resid, 10)
//	phis := stats.MARep(varCoefs, 10)       // Phi_0 ... Phi_10
//	orth, _ := stats.OrthMARep(varCoefs, sigmaU, 10)
//
// # Residual Diagnostics
//
// Test residuals for autocorrelation and non-normality:
//
//	// Portmanteau test; df depends on the fitted model
//	pm, _ := stats.Portmanteau(resid, 10, df, false)
//	if pm.PValue > 0.05 {
//	    // no evidence against whiteness
//	}
//
//	// Multivariate Jarque-Bera omnibus test
//	jb, _ := stats.JarqueBera(resid)
//
//	// Durbin-Watson statistic per equation
//	dw := stats.DurbinWatson(resid)
package stats
