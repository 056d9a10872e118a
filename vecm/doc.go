// Package vecm implements Vector Error Correction Models with Johansen
// cointegration analysis.
//
// A VECM describes a multivariate series whose levels are non-stationary but
// share stable long-run relations:
//
//	dy_t = alpha*beta'*y_{t-1} + Gamma_1*dy_{t-1} + ... + Gamma_p*dy_{t-p} + C*d_t + u_t
//
// Estimation is maximum likelihood via the Johansen reduced-rank regression,
// which reduces the data to residual cross-product matrices and solves a
// generalized eigenvalue problem for the cointegration space.
//
// # Rank and Lag Selection
//
// Determine the number of cointegration relations and the lag order before
// fitting:
//
//	lags, _ := vecm.SelectOrder(series, 8, vecm.Config{Deterministic: "co"})
//	rank, _ := vecm.SelectCointRank(series, 0, lags.AIC, "trace", 0.05)
//
// # Fitting
//
//	cfg := vecm.DefaultConfig()
//	cfg.DiffLags = lags.AIC
//	cfg.Rank = rank.Rank
//	cfg.Deterministic = "co"
//	model, _ := vecm.New(cfg)
//	res, err := model.Fit(series)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("beta:", mat.Formatted(res.Beta))
//
// # Diagnostics and Forecasting
//
//	granger, _ := res.TestGrangerCausality([]int{0}, []int{1})
//	norm, _ := res.TestNormality()
//	white, _ := res.TestWhiteness(10, false)
//
//	fc, _ := res.Predict(8, &vecm.PredictOptions{Alpha: 0.05})
//	// fc.Point, fc.Lower, fc.Upper are steps x neqs
//
// Deterministic terms follow the classical shorthand: "co"/"ci" for a
// constant outside/inside the cointegration relation, "lo"/"li" for a
// linear trend, combinable as in "cili". Seasonal dummies and user
// regressors are configured separately on Config.
package vecm
