package vecm

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/govecm/stats"
)

// PredictOptions configures a forecast.
type PredictOptions struct {
	// Alpha requests (1-Alpha) forecast intervals, e.g. 0.05 for 95% bands.
	// Zero disables intervals.
	Alpha float64

	// Future values of the exogenous regressors, one row per forecast step.
	// Required when the model was fitted with the corresponding regressors.
	Exog      *mat.Dense
	ExogCoint *mat.Dense
}

// Forecast holds point forecasts of the levels and, when requested,
// Gaussian forecast intervals. All matrices are steps x neqs.
type Forecast struct {
	Point *mat.Dense
	Lower *mat.Dense
	Upper *mat.Dense
	Alpha float64
}

// Predict computes steps-ahead forecasts of the levels by iterating the
// level-VAR representation from the last KAr observations. Deterministic
// terms are extended past the sample end with the same timing they had
// during estimation; inside-relation terms enter through the loadings with
// a one-period lag.
func (res *Results) Predict(steps int, opts *PredictOptions) (*Forecast, error) {
	if err := res.checkFitted("Predict"); err != nil {
		return nil, err
	}
	if steps < 1 {
		return nil, &InvalidArgumentError{Msg: "steps must be positive"}
	}
	if opts == nil {
		opts = &PredictOptions{}
	}
	if opts.Alpha < 0 || opts.Alpha >= 1 {
		return nil, &InvalidArgumentError{Msg: "alpha must be in [0, 1)"}
	}
	if err := checkFutureExog(res.cfg.Exog, opts.Exog, steps, "exog"); err != nil {
		return nil, err
	}
	if err := checkFutureExog(res.cfg.ExogCoint, opts.ExogCoint, steps, "exog_coint"); err != nil {
		return nil, err
	}

	k := res.Neqs
	p := res.KAr
	det := mat.NewDense(steps, k, nil) // deterministic contribution per step

	addVec := func(regressor []float64, coef []float64) {
		for t := 0; t < steps; t++ {
			for s := 0; s < k; s++ {
				det.Set(t, s, det.At(t, s)+regressor[t]*coef[s])
			}
		}
	}
	addBlock := func(regressors *mat.Dense, coefs *mat.Dense) {
		// regressors: steps x m, coefs: neqs x m
		var contrib mat.Dense
		contrib.Mul(regressors, coefs.T())
		det.Add(det, &contrib)
	}

	// Outside-relation terms continue their in-sample sequences.
	if c := res.Const(); c != nil {
		addVec(ones(steps), c)
	}
	if s := res.Seasonal(); s != nil {
		firstFuture := (res.Det.FirstSeason + res.NobsTot) % res.Det.Seasons
		dummies := seasonalDummies(res.Det.Seasons, steps, firstFuture, res.Det.SeasonsCentered)
		addBlock(dummies, s)
	}
	if c := res.LinTrend(); c != nil {
		trend := make([]float64, steps)
		for t := range trend {
			trend[t] = float64(res.NobsTot + 1 + t)
		}
		addVec(trend, c)
	}
	if res.cfg.Exog != nil {
		addBlock(mat.DenseCopyOf(opts.Exog.Slice(0, steps, 0, colCount(opts.Exog))), res.ExogCoefs())
	}

	// Inside-relation terms reach the levels through alpha, lagged one
	// period like the error correction term itself.
	if c := res.ConstCoint(); c != nil {
		addVec(ones(steps), res.loadVec(c))
	}
	if c := res.LinTrendCoint(); c != nil {
		trend := make([]float64, steps)
		for t := range trend {
			trend[t] = float64(res.NobsTot + t)
		}
		addVec(trend, res.loadVec(c))
	}
	if res.cfg.ExogCoint != nil && res.Rank > 0 {
		m := colCount(res.cfg.ExogCoint)
		shifted := mat.NewDense(steps, m, nil)
		for j := 0; j < m; j++ {
			shifted.Set(0, j, res.cfg.ExogCoint.At(res.NobsTot-1, j))
		}
		for t := 1; t < steps; t++ {
			for j := 0; j < m; j++ {
				shifted.Set(t, j, opts.ExogCoint.At(t-1, j))
			}
		}
		var coefs mat.Dense // neqs x m
		coefs.Mul(res.Alpha, res.ExogCointCoefs().T())
		addBlock(shifted, &coefs)
	}

	a, err := res.VARRep()
	if err != nil {
		return nil, err
	}

	// Recursion from the last KAr observations.
	history := make([][]float64, p)
	for i := 0; i < p; i++ {
		history[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			history[i][j] = res.Series.At(res.NobsTot-p+i, j)
		}
	}
	point := mat.DenseCopyOf(det)
	for h := 1; h <= steps; h++ {
		f := point.RawRowView(h - 1)
		for i := 1; i <= p; i++ {
			var prior []float64
			if h-i <= 0 {
				prior = history[p+h-i-1]
			} else {
				prior = point.RawRowView(h - i - 1)
			}
			for row := 0; row < k; row++ {
				for col := 0; col < k; col++ {
					f[row] += a[i-1].At(row, col) * prior[col]
				}
			}
		}
	}

	fc := &Forecast{Point: point, Alpha: opts.Alpha}
	if opts.Alpha > 0 {
		lower, upper, err := res.forecastBands(point, a, steps, opts.Alpha)
		if err != nil {
			return nil, err
		}
		fc.Lower, fc.Upper = lower, upper
	}
	return fc, nil
}

// forecastBands derives Gaussian forecast intervals from the accumulated
// MA-representation covariance sum_{i<h} Phi_i Sigma_u Phi_i'.
func (res *Results) forecastBands(point *mat.Dense, a []*mat.Dense, steps int, alpha float64) (*mat.Dense, *mat.Dense, error) {
	k := res.Neqs
	phis := stats.MARep(a, steps-1)
	q := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)

	lower := mat.NewDense(steps, k, nil)
	upper := mat.NewDense(steps, k, nil)
	cum := mat.NewDense(k, k, nil)
	for h := 0; h < steps; h++ {
		var ps, psp mat.Dense
		ps.Mul(phis[h], res.SigmaU)
		psp.Mul(&ps, phis[h].T())
		cum.Add(cum, &psp)
		for j := 0; j < k; j++ {
			half := q * math.Sqrt(cum.At(j, j))
			lower.Set(h, j, point.At(h, j)-half)
			upper.Set(h, j, point.At(h, j)+half)
		}
	}
	return lower, upper, nil
}

// loadVec maps a per-relation coefficient vector through the loadings:
// alpha * c, giving the per-equation contribution.
func (res *Results) loadVec(c []float64) []float64 {
	out := make([]float64, res.Neqs)
	for s := 0; s < res.Neqs; s++ {
		for i := 0; i < res.Rank; i++ {
			out[s] += res.Alpha.At(s, i) * c[i]
		}
	}
	return out
}

func checkFutureExog(fitted, future *mat.Dense, steps int, name string) error {
	if fitted == nil {
		if future != nil {
			return &InvalidArgumentError{Msg: "future " + name + " supplied but the model was fitted without it"}
		}
		return nil
	}
	if future == nil {
		return &MissingExogError{Name: name}
	}
	r, c := future.Dims()
	_, m := fitted.Dims()
	if c != m {
		return &InvalidArgumentError{Msg: "future " + name + " has the wrong number of columns"}
	}
	if r < steps {
		return &InvalidArgumentError{Msg: "future " + name + " must have at least one row per forecast step"}
	}
	return nil
}

func colCount(m *mat.Dense) int {
	_, c := m.Dims()
	return c
}
