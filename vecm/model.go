package vecm

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/govecm/timeseries"
)

// Config holds the specification of a VECM.
type Config struct {
	DiffLags int // number of lagged differences (k_ar - 1)
	Rank     int // cointegration rank, in [0, neqs]

	// Deterministic is the compact deterministic-term string: "n" for none,
	// or a combination of "co", "ci", "lo", "li". See ParseDeterministic.
	Deterministic string

	Seasons         int  // seasonal period, 0 disables seasonal dummies
	SeasonsCentered bool // center the dummies to be orthogonal to a constant
	FirstSeason     int  // season of the first observation

	// Exog holds user regressors outside the cointegration relation,
	// ExogCoint user regressors restricted to it. Both are optional and
	// carry one row per raw observation.
	Exog      *mat.Dense
	ExogCoint *mat.Dense
}

// DefaultConfig returns a configuration with one lagged difference, a single
// cointegration relation and no deterministic terms.
func DefaultConfig() Config {
	return Config{
		DiffLags:        1,
		Rank:            1,
		Deterministic:   "n",
		SeasonsCentered: true,
	}
}

// Model represents a vector error correction model
//
//	dy_t = alpha*beta'*y_{t-1} + Gamma_1*dy_{t-1} + ... + Gamma_p*dy_{t-p} + C*d_t + u_t
//
// prior to estimation. Estimation is maximum likelihood via the Johansen
// reduced-rank regression; Fit returns an immutable Results value.
type Model struct {
	Config Config

	det DetSpec
}

// New validates the configuration and creates a model.
func New(cfg Config) (*Model, error) {
	det, err := ParseDeterministic(cfg.Deterministic)
	if err != nil {
		return nil, err
	}
	det.Seasons = cfg.Seasons
	det.SeasonsCentered = cfg.SeasonsCentered
	det.FirstSeason = cfg.FirstSeason
	if err := det.validate(); err != nil {
		return nil, err
	}
	if cfg.DiffLags < 0 {
		return nil, &ConfigurationError{Msg: "diffLags must be nonnegative"}
	}
	if cfg.Rank < 0 {
		return nil, &InvalidRankError{Rank: cfg.Rank}
	}
	return &Model{Config: cfg, det: det}, nil
}

// Det returns the parsed deterministic specification.
func (m *Model) Det() DetSpec {
	return m.det
}

// Fit estimates the model on the given series.
func (m *Model) Fit(series *timeseries.Series) (*Results, error) {
	em, err := buildEndogMatrices(series, m.det, m.Config.DiffLags, m.Config.Exog, m.Config.ExogCoint)
	if err != nil {
		return nil, err
	}
	if m.Config.Rank > em.neqs {
		return nil, &InvalidRankError{Rank: m.Config.Rank, Neqs: em.neqs}
	}
	rrr, err := reducedRank(em)
	if err != nil {
		return nil, err
	}
	return assemble(series, m.det, m.Config, em, rrr, m.Config.Rank)
}
