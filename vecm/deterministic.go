package vecm

import (
	"gonum.org/v1/gonum/mat"
)

// DetSpec describes which deterministic terms are active and on which side
// of the cointegration relation they live. Terms inside the relation are
// restricted to the cointegration space; terms outside enter the short-run
// equation directly.
type DetSpec struct {
	ConstInside  bool // "ci": constant within the cointegration relation
	ConstOutside bool // "co": constant outside the relation
	TrendInside  bool // "li": linear trend within the relation
	TrendOutside bool // "lo": linear trend outside the relation

	Seasons         int  // seasonal period; 0 disables seasonal dummies
	SeasonsCentered bool // demean dummy columns to be orthogonal to a constant
	FirstSeason     int  // season of the first observation
}

// ParseDeterministic parses the compact deterministic-term string used by the
// classical literature: "n" (or empty) for none, and any combination of the
// two-letter codes "co", "ci", "lo", "li", e.g. "cili" or "colo". Seasonal
// settings are not part of the string; they are carried separately on Config.
func ParseDeterministic(s string) (DetSpec, error) {
	var spec DetSpec
	if s == "" || s == "n" {
		return spec, nil
	}
	for rest := s; rest != ""; rest = rest[2:] {
		if len(rest) < 2 {
			return DetSpec{}, &ConfigurationError{Msg: "unknown deterministic term " + s}
		}
		switch rest[:2] {
		case "co":
			spec.ConstOutside = true
		case "ci":
			spec.ConstInside = true
		case "lo":
			spec.TrendOutside = true
		case "li":
			spec.TrendInside = true
		default:
			return DetSpec{}, &ConfigurationError{Msg: "unknown deterministic term " + s}
		}
	}
	if err := spec.validate(); err != nil {
		return DetSpec{}, err
	}
	return spec, nil
}

// validate rejects specifications that would place the same term on both
// sides of the cointegration relation.
func (d DetSpec) validate() error {
	if d.ConstInside && d.ConstOutside {
		return &ConfigurationError{Msg: "constant requested both inside and outside the cointegration relation"}
	}
	if d.TrendInside && d.TrendOutside {
		return &ConfigurationError{Msg: "linear trend requested both inside and outside the cointegration relation"}
	}
	if d.Seasons < 0 {
		return &ConfigurationError{Msg: "seasonal period must be nonnegative"}
	}
	return nil
}

// String renders the spec back into its compact form.
func (d DetSpec) String() string {
	s := ""
	if d.ConstOutside {
		s += "co"
	}
	if d.ConstInside {
		s += "ci"
	}
	if d.TrendOutside {
		s += "lo"
	}
	if d.TrendInside {
		s += "li"
	}
	if s == "" {
		return "n"
	}
	return s
}

// linearTrend returns the trend regressor for nobs effective observations of
// a model with kAr presample periods. The inside-relation variant is lagged
// by one period relative to the outside variant, matching the timing of the
// error correction term.
func linearTrend(nobs, kAr int, coint bool) []float64 {
	out := make([]float64, nobs)
	for i := range out {
		out[i] = float64(i + kAr)
		if !coint {
			out[i]++
		}
	}
	return out
}

// seasonalDummies builds nobs x (seasons-1) seasonal dummy regressors.
// Column i is one in periods congruent to i+firstPeriod modulo seasons.
// Centered dummies have 1/seasons subtracted so each column is orthogonal to
// a constant.
func seasonalDummies(seasons, nobs, firstPeriod int, centered bool) *mat.Dense {
	out := mat.NewDense(nobs, seasons-1, nil)
	for i := 0; i < seasons-1; i++ {
		start := ((i-firstPeriod)%seasons + seasons) % seasons
		for t := start; t < nobs; t += seasons {
			out.Set(t, i, 1)
		}
	}
	if centered {
		out.Apply(func(_, _ int, v float64) float64 {
			return v - 1/float64(seasons)
		}, out)
	}
	return out
}

// numDetCoint is the number of deterministic terms restricted to the
// cointegration relation, excluding user regressors.
func (d DetSpec) numDetCoint() int {
	n := 0
	if d.ConstInside {
		n++
	}
	if d.TrendInside {
		n++
	}
	return n
}

// numDetOutside is the number of built-in outside-relation regressor columns.
func (d DetSpec) numDetOutside() int {
	n := 0
	if d.ConstOutside {
		n++
	}
	if d.Seasons > 0 {
		n += d.Seasons - 1
	}
	if d.TrendOutside {
		n++
	}
	return n
}
