package vecm

import "fmt"

// ConfigurationError reports a contradictory or malformed model
// configuration, such as requesting a constant both inside and outside the
// cointegration relation.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "vecm: invalid configuration: " + e.Msg
}

// InsufficientDataError reports that the sample is too short relative to the
// number of parameters to estimate.
type InsufficientDataError struct {
	Nobs   int // observations available
	Needed int // observations required
	Msg    string
}

func (e *InsufficientDataError) Error() string {
	if e.Needed > 0 {
		return fmt.Sprintf("vecm: insufficient data: %s (have %d observations, need more than %d)",
			e.Msg, e.Nobs, e.Needed)
	}
	return "vecm: insufficient data: " + e.Msg
}

// InvalidRankError reports a cointegration rank outside [0, neqs].
type InvalidRankError struct {
	Rank int
	Neqs int
}

func (e *InvalidRankError) Error() string {
	return fmt.Sprintf("vecm: cointegration rank %d outside [0, %d]", e.Rank, e.Neqs)
}

// InvalidArgumentError reports an invalid argument to a test or forecast,
// such as overlapping caused/causing sets or an out-of-range variable index.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return "vecm: " + e.Msg
}

// NotFittedError reports that inference, testing or forecasting was requested
// on a result whose parameters have not been assembled.
type NotFittedError struct {
	Op string
}

func (e *NotFittedError) Error() string {
	return "vecm: " + e.Op + " called on an unfitted model"
}

// MissingExogError reports a forecast request without future values for the
// exogenous regressors that the model was fitted with.
type MissingExogError struct {
	Name string // "exog" or "exog_coint"
}

func (e *MissingExogError) Error() string {
	return "vecm: model was fitted with " + e.Name + " but no future values were supplied"
}

// NumericalInstabilityError reports that a matrix the procedure depends on is
// singular or too ill-conditioned for the estimates to be trusted.
type NumericalInstabilityError struct {
	Msg   string
	Value float64 // offending eigenvalue or condition number, 0 if not applicable
}

func (e *NumericalInstabilityError) Error() string {
	if e.Value != 0 {
		return fmt.Sprintf("vecm: numerical instability: %s (%g)", e.Msg, e.Value)
	}
	return "vecm: numerical instability: " + e.Msg
}
