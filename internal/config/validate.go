package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/hlatime/internal/factory"
)

// Validation error codes (E120-E129)
const (
	ErrFederationName = "E120" // federation name is required
	ErrTimeDomain     = "E121" // unknown time domain
	ErrEpsilon        = "E122" // epsilon must be positive and finite
	ErrLookahead      = "E123" // lookahead is not a valid interval
)

// ValidationError describes one invalid federation setting.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks f and returns every problem found (does not fail-fast).
func Validate(f Federation) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "federation name is required",
			Code:    ErrFederationName,
		})
	}

	d, err := f.Domain()
	if err != nil {
		errs = append(errs, ValidationError{
			Field:   "time_domain",
			Message: fmt.Sprintf("unknown time domain %q", f.TimeDomain),
			Code:    ErrTimeDomain,
		})
	}

	epsOK := f.Epsilon > 0 && !math.IsInf(f.Epsilon, 0) && !math.IsNaN(f.Epsilon)
	if !epsOK {
		errs = append(errs, ValidationError{
			Field:   "epsilon",
			Message: fmt.Sprintf("epsilon must be a positive finite number, got %v", f.Epsilon),
			Code:    ErrEpsilon,
		})
	}

	// The lookahead can only be checked against a usable factory.
	if f.Lookahead != "" && err == nil && epsOK {
		fac, ferr := factory.New(factory.WithDomain(d), factory.WithEpsilon(f.Epsilon))
		if ferr == nil {
			if _, lerr := fac.ParseInterval(f.Lookahead); lerr != nil {
				errs = append(errs, ValidationError{
					Field:   "lookahead",
					Message: lerr.Error(),
					Code:    ErrLookahead,
				})
			}
		}
	}

	return errs
}
