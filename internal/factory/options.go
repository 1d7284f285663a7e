package factory

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/hlatime/internal/ltime"
)

// DefaultEpsilon is the Float64 tolerance used when none is configured.
const DefaultEpsilon = 1e-9

// ErrInvalidEpsilon is returned by New for a tolerance that is not a
// positive finite number.
var ErrInvalidEpsilon = errors.New("epsilon must be a positive finite number")

// Config holds the federation-wide settings of a Factory.
type Config struct {
	// Domain is the federation's time domain.
	Domain ltime.Domain

	// Epsilon is the Float64 tolerance. Ignored by Integer64 arithmetic.
	Epsilon float64
}

// Option configures a Factory.
type Option func(*Config)

// WithDomain selects the federation's time domain.
func WithDomain(d ltime.Domain) Option {
	return func(c *Config) {
		c.Domain = d
	}
}

// WithEpsilon sets the Float64 tolerance.
func WithEpsilon(eps float64) Option {
	return func(c *Config) {
		c.Epsilon = eps
	}
}

func defaultConfig() Config {
	return Config{Domain: ltime.DefaultDomain, Epsilon: DefaultEpsilon}
}

func (c Config) validate() error {
	if !c.Domain.Valid() {
		return ltime.NewError(ltime.CodeDomainMismatch, "new factory", fmt.Sprintf("unknown time domain %s", c.Domain))
	}
	if c.Epsilon <= 0 || math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidEpsilon, c.Epsilon)
	}
	return nil
}
