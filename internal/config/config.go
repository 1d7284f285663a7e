// Package config loads the federation settings a federate supplies when it
// joins: the time domain, the Float64 tolerance and an optional lookahead.
//
// Settings come from CUE files (checked against an embedded schema that also
// supplies defaults) or from YAML/JSON files with ${VAR|default} environment
// expansion. Either way the result is a Federation that converts into
// factory options.
package config

import (
	"fmt"

	"github.com/imdario/mergo"

	"github.com/roach88/hlatime/internal/factory"
	"github.com/roach88/hlatime/internal/ltime"
)

// Federation holds the time settings agreed for one federation execution.
type Federation struct {
	Name       string  `json:"name" yaml:"name" mapstructure:"name"`
	TimeDomain string  `json:"time_domain" yaml:"time_domain" mapstructure:"time_domain"`
	Epsilon    float64 `json:"epsilon" yaml:"epsilon" mapstructure:"epsilon"`
	Lookahead  string  `json:"lookahead,omitempty" yaml:"lookahead,omitempty" mapstructure:"lookahead"`
}

// Default returns the settings used when nothing is configured.
func Default() Federation {
	return Federation{
		TimeDomain: ltime.DefaultDomain.HLAName(),
		Epsilon:    factory.DefaultEpsilon,
	}
}

// Merge overlays the non-zero fields of override onto f.
func (f *Federation) Merge(override Federation) error {
	if err := mergo.Merge(f, override, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge federation config: %w", err)
	}
	return nil
}

// Domain resolves the configured time domain.
func (f Federation) Domain() (ltime.Domain, error) {
	return ltime.ParseDomain(f.TimeDomain)
}

// Options converts the settings into factory options.
func (f Federation) Options() ([]factory.Option, error) {
	d, err := f.Domain()
	if err != nil {
		return nil, err
	}
	return []factory.Option{factory.WithDomain(d), factory.WithEpsilon(f.Epsilon)}, nil
}

// Factory builds the federation's time factory.
func (f Federation) Factory() (*factory.Factory, error) {
	opts, err := f.Options()
	if err != nil {
		return nil, err
	}
	return factory.New(opts...)
}

// LookaheadInterval parses the configured lookahead with fac. An empty
// lookahead is the zero interval.
func (f Federation) LookaheadInterval(fac *factory.Factory) (ltime.Interval, error) {
	if f.Lookahead == "" {
		return fac.ZeroInterval(), nil
	}
	return fac.ParseInterval(f.Lookahead)
}
