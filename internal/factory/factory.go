package factory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/hlatime/internal/ltime"
	"github.com/roach88/hlatime/internal/wire"
)

// Factory constructs validated Time and Interval values for one federation.
type Factory struct {
	domain ltime.Domain
	eps    float64
}

// New creates a Factory. Without options it uses the Float64 domain and
// DefaultEpsilon.
func New(opts ...Option) (*Factory, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Factory{domain: cfg.Domain, eps: cfg.Epsilon}, nil
}

// ForName creates a Factory for the named time implementation, e.g.
// "HLAinteger64Time". The empty name selects the default Float64 domain.
// A WithDomain option given in opts overrides the name.
func ForName(name string, opts ...Option) (*Factory, error) {
	d, err := ltime.ParseDomain(name)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithDomain(d)}, opts...)...)
}

// Config returns the factory's settings.
func (f *Factory) Config() Config {
	return Config{Domain: f.domain, Epsilon: f.eps}
}

// Domain returns the federation's time domain.
func (f *Factory) Domain() ltime.Domain {
	return f.domain
}

// Tolerance returns the configured Float64 epsilon as a raw number.
func (f *Factory) Tolerance() float64 {
	return f.eps
}

// MakeTime validates n as a Time of the federation's domain.
func (f *Factory) MakeTime(n ltime.Number) (ltime.Time, error) {
	v, err := f.validate("make time", ltime.KindTime, n)
	if err != nil {
		return ltime.Time{}, err
	}
	return v.(ltime.Time), nil
}

// MakeInterval validates n as an Interval of the federation's domain.
func (f *Factory) MakeInterval(n ltime.Number) (ltime.Interval, error) {
	v, err := f.validate("make interval", ltime.KindInterval, n)
	if err != nil {
		return ltime.Interval{}, err
	}
	return v.(ltime.Interval), nil
}

// FromLiteral parses text as a value of domain d and the given kind.
// Text is NFKC-folded first, so full-width digits are accepted.
func (f *Factory) FromLiteral(d ltime.Domain, kind ltime.Kind, text string) (ltime.Value, error) {
	const op = "from literal"
	if err := f.checkDomain(op, d); err != nil {
		return nil, err
	}
	n, err := parseNumber(op, d, text)
	if err != nil {
		return nil, err
	}
	return f.validate(op, kind, n)
}

// ParseTime parses text as a Time of the federation's domain.
func (f *Factory) ParseTime(text string) (ltime.Time, error) {
	v, err := f.FromLiteral(f.domain, ltime.KindTime, text)
	if err != nil {
		return ltime.Time{}, err
	}
	return v.(ltime.Time), nil
}

// ParseInterval parses text as an Interval of the federation's domain.
func (f *Factory) ParseInterval(text string) (ltime.Interval, error) {
	v, err := f.FromLiteral(f.domain, ltime.KindInterval, text)
	if err != nil {
		return ltime.Interval{}, err
	}
	return v.(ltime.Interval), nil
}

// FromBytes decodes 8 canonical bytes of domain d as a value of the given kind.
func (f *Factory) FromBytes(d ltime.Domain, kind ltime.Kind, b []byte) (ltime.Value, error) {
	const op = "from bytes"
	if err := f.checkDomain(op, d); err != nil {
		return nil, err
	}
	n, err := wire.Decode(d, b)
	if err != nil {
		return nil, err
	}
	return f.validate(op, kind, n)
}

// FromWire decodes a 9-byte tagged wire value as a value of the given kind.
// The domain comes from the tag byte and must match the federation's.
func (f *Factory) FromWire(kind ltime.Kind, b []byte) (ltime.Value, error) {
	n, err := wire.DecodeValue(b)
	if err != nil {
		return nil, err
	}
	return f.validate("from wire", kind, n)
}

// Encode returns the 9-byte tagged wire form of v.
func (f *Factory) Encode(v ltime.Value) ([]byte, error) {
	if err := f.checkValue("encode", v); err != nil {
		return nil, err
	}
	return wire.EncodeValue(v)
}

// validate runs the construction pipeline: domain, range, non-negativity,
// normalization.
func (f *Factory) validate(op string, kind ltime.Kind, n ltime.Number) (ltime.Value, error) {
	if err := f.checkDomain(op, n.Domain()); err != nil {
		return nil, err
	}
	if !n.IsFinite() {
		return nil, ltime.NewError(ltime.CodeOverflow, op, fmt.Sprintf("%s %s is not finite", kind, n))
	}
	if kind == ltime.KindInterval && n.IsNegative(f.eps) {
		return nil, ltime.NewError(ltime.CodeInvalidInterval, op, fmt.Sprintf("interval %s is negative", n))
	}
	n = n.Normalize(f.eps)

	switch kind {
	case ltime.KindTime:
		return ltime.NewTime(n)
	case ltime.KindInterval:
		return ltime.NewInterval(n, f.eps)
	default:
		return nil, ltime.NewError(ltime.CodeParse, op, fmt.Sprintf("unknown value kind %s", kind))
	}
}

// checkValue is checkDomain for a possibly nil value.
func (f *Factory) checkValue(op string, v ltime.Value) error {
	if v == nil {
		return ltime.NewError(ltime.CodeDomainMismatch, op,
			fmt.Sprintf("nil value in a %s federation", f.domain))
	}
	return f.checkDomain(op, v.Domain())
}

func (f *Factory) checkDomain(op string, d ltime.Domain) error {
	if d != f.domain {
		return ltime.NewError(ltime.CodeDomainMismatch, op,
			fmt.Sprintf("%s value in a %s federation", d, f.domain))
	}
	return nil
}

// parseNumber reads text as the native numeric type of d. Values outside the
// type's range fail with an overflow error, anything else unparsable with a
// parse error.
func parseNumber(op string, d ltime.Domain, text string) (ltime.Number, error) {
	s := strings.TrimSpace(norm.NFKC.String(text))
	if s == "" {
		return ltime.Number{}, ltime.NewError(ltime.CodeParse, op, "empty literal")
	}

	switch d {
	case ltime.Float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ltime.Number{}, numError(op, d, text, err)
		}
		return ltime.Float(v), nil
	case ltime.Integer64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ltime.Number{}, numError(op, d, text, err)
		}
		return ltime.Int(v), nil
	default:
		return ltime.Number{}, ltime.NewError(ltime.CodeDomainMismatch, op, fmt.Sprintf("unknown time domain %s", d))
	}
}

func numError(op string, d ltime.Domain, text string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return ltime.WrapError(ltime.CodeOverflow, op, fmt.Sprintf("%q exceeds %s range", text, d), err)
	}
	return ltime.WrapError(ltime.CodeParse, op, fmt.Sprintf("%q is not a %s literal", text, d), err)
}
