package ltime

import "fmt"

// Interval is an immutable, non-negative duration on one domain's timeline.
type Interval struct {
	n Number
}

// NewInterval creates an Interval from a raw number.
// Values below zero by more than eps fail with an invalid interval error;
// Float64 values less than eps below zero become exactly zero.
func NewInterval(n Number, eps float64) (Interval, error) {
	if !n.domain.Valid() {
		return Interval{}, unknownDomain("make interval", n.domain)
	}
	if !n.IsFinite() {
		return Interval{}, NewError(CodeOverflow, "make interval", fmt.Sprintf("non-finite interval %s", n))
	}
	if n.IsNegative(eps) {
		return Interval{}, NewError(CodeInvalidInterval, "make interval", fmt.Sprintf("interval %s is negative", n))
	}
	if n.domain == Float64 && n.f < 0 {
		n = Float(0)
	}
	return Interval{n: n}, nil
}

// ZeroInterval returns the zero-length interval of d.
func ZeroInterval(d Domain) Interval {
	return Interval{n: Zero(d)}
}

// EpsilonInterval returns the smallest distinguishable forward step of d:
// exactly 1 for Integer64, the tolerance eps for Float64.
func EpsilonInterval(d Domain, eps float64) Interval {
	switch d {
	case Float64:
		return Interval{n: Float(eps)}
	case Integer64:
		return Interval{n: Int(1)}
	default:
		return Interval{}
	}
}

func (Interval) ltimeValue() {}

// Kind returns KindInterval.
func (Interval) Kind() Kind { return KindInterval }

// Domain returns the interval's domain.
func (i Interval) Domain() Domain { return i.n.domain }

// Number returns the raw numeric value.
func (i Interval) Number() Number { return i.n }

func (i Interval) String() string { return i.n.String() }

// Compare orders i against j within tolerance eps.
func (i Interval) Compare(j Interval, eps float64) (Ordering, error) {
	return i.n.Compare(j.n, eps)
}

// Add returns i + j.
func (i Interval) Add(j Interval) (Interval, error) {
	s, err := i.n.Add(j.n)
	if err != nil {
		return Interval{}, err
	}
	return Interval{n: s}, nil
}

// Subtract returns i - j, failing when j exceeds i by more than eps.
func (i Interval) Subtract(j Interval, eps float64) (Interval, error) {
	d, err := i.n.Sub(j.n)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(d, eps)
}

// IsZero reports whether i is shorter than eps (Float64) or exactly 0 (Integer64).
func (i Interval) IsZero(eps float64) bool {
	return i.n.IsZero(eps)
}
