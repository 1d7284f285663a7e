package ltime

import (
	"fmt"
	"math"
)

// Time is an immutable point on one domain's logical timeline.
type Time struct {
	n Number
}

// NewTime creates a Time from a raw number.
// Float64 values must be finite: NaN has no place in a total order.
func NewTime(n Number) (Time, error) {
	if !n.domain.Valid() {
		return Time{}, unknownDomain("make time", n.domain)
	}
	if !n.IsFinite() {
		return Time{}, NewError(CodeOverflow, "make time", fmt.Sprintf("non-finite time %s", n))
	}
	return Time{n: n}, nil
}

// InitialTime returns the initial (zero) time of d.
func InitialTime(d Domain) Time {
	return Time{n: Zero(d)}
}

// FinalTime returns the greatest representable time of d.
func FinalTime(d Domain) Time {
	switch d {
	case Float64:
		return Time{n: Float(math.MaxFloat64)}
	case Integer64:
		return Time{n: Int(math.MaxInt64)}
	default:
		return Time{}
	}
}

func (Time) ltimeValue() {}

// Kind returns KindTime.
func (Time) Kind() Kind { return KindTime }

// Domain returns the time's domain.
func (t Time) Domain() Domain { return t.n.domain }

// Number returns the raw numeric value, e.g. for encoding.
func (t Time) Number() Number { return t.n }

func (t Time) String() string { return t.n.String() }

// Compare orders t against u within tolerance eps.
func (t Time) Compare(u Time, eps float64) (Ordering, error) {
	return t.n.Compare(u.n, eps)
}

// Add returns t advanced by i.
func (t Time) Add(i Interval) (Time, error) {
	s, err := t.n.Add(i.n)
	if err != nil {
		return Time{}, err
	}
	return Time{n: s}, nil
}

// Subtract returns t moved back by i.
func (t Time) Subtract(i Interval) (Time, error) {
	d, err := t.n.Sub(i.n)
	if err != nil {
		return Time{}, err
	}
	return Time{n: d}, nil
}

// Difference returns the interval t - u. It fails with an invalid interval
// error when t precedes u by more than eps.
func (t Time) Difference(u Time, eps float64) (Interval, error) {
	d, err := t.n.Sub(u.n)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(d, eps)
}

// IsInitial reports whether t equals the initial time of its domain.
func (t Time) IsInitial(eps float64) bool {
	return t.n.IsZero(eps)
}

// IsFinal reports whether t is the greatest representable time of its domain.
func (t Time) IsFinal() bool {
	switch t.n.domain {
	case Float64:
		return t.n.f == math.MaxFloat64
	case Integer64:
		return t.n.i == math.MaxInt64
	default:
		return false
	}
}
