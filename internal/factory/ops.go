package factory

import (
	"fmt"

	"github.com/roach88/hlatime/internal/ltime"
)

// Compare orders a against b. Float64 times within epsilon are Equal.
func (f *Factory) Compare(a, b ltime.Time) (ltime.Ordering, error) {
	if err := f.checkDomains("compare", a, b); err != nil {
		return ltime.Equal, err
	}
	return a.Compare(b, f.eps)
}

// CompareIntervals orders two intervals, e.g. a requested lookahead against
// the current one.
func (f *Factory) CompareIntervals(a, b ltime.Interval) (ltime.Ordering, error) {
	if err := f.checkDomains("compare intervals", a, b); err != nil {
		return ltime.Equal, err
	}
	return a.Compare(b, f.eps)
}

// Add returns t advanced by i.
func (f *Factory) Add(t ltime.Time, i ltime.Interval) (ltime.Time, error) {
	const op = "add"
	if err := f.checkDomains(op, t, i); err != nil {
		return ltime.Time{}, err
	}
	r, err := t.Add(i)
	if err != nil {
		return ltime.Time{}, err
	}
	return f.finishTime(op, r)
}

// Subtract returns t moved back by i.
func (f *Factory) Subtract(t ltime.Time, i ltime.Interval) (ltime.Time, error) {
	const op = "subtract"
	if err := f.checkDomains(op, t, i); err != nil {
		return ltime.Time{}, err
	}
	r, err := t.Subtract(i)
	if err != nil {
		return ltime.Time{}, err
	}
	return f.finishTime(op, r)
}

// Difference returns the interval a - b. It fails with an invalid interval
// error when a is earlier than b.
func (f *Factory) Difference(a, b ltime.Time) (ltime.Interval, error) {
	const op = "difference"
	if err := f.checkDomains(op, a, b); err != nil {
		return ltime.Interval{}, err
	}
	r, err := a.Difference(b, f.eps)
	if err != nil {
		return ltime.Interval{}, err
	}
	return f.finishInterval(op, r)
}

// AddIntervals returns a + b.
func (f *Factory) AddIntervals(a, b ltime.Interval) (ltime.Interval, error) {
	const op = "add intervals"
	if err := f.checkDomains(op, a, b); err != nil {
		return ltime.Interval{}, err
	}
	r, err := a.Add(b)
	if err != nil {
		return ltime.Interval{}, err
	}
	return f.finishInterval(op, r)
}

// SubtractIntervals returns a - b, failing when the result would be negative.
func (f *Factory) SubtractIntervals(a, b ltime.Interval) (ltime.Interval, error) {
	const op = "subtract intervals"
	if err := f.checkDomains(op, a, b); err != nil {
		return ltime.Interval{}, err
	}
	r, err := a.Subtract(b, f.eps)
	if err != nil {
		return ltime.Interval{}, err
	}
	return f.finishInterval(op, r)
}

// IsZero reports whether i is the zero interval. Values from another domain
// are never zero for this federation.
func (f *Factory) IsZero(i ltime.Interval) bool {
	return i.Domain() == f.domain && i.IsZero(f.eps)
}

// IsInitial reports whether t is the initial time of the federation.
func (f *Factory) IsInitial(t ltime.Time) bool {
	return t.Domain() == f.domain && t.IsInitial(f.eps)
}

// IsFinal reports whether t is the greatest representable time.
func (f *Factory) IsFinal(t ltime.Time) bool {
	return t.Domain() == f.domain && t.IsFinal()
}

// Epsilon returns the smallest meaningful interval of the federation:
// 1 for Integer64, the configured tolerance for Float64.
func (f *Factory) Epsilon() ltime.Interval {
	return ltime.EpsilonInterval(f.domain, f.eps)
}

// InitialTime returns the federation's starting time.
func (f *Factory) InitialTime() ltime.Time {
	return ltime.InitialTime(f.domain)
}

// FinalTime returns the greatest representable time of the federation.
func (f *Factory) FinalTime() ltime.Time {
	return ltime.FinalTime(f.domain)
}

// ZeroInterval returns the zero-length interval of the federation.
func (f *Factory) ZeroInterval() ltime.Interval {
	return ltime.ZeroInterval(f.domain)
}

// ValidateAdvance checks a time advance request. The requested time must
// belong to the federation and must not precede current.
func (f *Factory) ValidateAdvance(current, requested ltime.Time) error {
	const op = "validate advance"
	if err := f.checkDomains(op, current, requested); err != nil {
		return err
	}
	ord, err := requested.Compare(current, f.eps)
	if err != nil {
		return err
	}
	if ord == ltime.Less {
		return ltime.NewError(ltime.CodeInvalidTime, op,
			fmt.Sprintf("requested time %s is before current time %s", requested, current))
	}
	return nil
}

// Float64Value returns v as a float64 after checking that it belongs to the
// federation. Integer64 values are converted exactly up to 2^53.
func (f *Factory) Float64Value(v ltime.Value) (float64, error) {
	if err := f.checkValue("float64 value", v); err != nil {
		return 0, err
	}
	return v.Number().Float64(), nil
}

func (f *Factory) checkDomains(op string, vs ...ltime.Value) error {
	for _, v := range vs {
		if err := f.checkValue(op, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) finishTime(op string, t ltime.Time) (ltime.Time, error) {
	v, err := f.validate(op, ltime.KindTime, t.Number())
	if err != nil {
		return ltime.Time{}, err
	}
	return v.(ltime.Time), nil
}

func (f *Factory) finishInterval(op string, i ltime.Interval) (ltime.Interval, error) {
	v, err := f.validate(op, ltime.KindInterval, i.Number())
	if err != nil {
		return ltime.Interval{}, err
	}
	return v.(ltime.Interval), nil
}
