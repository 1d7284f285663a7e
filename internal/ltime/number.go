package ltime

import (
	"math"
	"strconv"
)

// Number is a raw numeric value tagged with its domain. It is the primitive
// that Time and Interval wrap: precision-aware for Float64, exact and
// overflow-checked for Integer64.
//
// The zero Number has no domain; every operation on it fails with a
// domain mismatch.
type Number struct {
	domain Domain
	f      float64
	i      int64
}

// Float creates a Float64 number.
func Float(v float64) Number {
	return Number{domain: Float64, f: v}
}

// Int creates an Integer64 number.
func Int(v int64) Number {
	return Number{domain: Integer64, i: v}
}

// Zero returns the zero number of d.
func Zero(d Domain) Number {
	return Number{domain: d}
}

// Domain returns the number's domain.
func (n Number) Domain() Domain {
	return n.domain
}

// Float64 returns the value as a float64. Integer64 values are converted.
func (n Number) Float64() float64 {
	if n.domain == Integer64 {
		return float64(n.i)
	}
	return n.f
}

// Int64 returns the value as an int64. Float64 values are truncated toward zero.
func (n Number) Int64() int64 {
	if n.domain == Float64 {
		return int64(n.f)
	}
	return n.i
}

// IsFinite reports whether n is neither NaN nor infinite. Integer64 is always finite.
func (n Number) IsFinite() bool {
	if n.domain == Float64 {
		return !math.IsNaN(n.f) && !math.IsInf(n.f, 0)
	}
	return true
}

// Add returns n + m.
func (n Number) Add(m Number) (Number, error) {
	if err := sameDomain("add", n, m); err != nil {
		return Number{}, err
	}
	if n.domain == Float64 {
		return floatResult("add", n.f+m.f, n, m)
	}
	s, ok := addInt64(n.i, m.i)
	if !ok {
		return Number{}, NewError(CodeOverflow, "add", n.String()+" + "+m.String()+" exceeds int64 range")
	}
	return Int(s), nil
}

// Sub returns n - m.
func (n Number) Sub(m Number) (Number, error) {
	if err := sameDomain("subtract", n, m); err != nil {
		return Number{}, err
	}
	if n.domain == Float64 {
		return floatResult("subtract", n.f-m.f, n, m)
	}
	d, ok := subInt64(n.i, m.i)
	if !ok {
		return Number{}, NewError(CodeOverflow, "subtract", n.String()+" - "+m.String()+" exceeds int64 range")
	}
	return Int(d), nil
}

// Neg returns -n. Negating math.MinInt64 overflows.
func (n Number) Neg() (Number, error) {
	switch n.domain {
	case Float64:
		return Float(-n.f), nil
	case Integer64:
		if n.i == math.MinInt64 {
			return Number{}, NewError(CodeOverflow, "negate", "-("+n.String()+") exceeds int64 range")
		}
		return Int(-n.i), nil
	default:
		return Number{}, unknownDomain("negate", n.domain)
	}
}

// Compare orders n against m. Float64 values within eps of each other are
// Equal; Integer64 ignores eps and compares exactly.
func (n Number) Compare(m Number, eps float64) (Ordering, error) {
	if err := sameDomain("compare", n, m); err != nil {
		return Equal, err
	}
	if n.domain == Float64 {
		switch {
		case math.Abs(n.f-m.f) <= eps:
			return Equal, nil
		case n.f < m.f:
			return Less, nil
		default:
			return Greater, nil
		}
	}
	switch {
	case n.i < m.i:
		return Less, nil
	case n.i > m.i:
		return Greater, nil
	default:
		return Equal, nil
	}
}

// IsZero reports whether n is zero: |n| < eps for Float64, exactly 0 for
// Integer64. A Float64 value of exactly eps is the smallest forward step, not zero.
func (n Number) IsZero(eps float64) bool {
	switch n.domain {
	case Float64:
		return math.Abs(n.f) < eps
	case Integer64:
		return n.i == 0
	default:
		return false
	}
}

// IsNegative reports whether n is below zero by eps or more.
func (n Number) IsNegative(eps float64) bool {
	switch n.domain {
	case Float64:
		return n.f < 0 && !n.IsZero(eps)
	case Integer64:
		return n.i < 0
	default:
		return false
	}
}

// Normalize snaps a Float64 number closer than eps to zero to exactly +0.
// Integer64 numbers are returned unchanged.
func (n Number) Normalize(eps float64) Number {
	if n.domain == Float64 && n.IsZero(eps) {
		return Float(0)
	}
	return n
}

// String formats n in the shortest form that parses back to the same value.
func (n Number) String() string {
	switch n.domain {
	case Float64:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	case Integer64:
		return strconv.FormatInt(n.i, 10)
	default:
		return "<invalid>"
	}
}

func sameDomain(op string, n, m Number) error {
	if !n.domain.Valid() {
		return unknownDomain(op, n.domain)
	}
	if n.domain != m.domain {
		return domainMismatch(op, n.domain, m.domain)
	}
	return nil
}

// floatResult rejects an infinite result produced from finite operands.
func floatResult(op string, r float64, n, m Number) (Number, error) {
	if math.IsInf(r, 0) && n.IsFinite() && m.IsFinite() {
		return Number{}, NewError(CodeOverflow, op, "result exceeds float64 range")
	}
	return Float(r), nil
}

// addInt64 returns a+b and false if the sum overflows.
func addInt64(a, b int64) (int64, bool) {
	s := a + b
	// Overflow iff both operands share a sign the sum does not.
	if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
		return 0, false
	}
	return s, true
}

// subInt64 returns a-b and false if the difference overflows.
func subInt64(a, b int64) (int64, bool) {
	d := a - b
	if (a >= 0) != (b >= 0) && (d >= 0) != (a >= 0) {
		return 0, false
	}
	return d, true
}
