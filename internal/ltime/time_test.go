package ltime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Compile-time check via assignment
	var _ Value = Time{}
	var _ Value = Interval{}
}

func TestNewTime(t *testing.T) {
	tm, err := NewTime(Int(100))
	require.NoError(t, err)
	assert.Equal(t, Integer64, tm.Domain())
	assert.Equal(t, KindTime, tm.Kind())
	assert.Equal(t, "100", tm.String())

	_, err = NewTime(Float(math.NaN()))
	assert.True(t, IsOverflowError(err))

	_, err = NewTime(Float(math.Inf(1)))
	assert.True(t, IsOverflowError(err))

	_, err = NewTime(Number{})
	assert.True(t, IsDomainMismatchError(err))
}

func TestTime_Add(t *testing.T) {
	tm := mustTime(t, Int(100))
	iv := mustInterval(t, Int(50))

	got, err := tm.Add(iv)
	require.NoError(t, err)
	assert.Equal(t, Int(150), got.Number())

	// Original value untouched
	assert.Equal(t, Int(100), tm.Number())
}

func TestTime_Add_DomainMismatch(t *testing.T) {
	_, err := mustTime(t, Float(1.0)).Add(mustInterval(t, Int(1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDomainMismatch)
}

func TestTime_Add_Overflow(t *testing.T) {
	_, err := FinalTime(Integer64).Add(mustInterval(t, Int(1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestTime_Subtract(t *testing.T) {
	got, err := mustTime(t, Float(10)).Subtract(mustInterval(t, Float(2.5)))
	require.NoError(t, err)
	assert.Equal(t, Float(7.5), got.Number())

	_, err = mustTime(t, Int(math.MinInt64)).Subtract(mustInterval(t, Int(1)))
	assert.True(t, IsOverflowError(err))

	_, err = mustTime(t, Int(1)).Subtract(mustInterval(t, Float(1)))
	assert.True(t, IsDomainMismatchError(err))
}

func TestTime_Difference(t *testing.T) {
	a := mustTime(t, Float(10.0))
	b := mustTime(t, Float(3.5))

	d, err := a.Difference(b, testEps)
	require.NoError(t, err)
	assert.Equal(t, Float(6.5), d.Number())
	assert.Equal(t, KindInterval, d.Kind())

	_, err = b.Difference(a, testEps)
	require.Error(t, err)
	assert.True(t, IsInvalidIntervalError(err))
}

func TestTime_Difference_WithinEpsilon(t *testing.T) {
	a := mustTime(t, Float(1.0))
	b := mustTime(t, Float(1.0+1e-12))

	d, err := a.Difference(b, testEps)
	require.NoError(t, err, "a trails b only by round-off")
	assert.True(t, d.IsZero(testEps))
	assert.False(t, math.Signbit(d.Number().Float64()), "never negative")
}

func TestTime_Compare(t *testing.T) {
	o, err := mustTime(t, Int(1)).Compare(mustTime(t, Int(2)), testEps)
	require.NoError(t, err)
	assert.Equal(t, Less, o)

	o, err = mustTime(t, Float(2)).Compare(mustTime(t, Float(2+1e-10)), testEps)
	require.NoError(t, err)
	assert.Equal(t, Equal, o)

	_, err = mustTime(t, Int(1)).Compare(mustTime(t, Float(1)), testEps)
	assert.True(t, IsDomainMismatchError(err))
}

func TestTime_InitialAndFinal(t *testing.T) {
	for _, d := range []Domain{Float64, Integer64} {
		t.Run(d.String(), func(t *testing.T) {
			assert.True(t, InitialTime(d).IsInitial(testEps))
			assert.False(t, InitialTime(d).IsFinal())
			assert.True(t, FinalTime(d).IsFinal())
			assert.False(t, FinalTime(d).IsInitial(testEps))
			assert.Equal(t, d, FinalTime(d).Domain())
		})
	}

	assert.True(t, mustTime(t, Float(1e-12)).IsInitial(testEps))
	assert.False(t, mustTime(t, Int(1)).IsInitial(testEps))
	assert.False(t, Time{}.IsInitial(testEps))
}

func mustTime(t *testing.T, n Number) Time {
	t.Helper()
	tm, err := NewTime(n)
	require.NoError(t, err)
	return tm
}

func mustInterval(t *testing.T, n Number) Interval {
	t.Helper()
	iv, err := NewInterval(n, testEps)
	require.NoError(t, err)
	return iv
}
